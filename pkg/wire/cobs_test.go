package wire

import (
	"bytes"
	"testing"
)

func roundTrip(t *testing.T, input []byte) {
	t.Helper()
	encoded := make([]byte, len(input)+CobsMaxOverhead(len(input))+1)
	n, ok := Encode(input, encoded)
	if !ok {
		t.Fatalf("encode failed for input of length %d", len(input))
	}
	encoded = encoded[:n]

	for i, b := range encoded {
		if b == 0 {
			t.Fatalf("encoded byte %d is zero", i)
		}
	}

	scratch := append([]byte(nil), encoded...)
	decodedLen, ok := DecodeInPlace(scratch)
	if !ok {
		t.Fatalf("decode failed")
	}
	if decodedLen != len(input) {
		t.Fatalf("decoded length = %d, want %d", decodedLen, len(input))
	}
	if !bytes.Equal(scratch[:decodedLen], input) {
		t.Fatalf("decoded %x, want %x", scratch[:decodedLen], input)
	}
}

func TestCobsRoundTripPatterns(t *testing.T) {
	roundTrip(t, nil)
	roundTrip(t, []byte{0x11, 0x22, 0x33, 0x44})

	withZeros := make([]byte, 0)
	for i := 0; i < 600; i++ {
		if i%50 == 0 {
			withZeros = append(withZeros, 0x00)
		} else {
			withZeros = append(withZeros, byte(i))
		}
	}
	roundTrip(t, withZeros)

	longRun := make([]byte, 300)
	for i := range longRun {
		longRun[i] = byte(i + 1)
	}
	roundTrip(t, longRun)

	for n := 250; n <= 258; n++ {
		buf := make([]byte, n)
		for i := range buf {
			buf[i] = byte(i + 1)
		}
		roundTrip(t, buf)
	}
}

func TestCobsLiteralVectors(t *testing.T) {
	cases := []struct {
		in   []byte
		want []byte
	}{
		{nil, []byte{0x01}},
		{[]byte{0x00}, []byte{0x01, 0x01}},
		{[]byte{0x11, 0x22, 0x00, 0x33}, []byte{0x03, 0x11, 0x22, 0x02, 0x33}},
	}
	for _, c := range cases {
		out := make([]byte, 16)
		n, ok := Encode(c.in, out)
		if !ok {
			t.Fatalf("encode(%x) failed", c.in)
		}
		if !bytes.Equal(out[:n], c.want) {
			t.Fatalf("encode(%x) = %x, want %x", c.in, out[:n], c.want)
		}
	}
}

func TestCobsDecodeRejectsEmbeddedZero(t *testing.T) {
	buf := []byte{0x02, 0x00, 0x01}
	if _, ok := DecodeInPlace(buf); ok {
		t.Fatalf("expected decode failure for embedded zero")
	}
}

func TestCobsDecodeRejectsTruncatedRun(t *testing.T) {
	buf := []byte{0x05, 0x11, 0x22}
	if _, ok := DecodeInPlace(buf); ok {
		t.Fatalf("expected decode failure for truncated run")
	}
}

func TestEncodeTwo(t *testing.T) {
	a := []byte{0x01, 0x02, 0x03}
	b := []byte{0x00, 0x04}
	out := make([]byte, 16)
	n, ok := EncodeTwo(a, b, out)
	if !ok {
		t.Fatalf("encodeTwo failed")
	}
	scratch := append([]byte(nil), out[:n]...)
	decodedLen, ok := DecodeInPlace(scratch)
	if !ok {
		t.Fatalf("decode failed")
	}
	want := append(append([]byte{}, a...), b...)
	if !bytes.Equal(scratch[:decodedLen], want) {
		t.Fatalf("decoded %x want %x", scratch[:decodedLen], want)
	}
}

func TestEncodeOverflow(t *testing.T) {
	in := []byte{0x01, 0x02, 0x03}
	out := make([]byte, 2)
	if _, ok := Encode(in, out); ok {
		t.Fatalf("expected overflow failure")
	}
}
