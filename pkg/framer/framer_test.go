package framer

import (
	"bytes"
	"testing"

	"framewire/pkg/wire"
)

func feed(f *Framer, packet []byte) []wire.ErrorCode {
	var results []wire.ErrorCode
	for _, b := range packet {
		if code := f.ProcessByte(b); code != wire.OK {
			results = append(results, code)
		}
	}
	return results
}

func makePacket(t *testing.T, frame []byte) []byte {
	t.Helper()
	f := NewFramer(wire.MaxPacketSize(len(frame)))
	packet := wire.Span{Data: make([]byte, wire.MaxPacketSize(len(frame))), Len: wire.MaxPacketSize(len(frame))}
	if code := f.CreatePacket(wire.Span{Data: frame, Len: len(frame)}, &packet); code != wire.OK {
		t.Fatalf("CreatePacket failed: %v", code)
	}
	return packet.Bytes()
}

func TestFramerRoundTrip(t *testing.T) {
	frame := []byte{1, 2, 3, 4, 5, 0, 6, 7}
	packet := makePacket(t, frame)

	var got []byte
	f := NewFramer(wire.MaxPacketSize(len(frame)))
	f.RegisterCallback(func(span wire.Span) wire.ErrorCode {
		got = append([]byte(nil), span.Bytes()...)
		return wire.OK
	})

	if errs := feed(f, packet); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if !bytes.Equal(got, frame) {
		t.Fatalf("got %x, want %x", got, frame)
	}
}

func TestFramerCrcTamperDetected(t *testing.T) {
	frame := []byte{9, 8, 7, 6}
	packet := makePacket(t, frame)
	packet[len(packet)-2] ^= 0xFF // tamper with the last pre-delimiter byte

	calls := 0
	f := NewFramer(wire.MaxPacketSize(len(frame)))
	f.RegisterCallback(func(span wire.Span) wire.ErrorCode {
		calls++
		return wire.OK
	})

	errs := feed(f, packet)
	if calls != 0 {
		t.Fatalf("callback should not fire on a tampered packet")
	}
	if len(errs) == 0 {
		t.Fatalf("expected a framing error")
	}
}

func TestFramerResynchronizesAfterCorruption(t *testing.T) {
	frame1 := []byte{1, 1, 1}
	frame2 := []byte{2, 2, 2, 2}
	packet1 := makePacket(t, frame1)
	packet2 := makePacket(t, frame2)

	maxPacket := wire.MaxPacketSize(4)
	f := NewFramer(maxPacket)
	var decoded [][]byte
	f.RegisterCallback(func(span wire.Span) wire.ErrorCode {
		decoded = append(decoded, append([]byte(nil), span.Bytes()...))
		return wire.OK
	})

	corrupted := append([]byte(nil), packet1...)
	corrupted[0] ^= 0xFF
	feed(f, corrupted)

	feed(f, packet2)

	if len(decoded) != 1 {
		t.Fatalf("expected exactly one successfully decoded frame, got %d", len(decoded))
	}
	if !bytes.Equal(decoded[0], frame2) {
		t.Fatalf("decoded %x, want %x", decoded[0], frame2)
	}
}

func TestFramerOverflowRecovery(t *testing.T) {
	maxPacket := 8
	f := NewFramer(maxPacket)
	var decoded [][]byte
	f.RegisterCallback(func(span wire.Span) wire.ErrorCode {
		decoded = append(decoded, append([]byte(nil), span.Bytes()...))
		return wire.OK
	})

	overflow := make([]byte, maxPacket+5)
	for i := range overflow {
		overflow[i] = byte(i + 1)
	}
	errs := feed(f, overflow)
	if len(errs) == 0 {
		t.Fatalf("expected overflow error")
	}

	frame := []byte{4, 4}
	packet := makePacket(t, frame)
	feed(f, packet)
	if len(decoded) != 1 {
		t.Fatalf("framer did not resynchronize after overflow, decoded=%d", len(decoded))
	}
	if !bytes.Equal(decoded[0], frame) {
		t.Fatalf("decoded %x, want %x", decoded[0], frame)
	}
}

func TestFramerIdleDelimitersAreNoops(t *testing.T) {
	f := NewFramer(16)
	calls := 0
	f.RegisterCallback(func(span wire.Span) wire.ErrorCode {
		calls++
		return wire.OK
	})
	for i := 0; i < 5; i++ {
		if code := f.ProcessByte(0x00); code != wire.OK {
			t.Fatalf("idle delimiter returned %v", code)
		}
	}
	if calls != 0 {
		t.Fatalf("idle delimiters should not invoke the callback")
	}
}

func TestFramerShortFrameRejected(t *testing.T) {
	// Encode a frame shorter than the 4-byte CRC trailer requires (i.e. the
	// decoded length after stripping the CRC would be negative/too small).
	raw := []byte{0x01, 0x02} // decodedLength(2) < 4 once treated as frame||crc
	encoded := make([]byte, wire.CobsMaxOverhead(len(raw))+len(raw)+1)
	n, ok := wire.Encode(raw, encoded)
	if !ok {
		t.Fatalf("encode failed")
	}
	encoded = encoded[:n]
	encoded = append(encoded, 0x00)

	f := NewFramer(32)
	errs := feed(f, encoded)
	if len(errs) != 1 || errs[0] != wire.ErrFrameHeaderSize {
		t.Fatalf("errs = %v, want [ErrFrameHeaderSize]", errs)
	}
}
