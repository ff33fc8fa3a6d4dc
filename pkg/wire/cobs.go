package wire

// Encoder is an incremental Consistent Overhead Byte Stuffing encoder. It
// never allocates: Begin wires the encoder to a caller-provided output
// slice, Put appends one input byte at a time, and End flushes the final
// code byte. The encoded output never contains a zero byte and does not
// include the trailing delimiter — appending 0x00 is the framer's job.
type Encoder struct {
	out        []byte
	codeIndex  int
	writeIndex int
	code       byte
}

// Begin initializes the encoder to write into out. It fails if out has no
// capacity.
func (e *Encoder) Begin(out []byte) bool {
	e.out = out
	e.codeIndex = 0
	e.writeIndex = 1
	e.code = 1
	if len(out) == 0 {
		return false
	}
	out[0] = 0
	return true
}

// Put appends one input byte. It returns false if the output buffer
// overflows.
func (e *Encoder) Put(b byte) bool {
	if b == 0 {
		e.out[e.codeIndex] = e.code
		e.codeIndex = e.writeIndex
		if e.writeIndex >= len(e.out) {
			return false
		}
		e.writeIndex++
		e.code = 1
		return true
	}

	if e.writeIndex >= len(e.out) {
		return false
	}
	e.out[e.writeIndex] = b
	e.writeIndex++
	e.code++
	if e.code == 0xFF {
		e.out[e.codeIndex] = e.code
		e.codeIndex = e.writeIndex
		if e.writeIndex >= len(e.out) {
			return false
		}
		e.writeIndex++
		e.code = 1
	}
	return true
}

// End flushes the final code byte and returns the total number of bytes
// written.
func (e *Encoder) End() int {
	e.out[e.codeIndex] = e.code
	return e.writeIndex
}

// EncodeTwo COBS-encodes the logical concatenation a||b into out, without
// forming a temporary contiguous buffer. It returns the number of bytes
// written and true on success; false if out overflows.
func EncodeTwo(a, b, out []byte) (int, bool) {
	var enc Encoder
	if !enc.Begin(out) {
		return 0, false
	}
	for _, x := range a {
		if !enc.Put(x) {
			return 0, false
		}
	}
	for _, x := range b {
		if !enc.Put(x) {
			return 0, false
		}
	}
	return enc.End(), true
}

// Encode COBS-encodes in into out. It returns the number of bytes written
// and true on success.
func Encode(in, out []byte) (int, bool) {
	return EncodeTwo(in, nil, out)
}

// DecodeInPlace decodes a COBS-encoded buffer in place (the delimiter must
// not be included). A zero byte anywhere in the encoded region is always
// invalid. It returns the decoded length and true on success.
func DecodeInPlace(buf []byte) (int, bool) {
	readIndex := 0
	writeIndex := 0
	n := len(buf)

	for readIndex < n {
		code := buf[readIndex]
		readIndex++
		if code == 0 {
			return 0, false
		}

		for i := byte(1); i < code; i++ {
			if readIndex >= n || buf[readIndex] == 0 {
				return 0, false
			}
			buf[writeIndex] = buf[readIndex]
			writeIndex++
			readIndex++
		}

		if code != 0xFF && readIndex < n {
			buf[writeIndex] = 0x00
			writeIndex++
		}
	}

	return writeIndex, true
}
