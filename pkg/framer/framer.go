// Package framer implements byte-stream framing and deframing using COBS
// plus CRC-32/ISO-HDLC. A Framer is agnostic to the contents of a frame; it
// only validates the CRC and emits decoded frame bytes to a registered
// callback.
//
// Wire packet format: COBS(frame || crc32) followed by a 0x00 delimiter.
package framer

import "framewire/pkg/wire"

// Callback is invoked with a complete, CRC-validated frame. The span aliases
// the Framer's internal receive buffer and is only valid for the duration of
// the call; callers that need to retain the bytes must copy them first.
// Do not call ProcessByte re-entrantly from inside a Callback.
type Callback func(frame wire.Span) wire.ErrorCode

// Framer is a stateful byte-stream framer/deframer. It is constructed with a
// fixed maxPacketSize and never allocates afterward.
type Framer struct {
	maxPacketSize int
	rxBuffer      []byte
	rxIndex       int
	onPacket      Callback
}

// NewFramer allocates a Framer with a receive buffer sized maxPacketSize.
// This is the only allocation in the Framer's lifetime.
func NewFramer(maxPacketSize int) *Framer {
	return &Framer{
		maxPacketSize: maxPacketSize,
		rxBuffer:      make([]byte, maxPacketSize),
	}
}

// RegisterCallback registers the callback invoked when a complete,
// CRC-validated frame is received. There is exactly one callback per Framer;
// registering again replaces the previous one.
func (f *Framer) RegisterCallback(cb Callback) {
	f.onPacket = cb
}

// CreatePacket appends CRC-32/ISO-HDLC to frame, COBS-encodes the result,
// and appends the 0x00 delimiter into packet.Data. packet.Len is treated as
// output capacity on input and bytes-written on output.
func (f *Framer) CreatePacket(frame wire.Span, packet *wire.Span) wire.ErrorCode {
	if frame.Data == nil || packet == nil || packet.Data == nil {
		return wire.ErrInvalidParameter
	}

	outCapacity := packet.Len
	if outCapacity < 2 {
		return wire.ErrInvalidParameter
	}

	crc := wire.CRC32ISOHDLC(frame.Bytes())
	var crcBytes [4]byte
	crcBytes[0] = byte(crc >> 24)
	crcBytes[1] = byte(crc >> 16)
	crcBytes[2] = byte(crc >> 8)
	crcBytes[3] = byte(crc)

	encodedLen, ok := wire.EncodeTwo(frame.Bytes(), crcBytes[:], packet.Data[:outCapacity])
	if !ok {
		return wire.ErrInvalidParameter
	}

	if encodedLen >= outCapacity {
		return wire.ErrInvalidParameter
	}
	packet.Data[encodedLen] = 0x00
	packet.Len = encodedLen + 1
	return wire.OK
}

// ProcessByte processes one incoming byte from the transport. When a
// complete packet is received (the 0x00 delimiter), the packet is
// COBS-decoded in place, its CRC is verified, and the registered callback
// is invoked with the decoded frame.
//
// Any error resets the receive buffer before returning, so the Framer is
// always resynchronized on the next delimiter regardless of what kind of
// error occurred.
func (f *Framer) ProcessByte(b byte) wire.ErrorCode {
	if b == 0x00 {
		if f.rxIndex == 0 {
			return wire.OK
		}

		decodedLen, ok := wire.DecodeInPlace(f.rxBuffer[:f.rxIndex])
		f.rxIndex = 0
		if !ok {
			return wire.ErrCobsDecodeFailed
		}

		if decodedLen < 4 {
			return wire.ErrFrameHeaderSize
		}

		frameLen := decodedLen - 4
		receivedCRC := uint32(f.rxBuffer[frameLen])<<24 | uint32(f.rxBuffer[frameLen+1])<<16 |
			uint32(f.rxBuffer[frameLen+2])<<8 | uint32(f.rxBuffer[frameLen+3])
		computedCRC := wire.CRC32ISOHDLC(f.rxBuffer[:frameLen])
		if receivedCRC != computedCRC {
			return wire.ErrCrcMismatch
		}

		if f.onPacket == nil {
			return wire.OK
		}
		return f.onPacket(wire.Span{Data: f.rxBuffer[:frameLen], Len: frameLen})
	}

	if f.rxIndex >= f.maxPacketSize {
		f.rxIndex = 0
		return wire.ErrFrameTooLarge
	}

	f.rxBuffer[f.rxIndex] = b
	f.rxIndex++
	return wire.OK
}
