package wire

import "encoding/binary"

// Header is the logical frame record: version(1) | msg_id(1) | msg_hash(4)
// | len(2), followed by len bytes of opaque payload. All multi-byte fields
// are big-endian.
type Header struct {
	Version    byte
	MsgID      byte
	MsgHash    uint32
	PayloadLen uint16
}

// MarshalInto writes the 8-byte header into buf, which must have length at
// least FrameHeaderSize.
func (h Header) MarshalInto(buf []byte) {
	buf[0] = h.Version
	buf[1] = h.MsgID
	binary.BigEndian.PutUint32(buf[2:6], h.MsgHash)
	binary.BigEndian.PutUint16(buf[6:8], h.PayloadLen)
}

// UnmarshalHeader reads an 8-byte header from buf, which must have length at
// least FrameHeaderSize.
func UnmarshalHeader(buf []byte) Header {
	return Header{
		Version:    buf[0],
		MsgID:      buf[1],
		MsgHash:    binary.BigEndian.Uint32(buf[2:6]),
		PayloadLen: binary.BigEndian.Uint16(buf[6:8]),
	}
}
