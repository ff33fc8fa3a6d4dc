// Package router builds and parses protocol frames and dispatches payloads
// by msg_id.
//
// Frame format (logical): version(1) | msg_id(1) | msg_hash(4) | len(2) |
// payload(len). Multi-byte fields are big-endian. msg_hash is an
// application-defined schema hash; Router treats it as opaque and passes it
// through to handlers.
//
// Router assumes incoming frames have already passed CRC validation,
// typically performed by a framer.Framer feeding OnPacket as its callback.
package router

import "framewire/pkg/wire"

// Message is the capability a type must implement to be used with
// RegisterTypedHandler and PublishTyped.
type Message interface {
	// MsgHash returns the application-defined schema hash for this message
	// type. It is compared against the frame's msg_hash on typed dispatch.
	MsgHash() uint32
	// Encode serializes the message into payload.Data, reporting the
	// written length via payload.Len. It returns false on overflow.
	Encode(payload *wire.Span) bool
	// Decode deserializes payload into the message. It returns false if
	// payload does not hold a valid encoding.
	Decode(payload wire.Span) bool
}

// RawHandler is invoked with a dispatched payload and the frame's msg_hash.
// The payload span aliases framer-owned receive storage and is only valid
// for the duration of the call.
type RawHandler func(payload wire.Span, msgHash uint32) wire.ErrorCode

type handlerSlot struct {
	used    bool
	msgID   byte
	handler RawHandler
}

// Router parses/builds frames and dispatches by msg_id using a fixed-size
// handler table, scanned linearly. maxHandlers is fixed at construction;
// Router never reallocates or grows the table.
type Router struct {
	expectedVersion byte
	handlers        []handlerSlot
}

// headerSize is the fixed frame header size: version+msg_id+msg_hash+len.
const headerSize = wire.FrameHeaderSize

// NewRouter constructs a Router with maxHandlers slots, expecting frames
// whose version byte equals expectedVersion.
func NewRouter(maxHandlers int, expectedVersion byte) *Router {
	return &Router{
		expectedVersion: expectedVersion,
		handlers:        make([]handlerSlot, maxHandlers),
	}
}

// BuildFrame writes version|msg_id|msg_hash|len|payload into outFrame.Data
// in network byte order. outFrame.Len is treated as output capacity on
// input and bytes-written on output.
func (r *Router) BuildFrame(msgID byte, msgHash uint32, payload wire.Span, outFrame *wire.Span) wire.ErrorCode {
	if outFrame == nil || outFrame.Data == nil {
		return wire.ErrInvalidParameter
	}
	if payload.Data == nil && payload.Len != 0 {
		return wire.ErrInvalidParameter
	}
	if payload.Len > 0xFFFF {
		return wire.ErrInvalidParameter
	}

	needed := headerSize + payload.Len
	if outFrame.Len < needed {
		return wire.ErrInvalidParameter
	}

	h := wire.Header{Version: r.expectedVersion, MsgID: msgID, MsgHash: msgHash, PayloadLen: uint16(payload.Len)}
	h.MarshalInto(outFrame.Data)
	copy(outFrame.Data[headerSize:needed], payload.Bytes())
	outFrame.Len = needed
	return wire.OK
}

// RegisterHandler registers a raw handler for msgID, replacing any existing
// handler for that msgID. It returns ErrInvalidParameter if the handler
// table is full.
func (r *Router) RegisterHandler(msgID byte, h RawHandler) wire.ErrorCode {
	for i := range r.handlers {
		if r.handlers[i].used && r.handlers[i].msgID == msgID {
			r.handlers[i].handler = h
			return wire.OK
		}
	}
	for i := range r.handlers {
		if !r.handlers[i].used {
			r.handlers[i] = handlerSlot{used: true, msgID: msgID, handler: h}
			return wire.OK
		}
	}
	return wire.ErrInvalidParameter
}

// MessagePtr constrains M to a pointer-to-T type implementing Message. It
// exists because most Message implementations decode into their own fields
// and therefore need a pointer receiver; `var msg M` with M itself a pointer
// type would be a nil pointer, so RegisterTypedHandler instead allocates a
// T and takes its address.
type MessagePtr[T any] interface {
	*T
	Message
}

// RegisterTypedHandler registers a type-safe handler for msgID. On dispatch
// it checks the frame's msg_hash against M's MsgHash, decodes the payload
// into a freshly allocated T, and calls h with its address.
//
// A msg_hash mismatch causes the dispatch path to return
// wire.ErrMsgVersionMismatch rather than wire.ErrMsgHashMismatch, so callers
// see one stable error for "this frame does not match what I registered"
// regardless of whether the version byte or the schema hash was wrong.
func RegisterTypedHandler[T any, M MessagePtr[T]](r *Router, msgID byte, h func(M) wire.ErrorCode) wire.ErrorCode {
	return r.RegisterHandler(msgID, func(payload wire.Span, msgHash uint32) wire.ErrorCode {
		var t T
		msg := M(&t)
		if msgHash != msg.MsgHash() {
			return wire.ErrMsgVersionMismatch
		}
		if !msg.Decode(payload) {
			return wire.ErrInvalidParameter
		}
		return h(msg)
	})
}

// OnPacket is the framer.Callback: it validates the frame header (length,
// version, declared payload length) then dispatches to the handler
// registered for the frame's msg_id.
func (r *Router) OnPacket(frame wire.Span) wire.ErrorCode {
	if frame.Data == nil {
		return wire.ErrInvalidParameter
	}
	if frame.Len < headerSize {
		return wire.ErrFrameHeaderSize
	}

	h := wire.UnmarshalHeader(frame.Data)
	if h.Version != r.expectedVersion {
		return wire.ErrMsgVersionMismatch
	}
	if frame.Len != headerSize+int(h.PayloadLen) {
		return wire.ErrMsgLengthMismatch
	}

	payload := wire.Span{Data: frame.Data[headerSize:frame.Len], Len: int(h.PayloadLen)}

	for i := range r.handlers {
		if !r.handlers[i].used || r.handlers[i].msgID != h.MsgID {
			continue
		}
		return r.handlers[i].handler(payload, h.MsgHash)
	}
	return wire.ErrMsgIdUnknown
}
