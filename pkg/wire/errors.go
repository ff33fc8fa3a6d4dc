package wire

// ErrorCode is the stable, testable error taxonomy shared by the Framer,
// Router, and Node. It implements the error interface so callers can use
// it directly with errors.Is/errors.As, and it is a cheap, allocation-free
// sentinel value suitable for the hot path where fmt.Errorf strings are not.
type ErrorCode uint8

const (
	// OK indicates success.
	OK ErrorCode = iota
	// ErrFrameTooLarge indicates a receive buffer overflow (>MaxPacketSize
	// bytes accumulated between delimiters).
	ErrFrameTooLarge
	// ErrCobsDecodeFailed indicates invalid COBS encoding: a zero byte in
	// the body, or a truncated final run.
	ErrCobsDecodeFailed
	// ErrCrcMismatch indicates the CRC check failed after a successful
	// COBS decode.
	ErrCrcMismatch
	// ErrFrameHeaderSize indicates a decoded frame shorter than the 8-byte
	// header.
	ErrFrameHeaderSize
	// ErrMsgVersionMismatch indicates the frame's version byte does not
	// match the Router's expected version. It is also returned for a
	// typed-handler schema-hash mismatch, so the external error contract
	// stays stable regardless of which check rejected the frame.
	ErrMsgVersionMismatch
	// ErrMsgIdUnknown indicates no handler is registered for the frame's
	// msg_id.
	ErrMsgIdUnknown
	// ErrMsgLengthMismatch indicates the frame's len field disagrees with
	// its actual payload size.
	ErrMsgLengthMismatch
	// ErrInvalidParameter indicates a null/empty pointer, a capacity too
	// small for the operation, a full handler table, or a rejected decode.
	ErrInvalidParameter
	// ErrTransportError indicates transport.Write returned false.
	ErrTransportError
	// ErrMsgHashMismatch is a dedicated, distinct error kind for a
	// typed-handler schema-hash mismatch. Router's typed dispatch path
	// returns ErrMsgVersionMismatch instead, not this value; it exists so
	// callers that want to name the condition explicitly have a value to
	// compare against.
	ErrMsgHashMismatch
)

var errorText = [...]string{
	OK:                    "ok",
	ErrFrameTooLarge:      "frame too large",
	ErrCobsDecodeFailed:   "cobs decode failed",
	ErrCrcMismatch:        "crc mismatch",
	ErrFrameHeaderSize:    "frame shorter than header",
	ErrMsgVersionMismatch: "message version mismatch",
	ErrMsgIdUnknown:       "unknown message id",
	ErrMsgLengthMismatch:  "message length mismatch",
	ErrInvalidParameter:   "invalid parameter",
	ErrTransportError:     "transport error",
	ErrMsgHashMismatch:    "message hash mismatch",
}

// Error implements the error interface. OK.Error() still returns a
// descriptive string; callers check for success with "== wire.OK", not
// by treating the zero value as a nil error.
func (e ErrorCode) Error() string {
	if int(e) < len(errorText) {
		return errorText[e]
	}
	return "unknown error"
}
