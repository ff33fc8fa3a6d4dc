package transport

// Transport is the minimal capability a byte link must provide for
// node.Node to use it.
//
// Read is non-blocking: it returns true and sets b when a byte is
// available, false when no more bytes are available right now.
//
// Write is all-or-nothing: it returns true only if every byte in data was
// written.
type Transport interface {
	Read() (b byte, ok bool)
	Write(data []byte) bool
}
