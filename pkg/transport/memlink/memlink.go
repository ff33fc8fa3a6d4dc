// Package memlink implements an in-memory duplex byte link, used by tests
// and the demo command in place of a concrete transport adapter.
//
// A Link has two Endpoints, A and B; bytes written to A are read from B and
// vice versa. Each Endpoint implements transport.Transport.
package memlink

import "framewire/pkg/transport"

// Link is a bidirectional in-memory byte link between two endpoints.
type Link struct {
	aToB chan byte
	bToA chan byte
}

// New creates a Link with the given per-direction buffer capacity.
func New(capacity int) *Link {
	return &Link{
		aToB: make(chan byte, capacity),
		bToA: make(chan byte, capacity),
	}
}

// EndpointA returns the A side of the link: writes go to B, reads come
// from B.
func (l *Link) EndpointA() *Endpoint {
	return &Endpoint{in: l.bToA, out: l.aToB}
}

// EndpointB returns the B side of the link: writes go to A, reads come
// from A.
func (l *Link) EndpointB() *Endpoint {
	return &Endpoint{in: l.aToB, out: l.bToA}
}

// Endpoint is one side of a Link. It implements transport.Transport.
type Endpoint struct {
	in  chan byte
	out chan byte
}

var _ transport.Transport = (*Endpoint)(nil)

// Read is non-blocking: it returns the next available byte, or false if
// none is available right now.
func (e *Endpoint) Read() (byte, bool) {
	select {
	case b := <-e.in:
		return b, true
	default:
		return 0, false
	}
}

// Write is all-or-nothing: if the outbound buffer cannot hold every byte of
// data, no bytes are written and Write returns false.
func (e *Endpoint) Write(data []byte) bool {
	if len(data) > cap(e.out)-len(e.out) {
		return false
	}
	for _, b := range data {
		e.out <- b
	}
	return true
}
