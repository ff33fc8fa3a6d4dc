// Package node integrates a framer.Framer and a router.Router with a
// user-provided transport.Transport. Node is the primary entry point for
// application usage:
//
//   - RX: drain bytes from the transport, feed them into the framer, and
//     dispatch complete frames via the router.
//   - TX: build a frame via the router, wrap it into a packet via the
//     framer, then write it to the transport.
package node

import (
	"framewire/pkg/framer"
	"framewire/pkg/router"
	"framewire/pkg/transport"
	"framewire/pkg/wire"

	"go.uber.org/zap"
)

// errorTally is the subset of observability.ErrorTally that Node depends
// on, avoiding an import of pkg/observability from pkg/node.
type errorTally interface {
	Record(code wire.ErrorCode)
}

// Node binds a Transport, a Framer, and a Router. Construct with NewNode,
// register handlers on Router(), then call Poll() periodically and Publish
// to transmit.
//
// Poll is not safe to call re-entrantly from inside a handler; Publish is
// not re-entrant.
type Node struct {
	transport transport.Transport
	framer    *framer.Framer
	router    *router.Router
	log       *zap.Logger
	tally     errorTally

	maxFrameSize  int
	maxPacketSize int

	// txFrame and packetScratch back Publish. payloadScratch is distinct
	// from packetScratch so PublishTyped's encode step can never be
	// clobbered by Publish's own packet construction.
	txFrame        []byte
	packetScratch  []byte
	payloadScratch []byte
}

// Option configures a Node at construction time.
type Option func(*Node)

// WithLogger attaches a *zap.Logger used to log non-fatal framing/dispatch
// errors for diagnostics. It is never consulted when deciding the
// wire.ErrorCode Poll or Publish return. The default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(n *Node) { n.log = log }
}

// WithErrorTally attaches a counter that records each non-OK wire.ErrorCode
// seen during Poll, keyed by code, for periodic diagnostic reporting
// (observability.ErrorTally.LogAndReset) rather than per-byte logging.
func WithErrorTally(t errorTally) Option {
	return func(n *Node) { n.tally = t }
}

// NewNode constructs a Node bound to transport, sized for maxPayloadSize
// bytes of payload and maxHandlers router handler slots, expecting frames
// whose version byte equals expectedVersion. It wires the framer's callback
// to the router's OnPacket.
func NewNode(transport transport.Transport, maxPayloadSize, maxHandlers int, expectedVersion byte, opts ...Option) *Node {
	maxFrameSize := wire.MaxFrameSize(maxPayloadSize)
	maxPacketSize := wire.MaxPacketSize(maxPayloadSize)

	r := router.NewRouter(maxHandlers, expectedVersion)
	f := framer.NewFramer(maxPacketSize)
	f.RegisterCallback(r.OnPacket)

	n := &Node{
		transport:      transport,
		framer:         f,
		router:         r,
		log:            zap.NewNop(),
		maxFrameSize:   maxFrameSize,
		maxPacketSize:  maxPacketSize,
		txFrame:        make([]byte, maxFrameSize),
		packetScratch:  make([]byte, maxPacketSize),
		payloadScratch: make([]byte, maxPayloadSize),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Router returns the Router backing this Node, for handler registration.
func (n *Node) Router() *router.Router { return n.router }

// Poll drains available bytes from the transport and feeds them into the
// framer. It returns the number of errors encountered (framing, CRC, or
// dispatch); it never aborts early on error.
func (n *Node) Poll() int {
	errors := 0
	for {
		b, ok := n.transport.Read()
		if !ok {
			break
		}
		if code := n.framer.ProcessByte(b); code != wire.OK {
			errors++
			n.log.Debug("framewire: poll error", zap.String("code", code.Error()))
			if n.tally != nil {
				n.tally.Record(code)
			}
		}
	}
	return errors
}

// Publish builds a frame from msgID/msgHash/payload, wraps it into a
// packet, and writes it to the transport.
func (n *Node) Publish(msgID byte, msgHash uint32, payload wire.Span) wire.ErrorCode {
	frame := wire.Span{Data: n.txFrame, Len: n.maxFrameSize}
	if code := n.router.BuildFrame(msgID, msgHash, payload, &frame); code != wire.OK {
		return code
	}

	packet := wire.Span{Data: n.packetScratch, Len: n.maxPacketSize}
	if code := n.framer.CreatePacket(frame, &packet); code != wire.OK {
		return code
	}

	if !n.transport.Write(packet.Bytes()) {
		return wire.ErrTransportError
	}
	return wire.OK
}

// PublishTyped encodes msg into Node's payload scratch buffer and publishes
// it under msgID with msg's own MsgHash.
func PublishTyped[M router.Message](n *Node, msgID byte, msg M) wire.ErrorCode {
	payload := wire.Span{Data: n.payloadScratch, Len: len(n.payloadScratch)}
	if !msg.Encode(&payload) {
		return wire.ErrInvalidParameter
	}
	return n.Publish(msgID, msg.MsgHash(), payload)
}
