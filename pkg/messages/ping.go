// Package messages provides example router.Message implementations
// exercising the canonical scalar marshaller and the optional codecs: Ping
// uses wire.Writer/wire.Reader directly, Telemetry uses CBOR, and Status
// uses Protobuf's structpb.Struct.
package messages

import "framewire/pkg/wire"

// PingMsgHash is Ping's application-defined schema hash.
const PingMsgHash = 0x50494e47 // "PING"

// Ping is a minimal liveness probe: a sequence number and a send timestamp
// in milliseconds since the Unix epoch.
type Ping struct {
	Seq      uint32
	SentAtMs uint64
}

// MsgHash implements router.Message.
func (p Ping) MsgHash() uint32 { return PingMsgHash }

// Encode implements router.Message using the canonical scalar marshaller.
func (p *Ping) Encode(payload *wire.Span) bool {
	w := wire.NewWriter(payload.Data)
	if !w.WriteU32(p.Seq) || !w.WriteU64(p.SentAtMs) {
		return false
	}
	payload.Len = w.BytesWritten()
	return true
}

// Decode implements router.Message using the canonical scalar marshaller.
func (p *Ping) Decode(payload wire.Span) bool {
	r := wire.NewReader(payload.Bytes())
	seq, ok := r.ReadU32()
	if !ok {
		return false
	}
	sentAt, ok := r.ReadU64()
	if !ok || !r.FullyConsumed() {
		return false
	}
	p.Seq = seq
	p.SentAtMs = sentAt
	return true
}
