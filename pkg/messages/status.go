package messages

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"framewire/pkg/wire"
)

// StatusMsgHash is Status's application-defined schema hash.
const StatusMsgHash = 0x53544154 // "STAT"

var statusMarshal = proto.MarshalOptions{Deterministic: true}

// Status carries a free-form set of key/value fields encoded as a Protobuf
// structpb.Struct, demonstrating a router.Message backed by a well-known
// Protobuf type rather than a hand-defined one.
type Status struct {
	Fields map[string]any
}

// MsgHash implements router.Message.
func (s Status) MsgHash() uint32 { return StatusMsgHash }

// Encode implements router.Message via Protobuf.
func (s *Status) Encode(payload *wire.Span) bool {
	st, err := structpb.NewStruct(s.Fields)
	if err != nil {
		return false
	}
	b, err := statusMarshal.Marshal(st)
	if err != nil || len(b) > len(payload.Data) {
		return false
	}
	copy(payload.Data, b)
	payload.Len = len(b)
	return true
}

// Decode implements router.Message via Protobuf.
func (s *Status) Decode(payload wire.Span) bool {
	var st structpb.Struct
	if err := proto.Unmarshal(payload.Bytes(), &st); err != nil {
		return false
	}
	s.Fields = st.AsMap()
	return true
}
