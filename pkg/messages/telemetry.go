package messages

import (
	cbor "github.com/fxamacker/cbor/v2"

	"framewire/pkg/wire"
)

// TelemetryMsgHash is Telemetry's application-defined schema hash.
const TelemetryMsgHash = 0x54454c45 // "TELE"

// telemetryEnc/telemetryDec are shared across Encode/Decode calls; building
// the canonical CBOR mode is fallible (it validates the core profile
// options), so it happens once here rather than on every call.
var telemetryEnc = mustCBOREncMode()
var telemetryDec = mustCBORDecMode()

func mustCBOREncMode() cbor.EncMode {
	m, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return m
}

func mustCBORDecMode() cbor.DecMode {
	m, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		panic(err)
	}
	return m
}

// Telemetry is a sensor sample encoded with CBOR's canonical core profile
// rather than the canonical scalar marshaller, demonstrating a
// schema-flexible router.Message.
type Telemetry struct {
	NodeName    string
	Temperature float32
	Humidity    float32
}

// MsgHash implements router.Message.
func (t Telemetry) MsgHash() uint32 { return TelemetryMsgHash }

// Encode implements router.Message via CBOR.
func (t *Telemetry) Encode(payload *wire.Span) bool {
	b, err := telemetryEnc.Marshal(t)
	if err != nil || len(b) > len(payload.Data) {
		return false
	}
	copy(payload.Data, b)
	payload.Len = len(b)
	return true
}

// Decode implements router.Message via CBOR.
func (t *Telemetry) Decode(payload wire.Span) bool {
	return telemetryDec.Unmarshal(payload.Bytes(), t) == nil
}
