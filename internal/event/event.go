package event

import (
	"encoding/json"

	"github.com/rickgao/ari-events/internal/model"
)

// Envelope holds the fields every event carries.
type Envelope struct {
	Type        string          `json:"type"`
	AsteriskID  string          `json:"asterisk_id,omitempty"`
	Application string          `json:"application"`
	Timestamp   model.Timestamp `json:"timestamp"`
}

// Payload is the kind-specific part of an event.
type Payload interface {
	Kind() Kind
}

// Event is a decoded frame.
type Event struct {
	Envelope
	Payload Payload

	// Raw is the frame as received.
	Raw json.RawMessage
}

// Kind returns the payload kind, or KindUnknown when no payload is set.
func (e Event) Kind() Kind {
	if e.Payload == nil {
		return KindUnknown
	}
	return e.Payload.Kind()
}

// IsUnknown reports whether the frame did not match a known kind.
func (e Event) IsUnknown() bool {
	return e.Kind() == KindUnknown
}

// Unknown carries a frame that did not match any known kind.
type Unknown struct {
	// Raw is the original JSON value.
	Raw json.RawMessage

	// Reason says why the frame was not classified. Empty for an
	// unrecognised type.
	Reason string
}

func (Unknown) Kind() Kind { return KindUnknown }
