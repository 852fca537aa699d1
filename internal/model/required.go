package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

var jsonNull = []byte("null")

// MissingFieldsError reports required fields that were absent or null in a
// decoded object.
type MissingFieldsError struct {
	Object string
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("%s: missing %s", e.Object, strings.Join(e.Fields, ", "))
}

// Required fields per object, as Asterisk always sends them.
var (
	channelRequired     = []string{"id", "name", "state", "caller", "connected", "accountcode", "dialplan", "creationtime", "language"}
	callerIDRequired    = []string{"name", "number"}
	dialplanRequired    = []string{"context", "exten", "priority", "app_name"}
	bridgeRequired      = []string{"id", "technology", "bridge_type", "bridge_class", "creator", "name", "channels", "creationtime"}
	endpointRequired    = []string{"technology", "resource", "channel_ids"}
	contactInfoRequired = []string{"uri", "contact_status", "aor"}
	peerRequired        = []string{"peer_status"}
	playbackRequired    = []string{"state"}
	recordingRequired   = []string{"name", "format", "target_uri", "state"}
	deviceStateRequired = []string{"name", "state"}
)

// requireFields checks that data is a JSON object carrying every name with a
// non-null value.
func requireFields(object string, data []byte, names []string) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("%s: %w", object, err)
	}

	var missing []string
	for _, name := range names {
		if v, ok := fields[name]; !ok || bytes.Equal(v, jsonNull) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Object: object, Fields: missing}
	}
	return nil
}

// UnmarshalJSON rejects channels missing any required field.
func (c *Channel) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, jsonNull) {
		return nil
	}
	if err := requireFields("channel", data, channelRequired); err != nil {
		return err
	}
	type plain Channel
	return json.Unmarshal(data, (*plain)(c))
}

func (c *CallerID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, jsonNull) {
		return nil
	}
	if err := requireFields("caller id", data, callerIDRequired); err != nil {
		return err
	}
	type plain CallerID
	return json.Unmarshal(data, (*plain)(c))
}

func (d *Dialplan) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, jsonNull) {
		return nil
	}
	if err := requireFields("dialplan", data, dialplanRequired); err != nil {
		return err
	}
	type plain Dialplan
	return json.Unmarshal(data, (*plain)(d))
}

func (b *Bridge) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, jsonNull) {
		return nil
	}
	if err := requireFields("bridge", data, bridgeRequired); err != nil {
		return err
	}
	type plain Bridge
	return json.Unmarshal(data, (*plain)(b))
}

func (e *Endpoint) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, jsonNull) {
		return nil
	}
	if err := requireFields("endpoint", data, endpointRequired); err != nil {
		return err
	}
	type plain Endpoint
	return json.Unmarshal(data, (*plain)(e))
}

func (c *ContactInfo) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, jsonNull) {
		return nil
	}
	if err := requireFields("contact info", data, contactInfoRequired); err != nil {
		return err
	}
	type plain ContactInfo
	return json.Unmarshal(data, (*plain)(c))
}

func (p *Peer) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, jsonNull) {
		return nil
	}
	if err := requireFields("peer", data, peerRequired); err != nil {
		return err
	}
	type plain Peer
	return json.Unmarshal(data, (*plain)(p))
}

// UnmarshalJSON requires only the state; a playback reported before it has
// been assigned an id is still valid.
func (p *Playback) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, jsonNull) {
		return nil
	}
	if err := requireFields("playback", data, playbackRequired); err != nil {
		return err
	}
	type plain Playback
	return json.Unmarshal(data, (*plain)(p))
}

func (r *LiveRecording) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, jsonNull) {
		return nil
	}
	if err := requireFields("recording", data, recordingRequired); err != nil {
		return err
	}
	type plain LiveRecording
	return json.Unmarshal(data, (*plain)(r))
}

func (d *DeviceState) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, jsonNull) {
		return nil
	}
	if err := requireFields("device state", data, deviceStateRequired); err != nil {
		return err
	}
	type plain DeviceState
	return json.Unmarshal(data, (*plain)(d))
}
