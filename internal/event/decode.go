package event

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedFrame is returned for frames that are not valid JSON.
var ErrMalformedFrame = errors.New("malformed event frame")

// Envelope fields every known kind must carry.
var envelopeRequired = []string{"application", "timestamp"}

type payloadDecoder func(data []byte) (Payload, error)

type kindEntry struct {
	decode   payloadDecoder
	required []string
}

func payloadOf[P Payload](data []byte) (Payload, error) {
	var p P
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return p, nil
}

// catalogue maps each known kind to its payload decoder and the top-level
// fields that must be present and non-null.
var catalogue = map[Kind]kindEntry{
	KindApplicationMoveFailed:    {payloadOf[ApplicationMoveFailed], []string{"channel", "destination", "args"}},
	KindApplicationReplaced:      {payloadOf[ApplicationReplaced], nil},
	KindBridgeAttendedTransfer:   {payloadOf[BridgeAttendedTransfer], []string{"transferer_first_leg", "transferer_second_leg", "result", "is_external", "destination_type"}},
	KindBridgeBlindTransfer:      {payloadOf[BridgeBlindTransfer], []string{"channel", "exten", "context", "result", "is_external"}},
	KindBridgeCreated:            {payloadOf[BridgeCreated], []string{"bridge"}},
	KindBridgeDestroyed:          {payloadOf[BridgeDestroyed], []string{"bridge"}},
	KindBridgeMerged:             {payloadOf[BridgeMerged], []string{"bridge", "bridge_from"}},
	KindBridgeVideoSourceChanged: {payloadOf[BridgeVideoSourceChanged], []string{"bridge"}},
	KindChannelCallerID:          {payloadOf[ChannelCallerID], []string{"caller_presentation", "caller_presentation_txt", "channel"}},
	KindChannelConnectedLine:     {payloadOf[ChannelConnectedLine], []string{"channel"}},
	KindChannelCreated:           {payloadOf[ChannelCreated], []string{"channel"}},
	KindChannelDestroyed:         {payloadOf[ChannelDestroyed], []string{"cause", "cause_txt", "channel"}},
	KindChannelDialplan:          {payloadOf[ChannelDialplan], []string{"channel", "dialplan_app", "dialplan_app_data"}},
	KindChannelDtmfReceived:      {payloadOf[ChannelDtmfReceived], []string{"digit", "duration_ms", "channel"}},
	KindChannelEnteredBridge:     {payloadOf[ChannelEnteredBridge], []string{"bridge"}},
	KindChannelHangupRequest:     {payloadOf[ChannelHangupRequest], []string{"cause", "channel"}},
	KindChannelHold:              {payloadOf[ChannelHold], []string{"channel"}},
	KindChannelLeftBridge:        {payloadOf[ChannelLeftBridge], []string{"bridge", "channel"}},
	KindChannelStateChange:       {payloadOf[ChannelStateChange], []string{"channel"}},
	KindChannelTalkingFinished:   {payloadOf[ChannelTalkingFinished], []string{"channel", "duration"}},
	KindChannelTalkingStarted:    {payloadOf[ChannelTalkingStarted], []string{"channel"}},
	KindChannelToneDetected:      {payloadOf[ChannelToneDetected], []string{"channel"}},
	KindChannelUnhold:            {payloadOf[ChannelUnhold], []string{"channel"}},
	KindChannelUserevent:         {payloadOf[ChannelUserevent], []string{"eventname"}},
	KindChannelVarset:            {payloadOf[ChannelVarset], []string{"variable", "value"}},
	KindContactInfo:              {payloadOf[ContactInfo], []string{"uri", "contact_status", "aor"}},
	KindContactStatusChange:      {payloadOf[ContactStatusChange], []string{"endpoint", "contact_info"}},
	KindDeviceStateChanged:       {payloadOf[DeviceStateChanged], []string{"device_state"}},
	KindDial:                     {payloadOf[Dial], []string{"dialstatus"}},
	KindEndpointStateChange:      {payloadOf[EndpointStateChange], []string{"endpoint"}},
	KindMissingParams:            {payloadOf[MissingParams], []string{"params"}},
	KindPeer:                     {payloadOf[Peer], []string{"peer_status"}},
	KindPeerStatusChange:         {payloadOf[PeerStatusChange], []string{"endpoint", "peer"}},
	KindPlaybackContinuing:       {payloadOf[PlaybackContinuing], []string{"playback"}},
	KindPlaybackFinished:         {payloadOf[PlaybackFinished], []string{"playback"}},
	KindPlaybackStarted:          {payloadOf[PlaybackStarted], []string{"playback"}},
	KindRecordingFailed:          {payloadOf[RecordingFailed], []string{"recording"}},
	KindRecordingFinished:        {payloadOf[RecordingFinished], []string{"recording"}},
	KindRecordingStarted:         {payloadOf[RecordingStarted], []string{"recording"}},
	KindStasisEnd:                {payloadOf[StasisEnd], []string{"channel"}},
	KindStasisStart:              {payloadOf[StasisStart], []string{"args", "channel"}},
	KindTextMessageReceived:      {payloadOf[TextMessageReceived], []string{"message"}},
}

// Decode parses a text frame into an Event.
//
// Only frames that are not JSON at all return an error (ErrMalformedFrame).
// Any other frame yields an Event; frames that do not match a known kind
// carry an Unknown payload with Raw set to the frame.
func Decode(data []byte) (Event, error) {
	data = bytes.TrimSpace(data)
	if !json.Valid(data) {
		return Event{}, fmt.Errorf("%w: invalid JSON", ErrMalformedFrame)
	}

	raw := make(json.RawMessage, len(data))
	copy(raw, data)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return unknown(raw, Envelope{}, "not a JSON object"), nil
	}

	// The envelope is decoded leniently so that Unknown events still carry
	// whatever metadata the frame had.
	env := lenientEnvelope(fields)

	if env.Type == "" {
		return unknown(raw, env, "missing type"), nil
	}

	entry, ok := catalogue[Kind(env.Type)]
	if !ok {
		return unknown(raw, env, ""), nil
	}

	if missing := missingFields(fields, envelopeRequired, entry.required); len(missing) > 0 {
		return unknown(raw, env, "missing "+strings.Join(missing, ", ")), nil
	}

	var strict Envelope
	if err := json.Unmarshal(raw, &strict); err != nil {
		return unknown(raw, env, err.Error()), nil
	}

	payload, err := entry.decode(raw)
	if err != nil {
		return unknown(raw, env, err.Error()), nil
	}

	return Event{Envelope: strict, Payload: payload, Raw: raw}, nil
}

func unknown(raw json.RawMessage, env Envelope, reason string) Event {
	return Event{
		Envelope: env,
		Payload:  Unknown{Raw: raw, Reason: reason},
		Raw:      raw,
	}
}

func lenientEnvelope(fields map[string]json.RawMessage) Envelope {
	var env Envelope
	decodeString(fields["type"], &env.Type)
	decodeString(fields["asterisk_id"], &env.AsteriskID)
	decodeString(fields["application"], &env.Application)
	if ts, ok := fields["timestamp"]; ok {
		_ = json.Unmarshal(ts, &env.Timestamp)
	}
	return env
}

func decodeString(data json.RawMessage, dst *string) {
	if len(data) == 0 {
		return
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*dst = s
	}
}

func missingFields(fields map[string]json.RawMessage, groups ...[]string) []string {
	var missing []string
	for _, group := range groups {
		for _, name := range group {
			v, ok := fields[name]
			if !ok || bytes.Equal(v, []byte("null")) {
				missing = append(missing, name)
			}
		}
	}
	return missing
}
