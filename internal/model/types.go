package model

import "encoding/json"

// -----------------------------------------------------------------------------
// Channels
// -----------------------------------------------------------------------------

// ChannelState is the state of a channel.
type ChannelState string

const (
	ChannelStateDown           ChannelState = "Down"
	ChannelStateRsrved         ChannelState = "Rsrved"
	ChannelStateReserved       ChannelState = "Reserved"
	ChannelStateOffHook        ChannelState = "OffHook"
	ChannelStateDialing        ChannelState = "Dialing"
	ChannelStateRing           ChannelState = "Ring"
	ChannelStateRinging        ChannelState = "Ringing"
	ChannelStateUp             ChannelState = "Up"
	ChannelStateBusy           ChannelState = "Busy"
	ChannelStateDialingOffhook ChannelState = "Dialing Offhook"
	ChannelStatePreRing        ChannelState = "Pre-ring"
	ChannelStateUnknown        ChannelState = "Unknown"
)

// CallerID is a caller identification.
type CallerID struct {
	Name   string `json:"name"`
	Number string `json:"number"`
}

// Dialplan is a dialplan location (context, extension, priority).
type Dialplan struct {
	Context  string  `json:"context"`
	Exten    string  `json:"exten"`
	Priority float64 `json:"priority"`
	AppName  string  `json:"app_name"`
	AppData  string  `json:"app_data,omitempty"`
}

// Channel is a snapshot of a call leg.
type Channel struct {
	ID           string            `json:"id"`
	ProtocolID   string            `json:"protocol_id,omitempty"`
	Name         string            `json:"name"`
	State        ChannelState      `json:"state"`
	Caller       CallerID          `json:"caller"`
	Connected    CallerID          `json:"connected"`
	AccountCode  string            `json:"accountcode"`
	Dialplan     Dialplan          `json:"dialplan"`
	CreationTime Timestamp         `json:"creationtime"`
	Language     string            `json:"language"`
	ChannelVars  map[string]string `json:"channelvars,omitempty"`
	CallerRDNIS  string            `json:"caller_rdnis,omitempty"`
	TenantID     string            `json:"tenantid,omitempty"`
}

// -----------------------------------------------------------------------------
// Bridges
// -----------------------------------------------------------------------------

// BridgeType is the mixing behaviour of a bridge.
type BridgeType string

const (
	BridgeTypeMixing      BridgeType = "mixing"
	BridgeTypeHolding     BridgeType = "holding"
	BridgeTypeDTMFEvents  BridgeType = "dtmf_events"
	BridgeTypeProxyMedia  BridgeType = "proxy_media"
	BridgeTypeVideoSFU    BridgeType = "video_sfu"
	BridgeTypeVideoSingle BridgeType = "video_single"
	BridgeTypeSDPLabel    BridgeType = "sdp_label"
)

// VideoMode is the video source selection mode of a bridge.
type VideoMode string

const (
	VideoModeNone   VideoMode = "none"
	VideoModeTalker VideoMode = "talker"
	VideoModeSFU    VideoMode = "sfu"
	VideoModeSingle VideoMode = "single"
)

// Bridge is a snapshot of a mixing bridge.
type Bridge struct {
	ID            string     `json:"id"`
	Technology    string     `json:"technology"`
	BridgeType    BridgeType `json:"bridge_type"`
	BridgeClass   string     `json:"bridge_class"`
	Creator       string     `json:"creator"`
	Name          string     `json:"name"`
	Channels      []string   `json:"channels"`
	VideoMode     VideoMode  `json:"video_mode,omitempty"`
	VideoSourceID string     `json:"video_source_id,omitempty"`
	CreationTime  Timestamp  `json:"creationtime"`
}

// -----------------------------------------------------------------------------
// Endpoints
// -----------------------------------------------------------------------------

// EndpointState is the reachability of an endpoint.
type EndpointState string

const (
	EndpointStateUnknown EndpointState = "unknown"
	EndpointStateOffline EndpointState = "offline"
	EndpointStateOnline  EndpointState = "online"
)

// Endpoint is a snapshot of an external device.
type Endpoint struct {
	Technology string        `json:"technology"`
	Resource   string        `json:"resource"`
	State      EndpointState `json:"state,omitempty"`
	ChannelIDs []string      `json:"channel_ids"`
}

// TextMessage is an out-of-call text message.
type TextMessage struct {
	From      string            `json:"from,omitempty"`
	To        string            `json:"to,omitempty"`
	Body      string            `json:"body,omitempty"`
	Variables map[string]string `json:"variables,omitempty"`
}

// ContactInfo describes a contact on an endpoint.
type ContactInfo struct {
	URI           string `json:"uri"`
	ContactStatus string `json:"contact_status"`
	AOR           string `json:"aor"`
	RoundtripUsec string `json:"roundtrip_usec,omitempty"`
}

// Peer describes a remote peer that communicates with Asterisk.
type Peer struct {
	PeerStatus string `json:"peer_status"`
	Cause      string `json:"cause,omitempty"`
	Address    string `json:"address,omitempty"`
	Port       string `json:"port,omitempty"`
	Time       string `json:"time,omitempty"`
}

// -----------------------------------------------------------------------------
// Media
// -----------------------------------------------------------------------------

// PlaybackState is the state of a playback operation.
type PlaybackState string

const (
	PlaybackStateQueued     PlaybackState = "queued"
	PlaybackStatePlaying    PlaybackState = "playing"
	PlaybackStateContinuing PlaybackState = "continuing"
	PlaybackStateDone       PlaybackState = "done"
	PlaybackStateFailed     PlaybackState = "failed"
)

// Playback is a snapshot of a media playback operation.
type Playback struct {
	ID           string        `json:"id,omitempty"`
	MediaURI     string        `json:"media_uri,omitempty"`
	NextMediaURI string        `json:"next_media_uri,omitempty"`
	TargetURI    string        `json:"target_uri,omitempty"`
	Language     string        `json:"language,omitempty"`
	State        PlaybackState `json:"state"`
}

// RecordingState is the state of a live recording.
type RecordingState string

const (
	RecordingStateRecording RecordingState = "recording"
	RecordingStatePaused    RecordingState = "paused"
	RecordingStateDone      RecordingState = "done"
	RecordingStateFailed    RecordingState = "failed"
)

// LiveRecording is a snapshot of an in-progress or finished recording.
type LiveRecording struct {
	Name            string         `json:"name"`
	Format          string         `json:"format"`
	TargetURI       string         `json:"target_uri"`
	State           RecordingState `json:"state"`
	Duration        *int           `json:"duration,omitempty"`
	TalkingDuration *int           `json:"talking_duration,omitempty"`
	SilenceDuration *int           `json:"silence_duration,omitempty"`
	Cause           string         `json:"cause,omitempty"`
}

// -----------------------------------------------------------------------------
// Device state
// -----------------------------------------------------------------------------

// DeviceStateValue is the state of a device.
type DeviceStateValue string

const (
	DeviceUnknown     DeviceStateValue = "UNKNOWN"
	DeviceNotInUse    DeviceStateValue = "NOT_INUSE"
	DeviceInUse       DeviceStateValue = "INUSE"
	DeviceBusy        DeviceStateValue = "BUSY"
	DeviceInvalid     DeviceStateValue = "INVALID"
	DeviceUnavailable DeviceStateValue = "UNAVAILABLE"
	DeviceRinging     DeviceStateValue = "RINGING"
	DeviceRingInUse   DeviceStateValue = "RINGINUSE"
	DeviceOnHold      DeviceStateValue = "ONHOLD"
)

// DeviceState is a snapshot of a custom device state.
type DeviceState struct {
	Name  string           `json:"name"`
	State DeviceStateValue `json:"state"`
}

// -----------------------------------------------------------------------------
// Server
// -----------------------------------------------------------------------------

// AsteriskPing is the response of GET /asterisk/ping.
type AsteriskPing struct {
	AsteriskID string    `json:"asterisk_id"`
	Ping       string    `json:"ping"`
	Timestamp  Timestamp `json:"timestamp"`
}

// AsteriskInfo is the response of GET /asterisk/info. Sections are kept raw.
type AsteriskInfo struct {
	Build  json.RawMessage `json:"build,omitempty"`
	System json.RawMessage `json:"system,omitempty"`
	Config json.RawMessage `json:"config,omitempty"`
	Status json.RawMessage `json:"status,omitempty"`
}

// Application is a Stasis application registered on the server.
type Application struct {
	Name             string            `json:"name"`
	ChannelIDs       []string          `json:"channel_ids"`
	BridgeIDs        []string          `json:"bridge_ids"`
	EndpointIDs      []string          `json:"endpoint_ids"`
	DeviceNames      []string          `json:"device_names"`
	EventsAllowed    []json.RawMessage `json:"events_allowed,omitempty"`
	EventsDisallowed []json.RawMessage `json:"events_disallowed,omitempty"`
}
