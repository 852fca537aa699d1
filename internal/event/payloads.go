package event

import (
	"encoding/json"

	"github.com/rickgao/ari-events/internal/model"
)

// -----------------------------------------------------------------------------
// Application
// -----------------------------------------------------------------------------

// ApplicationMoveFailed reports that moving a channel to another Stasis
// application failed.
type ApplicationMoveFailed struct {
	Channel     model.Channel `json:"channel"`
	Destination string        `json:"destination"`
	Args        []string      `json:"args"`
}

// ApplicationReplaced reports that another WebSocket took over the application.
type ApplicationReplaced struct{}

// MissingParams is sent when required request parameters were missing.
type MissingParams struct {
	Params []string `json:"params"`
}

// StasisStart reports a channel entering the application.
type StasisStart struct {
	Args           []string       `json:"args"`
	Channel        model.Channel  `json:"channel"`
	ReplaceChannel *model.Channel `json:"replace_channel,omitempty"`
}

// StasisEnd reports a channel leaving the application.
type StasisEnd struct {
	Channel model.Channel `json:"channel"`
}

// -----------------------------------------------------------------------------
// Bridges
// -----------------------------------------------------------------------------

// BridgeAttendedTransfer reports an attended transfer.
type BridgeAttendedTransfer struct {
	TransfererFirstLeg         model.Channel  `json:"transferer_first_leg"`
	TransfererSecondLeg        model.Channel  `json:"transferer_second_leg"`
	ReplaceChannel             *model.Channel `json:"replace_channel,omitempty"`
	Transferee                 *model.Channel `json:"transferee,omitempty"`
	TransferTarget             *model.Channel `json:"transfer_target,omitempty"`
	Result                     string         `json:"result"`
	IsExternal                 bool           `json:"is_external"`
	TransfererFirstLegBridge   *model.Bridge  `json:"transferer_first_leg_bridge,omitempty"`
	TransfererSecondLegBridge  *model.Bridge  `json:"transferer_second_leg_bridge,omitempty"`
	DestinationType            string         `json:"destination_type"`
	DestinationBridge          string         `json:"destination_bridge,omitempty"`
	DestinationApplication     string         `json:"destination_application,omitempty"`
	DestinationLinkFirstLeg    *model.Channel `json:"destination_link_first_leg,omitempty"`
	DestinationLinkSecondLeg   *model.Channel `json:"destination_link_second_leg,omitempty"`
	DestinationThreewayChannel *model.Channel `json:"destination_threeway_channel,omitempty"`
	DestinationThreewayBridge  *model.Bridge  `json:"destination_threeway_bridge,omitempty"`
}

// BridgeBlindTransfer reports a blind transfer.
type BridgeBlindTransfer struct {
	Channel        model.Channel  `json:"channel"`
	ReplaceChannel *model.Channel `json:"replace_channel,omitempty"`
	Transferee     *model.Channel `json:"transferee,omitempty"`
	Exten          string         `json:"exten"`
	Context        string         `json:"context"`
	Result         string         `json:"result"`
	IsExternal     bool           `json:"is_external"`
	Bridge         *model.Bridge  `json:"bridge,omitempty"`
}

type BridgeCreated struct {
	Bridge model.Bridge `json:"bridge"`
}

type BridgeDestroyed struct {
	Bridge model.Bridge `json:"bridge"`
}

// BridgeMerged reports that BridgeFrom was merged into Bridge.
type BridgeMerged struct {
	Bridge     model.Bridge `json:"bridge"`
	BridgeFrom model.Bridge `json:"bridge_from"`
}

type BridgeVideoSourceChanged struct {
	Bridge           model.Bridge `json:"bridge"`
	OldVideoSourceID string       `json:"old_video_source_id,omitempty"`
}

// -----------------------------------------------------------------------------
// Channels
// -----------------------------------------------------------------------------

type ChannelCallerID struct {
	CallerPresentation    int           `json:"caller_presentation"`
	CallerPresentationTxt string        `json:"caller_presentation_txt"`
	Channel               model.Channel `json:"channel"`
}

type ChannelConnectedLine struct {
	Channel model.Channel `json:"channel"`
}

type ChannelCreated struct {
	Channel model.Channel `json:"channel"`
}

// ChannelDestroyed carries the Q.850 hangup cause.
type ChannelDestroyed struct {
	Cause    int           `json:"cause"`
	CauseTxt string        `json:"cause_txt"`
	Channel  model.Channel `json:"channel"`
}

type ChannelDialplan struct {
	Channel         model.Channel `json:"channel"`
	DialplanApp     string        `json:"dialplan_app"`
	DialplanAppData string        `json:"dialplan_app_data"`
}

type ChannelDtmfReceived struct {
	Digit      string        `json:"digit"`
	DurationMs int           `json:"duration_ms"`
	Channel    model.Channel `json:"channel"`
}

// ChannelEnteredBridge may omit the channel.
type ChannelEnteredBridge struct {
	Bridge  model.Bridge   `json:"bridge"`
	Channel *model.Channel `json:"channel,omitempty"`
}

type ChannelHangupRequest struct {
	Cause   int           `json:"cause"`
	Soft    *bool         `json:"soft,omitempty"`
	Channel model.Channel `json:"channel"`
}

type ChannelHold struct {
	Channel    model.Channel `json:"channel"`
	MusicClass string        `json:"musicclass,omitempty"`
}

type ChannelLeftBridge struct {
	Bridge  model.Bridge  `json:"bridge"`
	Channel model.Channel `json:"channel"`
}

type ChannelStateChange struct {
	Channel model.Channel `json:"channel"`
}

// ChannelTalkingFinished carries the talking duration in milliseconds.
type ChannelTalkingFinished struct {
	Channel  model.Channel `json:"channel"`
	Duration int           `json:"duration"`
}

type ChannelTalkingStarted struct {
	Channel model.Channel `json:"channel"`
}

type ChannelToneDetected struct {
	Channel model.Channel `json:"channel"`
}

type ChannelUnhold struct {
	Channel model.Channel `json:"channel"`
}

// ChannelUserevent is a user-generated event. UserEvent holds the custom
// fields as sent.
type ChannelUserevent struct {
	EventName string          `json:"eventname"`
	Channel   *model.Channel  `json:"channel,omitempty"`
	Bridge    *model.Bridge   `json:"bridge,omitempty"`
	Endpoint  *model.Endpoint `json:"endpoint,omitempty"`
	UserEvent json.RawMessage `json:"userevent,omitempty"`
}

// ChannelVarset reports a variable change. A nil Channel means a global
// variable.
type ChannelVarset struct {
	Variable string         `json:"variable"`
	Value    string         `json:"value"`
	Channel  *model.Channel `json:"channel,omitempty"`
}

// Dial reports a change in dial status.
type Dial struct {
	Caller     *model.Channel `json:"caller,omitempty"`
	Peer       *model.Channel `json:"peer,omitempty"`
	Forward    string         `json:"forward,omitempty"`
	Forwarded  *model.Channel `json:"forwarded,omitempty"`
	DialString string         `json:"dialstring,omitempty"`
	DialStatus string         `json:"dialstatus"`
}

// -----------------------------------------------------------------------------
// Endpoints and devices
// -----------------------------------------------------------------------------

type ContactInfo struct {
	model.ContactInfo
}

type ContactStatusChange struct {
	Endpoint    model.Endpoint    `json:"endpoint"`
	ContactInfo model.ContactInfo `json:"contact_info"`
}

type DeviceStateChanged struct {
	DeviceState model.DeviceState `json:"device_state"`
}

type EndpointStateChange struct {
	Endpoint model.Endpoint `json:"endpoint"`
}

type Peer struct {
	model.Peer
}

type PeerStatusChange struct {
	Endpoint model.Endpoint `json:"endpoint"`
	Peer     model.Peer     `json:"peer"`
}

type TextMessageReceived struct {
	Message  model.TextMessage `json:"message"`
	Endpoint *model.Endpoint   `json:"endpoint,omitempty"`
}

// -----------------------------------------------------------------------------
// Media
// -----------------------------------------------------------------------------

type PlaybackContinuing struct {
	Playback model.Playback `json:"playback"`
}

type PlaybackFinished struct {
	Playback model.Playback `json:"playback"`
}

type PlaybackStarted struct {
	Playback model.Playback `json:"playback"`
}

type RecordingFailed struct {
	Recording model.LiveRecording `json:"recording"`
}

type RecordingFinished struct {
	Recording model.LiveRecording `json:"recording"`
}

type RecordingStarted struct {
	Recording model.LiveRecording `json:"recording"`
}

func (ApplicationMoveFailed) Kind() Kind    { return KindApplicationMoveFailed }
func (ApplicationReplaced) Kind() Kind      { return KindApplicationReplaced }
func (MissingParams) Kind() Kind            { return KindMissingParams }
func (StasisStart) Kind() Kind              { return KindStasisStart }
func (StasisEnd) Kind() Kind                { return KindStasisEnd }
func (BridgeAttendedTransfer) Kind() Kind   { return KindBridgeAttendedTransfer }
func (BridgeBlindTransfer) Kind() Kind      { return KindBridgeBlindTransfer }
func (BridgeCreated) Kind() Kind            { return KindBridgeCreated }
func (BridgeDestroyed) Kind() Kind          { return KindBridgeDestroyed }
func (BridgeMerged) Kind() Kind             { return KindBridgeMerged }
func (BridgeVideoSourceChanged) Kind() Kind { return KindBridgeVideoSourceChanged }
func (ChannelCallerID) Kind() Kind          { return KindChannelCallerID }
func (ChannelConnectedLine) Kind() Kind     { return KindChannelConnectedLine }
func (ChannelCreated) Kind() Kind           { return KindChannelCreated }
func (ChannelDestroyed) Kind() Kind         { return KindChannelDestroyed }
func (ChannelDialplan) Kind() Kind          { return KindChannelDialplan }
func (ChannelDtmfReceived) Kind() Kind      { return KindChannelDtmfReceived }
func (ChannelEnteredBridge) Kind() Kind     { return KindChannelEnteredBridge }
func (ChannelHangupRequest) Kind() Kind     { return KindChannelHangupRequest }
func (ChannelHold) Kind() Kind              { return KindChannelHold }
func (ChannelLeftBridge) Kind() Kind        { return KindChannelLeftBridge }
func (ChannelStateChange) Kind() Kind       { return KindChannelStateChange }
func (ChannelTalkingFinished) Kind() Kind   { return KindChannelTalkingFinished }
func (ChannelTalkingStarted) Kind() Kind    { return KindChannelTalkingStarted }
func (ChannelToneDetected) Kind() Kind      { return KindChannelToneDetected }
func (ChannelUnhold) Kind() Kind            { return KindChannelUnhold }
func (ChannelUserevent) Kind() Kind         { return KindChannelUserevent }
func (ChannelVarset) Kind() Kind            { return KindChannelVarset }
func (Dial) Kind() Kind                     { return KindDial }
func (ContactInfo) Kind() Kind              { return KindContactInfo }
func (ContactStatusChange) Kind() Kind      { return KindContactStatusChange }
func (DeviceStateChanged) Kind() Kind       { return KindDeviceStateChanged }
func (EndpointStateChange) Kind() Kind      { return KindEndpointStateChange }
func (Peer) Kind() Kind                     { return KindPeer }
func (PeerStatusChange) Kind() Kind         { return KindPeerStatusChange }
func (TextMessageReceived) Kind() Kind      { return KindTextMessageReceived }
func (PlaybackContinuing) Kind() Kind       { return KindPlaybackContinuing }
func (PlaybackFinished) Kind() Kind         { return KindPlaybackFinished }
func (PlaybackStarted) Kind() Kind          { return KindPlaybackStarted }
func (RecordingFailed) Kind() Kind          { return KindRecordingFailed }
func (RecordingFinished) Kind() Kind        { return KindRecordingFinished }
func (RecordingStarted) Kind() Kind         { return KindRecordingStarted }
