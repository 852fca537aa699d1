package event

// Kind identifies an event variant. Values are the wire names carried in the
// "type" field.
type Kind string

// Known event kinds.
const (
	KindApplicationMoveFailed    Kind = "ApplicationMoveFailed"
	KindApplicationReplaced      Kind = "ApplicationReplaced"
	KindBridgeAttendedTransfer   Kind = "BridgeAttendedTransfer"
	KindBridgeBlindTransfer      Kind = "BridgeBlindTransfer"
	KindBridgeCreated            Kind = "BridgeCreated"
	KindBridgeDestroyed          Kind = "BridgeDestroyed"
	KindBridgeMerged             Kind = "BridgeMerged"
	KindBridgeVideoSourceChanged Kind = "BridgeVideoSourceChanged"
	KindChannelCallerID          Kind = "ChannelCallerId"
	KindChannelConnectedLine     Kind = "ChannelConnectedLine"
	KindChannelCreated           Kind = "ChannelCreated"
	KindChannelDestroyed         Kind = "ChannelDestroyed"
	KindChannelDialplan          Kind = "ChannelDialplan"
	KindChannelDtmfReceived      Kind = "ChannelDtmfReceived"
	KindChannelEnteredBridge     Kind = "ChannelEnteredBridge"
	KindChannelHangupRequest     Kind = "ChannelHangupRequest"
	KindChannelHold              Kind = "ChannelHold"
	KindChannelLeftBridge        Kind = "ChannelLeftBridge"
	KindChannelStateChange       Kind = "ChannelStateChange"
	KindChannelTalkingFinished   Kind = "ChannelTalkingFinished"
	KindChannelTalkingStarted    Kind = "ChannelTalkingStarted"
	KindChannelToneDetected      Kind = "ChannelToneDetected"
	KindChannelUnhold            Kind = "ChannelUnhold"
	KindChannelUserevent         Kind = "ChannelUserevent"
	KindChannelVarset            Kind = "ChannelVarset"
	KindContactInfo              Kind = "ContactInfo"
	KindContactStatusChange      Kind = "ContactStatusChange"
	KindDeviceStateChanged       Kind = "DeviceStateChanged"
	KindDial                     Kind = "Dial"
	KindEndpointStateChange      Kind = "EndpointStateChange"
	KindMissingParams            Kind = "MissingParams"
	KindPeer                     Kind = "Peer"
	KindPeerStatusChange         Kind = "PeerStatusChange"
	KindPlaybackContinuing       Kind = "PlaybackContinuing"
	KindPlaybackFinished         Kind = "PlaybackFinished"
	KindPlaybackStarted          Kind = "PlaybackStarted"
	KindRecordingFailed          Kind = "RecordingFailed"
	KindRecordingFinished        Kind = "RecordingFinished"
	KindRecordingStarted         Kind = "RecordingStarted"
	KindStasisEnd                Kind = "StasisEnd"
	KindStasisStart              Kind = "StasisStart"
	KindTextMessageReceived      Kind = "TextMessageReceived"

	// KindUnknown is reported for frames that did not match a known kind.
	KindUnknown Kind = "Unknown"
)

// Kinds returns every known kind in wire-name order. KindUnknown is not
// included.
func Kinds() []Kind {
	return append([]Kind(nil), orderedKinds...)
}

// IsKnown reports whether k is one of the known kinds.
func (k Kind) IsKnown() bool {
	_, ok := catalogue[k]
	return ok
}

func (k Kind) String() string {
	return string(k)
}

var orderedKinds = []Kind{
	KindApplicationMoveFailed,
	KindApplicationReplaced,
	KindBridgeAttendedTransfer,
	KindBridgeBlindTransfer,
	KindBridgeCreated,
	KindBridgeDestroyed,
	KindBridgeMerged,
	KindBridgeVideoSourceChanged,
	KindChannelCallerID,
	KindChannelConnectedLine,
	KindChannelCreated,
	KindChannelDestroyed,
	KindChannelDialplan,
	KindChannelDtmfReceived,
	KindChannelEnteredBridge,
	KindChannelHangupRequest,
	KindChannelHold,
	KindChannelLeftBridge,
	KindChannelStateChange,
	KindChannelTalkingFinished,
	KindChannelTalkingStarted,
	KindChannelToneDetected,
	KindChannelUnhold,
	KindChannelUserevent,
	KindChannelVarset,
	KindContactInfo,
	KindContactStatusChange,
	KindDeviceStateChanged,
	KindDial,
	KindEndpointStateChange,
	KindMissingParams,
	KindPeer,
	KindPeerStatusChange,
	KindPlaybackContinuing,
	KindPlaybackFinished,
	KindPlaybackStarted,
	KindRecordingFailed,
	KindRecordingFinished,
	KindRecordingStarted,
	KindStasisEnd,
	KindStasisStart,
	KindTextMessageReceived,
}
