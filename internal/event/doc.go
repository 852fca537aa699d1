// Package event implements the Event Decoder.
//
// Every frame on the ARI event socket is a JSON object whose "type" field
// selects one of a closed set of event kinds. Decode turns a frame into an
// Event: the common Envelope (application, timestamp, asterisk_id) plus a
// kind-specific Payload. Frames with an unrecognised type, or a recognised
// type whose required fields are missing or mistyped, decode to an Unknown
// payload that keeps the original JSON.
//
// Decode has no I/O and no state; it is safe to call from any goroutine.
//
// Enumerated snapshot fields (channel state, playback state, ...) are not
// validated. A value the server adds in a later release decodes as-is.
package event
