// Package connection implements the Connection Manager component.
//
// The Connection Manager:
//   - Builds the /ari/events URL from the configured base URL and credentials
//   - Owns exactly one WebSocket at a time
//   - Sends a keepalive ping every PingInterval and answers server pings
//   - Decodes text frames and places events on a bounded channel
//   - Reconnects forever with linear backoff until cancelled
//
// The event channel is filled with blocking sends. A slow consumer therefore
// delays reads, keepalive pings and pong replies on the socket; the server
// may drop the connection in that case, after which the manager reconnects.
//
// After a reconnect, delivery resumes on the same channel. Events raised by
// the server while the socket was down are lost and no marker is emitted.
package connection
