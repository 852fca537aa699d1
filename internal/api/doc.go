// Package api provides the Asterisk REST Interface (ARI) client.
//
// Requests are sent to <base>/ari/<path> with HTTP Basic authentication
// using the ARI user from ari.conf. Handlers receive the client through
// the Executor interface so tests can replace it.
//
// Key resources: channels, playbacks, asterisk, applications
package api
