// Package ari is the entry point for applications: it joins the event
// socket, the handler registry and the REST executor.
//
//	c, err := ari.New(ari.Config{BaseURL: "http://localhost:8088", Username: "u", Password: "p"}, logger)
//	c.RegisterHandler(router.Typed(func(ctx context.Context, ex api.Executor, env event.Envelope, p event.StasisStart) error {
//		return api.Answer(ctx, ex, p.Channel.ID)
//	}))
//	if err := c.Start(ctx, "demo"); err != nil { ... }
//	defer c.Stop()
//
// Start returns once the first handshake succeeds. From then on the socket
// reconnects on its own and events reach handlers one at a time, in order,
// until Stop is called or the Start context is cancelled.
package ari
