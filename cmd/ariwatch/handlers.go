package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rickgao/ari-events/internal/api"
	"github.com/rickgao/ari-events/internal/ari"
	"github.com/rickgao/ari-events/internal/event"
	"github.com/rickgao/ari-events/internal/router"
)

// registerHandlers installs the demo call flow: answer each channel that
// enters the application and play a greeting to it.
func registerHandlers(c *ari.Client, greeting string, logger *slog.Logger) {
	c.RegisterHandler(router.Typed(answerAndPlay(greeting, logger)))

	c.RegisterHandler(router.Typed(func(_ context.Context, _ api.Executor, env event.Envelope, p event.StasisEnd) error {
		logger.Info("channel left application", "channel", p.Channel.ID, "app", env.Application)
		return nil
	}))

	c.RegisterHandler(router.Typed(func(_ context.Context, _ api.Executor, _ event.Envelope, p event.PlaybackFinished) error {
		logger.Debug("playback finished", "playback", p.Playback.ID, "target", p.Playback.TargetURI)
		return nil
	}))

	c.RegisterHandler(event.KindUnknown, func(_ context.Context, _ api.Executor, ev event.Event) error {
		reason := ""
		if u, ok := ev.Payload.(event.Unknown); ok {
			reason = u.Reason
		}
		logger.Info("unrecognised event", "type", ev.Type, "reason", reason, "size", len(ev.Raw))
		return nil
	})

	c.RegisterHandler(router.Fallback, func(_ context.Context, _ api.Executor, ev event.Event) error {
		logger.Debug("event", "kind", ev.Kind(), "app", ev.Application)
		return nil
	})
}

func answerAndPlay(greeting string, logger *slog.Logger) func(context.Context, api.Executor, event.Envelope, event.StasisStart) error {
	return func(ctx context.Context, ex api.Executor, env event.Envelope, p event.StasisStart) error {
		ch := p.Channel
		logger.Info("channel entered application",
			"channel", ch.ID,
			"name", ch.Name,
			"caller", ch.Caller.Number,
			"args", p.Args,
		)

		if err := api.Answer(ctx, ex, ch.ID); err != nil {
			if api.IsNotFound(err) {
				logger.Info("channel hung up before answer", "channel", ch.ID)
				return nil
			}
			return fmt.Errorf("answer %s: %w", ch.ID, err)
		}

		if greeting == "" {
			return nil
		}
		pb, err := api.Play(ctx, ex, ch.ID, api.PlayOptions{
			Media: []string{greeting},
			Lang:  ch.Language,
		})
		if err != nil {
			return fmt.Errorf("play on %s: %w", ch.ID, err)
		}
		logger.Debug("playback started", "channel", ch.ID, "playback", pb.ID)
		return nil
	}
}
