// eventdump connects to the ARI event socket and prints every decoded event
// to the console.
// Usage: go run ./cmd/eventdump --config configs/ariwatch.yaml [--app demo] [--verbose]
//
// The password may be supplied through the environment:
//
//	ARI_PASSWORD - referenced as ${ARI_PASSWORD} in the config file
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rickgao/ari-events/internal/auth"
	"github.com/rickgao/ari-events/internal/config"
	"github.com/rickgao/ari-events/internal/connection"
	"github.com/rickgao/ari-events/internal/event"
)

func main() {
	configPath := flag.String("config", "configs/ariwatch.yaml", "path to config file")
	app := flag.String("app", "", "Stasis application (overrides events.application)")
	verbose := flag.Bool("verbose", false, "print full event JSON")
	flag.Parse()

	// Setup logger
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	// Load config
	cfg, err := config.LoadWithDefaults(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *app != "" {
		cfg.Events.Application = *app
	}

	creds, err := auth.LoadCredentials(cfg.API.Username, cfg.API.Password, cfg.API.PasswordFile)
	if err != nil {
		logger.Error("failed to load credentials", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal")
		cancel()
	}()

	connCfg := connection.DefaultManagerConfig()
	connCfg.BaseURL = cfg.API.BaseURL
	connCfg.Username = creds.Username
	connCfg.Password = creds.Password
	connCfg.PingInterval = cfg.Events.PingInterval
	connCfg.ReconnectBaseDelay = cfg.Events.ReconnectBaseDelay
	connCfg.ReconnectMaxDelay = cfg.Events.ReconnectMaxDelay
	connCfg.BufferSize = cfg.Events.BufferSize

	connMgr := connection.NewManager(connCfg, logger)

	req := connection.NewSubscription(cfg.Events.Application).WithSubscribeAll(cfg.Events.SubscribeAllEvents())
	logger.Info("starting connection manager", "app", req.App)
	events, err := connMgr.Connect(ctx, req)
	if err != nil {
		logger.Error("failed to connect", "error", err)
		os.Exit(1)
	}

	// Stats printer
	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s := connMgr.Stats()
				logger.Info("stats",
					"state", s.State,
					"frames", s.Frames,
					"events", s.Events,
					"decode_errors", s.DecodeErrors,
					"reconnects", s.Reconnects,
					"pings_sent", s.PingsSent,
					"pongs_received", s.PongsReceived,
				)
			}
		}
	}()

	go func() {
		<-ctx.Done()
		connMgr.Disconnect()
	}()

	logger.Info("streaming started - press Ctrl+C to stop")

	for ev := range events {
		printEvent(os.Stdout, ev, *verbose)
	}

	logger.Info("shutdown complete")
}

// printEvent writes one line per event, or the indented frame when verbose.
func printEvent(w io.Writer, ev event.Event, verbose bool) {
	if verbose {
		var buf any
		if err := json.Unmarshal(ev.Raw, &buf); err == nil {
			data, _ := json.MarshalIndent(buf, "", "  ")
			fmt.Fprintf(w, "[%s] %s\n", ev.Kind(), data)
			return
		}
		fmt.Fprintf(w, "[%s] %s\n", ev.Kind(), ev.Raw)
		return
	}

	ts := ""
	if !ev.Timestamp.IsZero() {
		ts = ev.Timestamp.Format(time.RFC3339Nano)
	}
	fmt.Fprintf(w, "[%s] app=%s time=%s %s\n", ev.Kind(), ev.Application, ts, summary(ev))
}

// summary picks the identifying fields of the common payloads.
func summary(ev event.Event) string {
	switch p := ev.Payload.(type) {
	case event.StasisStart:
		return fmt.Sprintf("channel=%s state=%s caller=%s args=%v", p.Channel.ID, p.Channel.State, p.Channel.Caller.Number, p.Args)
	case event.StasisEnd:
		return "channel=" + p.Channel.ID
	case event.ChannelStateChange:
		return fmt.Sprintf("channel=%s state=%s", p.Channel.ID, p.Channel.State)
	case event.ChannelDtmfReceived:
		return fmt.Sprintf("channel=%s digit=%s duration_ms=%d", p.Channel.ID, p.Digit, p.DurationMs)
	case event.ChannelHangupRequest:
		return fmt.Sprintf("channel=%s cause=%d", p.Channel.ID, p.Cause)
	case event.ChannelDestroyed:
		return fmt.Sprintf("channel=%s cause=%d (%s)", p.Channel.ID, p.Cause, p.CauseTxt)
	case event.ChannelVarset:
		return fmt.Sprintf("variable=%s value=%q", p.Variable, p.Value)
	case event.PlaybackStarted:
		return fmt.Sprintf("playback=%s media=%s", p.Playback.ID, p.Playback.MediaURI)
	case event.PlaybackFinished:
		return fmt.Sprintf("playback=%s state=%s", p.Playback.ID, p.Playback.State)
	case event.BridgeCreated:
		return "bridge=" + p.Bridge.ID
	case event.BridgeDestroyed:
		return "bridge=" + p.Bridge.ID
	case event.ChannelEnteredBridge:
		if p.Channel != nil {
			return fmt.Sprintf("bridge=%s channel=%s", p.Bridge.ID, p.Channel.ID)
		}
		return "bridge=" + p.Bridge.ID
	case event.ChannelLeftBridge:
		return fmt.Sprintf("bridge=%s channel=%s", p.Bridge.ID, p.Channel.ID)
	case event.Dial:
		return "dialstatus=" + p.DialStatus
	case event.DeviceStateChanged:
		return fmt.Sprintf("device=%s state=%s", p.DeviceState.Name, p.DeviceState.State)
	case event.EndpointStateChange:
		return fmt.Sprintf("endpoint=%s/%s state=%s", p.Endpoint.Technology, p.Endpoint.Resource, p.Endpoint.State)
	case event.Unknown:
		if p.Reason != "" {
			return fmt.Sprintf("type=%s reason=%q", ev.Type, p.Reason)
		}
		return "type=" + ev.Type
	}
	return ""
}
