package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/rickgao/ari-events/internal/model"
)

// Answer answers a channel.
func Answer(ctx context.Context, ex Executor, channelID string) error {
	if channelID == "" {
		return fmt.Errorf("answer: channel id is required")
	}
	return ex.Execute(ctx, http.MethodPost, "/channels/"+url.PathEscape(channelID)+"/answer", nil, nil, nil)
}

// Ring indicates ringing to a channel.
func Ring(ctx context.Context, ex Executor, channelID string) error {
	if channelID == "" {
		return fmt.Errorf("ring: channel id is required")
	}
	return ex.Execute(ctx, http.MethodPost, "/channels/"+url.PathEscape(channelID)+"/ring", nil, nil, nil)
}

// Hangup hangs up a channel. reason is optional ("normal", "busy",
// "congestion", ...).
func Hangup(ctx context.Context, ex Executor, channelID, reason string) error {
	if channelID == "" {
		return fmt.Errorf("hangup: channel id is required")
	}
	var query url.Values
	if reason != "" {
		query = url.Values{"reason": {reason}}
	}
	return ex.Execute(ctx, http.MethodDelete, "/channels/"+url.PathEscape(channelID), nil, query, nil)
}

// GetChannel returns the current snapshot of a channel.
func GetChannel(ctx context.Context, ex Executor, channelID string) (*model.Channel, error) {
	if channelID == "" {
		return nil, fmt.Errorf("get channel: channel id is required")
	}
	var ch model.Channel
	if err := ex.Execute(ctx, http.MethodGet, "/channels/"+url.PathEscape(channelID), nil, nil, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// PlayOptions configures a playback.
type PlayOptions struct {
	// Media URIs, e.g. "sound:hello-world". At least one is required.
	Media []string
	Lang  string
	// OffsetMs skips into the first media URI.
	OffsetMs int
	// SkipMs is the skip step for forward/reverse controls.
	SkipMs int
	// PlaybackID is generated when empty.
	PlaybackID string
}

func (o PlayOptions) query() url.Values {
	q := url.Values{"media": {strings.Join(o.Media, ",")}}
	if o.Lang != "" {
		q.Set("lang", o.Lang)
	}
	if o.OffsetMs > 0 {
		q.Set("offsetms", strconv.Itoa(o.OffsetMs))
	}
	if o.SkipMs > 0 {
		q.Set("skipms", strconv.Itoa(o.SkipMs))
	}
	q.Set("playbackId", o.PlaybackID)
	return q
}

// Play starts media playback on a channel and returns the playback resource.
func Play(ctx context.Context, ex Executor, channelID string, opts PlayOptions) (*model.Playback, error) {
	if channelID == "" {
		return nil, fmt.Errorf("play: channel id is required")
	}
	if len(opts.Media) == 0 {
		return nil, fmt.Errorf("play: media is required")
	}
	if opts.PlaybackID == "" {
		opts.PlaybackID = uuid.NewString()
	}

	var pb model.Playback
	path := "/channels/" + url.PathEscape(channelID) + "/play"
	if err := ex.Execute(ctx, http.MethodPost, path, nil, opts.query(), &pb); err != nil {
		return nil, err
	}
	if pb.ID == "" {
		pb.ID = opts.PlaybackID
	}
	return &pb, nil
}

// Ping checks that Asterisk is reachable.
func Ping(ctx context.Context, ex Executor) (*model.AsteriskPing, error) {
	var p model.AsteriskPing
	if err := ex.Execute(ctx, http.MethodGet, "/asterisk/ping", nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Info returns system information. only limits the sections returned
// ("build", "system", "config", "status"); none means all.
func Info(ctx context.Context, ex Executor, only ...string) (*model.AsteriskInfo, error) {
	var query url.Values
	if len(only) > 0 {
		query = url.Values{"only": {strings.Join(only, ",")}}
	}
	var info model.AsteriskInfo
	if err := ex.Execute(ctx, http.MethodGet, "/asterisk/info", nil, query, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// ListApplications lists the Stasis applications registered with Asterisk.
func ListApplications(ctx context.Context, ex Executor) ([]model.Application, error) {
	var apps []model.Application
	if err := ex.Execute(ctx, http.MethodGet, "/applications", nil, nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// Subscribe adds event sources to an application. Sources use the ARI
// scheme, e.g. "channel:<id>", "bridge:<id>", "endpoint:PJSIP/100".
func Subscribe(ctx context.Context, ex Executor, app string, sources ...string) (*model.Application, error) {
	if app == "" {
		return nil, fmt.Errorf("subscribe: application is required")
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("subscribe: at least one event source is required")
	}
	query := url.Values{"eventSource": {strings.Join(sources, ",")}}

	var a model.Application
	path := "/applications/" + url.PathEscape(app) + "/subscription"
	if err := ex.Execute(ctx, http.MethodPost, path, nil, query, &a); err != nil {
		return nil, err
	}
	return &a, nil
}
