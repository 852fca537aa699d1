package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/google/uuid"
)

type call struct {
	method string
	path   string
	body   any
	query  url.Values
}

// recordingExecutor records calls and answers with a canned response.
type recordingExecutor struct {
	calls    []call
	response string
	err      error
}

func (r *recordingExecutor) Execute(_ context.Context, method, path string, body any, query url.Values, out any) error {
	r.calls = append(r.calls, call{method: method, path: path, body: body, query: query})
	if r.err != nil {
		return r.err
	}
	if out != nil && r.response != "" {
		return json.Unmarshal([]byte(r.response), out)
	}
	return nil
}

func (r *recordingExecutor) last(t *testing.T) call {
	t.Helper()
	if len(r.calls) == 0 {
		t.Fatal("no calls recorded")
	}
	return r.calls[len(r.calls)-1]
}

func TestChannelActions(t *testing.T) {
	tests := []struct {
		name       string
		do         func(ex Executor) error
		wantMethod string
		wantPath   string
		wantQuery  url.Values
	}{
		{
			name:       "answer",
			do:         func(ex Executor) error { return Answer(context.Background(), ex, "1700000000.1") },
			wantMethod: http.MethodPost,
			wantPath:   "/channels/1700000000.1/answer",
		},
		{
			name:       "ring",
			do:         func(ex Executor) error { return Ring(context.Background(), ex, "abc") },
			wantMethod: http.MethodPost,
			wantPath:   "/channels/abc/ring",
		},
		{
			name:       "hangup without reason",
			do:         func(ex Executor) error { return Hangup(context.Background(), ex, "abc", "") },
			wantMethod: http.MethodDelete,
			wantPath:   "/channels/abc",
		},
		{
			name:       "hangup with reason",
			do:         func(ex Executor) error { return Hangup(context.Background(), ex, "abc", "busy") },
			wantMethod: http.MethodDelete,
			wantPath:   "/channels/abc",
			wantQuery:  url.Values{"reason": {"busy"}},
		},
		{
			name:       "escapes channel id",
			do:         func(ex Executor) error { return Answer(context.Background(), ex, "a/b") },
			wantMethod: http.MethodPost,
			wantPath:   "/channels/a%2Fb/answer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := &recordingExecutor{}
			if err := tt.do(ex); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := ex.last(t)
			if got.method != tt.wantMethod {
				t.Errorf("method = %q, want %q", got.method, tt.wantMethod)
			}
			if got.path != tt.wantPath {
				t.Errorf("path = %q, want %q", got.path, tt.wantPath)
			}
			if got.query.Encode() != tt.wantQuery.Encode() {
				t.Errorf("query = %q, want %q", got.query.Encode(), tt.wantQuery.Encode())
			}
		})
	}
}

func TestChannelActions_RequireID(t *testing.T) {
	ex := &recordingExecutor{}
	ctx := context.Background()

	if err := Answer(ctx, ex, ""); err == nil {
		t.Error("Answer with empty id should fail")
	}
	if err := Ring(ctx, ex, ""); err == nil {
		t.Error("Ring with empty id should fail")
	}
	if err := Hangup(ctx, ex, "", "normal"); err == nil {
		t.Error("Hangup with empty id should fail")
	}
	if _, err := GetChannel(ctx, ex, ""); err == nil {
		t.Error("GetChannel with empty id should fail")
	}
	if len(ex.calls) != 0 {
		t.Errorf("calls = %d, want 0", len(ex.calls))
	}
}

func TestPlay(t *testing.T) {
	t.Run("generates playback id", func(t *testing.T) {
		ex := &recordingExecutor{response: `{"media_uri":"sound:hello-world","state":"queued"}`}
		pb, err := Play(context.Background(), ex, "abc", PlayOptions{
			Media:    []string{"sound:hello-world", "sound:goodbye"},
			Lang:     "en",
			OffsetMs: 500,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got := ex.last(t)
		if got.path != "/channels/abc/play" {
			t.Errorf("path = %q, want %q", got.path, "/channels/abc/play")
		}
		if got.query.Get("media") != "sound:hello-world,sound:goodbye" {
			t.Errorf("media = %q", got.query.Get("media"))
		}
		if got.query.Get("offsetms") != "500" {
			t.Errorf("offsetms = %q, want %q", got.query.Get("offsetms"), "500")
		}
		if got.query.Has("skipms") {
			t.Error("skipms should be omitted")
		}
		id := got.query.Get("playbackId")
		if _, err := uuid.Parse(id); err != nil {
			t.Errorf("playbackId = %q is not a UUID: %v", id, err)
		}
		if pb.ID != id {
			t.Errorf("ID = %q, want %q", pb.ID, id)
		}
		if pb.State != "queued" {
			t.Errorf("State = %q, want %q", pb.State, "queued")
		}
	})

	t.Run("keeps explicit playback id", func(t *testing.T) {
		ex := &recordingExecutor{response: `{"id":"pb-1","state":"playing"}`}
		pb, err := Play(context.Background(), ex, "abc", PlayOptions{Media: []string{"tone:ring"}, PlaybackID: "pb-1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := ex.last(t).query.Get("playbackId"); got != "pb-1" {
			t.Errorf("playbackId = %q, want %q", got, "pb-1")
		}
		if pb.ID != "pb-1" {
			t.Errorf("ID = %q, want %q", pb.ID, "pb-1")
		}
	})

	t.Run("requires media", func(t *testing.T) {
		ex := &recordingExecutor{}
		if _, err := Play(context.Background(), ex, "abc", PlayOptions{}); err == nil {
			t.Fatal("expected error, got nil")
		}
	})

	t.Run("propagates executor error", func(t *testing.T) {
		ex := &recordingExecutor{err: &APIError{StatusCode: 404, Message: "Channel not found"}}
		_, err := Play(context.Background(), ex, "gone", PlayOptions{Media: []string{"sound:x"}})
		if !IsNotFound(err) {
			t.Errorf("error = %v, want not found", err)
		}
	})
}

func TestServerQueries(t *testing.T) {
	t.Run("ping", func(t *testing.T) {
		ex := &recordingExecutor{response: `{"asterisk_id":"ab:cd","ping":"pong","timestamp":"2021-01-07T21:12:57.268+0100"}`}
		p, err := Ping(context.Background(), ex)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := ex.last(t); got.method != http.MethodGet || got.path != "/asterisk/ping" {
			t.Errorf("call = %s %s", got.method, got.path)
		}
		if p.AsteriskID != "ab:cd" {
			t.Errorf("AsteriskID = %q, want %q", p.AsteriskID, "ab:cd")
		}
	})

	t.Run("info with sections", func(t *testing.T) {
		ex := &recordingExecutor{response: `{"system":{"version":"20.5.0"}}`}
		info, err := Info(context.Background(), ex, "build", "system")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := ex.last(t).query.Get("only"); got != "build,system" {
			t.Errorf("only = %q, want %q", got, "build,system")
		}
		if len(info.System) == 0 {
			t.Error("System section should be set")
		}
		if len(info.Build) != 0 {
			t.Errorf("Build = %s, want empty", info.Build)
		}
	})

	t.Run("list applications", func(t *testing.T) {
		ex := &recordingExecutor{response: `[{"name":"demo","channel_ids":["1"],"bridge_ids":[],"endpoint_ids":[],"device_names":[]}]`}
		apps, err := ListApplications(context.Background(), ex)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(apps) != 1 || apps[0].Name != "demo" {
			t.Errorf("apps = %+v", apps)
		}
	})

	t.Run("subscribe", func(t *testing.T) {
		ex := &recordingExecutor{response: `{"name":"demo","channel_ids":[],"bridge_ids":[],"endpoint_ids":["PJSIP/100"],"device_names":[]}`}
		app, err := Subscribe(context.Background(), ex, "demo", "endpoint:PJSIP/100", "bridge:b1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := ex.last(t)
		if got.path != "/applications/demo/subscription" {
			t.Errorf("path = %q", got.path)
		}
		if got.query.Get("eventSource") != "endpoint:PJSIP/100,bridge:b1" {
			t.Errorf("eventSource = %q", got.query.Get("eventSource"))
		}
		if len(app.EndpointIDs) != 1 {
			t.Errorf("EndpointIDs = %v", app.EndpointIDs)
		}

		if _, err := Subscribe(context.Background(), ex, "demo"); err == nil {
			t.Error("Subscribe without sources should fail")
		}
	})
}
