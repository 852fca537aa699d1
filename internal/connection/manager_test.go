package connection

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/goleak"

	"github.com/rickgao/ari-events/internal/event"
)

// mockWSServer creates a test WebSocket server. The request URL is passed to
// the handler so tests can check the query.
func mockWSServer(t *testing.T, handler func(*websocket.Conn, *http.Request)) *httptest.Server {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Logf("upgrade error: %v", err)
			return
		}
		defer conn.Close()
		handler(conn, r)
	}))

	return server
}

func testConfig(baseURL string) ManagerConfig {
	cfg := DefaultManagerConfig()
	cfg.BaseURL = baseURL
	cfg.Username = "asterisk"
	cfg.Password = "secret"
	cfg.ReconnectBaseDelay = 10 * time.Millisecond
	cfg.ReconnectMaxDelay = 50 * time.Millisecond
	cfg.CloseTimeout = 100 * time.Millisecond
	return cfg
}

func eventFrame(kind, channelID string) []byte {
	return []byte(`{"type":"` + kind + `","application":"demo","timestamp":"2021-01-07T21:12:57.268+0100","args":[],` +
		`"channel":{"id":"` + channelID + `","name":"PJSIP/1","state":"Up","caller":{"name":"","number":""},` +
		`"connected":{"name":"","number":""},"accountcode":"","dialplan":{"context":"c","exten":"e","priority":1,"app_name":"Stasis"},` +
		`"creationtime":"2021-01-07T21:12:57.268+0100","language":"en"}}`)
}

// drainUntilClosed keeps the server side reading so control frames are
// processed.
func drainUntilClosed(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func receive(t *testing.T, events <-chan event.Event) event.Event {
	t.Helper()
	select {
	case ev, ok := <-events:
		if !ok {
			t.Fatal("event channel closed")
		}
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for event")
	}
	return event.Event{}
}

func channelID(t *testing.T, ev event.Event) string {
	t.Helper()
	switch p := ev.Payload.(type) {
	case event.ChannelCreated:
		return p.Channel.ID
	case event.StasisStart:
		return p.Channel.ID
	case event.StasisEnd:
		return p.Channel.ID
	}
	t.Fatalf("unexpected payload %T", ev.Payload)
	return ""
}

func TestManager_DeliversEvents(t *testing.T) {
	var query atomic.Value

	server := mockWSServer(t, func(conn *websocket.Conn, r *http.Request) {
		query.Store(r.URL.RawQuery)
		conn.WriteMessage(websocket.TextMessage, eventFrame("StasisStart", "1"))
		conn.WriteMessage(websocket.TextMessage, eventFrame("StasisEnd", "1"))
		drainUntilClosed(conn)
	})
	defer server.Close()

	m := NewManager(testConfig(server.URL), nil)
	events, err := m.Connect(context.Background(), NewSubscription("demo"))
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer m.Disconnect()

	if ev := receive(t, events); ev.Kind() != event.KindStasisStart {
		t.Errorf("first event = %s, want StasisStart", ev.Kind())
	}
	if ev := receive(t, events); ev.Kind() != event.KindStasisEnd {
		t.Errorf("second event = %s, want StasisEnd", ev.Kind())
	}

	if m.State() != StateConnected {
		t.Errorf("State = %s, want connected", m.State())
	}

	q, _ := query.Load().(string)
	if !strings.Contains(q, "app=demo") || !strings.Contains(q, "subscribeAll=true") {
		t.Errorf("query = %q", q)
	}

	stats := m.Stats()
	if stats.Frames != 2 {
		t.Errorf("Stats = %+v", stats)
	}
	if stats.Session == "" {
		t.Error("expected a session id")
	}
}

func TestManager_MalformedFrameBetweenValidFrames(t *testing.T) {
	server := mockWSServer(t, func(conn *websocket.Conn, r *http.Request) {
		conn.WriteMessage(websocket.TextMessage, eventFrame("ChannelCreated", "first"))
		conn.WriteMessage(websocket.TextMessage, []byte(`{"type": "ChannelCreated", oops`))
		conn.WriteMessage(websocket.BinaryMessage, []byte{0x01, 0x02})
		conn.WriteMessage(websocket.TextMessage, eventFrame("ChannelCreated", "second"))
		drainUntilClosed(conn)
	})
	defer server.Close()

	m := NewManager(testConfig(server.URL), nil)
	events, err := m.Connect(context.Background(), NewSubscription("demo"))
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer m.Disconnect()

	if id := channelID(t, receive(t, events)); id != "first" {
		t.Errorf("first channel = %q", id)
	}
	if id := channelID(t, receive(t, events)); id != "second" {
		t.Errorf("second channel = %q", id)
	}

	if got := m.Stats().DecodeErrors; got != 1 {
		t.Errorf("DecodeErrors = %d, want 1", got)
	}
}

func TestManager_AnswersPingWithSamePayload(t *testing.T) {
	pong := make(chan string, 1)

	server := mockWSServer(t, func(conn *websocket.Conn, r *http.Request) {
		conn.SetPongHandler(func(data string) error {
			select {
			case pong <- data:
			default:
			}
			return nil
		})
		conn.WriteControl(websocket.PingMessage, []byte("are-you-there"), time.Now().Add(time.Second))
		drainUntilClosed(conn)
	})
	defer server.Close()

	m := NewManager(testConfig(server.URL), nil)
	if _, err := m.Connect(context.Background(), NewSubscription("demo")); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer m.Disconnect()

	select {
	case got := <-pong:
		if got != "are-you-there" {
			t.Errorf("pong payload = %q, want %q", got, "are-you-there")
		}
	case <-time.After(m.cfg.PingInterval):
		t.Fatal("no pong within the keepalive interval")
	}

	if m.Stats().PingsReceived != 1 {
		t.Errorf("PingsReceived = %d, want 1", m.Stats().PingsReceived)
	}
}

func TestManager_SendsKeepalivePings(t *testing.T) {
	pings := make(chan []byte, 4)

	server := mockWSServer(t, func(conn *websocket.Conn, r *http.Request) {
		conn.SetPingHandler(func(data string) error {
			select {
			case pings <- []byte(data):
			default:
			}
			return conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(time.Second))
		})
		drainUntilClosed(conn)
	})
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.PingInterval = 20 * time.Millisecond

	m := NewManager(cfg, nil)
	if _, err := m.Connect(context.Background(), NewSubscription("demo")); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer m.Disconnect()

	var first, second []byte
	for _, dst := range []*[]byte{&first, &second} {
		select {
		case *dst = <-pings:
		case <-time.After(2 * time.Second):
			t.Fatal("timeout waiting for keepalive ping")
		}
	}

	if len(first) != pingPayloadSize {
		t.Errorf("ping payload = %d bytes, want %d", len(first), pingPayloadSize)
	}
	if string(first) == string(second) {
		t.Error("ping payloads should be random")
	}
}

func TestManager_ReconnectResumesSameChannel(t *testing.T) {
	var conns atomic.Int32

	server := mockWSServer(t, func(conn *websocket.Conn, r *http.Request) {
		switch conns.Add(1) {
		case 1:
			conn.WriteMessage(websocket.TextMessage, eventFrame("ChannelCreated", "before"))
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "restart"),
				time.Now().Add(time.Second))
		default:
			conn.WriteMessage(websocket.TextMessage, eventFrame("ChannelCreated", "after"))
			drainUntilClosed(conn)
		}
	})
	defer server.Close()

	m := NewManager(testConfig(server.URL), nil)
	events, err := m.Connect(context.Background(), NewSubscription("demo"))
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer m.Disconnect()

	if id := channelID(t, receive(t, events)); id != "before" {
		t.Errorf("first channel = %q, want before", id)
	}
	if id := channelID(t, receive(t, events)); id != "after" {
		t.Errorf("second channel = %q, want after", id)
	}

	if got := m.Stats().Reconnects; got != 1 {
		t.Errorf("Reconnects = %d, want 1", got)
	}
	if conns.Load() != 2 {
		t.Errorf("server saw %d connections, want 2", conns.Load())
	}
}

func TestManager_InitialDialFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Invalid application", http.StatusBadRequest)
	}))
	defer server.Close()

	m := NewManager(testConfig(server.URL), nil)
	_, err := m.Connect(context.Background(), NewSubscription("demo"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "HTTP 400") {
		t.Errorf("error = %v, want HTTP status", err)
	}
	if m.State() != StateDisconnected {
		t.Errorf("State = %s, want disconnected", m.State())
	}

	// A failed handshake leaves the manager usable.
	m.Disconnect()
	if m.State() != StateClosed {
		t.Errorf("State = %s, want closed", m.State())
	}
}

func TestManager_ConfigurationErrors(t *testing.T) {
	t.Run("empty application", func(t *testing.T) {
		m := NewManager(testConfig("http://localhost:8088"), nil)
		defer m.Disconnect()

		if _, err := m.Connect(context.Background(), NewSubscription("")); !errors.Is(err, ErrEmptyApplication) {
			t.Errorf("error = %v, want ErrEmptyApplication", err)
		}
	})

	t.Run("invalid base URL closes the manager", func(t *testing.T) {
		m := NewManager(testConfig("ftp://localhost"), nil)

		if _, err := m.Connect(context.Background(), NewSubscription("demo")); !errors.Is(err, ErrInvalidBaseURL) {
			t.Fatalf("error = %v, want ErrInvalidBaseURL", err)
		}
		if m.State() != StateClosed {
			t.Errorf("State = %s, want closed", m.State())
		}
		if _, err := m.Connect(context.Background(), NewSubscription("demo")); !errors.Is(err, ErrAlreadyClosed) {
			t.Errorf("second Connect error = %v, want ErrAlreadyClosed", err)
		}

		select {
		case <-m.Done():
		default:
			t.Error("Done should be closed")
		}
	})
}

func TestManager_ConnectTwice(t *testing.T) {
	server := mockWSServer(t, func(conn *websocket.Conn, r *http.Request) {
		drainUntilClosed(conn)
	})
	defer server.Close()

	m := NewManager(testConfig(server.URL), nil)
	if _, err := m.Connect(context.Background(), NewSubscription("demo")); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer m.Disconnect()

	if _, err := m.Connect(context.Background(), NewSubscription("demo")); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("error = %v, want ErrAlreadyStarted", err)
	}
}

func TestManager_DisconnectIsIdempotent(t *testing.T) {
	closeCode := make(chan int, 1)

	server := mockWSServer(t, func(conn *websocket.Conn, r *http.Request) {
		_, _, err := conn.ReadMessage()
		var ce *websocket.CloseError
		if errors.As(err, &ce) {
			closeCode <- ce.Code
		}
	})
	defer server.Close()

	m := NewManager(testConfig(server.URL), nil)
	events, err := m.Connect(context.Background(), NewSubscription("demo"))
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	if err := m.Disconnect(); err != nil {
		t.Fatalf("Disconnect failed: %v", err)
	}
	if err := m.Disconnect(); err != nil {
		t.Fatalf("second Disconnect failed: %v", err)
	}

	if _, ok := <-events; ok {
		t.Error("event channel should be closed")
	}
	if m.State() != StateClosed {
		t.Errorf("State = %s, want closed", m.State())
	}

	select {
	case code := <-closeCode:
		if code != websocket.CloseNormalClosure {
			t.Errorf("close code = %d, want %d", code, websocket.CloseNormalClosure)
		}
	case <-time.After(2 * time.Second):
		t.Error("server never saw a close frame")
	}

	if _, err := m.Connect(context.Background(), NewSubscription("demo")); !errors.Is(err, ErrAlreadyClosed) {
		t.Errorf("Connect after Disconnect = %v, want ErrAlreadyClosed", err)
	}
}

func TestManager_DisconnectWithFullChannel(t *testing.T) {
	server := mockWSServer(t, func(conn *websocket.Conn, r *http.Request) {
		for i := 0; i < 10; i++ {
			conn.WriteMessage(websocket.TextMessage, eventFrame("ChannelCreated", "x"))
		}
		drainUntilClosed(conn)
	})
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.BufferSize = 2

	m := NewManager(cfg, nil)
	if _, err := m.Connect(context.Background(), NewSubscription("demo")); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	// Nobody reads: the manager is blocked on a full channel.
	time.Sleep(50 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		m.Disconnect()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Disconnect blocked on a full event channel")
	}
}

// -----------------------------------------------------------------------------
// Fake dialer tests
// -----------------------------------------------------------------------------

// fakeConn is a socket that blocks in ReadMessage until closed, or fails
// immediately when readErr is set.
type fakeConn struct {
	readErr   error
	closed    chan struct{}
	closeOnce sync.Once

	mu   sync.Mutex
	pong func(string) error
}

func newFakeConn(readErr error) *fakeConn {
	return &fakeConn{readErr: readErr, closed: make(chan struct{})}
}

func (c *fakeConn) ReadMessage() (int, []byte, error) {
	if c.readErr != nil {
		return 0, nil, c.readErr
	}
	<-c.closed
	return 0, nil, errors.New("use of closed connection")
}

func (c *fakeConn) WriteControl(int, []byte, time.Time) error { return nil }
func (c *fakeConn) SetPingHandler(func(string) error)         {}

func (c *fakeConn) SetPongHandler(h func(string) error) {
	c.mu.Lock()
	c.pong = h
	c.mu.Unlock()
}

// receivePong simulates a pong arriving on the socket.
func (c *fakeConn) receivePong() {
	c.mu.Lock()
	h := c.pong
	c.mu.Unlock()
	if h != nil {
		h("")
	}
}

func (c *fakeConn) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })
	return nil
}

// fakeDialer replays a scripted sequence of dial results. The last entry
// repeats.
type fakeDialer struct {
	mu     sync.Mutex
	script []func() (Conn, error)
	calls  int
	dialed chan int
}

func (d *fakeDialer) Dial(ctx context.Context, url string) (Conn, error) {
	d.mu.Lock()
	i := min(d.calls, len(d.script)-1)
	d.calls++
	n := d.calls
	d.mu.Unlock()

	if d.dialed != nil {
		select {
		case d.dialed <- n:
		default:
		}
	}
	return d.script[i]()
}

func (d *fakeDialer) Calls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}

var errRefused = errors.New("connection refused")

func brokenSocket() (Conn, error) { return newFakeConn(errors.New("unexpected EOF")), nil }
func refused() (Conn, error)      { return nil, errRefused }
func healthySocket() (Conn, error) {
	return newFakeConn(nil), nil
}

func TestManager_BackoffSequence(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dialer := &fakeDialer{
		script: []func() (Conn, error){
			brokenSocket, // initial connect succeeds, then drops without a frame
			refused,
			refused,
			refused,
			refused,
			healthySocket,
		},
	}

	var mu sync.Mutex
	var delays []time.Duration
	after := func(d time.Duration) <-chan time.Time {
		mu.Lock()
		delays = append(delays, d)
		mu.Unlock()
		ch := make(chan time.Time, 1)
		ch <- time.Now()
		return ch
	}

	cfg := testConfig("http://pbx:8088")
	cfg.ReconnectBaseDelay = 100 * time.Millisecond
	cfg.ReconnectMaxDelay = 300 * time.Millisecond

	m := NewManager(cfg, nil, WithDialer(dialer), WithAfterFunc(after))
	if _, err := m.Connect(context.Background(), NewSubscription("demo")); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for m.Stats().Reconnects < 1 {
		if time.Now().After(deadline) {
			t.Fatalf("never reconnected, state = %s", m.State())
		}
		time.Sleep(5 * time.Millisecond)
	}

	if m.State() != StateConnected {
		t.Errorf("State = %s, want connected", m.State())
	}

	m.Disconnect()

	want := []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		300 * time.Millisecond,
		300 * time.Millisecond,
		300 * time.Millisecond,
	}

	mu.Lock()
	defer mu.Unlock()
	if len(delays) != len(want) {
		t.Fatalf("delays = %v, want %v", delays, want)
	}
	for i := range want {
		if delays[i] != want[i] {
			t.Errorf("delay[%d] = %v, want %v", i, delays[i], want[i])
		}
	}
	if dialer.Calls() != 6 {
		t.Errorf("dial calls = %d, want 6", dialer.Calls())
	}
}

func TestManager_StopDuringBackoff(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dialer := &fakeDialer{
		script: []func() (Conn, error){brokenSocket, refused},
	}

	waiting := make(chan time.Duration, 1)
	after := func(d time.Duration) <-chan time.Time {
		select {
		case waiting <- d:
		default:
		}
		return make(chan time.Time) // never fires
	}

	cfg := testConfig("http://pbx:8088")
	cfg.ReconnectBaseDelay = time.Hour
	cfg.ReconnectMaxDelay = time.Hour

	m := NewManager(cfg, nil, WithDialer(dialer), WithAfterFunc(after))
	events, err := m.Connect(context.Background(), NewSubscription("demo"))
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	select {
	case d := <-waiting:
		if d != time.Hour {
			t.Errorf("backoff = %v, want 1h", d)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("manager never entered backoff")
	}

	if m.State() != StateReconnecting {
		t.Errorf("State = %s, want reconnecting", m.State())
	}

	start := time.Now()
	m.Disconnect()
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("Disconnect took %v during backoff", elapsed)
	}

	if _, ok := <-events; ok {
		t.Error("event channel should be closed")
	}
	if dialer.Calls() != 1 {
		t.Errorf("dial calls = %d, want 1", dialer.Calls())
	}
}

func TestManager_HealthySocketReconnectsImmediately(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	first := newFakeConn(nil)
	dialer := &fakeDialer{
		script: []func() (Conn, error){
			func() (Conn, error) { return first, nil },
			healthySocket,
		},
		dialed: make(chan int, 4),
	}

	var waits atomic.Int32
	after := func(d time.Duration) <-chan time.Time {
		waits.Add(1)
		return time.After(d)
	}

	cfg := testConfig("http://pbx:8088")
	cfg.PingInterval = 20 * time.Millisecond

	m := NewManager(cfg, nil, WithDialer(dialer), WithAfterFunc(after))
	if _, err := m.Connect(context.Background(), NewSubscription("demo")); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	<-dialer.dialed

	// Mark the first socket healthy, keep it up past one ping interval, then
	// drop it.
	m.mu.Lock()
	sessionBefore := m.session
	m.mu.Unlock()
	first.receivePong()
	time.Sleep(3 * cfg.PingInterval)
	first.Close()

	select {
	case n := <-dialer.dialed:
		if n != 2 {
			t.Errorf("dial #%d, want 2", n)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no reconnect")
	}

	m.Disconnect()

	if waits.Load() != 0 {
		t.Errorf("backoff waits = %d, want 0 after a healthy socket", waits.Load())
	}
	if m.Stats().Session == sessionBefore && sessionBefore != "" {
		t.Error("session id should change on reconnect")
	}
}

func TestManager_FlappingServerBacksOff(t *testing.T) {
	var dials atomic.Int32

	// Each connection delivers one event and is dropped straight away.
	server := mockWSServer(t, func(conn *websocket.Conn, r *http.Request) {
		dials.Add(1)
		conn.WriteMessage(websocket.TextMessage, eventFrame("StasisStart", "1"))
	})
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.ReconnectBaseDelay = 50 * time.Millisecond
	cfg.ReconnectMaxDelay = 100 * time.Millisecond

	m := NewManager(cfg, nil)
	events, err := m.Connect(context.Background(), NewSubscription("demo"))
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	go func() {
		for range events {
		}
	}()

	time.Sleep(500 * time.Millisecond)
	m.Disconnect()

	// 500ms of 50ms, 100ms, 100ms... waits allows about six dials.
	got := dials.Load()
	if got < 2 {
		t.Errorf("dials = %d, want at least one reconnect", got)
	}
	if got > 10 {
		t.Errorf("dials = %d in 500ms, want backoff between short-lived sockets", got)
	}
}

func TestManager_Stable(t *testing.T) {
	cfg := testConfig("http://pbx:8088")
	cfg.ReconnectBaseDelay = 10 * time.Millisecond
	cfg.PingInterval = time.Second
	m := NewManager(cfg, nil)
	defer m.Disconnect()

	tests := []struct {
		name   string
		alive  bool
		uptime time.Duration
		want   bool
	}{
		{"alive and up long enough", true, 2 * time.Second, true},
		{"alive but short-lived", true, 100 * time.Millisecond, false},
		{"long-lived but silent", false, time.Minute, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &socket{opened: time.Now().Add(-tt.uptime)}
			s.alive.Store(tt.alive)
			if got := m.stable(s); got != tt.want {
				t.Errorf("stable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestManager_Backoff(t *testing.T) {
	m := NewManager(ManagerConfig{
		ReconnectBaseDelay: 500 * time.Millisecond,
		ReconnectMaxDelay:  90 * time.Second,
	}, nil)
	defer m.Disconnect()

	tests := []struct {
		n    int
		want time.Duration
	}{
		{0, 0},
		{1, 500 * time.Millisecond},
		{2, time.Second},
		{10, 5 * time.Second},
		{180, 90 * time.Second},
		{1000, 90 * time.Second},
		{1 << 40, 90 * time.Second},
	}

	for _, tt := range tests {
		if got := m.backoff(tt.n); got != tt.want {
			t.Errorf("backoff(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestState_Transitions(t *testing.T) {
	if !canTransition(StateConnected, StateReconnecting) {
		t.Error("connected -> reconnecting should be allowed")
	}
	if canTransition(StateClosed, StateConnecting) {
		t.Error("closed is terminal")
	}
	if canTransition(StateDisconnected, StateConnected) {
		t.Error("disconnected -> connected must pass through connecting")
	}
	if StateReconnecting.String() != "reconnecting" {
		t.Errorf("String() = %q", StateReconnecting.String())
	}
}
