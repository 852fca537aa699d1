package connection

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rickgao/ari-events/internal/auth"
)

// EventsPath is appended to the base URL path to reach the event socket.
const EventsPath = "/ari/events"

// EventsURL builds the event socket URL for req.
//
// The scheme is mapped http→ws and https→wss; ws and wss are kept. The query
// carries api_key ("user:password"), app and subscribeAll.
func EventsURL(baseURL string, creds auth.Credentials, req SubscriptionRequest) (string, error) {
	if req.App == "" {
		return "", ErrEmptyApplication
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidBaseURL, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: missing host", ErrInvalidBaseURL)
	}

	u.Path = strings.TrimSuffix(u.Path, "/") + EventsPath
	u.RawPath = ""
	u.Fragment = ""

	q := url.Values{}
	q.Set("api_key", creds.APIKey())
	q.Set("app", req.App)
	q.Set("subscribeAll", strconv.FormatBool(req.subscribeAll()))
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// redact drops the query (which carries the password) for logging.
func redact(target string) string {
	u, err := url.Parse(target)
	if err != nil {
		return "<invalid>"
	}
	u.RawQuery = ""
	u.User = nil
	return u.String()
}
