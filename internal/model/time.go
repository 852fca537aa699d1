package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// TimestampLayout is the layout Asterisk uses for event and object timestamps,
// e.g. 2020-11-22T20:12:51.214+0000.
const TimestampLayout = "2006-01-02T15:04:05.000-0700"

// Accepted layouts, tried in order.
var timestampLayouts = []string{
	TimestampLayout,
	"2006-01-02T15:04:05-0700",
	time.RFC3339Nano,
}

// Timestamp is a timezone-aware instant normalised to UTC.
type Timestamp struct {
	time.Time
}

// ParseTimestamp parses an ARI timestamp string.
func ParseTimestamp(s string) (Timestamp, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t.UTC()}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("invalid timestamp %q", s)
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}

	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalJSON implements json.Marshaler using TimestampLayout.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(TimestampLayout))
}
