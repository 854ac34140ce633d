// Package sgapi holds the request/response envelope shared by every
// SendGrid API call: the epoch-seconds date encoding, the wire error
// shape, and the decode helpers used by all client packages.
package sgapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// UnixTime is a time.Time that travels as Unix epoch seconds on the
// wire. Every date field across all SendGrid payloads uses this
// encoding, never ISO-8601. A zero UnixTime encodes as 0, and a wire
// value of 0 decodes back to the zero time (the API reports 0 for
// finished_at on unfinished jobs).
type UnixTime struct {
	time.Time
}

// NewUnixTime wraps t, truncated to second precision so that a value
// survives an encode/decode round trip byte for byte.
func NewUnixTime(t time.Time) UnixTime {
	return UnixTime{Time: t.Truncate(time.Second)}
}

// MarshalJSON encodes the time as an integer number of epoch seconds.
func (t UnixTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("0"), nil
	}
	return []byte(strconv.FormatInt(t.Unix(), 10)), nil
}

// UnmarshalJSON decodes an integer number of epoch seconds. An
// explicit null means the same as 0: the zero time.
func (t *UnixTime) UnmarshalJSON(data []byte) error {
	raw := string(bytes.TrimSpace(data))
	if raw == "null" {
		t.Time = time.Time{}
		return nil
	}
	secs, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("parsing unix timestamp %q: %w", string(data), err)
	}
	if secs == 0 {
		t.Time = time.Time{}
		return nil
	}
	t.Time = time.Unix(secs, 0).UTC()
	return nil
}

// Encode serializes an outbound request body as UTF-8 JSON.
func Encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}
	return data, nil
}

// Decode deserializes a response body into v. An empty, truncated, or
// shape-violating body yields a *DecodeError; fields absent from the
// payload are left at their zero value, never an error.
func Decode(data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return &DecodeError{Err: fmt.Errorf("empty response body")}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}
