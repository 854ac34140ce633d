package httpinvoke

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDoReturnsStatusAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("Method = %q, want PUT", r.Method)
		}
		if got := r.Header.Get("X-Custom"); got != "value" {
			t.Errorf("X-Custom header = %q, want %q", got, "value")
		}
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	}))
	defer server.Close()

	header := http.Header{}
	header.Set("X-Custom", "value")

	iv := New(nil)
	resp, err := iv.Do(context.Background(), Request{
		Method: http.MethodPut,
		URL:    server.URL,
		Header: header,
		Body:   []byte("payload"),
	})
	if err != nil {
		t.Fatalf("Do returned error: %v", err)
	}
	if resp.StatusCode != http.StatusTeapot {
		t.Errorf("StatusCode = %d, want %d", resp.StatusCode, http.StatusTeapot)
	}
	if string(resp.Body) != "short and stout" {
		t.Errorf("Body = %q, want %q", resp.Body, "short and stout")
	}
}

func TestDoConnectionRefused(t *testing.T) {
	// Grab a port that nothing is listening on
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	iv := New(nil)
	_, err := iv.Do(context.Background(), Request{Method: http.MethodGet, URL: url})

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("error = %T, want *TransportError", err)
	}
	if transportErr.URL != url {
		t.Errorf("TransportError.URL = %q, want %q", transportErr.URL, url)
	}
}

func TestDoTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	iv := New(nil)
	start := time.Now()
	_, err := iv.Do(context.Background(), Request{
		Method:  http.MethodGet,
		URL:     server.URL,
		Timeout: 50 * time.Millisecond,
	})

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("error = %T, want *TransportError", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("timed out after %s, want ~50ms", elapsed)
	}
}

func TestDoSingleAttempt(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	iv := New(nil)
	resp, err := iv.Do(context.Background(), Request{Method: http.MethodGet, URL: server.URL})
	if err != nil {
		t.Fatalf("Do returned error: %v", err)
	}
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("StatusCode = %d, want 503", resp.StatusCode)
	}
	// A retryable-looking status must not trigger a second attempt
	if calls != 1 {
		t.Errorf("server saw %d calls, want exactly 1", calls)
	}
}
