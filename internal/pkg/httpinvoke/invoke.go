// Package httpinvoke performs single HTTP exchanges with a per-call
// timeout. It carries no retry logic: every call is one attempt, and
// retry policy belongs to the caller.
package httpinvoke

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPDoer is the interface for executing HTTP requests.
// *http.Client satisfies this interface.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// TransportError reports a connection, timeout, or TLS failure while
// performing an exchange. The request may never have reached the
// server; it is never retried automatically.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Request describes one HTTP exchange. Timeout bounds the whole call
// including reading the response body; zero means the context alone
// bounds the call.
type Request struct {
	Method  string
	URL     string
	Header  http.Header
	Body    []byte
	Timeout time.Duration
}

// Response is the raw outcome of an exchange: status code plus body
// bytes. Interpreting the status is the caller's concern.
type Response struct {
	StatusCode int
	Body       []byte
}

// Invoker issues single HTTP exchanges through an HTTPDoer.
type Invoker struct {
	client HTTPDoer
}

// New creates an Invoker. If client is nil, a zero-value http.Client
// is used; per-call timeouts come from Request.Timeout rather than a
// client-wide setting.
func New(client HTTPDoer) *Invoker {
	if client == nil {
		client = &http.Client{}
	}
	return &Invoker{client: client}
}

// Do performs one exchange and returns the status code and body. Any
// failure before a status code is available is a *TransportError.
func (iv *Invoker) Do(ctx context.Context, r Request) (*Response, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	var body io.Reader
	if len(r.Body) > 0 {
		body = bytes.NewReader(r.Body)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, r.URL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for name, values := range r.Header {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}

	resp, err := iv.client.Do(req)
	if err != nil {
		return nil, &TransportError{Method: r.Method, URL: r.URL, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: r.Method, URL: r.URL, Err: err}
	}

	return &Response{StatusCode: resp.StatusCode, Body: respBody}, nil
}
