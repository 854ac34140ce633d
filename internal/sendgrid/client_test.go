package sendgrid

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ignite/sendgrid-client/internal/config"
	"github.com/ignite/sendgrid-client/internal/sgapi"
)

// countingDoer counts calls so tests can assert that fail-fast paths
// never touch the transport.
type countingDoer struct {
	calls int
}

func (d *countingDoer) Do(req *http.Request) (*http.Response, error) {
	d.calls++
	return &http.Response{StatusCode: 500, Body: http.NoBody}, nil
}

func testEmail() *Email[NoTemplateData] {
	return &Email[NoTemplateData]{
		Personalizations: []Personalization[NoTemplateData]{
			{To: []EmailAddress{{Email: "to@example.com"}}},
		},
		From:    EmailAddress{Email: "from@example.com"},
		Subject: "hello",
		Content: []Content{{Type: "text/plain", Value: "hi"}},
	}
}

func TestSendSuccessOnAcceptedWithEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/mail/send" {
			t.Errorf("URL.Path = %q, want /mail/send", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q, want bearer token", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", got)
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("User-Agent header missing")
		}

		body, _ := io.ReadAll(r.Body)
		var payload map[string]any
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Fatalf("request body is not JSON: %v", err)
		}
		if _, ok := payload["personalizations"]; !ok {
			t.Error("request body missing personalizations")
		}

		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client := NewClient(config.SendGridConfig{APIKey: "test-key", BaseURL: server.URL, TimeoutSeconds: 30}, nil)

	if err := Send(context.Background(), client, testEmail()); err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
}

func TestSendProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errors":[{"message":"m","field":"f"}]}`))
	}))
	defer server.Close()

	client := NewClient(config.SendGridConfig{APIKey: "test-key", BaseURL: server.URL, TimeoutSeconds: 30}, nil)

	err := Send(context.Background(), client, testEmail())

	var apiErr *sgapi.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %T, want *sgapi.APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d, want 400", apiErr.StatusCode)
	}
	if len(apiErr.Errors) != 1 || apiErr.Errors[0].Message != "m" || apiErr.Errors[0].Field != "f" {
		t.Errorf("Errors = %+v, want one entry with message m, field f", apiErr.Errors)
	}
}

func TestSendEmptyErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(config.SendGridConfig{APIKey: "test-key", BaseURL: server.URL, TimeoutSeconds: 30}, nil)

	err := Send(context.Background(), client, testEmail())

	var decodeErr *sgapi.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("error = %T, want *sgapi.DecodeError for empty error body", err)
	}
	var apiErr *sgapi.APIError
	if errors.As(err, &apiErr) {
		t.Error("empty body must not surface as a silently-empty *sgapi.APIError")
	}
}

func TestSendMissingCredentialFailsFast(t *testing.T) {
	doer := &countingDoer{}
	client := NewClient(config.SendGridConfig{TimeoutSeconds: 30}, doer)

	err := Send(context.Background(), client, testEmail())

	var credErr *sgapi.CredentialError
	if !errors.As(err, &credErr) {
		t.Fatalf("error = %T, want *sgapi.CredentialError", err)
	}
	if credErr.Scope != sgapi.ScopeMailSend {
		t.Errorf("Scope = %q, want %q", credErr.Scope, sgapi.ScopeMailSend)
	}
	if doer.calls != 0 {
		t.Errorf("transport saw %d calls, want 0", doer.calls)
	}
}

func TestNewClientRegionSelection(t *testing.T) {
	global := NewClient(config.SendGridConfig{APIKey: "k"}, nil)
	if global.baseURL != "https://api.sendgrid.com/v3" {
		t.Errorf("global baseURL = %q", global.baseURL)
	}

	eu := NewClient(config.SendGridConfig{APIKey: "k", EU: true}, nil)
	if eu.baseURL != "https://api.eu.sendgrid.com/v3" {
		t.Errorf("EU baseURL = %q", eu.baseURL)
	}

	override := NewClient(config.SendGridConfig{APIKey: "k", EU: true, BaseURL: "http://localhost:8089/v3"}, nil)
	if override.baseURL != "http://localhost:8089/v3" {
		t.Errorf("override baseURL = %q", override.baseURL)
	}
}
