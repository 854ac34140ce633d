// Package sendgrid is a typed client for the SendGrid v3 Mail Send API.
package sendgrid

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ignite/sendgrid-client/internal/config"
	"github.com/ignite/sendgrid-client/internal/pkg/httpinvoke"
	"github.com/ignite/sendgrid-client/internal/pkg/logger"
	"github.com/ignite/sendgrid-client/internal/sgapi"
)

const (
	defaultBaseURL = "https://api.sendgrid.com/v3"
	euBaseURL      = "https://api.eu.sendgrid.com/v3"

	userAgent = "sendgrid-client-go/1.0"
)

// Client is a Mail Send API client. It holds only the immutable
// credential and base URL captured at construction and is safe for
// unlimited concurrent use.
type Client struct {
	baseURL string
	apiKey  string
	invoker *httpinvoke.Invoker
	timeout time.Duration
}

// NewClient creates a Mail Send client. The doer is the caller's
// already-configured transport; nil selects a default http.Client.
func NewClient(cfg config.SendGridConfig, doer httpinvoke.HTTPDoer) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		if cfg.EU {
			baseURL = euBaseURL
		} else {
			baseURL = defaultBaseURL
		}
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		invoker: httpinvoke.New(doer),
		timeout: cfg.Timeout(),
	}
}

// Send delivers one email through the Mail Send API. Any 2xx status is
// success; the provider returns an empty body on success, so the body
// is ignored. A non-2xx status yields the provider's structured error.
//
// Send is a function rather than a method so the email's dynamic
// template data type can flow through as a type parameter.
func Send[T any](ctx context.Context, c *Client, email *Email[T]) error {
	if c.apiKey == "" {
		return &sgapi.CredentialError{Scope: sgapi.ScopeMailSend}
	}

	body, err := sgapi.Encode(email)
	if err != nil {
		return err
	}

	resp, err := c.invoker.Do(ctx, httpinvoke.Request{
		Method:  http.MethodPost,
		URL:     c.baseURL + "/mail/send",
		Header:  sgapi.Headers(c.apiKey, userAgent, true),
		Body:    body,
		Timeout: c.timeout,
	})
	if err != nil {
		return fmt.Errorf("sending email: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return sgapi.DecodeAPIError(resp.StatusCode, resp.Body)
	}

	logger.Debug("email accepted", "status", fmt.Sprintf("%d", resp.StatusCode))
	return nil
}
