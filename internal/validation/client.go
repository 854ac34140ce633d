// Package validation is a typed client for the SendGrid Email Address
// Validation API: single-address validation and the bulk validation
// job lifecycle (upload slot → file upload → status polling).
package validation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ignite/sendgrid-client/internal/config"
	"github.com/ignite/sendgrid-client/internal/pkg/httpinvoke"
	"github.com/ignite/sendgrid-client/internal/pkg/logger"
	"github.com/ignite/sendgrid-client/internal/sgapi"
)

const (
	defaultBaseURL = "https://api.sendgrid.com/v3/validations/email"
	euBaseURL      = "https://api.eu.sendgrid.com/v3/validations/email"

	userAgent = "sendgrid-client-go/1.0"
)

// ErrIncompleteUploadSlot reports an upload slot that is missing the
// pre-signed URI or the mandatory header set.
var ErrIncompleteUploadSlot = errors.New("upload slot is missing upload URI or headers")

// Client is an Email Address Validation API client. Bulk jobs stay on
// the provider side; each poll re-fetches authoritative state, and the
// only correlation token callers need to persist is the job id. The
// client holds no mutable state and is safe for unlimited concurrent
// use.
type Client struct {
	baseURL       string
	apiKey        string
	invoker       *httpinvoke.Invoker
	timeout       time.Duration
	uploadTimeout time.Duration
}

// NewClient creates a validation client. The doer is the caller's
// already-configured transport; nil selects a default http.Client.
func NewClient(cfg config.ValidationConfig, doer httpinvoke.HTTPDoer) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		if cfg.EU {
			baseURL = euBaseURL
		} else {
			baseURL = defaultBaseURL
		}
	}
	return &Client{
		baseURL:       baseURL,
		apiKey:        cfg.APIKey,
		invoker:       httpinvoke.New(doer),
		timeout:       cfg.Timeout(),
		uploadTimeout: cfg.UploadTimeout(),
	}
}

// checkCredential fails fast, before any network call, when the
// validation credential is absent.
func (c *Client) checkCredential() error {
	if c.apiKey == "" {
		return &sgapi.CredentialError{Scope: sgapi.ScopeValidation}
	}
	return nil
}

// doJSON performs one API call with bearer auth and decodes a non-2xx
// response into the provider's structured error. On success it returns
// the raw body for the caller to decode.
func (c *Client) doJSON(ctx context.Context, method, url string, body []byte) ([]byte, error) {
	resp, err := c.invoker.Do(ctx, httpinvoke.Request{
		Method:  method,
		URL:     url,
		Header:  sgapi.Headers(c.apiKey, userAgent, body != nil),
		Body:    body,
		Timeout: c.timeout,
	})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, sgapi.DecodeAPIError(resp.StatusCode, resp.Body)
	}
	return resp.Body, nil
}

// Validate checks a single email address and returns the typed
// verdict.
func (c *Client) Validate(ctx context.Context, req ValidationRequest) (*ValidationResult, error) {
	if err := c.checkCredential(); err != nil {
		return nil, err
	}

	body, err := sgapi.Encode(req)
	if err != nil {
		return nil, err
	}

	respBody, err := c.doJSON(ctx, http.MethodPost, c.baseURL, body)
	if err != nil {
		return nil, fmt.Errorf("validating email: %w", err)
	}

	var env validationEnvelope
	if err := sgapi.Decode(respBody, &env); err != nil {
		return nil, err
	}
	if env.Result == nil {
		return nil, &sgapi.DecodeError{Err: fmt.Errorf("no validation result in response")}
	}
	return env.Result, nil
}

// RequestUploadSlot asks the provider for a pre-signed upload
// destination for a bulk validation file of the declared type. This
// call alone does not start processing; processing starts once the
// file is actually uploaded. The returned slot is single-use and
// expires, so it must be consumed by exactly one UploadFile call.
func (c *Client) RequestUploadSlot(ctx context.Context, fileType FileType) (*UploadSlot, error) {
	if err := c.checkCredential(); err != nil {
		return nil, err
	}

	body, err := sgapi.Encode(uploadSlotRequest{FileType: fileType})
	if err != nil {
		return nil, err
	}

	respBody, err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/jobs", body)
	if err != nil {
		return nil, fmt.Errorf("requesting upload slot: %w", err)
	}

	var slot UploadSlot
	if err := sgapi.Decode(respBody, &slot); err != nil {
		return nil, err
	}
	return &slot, nil
}

// UploadFile PUTs the raw file bytes to the slot's pre-signed URI with
// exactly the header set the slot supplied, under the long upload
// timeout. Success is determined purely by a 2xx status on the PUT;
// the returned job id is the slot's, passed through unchanged. The
// slot is consumed either way and must not be reused.
func (c *Client) UploadFile(ctx context.Context, slot *UploadSlot, fileData []byte) (bool, string, error) {
	if err := c.checkCredential(); err != nil {
		return false, "", err
	}
	if slot == nil || slot.UploadURI == "" || len(slot.UploadHeaders) == 0 {
		return false, "", ErrIncompleteUploadSlot
	}

	header := http.Header{}
	for _, h := range slot.UploadHeaders {
		header.Add(h.Header, h.Value)
	}

	resp, err := c.invoker.Do(ctx, httpinvoke.Request{
		Method:  http.MethodPut,
		URL:     slot.UploadURI,
		Header:  header,
		Body:    fileData,
		Timeout: c.uploadTimeout,
	})
	if err != nil {
		return false, slot.JobID, fmt.Errorf("uploading file: %w", err)
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	logger.Debug("bulk validation file uploaded",
		"job_id", slot.JobID,
		"status", fmt.Sprintf("%d", resp.StatusCode),
		"bytes", fmt.Sprintf("%d", len(fileData)))
	return ok, slot.JobID, nil
}

// CheckJob fetches the current state of a bulk validation job. Each
// call is a single synchronous probe; polling cadence and termination
// are the caller's concern (stop once Status is terminal).
func (c *Client) CheckJob(ctx context.Context, jobID string) (*Job, error) {
	if err := c.checkCredential(); err != nil {
		return nil, err
	}

	respBody, err := c.doJSON(ctx, http.MethodGet, c.baseURL+"/jobs/"+jobID, nil)
	if err != nil {
		return nil, fmt.Errorf("checking job %s: %w", jobID, err)
	}

	return decodeJob(respBody)
}

// ListJobs fetches all bulk validation jobs visible to the account,
// with id, status, and timestamps only.
func (c *Client) ListJobs(ctx context.Context) ([]JobSummary, error) {
	if err := c.checkCredential(); err != nil {
		return nil, err
	}

	respBody, err := c.doJSON(ctx, http.MethodGet, c.baseURL+"/jobs", nil)
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}

	var env jobListEnvelope
	if err := sgapi.Decode(respBody, &env); err != nil {
		return nil, err
	}
	return env.Result, nil
}

// UploadBulk chains RequestUploadSlot and UploadFile for the common
// case where the caller does not need the slot itself.
func (c *Client) UploadBulk(ctx context.Context, fileData []byte, fileType FileType) (bool, string, error) {
	slot, err := c.RequestUploadSlot(ctx, fileType)
	if err != nil {
		return false, "", err
	}
	return c.UploadFile(ctx, slot, fileData)
}
