package sgapi

import (
	"fmt"
	"strings"
)

// Scope identifies which API credential an operation requires.
type Scope string

const (
	// ScopeMailSend is the credential scope for the Mail Send API.
	ScopeMailSend Scope = "mail-send"
	// ScopeValidation is the credential scope for the Email Address
	// Validation API.
	ScopeValidation Scope = "email-validation"
)

// CredentialError reports that the credential required for an
// operation's scope was never configured. It is returned before any
// network call is made.
type CredentialError struct {
	Scope Scope
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("no API key configured for %s scope", e.Scope)
}

// DecodeError reports a response body that was present but could not
// be decoded into the expected shape, or was empty where a body was
// required. It is distinct from a provider-reported APIError: the
// request was sent, but the response was unintelligible.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ErrorDetail is one entry of the wire error shape
// {"errors":[{"message","field","help"}],"id"}. All fields are
// optional on the wire.
type ErrorDetail struct {
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
	Help    string `json:"help,omitempty"`
}

// APIError is a structured error reported by the SendGrid API on a
// non-2xx status. When available it carries the offending field name
// and help text for caller diagnostics.
type APIError struct {
	StatusCode int           `json:"-"`
	Errors     []ErrorDetail `json:"errors,omitempty"`
	ID         string        `json:"id,omitempty"`
}

func (e *APIError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "sendgrid API error (status %d)", e.StatusCode)
	for _, d := range e.Errors {
		sb.WriteString(": ")
		sb.WriteString(d.Message)
		if d.Field != "" {
			fmt.Fprintf(&sb, " (field %s)", d.Field)
		}
	}
	if e.ID != "" {
		fmt.Fprintf(&sb, " [id %s]", e.ID)
	}
	return sb.String()
}

// DecodeAPIError interprets a non-2xx response body. If the body
// decodes as the wire error shape, the result is an *APIError carrying
// the status code. If the body is empty or malformed (common for 5xx
// and gateway responses), the decode failure itself is surfaced so
// callers can tell "sent, rejected" from "sent, response
// unintelligible".
func DecodeAPIError(statusCode int, body []byte) error {
	apiErr := &APIError{StatusCode: statusCode}
	if err := Decode(body, apiErr); err != nil {
		return err
	}
	return apiErr
}
