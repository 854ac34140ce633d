package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ignite/sendgrid-client/internal/sgapi"
)

// ValidationRequest is one address to validate plus an optional
// one-word provenance tag.
type ValidationRequest struct {
	Email  string `json:"email"`
	Source string `json:"source,omitempty"`
}

// Verdict is the categorical validity judgment for an address.
type Verdict string

const (
	VerdictValid   Verdict = "Valid"
	VerdictRisky   Verdict = "Risky"
	VerdictInvalid Verdict = "Invalid"
)

// DomainChecks are checks on the domain portion of the address.
type DomainChecks struct {
	HasValidAddressSyntax        bool `json:"has_valid_address_syntax"`
	HasMXOrARecord               bool `json:"has_mx_or_a_record"`
	IsSuspectedDisposableAddress bool `json:"is_suspected_disposable_address"`
}

// LocalPartChecks are checks on the local part of the address.
type LocalPartChecks struct {
	IsSuspectedRoleAddress bool `json:"is_suspected_role_address"`
}

// AdditionalChecks are bounce-history checks on the address.
type AdditionalChecks struct {
	HasKnownBounces     bool `json:"has_known_bounces"`
	HasSuspectedBounces bool `json:"has_suspected_bounces"`
}

// Checks are the granular checks performed during validation.
type Checks struct {
	Domain     DomainChecks     `json:"domain"`
	LocalPart  LocalPartChecks  `json:"local_part"`
	Additional AdditionalChecks `json:"additional"`
}

// ValidationResult is the typed verdict for a single address.
type ValidationResult struct {
	Email      string  `json:"email"`
	Verdict    Verdict `json:"verdict"`
	Score      float64 `json:"score"`
	Local      string  `json:"local"`
	Host       string  `json:"host"`
	Suggestion string  `json:"suggestion,omitempty"`
	Checks     Checks  `json:"checks"`
	IPAddress  string  `json:"ip_address,omitempty"`
	Source     string  `json:"source,omitempty"`
}

// validationEnvelope wraps the single-validation response body.
type validationEnvelope struct {
	Result *ValidationResult `json:"result"`
}

// FileType declares the format of a bulk validation upload.
type FileType string

const (
	FileTypeCSV FileType = "csv"
	FileTypeZIP FileType = "zip"
)

// uploadSlotRequest is the body of the jobs-creation call.
type uploadSlotRequest struct {
	FileType FileType `json:"file_type"`
}

// UploadHeader is one header name/value pair that must accompany the
// pre-signed upload request verbatim.
type UploadHeader struct {
	Header string `json:"header"`
	Value  string `json:"value"`
}

// UploadSlot is a single-use pre-signed upload destination plus the
// headers the upload must carry, along with the id of the job it
// belongs to. The provider has shipped this response with varying
// required fields, so everything decodes as optional and presence is
// asserted only at the point of use.
type UploadSlot struct {
	JobID         string         `json:"job_id"`
	UploadURI     string         `json:"upload_uri"`
	UploadHeaders []UploadHeader `json:"upload_headers"`
}

// JobStatus is the lifecycle status of a bulk validation job as
// reported by the provider: Initiated → Queued → Ready → Processing →
// Done, with Error reachable from any non-terminal state.
type JobStatus string

const (
	JobStatusInitiated  JobStatus = "Initiated"
	JobStatusQueued     JobStatus = "Queued"
	JobStatusReady      JobStatus = "Ready"
	JobStatusProcessing JobStatus = "Processing"
	JobStatusDone       JobStatus = "Done"
	JobStatusError      JobStatus = "Error"
)

// UnmarshalJSON normalizes the wire value to the canonical casing, so
// "processing" and "Processing" both decode to JobStatusProcessing.
// The provider has shipped both. Unknown statuses pass through as-is.
func (s *JobStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing job status: %w", err)
	}
	*s = normalizeStatus(raw)
	return nil
}

func normalizeStatus(raw string) JobStatus {
	known := []JobStatus{
		JobStatusInitiated, JobStatusQueued, JobStatusReady,
		JobStatusProcessing, JobStatusDone, JobStatusError,
	}
	for _, s := range known {
		if strings.EqualFold(raw, string(s)) {
			return s
		}
	}
	return JobStatus(raw)
}

// Terminal reports whether the job will make no further progress.
// Callers should stop polling once the status is terminal.
func (s JobStatus) Terminal() bool {
	return s == JobStatusDone || s == JobStatusError
}

// JobError is one error message attached to a failed job.
type JobError struct {
	Message string `json:"message,omitempty"`
}

// Job is the provider's authoritative view of a bulk validation job at
// poll time. Segment counts are meaningful only from Processing
// onward; before that they read as zero. IsDownloadAvailable is a
// pointer so an absent field stays distinguishable from an explicit
// false. A zero FinishedAt means the job has not finished (the wire
// reports 0).
type Job struct {
	ID                  string         `json:"id"`
	Status              JobStatus      `json:"status"`
	Segments            int            `json:"segments"`
	SegmentsProcessed   int            `json:"segments_processed"`
	IsDownloadAvailable *bool          `json:"is_download_available,omitempty"`
	StartedAt           sgapi.UnixTime `json:"started_at"`
	FinishedAt          sgapi.UnixTime `json:"finished_at"`
	Errors              []JobError     `json:"errors,omitempty"`
}

// JobSummary is one entry of the jobs-collection listing. The listing
// carries id, status, and timestamps only; segment and error detail
// requires polling the job individually.
type JobSummary struct {
	ID         string         `json:"id"`
	Status     JobStatus      `json:"status"`
	StartedAt  sgapi.UnixTime `json:"started_at"`
	FinishedAt sgapi.UnixTime `json:"finished_at"`
}

// jobListEnvelope wraps the jobs-collection response body.
type jobListEnvelope struct {
	Result []JobSummary `json:"result"`
}

// jobEnvelope covers both shapes the job-detail endpoint is known to
// return: the deeply nested response.value.result wrapper and the
// flatter result wrapper.
type jobEnvelope struct {
	Response *struct {
		Value *struct {
			Result *Job `json:"result"`
		} `json:"value"`
	} `json:"response"`
	Result *Job `json:"result"`
}

// decodeJob normalizes the job-detail response into one Job view.
// The nested shape is tried first, then the result wrapper, then flat
// top-level fields, so downstream code never branches on wire shape.
// A body that fails to decode surfaces the real decode error rather
// than falling through to the next shape.
func decodeJob(data []byte) (*Job, error) {
	var env jobEnvelope
	if err := sgapi.Decode(data, &env); err != nil {
		return nil, err
	}
	if env.Response != nil && env.Response.Value != nil && env.Response.Value.Result != nil {
		return env.Response.Value.Result, nil
	}
	if env.Result != nil {
		return env.Result, nil
	}

	var job Job
	if err := sgapi.Decode(data, &job); err != nil {
		return nil, err
	}
	if job.ID == "" && job.Status == "" {
		return nil, &sgapi.DecodeError{Err: fmt.Errorf("no job in response")}
	}
	return &job, nil
}
