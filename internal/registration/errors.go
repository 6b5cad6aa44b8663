package registration

import "errors"

// Validation failure codes, in the order step-1 rules are evaluated.
const (
	CodeMissingFields    = "missing_fields"
	CodePasswordTooShort = "password_too_short"
	CodePasswordMismatch = "password_mismatch"
	CodeInvalidRole      = "invalid_role"
)

// NetworkErrorMessage is reported when the upstream registrar is unreachable.
const NetworkErrorMessage = "network_error"

// ErrNoDraft indicates step 2 was reached without step-1 data. The only
// remedy is restarting at step 1.
var ErrNoDraft = errors.New("no registration draft")

// ValidationError is a client-detected failure raised before any draft is
// written or any network call is made.
type ValidationError struct {
	Code string
}

func (e *ValidationError) Error() string {
	return e.Code
}

// SubmissionError is a post-submission failure. ServerMessage carries the
// upstream response body verbatim, or NetworkErrorMessage when the transport
// failed before a response arrived. The draft survives a SubmissionError so
// the registrant can resubmit without redoing step 1.
type SubmissionError struct {
	ServerMessage string
}

func (e *SubmissionError) Error() string {
	return e.ServerMessage
}
