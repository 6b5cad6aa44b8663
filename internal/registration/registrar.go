package registration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

// Registrar submits the composite payload to the identity service that owns
// user persistence. A nil error means the upstream accepted the whole
// payload; any failure is reported as a *SubmissionError.
type Registrar interface {
	Register(ctx context.Context, payload Payload) error
}

// HTTPRegistrar posts registrations to the identity service over HTTP.
type HTTPRegistrar struct {
	baseURL string
	client  *http.Client
}

// NewHTTPRegistrar builds a registrar targeting the given base URL. The
// client carries its own timeout so an abandoned caller cannot leave the
// request hanging forever.
func NewHTTPRegistrar(baseURL string, client *http.Client) *HTTPRegistrar {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTPRegistrar{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// Register posts the payload to /auth/register. Non-2xx responses surface
// the response body text verbatim; transport failures surface a generic
// network error with no upstream detail available.
func (r *HTTPRegistrar) Register(ctx context.Context, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &SubmissionError{ServerMessage: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/auth/register", bytes.NewReader(body))
	if err != nil {
		return &SubmissionError{ServerMessage: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return &SubmissionError{ServerMessage: NetworkErrorMessage}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &SubmissionError{ServerMessage: strings.TrimSpace(string(msg))}
}

// StaticRegistrar accepts every registration. Useful for dev mode and tests.
type StaticRegistrar struct{}

// Register approves the payload without calling anything.
func (StaticRegistrar) Register(_ context.Context, _ Payload) error {
	return nil
}
