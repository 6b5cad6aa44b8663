package registration

import (
	"context"
	"log/slog"
	"strings"

	"github.com/agro-link/agro_link/internal/notification"
)

// Flow orchestrates the two-step registration: step 1 validates identity
// fields and parks them as a draft, step 2 merges role-specific details and
// submits the composite payload upstream. The draft is the unit of
// recoverability: it survives submission failures and dies on success.
type Flow struct {
	store     DraftStore
	registrar Registrar
	notifier  notification.Notifier
	logger    *slog.Logger
}

// NewFlow wires a registration flow.
func NewFlow(store DraftStore, registrar Registrar, notifier notification.Notifier, logger *slog.Logger) *Flow {
	return &Flow{store: store, registrar: registrar, notifier: notifier, logger: logger}
}

// SubmitIdentity validates the step-1 form and stores the draft, replacing
// any prior draft for the session. It returns the step-2 path for the chosen
// role. Rules run in order and the first failure wins; nothing is written on
// failure.
func (f *Flow) SubmitIdentity(ctx context.Context, sessionID string, input IdentityInput) (string, error) {
	fullName := strings.TrimSpace(input.FullName)
	email := strings.TrimSpace(input.Email)
	phone := strings.TrimSpace(input.Phone)
	roleStr := strings.TrimSpace(input.Role)

	for _, v := range []string{fullName, email, phone, strings.TrimSpace(input.Password), strings.TrimSpace(input.RepeatPassword), roleStr} {
		if v == "" {
			return "", &ValidationError{Code: CodeMissingFields}
		}
	}
	if len(input.Password) < 6 {
		return "", &ValidationError{Code: CodePasswordTooShort}
	}
	if input.Password != input.RepeatPassword {
		return "", &ValidationError{Code: CodePasswordMismatch}
	}

	role, err := ParseRole(roleStr)
	if err != nil {
		return "", &ValidationError{Code: CodeInvalidRole}
	}

	draft := Draft{
		FullName: fullName,
		Email:    email,
		Phone:    phone,
		Password: input.Password,
		Role:     role,
	}
	if err := f.store.Put(ctx, sessionID, draft); err != nil {
		return "", err
	}

	return roleSpecs[role].NextPath, nil
}

// RequireDraft loads the session's draft. ErrNoDraft is a hard precondition
// failure: the step-2 form is unusable without step-1 data.
func (f *Flow) RequireDraft(ctx context.Context, sessionID string) (Draft, error) {
	return f.store.Get(ctx, sessionID)
}

// SubmitDetails merges the draft with role-specific details and submits the
// composite payload. On upstream acceptance the draft is deleted; on any
// submission failure it is kept so the registrant can fix the details and
// resubmit without re-entering step 1. The flow never retries on its own.
func (f *Flow) SubmitDetails(ctx context.Context, sessionID string, details DetailsInput) error {
	draft, err := f.RequireDraft(ctx, sessionID)
	if err != nil {
		return err
	}

	spec, ok := roleSpecs[draft.Role]
	if !ok {
		return &ValidationError{Code: CodeInvalidRole}
	}
	if err := spec.Validate(details); err != nil {
		return err
	}

	payload := spec.Merge(draft, details)
	if err := f.registrar.Register(ctx, payload); err != nil {
		return err
	}

	if err := f.store.Delete(ctx, sessionID); err != nil {
		// The registration already succeeded upstream; an orphaned draft
		// expires on its own TTL.
		f.logger.Warn("delete draft after submission", "session_id", sessionID, "error", err)
	}

	if f.notifier != nil {
		_ = f.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindRegistrationCompleted,
			Destination: payload.Email,
			Body:        "registration accepted for role " + string(payload.Role),
		})
	}

	return nil
}

// NextPath returns the step-2 path for a role. Used by handlers rendering
// the guard response.
func NextPath(role Role) string {
	return roleSpecs[role].NextPath
}
