package registration

import (
	"context"
	"errors"
	"testing"

	"github.com/agro-link/agro_link/internal/logging"
)

type captureRegistrar struct {
	payloads []Payload
	err      error
}

func (r *captureRegistrar) Register(_ context.Context, payload Payload) error {
	if r.err != nil {
		return r.err
	}
	r.payloads = append(r.payloads, payload)
	return nil
}

func newTestFlow(registrar Registrar) (*Flow, DraftStore) {
	store := NewMemoryStore()
	return NewFlow(store, registrar, nil, logging.Discard()), store
}

func validIdentity() IdentityInput {
	return IdentityInput{
		FullName:       "A B",
		Email:          "a@b.com",
		Phone:          "0711234567",
		Password:       "secret1",
		RepeatPassword: "secret1",
		Role:           "Farmer",
	}
}

func TestSubmitIdentityStoresDraftWithoutRepeatPassword(t *testing.T) {
	flow, store := newTestFlow(&captureRegistrar{})
	ctx := context.Background()

	next, err := flow.SubmitIdentity(ctx, "s1", validIdentity())
	if err != nil {
		t.Fatalf("submit identity: %v", err)
	}
	if next != "/register/farmer" {
		t.Fatalf("expected farmer step-2 path, got %s", next)
	}

	draft, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("get draft: %v", err)
	}
	if draft.FullName != "A B" || draft.Email != "a@b.com" || draft.Password != "secret1" || draft.Role != RoleFarmer {
		t.Fatalf("unexpected draft %+v", draft)
	}
}

func TestSubmitIdentityValidationOrder(t *testing.T) {
	flow, store := newTestFlow(&captureRegistrar{})
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*IdentityInput)
		code   string
	}{
		{"missing full name", func(i *IdentityInput) { i.FullName = "  " }, CodeMissingFields},
		{"missing role", func(i *IdentityInput) { i.Role = "" }, CodeMissingFields},
		{"short password", func(i *IdentityInput) { i.Password = "abc"; i.RepeatPassword = "abc" }, CodePasswordTooShort},
		{"mismatch", func(i *IdentityInput) { i.RepeatPassword = "secret2" }, CodePasswordMismatch},
		// An empty password reports missing_fields before the length rule.
		{"empty password", func(i *IdentityInput) { i.Password = ""; i.RepeatPassword = "x" }, CodeMissingFields},
		{"unknown role", func(i *IdentityInput) { i.Role = "Admin" }, CodeInvalidRole},
	}

	for _, tc := range cases {
		input := validIdentity()
		tc.mutate(&input)

		_, err := flow.SubmitIdentity(ctx, "s1", input)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
		if verr.Code != tc.code {
			t.Fatalf("%s: expected code %s, got %s", tc.name, tc.code, verr.Code)
		}
		if _, err := store.Get(ctx, "s1"); !errors.Is(err, ErrNoDraft) {
			t.Fatalf("%s: expected no draft written", tc.name)
		}
	}
}

func TestSubmitIdentityOverwritesPriorDraft(t *testing.T) {
	flow, store := newTestFlow(&captureRegistrar{})
	ctx := context.Background()

	if _, err := flow.SubmitIdentity(ctx, "s1", validIdentity()); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	second := validIdentity()
	second.FullName = "C D"
	second.Email = "c@d.com"
	second.Role = "Buyer"
	if _, err := flow.SubmitIdentity(ctx, "s1", second); err != nil {
		t.Fatalf("second submit: %v", err)
	}

	draft, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("get draft: %v", err)
	}
	if draft.FullName != "C D" || draft.Email != "c@d.com" || draft.Role != RoleBuyer {
		t.Fatalf("expected full overwrite, got %+v", draft)
	}
}

func TestRequireDraftEmptyStore(t *testing.T) {
	flow, _ := newTestFlow(&captureRegistrar{})

	if _, err := flow.RequireDraft(context.Background(), "s1"); !errors.Is(err, ErrNoDraft) {
		t.Fatalf("expected ErrNoDraft, got %v", err)
	}
}

func TestSubmitDetailsFarmerEndToEnd(t *testing.T) {
	registrar := &captureRegistrar{}
	flow, store := newTestFlow(registrar)
	ctx := context.Background()

	if _, err := flow.SubmitIdentity(ctx, "s1", validIdentity()); err != nil {
		t.Fatalf("step 1: %v", err)
	}

	err := flow.SubmitDetails(ctx, "s1", DetailsInput{
		BusinessName:       "Green Farm",
		StreetAddress:      "12 Lane",
		District:           "Colombo",
		ZipCode:            "10100",
		RegistrationNumber: "991234567V",
	})
	if err != nil {
		t.Fatalf("step 2: %v", err)
	}

	if len(registrar.payloads) != 1 {
		t.Fatalf("expected one submission, got %d", len(registrar.payloads))
	}
	p := registrar.payloads[0]
	if p.Role != RoleFarmer || p.FullName != "A B" || p.Email != "a@b.com" || p.Password != "secret1" {
		t.Fatalf("payload missing step-1 fields: %+v", p)
	}
	if p.BusinessName != "Green Farm" || p.StreetAddress != "12 Lane" || p.District != "Colombo" ||
		p.ZipCode != "10100" || p.BusinessRegOrNic != "991234567V" {
		t.Fatalf("payload missing step-2 fields: %+v", p)
	}

	if _, err := store.Get(ctx, "s1"); !errors.Is(err, ErrNoDraft) {
		t.Fatalf("expected draft cleared after success")
	}
}

func TestSubmitDetailsBuyerTranslation(t *testing.T) {
	registrar := &captureRegistrar{}
	flow, _ := newTestFlow(registrar)
	ctx := context.Background()

	identity := validIdentity()
	identity.Role = "Buyer"
	if _, err := flow.SubmitIdentity(ctx, "s1", identity); err != nil {
		t.Fatalf("step 1: %v", err)
	}

	err := flow.SubmitDetails(ctx, "s1", DetailsInput{
		DeliveryAddress: "7 Market Rd",
		District:        "Gampaha",
		ZipCode:         "11000",
	})
	if err != nil {
		t.Fatalf("step 2: %v", err)
	}

	p := registrar.payloads[0]
	if p.StreetAddress != "7 Market Rd" {
		t.Fatalf("expected delivery address mapped to streetAddress, got %q", p.StreetAddress)
	}
	if p.BusinessRegOrNic != "" {
		t.Fatalf("expected empty businessRegOrNic for buyer, got %q", p.BusinessRegOrNic)
	}
}

func TestSubmitDetailsMissingFields(t *testing.T) {
	registrar := &captureRegistrar{}
	flow, store := newTestFlow(registrar)
	ctx := context.Background()

	if _, err := flow.SubmitIdentity(ctx, "s1", validIdentity()); err != nil {
		t.Fatalf("step 1: %v", err)
	}

	err := flow.SubmitDetails(ctx, "s1", DetailsInput{BusinessName: "Green Farm"})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Code != CodeMissingFields {
		t.Fatalf("expected missing_fields, got %v", err)
	}
	if len(registrar.payloads) != 0 {
		t.Fatalf("expected no submission on validation failure")
	}
	if _, err := store.Get(ctx, "s1"); err != nil {
		t.Fatalf("expected draft kept, got %v", err)
	}
}

func TestSubmitDetailsUpstreamRejectionKeepsDraft(t *testing.T) {
	registrar := &captureRegistrar{err: &SubmissionError{ServerMessage: "Email already exists"}}
	flow, store := newTestFlow(registrar)
	ctx := context.Background()

	if _, err := flow.SubmitIdentity(ctx, "s1", validIdentity()); err != nil {
		t.Fatalf("step 1: %v", err)
	}

	details := DetailsInput{
		BusinessName:       "Green Farm",
		StreetAddress:      "12 Lane",
		District:           "Colombo",
		ZipCode:            "10100",
		RegistrationNumber: "991234567V",
	}

	err := flow.SubmitDetails(ctx, "s1", details)
	var serr *SubmissionError
	if !errors.As(err, &serr) || serr.ServerMessage != "Email already exists" {
		t.Fatalf("expected upstream message surfaced, got %v", err)
	}
	if _, err := store.Get(ctx, "s1"); err != nil {
		t.Fatalf("expected draft kept after rejection, got %v", err)
	}

	// Retry without redoing step 1.
	registrar.err = nil
	if err := flow.SubmitDetails(ctx, "s1", details); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if _, err := store.Get(ctx, "s1"); !errors.Is(err, ErrNoDraft) {
		t.Fatalf("expected draft cleared after retry success")
	}
}

func TestSubmitDetailsWithoutDraft(t *testing.T) {
	flow, _ := newTestFlow(&captureRegistrar{})

	err := flow.SubmitDetails(context.Background(), "s1", DetailsInput{})
	if !errors.Is(err, ErrNoDraft) {
		t.Fatalf("expected ErrNoDraft, got %v", err)
	}
}
