package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/MorseWayne/shop_front/internal/domain"
)

func testProduct() *domain.Product {
	return &domain.Product{ID: "p001", Name: "Studio Monitor", Price: 299.0}
}

func testUser() *domain.User {
	return &domain.User{ID: "u001", Username: "alice"}
}

func filledWorkflow(client *mockEnquiryClient) *EnquiryWorkflow {
	w := NewEnquiryWorkflow(client, zap.NewNop())
	w.Open(testProduct())

	name := "Alice"
	email := "alice@example.com"
	phone := "555-0101"
	qty := 3
	if _, err := w.Edit(domain.EnquiryFieldEdit{Name: &name, Email: &email, PhoneNumber: &phone, Quantity: &qty}); err != nil {
		panic(err)
	}
	return w
}

func TestEnquiryWorkflow_OpenResetsDraft(t *testing.T) {
	w := filledWorkflow(&mockEnquiryClient{})

	// Reopening against another product must discard prior field values.
	modal := w.Open(&domain.Product{ID: "p002", Name: "Subwoofer"})
	if modal.State != domain.EnquiryStateOpen {
		t.Errorf("state = %v, want open", modal.State)
	}
	if modal.Draft.ProductID != "p002" || modal.Draft.ProductName != "Subwoofer" {
		t.Errorf("draft product = %v/%v, want p002/Subwoofer", modal.Draft.ProductID, modal.Draft.ProductName)
	}
	if modal.Draft.Name != "" || modal.Draft.Quantity != 0 {
		t.Errorf("draft fields not reset: %+v", modal.Draft)
	}
}

func TestEnquiryWorkflow_EditRequiresOpen(t *testing.T) {
	w := NewEnquiryWorkflow(&mockEnquiryClient{}, zap.NewNop())

	name := "Alice"
	if _, err := w.Edit(domain.EnquiryFieldEdit{Name: &name}); !errors.Is(err, ErrEnquiryNotOpen) {
		t.Errorf("Edit() on closed modal error = %v, want ErrEnquiryNotOpen", err)
	}
}

func TestEnquiryWorkflow_CloseDiscardsDraft(t *testing.T) {
	w := filledWorkflow(&mockEnquiryClient{})

	modal := w.Close()
	if modal.State != domain.EnquiryStateClosed {
		t.Errorf("state = %v, want closed", modal.State)
	}
	if modal.Draft != (domain.EnquiryDraft{}) {
		t.Errorf("draft after close = %+v, want zero", modal.Draft)
	}

	// Closing again is idempotent.
	modal = w.Close()
	if modal.State != domain.EnquiryStateClosed {
		t.Errorf("state after second close = %v, want closed", modal.State)
	}
}

func TestEnquiryWorkflow_SubmitSuccess(t *testing.T) {
	client := &mockEnquiryClient{receipt: &domain.EnquiryReceipt{ID: "q9"}}
	w := filledWorkflow(client)

	note, err := w.Submit(context.Background(), testUser())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if note.Level != domain.NotificationSuccess {
		t.Errorf("notification level = %v, want success", note.Level)
	}
	if note.Message != "Query submitted successfully" {
		t.Errorf("notification message = %q", note.Message)
	}
	if note.Path != "/user/query/q9" {
		t.Errorf("notification path = %q, want /user/query/q9", note.Path)
	}

	modal := w.Modal()
	if modal.State != domain.EnquiryStateClosed {
		t.Errorf("state after success = %v, want closed", modal.State)
	}
	if modal.Draft != (domain.EnquiryDraft{}) {
		t.Errorf("draft after success = %+v, want zero", modal.Draft)
	}

	if client.lastUserID != "u001" {
		t.Errorf("submitter id = %q, want u001", client.lastUserID)
	}
	if client.lastPayload.ProductID != "p001" || client.lastPayload.Quantity != 3 {
		t.Errorf("submitted payload = %+v", client.lastPayload)
	}
}

func TestEnquiryWorkflow_SubmitFailureKeepsDraft(t *testing.T) {
	client := &mockEnquiryClient{err: errUpstreamDown}
	w := filledWorkflow(client)

	note, err := w.Submit(context.Background(), testUser())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if note.Level != domain.NotificationError {
		t.Errorf("notification level = %v, want error", note.Level)
	}
	if note.Message != "Error submitting enquiry" {
		t.Errorf("notification message = %q", note.Message)
	}

	// Modal stays open with the draft intact so the shopper can retry.
	modal := w.Modal()
	if modal.State != domain.EnquiryStateOpen {
		t.Errorf("state after failure = %v, want open", modal.State)
	}
	if modal.Draft.Name != "Alice" || modal.Draft.Quantity != 3 {
		t.Errorf("draft after failure = %+v, want retained", modal.Draft)
	}
}

func TestEnquiryWorkflow_SubmitValidation(t *testing.T) {
	tests := []struct {
		name    string
		edit    func(d *domain.EnquiryFieldEdit)
		wantErr error
	}{
		{
			name:    "missing name",
			edit:    func(d *domain.EnquiryFieldEdit) { d.Name = nil },
			wantErr: domain.ErrDraftNameRequired,
		},
		{
			name:    "missing email",
			edit:    func(d *domain.EnquiryFieldEdit) { d.Email = nil },
			wantErr: domain.ErrDraftEmailRequired,
		},
		{
			name:    "missing phone",
			edit:    func(d *domain.EnquiryFieldEdit) { d.PhoneNumber = nil },
			wantErr: domain.ErrDraftPhoneRequired,
		},
		{
			name:    "zero quantity",
			edit:    func(d *domain.EnquiryFieldEdit) { d.Quantity = nil },
			wantErr: domain.ErrDraftInvalidQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockEnquiryClient{receipt: &domain.EnquiryReceipt{ID: "q1"}}
			w := NewEnquiryWorkflow(client, zap.NewNop())
			w.Open(testProduct())

			name := "Alice"
			email := "alice@example.com"
			phone := "555-0101"
			qty := 2
			edit := domain.EnquiryFieldEdit{Name: &name, Email: &email, PhoneNumber: &phone, Quantity: &qty}
			tt.edit(&edit)
			if _, err := w.Edit(edit); err != nil {
				t.Fatalf("Edit() error = %v", err)
			}

			_, err := w.Submit(context.Background(), testUser())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Submit() error = %v, want %v", err, tt.wantErr)
			}
			if client.calls != 0 {
				t.Errorf("upstream called %d times on invalid draft, want 0", client.calls)
			}
			// Validation failure leaves the modal open.
			if modal := w.Modal(); modal.State != domain.EnquiryStateOpen {
				t.Errorf("state after validation failure = %v, want open", modal.State)
			}
		})
	}
}

func TestEnquiryWorkflow_SubmitNotOpen(t *testing.T) {
	w := NewEnquiryWorkflow(&mockEnquiryClient{}, zap.NewNop())

	if _, err := w.Submit(context.Background(), testUser()); !errors.Is(err, ErrEnquiryNotOpen) {
		t.Errorf("Submit() on closed modal error = %v, want ErrEnquiryNotOpen", err)
	}
}

func TestEnquiryWorkflow_StaleResultDiscarded(t *testing.T) {
	client := &mockEnquiryClient{receipt: &domain.EnquiryReceipt{ID: "q9"}}
	w := filledWorkflow(client)

	// The modal is closed while the submission is in flight; the late
	// success must not reopen or mutate the new state.
	client.onSubmit = func() { w.Close() }

	_, err := w.Submit(context.Background(), testUser())
	if !errors.Is(err, ErrSubmissionSuperseded) {
		t.Fatalf("Submit() error = %v, want ErrSubmissionSuperseded", err)
	}
	if modal := w.Modal(); modal.State != domain.EnquiryStateClosed {
		t.Errorf("state after stale result = %v, want closed", modal.State)
	}
}

func TestEnquiryWorkflow_StaleResultAfterReopen(t *testing.T) {
	client := &mockEnquiryClient{err: errUpstreamDown}
	w := filledWorkflow(client)

	other := &domain.Product{ID: "p777", Name: "Turntable"}
	client.onSubmit = func() {
		w.Close()
		w.Open(other)
	}

	_, err := w.Submit(context.Background(), testUser())
	if !errors.Is(err, ErrSubmissionSuperseded) {
		t.Fatalf("Submit() error = %v, want ErrSubmissionSuperseded", err)
	}

	// The reopened modal keeps its fresh draft untouched.
	modal := w.Modal()
	if modal.State != domain.EnquiryStateOpen {
		t.Errorf("state = %v, want open", modal.State)
	}
	if modal.Draft.ProductID != "p777" {
		t.Errorf("draft product = %v, want p777", modal.Draft.ProductID)
	}
}
