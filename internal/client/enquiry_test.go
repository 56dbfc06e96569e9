package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/MorseWayne/shop_front/internal/domain"
)

func sampleSubmission() domain.EnquirySubmission {
	return domain.EnquirySubmission{
		ProductID:   "p1",
		ProductName: "Amp",
		Name:        "Alice",
		Email:       "alice@example.com",
		PhoneNumber: "555-0101",
		Quantity:    2,
	}
}

func TestEnquiryClient_Submit(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"success":true,"data":{"_id":"q42"}}`))
	}))
	defer srv.Close()

	c := NewEnquiryClient(srv.URL, 2*time.Second, zap.NewNop())
	receipt, err := c.Submit(context.Background(), "u1", sampleSubmission())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if receipt.ID != "q42" {
		t.Errorf("receipt ID = %q, want q42", receipt.ID)
	}
	if receipt.QueryPath() != "/user/query/q42" {
		t.Errorf("query path = %q", receipt.QueryPath())
	}

	if gotPath != "/users/u1/queries" {
		t.Errorf("request path = %q", gotPath)
	}
	// Wire field names follow the enquiry service contract.
	if gotBody["id"] != "p1" || gotBody["product"] != "Amp" || gotBody["phoneNumber"] != "555-0101" {
		t.Errorf("request body = %v", gotBody)
	}
}

func TestEnquiryClient_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false}`))
	}))
	defer srv.Close()

	c := NewEnquiryClient(srv.URL, 2*time.Second, zap.NewNop())
	_, err := c.Submit(context.Background(), "u1", sampleSubmission())
	if !errors.Is(err, ErrEnquiryRejected) {
		t.Errorf("Submit() error = %v, want ErrEnquiryRejected", err)
	}
}

func TestEnquiryClient_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := NewEnquiryClient(srv.URL, 2*time.Second, zap.NewNop())
	if _, err := c.Submit(context.Background(), "u1", sampleSubmission()); err == nil {
		t.Error("Submit() error = nil, want decode error")
	}
}

func TestCartClient_AddItem(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewCartClient(srv.URL, 2*time.Second, zap.NewNop())
	line := domain.CartLineRequest{ProductID: "p1", Name: "Amp", Quantity: 1, Price: 199.5, ProductImg: "amp.jpg"}
	if err := c.AddItem(context.Background(), "u1", line); err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}

	if gotPath != "/users/u1/cart/items" {
		t.Errorf("request path = %q", gotPath)
	}
	if gotBody["productId"] != "p1" || gotBody["quantity"] != float64(1) {
		t.Errorf("request body = %v", gotBody)
	}
}

func TestCartClient_AddItemUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewCartClient(srv.URL, 2*time.Second, zap.NewNop())
	line := domain.CartLineRequest{ProductID: "p1", Name: "Amp", Quantity: 1}
	if err := c.AddItem(context.Background(), "u1", line); err == nil {
		t.Error("AddItem() error = nil, want error")
	}
}
