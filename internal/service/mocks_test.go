package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MorseWayne/shop_front/internal/domain"
)

// Mock CatalogClient for testing
type mockCatalogClient struct {
	products []*domain.Product
	err      error
	calls    int
}

func (m *mockCatalogClient) FetchProducts(ctx context.Context) ([]*domain.Product, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.products, nil
}

// Mock EnquiryClient for testing
type mockEnquiryClient struct {
	receipt *domain.EnquiryReceipt
	err     error

	calls       int
	lastUserID  string
	lastPayload domain.EnquirySubmission
	// onSubmit runs inside Submit before returning, letting tests mutate
	// workflow state while the request is in flight.
	onSubmit func()
}

func (m *mockEnquiryClient) Submit(ctx context.Context, submitterID string, sub domain.EnquirySubmission) (*domain.EnquiryReceipt, error) {
	m.calls++
	m.lastUserID = submitterID
	m.lastPayload = sub
	if m.onSubmit != nil {
		m.onSubmit()
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.receipt, nil
}

// Mock CartClient for testing
type mockCartClient struct {
	err   error
	calls int
	lines []domain.CartLineRequest
}

func (m *mockCartClient) AddItem(ctx context.Context, userID string, line domain.CartLineRequest) error {
	m.calls++
	m.lines = append(m.lines, line)
	return m.err
}

var errUpstreamDown = errors.New("upstream unavailable")

// makeProducts generates n products with rotating categories and types.
func makeProducts(n int) []*domain.Product {
	categories := []string{"Amplifier", "Speaker", "Mixer"}
	types := []string{"analog", "digital"}

	products := make([]*domain.Product, 0, n)
	for i := 0; i < n; i++ {
		products = append(products, &domain.Product{
			ID:       fmt.Sprintf("p%03d", i+1),
			Name:     fmt.Sprintf("Product %d", i+1),
			Price:    float64(i+1) * 10,
			Category: categories[i%len(categories)],
			Type:     types[i%len(types)],
		})
	}
	return products
}
