package fulfillment

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSecret = "whsec_test_secret"

func basicMetadata() map[string]string {
	return map[string]string{
		MetadataTierID:      "basic",
		MetadataTierName:    "Basic Surprise",
		MetadataTierPrice:   "999",
		MetadataTipAmount:   "100",
		MetadataTotalAmount: "1099",
	}
}

func eventBody(t *testing.T, eventType string, metadata map[string]string) []byte {
	t.Helper()
	object := map[string]any{
		"id":     "cs_test_123",
		"object": "checkout.session",
		"customer_details": map[string]any{
			"email": "buyer@example.com",
		},
		"amount_total":   1099,
		"currency":       "usd",
		"payment_status": "paid",
	}
	if metadata != nil {
		object["metadata"] = metadata
	}
	body, err := json.Marshal(map[string]any{
		"id":      "evt_test_123",
		"object":  "event",
		"type":    eventType,
		"created": 1700000000,
		"data": map[string]any{
			"object": object,
		},
	})
	require.NoError(t, err)
	return body
}

func signedEvent(body []byte) InboundEvent {
	return InboundEvent{Body: body, Signature: SignPayload(body, testSecret, time.Now())}
}

type stubEnricher struct {
	calls    atomic.Int32
	artwork  *Artwork
	err      error
	block    bool
	category atomic.Value
}

func (s *stubEnricher) Fetch(ctx context.Context, category string) (*Artwork, error) {
	s.calls.Add(1)
	s.category.Store(category)
	if s.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if s.err != nil {
		return nil, s.err
	}
	if s.artwork == nil {
		return nil, nil
	}
	a := *s.artwork
	return &a, nil
}

type stubDeliverer struct {
	calls   atomic.Int32
	err     error
	block   bool
	mu      sync.Mutex
	records []PurchaseRecord
}

func (s *stubDeliverer) Deliver(ctx context.Context, record PurchaseRecord) error {
	s.calls.Add(1)
	s.mu.Lock()
	s.records = append(s.records, record)
	s.mu.Unlock()
	if s.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return s.err
}

type staticCategories map[string]string

func (c staticCategories) Category(tierID string) string {
	if q, ok := c[tierID]; ok {
		return q
	}
	return c["basic"]
}

type recordingReporter struct {
	mu      sync.Mutex
	reports []Report
}

func (r *recordingReporter) Report(rep Report) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, rep)
}

func (r *recordingReporter) transitions() []Transition {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Transition, 0, len(r.reports))
	for _, rep := range r.reports {
		out = append(out, rep.Transition)
	}
	return out
}

func testArtwork() *Artwork {
	return &Artwork{
		ID:           417074,
		Width:        1920,
		Height:       1080,
		URL:          "https://www.pexels.com/photo/417074/",
		Photographer: "Test Photographer",
		Src:          ArtworkSources{Original: "https://images.pexels.com/photos/417074/original.jpeg"},
	}
}

var errStub = errors.New("stub failure")
