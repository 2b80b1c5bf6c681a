// Package webhookfixture builds Stripe-shaped event bodies for local testing
// of the webhook endpoint.
package webhookfixture

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ManuelReschke/SurpriseArtwork/internal/pkg/fulfillment"
)

// Options customizes the generated event. Zero values get random ids, a
// placeholder email and the current time.
type Options struct {
	EventID   string
	SessionID string
	Email     string
	Created   time.Time
	// Metadata overrides individual metadata keys; an empty value removes the key.
	Metadata map[string]string
}

func (o Options) withDefaults() Options {
	if o.EventID == "" {
		o.EventID = "evt_test_" + compactUUID()
	}
	if o.SessionID == "" {
		o.SessionID = "cs_test_" + compactUUID()
	}
	if o.Email == "" {
		o.Email = "buyer@example.com"
	}
	if o.Created.IsZero() {
		o.Created = time.Now()
	}
	return o
}

// CheckoutCompleted returns a checkout.session.completed event for a purchase
// of tier with tip cents on top.
func CheckoutCompleted(tier fulfillment.TierReference, tip int64, opts Options) ([]byte, error) {
	opts = opts.withDefaults()

	metadata := fulfillment.EncodeMetadata(tier, tip)
	for k, v := range opts.Metadata {
		if v == "" {
			delete(metadata, k)
			continue
		}
		metadata[k] = v
	}

	session := map[string]any{
		"id":     opts.SessionID,
		"object": "checkout.session",
		"customer_details": map[string]any{
			"email": opts.Email,
		},
		"amount_total":   tier.Price + tip,
		"currency":       "usd",
		"mode":           "payment",
		"payment_status": "paid",
		"metadata":       metadata,
	}
	return Event(fulfillment.EventCheckoutSessionCompleted, session, opts)
}

// Event wraps object in a Stripe event envelope of the given type.
func Event(eventType string, object any, opts Options) ([]byte, error) {
	opts = opts.withDefaults()
	return json.Marshal(map[string]any{
		"id":          opts.EventID,
		"object":      "event",
		"api_version": "2024-06-20",
		"type":        eventType,
		"created":     opts.Created.Unix(),
		"livemode":    false,
		"data": map[string]any{
			"object": object,
		},
	})
}

func compactUUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:24]
}
