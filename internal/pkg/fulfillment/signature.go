package fulfillment

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
)

// DefaultTolerance is the maximum accepted age of a signature timestamp.
const DefaultTolerance = webhook.DefaultTolerance

// Verify authenticates body against the Stripe-Signature header and only then
// decodes it. The HMAC is computed over the raw bytes exactly as received.
func Verify(body []byte, signatureHeader, secret string, tolerance time.Duration) (*VerifiedEvent, error) {
	if strings.TrimSpace(signatureHeader) == "" {
		return nil, &Error{Kind: ErrMissingSignature}
	}
	if secret == "" {
		return nil, &Error{Kind: ErrSignatureInvalid, Detail: "webhook secret is not configured"}
	}
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	if err := webhook.ValidatePayloadWithTolerance(body, signatureHeader, secret, tolerance); err != nil {
		return nil, &Error{Kind: ErrSignatureInvalid, Cause: err}
	}

	var raw stripe.Event
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &Error{Kind: ErrPayloadMalformed, Cause: err}
	}
	if raw.Type == "" {
		return nil, &Error{Kind: ErrPayloadMalformed, EventID: raw.ID, Detail: "event type is empty"}
	}

	ev := &VerifiedEvent{
		id:        raw.ID,
		eventType: string(raw.Type),
		created:   time.Unix(raw.Created, 0).UTC(),
	}

	if ev.eventType != EventCheckoutSessionCompleted {
		if raw.Data != nil {
			ev.payload = OpaqueObject(raw.Data.Raw)
		} else {
			ev.payload = OpaqueObject(nil)
		}
		return ev, nil
	}

	if raw.Data == nil || len(raw.Data.Raw) == 0 {
		return nil, &Error{Kind: ErrPayloadMalformed, EventID: raw.ID, Detail: "event has no data object"}
	}
	var cs stripe.CheckoutSession
	if err := json.Unmarshal(raw.Data.Raw, &cs); err != nil {
		return nil, &Error{Kind: ErrPayloadMalformed, EventID: raw.ID, Detail: "decode checkout session", Cause: err}
	}

	session := &CheckoutSession{
		ID:            cs.ID,
		Metadata:      cs.Metadata,
		AmountTotal:   cs.AmountTotal,
		Currency:      string(cs.Currency),
		PaymentStatus: string(cs.PaymentStatus),
	}
	if cs.CustomerDetails != nil {
		session.CustomerEmail = cs.CustomerDetails.Email
	}
	ev.payload = session
	return ev, nil
}

// SignPayload returns a Stripe-Signature header value for body signed at the
// given time.
func SignPayload(body []byte, secret string, at time.Time) string {
	sig := webhook.ComputeSignature(at, body, secret)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(sig))
}
