package fulfillment

import (
	"encoding/json"
	"time"
)

// EventCheckoutSessionCompleted is the only provider event type the pipeline acts on.
const EventCheckoutSessionCompleted = "checkout.session.completed"

// InboundEvent is the untrusted input of one webhook request.
type InboundEvent struct {
	Body      []byte
	Signature string
}

// VerifiedEvent is an event whose signature matched the shared secret. Its
// fields are unexported so that Verify is the only way to obtain one.
type VerifiedEvent struct {
	id        string
	eventType string
	created   time.Time
	payload   Payload
}

func (e *VerifiedEvent) ID() string { return e.id }
func (e *VerifiedEvent) Type() string { return e.eventType }
func (e *VerifiedEvent) Created() time.Time { return e.created }
func (e *VerifiedEvent) Payload() Payload { return e.payload }

// Payload is the event's data object: *CheckoutSession for completed checkout
// sessions, OpaqueObject for everything else.
type Payload interface {
	isPayload()
}

// CheckoutSession holds the fields of a provider checkout session the
// pipeline needs.
type CheckoutSession struct {
	ID            string
	Metadata      map[string]string
	CustomerEmail string
	AmountTotal   int64
	Currency      string
	PaymentStatus string
}

func (*CheckoutSession) isPayload() {}

// OpaqueObject is the raw data object of an event the pipeline does not inspect.
type OpaqueObject json.RawMessage

func (OpaqueObject) isPayload() {}
