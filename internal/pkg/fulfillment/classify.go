package fulfillment

// Decision is the result of classifying a verified event: Actionable or Ignore.
type Decision interface {
	isDecision()
}

// Actionable carries the session of a completed checkout.
type Actionable struct {
	Session *CheckoutSession
}

// Ignore is returned for every other event type. Those are acknowledged, not
// processed, so that new provider event types never fail the endpoint.
type Ignore struct {
	EventType string
}

func (Actionable) isDecision() {}
func (Ignore) isDecision() {}

// Classify decides whether ev is actionable. It has no side effects.
func Classify(ev *VerifiedEvent) Decision {
	if ev.eventType == EventCheckoutSessionCompleted {
		if session, ok := ev.payload.(*CheckoutSession); ok {
			return Actionable{Session: session}
		}
	}
	return Ignore{EventType: ev.eventType}
}
