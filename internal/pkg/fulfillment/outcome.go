package fulfillment

// Outcome is the terminal state of a pipeline run.
type Outcome int

const (
	OutcomeRejected Outcome = iota + 1
	OutcomeIgnored
	OutcomeFailed
	OutcomeDelivered
	OutcomeDeliveredDegraded
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRejected:
		return "rejected"
	case OutcomeIgnored:
		return "ignored"
	case OutcomeFailed:
		return "failed"
	case OutcomeDelivered:
		return "delivered"
	case OutcomeDeliveredDegraded:
		return "delivered_degraded"
	default:
		return "unknown"
	}
}

// Acknowledged reports whether the provider should consider the event handled
// and not redeliver it.
func (o Outcome) Acknowledged() bool {
	switch o {
	case OutcomeIgnored, OutcomeDelivered, OutcomeDeliveredDegraded:
		return true
	default:
		return false
	}
}
