package fulfillment

import (
	"time"

	"github.com/gofiber/fiber/v2/log"
)

// Transition names a point in the pipeline at which the reporter is called.
type Transition string

const (
	TransitionVerified      Transition = "verified"
	TransitionRejected      Transition = "rejected"
	TransitionClassified    Transition = "classified"
	TransitionIgnored       Transition = "ignored"
	TransitionReconstructed Transition = "reconstructed"
	TransitionEnriched      Transition = "enriched"
	TransitionDelivered     Transition = "delivered"
	TransitionDegraded      Transition = "degraded"
	TransitionFailed        Transition = "failed"
)

// Report describes one transition of one pipeline run.
type Report struct {
	RunID      string
	Transition Transition
	EventID    string
	EventType  string
	SessionID  string
	TierID     string
	ArtworkID  int64
	Err        error
	Elapsed    time.Duration
}

// Reporter receives pipeline transitions. Implementations must be safe for
// concurrent use since runs share the reporter.
type Reporter interface {
	Report(r Report)
}

// NopReporter discards reports.
type NopReporter struct{}

func (NopReporter) Report(Report) {}

// MultiReporter fans a report out to several reporters.
type MultiReporter []Reporter

func (m MultiReporter) Report(r Report) {
	for _, rep := range m {
		if rep != nil {
			rep.Report(r)
		}
	}
}

// LogReporter writes transitions to the fiber logger.
type LogReporter struct{}

func (LogReporter) Report(r Report) {
	switch r.Transition {
	case TransitionRejected:
		log.Warnf("[WEBHOOK] run=%s rejected: %v", r.RunID, r.Err)
	case TransitionFailed:
		log.Errorf("[WEBHOOK] run=%s event=%s session=%s failed after %s: %v", r.RunID, r.EventID, r.SessionID, r.Elapsed, r.Err)
	case TransitionDegraded:
		log.Errorf("[WEBHOOK] run=%s event=%s session=%s delivery failed, purchase kept: %v", r.RunID, r.EventID, r.SessionID, r.Err)
	case TransitionIgnored:
		log.Infof("[WEBHOOK] run=%s event=%s type=%s ignored", r.RunID, r.EventID, r.EventType)
	case TransitionDelivered:
		log.Infof("[WEBHOOK] run=%s event=%s session=%s tier=%s artwork=%d delivered in %s", r.RunID, r.EventID, r.SessionID, r.TierID, r.ArtworkID, r.Elapsed)
	default:
		log.Debugf("[WEBHOOK] run=%s event=%s %s", r.RunID, r.EventID, r.Transition)
	}
}
