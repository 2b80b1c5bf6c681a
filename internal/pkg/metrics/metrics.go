package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ManuelReschke/SurpriseArtwork/internal/pkg/fulfillment"
)

// Reporter exports pipeline transitions as Prometheus metrics.
type Reporter struct {
	transitions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewReporter creates the collectors and registers them with reg.
func NewReporter(reg prometheus.Registerer) (*Reporter, error) {
	r := &Reporter{
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webhook_transitions_total",
				Help: "Total number of payment webhook pipeline transitions",
			},
			[]string{"transition", "error_kind"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webhook_pipeline_duration_seconds",
				Help:    "Duration of payment webhook pipeline runs by outcome",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
	}
	for _, c := range []prometheus.Collector{r.transitions, r.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Reporter) Report(rep fulfillment.Report) {
	r.transitions.WithLabelValues(string(rep.Transition), errorKind(rep.Err)).Inc()
	if isTerminal(rep.Transition) {
		r.duration.WithLabelValues(string(rep.Transition)).Observe(rep.Elapsed.Seconds())
	}
}

func isTerminal(t fulfillment.Transition) bool {
	switch t {
	case fulfillment.TransitionRejected,
		fulfillment.TransitionIgnored,
		fulfillment.TransitionFailed,
		fulfillment.TransitionDelivered,
		fulfillment.TransitionDegraded:
		return true
	default:
		return false
	}
}

// errorKind keeps label cardinality bounded: only taxonomy kinds are used.
func errorKind(err error) string {
	if err == nil {
		return ""
	}
	if kind := fulfillment.KindOf(err); kind != nil {
		return kind.Error()
	}
	return "other"
}
