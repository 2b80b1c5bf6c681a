package fulfillment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	defaultEnrichTimeout  = 10 * time.Second
	defaultDeliverTimeout = 10 * time.Second
)

// Enricher supplies one piece of artwork for a category. It may return a
// different item on every call and nil when nothing was found.
type Enricher interface {
	Fetch(ctx context.Context, category string) (*Artwork, error)
}

// Deliverer hands a finished record to the downstream automation.
type Deliverer interface {
	Deliver(ctx context.Context, record PurchaseRecord) error
}

// CategoryResolver maps a tier id to an enrichment category. Unknown ids must
// resolve to a default category.
type CategoryResolver interface {
	Category(tierID string) string
}

// Config wires a Pipeline.
type Config struct {
	WebhookSecret  string
	Tolerance      time.Duration
	Enricher       Enricher
	Deliverer      Deliverer
	Categories     CategoryResolver
	Reporter       Reporter
	EnrichTimeout  time.Duration
	DeliverTimeout time.Duration
	Now            func() time.Time
	NewRunID       func() string
}

// Pipeline turns one inbound webhook into one terminal outcome. It holds no
// per-event state; concurrent calls to Process are independent.
type Pipeline struct {
	secret         string
	tolerance      time.Duration
	enricher       Enricher
	deliverer      Deliverer
	categories     CategoryResolver
	reporter       Reporter
	enrichTimeout  time.Duration
	deliverTimeout time.Duration
	now            func() time.Time
	newRunID       func() string
}

// Result is the terminal state of a run.
type Result struct {
	Outcome   Outcome
	Err       error
	RunID     string
	EventID   string
	EventType string
	SessionID string
	Record    *PurchaseRecord
}

func NewPipeline(cfg Config) (*Pipeline, error) {
	if cfg.WebhookSecret == "" {
		return nil, errors.New("webhook secret is required")
	}
	if cfg.Enricher == nil || cfg.Deliverer == nil || cfg.Categories == nil {
		return nil, errors.New("enricher, deliverer and category resolver are required")
	}

	p := &Pipeline{
		secret:         cfg.WebhookSecret,
		tolerance:      cfg.Tolerance,
		enricher:       cfg.Enricher,
		deliverer:      cfg.Deliverer,
		categories:     cfg.Categories,
		reporter:       cfg.Reporter,
		enrichTimeout:  cfg.EnrichTimeout,
		deliverTimeout: cfg.DeliverTimeout,
		now:            cfg.Now,
		newRunID:       cfg.NewRunID,
	}
	if p.tolerance <= 0 {
		p.tolerance = DefaultTolerance
	}
	if p.reporter == nil {
		p.reporter = NopReporter{}
	}
	if p.enrichTimeout <= 0 {
		p.enrichTimeout = defaultEnrichTimeout
	}
	if p.deliverTimeout <= 0 {
		p.deliverTimeout = defaultDeliverTimeout
	}
	if p.now == nil {
		p.now = time.Now
	}
	if p.newRunID == nil {
		p.newRunID = uuid.NewString
	}
	return p, nil
}

// Process runs the pipeline for in. Failures before enrichment content is
// obtained are strict (OutcomeFailed, the provider redelivers); a delivery
// failure afterwards is lenient (OutcomeDeliveredDegraded) so a redelivery
// cannot fetch a second artwork and deliver the purchase twice.
func (p *Pipeline) Process(ctx context.Context, in InboundEvent) Result {
	start := p.now()
	res := Result{RunID: p.newRunID()}
	report := func(t Transition, err error) {
		r := Report{
			RunID:      res.RunID,
			Transition: t,
			EventID:    res.EventID,
			EventType:  res.EventType,
			SessionID:  res.SessionID,
			Err:        err,
			Elapsed:    p.now().Sub(start),
		}
		if res.Record != nil {
			r.TierID = res.Record.Tier.ID
			r.ArtworkID = res.Record.Image.ID
		}
		p.reporter.Report(r)
	}

	ev, err := Verify(in.Body, in.Signature, p.secret, p.tolerance)
	if err != nil {
		res.Outcome, res.Err = OutcomeRejected, err
		report(TransitionRejected, err)
		return res
	}
	res.EventID, res.EventType = ev.ID(), ev.Type()
	report(TransitionVerified, nil)

	// Past verification the run always reaches a terminal outcome.
	ctx = context.WithoutCancel(ctx)

	decision := Classify(ev)
	report(TransitionClassified, nil)

	var session *CheckoutSession
	switch d := decision.(type) {
	case Ignore:
		res.Outcome = OutcomeIgnored
		report(TransitionIgnored, nil)
		return res
	case Actionable:
		session = d.Session
	}
	res.SessionID = session.ID

	purchase, err := Reconstruct(session)
	if err != nil {
		return p.fail(res, withContext(err, res.EventID, res.SessionID), report)
	}
	report(TransitionReconstructed, nil)

	category := p.categories.Category(purchase.Tier.ID)
	artwork, err := p.fetch(ctx, category)
	if err != nil {
		return p.fail(res, &Error{
			Kind:      ErrEnrichmentUnavailable,
			EventID:   res.EventID,
			SessionID: res.SessionID,
			Detail:    "category " + category,
			Cause:     err,
		}, report)
	}
	report(TransitionEnriched, nil)

	record := PurchaseRecord{
		CustomerEmail:   purchase.CustomerEmail,
		Tier:            purchase.Tier,
		TipAmount:       purchase.TipAmount,
		TotalAmount:     purchase.TotalAmount,
		StripeSessionID: purchase.SessionID,
		Image:           *artwork,
		PurchaseDate:    p.now().UTC(),
	}
	res.Record = &record

	deliverCtx, cancel := context.WithTimeout(ctx, p.deliverTimeout)
	defer cancel()
	if err := p.deliverer.Deliver(deliverCtx, record); err != nil {
		res.Outcome = OutcomeDeliveredDegraded
		res.Err = &Error{
			Kind:      ErrDeliveryFailed,
			EventID:   res.EventID,
			SessionID: res.SessionID,
			Cause:     err,
		}
		report(TransitionDegraded, res.Err)
		return res
	}

	res.Outcome = OutcomeDelivered
	report(TransitionDelivered, nil)
	return res
}

func (p *Pipeline) fetch(ctx context.Context, category string) (*Artwork, error) {
	ctx, cancel := context.WithTimeout(ctx, p.enrichTimeout)
	defer cancel()

	artwork, err := p.enricher.Fetch(ctx, category)
	if err != nil {
		return nil, err
	}
	if artwork == nil || artwork.ID == 0 || artwork.URL == "" {
		return nil, errors.New("no artwork returned")
	}
	return artwork, nil
}

func (p *Pipeline) fail(res Result, err error, report func(Transition, error)) Result {
	res.Outcome, res.Err = OutcomeFailed, err
	report(TransitionFailed, err)
	return res
}
