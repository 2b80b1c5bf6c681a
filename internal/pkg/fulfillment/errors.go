package fulfillment

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Security kinds surface as OutcomeRejected, data-integrity and
// enrichment kinds as OutcomeFailed, ErrDeliveryFailed as OutcomeDeliveredDegraded.
var (
	ErrMissingSignature      = errors.New("missing signature")
	ErrSignatureInvalid      = errors.New("signature invalid")
	ErrPayloadMalformed      = errors.New("payload malformed")
	ErrMetadataMissing       = errors.New("metadata missing")
	ErrMetadataMalformed     = errors.New("metadata malformed")
	ErrAmountMismatch        = errors.New("amount mismatch")
	ErrEnrichmentUnavailable = errors.New("enrichment unavailable")
	ErrDeliveryFailed        = errors.New("delivery failed")
)

// Error correlates a kind with the provider event that produced it. It never
// holds the signature header or the shared secret.
type Error struct {
	Kind      error
	EventID   string
	SessionID string
	Detail    string
	Cause     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	if e.EventID != "" {
		fmt.Fprintf(&b, " (event=%s", e.EventID)
		if e.SessionID != "" {
			fmt.Fprintf(&b, " session=%s", e.SessionID)
		}
		b.WriteString(")")
	} else if e.SessionID != "" {
		fmt.Fprintf(&b, " (session=%s)", e.SessionID)
	}
	return b.String()
}

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// KindOf returns the taxonomy sentinel carried by err, or nil.
func KindOf(err error) error {
	for _, kind := range []error{
		ErrMissingSignature,
		ErrSignatureInvalid,
		ErrPayloadMalformed,
		ErrMetadataMissing,
		ErrMetadataMalformed,
		ErrAmountMismatch,
		ErrEnrichmentUnavailable,
		ErrDeliveryFailed,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// withContext fills in correlation ids on a pipeline error that was created
// before they were known.
func withContext(err error, eventID, sessionID string) error {
	var fe *Error
	if !errors.As(err, &fe) {
		return err
	}
	if fe.EventID == "" {
		fe.EventID = eventID
	}
	if fe.SessionID == "" {
		fe.SessionID = sessionID
	}
	return fe
}
