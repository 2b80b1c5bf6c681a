package controllers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/SurpriseArtwork/internal/pkg/fulfillment"
)

const stripeSignatureHeader = "Stripe-Signature"

// WebhookProcessor runs one inbound provider event to a terminal outcome.
type WebhookProcessor interface {
	Process(ctx context.Context, in fulfillment.InboundEvent) fulfillment.Result
}

type WebhookController struct {
	pipeline WebhookProcessor
}

func NewWebhookController(pipeline WebhookProcessor) *WebhookController {
	return &WebhookController{pipeline: pipeline}
}

// HandleStripeWebhook answers 400 for rejected events, 500 for failed ones so
// Stripe redelivers them, and 200 for everything else.
func (wc *WebhookController) HandleStripeWebhook(c *fiber.Ctx) error {
	in := fulfillment.InboundEvent{
		Body:      append([]byte(nil), c.BodyRaw()...),
		Signature: c.Get(stripeSignatureHeader),
	}

	res := wc.pipeline.Process(c.UserContext(), in)

	switch res.Outcome {
	case fulfillment.OutcomeRejected:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": rejectionCode(res.Err)})
	case fulfillment.OutcomeFailed:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":  "processing_failed",
			"run_id": res.RunID,
		})
	default:
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"received": true,
			"outcome":  res.Outcome.String(),
		})
	}
}

func rejectionCode(err error) string {
	switch {
	case errors.Is(err, fulfillment.ErrMissingSignature):
		return "missing_signature"
	case errors.Is(err, fulfillment.ErrPayloadMalformed):
		return "invalid_payload"
	default:
		return "invalid_signature"
	}
}
