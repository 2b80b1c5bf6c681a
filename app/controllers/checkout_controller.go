package controllers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/stripe/stripe-go/v79"

	"github.com/ManuelReschke/SurpriseArtwork/app/models"
	"github.com/ManuelReschke/SurpriseArtwork/internal/pkg/catalog"
	"github.com/ManuelReschke/SurpriseArtwork/internal/pkg/payments"
)

// CheckoutCreator starts a hosted payment page for a tier and tip.
type CheckoutCreator interface {
	CreateSession(ctx context.Context, tierID string, tip int64) (*stripe.CheckoutSession, error)
}

type CheckoutController struct {
	checkout CheckoutCreator
	catalog  *catalog.Catalog
}

func NewCheckoutController(checkout CheckoutCreator, cat *catalog.Catalog) *CheckoutController {
	return &CheckoutController{checkout: checkout, catalog: cat}
}

func (cc *CheckoutController) HandleCreateCheckoutSession(c *fiber.Ctx) error {
	var req models.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_request", "message": "Invalid request body"})
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_request", "message": err.Error()})
	}
	if _, ok := cc.catalog.Tier(req.TierID); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid tier selected"})
	}

	session, err := cc.checkout.CreateSession(c.UserContext(), req.TierID, req.TipAmount)
	if err != nil {
		if errors.Is(err, payments.ErrUnknownTier) || errors.Is(err, payments.ErrInvalidTip) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_request", "message": err.Error()})
		}
		log.Errorf("Error creating checkout session for tier %s: %v", req.TierID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create checkout session"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"id": session.ID, "url": session.URL})
}

func (cc *CheckoutController) HandleListTiers(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"currency":    catalog.Currency,
		"tiers":       cc.catalog.Tiers(),
		"tip_options": cc.catalog.TipOptions(),
	})
}
