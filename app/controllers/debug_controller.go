package controllers

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"golang.org/x/sync/errgroup"

	"github.com/ManuelReschke/SurpriseArtwork/internal/pkg/fulfillment"
)

const debugSearchQuery = "nature art landscape"

// ConnectionTester checks that the delivery hook accepts requests.
type ConnectionTester interface {
	TestConnection(ctx context.Context) error
}

type CheckResult struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	Error        string `json:"error,omitempty"`
	ImageID      int64  `json:"image_id,omitempty"`
	Photographer string `json:"photographer,omitempty"`
}

type DebugController struct {
	enricher fulfillment.Enricher
	hook     ConnectionTester
	timeout  time.Duration
	now      func() time.Time
}

func NewDebugController(enricher fulfillment.Enricher, hook ConnectionTester, timeout time.Duration) *DebugController {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &DebugController{enricher: enricher, hook: hook, timeout: timeout, now: time.Now}
}

// HandleTestWebhook exercises the enrichment and delivery integrations
// concurrently without a real purchase.
func (dc *DebugController) HandleTestWebhook(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), dc.timeout)
	defer cancel()

	var pexels, zapier CheckResult
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pexels = dc.checkEnrichment(gctx)
		return nil
	})
	g.Go(func() error {
		zapier = dc.checkDelivery(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Errorf("Debug webhook test error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success":   false,
			"message":   "Debug test failed",
			"error":     err.Error(),
			"timestamp": dc.now().UTC(),
		})
	}

	overall := pexels.Success && zapier.Success
	message := "Some integrations have issues - check details below"
	if overall {
		message = "All webhook integrations working correctly!"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": overall,
		"message": message,
		"results": fiber.Map{
			"pexels":  pexels,
			"zapier":  zapier,
			"overall": overall,
		},
		"timestamp": dc.now().UTC(),
	})
}

func (dc *DebugController) checkEnrichment(ctx context.Context) CheckResult {
	artwork, err := dc.enricher.Fetch(ctx, debugSearchQuery)
	if err != nil {
		return CheckResult{Message: "Pexels API error: " + err.Error(), Error: err.Error()}
	}
	if artwork == nil {
		return CheckResult{Message: "Failed to fetch image"}
	}
	return CheckResult{
		Success:      true,
		Message:      fmt.Sprintf("Successfully fetched image by %s", artwork.Photographer),
		ImageID:      artwork.ID,
		Photographer: artwork.Photographer,
	}
}

func (dc *DebugController) checkDelivery(ctx context.Context) CheckResult {
	if err := dc.hook.TestConnection(ctx); err != nil {
		return CheckResult{Message: "Zapier webhook failed: " + err.Error(), Error: err.Error()}
	}
	return CheckResult{Success: true, Message: "Zapier webhook successful"}
}
