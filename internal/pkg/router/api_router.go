package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"

	"github.com/ManuelReschke/SurpriseArtwork/internal/pkg/constants"
	"github.com/ManuelReschke/SurpriseArtwork/internal/pkg/ratelimit"
)

const (
	defaultCheckoutLimit  = 20
	defaultCheckoutWindow = time.Minute
)

type ApiRouter struct {
	deps Dependencies
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group(constants.APIRoute)
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	// Stripe retries on its own schedule, so the webhook is not rate limited.
	if h.deps.Webhook != nil {
		app.Post(constants.WebhookRoute, h.deps.Webhook.HandleStripeWebhook)
	}

	if h.deps.Checkout != nil {
		limit, window := h.deps.CheckoutLimit, h.deps.CheckoutWindow
		if limit <= 0 {
			limit = defaultCheckoutLimit
		}
		if window <= 0 {
			window = defaultCheckoutWindow
		}
		app.Get(constants.TiersRoute, h.deps.Checkout.HandleListTiers)
		app.Post(constants.CheckoutRoute, ratelimit.New(h.deps.LimiterStorage, limit, window), h.deps.Checkout.HandleCreateCheckoutSession)
	}

	if h.deps.Debug != nil && len(h.deps.DebugUsers) > 0 {
		app.Post(constants.DebugRoute, basicauth.New(basicauth.Config{
			Users: h.deps.DebugUsers,
		}), h.deps.Debug.HandleTestWebhook)
	}
}

func NewApiRouter(deps Dependencies) *ApiRouter {
	return &ApiRouter{deps: deps}
}
