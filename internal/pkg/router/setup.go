package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ManuelReschke/SurpriseArtwork/app/controllers"
)

type Router interface {
	InstallRouter(app *fiber.App)
}

// Dependencies are the handlers and infrastructure the routes are bound to.
// Optional parts left nil are not mounted.
type Dependencies struct {
	Webhook  *controllers.WebhookController
	Checkout *controllers.CheckoutController
	Debug    *controllers.DebugController
	Totals   controllers.TransitionTotals
	Gatherer prometheus.Gatherer

	// LimiterStorage backs the checkout rate limit; nil keeps it in memory.
	LimiterStorage fiber.Storage
	CheckoutLimit  int
	CheckoutWindow time.Duration
	MetricsUsers   map[string]string
	DebugUsers     map[string]string
}

func InstallRouter(app *fiber.App, deps Dependencies) {
	setup(app, NewHttpRouter(deps), NewApiRouter(deps))
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
