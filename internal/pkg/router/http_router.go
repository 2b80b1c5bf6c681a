package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ManuelReschke/SurpriseArtwork/app/controllers"
	"github.com/ManuelReschke/SurpriseArtwork/internal/pkg/constants"
)

type HttpRouter struct {
	deps Dependencies
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	app.Get(constants.HealthRoute, controllers.HandleHealth)

	metrics := app.Group(constants.MetricsRoute)
	if len(h.deps.MetricsUsers) > 0 {
		metrics.Use(basicauth.New(basicauth.Config{
			Users: h.deps.MetricsUsers,
		}))
	}
	metrics.Get("/", monitor.New(monitor.Config{Title: "Surprise Artwork Metrics"}))
	if h.deps.Gatherer != nil {
		metrics.Get("/prometheus", adaptor.HTTPHandler(promhttp.HandlerFor(h.deps.Gatherer, promhttp.HandlerOpts{})))
	}
	if h.deps.Totals != nil {
		metrics.Get("/outcomes", controllers.HandleOutcomeTotals(h.deps.Totals))
	}
}

func NewHttpRouter(deps Dependencies) *HttpRouter {
	return &HttpRouter{deps: deps}
}
