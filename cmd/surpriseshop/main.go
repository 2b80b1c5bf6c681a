package main

import (
	"context"
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/ManuelReschke/SurpriseArtwork/app/controllers"
	"github.com/ManuelReschke/SurpriseArtwork/internal/pkg/cache"
	"github.com/ManuelReschke/SurpriseArtwork/internal/pkg/catalog"
	"github.com/ManuelReschke/SurpriseArtwork/internal/pkg/config"
	"github.com/ManuelReschke/SurpriseArtwork/internal/pkg/constants"
	"github.com/ManuelReschke/SurpriseArtwork/internal/pkg/env"
	"github.com/ManuelReschke/SurpriseArtwork/internal/pkg/fulfillment"
	"github.com/ManuelReschke/SurpriseArtwork/internal/pkg/metrics"
	"github.com/ManuelReschke/SurpriseArtwork/internal/pkg/metrics/counter"
	"github.com/ManuelReschke/SurpriseArtwork/internal/pkg/openapi"
	"github.com/ManuelReschke/SurpriseArtwork/internal/pkg/payments"
	"github.com/ManuelReschke/SurpriseArtwork/internal/pkg/pexels"
	"github.com/ManuelReschke/SurpriseArtwork/internal/pkg/ratelimit"
	"github.com/ManuelReschke/SurpriseArtwork/internal/pkg/router"
	"github.com/ManuelReschke/SurpriseArtwork/internal/pkg/zapier"
)

func main() {
	if err := env.SetupEnvFile(); err != nil {
		log.Info(err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	app, err := NewApplication(cfg)
	if err != nil {
		log.Fatal(err)
	}
	log.Fatal(app.Listen(cfg.ListenAddr()))
}

func NewApplication(cfg *config.Config) (*fiber.App, error) {
	if cfg.IsDev() {
		log.SetLevel(log.LevelDebug)
	}

	// Define possible base paths
	basePaths := []string{
		"./",        // Current directory
		"../../",    // From cmd/surpriseshop to project root
		"../../../", // Fallback
	}
	basePath := ""
	for _, path := range basePaths {
		if _, err := os.Stat(path + "public"); !os.IsNotExist(err) {
			basePath = path
			break
		}
	}

	cat := catalog.Default()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promReporter, err := metrics.NewReporter(registry)
	if err != nil {
		return nil, err
	}
	reporters := fulfillment.MultiReporter{fulfillment.LogReporter{}, promReporter}

	deps := router.Dependencies{
		Gatherer: registry,
	}
	if cfg.MetricsProtected() {
		deps.MetricsUsers = map[string]string{cfg.MetricsUser: cfg.MetricsPassword}
	}

	if cfg.CacheEnabled() {
		opts := cache.Options{Host: cfg.CacheHost, Port: cfg.CachePort, Password: cfg.CachePassword}
		transitions := counter.NewReporter(cache.SetupCache(opts))
		reporters = append(reporters, transitions)
		deps.Totals = transitions
		deps.LimiterStorage = ratelimit.NewRedisStorage(opts)
	}

	artwork := pexels.Enricher{Client: pexels.NewClient(cfg.PexelsKey, cfg.PexelsAPIBaseURL, cfg.EnrichmentTimeout)}
	hook := zapier.NewClient(cfg.ZapierWebhookURL, cfg.ZapierSecretKey, cfg.DeliveryTimeout)

	pipeline, err := fulfillment.NewPipeline(fulfillment.Config{
		WebhookSecret:  cfg.WebhookSecret,
		Tolerance:      cfg.WebhookTolerance,
		Enricher:       artwork,
		Deliverer:      hook,
		Categories:     cat,
		Reporter:       reporters,
		EnrichTimeout:  cfg.EnrichmentTimeout,
		DeliverTimeout: cfg.DeliveryTimeout,
	})
	if err != nil {
		return nil, err
	}

	deps.Webhook = controllers.NewWebhookController(pipeline)
	deps.Checkout = controllers.NewCheckoutController(payments.NewCheckoutService(cfg.StripeSecretKey, cfg.SiteURL, cat, nil), cat)
	if cfg.DebugEnabled() {
		deps.Debug = controllers.NewDebugController(artwork, hook, cfg.EnrichmentTimeout+cfg.DeliveryTimeout)
		deps.DebugUsers = map[string]string{cfg.DebugUser: cfg.DebugPassword}
	}

	// init fiber app
	app := fiber.New(fiber.Config{
		AppName:   "Surprise Artwork Shop",
		BodyLimit: 512 * 1024, // Stripe event payloads stay well below this
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// SWAGGER / OPENAPI
	docsPath := basePath + "public/docs/v1/openapi.yml"
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := openapi.Validate(ctx, docsPath); err != nil {
		log.Warnf("API docs disabled: %v", err)
	} else {
		app.Use(swagger.New(swagger.Config{
			BasePath: constants.DocsBasePath,
			FilePath: docsPath,
			Path:     constants.DocsVersion,
		}))
	}

	// ROUTER
	router.InstallRouter(app, deps)

	return app, nil
}
