package router

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"

	"github.com/ManuelReschke/SurpriseArtwork/app/controllers"
	"github.com/ManuelReschke/SurpriseArtwork/internal/pkg/catalog"
	"github.com/ManuelReschke/SurpriseArtwork/internal/pkg/fulfillment"
)

type nopProcessor struct{}

func (nopProcessor) Process(ctx context.Context, in fulfillment.InboundEvent) fulfillment.Result {
	return fulfillment.Result{Outcome: fulfillment.OutcomeIgnored}
}

type nopCheckout struct{}

func (nopCheckout) CreateSession(ctx context.Context, tierID string, tip int64) (*stripe.CheckoutSession, error) {
	return &stripe.CheckoutSession{ID: "cs_1", URL: "https://checkout.example/cs_1"}, nil
}

type nopEnricher struct{}

func (nopEnricher) Fetch(ctx context.Context, category string) (*fulfillment.Artwork, error) {
	return nil, nil
}

type nopHook struct{}

func (nopHook) TestConnection(ctx context.Context) error { return nil }

func newTestApp(deps Dependencies) *fiber.App {
	app := fiber.New()
	InstallRouter(app, deps)
	return app
}

func status(t *testing.T, app *fiber.App, method, path string, auth ...string) int {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(`{"tier_id":"basic"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if len(auth) == 2 {
		req.SetBasicAuth(auth[0], auth[1])
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func fullDeps() Dependencies {
	return Dependencies{
		Webhook:        controllers.NewWebhookController(nopProcessor{}),
		Checkout:       controllers.NewCheckoutController(nopCheckout{}, catalog.Default()),
		Debug:          controllers.NewDebugController(nopEnricher{}, nopHook{}, time.Second),
		Gatherer:       prometheus.NewRegistry(),
		CheckoutLimit:  1,
		CheckoutWindow: time.Minute,
		MetricsUsers:   map[string]string{"ops": "secret"},
		DebugUsers:     map[string]string{"dev": "debug"},
	}
}

func TestInstallRouter_PublicRoutes(t *testing.T) {
	app := newTestApp(fullDeps())

	assert.Equal(t, fiber.StatusOK, status(t, app, fiber.MethodGet, "/health"))
	assert.Equal(t, fiber.StatusOK, status(t, app, fiber.MethodGet, "/api/tiers"))
	assert.Equal(t, fiber.StatusOK, status(t, app, fiber.MethodPost, "/api/webhook"))
}

func TestInstallRouter_CheckoutIsRateLimited(t *testing.T) {
	app := newTestApp(fullDeps())

	assert.Equal(t, fiber.StatusOK, status(t, app, fiber.MethodPost, "/api/create-checkout-session"))
	assert.Equal(t, fiber.StatusTooManyRequests, status(t, app, fiber.MethodPost, "/api/create-checkout-session"))
	assert.Equal(t, fiber.StatusOK, status(t, app, fiber.MethodPost, "/api/webhook"))
}

func TestInstallRouter_ProtectedRoutes(t *testing.T) {
	app := newTestApp(fullDeps())

	assert.Equal(t, fiber.StatusUnauthorized, status(t, app, fiber.MethodGet, "/metrics/prometheus"))
	assert.Equal(t, fiber.StatusOK, status(t, app, fiber.MethodGet, "/metrics/prometheus", "ops", "secret"))
	assert.Equal(t, fiber.StatusUnauthorized, status(t, app, fiber.MethodPost, "/api/debug/test-webhook"))
	assert.Equal(t, fiber.StatusOK, status(t, app, fiber.MethodPost, "/api/debug/test-webhook", "dev", "debug"))
}

func TestInstallRouter_DebugNotMountedWithoutCredentials(t *testing.T) {
	deps := fullDeps()
	deps.DebugUsers = nil
	app := newTestApp(deps)

	assert.Equal(t, fiber.StatusNotFound, status(t, app, fiber.MethodPost, "/api/debug/test-webhook"))
}
