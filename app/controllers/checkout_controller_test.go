package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"

	"github.com/ManuelReschke/SurpriseArtwork/internal/pkg/catalog"
	"github.com/ManuelReschke/SurpriseArtwork/internal/pkg/payments"
)

type fakeCheckout struct {
	tierID string
	tip    int64
	err    error
}

func (f *fakeCheckout) CreateSession(ctx context.Context, tierID string, tip int64) (*stripe.CheckoutSession, error) {
	f.tierID, f.tip = tierID, tip
	if f.err != nil {
		return nil, f.err
	}
	return &stripe.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.stripe.com/c/pay/cs_test_1"}, nil
}

func newCheckoutApp(checkout CheckoutCreator) *fiber.App {
	cc := NewCheckoutController(checkout, catalog.Default())
	app := fiber.New()
	app.Post("/api/create-checkout-session", cc.HandleCreateCheckoutSession)
	app.Get("/api/tiers", cc.HandleListTiers)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return resp.StatusCode, out
}

func TestHandleCreateCheckoutSession_Success(t *testing.T) {
	checkout := &fakeCheckout{}
	app := newCheckoutApp(checkout)

	status, out := doJSON(t, app, fiber.MethodPost, "/api/create-checkout-session", `{"tier_id":" Premium ","tip_amount":200}`)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_1", out["url"])
	assert.Equal(t, "premium", checkout.tierID)
	assert.EqualValues(t, 200, checkout.tip)
}

func TestHandleCreateCheckoutSession_BadRequests(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"not json", `tier=basic`},
		{"missing tier", `{"tip_amount":100}`},
		{"negative tip", `{"tier_id":"basic","tip_amount":-5}`},
		{"tip too large", `{"tier_id":"basic","tip_amount":50001}`},
		{"unknown tier", `{"tier_id":"platinum"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			checkout := &fakeCheckout{}
			status, out := doJSON(t, newCheckoutApp(checkout), fiber.MethodPost, "/api/create-checkout-session", tc.body)
			assert.Equal(t, fiber.StatusBadRequest, status)
			assert.NotEmpty(t, out["error"])
			assert.Empty(t, checkout.tierID)
		})
	}
}

func TestHandleCreateCheckoutSession_ProviderError(t *testing.T) {
	app := newCheckoutApp(&fakeCheckout{err: errors.Join(payments.ErrProviderDown, errors.New("503"))})

	status, out := doJSON(t, app, fiber.MethodPost, "/api/create-checkout-session", `{"tier_id":"basic"}`)

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "Failed to create checkout session", out["error"])
}

func TestHandleListTiers(t *testing.T) {
	status, out := doJSON(t, newCheckoutApp(&fakeCheckout{}), fiber.MethodGet, "/api/tiers", "")

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "usd", out["currency"])
	tiers, ok := out["tiers"].([]any)
	require.True(t, ok)
	assert.Len(t, tiers, 3)
	assert.Len(t, out["tip_options"], 4)
}
