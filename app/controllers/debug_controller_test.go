package controllers

import (
	"errors"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDebugApp(enricher *fakeEnricher, hook *fakeDeliverer) *fiber.App {
	dc := NewDebugController(enricher, hook, time.Second)
	dc.now = func() time.Time { return time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC) }
	app := fiber.New()
	app.Post("/api/debug/test-webhook", dc.HandleTestWebhook)
	return app
}

func TestHandleTestWebhook_AllHealthy(t *testing.T) {
	enricher := &fakeEnricher{artwork: sampleArtwork()}
	hook := &fakeDeliverer{}

	status, out := doJSON(t, newDebugApp(enricher, hook), fiber.MethodPost, "/api/debug/test-webhook", "")

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "All webhook integrations working correctly!", out["message"])
	assert.Equal(t, "2026-10-14T08:00:00Z", out["timestamp"])
	results := out["results"].(map[string]any)
	pexels := results["pexels"].(map[string]any)
	assert.EqualValues(t, 417074, pexels["image_id"])
	assert.EqualValues(t, 1, enricher.calls.Load())
	assert.EqualValues(t, 1, hook.calls.Load())
}

func TestHandleTestWebhook_PartialFailureIsStillOK(t *testing.T) {
	status, out := doJSON(t, newDebugApp(&fakeEnricher{}, &fakeDeliverer{err: errors.New("status=410")}), fiber.MethodPost, "/api/debug/test-webhook", "")

	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, false, out["success"])
	results := out["results"].(map[string]any)
	assert.Equal(t, false, results["pexels"].(map[string]any)["success"])
	zapier := results["zapier"].(map[string]any)
	assert.Equal(t, false, zapier["success"])
	assert.Contains(t, zapier["error"], "410")
}
