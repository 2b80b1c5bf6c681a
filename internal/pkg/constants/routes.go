package constants

// Route constants shared by the router and webhookctl
const (
	HealthRoute   = "/health"
	APIRoute      = "/api"
	TiersRoute    = "/api/tiers"
	CheckoutRoute = "/api/create-checkout-session"
	WebhookRoute  = "/api/webhook"
	DebugRoute    = "/api/debug/test-webhook"

	MetricsRoute = "/metrics"

	// Swagger UI is served at DocsBasePath + DocsVersion
	DocsBasePath = "/docs/api/"
	DocsVersion  = "v1"
)
