package openapi

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShippedDocumentIsValid(t *testing.T) {
	doc, err := Load(context.Background(), filepath.Join("..", "..", "..", "public", "docs", "v1", "openapi.yml"))
	require.NoError(t, err)

	ops := Operations(doc)
	assert.Contains(t, ops, "POST /api/webhook")
	assert.Contains(t, ops, "POST /api/create-checkout-session")
	assert.Contains(t, ops, "GET /api/tiers")
	assert.Contains(t, ops, "GET /health")
}

func TestValidate_RejectsBrokenDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yml")
	require.NoError(t, os.WriteFile(path, []byte("openapi: 3.0.3\ninfo:\n  version: '1'\npaths: {}\n"), 0o600))

	assert.Error(t, Validate(context.Background(), path))
}

func TestValidate_MissingFile(t *testing.T) {
	assert.Error(t, Validate(context.Background(), filepath.Join(t.TempDir(), "nope.yml")))
}
