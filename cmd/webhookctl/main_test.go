package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/SurpriseArtwork/internal/pkg/fulfillment"
)

const cliSecret = "whsec_cli_test"

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestFixtureSignRoundTrip(t *testing.T) {
	body, err := run(t, "", "fixture", "--tier", "premium", "--tip", "200", "--email", "cli@example.com")
	require.NoError(t, err)
	body = strings.TrimSpace(body)

	header, err := run(t, body, "sign", "--secret", cliSecret, "-")
	require.NoError(t, err)

	ev, err := fulfillment.Verify([]byte(body), strings.TrimSpace(header), cliSecret, 0)
	require.NoError(t, err)
	actionable, ok := fulfillment.Classify(ev).(fulfillment.Actionable)
	require.True(t, ok)
	p, err := fulfillment.Reconstruct(actionable.Session)
	require.NoError(t, err)
	assert.EqualValues(t, 2199, p.TotalAmount)
	assert.Equal(t, "cli@example.com", p.CustomerEmail)
}

func TestFixture_Overrides(t *testing.T) {
	out, err := run(t, "", "fixture", "--set", "total_amount=2000")
	require.NoError(t, err)
	assert.Contains(t, out, `"total_amount":"2000"`)

	_, err = run(t, "", "fixture", "--set", "broken")
	assert.Error(t, err)

	_, err = run(t, "", "fixture", "--tier", "platinum")
	assert.Error(t, err)
}

func TestSign_StaleSignatureFails(t *testing.T) {
	body := `{"id":"evt_1","type":"payment_intent.created","data":{"object":{}}}`
	header, err := run(t, body, "sign", "--secret", cliSecret, "--age", "1h", "-")
	require.NoError(t, err)

	_, err = fulfillment.Verify([]byte(body), strings.TrimSpace(header), cliSecret, 0)
	assert.ErrorIs(t, err, fulfillment.ErrSignatureInvalid)
}

func TestSign_RequiresSecret(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRET", "")
	_, err := run(t, "{}", "sign", "-")
	assert.Error(t, err)
}

func TestSend(t *testing.T) {
	var gotSig string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSig = r.Header.Get("Stripe-Signature")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"received":true,"outcome":"ignored"}`))
	}))
	t.Cleanup(srv.Close)

	path := filepath.Join(t.TempDir(), "event.json")
	payload := `{"id":"evt_1","type":"payment_intent.created","data":{"object":{}}}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))

	out, err := run(t, "", "send", "--secret", cliSecret, "--url", srv.URL, path)
	require.NoError(t, err)
	assert.Contains(t, out, "200 OK")
	assert.Contains(t, out, `"outcome":"ignored"`)
	assert.Equal(t, payload, string(gotBody))

	_, err = fulfillment.Verify(gotBody, gotSig, cliSecret, 0)
	assert.NoError(t, err)
}

func TestSend_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"missing_signature"}`))
	}))
	t.Cleanup(srv.Close)

	out, err := run(t, "{}", "send", "--unsigned", "--url", srv.URL, "-")
	assert.Error(t, err)
	assert.Contains(t, out, "missing_signature")
}
