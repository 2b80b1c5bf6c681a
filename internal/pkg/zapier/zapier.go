package zapier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ManuelReschke/SurpriseArtwork/internal/pkg/fulfillment"
)

const (
	userAgent      = "SurpriseArtworkShop/1.0"
	sourceShop     = "surprise-artwork-shop"
	sourceShopTest = "surprise-artwork-shop-test"
)

// Client posts purchase records to a Zapier catch hook.
type Client struct {
	WebhookURL string
	SecretKey  string
	HTTPClient *http.Client

	now func() time.Time
}

type purchasePayload struct {
	fulfillment.PurchaseRecord
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
}

type testPayload struct {
	Test      bool      `json:"test"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
}

func NewClient(webhookURL, secretKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		WebhookURL: strings.TrimSpace(webhookURL),
		SecretKey:  strings.TrimSpace(secretKey),
		HTTPClient: &http.Client{Timeout: timeout},
		now:        time.Now,
	}
}

// Deliver sends a purchase record downstream.
func (c *Client) Deliver(ctx context.Context, record fulfillment.PurchaseRecord) error {
	return c.post(ctx, purchasePayload{
		PurchaseRecord: record,
		Timestamp:      c.clock().UTC(),
		Source:         sourceShop,
	})
}

// TestConnection posts a marker payload so the hook can be checked without a purchase.
func (c *Client) TestConnection(ctx context.Context) error {
	return c.post(ctx, testPayload{
		Test:      true,
		Timestamp: c.clock().UTC(),
		Source:    sourceShopTest,
	})
}

func (c *Client) clock() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}

func (c *Client) post(ctx context.Context, payload any) error {
	if c.WebhookURL == "" {
		return errors.New("ZAPIER_WEBHOOK_URL is not configured")
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.SecretKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.SecretKey)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("zapier webhook failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	return nil
}
