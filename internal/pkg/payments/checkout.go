package payments

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"github.com/ManuelReschke/SurpriseArtwork/internal/pkg/catalog"
	"github.com/ManuelReschke/SurpriseArtwork/internal/pkg/fulfillment"
)

const productImageURL = "https://images.unsplash.com/photo-1541961017774-22349e4a1262?w=400"

var (
	ErrUnknownTier   = errors.New("unknown tier")
	ErrInvalidTip    = errors.New("invalid tip amount")
	ErrProviderDown  = errors.New("payment provider unavailable")
	ErrCheckoutError = errors.New("checkout session could not be created")
)

// CheckoutService creates Stripe checkout sessions whose metadata the webhook
// pipeline later reconstructs the purchase from.
type CheckoutService struct {
	api     *client.API
	catalog *catalog.Catalog
	siteURL string
}

// NewCheckoutService creates the service. backends may be nil for the
// default Stripe API.
func NewCheckoutService(secretKey, siteURL string, cat *catalog.Catalog, backends *stripe.Backends) *CheckoutService {
	sc := &client.API{}
	sc.Init(secretKey, backends)
	return &CheckoutService{
		api:     sc,
		catalog: cat,
		siteURL: strings.TrimRight(siteURL, "/"),
	}
}

// CreateSession starts a hosted checkout for a tier plus an optional tip.
func (s *CheckoutService) CreateSession(ctx context.Context, tierID string, tip int64) (*stripe.CheckoutSession, error) {
	tier, ok := s.catalog.Tier(tierID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTier, tierID)
	}
	if tip < 0 {
		return nil, ErrInvalidTip
	}

	params := BuildSessionParams(tier, tip, s.siteURL)
	params.Context = ctx

	cs, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, mapStripeError(err)
	}
	return cs, nil
}

// BuildSessionParams renders the checkout parameters for a purchase. All
// amounts are cents.
func BuildSessionParams(tier catalog.Tier, tip int64, siteURL string) *stripe.CheckoutSessionParams {
	lineItems := []*stripe.CheckoutSessionLineItemParams{
		{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(catalog.Currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String(tier.Name),
					Description: stripe.String(tier.Description),
					Images:      stripe.StringSlice([]string{productImageURL}),
				},
				UnitAmount: stripe.Int64(tier.Price),
			},
			Quantity: stripe.Int64(1),
		},
	}
	if tip > 0 {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(catalog.Currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String("Tip for Artist"),
					Description: stripe.String("Support the amazing photographers"),
				},
				UnitAmount: stripe.Int64(tip),
			},
			Quantity: stripe.Int64(1),
		})
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes:       stripe.StringSlice([]string{"card"}),
		LineItems:                lineItems,
		Mode:                     stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:               stripe.String(siteURL + "/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:                stripe.String(siteURL),
		BillingAddressCollection: stripe.String(string(stripe.CheckoutSessionBillingAddressCollectionRequired)),
		AutomaticTax: &stripe.CheckoutSessionAutomaticTaxParams{
			Enabled: stripe.Bool(false),
		},
	}
	for k, v := range fulfillment.EncodeMetadata(tier.Reference(), tip) {
		params.AddMetadata(k, v)
	}
	return params
}

func mapStripeError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		if stripeErr.HTTPStatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("%w: %s", ErrProviderDown, stripeErr.Msg)
		}
		return fmt.Errorf("%w: %s (%s)", ErrCheckoutError, stripeErr.Msg, stripeErr.Code)
	}
	return fmt.Errorf("%w: %v", ErrCheckoutError, err)
}
