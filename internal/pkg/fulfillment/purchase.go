package fulfillment

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Session metadata keys written at checkout creation and read back here.
const (
	MetadataTierID      = "tier_id"
	MetadataTierName    = "tier_name"
	MetadataTierPrice   = "tier_price"
	MetadataTipAmount   = "tip_amount"
	MetadataTotalAmount = "total_amount"
)

// TierReference is what the event metadata says was bought. Catalog-only
// fields (description, features) are not embedded in the event.
type TierReference struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// Purchase is the typed result of reconstructing a completed session.
type Purchase struct {
	SessionID     string
	CustomerEmail string
	Tier          TierReference
	TipAmount     int64
	TotalAmount   int64
}

// ArtworkSources lists the renditions of an artwork image.
type ArtworkSources struct {
	Original  string `json:"original"`
	Large2x   string `json:"large2x"`
	Large     string `json:"large"`
	Medium    string `json:"medium"`
	Small     string `json:"small"`
	Portrait  string `json:"portrait"`
	Landscape string `json:"landscape"`
	Tiny      string `json:"tiny"`
}

// Artwork is the enrichment content attached to a purchase.
type Artwork struct {
	ID              int64          `json:"id"`
	Width           int            `json:"width"`
	Height          int            `json:"height"`
	URL             string         `json:"url"`
	Photographer    string         `json:"photographer"`
	PhotographerURL string         `json:"photographer_url"`
	PhotographerID  int64          `json:"photographer_id"`
	AvgColor        string         `json:"avg_color"`
	Src             ArtworkSources `json:"src"`
}

// PurchaseRecord is delivered downstream. Amounts are minor currency units and
// TotalAmount == Tier.Price + TipAmount holds for every emitted record.
type PurchaseRecord struct {
	CustomerEmail   string        `json:"customer_email"`
	Tier            TierReference `json:"tier"`
	TipAmount       int64         `json:"tip_amount"`
	TotalAmount     int64         `json:"total_amount"`
	StripeSessionID string        `json:"stripe_session_id"`
	Image           Artwork       `json:"image"`
	PurchaseDate    time.Time     `json:"purchase_date"`
}

// EncodeMetadata renders the session metadata for a tier purchase with a tip.
func EncodeMetadata(tier TierReference, tip int64) map[string]string {
	return map[string]string{
		MetadataTierID:      tier.ID,
		MetadataTierName:    tier.Name,
		MetadataTierPrice:   strconv.FormatInt(tier.Price, 10),
		MetadataTipAmount:   strconv.FormatInt(tip, 10),
		MetadataTotalAmount: strconv.FormatInt(tier.Price+tip, 10),
	}
}

// Reconstruct rebuilds the purchase from the session metadata and checks that
// the declared total matches price plus tip.
func Reconstruct(session *CheckoutSession) (*Purchase, error) {
	md := session.Metadata

	var missing []string
	for _, key := range []string{MetadataTierID, MetadataTierName, MetadataTierPrice, MetadataTotalAmount} {
		if md[key] == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, &Error{
			Kind:      ErrMetadataMissing,
			SessionID: session.ID,
			Detail:    "missing " + strings.Join(missing, ", "),
		}
	}

	price, err := parseAmount(md, MetadataTierPrice)
	if err != nil {
		return nil, metadataMalformed(session.ID, err)
	}
	total, err := parseAmount(md, MetadataTotalAmount)
	if err != nil {
		return nil, metadataMalformed(session.ID, err)
	}
	var tip int64
	if md[MetadataTipAmount] != "" {
		tip, err = parseAmount(md, MetadataTipAmount)
		if err != nil {
			return nil, metadataMalformed(session.ID, err)
		}
	}

	if price > math.MaxInt64-tip || price+tip != total {
		return nil, &Error{
			Kind:      ErrAmountMismatch,
			SessionID: session.ID,
			Detail:    fmt.Sprintf("total_amount %d != tier_price %d + tip_amount %d", total, price, tip),
		}
	}

	return &Purchase{
		SessionID:     session.ID,
		CustomerEmail: session.CustomerEmail,
		Tier: TierReference{
			ID:    md[MetadataTierID],
			Name:  md[MetadataTierName],
			Price: price,
		},
		TipAmount:   tip,
		TotalAmount: total,
	}, nil
}

// parseAmount accepts only plain decimal digits that fit in an int64.
func parseAmount(md map[string]string, key string) (int64, error) {
	v := md[key]
	for i := 0; i < len(v); i++ {
		if v[i] < '0' || v[i] > '9' {
			return 0, fmt.Errorf("%s %q is not a non-negative integer", key, v)
		}
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q is out of range", key, v)
	}
	return n, nil
}

func metadataMalformed(sessionID string, err error) error {
	return &Error{Kind: ErrMetadataMalformed, SessionID: sessionID, Detail: err.Error()}
}
