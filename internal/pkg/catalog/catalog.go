package catalog

import (
	"strings"

	"github.com/ManuelReschke/SurpriseArtwork/internal/pkg/fulfillment"
)

const (
	TierBasic   = "basic"
	TierPremium = "premium"
	TierDeluxe  = "deluxe"
)

// Currency of all catalog prices. Amounts are in cents.
const Currency = "usd"

// Tier is a purchasable artwork package.
type Tier struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       int64    `json:"price"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
}

// Reference projects the tier onto the fields embedded in session metadata.
func (t Tier) Reference() fulfillment.TierReference {
	return fulfillment.TierReference{ID: t.ID, Name: t.Name, Price: t.Price}
}

// Catalog is the static price list plus the image-search category per tier.
type Catalog struct {
	tiers           []Tier
	categories      map[string]string
	defaultCategory string
	tipOptions      []int64
}

// Default returns the shop's catalog.
func Default() *Catalog {
	return &Catalog{
		tiers: []Tier{
			{
				ID:          TierBasic,
				Name:        "Basic Surprise",
				Price:       999,
				Description: "A delightful digital artwork to brighten your day",
				Features: []string{
					"High-quality digital artwork",
					"Instant download",
					"Commercial usage rights",
					"Email support",
				},
			},
			{
				ID:          TierPremium,
				Name:        "Premium Surprise",
				Price:       1999,
				Description: "Premium curated artwork with exclusive content",
				Features: []string{
					"Premium high-resolution artwork",
					"Instant download",
					"Extended commercial rights",
					"Artist information included",
					"Priority support",
				},
			},
			{
				ID:          TierDeluxe,
				Name:        "Deluxe Collection",
				Price:       3999,
				Description: "The ultimate surprise package with bonus content",
				Features: []string{
					"Ultra high-resolution artwork",
					"Multiple format downloads",
					"Full commercial rights",
					"Artist biography & story",
					"Exclusive bonus content",
					"VIP support",
				},
			},
		},
		categories: map[string]string{
			TierBasic:   "nature landscape photography",
			TierPremium: "abstract art modern photography",
			TierDeluxe:  "fine art professional photography",
		},
		defaultCategory: "nature landscape photography",
		tipOptions:      []int64{0, 100, 200, 500},
	}
}

// New builds a catalog from explicit data. An empty default category falls
// back to the category of the first tier.
func New(tiers []Tier, categories map[string]string, defaultCategory string, tipOptions []int64) *Catalog {
	c := &Catalog{
		tiers:           append([]Tier(nil), tiers...),
		categories:      make(map[string]string, len(categories)),
		defaultCategory: defaultCategory,
		tipOptions:      append([]int64(nil), tipOptions...),
	}
	for k, v := range categories {
		c.categories[normalizeID(k)] = v
	}
	if c.defaultCategory == "" && len(tiers) > 0 {
		c.defaultCategory = c.categories[normalizeID(tiers[0].ID)]
	}
	return c
}

// Tiers returns a copy of all tiers in display order.
func (c *Catalog) Tiers() []Tier {
	return append([]Tier(nil), c.tiers...)
}

// Tier looks up a tier by id, case-insensitively.
func (c *Catalog) Tier(id string) (Tier, bool) {
	id = normalizeID(id)
	for _, t := range c.tiers {
		if t.ID == id {
			return t, true
		}
	}
	return Tier{}, false
}

// TipOptions returns the suggested tip amounts in cents.
func (c *Catalog) TipOptions() []int64 {
	return append([]int64(nil), c.tipOptions...)
}

// Category returns the image-search category for a tier. Unknown tiers get the
// default category.
func (c *Catalog) Category(tierID string) string {
	if q, ok := c.categories[normalizeID(tierID)]; ok && q != "" {
		return q
	}
	return c.defaultCategory
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
