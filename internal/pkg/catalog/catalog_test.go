package catalog

import (
	"testing"

	"github.com/ManuelReschke/SurpriseArtwork/internal/pkg/fulfillment"
)

var _ fulfillment.CategoryResolver = (*Catalog)(nil)

func TestCategory(t *testing.T) {
	c := Default()
	tests := []struct {
		in   string
		want string
	}{
		{in: "basic", want: "nature landscape photography"},
		{in: "premium", want: "abstract art modern photography"},
		{in: "DELUXE", want: "fine art professional photography"},
		{in: "unknown", want: "nature landscape photography"},
		{in: "", want: "nature landscape photography"},
	}

	for _, tt := range tests {
		if got := c.Category(tt.in); got != tt.want {
			t.Fatalf("Category(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTierLookup(t *testing.T) {
	c := Default()
	tier, ok := c.Tier(" Premium ")
	if !ok {
		t.Fatalf("expected premium tier")
	}
	if tier.Price != 1999 {
		t.Fatalf("expected premium price 1999, got %d", tier.Price)
	}
	if _, ok := c.Tier("platinum"); ok {
		t.Fatalf("expected unknown tier lookup to fail")
	}
}

func TestTierReferenceDropsCatalogOnlyFields(t *testing.T) {
	tier, _ := Default().Tier(TierBasic)
	ref := tier.Reference()
	if ref != (fulfillment.TierReference{ID: "basic", Name: "Basic Surprise", Price: 999}) {
		t.Fatalf("unexpected reference: %+v", ref)
	}
}

func TestTiersReturnsCopy(t *testing.T) {
	c := Default()
	tiers := c.Tiers()
	tiers[0].Price = 1
	if got, _ := c.Tier(TierBasic); got.Price != 999 {
		t.Fatalf("catalog was mutated through Tiers(): %d", got.Price)
	}
}

func TestNewDefaultsCategoryToFirstTier(t *testing.T) {
	c := New([]Tier{{ID: "a", Name: "A", Price: 100}}, map[string]string{"A": "cats"}, "", nil)
	if got := c.Category("missing"); got != "cats" {
		t.Fatalf("expected fallback to first tier category, got %q", got)
	}
}
