package models

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxTipAmount caps the optional tip in cents.
const MaxTipAmount = 50000

// CheckoutRequest is the body of POST /api/create-checkout-session.
type CheckoutRequest struct {
	TierID    string `json:"tier_id" validate:"required,max=64"`
	TipAmount int64  `json:"tip_amount" validate:"min=0,max=50000"`
}

func (r *CheckoutRequest) Normalize() {
	r.TierID = strings.ToLower(strings.TrimSpace(r.TierID))
}

func (r *CheckoutRequest) Validate() error {
	v := validator.New()
	return v.Struct(r)
}
