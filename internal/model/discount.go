package model

import (
	"fmt"
	"time"

	"hemp-kart/internal/discount"

	"github.com/google/uuid"
)

// Discount code types. A code is either a percentage off the subtotal or a
// flat amount off, never both.
const (
	DiscountTypePercent = "PERCENT"
	DiscountTypeAmount  = "AMOUNT"
)

// DiscountCode is an admin-authored promotional rule.
type DiscountCode struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	Code             string     `json:"code" db:"code"`
	Description      string     `json:"description" db:"description"`
	AmbassadorLabel  string     `json:"ambassadorLabel,omitempty" db:"ambassador_label"`
	Type             string     `json:"type" db:"type"`
	PercentOff       *int       `json:"percentOff,omitempty" db:"percent_off"`
	AmountOffCents   *int64     `json:"amountOffCents,omitempty" db:"amount_off_cents"`
	MinSubtotalCents *int64     `json:"minSubtotalCents,omitempty" db:"min_subtotal_cents"`
	MaxUses          *int       `json:"maxUses,omitempty" db:"max_uses"`
	UsesCount        int        `json:"usesCount" db:"uses_count"`
	IsActive         bool       `json:"isActive" db:"is_active"`
	ExpiresAt        *time.Time `json:"expiresAt,omitempty" db:"expires_at"`
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time  `json:"updatedAt" db:"updated_at"`
}

// Rule converts the stored row into an evaluation rule. Rows that violate
// type exclusivity (both or neither value field set for their type) are
// rejected rather than guessed at.
func (c *DiscountCode) Rule() (discount.Rule, error) {
	rule := discount.Rule{}
	if c.MinSubtotalCents != nil {
		rule.MinSubtotalCents = *c.MinSubtotalCents
	}

	switch c.Type {
	case DiscountTypePercent:
		if c.PercentOff == nil || c.AmountOffCents != nil {
			return discount.Rule{}, fmt.Errorf("discount code %s: PERCENT type requires percentOff only", c.ID)
		}
		rule.Value = discount.Percent{Off: *c.PercentOff}
	case DiscountTypeAmount:
		if c.AmountOffCents == nil || c.PercentOff != nil {
			return discount.Rule{}, fmt.Errorf("discount code %s: AMOUNT type requires amountOffCents only", c.ID)
		}
		rule.Value = discount.Amount{OffCents: *c.AmountOffCents}
	default:
		return discount.Rule{}, fmt.Errorf("discount code %s: unknown type %q", c.ID, c.Type)
	}

	return rule, nil
}

// Expired reports whether the code is inert at the given instant. Codes
// expire at the stored timestamp, not after it.
func (c *DiscountCode) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && !now.Before(*c.ExpiresAt)
}

// UsageExhausted reports whether the lifetime redemption cap is reached.
func (c *DiscountCode) UsageExhausted() bool {
	return c.MaxUses != nil && c.UsesCount >= *c.MaxUses
}

// DiscountRedemption is one committed application of a code at checkout.
// Rows are append-only: created inside the redemption transaction and never
// mutated or deleted afterwards.
type DiscountRedemption struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	DiscountCodeID uuid.UUID  `json:"discountCodeId" db:"discount_code_id"`
	CodeSnapshot   string     `json:"codeSnapshot" db:"code_snapshot"`
	UserID         *string    `json:"userId,omitempty" db:"user_id"`
	UserEmail      *string    `json:"userEmail,omitempty" db:"user_email"`
	SubtotalCents  int64      `json:"subtotalCents" db:"subtotal_cents"`
	DiscountCents  int64      `json:"discountCents" db:"discount_cents"`
	TotalCents     int64      `json:"totalCents" db:"total_cents"`
	Items          []CartItem `json:"items" db:"items_json"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
}

// CodeSummary is one group in the admin analytics report: all redemptions
// sharing a code snapshot, summed.
type CodeSummary struct {
	Code          string      `json:"code"`
	Uses          int         `json:"uses"`
	SubtotalCents int64       `json:"subtotalCents"`
	DiscountCents int64       `json:"discountCents"`
	TotalCents    int64       `json:"totalCents"`
	LastUsedAt    time.Time   `json:"lastUsedAt"`
	TopItems      []ItemCount `json:"topItems"`
}

// ItemCount is a product name with its cumulative redeemed quantity.
type ItemCount struct {
	Name string `json:"name"`
	Qty  int    `json:"qty"`
}
