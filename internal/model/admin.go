package model

import "time"

// CodeCreateRequest is the admin payload for creating a discount code.
// The same percent-range and type-exclusivity invariants the evaluation
// engine enforces at read time are enforced here at write time.
type CodeCreateRequest struct {
	Code             string     `json:"code"`
	Description      string     `json:"description"`
	AmbassadorLabel  string     `json:"ambassadorLabel,omitempty"`
	Type             string     `json:"type"`
	PercentOff       *int       `json:"percentOff,omitempty"`
	AmountOffCents   *int64     `json:"amountOffCents,omitempty"`
	MinSubtotalCents *int64     `json:"minSubtotalCents,omitempty"`
	MaxUses          *int       `json:"maxUses,omitempty"`
	IsActive         *bool      `json:"isActive,omitempty"`
	ExpiresAt        *time.Time `json:"expiresAt,omitempty"`
}

// CodePatchRequest is the admin payload for editing a code. Every field is
// optional; absent fields are left untouched. usesCount is not patchable:
// the counter only moves through the redemption transaction.
type CodePatchRequest struct {
	Code             *string    `json:"code,omitempty"`
	Description      *string    `json:"description,omitempty"`
	AmbassadorLabel  *string    `json:"ambassadorLabel,omitempty"`
	Type             *string    `json:"type,omitempty"`
	PercentOff       *int       `json:"percentOff,omitempty"`
	AmountOffCents   *int64     `json:"amountOffCents,omitempty"`
	MinSubtotalCents *int64     `json:"minSubtotalCents,omitempty"`
	MaxUses          *int       `json:"maxUses,omitempty"`
	IsActive         *bool      `json:"isActive,omitempty"`
	ExpiresAt        *time.Time `json:"expiresAt,omitempty"`
}
