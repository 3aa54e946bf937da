package model

// CartItem is a snapshot of one cart line at checkout time. It is the input
// to subtotal computation and the audit payload persisted on a redemption;
// it is never stored as its own row.
type CartItem struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Variant    string `json:"variant,omitempty"`
	PriceCents int64  `json:"priceCents"`
	Qty        int    `json:"qty"`
}

// ValidateRequest is the payload for POST /discounts/validate.
// SubtotalCents is declared as any because storefront clients send it as
// either a JSON number or a numeric string; money.ToCents normalises it.
type ValidateRequest struct {
	Code          string     `json:"code"`
	SubtotalCents any        `json:"subtotalCents"`
	Items         []CartItem `json:"items"`
}

// ValidateResponse is the success payload for POST /discounts/validate.
// It exposes the code's public metadata plus the computed discount; no
// write occurs on this path.
type ValidateResponse struct {
	OK              bool   `json:"ok"`
	Code            string `json:"code"`
	Description     string `json:"description"`
	AmbassadorLabel string `json:"ambassadorLabel,omitempty"`
	DiscountCents   int64  `json:"discountCents"`
	Type            string `json:"type"`
	PercentOff      *int   `json:"percentOff,omitempty"`
	AmountOffCents  *int64 `json:"amountOffCents,omitempty"`
}

// CheckoutRequest is the payload for POST /checkout.
type CheckoutRequest struct {
	Items         []CartItem `json:"items"`
	SubtotalCents any        `json:"subtotalCents"`
	Code          string     `json:"code,omitempty"`
	UserID        *string    `json:"userId,omitempty"`
	UserEmail     *string    `json:"userEmail,omitempty"`
}

// CheckoutResponse is the success payload for POST /checkout.
type CheckoutResponse struct {
	OK            bool  `json:"ok"`
	SubtotalCents int64 `json:"subtotalCents"`
	DiscountCents int64 `json:"discountCents"`
	TotalCents    int64 `json:"totalCents"`
}

// AnalyticsResponse is the success payload for GET /admin/discounts/analytics.
type AnalyticsResponse struct {
	OK      bool          `json:"ok"`
	Summary []CodeSummary `json:"summary"`
}
