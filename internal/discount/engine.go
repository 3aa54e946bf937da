package discount

import "hemp-kart/internal/money"

// Reason explains a zero-cent evaluation result. A closed set: handlers map
// these to user-facing messages, anything unrecognised falls through to a
// generic "does not apply".
type Reason string

const (
	// ReasonNone means the discount applied.
	ReasonNone Reason = ""

	// ReasonEmptyCart means the subtotal was zero or negative.
	ReasonEmptyCart Reason = "empty_cart"

	// ReasonMinSubtotal means the cart did not meet the rule's floor.
	ReasonMinSubtotal Reason = "min_subtotal"

	// ReasonNoDiscount means the rule evaluated to zero benefit.
	ReasonNoDiscount Reason = "no_discount"
)

// Result is the outcome of evaluating a rule against a subtotal.
// DiscountCents is zero whenever Reason is non-empty.
type Result struct {
	DiscountCents int64
	Reason        Reason
}

// Applied reports whether the evaluation produced a positive discount.
func (r Result) Applied() bool {
	return r.Reason == ReasonNone && r.DiscountCents > 0
}

// Evaluate computes the discount in cents for a cart subtotal under the
// given rule. It is pure: no I/O, no shared state, identical inputs always
// produce identical results, and it never panics on hostile rule values.
//
// Invariants, in precedence order:
//   - a zero or negative subtotal short-circuits to empty_cart
//   - a subtotal below the rule's minimum short-circuits to min_subtotal
//   - the final discount never exceeds floor(subtotal/2) nor the subtotal,
//     regardless of what the rule stores
func Evaluate(subtotalCents int64, rule Rule) Result {
	subtotal := subtotalCents
	if subtotal <= 0 {
		return Result{Reason: ReasonEmptyCart}
	}

	if rule.MinSubtotalCents > 0 && subtotal < rule.MinSubtotalCents {
		return Result{Reason: ReasonMinSubtotal}
	}

	var raw int64
	switch v := rule.Value.(type) {
	case Percent:
		pct := money.Clamp(int64(v.Off), 0, MaxPercentOff)
		raw = subtotal * pct / 100
	case Amount:
		if v.OffCents > 0 {
			raw = v.OffCents
		}
	default:
		// nil or unknown variant: no benefit
		raw = 0
	}

	structuralCap := subtotal / 2
	discount := money.Clamp(raw, 0, min64(structuralCap, subtotal))
	if discount <= 0 {
		return Result{Reason: ReasonNoDiscount}
	}

	return Result{DiscountCents: discount}
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
