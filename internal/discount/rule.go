package discount

// MaxPercentOff is the hard ceiling on any percentage discount. It doubles
// as the structural cap: no discount of any kind may exceed half the cart
// subtotal, whatever value an admin (or a corrupted row) stored.
const MaxPercentOff = 50

// Value is the discount amount variant of a rule. Exactly two
// implementations exist, matching the PERCENT and AMOUNT code types, so a
// rule can never carry both a percentage and a flat amount.
type Value interface {
	isValue()
}

// Percent takes a percentage off the cart subtotal.
type Percent struct {
	// Off is the stored percentage. Values outside [0, MaxPercentOff]
	// are clamped at evaluation time.
	Off int
}

func (Percent) isValue() {}

// Amount takes a flat number of cents off the cart subtotal.
type Amount struct {
	OffCents int64
}

func (Amount) isValue() {}

// Rule is the evaluation-time snapshot of a discount code. Lifecycle state
// (active flag, expiry, usage caps) is checked by the orchestrator before
// evaluation; the rule carries only what pricing needs.
type Rule struct {
	// MinSubtotalCents gates the rule: subtotals strictly below it get no
	// discount. Zero or negative means no floor.
	MinSubtotalCents int64

	Value Value
}
