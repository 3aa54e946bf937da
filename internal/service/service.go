package service

import (
	"context"

	"hemp-kart/internal/model"

	"github.com/google/uuid"
)

// DiscountService defines the checkout-facing discount operations.
type DiscountService interface {
	// Validate previews a code against a cart. Read-only: no counter moves,
	// no ledger row is written.
	Validate(ctx context.Context, req *model.ValidateRequest) (*model.ValidateResponse, error)

	// Checkout prices a cart and, when a code applies, commits the
	// redemption atomically (counter increment + ledger insert).
	Checkout(ctx context.Context, req *model.CheckoutRequest) (*model.CheckoutResponse, error)
}

// AnalyticsService defines the admin reporting operations over the
// redemption ledger.
type AnalyticsService interface {
	// Summary aggregates recent redemptions per code snapshot, ordered by
	// summed total cents descending.
	Summary(ctx context.Context) ([]model.CodeSummary, error)

	// Export writes the current summary to the configured export target
	// and returns the key it was written under.
	Export(ctx context.Context) (string, error)
}

// AdminService defines discount-code management operations.
type AdminService interface {
	// List retrieves codes, newest first.
	List(ctx context.Context, limit, offset int) ([]model.DiscountCode, error)

	// Create inserts a new code after invariant validation.
	Create(ctx context.Context, req *model.CodeCreateRequest) (*model.DiscountCode, error)

	// Update applies a partial edit after invariant validation.
	Update(ctx context.Context, id uuid.UUID, req *model.CodePatchRequest) (*model.DiscountCode, error)

	// Delete removes a code. The redemption ledger is untouched.
	Delete(ctx context.Context, id uuid.UUID) error
}
