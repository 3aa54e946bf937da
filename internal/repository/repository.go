package repository

import (
	"context"

	"hemp-kart/internal/model"

	"github.com/google/uuid"
)

// DiscountRepository defines data access for discount codes and the
// redemption write path.
type DiscountRepository interface {
	// GetByCode retrieves a code by its normalised (uppercase) string.
	// Returns nil when no such code exists.
	GetByCode(ctx context.Context, code string) (*model.DiscountCode, error)

	// GetByID retrieves a code by identifier. Returns nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.DiscountCode, error)

	// List retrieves codes ordered by creation time, newest first.
	List(ctx context.Context, limit, offset int) ([]model.DiscountCode, error)

	// Create inserts a new code.
	Create(ctx context.Context, code *model.DiscountCode) error

	// Update persists admin edits to an existing code. The uses counter is
	// deliberately not writable here; it only moves through Redeem.
	Update(ctx context.Context, code *model.DiscountCode) error

	// Delete removes a code. Redemption rows referencing it survive.
	Delete(ctx context.Context, id uuid.UUID) error

	// Redeem commits one redemption atomically: it increments the code's
	// uses counter only while under max_uses and inserts the audit row in
	// the same transaction. Returns model.ErrUsageLimitReached when the
	// conditional increment matches no row. Either both writes commit or
	// neither does.
	Redeem(ctx context.Context, redemption *model.DiscountRedemption) error
}

// RedemptionRepository defines read access to the redemption ledger.
type RedemptionRepository interface {
	// ListRecent retrieves up to limit redemptions, most recent first.
	ListRecent(ctx context.Context, limit int) ([]model.DiscountRedemption, error)

	// CountByCodeID returns the number of ledger rows for one code.
	CountByCodeID(ctx context.Context, codeID uuid.UUID) (int, error)
}
