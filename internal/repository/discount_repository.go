package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"hemp-kart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// discountRepository implements DiscountRepository using PostgreSQL.
type discountRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewDiscountRepository creates a new PostgreSQL-backed discount repository.
func NewDiscountRepository(pool *pgxpool.Pool, logger zerolog.Logger) DiscountRepository {
	return &discountRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "discount").Logger(),
	}
}

const discountCodeColumns = `
	id, code, description, ambassador_label, type, percent_off,
	amount_off_cents, min_subtotal_cents, max_uses, uses_count,
	is_active, expires_at, created_at, updated_at
`

func scanDiscountCode(row pgx.Row) (*model.DiscountCode, error) {
	var c model.DiscountCode
	err := row.Scan(
		&c.ID,
		&c.Code,
		&c.Description,
		&c.AmbassadorLabel,
		&c.Type,
		&c.PercentOff,
		&c.AmountOffCents,
		&c.MinSubtotalCents,
		&c.MaxUses,
		&c.UsesCount,
		&c.IsActive,
		&c.ExpiresAt,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByCode retrieves a code by its normalised string.
func (r *discountRepository) GetByCode(ctx context.Context, code string) (*model.DiscountCode, error) {
	query := `
		SELECT ` + discountCodeColumns + `
		FROM discount_codes
		WHERE code = $1
	`

	c, err := scanDiscountCode(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("code", code).Msg("discount code not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("code", code).Msg("failed to query discount code")
		return nil, fmt.Errorf("failed to query discount code: %w", err)
	}

	return c, nil
}

// GetByID retrieves a code by identifier.
func (r *discountRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.DiscountCode, error) {
	query := `
		SELECT ` + discountCodeColumns + `
		FROM discount_codes
		WHERE id = $1
	`

	c, err := scanDiscountCode(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("discount_id", id.String()).Msg("failed to query discount code")
		return nil, fmt.Errorf("failed to query discount code: %w", err)
	}

	return c, nil
}

// List retrieves codes ordered by creation time, newest first.
func (r *discountRepository) List(ctx context.Context, limit, offset int) ([]model.DiscountCode, error) {
	query := `
		SELECT ` + discountCodeColumns + `
		FROM discount_codes
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query discount codes")
		return nil, fmt.Errorf("failed to query discount codes: %w", err)
	}
	defer rows.Close()

	var codes []model.DiscountCode
	for rows.Next() {
		c, err := scanDiscountCode(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan discount code row")
			return nil, fmt.Errorf("failed to scan discount code: %w", err)
		}
		codes = append(codes, *c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating discount code rows")
		return nil, fmt.Errorf("error iterating discount codes: %w", err)
	}

	return codes, nil
}

// Create inserts a new code.
func (r *discountRepository) Create(ctx context.Context, code *model.DiscountCode) error {
	query := `
		INSERT INTO discount_codes (
			id, code, description, ambassador_label, type, percent_off,
			amount_off_cents, min_subtotal_cents, max_uses, uses_count,
			is_active, expires_at, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.pool.Exec(ctx, query,
		code.ID,
		code.Code,
		code.Description,
		code.AmbassadorLabel,
		code.Type,
		code.PercentOff,
		code.AmountOffCents,
		code.MinSubtotalCents,
		code.MaxUses,
		code.UsesCount,
		code.IsActive,
		code.ExpiresAt,
		code.CreatedAt,
		code.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("code", code.Code).Msg("failed to create discount code")
		return fmt.Errorf("failed to create discount code: %w", err)
	}

	r.logger.Debug().
		Str("discount_id", code.ID.String()).
		Str("code", code.Code).
		Msg("discount code created")

	return nil
}

// Update persists admin edits. uses_count is intentionally excluded; the
// counter only moves through Redeem.
func (r *discountRepository) Update(ctx context.Context, code *model.DiscountCode) error {
	query := `
		UPDATE discount_codes
		SET code = $2,
		    description = $3,
		    ambassador_label = $4,
		    type = $5,
		    percent_off = $6,
		    amount_off_cents = $7,
		    min_subtotal_cents = $8,
		    max_uses = $9,
		    is_active = $10,
		    expires_at = $11,
		    updated_at = $12
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		code.ID,
		code.Code,
		code.Description,
		code.AmbassadorLabel,
		code.Type,
		code.PercentOff,
		code.AmountOffCents,
		code.MinSubtotalCents,
		code.MaxUses,
		code.IsActive,
		code.ExpiresAt,
		code.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("discount_id", code.ID.String()).Msg("failed to update discount code")
		return fmt.Errorf("failed to update discount code: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrDiscountNotFound
	}

	return nil
}

// Delete removes a code. Ledger rows keep their snapshot string.
func (r *discountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM discount_codes WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("discount_id", id.String()).Msg("failed to delete discount code")
		return fmt.Errorf("failed to delete discount code: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrDiscountNotFound
	}

	r.logger.Info().Str("discount_id", id.String()).Msg("discount code deleted")
	return nil
}

// Redeem commits one redemption atomically. The increment is conditional on
// the usage cap inside the UPDATE itself, so two checkouts racing for the
// last remaining use cannot both commit: the loser matches zero rows and
// the whole transaction rolls back.
func (r *discountRepository) Redeem(ctx context.Context, redemption *model.DiscountRedemption) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin redemption transaction")
		return fmt.Errorf("failed to begin redemption transaction: %w", err)
	}
	defer func() {
		// No-op after a successful commit.
		_ = tx.Rollback(ctx)
	}()

	increment := `
		UPDATE discount_codes
		SET uses_count = uses_count + 1,
		    updated_at = $2
		WHERE id = $1
		  AND (max_uses IS NULL OR uses_count < max_uses)
	`

	tag, err := tx.Exec(ctx, increment, redemption.DiscountCodeID, redemption.CreatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("discount_id", redemption.DiscountCodeID.String()).
			Msg("failed to increment usage counter")
		return fmt.Errorf("failed to increment usage counter: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Warn().
			Str("discount_id", redemption.DiscountCodeID.String()).
			Str("code", redemption.CodeSnapshot).
			Msg("usage limit reached during redemption")
		return model.ErrUsageLimitReached
	}

	itemsJSON, err := json.Marshal(redemption.Items)
	if err != nil {
		return fmt.Errorf("failed to encode redemption items: %w", err)
	}

	insert := `
		INSERT INTO discount_redemptions (
			id, discount_code_id, code_snapshot, user_id, user_email,
			subtotal_cents, discount_cents, total_cents, items_json, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = tx.Exec(ctx, insert,
		redemption.ID,
		redemption.DiscountCodeID,
		redemption.CodeSnapshot,
		redemption.UserID,
		redemption.UserEmail,
		redemption.SubtotalCents,
		redemption.DiscountCents,
		redemption.TotalCents,
		itemsJSON,
		redemption.CreatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("redemption_id", redemption.ID.String()).
			Msg("failed to insert redemption record")
		return fmt.Errorf("failed to insert redemption record: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Msg("failed to commit redemption transaction")
		return fmt.Errorf("failed to commit redemption transaction: %w", err)
	}

	r.logger.Info().
		Str("redemption_id", redemption.ID.String()).
		Str("code", redemption.CodeSnapshot).
		Int64("discount_cents", redemption.DiscountCents).
		Msg("redemption committed")

	return nil
}
