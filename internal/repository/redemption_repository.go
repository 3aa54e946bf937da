package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"hemp-kart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// redemptionRepository implements RedemptionRepository using PostgreSQL.
type redemptionRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewRedemptionRepository creates a new PostgreSQL-backed redemption repository.
func NewRedemptionRepository(pool *pgxpool.Pool, logger zerolog.Logger) RedemptionRepository {
	return &redemptionRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "redemption").Logger(),
	}
}

// ListRecent retrieves up to limit redemptions, most recent first.
func (r *redemptionRepository) ListRecent(ctx context.Context, limit int) ([]model.DiscountRedemption, error) {
	query := `
		SELECT id, discount_code_id, code_snapshot, user_id, user_email,
		       subtotal_cents, discount_cents, total_cents, items_json, created_at
		FROM discount_redemptions
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query redemptions")
		return nil, fmt.Errorf("failed to query redemptions: %w", err)
	}
	defer rows.Close()

	var redemptions []model.DiscountRedemption
	for rows.Next() {
		var red model.DiscountRedemption
		var itemsJSON []byte

		err := rows.Scan(
			&red.ID,
			&red.DiscountCodeID,
			&red.CodeSnapshot,
			&red.UserID,
			&red.UserEmail,
			&red.SubtotalCents,
			&red.DiscountCents,
			&red.TotalCents,
			&itemsJSON,
			&red.CreatedAt,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan redemption row")
			return nil, fmt.Errorf("failed to scan redemption: %w", err)
		}

		if len(itemsJSON) > 0 {
			if err := json.Unmarshal(itemsJSON, &red.Items); err != nil {
				// A corrupt snapshot should not hide the rest of the ledger.
				r.logger.Warn().
					Err(err).
					Str("redemption_id", red.ID.String()).
					Msg("failed to decode redemption item snapshot")
			}
		}

		redemptions = append(redemptions, red)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating redemption rows")
		return nil, fmt.Errorf("error iterating redemptions: %w", err)
	}

	return redemptions, nil
}

// CountByCodeID returns the number of ledger rows for one code.
func (r *redemptionRepository) CountByCodeID(ctx context.Context, codeID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM discount_redemptions WHERE discount_code_id = $1`,
		codeID,
	).Scan(&count)
	if err != nil {
		r.logger.Error().Err(err).Str("discount_id", codeID.String()).Msg("failed to count redemptions")
		return 0, fmt.Errorf("failed to count redemptions: %w", err)
	}
	return count, nil
}
