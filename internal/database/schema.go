package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const schema = `
	CREATE TABLE IF NOT EXISTS discount_codes (
		id UUID PRIMARY KEY,
		code VARCHAR(50) NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		ambassador_label VARCHAR(100) NOT NULL DEFAULT '',
		type VARCHAR(10) NOT NULL,
		percent_off INTEGER,
		amount_off_cents BIGINT,
		min_subtotal_cents BIGINT,
		max_uses INTEGER,
		uses_count INTEGER NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		expires_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS discount_redemptions (
		id UUID PRIMARY KEY,
		discount_code_id UUID NOT NULL,
		code_snapshot VARCHAR(50) NOT NULL,
		user_id VARCHAR(100),
		user_email VARCHAR(255),
		subtotal_cents BIGINT NOT NULL,
		discount_cents BIGINT NOT NULL,
		total_cents BIGINT NOT NULL,
		items_json JSONB NOT NULL DEFAULT '[]',
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_discount_codes_code ON discount_codes(code);
	CREATE INDEX IF NOT EXISTS idx_discount_redemptions_code_id ON discount_redemptions(discount_code_id);
	CREATE INDEX IF NOT EXISTS idx_discount_redemptions_created_at ON discount_redemptions(created_at);
`

// EnsureSchema creates the discount tables and indexes if they do not exist.
// The redemptions table carries no foreign key to discount_codes: ledger rows
// outlive deleted codes and are reported by their code_snapshot string.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	logger.Info().Msg("database schema ensured")
	return nil
}
