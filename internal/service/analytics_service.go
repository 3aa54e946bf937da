package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"hemp-kart/internal/export"
	"hemp-kart/internal/model"
	"hemp-kart/internal/repository"

	"github.com/rs/zerolog"
)

// topItemCount caps the per-code item list in the admin summary.
const topItemCount = 5

// analyticsService implements AnalyticsService.
type analyticsService struct {
	repo     repository.RedemptionRepository
	exporter export.Exporter
	maxRows  int
	logger   zerolog.Logger
	now      func() time.Time
}

// NewAnalyticsService creates a new analytics service. maxRows bounds the
// ledger read; exporter may be nil when export is not configured.
func NewAnalyticsService(
	repo repository.RedemptionRepository,
	exporter export.Exporter,
	maxRows int,
	logger zerolog.Logger,
) AnalyticsService {
	return &analyticsService{
		repo:     repo,
		exporter: exporter,
		maxRows:  maxRows,
		logger:   logger.With().Str("service", "analytics").Logger(),
		now:      time.Now,
	}
}

// Summary aggregates recent redemptions per code snapshot. Grouping is by
// the snapshot string, not the code's current identifier, so renamed or
// deleted codes still report under their historical label.
func (s *analyticsService) Summary(ctx context.Context) ([]model.CodeSummary, error) {
	redemptions, err := s.repo.ListRecent(ctx, s.maxRows)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to read redemption ledger")
		return nil, fmt.Errorf("failed to read redemption ledger: %w", err)
	}

	type group struct {
		summary  model.CodeSummary
		itemQtys map[string]int
	}

	groups := make(map[string]*group)
	order := make([]string, 0)

	for _, red := range redemptions {
		g, ok := groups[red.CodeSnapshot]
		if !ok {
			g = &group{
				summary:  model.CodeSummary{Code: red.CodeSnapshot},
				itemQtys: make(map[string]int),
			}
			groups[red.CodeSnapshot] = g
			order = append(order, red.CodeSnapshot)
		}

		g.summary.Uses++
		g.summary.SubtotalCents += red.SubtotalCents
		g.summary.DiscountCents += red.DiscountCents
		g.summary.TotalCents += red.TotalCents
		if red.CreatedAt.After(g.summary.LastUsedAt) {
			g.summary.LastUsedAt = red.CreatedAt
		}
		for _, item := range red.Items {
			g.itemQtys[item.Name] += item.Qty
		}
	}

	summaries := make([]model.CodeSummary, 0, len(groups))
	for _, code := range order {
		g := groups[code]
		g.summary.TopItems = topItems(g.itemQtys)
		summaries = append(summaries, g.summary)
	}

	// Highest revenue-through-code first; code string breaks ties so the
	// report is stable across calls.
	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].TotalCents != summaries[j].TotalCents {
			return summaries[i].TotalCents > summaries[j].TotalCents
		}
		return summaries[i].Code < summaries[j].Code
	})

	s.logger.Debug().
		Int("redemptions", len(redemptions)).
		Int("groups", len(summaries)).
		Msg("analytics summary computed")

	return summaries, nil
}

// Export writes the current summary to the configured target and returns
// the export key.
func (s *analyticsService) Export(ctx context.Context) (string, error) {
	if s.exporter == nil {
		return "", fmt.Errorf("analytics export is not configured")
	}

	summary, err := s.Summary(ctx)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("discount-analytics-%s.json.gz", s.now().UTC().Format("20060102T150405Z"))
	if err := s.exporter.Export(ctx, key, summary); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("analytics export failed")
		return "", fmt.Errorf("failed to export analytics summary: %w", err)
	}

	s.logger.Info().Str("key", key).Int("groups", len(summary)).Msg("analytics summary exported")
	return key, nil
}

// topItems ranks item names by cumulative quantity, keeping the top five.
func topItems(qtys map[string]int) []model.ItemCount {
	if len(qtys) == 0 {
		return nil
	}

	items := make([]model.ItemCount, 0, len(qtys))
	for name, qty := range qtys {
		items = append(items, model.ItemCount{Name: name, Qty: qty})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Qty != items[j].Qty {
			return items[i].Qty > items[j].Qty
		}
		return items[i].Name < items[j].Name
	})

	if len(items) > topItemCount {
		items = items[:topItemCount]
	}
	return items
}
