package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hemp-kart/internal/discount"
	"hemp-kart/internal/model"
	"hemp-kart/internal/money"
	"hemp-kart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// discountService implements DiscountService.
type discountService struct {
	repo   repository.DiscountRepository
	logger zerolog.Logger
	now    func() time.Time
}

// NewDiscountService creates a new discount service.
func NewDiscountService(repo repository.DiscountRepository, logger zerolog.Logger) DiscountService {
	return &discountService{
		repo:   repo,
		logger: logger.With().Str("service", "discount").Logger(),
		now:    time.Now,
	}
}

// NormalizeCode canonicalises a client-supplied code string. Codes are
// stored uppercase and matched exactly.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validate previews a code against a cart without writing anything.
func (s *discountService) Validate(ctx context.Context, req *model.ValidateRequest) (*model.ValidateResponse, error) {
	code := NormalizeCode(req.Code)
	if code == "" {
		return nil, model.ErrMissingCode
	}

	subtotal := money.ToCents(req.SubtotalCents, 0)

	dc, result, err := s.evaluate(ctx, code, subtotal)
	if err != nil {
		return nil, err
	}

	if !result.Applied() {
		s.logger.Debug().
			Str("code", code).
			Int64("subtotal_cents", subtotal).
			Str("reason", string(result.Reason)).
			Msg("discount code does not apply")
		return nil, reasonError(result.Reason)
	}

	return &model.ValidateResponse{
		OK:              true,
		Code:            dc.Code,
		Description:     dc.Description,
		AmbassadorLabel: dc.AmbassadorLabel,
		DiscountCents:   result.DiscountCents,
		Type:            dc.Type,
		PercentOff:      dc.PercentOff,
		AmountOffCents:  dc.AmountOffCents,
	}, nil
}

// Checkout prices the cart and commits the redemption when a code applies.
// A code that evaluates to zero benefit fails the whole checkout; that
// asymmetry with Validate's preview behaviour is intentional.
func (s *discountService) Checkout(ctx context.Context, req *model.CheckoutRequest) (*model.CheckoutResponse, error) {
	subtotal := money.ToCents(req.SubtotalCents, 0)
	if len(req.Items) == 0 || subtotal <= 0 {
		return nil, model.ErrEmptyCart
	}

	for i, item := range req.Items {
		if item.Qty <= 0 {
			s.logger.Warn().
				Int("item_index", i).
				Str("product_id", item.ID).
				Int("qty", item.Qty).
				Msg("invalid quantity")
			return nil, model.ErrInvalidQuantity
		}
	}

	code := NormalizeCode(req.Code)
	if code == "" {
		// Codeless checkout: no redemption row, full price.
		return &model.CheckoutResponse{
			OK:            true,
			SubtotalCents: subtotal,
			DiscountCents: 0,
			TotalCents:    subtotal,
		}, nil
	}

	dc, result, err := s.evaluate(ctx, code, subtotal)
	if err != nil {
		return nil, err
	}

	if !result.Applied() {
		s.logger.Warn().
			Str("code", code).
			Int64("subtotal_cents", subtotal).
			Str("reason", string(result.Reason)).
			Msg("checkout rejected: code has no benefit")
		return nil, reasonError(result.Reason)
	}

	total := subtotal - result.DiscountCents
	if total < 0 {
		total = 0
	}

	redemption := &model.DiscountRedemption{
		ID:             uuid.New(),
		DiscountCodeID: dc.ID,
		CodeSnapshot:   dc.Code,
		UserID:         req.UserID,
		UserEmail:      req.UserEmail,
		SubtotalCents:  subtotal,
		DiscountCents:  result.DiscountCents,
		TotalCents:     total,
		Items:          req.Items,
		CreatedAt:      s.now().UTC(),
	}

	if err := s.repo.Redeem(ctx, redemption); err != nil {
		// Limit-reached surfaces as-is; anything else is infrastructure.
		if _, ok := err.(*model.DomainError); ok {
			return nil, err
		}
		s.logger.Error().Err(err).Str("code", code).Msg("redemption failed")
		return nil, fmt.Errorf("failed to commit redemption: %w", err)
	}

	s.logger.Info().
		Str("code", dc.Code).
		Int64("subtotal_cents", subtotal).
		Int64("discount_cents", result.DiscountCents).
		Int64("total_cents", total).
		Msg("checkout committed with discount")

	return &model.CheckoutResponse{
		OK:            true,
		SubtotalCents: subtotal,
		DiscountCents: result.DiscountCents,
		TotalCents:    total,
	}, nil
}

// evaluate runs the shared lookup-and-gate sequence, then the pure engine.
// The returned code is non-nil whenever err is nil.
func (s *discountService) evaluate(ctx context.Context, code string, subtotalCents int64) (*model.DiscountCode, discount.Result, error) {
	dc, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		s.logger.Error().Err(err).Str("code", code).Msg("discount lookup failed")
		return nil, discount.Result{}, fmt.Errorf("failed to look up discount code: %w", err)
	}

	// Inactive codes are indistinguishable from absent ones.
	if dc == nil || !dc.IsActive {
		return nil, discount.Result{}, model.ErrDiscountNotFound
	}

	if dc.Expired(s.now().UTC()) {
		return nil, discount.Result{}, model.ErrDiscountExpired
	}

	if dc.UsageExhausted() {
		return nil, discount.Result{}, model.ErrUsageLimitReached
	}

	rule, err := dc.Rule()
	if err != nil {
		// A row violating type exclusivity is a data problem, not a
		// user error.
		s.logger.Error().Err(err).Str("code", code).Msg("corrupt discount rule")
		return nil, discount.Result{}, fmt.Errorf("invalid discount rule: %w", err)
	}

	return dc, discount.Evaluate(subtotalCents, rule), nil
}

// reasonError maps an engine reason to its user-facing domain error.
// min_subtotal gets a specific message; everything else falls through to
// the generic does-not-apply error.
func reasonError(reason discount.Reason) error {
	switch reason {
	case discount.ReasonMinSubtotal:
		return model.ErrMinSubtotal
	case discount.ReasonEmptyCart:
		return model.ErrEmptyCart
	default:
		return model.ErrNotApplicable
	}
}
