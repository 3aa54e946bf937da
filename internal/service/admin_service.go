package service

import (
	"context"
	"fmt"
	"time"

	"hemp-kart/internal/discount"
	"hemp-kart/internal/model"
	"hemp-kart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// adminService implements AdminService.
type adminService struct {
	repo   repository.DiscountRepository
	logger zerolog.Logger
	now    func() time.Time
}

// NewAdminService creates a new admin code-management service.
func NewAdminService(repo repository.DiscountRepository, logger zerolog.Logger) AdminService {
	return &adminService{
		repo:   repo,
		logger: logger.With().Str("service", "admin").Logger(),
		now:    time.Now,
	}
}

// List retrieves codes, newest first.
func (s *adminService) List(ctx context.Context, limit, offset int) ([]model.DiscountCode, error) {
	return s.repo.List(ctx, limit, offset)
}

// Create inserts a new code after invariant validation.
func (s *adminService) Create(ctx context.Context, req *model.CodeCreateRequest) (*model.DiscountCode, error) {
	code := NormalizeCode(req.Code)
	if code == "" {
		return nil, model.ErrMissingCode
	}

	now := s.now().UTC()
	dc := &model.DiscountCode{
		ID:               uuid.New(),
		Code:             code,
		Description:      req.Description,
		AmbassadorLabel:  req.AmbassadorLabel,
		Type:             req.Type,
		PercentOff:       req.PercentOff,
		AmountOffCents:   req.AmountOffCents,
		MinSubtotalCents: req.MinSubtotalCents,
		MaxUses:          req.MaxUses,
		UsesCount:        0,
		IsActive:         true,
		ExpiresAt:        req.ExpiresAt,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if req.IsActive != nil {
		dc.IsActive = *req.IsActive
	}

	if err := validateCodeInvariants(dc); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, dc); err != nil {
		s.logger.Error().Err(err).Str("code", code).Msg("failed to create discount code")
		return nil, fmt.Errorf("failed to create discount code: %w", err)
	}

	s.logger.Info().
		Str("discount_id", dc.ID.String()).
		Str("code", dc.Code).
		Str("type", dc.Type).
		Msg("discount code created")

	return dc, nil
}

// Update applies a partial edit. The uses counter cannot be edited here;
// it only moves through the redemption transaction.
func (s *adminService) Update(ctx context.Context, id uuid.UUID, req *model.CodePatchRequest) (*model.DiscountCode, error) {
	dc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load discount code: %w", err)
	}
	if dc == nil {
		return nil, model.ErrDiscountNotFound
	}

	if req.Code != nil {
		normalized := NormalizeCode(*req.Code)
		if normalized == "" {
			return nil, model.ErrMissingCode
		}
		dc.Code = normalized
	}
	if req.Description != nil {
		dc.Description = *req.Description
	}
	if req.AmbassadorLabel != nil {
		dc.AmbassadorLabel = *req.AmbassadorLabel
	}
	if req.Type != nil {
		dc.Type = *req.Type
	}
	if req.PercentOff != nil {
		dc.PercentOff = req.PercentOff
	}
	if req.AmountOffCents != nil {
		dc.AmountOffCents = req.AmountOffCents
	}
	if req.MinSubtotalCents != nil {
		dc.MinSubtotalCents = req.MinSubtotalCents
	}
	if req.MaxUses != nil {
		dc.MaxUses = req.MaxUses
	}
	if req.IsActive != nil {
		dc.IsActive = *req.IsActive
	}
	if req.ExpiresAt != nil {
		dc.ExpiresAt = req.ExpiresAt
	}

	// Switching type drops the now-irrelevant value field so exclusivity
	// survives the edit.
	switch dc.Type {
	case model.DiscountTypePercent:
		if req.PercentOff != nil || req.Type != nil {
			dc.AmountOffCents = nil
		}
	case model.DiscountTypeAmount:
		if req.AmountOffCents != nil || req.Type != nil {
			dc.PercentOff = nil
		}
	}

	if err := validateCodeInvariants(dc); err != nil {
		return nil, err
	}

	dc.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, dc); err != nil {
		if _, ok := err.(*model.DomainError); ok {
			return nil, err
		}
		s.logger.Error().Err(err).Str("discount_id", id.String()).Msg("failed to update discount code")
		return nil, fmt.Errorf("failed to update discount code: %w", err)
	}

	s.logger.Info().Str("discount_id", id.String()).Str("code", dc.Code).Msg("discount code updated")
	return dc, nil
}

// Delete removes a code. Ledger rows keep reporting under the snapshot.
func (s *adminService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if _, ok := err.(*model.DomainError); ok {
			return err
		}
		s.logger.Error().Err(err).Str("discount_id", id.String()).Msg("failed to delete discount code")
		return fmt.Errorf("failed to delete discount code: %w", err)
	}
	return nil
}

// validateCodeInvariants enforces the write-time invariants: a PERCENT code
// carries only percentOff within [1, 50], an AMOUNT code carries only a
// positive amountOffCents, and the optional limits are sane.
func validateCodeInvariants(dc *model.DiscountCode) error {
	switch dc.Type {
	case model.DiscountTypePercent:
		if dc.PercentOff == nil {
			return model.NewDomainError(model.ErrCodeInvalidDiscount, "percentOff is required for PERCENT codes")
		}
		if dc.AmountOffCents != nil {
			return model.NewDomainError(model.ErrCodeInvalidDiscount, "PERCENT codes cannot carry amountOffCents")
		}
		if *dc.PercentOff < 1 || *dc.PercentOff > discount.MaxPercentOff {
			return model.NewDomainError(model.ErrCodeInvalidDiscount,
				fmt.Sprintf("percentOff must be between 1 and %d", discount.MaxPercentOff))
		}
	case model.DiscountTypeAmount:
		if dc.AmountOffCents == nil {
			return model.NewDomainError(model.ErrCodeInvalidDiscount, "amountOffCents is required for AMOUNT codes")
		}
		if dc.PercentOff != nil {
			return model.NewDomainError(model.ErrCodeInvalidDiscount, "AMOUNT codes cannot carry percentOff")
		}
		if *dc.AmountOffCents < 1 {
			return model.NewDomainError(model.ErrCodeInvalidDiscount, "amountOffCents must be positive")
		}
	default:
		return model.NewDomainError(model.ErrCodeInvalidDiscount, "type must be PERCENT or AMOUNT")
	}

	if dc.MinSubtotalCents != nil && *dc.MinSubtotalCents < 0 {
		return model.NewDomainError(model.ErrCodeInvalidDiscount, "minSubtotalCents cannot be negative")
	}
	if dc.MaxUses != nil && *dc.MaxUses < 1 {
		return model.NewDomainError(model.ErrCodeInvalidDiscount, "maxUses must be positive")
	}

	return nil
}
