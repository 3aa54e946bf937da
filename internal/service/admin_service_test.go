package service

import (
	"context"
	"testing"
	"time"

	"hemp-kart/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAdminService_Create_Success(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	repo := new(MockDiscountRepository)
	repo.On("Create", ctx, mock.MatchedBy(func(dc *model.DiscountCode) bool {
		return dc.Code == "HEMP20" &&
			dc.Type == model.DiscountTypePercent &&
			dc.PercentOff != nil && *dc.PercentOff == 20 &&
			dc.AmountOffCents == nil &&
			dc.UsesCount == 0 &&
			dc.IsActive
	})).Return(nil)

	svc := NewAdminService(repo, logger)
	dc, err := svc.Create(ctx, &model.CodeCreateRequest{
		Code:        "hemp20",
		Description: "20% off storewide",
		Type:        model.DiscountTypePercent,
		PercentOff:  intPtr(20),
	})

	require.NoError(t, err)
	assert.Equal(t, "HEMP20", dc.Code)
	repo.AssertExpectations(t)
}

func TestAdminService_Create_InvariantViolations(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	tests := []struct {
		name string
		req  model.CodeCreateRequest
	}{
		{
			name: "missing code",
			req:  model.CodeCreateRequest{Type: model.DiscountTypePercent, PercentOff: intPtr(20)},
		},
		{
			name: "unknown type",
			req:  model.CodeCreateRequest{Code: "X", Type: "BOGO"},
		},
		{
			name: "percent without value",
			req:  model.CodeCreateRequest{Code: "X", Type: model.DiscountTypePercent},
		},
		{
			name: "percent above cap",
			req: model.CodeCreateRequest{
				Code: "X", Type: model.DiscountTypePercent, PercentOff: intPtr(51),
			},
		},
		{
			name: "percent below one",
			req: model.CodeCreateRequest{
				Code: "X", Type: model.DiscountTypePercent, PercentOff: intPtr(0),
			},
		},
		{
			name: "percent with amount attached",
			req: model.CodeCreateRequest{
				Code: "X", Type: model.DiscountTypePercent,
				PercentOff: intPtr(20), AmountOffCents: int64Ptr(500),
			},
		},
		{
			name: "amount without value",
			req:  model.CodeCreateRequest{Code: "X", Type: model.DiscountTypeAmount},
		},
		{
			name: "amount non-positive",
			req: model.CodeCreateRequest{
				Code: "X", Type: model.DiscountTypeAmount, AmountOffCents: int64Ptr(0),
			},
		},
		{
			name: "amount with percent attached",
			req: model.CodeCreateRequest{
				Code: "X", Type: model.DiscountTypeAmount,
				AmountOffCents: int64Ptr(500), PercentOff: intPtr(10),
			},
		},
		{
			name: "negative minimum subtotal",
			req: model.CodeCreateRequest{
				Code: "X", Type: model.DiscountTypeAmount,
				AmountOffCents: int64Ptr(500), MinSubtotalCents: int64Ptr(-1),
			},
		},
		{
			name: "non-positive max uses",
			req: model.CodeCreateRequest{
				Code: "X", Type: model.DiscountTypeAmount,
				AmountOffCents: int64Ptr(500), MaxUses: intPtr(0),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockDiscountRepository)
			svc := NewAdminService(repo, logger)

			dc, err := svc.Create(ctx, &tt.req)

			require.Error(t, err)
			assert.Nil(t, dc)
			var de *model.DomainError
			assert.ErrorAs(t, err, &de)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestAdminService_Update_SwitchingTypeDropsOldValue(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	id := uuid.New()
	existing := percentCode("HEMP20", 20)
	existing.ID = id

	repo := new(MockDiscountRepository)
	repo.On("GetByID", ctx, id).Return(existing, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(dc *model.DiscountCode) bool {
		return dc.Type == model.DiscountTypeAmount &&
			dc.AmountOffCents != nil && *dc.AmountOffCents == 500 &&
			dc.PercentOff == nil
	})).Return(nil)

	svc := NewAdminService(repo, logger)
	newType := model.DiscountTypeAmount
	dc, err := svc.Update(ctx, id, &model.CodePatchRequest{
		Type:           &newType,
		AmountOffCents: int64Ptr(500),
	})

	require.NoError(t, err)
	assert.Equal(t, model.DiscountTypeAmount, dc.Type)
	assert.Nil(t, dc.PercentOff)
	repo.AssertExpectations(t)
}

func TestAdminService_Update_NotFound(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	id := uuid.New()
	repo := new(MockDiscountRepository)
	repo.On("GetByID", ctx, id).Return(nil, nil)

	svc := NewAdminService(repo, logger)
	active := false
	dc, err := svc.Update(ctx, id, &model.CodePatchRequest{IsActive: &active})

	assert.Equal(t, model.ErrDiscountNotFound, err)
	assert.Nil(t, dc)
}

func TestAdminService_Update_RejectsInvalidPatch(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	id := uuid.New()
	existing := percentCode("HEMP20", 20)
	existing.ID = id

	repo := new(MockDiscountRepository)
	repo.On("GetByID", ctx, id).Return(existing, nil)

	svc := NewAdminService(repo, logger)
	dc, err := svc.Update(ctx, id, &model.CodePatchRequest{PercentOff: intPtr(80)})

	require.Error(t, err)
	assert.Nil(t, dc)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAdminService_Update_SoftDisable(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	id := uuid.New()
	existing := percentCode("HEMP20", 20)
	existing.ID = id
	before := existing.UpdatedAt

	repo := new(MockDiscountRepository)
	repo.On("GetByID", ctx, id).Return(existing, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(dc *model.DiscountCode) bool {
		return !dc.IsActive && dc.UpdatedAt.After(before.Add(-time.Second))
	})).Return(nil)

	svc := NewAdminService(repo, logger)
	active := false
	dc, err := svc.Update(ctx, id, &model.CodePatchRequest{IsActive: &active})

	require.NoError(t, err)
	assert.False(t, dc.IsActive)
}

func TestAdminService_Delete(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	id := uuid.New()
	repo := new(MockDiscountRepository)
	repo.On("Delete", ctx, id).Return(nil)

	svc := NewAdminService(repo, logger)
	require.NoError(t, svc.Delete(ctx, id))
	repo.AssertExpectations(t)
}

func TestAdminService_Delete_NotFound(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	id := uuid.New()
	repo := new(MockDiscountRepository)
	repo.On("Delete", ctx, id).Return(model.ErrDiscountNotFound)

	svc := NewAdminService(repo, logger)
	assert.Equal(t, model.ErrDiscountNotFound, svc.Delete(ctx, id))
}
