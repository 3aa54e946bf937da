package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"hemp-kart/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDiscountRepository is a mock implementation of DiscountRepository.
type MockDiscountRepository struct {
	mock.Mock
}

func (m *MockDiscountRepository) GetByCode(ctx context.Context, code string) (*model.DiscountCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DiscountCode), args.Error(1)
}

func (m *MockDiscountRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.DiscountCode, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DiscountCode), args.Error(1)
}

func (m *MockDiscountRepository) List(ctx context.Context, limit, offset int) ([]model.DiscountCode, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DiscountCode), args.Error(1)
}

func (m *MockDiscountRepository) Create(ctx context.Context, code *model.DiscountCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockDiscountRepository) Update(ctx context.Context, code *model.DiscountCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockDiscountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDiscountRepository) Redeem(ctx context.Context, redemption *model.DiscountRedemption) error {
	args := m.Called(ctx, redemption)
	return args.Error(0)
}

func intPtr(v int) *int              { return &v }
func int64Ptr(v int64) *int64        { return &v }
func timePtr(v time.Time) *time.Time { return &v }

func percentCode(code string, percent int) *model.DiscountCode {
	now := time.Now().UTC()
	return &model.DiscountCode{
		ID:          uuid.New(),
		Code:        code,
		Description: "Test code",
		Type:        model.DiscountTypePercent,
		PercentOff:  intPtr(percent),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func testItems() []model.CartItem {
	return []model.CartItem{
		{ID: "P001", Name: "THCA Flower 3.5g", PriceCents: 4000, Qty: 2},
		{ID: "P002", Name: "Hemp Gummies", Variant: "Mixed Berry", PriceCents: 2000, Qty: 1},
	}
}

func TestDiscountService_Validate_Success(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	repo := new(MockDiscountRepository)
	dc := percentCode("HEMP20", 20)
	dc.AmbassadorLabel = "Team Green"
	repo.On("GetByCode", ctx, "HEMP20").Return(dc, nil)

	svc := NewDiscountService(repo, logger)
	resp, err := svc.Validate(ctx, &model.ValidateRequest{
		Code:          "  hemp20 ",
		SubtotalCents: float64(10000),
		Items:         testItems(),
	})

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.True(t, resp.OK)
	assert.Equal(t, "HEMP20", resp.Code)
	assert.Equal(t, "Team Green", resp.AmbassadorLabel)
	assert.Equal(t, int64(2000), resp.DiscountCents)
	assert.Equal(t, model.DiscountTypePercent, resp.Type)
	require.NotNil(t, resp.PercentOff)
	assert.Equal(t, 20, *resp.PercentOff)
	repo.AssertExpectations(t)
}

func TestDiscountService_Validate_StringSubtotal(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	repo := new(MockDiscountRepository)
	repo.On("GetByCode", ctx, "HEMP20").Return(percentCode("HEMP20", 20), nil)

	svc := NewDiscountService(repo, logger)
	resp, err := svc.Validate(ctx, &model.ValidateRequest{
		Code:          "HEMP20",
		SubtotalCents: "10000",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2000), resp.DiscountCents)
}

func TestDiscountService_Validate_Failures(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	expired := percentCode("OLDCODE", 20)
	expired.ExpiresAt = timePtr(time.Now().UTC().Add(-time.Hour))

	exhausted := percentCode("MAXED", 20)
	exhausted.MaxUses = intPtr(5)
	exhausted.UsesCount = 5

	inactive := percentCode("PAUSED", 20)
	inactive.IsActive = false

	gated := percentCode("BIGSPEND", 20)
	gated.MinSubtotalCents = int64Ptr(5000)

	zeroValue := percentCode("NOTHING", 0)

	tests := []struct {
		name          string
		code          string
		subtotalCents any
		stored        *model.DiscountCode
		expectedErr   error
	}{
		{
			name:        "missing code",
			code:        "   ",
			expectedErr: model.ErrMissingCode,
		},
		{
			name:          "unknown code",
			code:          "NOPE",
			subtotalCents: float64(10000),
			stored:        nil,
			expectedErr:   model.ErrDiscountNotFound,
		},
		{
			name:          "inactive code reads as not found",
			code:          "PAUSED",
			subtotalCents: float64(10000),
			stored:        inactive,
			expectedErr:   model.ErrDiscountNotFound,
		},
		{
			name:          "expired code",
			code:          "OLDCODE",
			subtotalCents: float64(10000),
			stored:        expired,
			expectedErr:   model.ErrDiscountExpired,
		},
		{
			name:          "usage limit reached",
			code:          "MAXED",
			subtotalCents: float64(10000),
			stored:        exhausted,
			expectedErr:   model.ErrUsageLimitReached,
		},
		{
			name:          "minimum subtotal unmet",
			code:          "BIGSPEND",
			subtotalCents: float64(3000),
			stored:        gated,
			expectedErr:   model.ErrMinSubtotal,
		},
		{
			name:          "zero-value code does not apply",
			code:          "NOTHING",
			subtotalCents: float64(10000),
			stored:        zeroValue,
			expectedErr:   model.ErrNotApplicable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockDiscountRepository)
			if NormalizeCode(tt.code) != "" {
				if tt.stored == nil {
					repo.On("GetByCode", ctx, NormalizeCode(tt.code)).Return(nil, nil)
				} else {
					repo.On("GetByCode", ctx, NormalizeCode(tt.code)).Return(tt.stored, nil)
				}
			}

			svc := NewDiscountService(repo, logger)
			resp, err := svc.Validate(ctx, &model.ValidateRequest{
				Code:          tt.code,
				SubtotalCents: tt.subtotalCents,
			})

			require.Error(t, err)
			assert.Equal(t, tt.expectedErr, err)
			assert.Nil(t, resp)
			repo.AssertNotCalled(t, "Redeem", mock.Anything, mock.Anything)
		})
	}
}

func TestDiscountService_Checkout_WithCode(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	repo := new(MockDiscountRepository)
	dc := percentCode("HEMP20", 20)
	repo.On("GetByCode", ctx, "HEMP20").Return(dc, nil)
	repo.On("Redeem", ctx, mock.MatchedBy(func(r *model.DiscountRedemption) bool {
		return r.DiscountCodeID == dc.ID &&
			r.CodeSnapshot == "HEMP20" &&
			r.SubtotalCents == 10000 &&
			r.DiscountCents == 2000 &&
			r.TotalCents == 8000 &&
			len(r.Items) == 2
	})).Return(nil)

	svc := NewDiscountService(repo, logger)
	resp, err := svc.Checkout(ctx, &model.CheckoutRequest{
		Items:         testItems(),
		SubtotalCents: float64(10000),
		Code:          "hemp20",
	})

	require.NoError(t, err)
	assert.Equal(t, &model.CheckoutResponse{
		OK:            true,
		SubtotalCents: 10000,
		DiscountCents: 2000,
		TotalCents:    8000,
	}, resp)
	repo.AssertExpectations(t)
}

func TestDiscountService_Checkout_WithoutCode(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	repo := new(MockDiscountRepository)

	svc := NewDiscountService(repo, logger)
	resp, err := svc.Checkout(ctx, &model.CheckoutRequest{
		Items:         testItems(),
		SubtotalCents: float64(10000),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(10000), resp.TotalCents)
	assert.Equal(t, int64(0), resp.DiscountCents)

	// Codeless checkouts write nothing.
	repo.AssertNotCalled(t, "GetByCode", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Redeem", mock.Anything, mock.Anything)
}

func TestDiscountService_Checkout_EmptyCart(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	repo := new(MockDiscountRepository)
	svc := NewDiscountService(repo, logger)

	// No items
	_, err := svc.Checkout(ctx, &model.CheckoutRequest{SubtotalCents: float64(1000)})
	assert.Equal(t, model.ErrEmptyCart, err)

	// Zero subtotal
	_, err = svc.Checkout(ctx, &model.CheckoutRequest{
		Items:         testItems(),
		SubtotalCents: float64(0),
	})
	assert.Equal(t, model.ErrEmptyCart, err)

	// Non-numeric subtotal degrades to zero and is rejected the same way
	_, err = svc.Checkout(ctx, &model.CheckoutRequest{
		Items:         testItems(),
		SubtotalCents: "not-a-number",
	})
	assert.Equal(t, model.ErrEmptyCart, err)
}

func TestDiscountService_Checkout_InvalidQuantity(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	repo := new(MockDiscountRepository)
	svc := NewDiscountService(repo, logger)

	_, err := svc.Checkout(ctx, &model.CheckoutRequest{
		Items: []model.CartItem{
			{ID: "P001", Name: "THCA Flower 3.5g", PriceCents: 4000, Qty: 0},
		},
		SubtotalCents: float64(4000),
	})

	assert.Equal(t, model.ErrInvalidQuantity, err)
}

func TestDiscountService_Checkout_ZeroBenefitCodeFails(t *testing.T) {
	// At commit time a code with no benefit fails the whole checkout; the
	// preview path merely explains it. The asymmetry is intentional.
	logger := zerolog.Nop()
	ctx := context.Background()

	repo := new(MockDiscountRepository)
	gated := percentCode("BIGSPEND", 20)
	gated.MinSubtotalCents = int64Ptr(50000)
	repo.On("GetByCode", ctx, "BIGSPEND").Return(gated, nil)

	svc := NewDiscountService(repo, logger)
	_, err := svc.Checkout(ctx, &model.CheckoutRequest{
		Items:         testItems(),
		SubtotalCents: float64(10000),
		Code:          "BIGSPEND",
	})

	assert.Equal(t, model.ErrMinSubtotal, err)
	repo.AssertNotCalled(t, "Redeem", mock.Anything, mock.Anything)
}

func TestDiscountService_Checkout_LimitReachedDuringRedeem(t *testing.T) {
	// The repository loses the conditional-increment race: the error
	// surfaces as-is and the checkout fails.
	logger := zerolog.Nop()
	ctx := context.Background()

	repo := new(MockDiscountRepository)
	dc := percentCode("LASTONE", 20)
	dc.MaxUses = intPtr(1)
	repo.On("GetByCode", ctx, "LASTONE").Return(dc, nil)
	repo.On("Redeem", ctx, mock.Anything).Return(model.ErrUsageLimitReached)

	svc := NewDiscountService(repo, logger)
	_, err := svc.Checkout(ctx, &model.CheckoutRequest{
		Items:         testItems(),
		SubtotalCents: float64(10000),
		Code:          "LASTONE",
	})

	assert.Equal(t, model.ErrUsageLimitReached, err)
}

func TestDiscountService_Checkout_RepositoryFailure(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	repo := new(MockDiscountRepository)
	repo.On("GetByCode", ctx, "HEMP20").Return(nil, errors.New("connection refused"))

	svc := NewDiscountService(repo, logger)
	_, err := svc.Checkout(ctx, &model.CheckoutRequest{
		Items:         testItems(),
		SubtotalCents: float64(10000),
		Code:          "HEMP20",
	})

	require.Error(t, err)
	var de *model.DomainError
	assert.False(t, errors.As(err, &de), "infrastructure errors must not surface as domain errors")
}

func TestDiscountService_Checkout_CorruptRule(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	// Row violating type exclusivity: PERCENT with an amount attached.
	corrupt := percentCode("BROKEN", 20)
	corrupt.AmountOffCents = int64Ptr(500)

	repo := new(MockDiscountRepository)
	repo.On("GetByCode", ctx, "BROKEN").Return(corrupt, nil)

	svc := NewDiscountService(repo, logger)
	_, err := svc.Checkout(ctx, &model.CheckoutRequest{
		Items:         testItems(),
		SubtotalCents: float64(10000),
		Code:          "BROKEN",
	})

	require.Error(t, err)
	var de *model.DomainError
	assert.False(t, errors.As(err, &de))
	repo.AssertNotCalled(t, "Redeem", mock.Anything, mock.Anything)
}
