package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON     = "INVALID_JSON"
	ErrCodeMissingCode     = "MISSING_CODE"
	ErrCodeNotFound        = "CODE_NOT_FOUND"
	ErrCodeExpired         = "CODE_EXPIRED"
	ErrCodeLimitReached    = "USAGE_LIMIT_REACHED"
	ErrCodeMinSubtotal     = "MIN_SUBTOTAL_NOT_MET"
	ErrCodeNotApplicable   = "CODE_NOT_APPLICABLE"
	ErrCodeEmptyCart       = "EMPTY_CART"
	ErrCodeInvalidQuantity = "INVALID_QUANTITY"
	ErrCodeInvalidDiscount = "INVALID_DISCOUNT"
	ErrCodeUnauthorised    = "UNAUTHORIZED"
	ErrCodeForbidden       = "FORBIDDEN"
	ErrCodeInternalError   = "INTERNAL_ERROR"
)

// DomainError is a business-rule violation safe to surface to clients.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors. Messages are user-facing; they never leak internal
// identifiers.
var (
	ErrMissingCode       = NewDomainError(ErrCodeMissingCode, "Discount code is required")
	ErrDiscountNotFound  = NewDomainError(ErrCodeNotFound, "Discount code not found")
	ErrDiscountExpired   = NewDomainError(ErrCodeExpired, "Discount code has expired")
	ErrUsageLimitReached = NewDomainError(ErrCodeLimitReached, "Discount code usage limit reached")
	ErrMinSubtotal       = NewDomainError(ErrCodeMinSubtotal, "Cart subtotal does not meet the minimum for this code")
	ErrNotApplicable     = NewDomainError(ErrCodeNotApplicable, "Discount code does not apply to this cart")
	ErrEmptyCart         = NewDomainError(ErrCodeEmptyCart, "Cart is empty")
	ErrInvalidQuantity   = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
)
