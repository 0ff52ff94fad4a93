package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code so wrapped copies with a custom message
// still compare equal to the sentinel they were derived from.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound           = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput       = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidQuantity    = NewDomainError("INVALID_QUANTITY", "Quantity must be greater than zero")
	ErrProductUnavailable = NewDomainError("PRODUCT_UNAVAILABLE", "Produto fora de estoque!")
	ErrEmptyCart          = NewDomainError("EMPTY_CART", "Cart has no items to check out")
	ErrSourceUnavailable  = NewDomainError("SOURCE_UNAVAILABLE", "Catalog source is unavailable")
)
