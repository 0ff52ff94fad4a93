package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for request validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeInvalidAddress is used when the delivery address is incomplete or malformed
	ErrCodeInvalidAddress = "ERR_INVALID_ADDRESS"
	// ErrCodeInvalidCustomer is used when the customer name or phone is rejected
	ErrCodeInvalidCustomer = "ERR_INVALID_CUSTOMER"
	// ErrCodeInvalidQuantity is used for non-positive quantities
	ErrCodeInvalidQuantity = "ERR_INVALID_QUANTITY"
	// ErrCodeInvalidSession is used when the cart session header is not a UUID
	ErrCodeInvalidSession = "ERR_INVALID_SESSION"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a product or category does not exist
	ErrCodeNotFound = "ERR_NOT_FOUND"
)

// Business rule error codes
const (
	// ErrCodeProductUnavailable is used when an out of stock product is added
	ErrCodeProductUnavailable = "ERR_PRODUCT_UNAVAILABLE"
	// ErrCodeEmptyCart is used when checking out a cart with no items
	ErrCodeEmptyCart = "ERR_EMPTY_CART"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
	// ErrCodeRequestTooLarge is used when the body exceeds the configured limit
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
)

// Availability error codes
const (
	// ErrCodeRateLimited is used when rate limit is exceeded
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
	// ErrCodeSourceUnavailable is used when no catalog source could answer
	ErrCodeSourceUnavailable = "ERR_SOURCE_UNAVAILABLE"
	// ErrCodeTimeout is used when a request exceeds its deadline
	ErrCodeTimeout = "ERR_TIMEOUT"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeInvalidAddress:  http.StatusBadRequest,
	ErrCodeInvalidCustomer: http.StatusBadRequest,
	ErrCodeInvalidQuantity: http.StatusBadRequest,
	ErrCodeInvalidSession:  http.StatusBadRequest,

	ErrCodeNotFound: http.StatusNotFound,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeProductUnavailable: http.StatusUnprocessableEntity,
	ErrCodeEmptyCart:          http.StatusUnprocessableEntity,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	ErrCodeRateLimited:       http.StatusTooManyRequests,
	ErrCodeSourceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:           http.StatusGatewayTimeout,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to API error codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":               ErrCodeNotFound,
	"INVALID_INPUT":           ErrCodeInvalidInput,
	"INVALID_QUANTITY":        ErrCodeInvalidQuantity,
	"INVALID_ADDRESS":         ErrCodeInvalidAddress,
	"INVALID_CUSTOMER":        ErrCodeInvalidCustomer,
	"PRODUCT_UNAVAILABLE":     ErrCodeProductUnavailable,
	"EMPTY_CART":              ErrCodeEmptyCart,
	"SOURCE_UNAVAILABLE":      ErrCodeSourceUnavailable,
	"UNKNOWN_ACTION":          ErrCodeInternal,
	"INVALID_PRODUCT":         ErrCodeInvalidInput,
	"INVALID_CATEGORY":        ErrCodeInvalidInput,
	"INVALID_NAME":            ErrCodeInvalidInput,
	"INVALID_PRICE":           ErrCodeInvalidInput,
	"INVALID_RATING":          ErrCodeInvalidInput,
	"INVALID_ALCOHOL_CONTENT": ErrCodeInvalidInput,
	"VALIDATION_ERROR":        ErrCodeValidation,
	"INTERNAL_ERROR":          ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Codes already in the API format, or unknown, are returned as-is.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}
