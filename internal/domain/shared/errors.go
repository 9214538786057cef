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

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrLoginRequired    = NewDomainError("LOGIN_REQUIRED", "Please log in to place an order.")
	ErrLocationRequired = NewDomainError("LOCATION_REQUIRED", "Please enter your delivery location.")
	ErrEmptyCart        = NewDomainError("EMPTY_CART", "Your cart is empty!")
	ErrInvalidInput     = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrNotFound         = NewDomainError("NOT_FOUND", "Resource not found")
	ErrSessionExpired   = NewDomainError("SESSION_EXPIRED", "Your session has expired, please log in again.")
)
