package delegasi

import (
	"errors"
	"fmt"
)

const (
	CodeInvoiceNotFound    = "INVOICE_NOT_FOUND"
	CodeInvoiceAlreadyPaid = "INVOICE_ALREADY_PAID"
)

// ErrTransport marks failures without a classified provider error: the
// network call failed or the error body did not parse.
var ErrTransport = errors.New("delegasi: request failed")

// APIError is a non-2xx response carrying the provider's error body.
type APIError struct {
	StatusCode int    `json:"statusCode"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("delegasi: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// ErrorCode returns the provider code of err, or "" when err is not classified.
func ErrorCode(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return ""
}

// IsCode reports whether err is an APIError with the given code.
func IsCode(err error, code string) bool {
	return code != "" && ErrorCode(err) == code
}

func transportError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrTransport, fmt.Sprintf(format, args...))
}
