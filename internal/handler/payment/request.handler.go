package payment

import (
	"delegasi-pay/internal/common/enum"
	"delegasi-pay/internal/pkg/delegasi"
	"delegasi-pay/internal/service/confirmation"
	flowService "delegasi-pay/internal/service/flow"
	invoiceService "delegasi-pay/internal/service/invoice"
	"errors"
	"net/http"
)

type ReferenceRequest struct {
	Provider      enum.ProviderEnum `json:"provider" form:"provider" validate:"required,enum"`
	PaymentNumber string            `json:"payment_number" form:"payment_number" validate:"required,min=5,reference"`
}

type ChannelRequest struct {
	ChannelID string `json:"channel_id" form:"channel_id" validate:"required"`
}

// referenceMessages keeps the entry form wording.
var referenceMessages = map[string]string{
	"provider.required":       "Please select a provider",
	"provider.enum":           "Please select a provider",
	"payment_number.required": "Payment number is required",
	"payment_number.min":      "Payment number must be at least 5 characters",
}

// statusFor maps flow and provider errors onto HTTP statuses.
// messageInvalidForm is shown when a page form cannot be decoded at all.
const messageInvalidForm = "Permintaan tidak valid. Silakan coba lagi."

func statusFor(err error) int {
	var apiErr *delegasi.APIError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, flowService.ErrInvalidTransition),
		errors.Is(err, flowService.ErrOperationInProgress),
		errors.Is(err, flowService.ErrNoActiveInvoice):
		return http.StatusConflict
	case errors.Is(err, flowService.ErrUnknownChannel),
		errors.Is(err, invoiceService.ErrEmptyReference):
		return http.StatusUnprocessableEntity
	case errors.Is(err, confirmation.ErrConfirmationFailed):
		return http.StatusBadGateway
	case errors.As(err, &apiErr), errors.Is(err, delegasi.ErrTransport):
		return invoiceService.HTTPStatus(err)
	default:
		return http.StatusInternalServerError
	}
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, flowService.ErrInvalidTransition):
		return "INVALID_TRANSITION"
	case errors.Is(err, flowService.ErrOperationInProgress):
		return "OPERATION_IN_PROGRESS"
	case errors.Is(err, flowService.ErrNoActiveInvoice):
		return "NO_ACTIVE_INVOICE"
	case errors.Is(err, flowService.ErrUnknownChannel):
		return "UNKNOWN_CHANNEL"
	case errors.Is(err, confirmation.ErrConfirmationFailed):
		return "CONFIRMATION_FAILED"
	case errors.Is(err, invoiceService.ErrEmptyReference):
		return "EMPTY_REFERENCE"
	}
	if code := delegasi.ErrorCode(err); code != "" {
		return code
	}
	if errors.Is(err, delegasi.ErrTransport) {
		return "UPSTREAM_UNAVAILABLE"
	}
	return "INTERNAL_ERROR"
}
