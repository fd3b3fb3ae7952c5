package invoice

import (
	"context"
	"delegasi-pay/internal/common/models"
	"delegasi-pay/internal/pkg/delegasi"
	"delegasi-pay/internal/pkg/logger"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// GetInvoice fetches the invoice for reference. Errors keep their
// classification so callers can map them with UserMessage.
func (s *Service) GetInvoice(ctx context.Context, reference string) (*models.Invoice, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, ErrEmptyReference
	}

	inv, err := s.provider.GetInvoice(ctx, reference)
	if err != nil {
		if code := delegasi.ErrorCode(err); code != "" {
			logger.Info.Printf("Invoice %s rejected: %s", reference, code)
		} else {
			logger.Error.Printf("Failed to fetch invoice %s: %v", reference, err)
		}
		return nil, err
	}
	if inv == nil {
		return nil, fmt.Errorf("%w: empty invoice body", delegasi.ErrTransport)
	}

	if !inv.Balanced() {
		logger.Warning.Printf("Invoice %s totals do not add up: total_amount=%d expected=%d",
			inv.ID, inv.TotalAmount, inv.ExpectedTotal())
	}

	return inv, nil
}

// UserMessage maps a retrieval error to the text shown on the entry screen.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyReference),
		delegasi.IsCode(err, delegasi.CodeInvoiceNotFound):
		return MessageNotFound
	case delegasi.IsCode(err, delegasi.CodeInvoiceAlreadyPaid):
		return MessageAlreadyPaid
	default:
		return MessageGeneric
	}
}

// HTTPStatus maps a retrieval error to the status used by the JSON API.
func HTTPStatus(err error) int {
	var apiErr *delegasi.APIError
	switch {
	case errors.Is(err, ErrEmptyReference):
		return http.StatusUnprocessableEntity
	case delegasi.IsCode(err, delegasi.CodeInvoiceNotFound):
		return http.StatusNotFound
	case delegasi.IsCode(err, delegasi.CodeInvoiceAlreadyPaid):
		return http.StatusConflict
	case errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}
