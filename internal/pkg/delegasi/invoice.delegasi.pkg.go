package delegasi

import (
	"context"
	"delegasi-pay/internal/common/models"
	"delegasi-pay/internal/pkg/helper"
	"net/url"
)

// InvoicePath is the signed path for an invoice reference. The reference is
// path-escaped so the signed path and the requested URL agree.
func InvoicePath(reference string) string {
	return "/v1/payments/invoice/" + url.PathEscape(reference)
}

// GetInvoice fetches one invoice by its payment reference.
func (c *Client) GetInvoice(ctx context.Context, reference string) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := c.Send(ctx, helper.GET, InvoicePath(reference), nil, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}
