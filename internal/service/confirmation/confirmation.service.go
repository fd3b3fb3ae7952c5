package confirmation

import (
	"context"
	"delegasi-pay/internal/common/models"
	"delegasi-pay/internal/pkg/delegasi"
	"delegasi-pay/internal/pkg/helper"
	"delegasi-pay/internal/pkg/logger"
	"fmt"
	"time"

	"github.com/samber/lo"
)

const (
	statusPaid            = "PAID"
	statusSuccess         = "SUCCESS"
	statusDescription     = "Payment successful"
	methodVirtualAccount  = "VIRTUAL_ACCOUNT"
	defaultChannel        = "BCA"
	simulatedMaskedNumber = "4111-xxxx-xxxx-1111"
	simulatedBrand        = "VISA"
	simulatedCardType     = "CREDIT"
	simulatedApprovalCode = "ABC123"
)

// BuildPayload copies the invoice amounts verbatim and reports the selected
// bank as channel and issuer. Without a selection the channel is BCA.
func (s *Service) BuildPayload(inv *models.Invoice, selection *models.ChannelSelection, id string, now time.Time) *delegasi.WebhookPayload {
	channel := defaultChannel
	if selection != nil && selection.BankCode != "" {
		channel = selection.BankCode
	}

	return &delegasi.WebhookPayload{
		ID:          id,
		ReferenceID: inv.ID,
		Status:      statusPaid,
		Payment: delegasi.PaymentDetail{
			Method:         methodVirtualAccount,
			Channel:        channel,
			Amount:         inv.Amount,
			FeeAmount:      inv.TotalFee,
			DiscountAmount: inv.DiscountAmount,
			TotalAmount:    inv.TotalAmount,
			CardInfo: delegasi.CardInfo{
				MaskedNumber: simulatedMaskedNumber,
				Brand:        simulatedBrand,
				Issuer:       channel,
				Type:         simulatedCardType,
			},
			ApprovalCode:      simulatedApprovalCode,
			TransactionDate:   helper.ISOTimestamp(now),
			Status:            statusSuccess,
			StatusDescription: statusDescription,
		},
		Buyer:    inv.Buyer,
		Merchant: inv.Merchant,
	}
}

// Confirm posts the confirmation for inv. id identifies the logical attempt
// and is reused by callers that retry after a failure.
func (s *Service) Confirm(ctx context.Context, inv *models.Invoice, selection *models.ChannelSelection, id string) (*delegasi.WebhookPayload, error) {
	if inv == nil {
		return nil, fmt.Errorf("%w: no invoice", ErrConfirmationFailed)
	}

	now := s.now()
	payload := s.BuildPayload(inv, selection, id, now)

	resp, err := s.poster.PostWebhook(ctx, payload)
	if err != nil {
		logger.Error.Printf("Confirmation %s for invoice %s failed: %v", id, inv.ID, err)
		return nil, fmt.Errorf("%w: %w", ErrConfirmationFailed, err)
	}

	logger.Info.Printf("Confirmation %s accepted for invoice %s via %s", id, inv.ID, payload.Payment.Channel)

	if s.recorder != nil {
		s.recorder.Record(&Record{
			Payload:        payload,
			Response:       resp,
			VirtualAccount: lo.TernaryF(selection != nil, func() string { return selection.VirtualAccount }, func() string { return "" }),
			ConfirmedAt:    now.UTC(),
		})
	}

	return payload, nil
}

// ToModel converts the record into its audit row.
func (r *Record) ToModel() (*models.PaymentConfirmation, error) {
	payload, err := helper.JSONCompact(r.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode confirmation %s: %w", r.Payload.ID, err)
	}

	return &models.PaymentConfirmation{
		ID:             r.Payload.ID,
		ReferenceID:    r.Payload.ReferenceID,
		Channel:        r.Payload.Payment.Channel,
		VirtualAccount: r.VirtualAccount,
		Amount:         r.Payload.Payment.Amount,
		FeeAmount:      r.Payload.Payment.FeeAmount,
		DiscountAmount: r.Payload.Payment.DiscountAmount,
		TotalAmount:    r.Payload.Payment.TotalAmount,
		Status:         r.Payload.Status,
		Payload:        models.JSONB(payload),
		Response:       models.JSONB(r.Response),
		ConfirmedAt:    r.ConfirmedAt,
	}, nil
}
