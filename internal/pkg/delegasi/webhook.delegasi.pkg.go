package delegasi

import (
	"context"
	"delegasi-pay/internal/common/models"
	"delegasi-pay/internal/pkg/helper"
	"encoding/json"
)

const WebhookPath = "/webhook/blibli"

type CardInfo struct {
	MaskedNumber string `json:"masked_number"`
	Brand        string `json:"brand"`
	Issuer       string `json:"issuer"`
	Type         string `json:"type"`
}

type PaymentDetail struct {
	Method            string   `json:"method"`
	Channel           string   `json:"channel"`
	Amount            int64    `json:"amount"`
	FeeAmount         int64    `json:"fee_amount"`
	DiscountAmount    int64    `json:"discount_amount"`
	TotalAmount       int64    `json:"total_amount"`
	CardInfo          CardInfo `json:"card_info"`
	ApprovalCode      string   `json:"approval_code"`
	TransactionDate   string   `json:"transaction_date"`
	Status            string   `json:"status"`
	StatusDescription string   `json:"status_description"`
}

// WebhookPayload is the payment confirmation sent for a paid invoice.
type WebhookPayload struct {
	ID          string        `json:"id"`
	ReferenceID string        `json:"reference_id"`
	Status      string        `json:"status"`
	Payment     PaymentDetail `json:"payment"`
	Buyer       models.Party  `json:"buyer"`
	Merchant    models.Party  `json:"merchant"`
}

// PostWebhook submits a confirmation and returns the raw JSON response.
func (c *Client) PostWebhook(ctx context.Context, payload *WebhookPayload) (json.RawMessage, error) {
	var result json.RawMessage
	if err := c.Send(ctx, helper.POST, WebhookPath, payload, &result); err != nil {
		return nil, err
	}
	return result, nil
}
