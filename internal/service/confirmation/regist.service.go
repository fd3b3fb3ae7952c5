package confirmation

import (
	"context"
	"delegasi-pay/internal/common/models"
	"delegasi-pay/internal/pkg/delegasi"
	"encoding/json"
	"errors"
	"time"
)

const (
	MessageConfirmed = "Pembayaran Anda telah dikonfirmasi."
	MessageFailed    = "Terjadi kesalahan saat memproses permintaan Anda. Silakan coba lagi."
)

var ErrConfirmationFailed = errors.New("payment confirmation failed")

// Poster is the remote write the service depends on.
type Poster interface {
	PostWebhook(ctx context.Context, payload *delegasi.WebhookPayload) (json.RawMessage, error)
}

// Record is what gets audited after the provider accepted a confirmation.
type Record struct {
	Payload        *delegasi.WebhookPayload
	Response       json.RawMessage
	VirtualAccount string
	ConfirmedAt    time.Time
}

// Recorder persists accepted confirmations off the request path.
type Recorder interface {
	Record(rec *Record)
}

type Service struct {
	poster   Poster
	recorder Recorder
	now      func() time.Time
}

type IService interface {
	BuildPayload(inv *models.Invoice, selection *models.ChannelSelection, id string, now time.Time) *delegasi.WebhookPayload
	Confirm(ctx context.Context, inv *models.Invoice, selection *models.ChannelSelection, id string) (*delegasi.WebhookPayload, error)
}

// NewService wires the webhook poster. recorder may be nil.
func NewService(poster Poster, recorder Recorder) IService {
	return &Service{
		poster:   poster,
		recorder: recorder,
		now:      time.Now,
	}
}
