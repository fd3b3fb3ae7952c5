package invoice

import (
	"context"
	"delegasi-pay/internal/common/models"
	"errors"
)

// ErrEmptyReference is returned before any network call for a blank reference.
var ErrEmptyReference = errors.New("payment reference is empty")

const (
	MessageNotFound    = "Nomor pembayaran tidak ditemukan. Mohon periksa kembali nomor pembayaran Anda."
	MessageAlreadyPaid = "Tagihan ini sudah dibayar. Silakan cek status pembayaran Anda."
	MessageGeneric     = "Terjadi kesalahan saat memproses permintaan Anda. Silakan coba lagi."
)

// Provider is the remote read the service depends on.
type Provider interface {
	GetInvoice(ctx context.Context, reference string) (*models.Invoice, error)
}

type Service struct {
	provider Provider
}

type IService interface {
	GetInvoice(ctx context.Context, reference string) (*models.Invoice, error)
}

func NewService(provider Provider) IService {
	return &Service{provider: provider}
}
