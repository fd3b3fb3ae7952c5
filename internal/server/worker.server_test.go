package serverApp

import (
	"context"
	"delegasi-pay/internal/common/models"
	"delegasi-pay/internal/pkg/delegasi"
	"delegasi-pay/internal/service/confirmation"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryConfirmations struct {
	mu   sync.Mutex
	rows []*models.PaymentConfirmation
	err  error
}

func (m *memoryConfirmations) Create(_ context.Context, row *models.PaymentConfirmation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.rows = append(m.rows, row)
	return nil
}

func (m *memoryConfirmations) FindByID(context.Context, string) (*models.PaymentConfirmation, error) {
	return nil, errors.New("not implemented")
}

func (m *memoryConfirmations) FindByReference(context.Context, string) ([]models.PaymentConfirmation, error) {
	return nil, errors.New("not implemented")
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) PublishEvent(_ context.Context, queue, pattern string, data any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	payload := data.(*delegasi.WebhookPayload)
	p.events = append(p.events, queue+"|"+pattern+"|"+payload.ID)
	return nil
}

func record(id string) *confirmation.Record {
	return &confirmation.Record{
		Payload: &delegasi.WebhookPayload{
			ID:          id,
			ReferenceID: "INV-001",
			Status:      "PAID",
			Payment:     delegasi.PaymentDetail{Channel: "BCA", Amount: 100000, TotalAmount: 102000},
		},
		VirtualAccount: "1234567890",
		ConfirmedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestWorker_RecordsAndPublishes(t *testing.T) {
	repo := &memoryConfirmations{}
	pub := &recordingPublisher{}

	w, err := InitWorker(context.Background(), &WorkerConfig{Size: 2, Repo: repo, Publisher: pub, Queue: "payment.confirmed"})
	require.NoError(t, err)

	for _, id := range []string{"c-1", "c-2", "c-3"} {
		w.Record(record(id))
	}
	w.Close()

	require.Len(t, repo.rows, 3)
	assert.ElementsMatch(t, []string{
		"payment.confirmed|payment.confirmed|c-1",
		"payment.confirmed|payment.confirmed|c-2",
		"payment.confirmed|payment.confirmed|c-3",
	}, pub.events)
	for _, row := range repo.rows {
		assert.Equal(t, "INV-001", row.ReferenceID)
		assert.Equal(t, int64(102000), row.TotalAmount)
	}
}

func TestWorker_StoreFailureStillPublishes(t *testing.T) {
	repo := &memoryConfirmations{err: errors.New("db down")}
	pub := &recordingPublisher{}

	w, err := InitWorker(context.Background(), &WorkerConfig{Size: 1, Repo: repo, Publisher: pub, Queue: "q"})
	require.NoError(t, err)

	w.Record(record("c-1"))
	w.Close()

	assert.Empty(t, repo.rows)
	assert.Len(t, pub.events, 1)
}

func TestWorker_NoSinks(t *testing.T) {
	w, err := InitWorker(context.Background(), &WorkerConfig{})
	require.NoError(t, err)

	w.Record(record("c-1"))
	w.Close()
}
