package serverApp

import (
	"context"
	"delegasi-pay/internal/pkg/logger"
	"delegasi-pay/internal/pkg/rabbitmq"
	confirmationRepo "delegasi-pay/internal/repository/confirmation"
	sessionRepo "delegasi-pay/internal/repository/session"
	"delegasi-pay/internal/service/confirmation"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
)

const EventPaymentConfirmed = "payment.confirmed"

// EventPublisher is the slice of rabbitmq.Publisher the worker needs.
type EventPublisher interface {
	PublishEvent(ctx context.Context, queue, pattern string, data any) error
}

var _ EventPublisher = (*rabbitmq.Publisher)(nil)

// Worker runs confirmation side effects on an ants pool so the payment
// request never waits on the audit database or the broker.
type Worker struct {
	ctx       context.Context
	pool      *ants.Pool
	wg        sync.WaitGroup
	repo      confirmationRepo.IRepository
	publisher EventPublisher
	queue     string
	timeout   time.Duration
}

type WorkerConfig struct {
	Size      int
	Repo      confirmationRepo.IRepository
	Publisher EventPublisher
	Queue     string
}

// InitWorker builds the pool. Repo and Publisher are optional; a nil one
// skips that side effect.
func InitWorker(ctx context.Context, cfg *WorkerConfig) (*Worker, error) {
	poolOpts := ants.Options{
		ExpiryDuration: time.Hour,
		PreAlloc:       true,
		Nonblocking:    true,
		PanicHandler: func(i interface{}) {
			logger.Error.Printf("Worker panic: %v\n", i)
		},
	}

	size := cfg.Size
	if size <= 0 {
		size = 10
	}

	pool, err := ants.NewPool(size, ants.WithOptions(poolOpts))
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}

	return &Worker{
		ctx:       ctx,
		pool:      pool,
		repo:      cfg.Repo,
		publisher: cfg.Publisher,
		queue:     cfg.Queue,
		timeout:   10 * time.Second,
	}, nil
}

var _ confirmation.Recorder = (*Worker)(nil)

// Record queues rec. When the pool is saturated the work runs inline.
func (w *Worker) Record(rec *confirmation.Record) {
	if w.repo == nil && w.publisher == nil {
		return
	}

	w.wg.Add(1)
	err := w.pool.Submit(func() {
		defer w.wg.Done()
		w.process(rec)
	})
	if err != nil {
		if errors.Is(err, ants.ErrPoolOverload) {
			logger.Warning.Printf("Worker pool saturated, recording confirmation %s inline", rec.Payload.ID)
		} else {
			logger.Error.Printf("Failed to submit confirmation %s: %v", rec.Payload.ID, err)
		}
		defer w.wg.Done()
		w.process(rec)
	}
}

func (w *Worker) process(rec *confirmation.Record) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(w.ctx), w.timeout)
	defer cancel()

	if w.repo != nil {
		row, err := rec.ToModel()
		if err != nil {
			logger.Error.Println(err)
		} else if err := w.repo.Create(ctx, row); err != nil {
			logger.Error.Printf("Failed to store confirmation %s: %v", row.ID, err)
		}
	}

	if w.publisher != nil {
		if err := w.publisher.PublishEvent(ctx, w.queue, EventPaymentConfirmed, rec.Payload); err != nil {
			logger.Error.Printf("Failed to publish confirmation %s: %v", rec.Payload.ID, err)
		}
	}
}

// SweepSessions drops expired in-memory sessions until ctx ends.
func (w *Worker) SweepSessions(repo *sessionRepo.MemoryRepository, interval time.Duration) error {
	return w.pool.Submit(func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.ctx.Done():
				return
			case <-ticker.C:
				if n := repo.Sweep(); n > 0 {
					logger.Debug.Printf("Swept %d expired sessions", n)
				}
			}
		}
	})
}

// Close waits for queued records and releases the pool.
func (w *Worker) Close() {
	w.wg.Wait()
	w.pool.Release()
}
