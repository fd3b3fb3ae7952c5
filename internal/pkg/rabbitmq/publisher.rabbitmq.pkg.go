package rabbitmq

import (
	"context"
	"delegasi-pay/internal/pkg/logger"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrNotConnected = errors.New("rabbitmq connection is not available")

// ChannelManager keeps one channel open on top of a ConnectionManager and
// reopens it after the broker or the connection drops it.
type ChannelManager struct {
	ctx         context.Context
	connManager *ConnectionManager
	mu          sync.Mutex
	ch          *amqp.Channel
}

func NewChannelManager(ctx context.Context, connManager *ConnectionManager) *ChannelManager {
	return &ChannelManager{ctx: ctx, connManager: connManager}
}

func (m *ChannelManager) GetChannel() (*amqp.Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ch != nil && !m.ch.IsClosed() {
		return m.ch, nil
	}

	conn := m.connManager.GetConnection()
	if conn == nil || conn.IsClosed() {
		return nil, ErrNotConnected
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	m.ch = ch
	return ch, nil
}

func (m *ChannelManager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ch == nil {
		return nil
	}
	err := m.ch.Close()
	m.ch = nil
	if err != nil && !errors.Is(err, amqp.ErrClosed) {
		return err
	}
	return nil
}

type Publisher struct {
	channel  *ChannelManager
	declared sync.Map
	timeout  time.Duration
}

func NewPublisher(ctx context.Context, connManager *ConnectionManager) (*Publisher, error) {
	if connManager == nil {
		return nil, ErrNotConnected
	}

	return &Publisher{
		channel: NewChannelManager(ctx, connManager),
		timeout: 5 * time.Second,
	}, nil
}

// PublishEvent declares the queue on first use and publishes a persistent
// event message to it through the default exchange.
func (p *Publisher) PublishEvent(ctx context.Context, queue, pattern string, data any) error {
	msg, err := NewEventMessage(pattern, data, time.Now())
	if err != nil {
		return err
	}

	ch, err := p.channel.GetChannel()
	if err != nil {
		return err
	}

	if _, ok := p.declared.Load(queue); !ok {
		if err := EventQueueConfig().declare(ch, queue); err != nil {
			return fmt.Errorf("failed to declare queue %s: %w", queue, err)
		}
		p.declared.Store(queue, struct{}{})
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := ch.PublishWithContext(ctx, "", queue, false, false, msg.GeneratePayload()); err != nil {
		return fmt.Errorf("failed to publish %s: %w", pattern, err)
	}

	logger.Debug.Printf("Published %s to %s id=%s", pattern, queue, msg.ID)
	return nil
}

func (p *Publisher) Close() error {
	return p.channel.Close()
}
