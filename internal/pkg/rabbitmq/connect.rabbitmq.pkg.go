package rabbitmq

import (
	"context"
	"delegasi-pay/internal/pkg/logger"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	connectionName = "delegasi-pay"
	maxBackoff     = 30 * time.Second
)

// ConnectionManager owns the broker connection used to publish payment
// events and redials it in the background after the broker drops it.
type ConnectionManager struct {
	mu        sync.Mutex
	conn      *amqp.Connection
	url       string
	heartbeat time.Duration
	backoff   time.Duration
	ctx       context.Context
	cancel    context.CancelFunc
}

// QueueConfig is how event queues are declared.
type QueueConfig struct {
	Durable    bool
	AutoDelete bool
	Args       amqp.Table
}

// EventQueueConfig keeps payment events across broker restarts.
func EventQueueConfig() *QueueConfig {
	return &QueueConfig{Durable: true}
}

func (q *QueueConfig) declare(ch *amqp.Channel, name string) error {
	_, err := ch.QueueDeclare(name, q.Durable, q.AutoDelete, false, false, q.Args)
	return err
}

type Config struct {
	Username string
	Password string
	Host     string
	Port     int
	VHost    string
	// URI wins over the individual fields when set.
	URI       string
	Heartbeat time.Duration
}

func (c *Config) dialURL() string {
	if c.URI != "" {
		return c.URI
	}
	u := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(c.Username, c.Password),
		Host:   c.Host + ":" + strconv.Itoa(c.Port),
		Path:   "/" + c.VHost,
	}
	return u.String()
}

func NewConnectionManager(ctx context.Context, config *Config) (*ConnectionManager, error) {
	ctx, cancel := context.WithCancel(ctx)

	cm := &ConnectionManager{
		url:       config.dialURL(),
		heartbeat: config.Heartbeat,
		backoff:   2 * time.Second,
		ctx:       ctx,
		cancel:    cancel,
	}
	if cm.heartbeat <= 0 {
		cm.heartbeat = 10 * time.Second
	}

	conn, err := cm.dial()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	cm.conn = conn
	go cm.watch(conn)

	return cm, nil
}

func (cm *ConnectionManager) dial() (*amqp.Connection, error) {
	props := amqp.NewConnectionProperties()
	props.SetClientConnectionName(connectionName)

	return amqp.DialConfig(cm.url, amqp.Config{
		Heartbeat:  cm.heartbeat,
		Properties: props,
	})
}

// watch waits for conn to drop, then redials until it succeeds or the
// manager is closed.
func (cm *ConnectionManager) watch(conn *amqp.Connection) {
	closed := conn.NotifyClose(make(chan *amqp.Error, 1))

	select {
	case <-cm.ctx.Done():
		return
	case err := <-closed:
		if err == nil {
			return
		}
		logger.Warning.Printf("RabbitMQ connection lost: %v", err)
	}

	wait := cm.backoff
	for attempt := 1; ; attempt++ {
		timer := time.NewTimer(wait)
		select {
		case <-cm.ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		next, err := cm.dial()
		if err != nil {
			logger.Warning.Printf("RabbitMQ reconnect attempt #%d failed: %v", attempt, err)
			wait = min(wait*2, maxBackoff)
			continue
		}

		cm.mu.Lock()
		if cm.ctx.Err() != nil {
			cm.mu.Unlock()
			_ = next.Close()
			return
		}
		cm.conn = next
		cm.mu.Unlock()

		logger.Info.Println("Reconnected to RabbitMQ.")
		go cm.watch(next)
		return
	}
}

// GetConnection returns the live connection, or nil once closed.
func (cm *ConnectionManager) GetConnection() *amqp.Connection {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.ctx.Err() != nil {
		return nil
	}
	return cm.conn
}

// Healthy reports whether a publish could currently go out.
func (cm *ConnectionManager) Healthy() bool {
	conn := cm.GetConnection()
	return conn != nil && !conn.IsClosed()
}

func (cm *ConnectionManager) Close() error {
	cm.cancel()

	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.conn == nil {
		return nil
	}
	err := cm.conn.Close()
	cm.conn = nil
	if err != nil && !errors.Is(err, amqp.ErrClosed) {
		return fmt.Errorf("failed to close connection: %w", err)
	}
	return nil
}
