package rabbitmq

import (
	"delegasi-pay/internal/pkg/helper"
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	amqp "github.com/rabbitmq/amqp091-go"
)

// EventBody is the envelope consumers of payment events decode.
type EventBody struct {
	Pattern    string    `json:"type"`
	Data       any       `json:"data"`
	ID         string    `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Message struct {
	ID          string
	Body        []byte
	Headers     amqp.Table
	Timestamp   time.Time
	ContentType string
}

func NewEventMessage(pattern string, data any, now time.Time) (*Message, error) {
	gid, err := gonanoid.New()
	if err != nil {
		return nil, err
	}
	id := fmt.Sprintf("msg_%s_%d", gid, now.Unix())

	body, err := helper.JSONToByte(EventBody{
		Pattern:    pattern,
		Data:       data,
		ID:         id,
		OccurredAt: now.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode event %s: %w", pattern, err)
	}

	return &Message{
		ID:          id,
		Body:        body,
		Headers:     amqp.Table{"type": pattern},
		Timestamp:   now,
		ContentType: "application/json",
	}, nil
}

func (m *Message) GeneratePayload() amqp.Publishing {
	m.Headers["id"] = m.ID

	return amqp.Publishing{
		ContentType:  m.ContentType,
		Body:         m.Body,
		MessageId:    m.ID,
		Timestamp:    m.Timestamp,
		DeliveryMode: amqp.Persistent,
		Type:         fmt.Sprint(m.Headers["type"]),
		Headers:      m.Headers,
	}
}
