// Package events publishes reservation audit events to RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/BruksfildServices01/troia-reservas/internal/audit"
	"github.com/BruksfildServices01/troia-reservas/internal/logger"
)

const QueueReservationEvents = "reservation.events"

// Message is the JSON body published for every audit event.
type Message struct {
	audit.Event
	OccurredAt time.Time `json:"occurred_at"`
}

func Encode(ev audit.Event, at time.Time) ([]byte, error) {
	return json.Marshal(Message{Event: ev, OccurredAt: at.UTC()})
}

// Publisher keeps one connection and channel; a failed publish drops them
// so the next event redials.
type Publisher struct {
	url   string
	queue string
	log   *logger.Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewPublisher(url string, lg *logger.Logger) *Publisher {
	return &Publisher{url: url, queue: QueueReservationEvents, log: lg}
}

func (p *Publisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.reset()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	// durável: eventos sobrevivem a restart do broker
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	p.conn, p.ch = conn, ch
	return ch, nil
}

func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.conn, p.ch = nil, nil
}

// Record implements audit.Sink.
func (p *Publisher) Record(ctx context.Context, ev audit.Event) error {
	now := time.Now()
	body, err := Encode(ev, now)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return err
	}

	err = ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    now.UTC(),
			Type:         ev.Action,
			Body:         body,
		},
	)
	if err != nil {
		p.reset()
		return fmt.Errorf("rabbitmq publish: %w", err)
	}
	return nil
}

func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
	p.log.Info("EVENTS", "RabbitMQ publisher closed")
}

var _ audit.Sink = (*Publisher)(nil)
