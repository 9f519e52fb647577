// Package events forwards store change events to a RabbitMQ topic exchange.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/Kola-Kola/personal-finance/internal/logger"
	"github.com/Kola-Kola/personal-finance/internal/store"
)

const (
	exchangeKind   = "topic"
	publishTimeout = 5 * time.Second

	// DefaultBuffer is how many events may wait for publication before new
	// ones are dropped.
	DefaultBuffer = 256
)

// Channel is the part of an AMQP channel the publisher uses.
// *amqp091.Channel satisfies it.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// Message is the JSON body of a published event.
type Message struct {
	Type string    `json:"type"`
	ID   string    `json:"id"`
	At   time.Time `json:"at"`
}

// Publisher queues store events and publishes them from Run. Enqueue never
// blocks the store.
type Publisher struct {
	ch       Channel
	conn     io.Closer
	exchange string
	queue    chan store.Event
}

// Dial connects to url and returns a publisher on a fresh channel.
func Dial(url, exchange string) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	p, err := NewPublisher(ch, exchange, DefaultBuffer)
	if err != nil {
		conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

// NewPublisher declares the exchange on ch and returns a publisher holding
// up to buffer pending events.
func NewPublisher(ch Channel, exchange string, buffer int) (*Publisher, error) {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}

	err := ch.ExchangeDeclare(
		exchange,     // name
		exchangeKind, // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &Publisher{ch: ch, exchange: exchange, queue: make(chan store.Event, buffer)}, nil
}

// Enqueue schedules ev for publication. It is meant to be passed to
// store.Subscribe. When the buffer is full the event is dropped.
func (p *Publisher) Enqueue(ev store.Event) {
	select {
	case p.queue <- ev:
	default:
		logger.Named("events").Warnw("event buffer full, dropping event", "type", ev.Type, "id", ev.ID)
	}
}

// Run publishes queued events until ctx is done. A failed publish is
// logged and the event discarded.
func (p *Publisher) Run(ctx context.Context) error {
	log := logger.Named("events")
	log.Infow("publishing change events", "exchange", p.exchange)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-p.queue:
			if err := p.Publish(ctx, ev); err != nil {
				log.Errorw("publish failed", "type", ev.Type, "id", ev.ID, "error", err)
			}
		}
	}
}

// Publish sends ev to the exchange with its type as routing key.
func (p *Publisher) Publish(ctx context.Context, ev store.Event) error {
	body, err := json.Marshal(Message{Type: string(ev.Type), ID: ev.ID, At: ev.At})
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.ch.PublishWithContext(
		ctx,
		p.exchange,      // exchange
		string(ev.Type), // routing key
		false,           // mandatory
		false,           // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    ev.At,
			MessageId:    ev.ID,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}
	return nil
}

// Close closes the channel and, for dialed publishers, the connection.
func (p *Publisher) Close() error {
	err := p.ch.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
