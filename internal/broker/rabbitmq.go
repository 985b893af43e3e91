package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"rideshare/internal/logger"
)

const publishTimeout = 3 * time.Second

// ErrClosed is returned when publishing on a closed connection.
var ErrClosed = errors.New("amqp closed")

// channel is the subset of *amqp.Channel the publisher uses.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitMQ publishes JSON events to topic exchanges.
type RabbitMQ struct {
	log      logger.Logger
	conn     *amqp.Connection
	ch       channel
	mu       sync.Mutex
	declared map[string]bool
}

// New dials RabbitMQ and opens a publishing channel.
func New(url string, log logger.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbit dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbit channel: %w", err)
	}
	return newRabbitMQ(conn, ch, log), nil
}

func newRabbitMQ(conn *amqp.Connection, ch channel, log logger.Logger) *RabbitMQ {
	if log == nil {
		log = logger.NewNop()
	}
	return &RabbitMQ{
		log:      log,
		conn:     conn,
		ch:       ch,
		declared: make(map[string]bool),
	}
}

// IsAlive reports whether the underlying connection is open.
func (r *RabbitMQ) IsAlive() bool {
	return r.conn == nil || !r.conn.IsClosed()
}

// PublishJSON marshals msg and publishes it as a persistent message.
func (r *RabbitMQ) PublishJSON(ctx context.Context, exchange, routingKey string, msg any) error {
	if !r.IsAlive() {
		r.log.Error("amqp not alive", logger.String("exchange", exchange))
		return ErrClosed
	}
	if err := r.ensureExchange(exchange); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	pubctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ch.PublishWithContext(pubctx, exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
}

func (r *RabbitMQ) ensureExchange(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.declared[name] {
		return nil
	}
	if err := r.ch.ExchangeDeclare(name, "topic", true, false, false, false, nil); err != nil {
		return err
	}
	r.declared[name] = true
	return nil
}

// Close closes the channel and the connection.
func (r *RabbitMQ) Close() error {
	var errs []error
	if r.ch != nil {
		errs = append(errs, r.ch.Close())
	}
	if r.conn != nil {
		errs = append(errs, r.conn.Close())
	}
	return errors.Join(errs...)
}
