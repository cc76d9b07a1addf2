package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/streadway/amqp"

	"github.com/preston-bernstein/football-slip-service/internal/domain/slips"
)

const (
	defaultExchange   = "slips"
	defaultRoutingKey = "pool.entered"
	eventPoolEntered  = "pool.entered"
)

// PoolEvent is the body published when a slip enters a pool.
type PoolEvent struct {
	Type       string            `json:"type"`
	PoolID     string            `json:"poolId"`
	UserID     string            `json:"userId"`
	Selections []slips.Selection `json:"selections"`
	EnteredAt  time.Time         `json:"enteredAt"`
}

// NewPoolEvent builds the event for a pool.
func NewPoolEvent(pool slips.Pool) PoolEvent {
	return PoolEvent{
		Type:       eventPoolEntered,
		PoolID:     pool.ID,
		UserID:     pool.UserID,
		Selections: pool.Selections,
		EnteredAt:  pool.CreatedAt,
	}
}

// NoopPublisher drops events. Used when no broker is configured.
type NoopPublisher struct{}

// PublishPoolEntered does nothing.
func (NoopPublisher) PublishPoolEntered(context.Context, slips.Pool) error { return nil }

// Close does nothing.
func (NoopPublisher) Close() error { return nil }

// AMQPConfig controls the broker connection for pool events.
type AMQPConfig struct {
	URL        string
	Exchange   string
	RoutingKey string
}

// AMQPPublisher publishes pool events to a durable topic exchange.
type AMQPPublisher struct {
	mu         sync.Mutex
	conn       *amqp.Connection
	channel    *amqp.Channel
	exchange   string
	routingKey string
}

// NewAMQPPublisher dials the broker, opens a channel and declares the exchange.
func NewAMQPPublisher(cfg AMQPConfig) (*AMQPPublisher, error) {
	exchange := cfg.Exchange
	if exchange == "" {
		exchange = defaultExchange
	}
	routingKey := cfg.RoutingKey
	if routingKey == "" {
		routingKey = defaultRoutingKey
	}

	conn, err := amqp.DialConfig(cfg.URL, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to amqp: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	if err := channel.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	return &AMQPPublisher{
		conn:       conn,
		channel:    channel,
		exchange:   exchange,
		routingKey: routingKey,
	}, nil
}

// PublishPoolEntered publishes the pool as a persistent JSON message.
func (p *AMQPPublisher) PublishPoolEntered(ctx context.Context, pool slips.Pool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := poolPublishing(pool)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.channel.Publish(p.exchange, p.routingKey, false, false, msg); err != nil {
		return fmt.Errorf("failed to publish pool %s: %w", pool.ID, err)
	}
	return nil
}

// Close closes the channel and connection.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

func poolPublishing(pool slips.Pool) (amqp.Publishing, error) {
	body, err := json.Marshal(NewPoolEvent(pool))
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal pool event: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    pool.ID,
		Timestamp:    pool.CreatedAt,
		Type:         eventPoolEntered,
		Body:         body,
	}, nil
}
