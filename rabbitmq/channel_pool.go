package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MonkyMars/gecho"
	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrPoolExhausted = errors.New("no channels available in pool")

// ChannelPool keeps a fixed set of channels on one connection, each with the queue declared.
type ChannelPool struct {
	conn      *amqp.Connection
	channels  chan *amqp.Channel
	mu        sync.Mutex
	closed    bool
	queueName string
	logger    *gecho.Logger
}

func NewChannelPool(url, queueName string, size int, logger *gecho.Logger) (*ChannelPool, error) {
	if size < 1 {
		size = 1
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}

	pool := &ChannelPool{
		conn:      conn,
		channels:  make(chan *amqp.Channel, size),
		queueName: queueName,
		logger:    logger,
	}

	for i := 0; i < size; i++ {
		ch, err := pool.createChannel()
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to create channel %d: %w", i, err)
		}
		pool.channels <- ch
	}

	logger.Info("Broker channel pool ready", gecho.Field("channels", size), gecho.Field("queue", queueName))
	return pool, nil
}

func (p *ChannelPool) createChannel() (*amqp.Channel, error) {
	ch, err := p.conn.Channel()
	if err != nil {
		return nil, err
	}

	// durable, not auto-deleted, not exclusive
	if _, err := ch.QueueDeclare(p.queueName, true, false, false, false, nil); err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	return ch, nil
}

func (p *ChannelPool) get() (*amqp.Channel, error) {
	select {
	case ch, ok := <-p.channels:
		if !ok {
			return nil, ErrPoolExhausted
		}
		if ch.IsClosed() {
			return p.createChannel()
		}
		return ch, nil
	default:
		return nil, ErrPoolExhausted
	}
}

func (p *ChannelPool) put(ch *amqp.Channel) {
	if ch == nil || ch.IsClosed() {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		ch.Close()
		return
	}

	select {
	case p.channels <- ch:
	default:
		ch.Close()
	}
}

// Publish sends msg to the pool's queue on the default exchange.
func (p *ChannelPool) Publish(ctx context.Context, msg amqp.Publishing) error {
	ch, err := p.get()
	if err != nil {
		return err
	}
	defer p.put(ch)

	return ch.PublishWithContext(ctx, "", p.queueName, false, false, msg)
}

func (p *ChannelPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true

	close(p.channels)
	for ch := range p.channels {
		ch.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
	p.logger.Info("Broker channel pool closed")
}
