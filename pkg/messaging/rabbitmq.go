package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const rabbitChannels = 4

var errNoChannel = errors.New("no channels available in pool")

// RabbitPublisher publishes persistent JSON messages to a durable queue
// through a small pool of channels.
type RabbitPublisher struct {
	conn      *amqp.Connection
	channels  chan *amqp.Channel
	queueName string
	mu        sync.Mutex
	closed    bool
	log       *zap.Logger
}

var _ Publisher = (*RabbitPublisher)(nil)

func NewRabbitPublisher(url, queueName string, log *zap.Logger) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	p := &RabbitPublisher{
		conn:      conn,
		channels:  make(chan *amqp.Channel, rabbitChannels),
		queueName: queueName,
		log:       log.With(zap.String("publisher", "rabbitmq")),
	}

	for i := 0; i < rabbitChannels; i++ {
		ch, err := p.createChannel()
		if err != nil {
			_ = p.Close()
			return nil, fmt.Errorf("failed to create channel %d: %w", i, err)
		}
		p.channels <- ch
	}

	return p, nil
}

func (p *RabbitPublisher) createChannel() (*amqp.Channel, error) {
	ch, err := p.conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		p.queueName, // name
		true,        // durable
		false,       // delete when unused
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	return ch, nil
}

func (p *RabbitPublisher) Publish(ctx context.Context, key string, event any) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	ch, err := p.getChannel(ctx)
	if err != nil {
		return err
	}
	defer p.returnChannel(ch)

	err = ch.PublishWithContext(ctx,
		"",          // exchange
		p.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			MessageId:    key,
			Body:         body,
		})
	if err != nil {
		p.log.Error("Failed to publish event", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.log.Debug("Event published", zap.String("queue", p.queueName), zap.String("key", key))
	return nil
}

// getChannel waits for a free channel, replacing one the broker closed.
func (p *RabbitPublisher) getChannel(ctx context.Context) (*amqp.Channel, error) {
	select {
	case ch, ok := <-p.channels:
		if !ok {
			return nil, errNoChannel
		}
		if ch.IsClosed() {
			return p.createChannel()
		}
		return ch, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *RabbitPublisher) returnChannel(ch *amqp.Channel) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if ch == nil || ch.IsClosed() {
		return
	}
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

func (p *RabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	close(p.channels)
	for ch := range p.channels {
		ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
