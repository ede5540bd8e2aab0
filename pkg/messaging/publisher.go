// Package messaging publishes domain events to a message broker.
package messaging

import (
	"context"
	"fmt"
	"strings"

	"flight-booking/pkg/utils"

	"go.uber.org/zap"
)

type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
	Close() error
}

// NewPublisher picks the broker named by cfg.Driver.
func NewPublisher(cfg utils.EventsConfig, log *zap.Logger) (Publisher, error) {
	switch strings.ToLower(cfg.Driver) {
	case "kafka":
		return NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, log), nil
	case "rabbitmq":
		return NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQQueue, log)
	case "none", "":
		return NopPublisher{}, nil
	default:
		return nil, fmt.Errorf("unknown events driver %q", cfg.Driver)
	}
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }
func (NopPublisher) Close() error                               { return nil }
