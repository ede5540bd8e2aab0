package usecase

import (
	"context"
	"errors"
	"fmt"

	"flight-booking/pkg/utils"
)

// FlightCache stores generated listings by search key.
type FlightCache interface {
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, value any) error
}

type EventPublisher interface {
	Publish(ctx context.Context, key string, event any) error
}

var ErrValidation = errors.New("validation failed")

// ValidationError carries per-field messages back to the handler.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", utils.FormatValidationErrors(e.Fields))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
