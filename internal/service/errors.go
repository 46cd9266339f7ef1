package service

import (
	"errors"

	"fuel_pump_registry/internal/metrics"
)

// Registry error kinds. Operations wrap one of these with detail via %w.
var (
	ErrNotFound             = errors.New("not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidState         = errors.New("invalid state")
	ErrInsufficientQuantity = errors.New("insufficient quantity")
	ErrStorage              = errors.New("storage error")
)

// resultLabel classifies err for the operations counter.
func resultLabel(err error) string {
	switch {
	case err == nil:
		return metrics.ResultOK
	case errors.Is(err, ErrNotFound):
		return metrics.ResultNotFound
	case errors.Is(err, ErrInvalidInput):
		return metrics.ResultInvalidInput
	case errors.Is(err, ErrInvalidState):
		return metrics.ResultInvalidState
	case errors.Is(err, ErrInsufficientQuantity):
		return metrics.ResultInsufficientQuantity
	default:
		return metrics.ResultStorageError
	}
}
