package mocks

import (
	"voyage/infras/otel"

	"go.opentelemetry.io/otel/trace/noop"
)

// NewOtel returns a tracer that records nothing.
func NewOtel() otel.Otel {
	return otel.NewWithProvider(noop.NewTracerProvider())
}
