package otel_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"voyage/infras/otel"
	"voyage/shared/failure"
)

func recorded(t *testing.T, fn func(scope otel.Scope)) sdktrace.ReadOnlySpan {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tracer := otel.NewWithProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))

	_, scope := tracer.NewScope(context.Background(), "service", "service.place.Delete")
	fn(scope)
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	return spans[0]
}

func TestScope_TraceError(t *testing.T) {
	t.Run("server errors fail the span", func(t *testing.T) {
		span := recorded(t, func(scope otel.Scope) { scope.TraceError(errors.New("connection reset")) })

		assert.Equal(t, codes.Error, span.Status().Code)
		assert.Len(t, span.Events(), 1)
	})

	t.Run("client errors are recorded only", func(t *testing.T) {
		span := recorded(t, func(scope otel.Scope) { scope.TraceError(failure.NotFound("place not found")) })

		assert.Equal(t, codes.Unset, span.Status().Code)
		assert.Len(t, span.Events(), 1)
	})

	t.Run("nil is ignored", func(t *testing.T) {
		span := recorded(t, func(scope otel.Scope) { scope.TraceIfError(nil) })

		assert.Empty(t, span.Events())
	})
}

func TestScope_SetAttributes(t *testing.T) {
	span := recorded(t, func(scope otel.Scope) {
		scope.SetAttributes(map[string]any{
			"place.id":      "p-1",
			"media.removed": 3,
			"media.bytes":   int64(2048),
			"orphaned":      false,
			"media.keys":    []string{"places/a.png"},
			"ratio":         0.5,
			"other":         struct{ N int }{N: 1},
		})
	})

	assert.ElementsMatch(t, []attribute.KeyValue{
		attribute.String("place.id", "p-1"),
		attribute.Int("media.removed", 3),
		attribute.Int64("media.bytes", 2048),
		attribute.Bool("orphaned", false),
		attribute.StringSlice("media.keys", []string{"places/a.png"}),
		attribute.Float64("ratio", 0.5),
		attribute.String("other", "{1}"),
	}, span.Attributes())
}
