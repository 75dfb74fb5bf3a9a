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

	"roomly/infras/otel"
)

func newRecorded() (otel.Otel, *tracetest.SpanRecorder) {
	recorder := tracetest.NewSpanRecorder()

	return otel.FromProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))), recorder
}

func TestScope_TraceIfError(t *testing.T) {
	tracer, recorder := newRecorded()

	_, succeeded := tracer.NewScope(context.Background(), "service", "service.booking.Create")
	succeeded.TraceIfError(nil)
	succeeded.End()

	_, failed := tracer.NewScope(context.Background(), "service", "service.booking.Confirm")
	failed.TraceIfError(errors.New("booking already confirmed"))
	failed.End()

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	assert.Equal(t, "service.booking.Create", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)

	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "booking already confirmed", spans[1].Status().Description)
	assert.Len(t, spans[1].Events(), 1)
}

func TestScope_SetAttributes(t *testing.T) {
	tracer, recorder := newRecorded()

	_, scope := tracer.NewScope(context.Background(), "repository", "repository.room.Get")
	scope.SetAttribute("db.query", "SELECT 1")
	scope.SetAttributes(map[string]any{"room.id": int64(3), "room.tags": []string{"sea"}, "room.price": 9.5, "other": struct{}{}})
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}

	assert.Equal(t, "SELECT 1", attrs["db.query"].AsString())
	assert.Equal(t, int64(3), attrs["room.id"].AsInt64())
	assert.Equal(t, []string{"sea"}, attrs["room.tags"].AsStringSlice())
	assert.InDelta(t, 9.5, attrs["room.price"].AsFloat64(), 0.001)
	assert.Equal(t, "{}", attrs["other"].AsString())
}

func TestShutdown(t *testing.T) {
	tracer, _ := newRecorded()

	assert.NoError(t, tracer.Shutdown(context.Background()))
}
