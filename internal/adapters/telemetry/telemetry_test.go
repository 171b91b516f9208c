package telemetry_test

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
	"go.trai.ch/freshen/internal/adapters/telemetry"
	"go.trai.ch/freshen/internal/core/ports"
	"go.trai.ch/freshen/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestInterfaceSatisfaction(_ *testing.T) {
	var _ ports.Tracer = (*telemetry.OTelTracer)(nil)
	var _ ports.Span = (*telemetry.OTelSpan)(nil)
	var _ ports.Tracer = (*telemetry.NoOpTracer)(nil)
	var _ ports.Span = (*telemetry.NoOpSpan)(nil)
	var _ sdktrace.SpanProcessor = (*telemetry.LogProcessor)(nil)
}

func newRecorded() (*telemetry.OTelTracer, *tracetest.SpanRecorder) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	return telemetry.NewOTelTracer(tp), recorder
}

func TestOTelTracer_RecordsSpan(t *testing.T) {
	tracer, recorder := newRecorded()

	_, span := tracer.Start(context.Background(), "cc main.c")
	span.SetAttribute("freshen.outcome", "executed")
	span.SetAttribute("count", 3)
	span.SetAttribute("forced", true)
	span.SetAttribute("argv", []string{"cc", "main.c"})
	n, err := span.Write([]byte("compiling\n"))
	require.NoError(t, err)
	assert.Equal(t, 10, n)
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	got := ended[0]
	assert.Equal(t, "cc main.c", got.Name())
	assert.Contains(t, got.Attributes(), attribute.String("freshen.outcome", "executed"))
	assert.Contains(t, got.Attributes(), attribute.Int("count", 3))
	assert.Contains(t, got.Attributes(), attribute.Bool("forced", true))
	require.Len(t, got.Events(), 1)
	assert.Equal(t, "output", got.Events()[0].Name)
}

func TestOTelSpan_RecordError(t *testing.T) {
	tracer, recorder := newRecorded()

	_, span := tracer.Start(context.Background(), "link app")
	span.RecordError(errors.New("undefined reference"))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "undefined reference", ended[0].Status().Description)
}

func TestOTelTracer_NestsSpans(t *testing.T) {
	tracer, recorder := newRecorded()

	ctx, parent := tracer.Start(context.Background(), "build")
	_, child := tracer.Start(ctx, "cc a.c")
	child.End()
	parent.End()

	ended := recorder.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, ended[1].SpanContext().SpanID(), ended[0].Parent().SpanID())
}

func TestNoOpTracer(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()
	ctx := context.Background()

	newCtx, span := tracer.Start(ctx, "noop")
	assert.Equal(t, ctx, newCtx)

	span.SetAttribute("key", "value")
	span.RecordError(errors.New("ignored"))
	n, err := span.Write([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	span.End()
}

func TestLogProcessor_OnEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	mockLogger.EXPECT().Debug(gomock.Any()).Do(func(msg string) {
		assert.Contains(t, msg, "cc main.c: up-to-date in ")
	})

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewLogProcessor(mockLogger)))
	_, span := telemetry.NewOTelTracer(tp).Start(context.Background(), "cc main.c")
	span.SetAttribute(string(telemetry.OutcomeKey), "up-to-date")
	span.End()
}

func TestLogProcessor_OnEndWithError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	mockLogger.EXPECT().Debug(gomock.Any()).Do(func(msg string) {
		assert.Contains(t, msg, "link app: failed after ")
		assert.Contains(t, msg, "exit 1")
	})

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewLogProcessor(mockLogger)))
	_, span := telemetry.NewOTelTracer(tp).Start(context.Background(), "link app")
	span.RecordError(errors.New("exit 1"))
	span.End()
}

func TestLogProcessor_NilLogger(_ *testing.T) {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewLogProcessor(nil)))
	_, span := telemetry.NewOTelTracer(tp).Start(context.Background(), "quiet")
	span.End()
}

func TestSetupOTel(t *testing.T) {
	tp := telemetry.SetupOTel(tracetest.NewSpanRecorder())
	require.NotNil(t, tp)
	require.NoError(t, tp.Shutdown(context.Background()))
}
