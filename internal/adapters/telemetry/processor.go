package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/freshen/internal/core/ports"
)

// OutcomeKey is the span attribute carrying a step's outcome.
const OutcomeKey attribute.Key = "freshen.outcome"

// LogProcessor implements sdktrace.SpanProcessor by logging finished spans
// at debug level.
type LogProcessor struct {
	logger ports.Logger
}

// NewLogProcessor returns a new LogProcessor.
func NewLogProcessor(logger ports.Logger) *LogProcessor {
	return &LogProcessor{logger: logger}
}

// OnStart does nothing.
func (p *LogProcessor) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd is called when a span ends.
func (p *LogProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	if p.logger == nil || !s.SpanContext().IsValid() {
		return
	}

	elapsed := s.EndTime().Sub(s.StartTime())
	if s.Status().Code == codes.Error {
		p.logger.Debug(fmt.Sprintf("%s: failed after %s: %s", s.Name(), elapsed, s.Status().Description))
		return
	}

	outcome := "done"
	for _, kv := range s.Attributes() {
		if kv.Key == OutcomeKey {
			outcome = kv.Value.AsString()
		}
	}
	p.logger.Debug(fmt.Sprintf("%s: %s in %s", s.Name(), outcome, elapsed))
}

// ForceFlush does nothing.
func (p *LogProcessor) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (p *LogProcessor) Shutdown(_ context.Context) error {
	return nil
}

// SetupOTel creates a TracerProvider that reports spans through processor and
// registers it as the global provider.
func SetupOTel(processor sdktrace.SpanProcessor) *sdktrace.TracerProvider {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(processor),
	)
	otel.SetTracerProvider(tp)
	return tp
}
