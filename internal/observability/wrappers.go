package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"companion-llm/internal/llm"
)

// InstrumentedClient envuelve un llm.LLMClient con metricas y un span por llamada.
type InstrumentedClient struct {
	inner   llm.LLMClient
	metrics *MetricsCollector
	tracer  trace.Tracer
}

func NewInstrumentedClient(inner llm.LLMClient, metrics *MetricsCollector, ts *TracerSetup) *InstrumentedClient {
	return &InstrumentedClient{
		inner:   inner,
		metrics: metrics,
		tracer:  ts.Tracer(),
	}
}

func (c *InstrumentedClient) Generate(ctx context.Context, prompt, toneHint string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "llm.generate",
		trace.WithAttributes(
			attribute.Int("llm.prompt_length", len(prompt)),
		))
	defer span.End()

	start := time.Now()
	out, err := c.inner.Generate(ctx, prompt, toneHint)
	duration := time.Since(start).Seconds()

	status := "success"
	if err != nil {
		status = "error"
		if ctx.Err() == context.DeadlineExceeded {
			status = "timeout"
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	if c.metrics != nil {
		c.metrics.LLMRequestsTotal.WithLabelValues(status).Inc()
		c.metrics.LLMRequestDuration.Observe(duration)
	}

	return out, err
}
