package tracing

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestInitTracingWithoutEndpoint(t *testing.T) {
	ctx := context.Background()
	tracer, shutdown, err := InitTracing(ctx, "mortgage-engine-test", "", zap.NewNop())
	if err != nil {
		t.Fatalf("InitTracing() error = %v", err)
	}
	_, span := tracer.Start(ctx, "test")
	if !span.SpanContext().IsValid() {
		t.Error("expected a recording span with valid context")
	}
	span.End()
	if err := shutdown(ctx); err != nil {
		t.Errorf("shutdown error = %v", err)
	}
}
