package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/s5-go/s5/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

func TestStartSpan(t *testing.T) {
	ctx := context.Background()
	_, span := telemetry.StartSpan(ctx, "TestSpan")
	span.SetAttributes(attribute.String("test", "value"))
	span.End()
}

func TestNetworkSpan(t *testing.T) {
	ctx := context.Background()
	_, span := telemetry.StartNetworkSpan(ctx, "download_blob", map[string]string{
		"hash": "deadbeef",
		"size": "1024",
	})
	span.End()
}

func TestHelpers(t *testing.T) {
	ctx := context.Background()
	err := telemetry.TraceExecutionTime(ctx, "SlowOperation", func() error {
		time.Sleep(10 * time.Millisecond)
		return nil
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	ctx, _, done := telemetry.TraceFunctionExecution(ctx, "ImportantFunction")
	time.Sleep(10 * time.Millisecond)
	done()

	_, span := telemetry.TracePathOperation(ctx, "get", "home/a.txt")
	span.End()
}
