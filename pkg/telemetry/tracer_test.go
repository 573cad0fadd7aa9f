package telemetry

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"
)

func TestInitTracerStdout(t *testing.T) {
	var buf bytes.Buffer
	ctx := context.Background()
	shutdown, err := InitTracer(ctx, Options{ServiceName: "stdnum-test", Exporter: ExporterStdout, Writer: &buf})
	if err != nil {
		t.Fatalf("InitTracer: %v", err)
	}

	_, span := otel.Tracer("test").Start(ctx, "inspect")
	span.End()

	if err := shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if !strings.Contains(buf.String(), `"Name":"inspect"`) {
		t.Errorf("span not exported: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "stdnum-test") {
		t.Errorf("service name missing from resource: %s", buf.String())
	}
}

func TestInitTracerNone(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), Options{ServiceName: "x"})
	if err != nil {
		t.Fatalf("InitTracer: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown: %v", err)
	}
}

func TestInitTracerUnknownExporter(t *testing.T) {
	if _, err := InitTracer(context.Background(), Options{Exporter: "zipkin"}); err == nil {
		t.Error("expected error for unknown exporter")
	}
}
