package telemetry

import (
	"context"
	"io"
	"log/slog"
	"testing"
)

func TestSetupWithoutEndpointIsNoop(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	shutdown := Setup("authdash-test", slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}
