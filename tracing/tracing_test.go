package tracing

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestStartSpanWithoutInit(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "test.operation",
		attribute.String("action", "read_profile"))
	assert.NotNil(t, ctx)
	assert.NotNil(t, span)
	EndSpan(span, nil)

	_, failed := StartSpan(context.Background(), "test.failed")
	EndSpan(failed, errors.New("recorded"))
}

func TestInitRejectsUnwritableOutput(t *testing.T) {
	err := Init("riskgate", "test", filepath.Join(t.TempDir(), "missing", "trace.json"))
	assert.Error(t, err)
}

func TestInitWithExporterExportsSpans(t *testing.T) {
	assert.NoError(t, InitWithExporter("riskgate", "test", nil), "nil exporter is a no-op")

	exporter := tracetest.NewInMemoryExporter()
	assert.NoError(t, InitWithExporter("riskgate", "test", exporter))
	// the first initialisation wins, later calls must not replace it
	assert.NoError(t, InitWithExporter("riskgate", "other", tracetest.NewInMemoryExporter()))

	_, span := StartSpan(context.Background(), "test.exported")
	EndSpan(span, nil)

	provider, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	if assert.True(t, ok, "global provider should be the configured SDK provider") {
		assert.NoError(t, provider.ForceFlush(context.Background()))
	}

	var found bool
	for _, stub := range exporter.GetSpans() {
		if stub.Name == "test.exported" {
			found = true
		}
	}
	assert.True(t, found, "span should reach the configured exporter")
}
