package infrastructure

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"custexport/internal/config"
)

func testTelemetryConfig() config.TelemetryConfig {
	return config.Default().Telemetry
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestOTelInitialization tests the disabled default configuration
func TestOTelInitialization(t *testing.T) {
	providers, err := InitializeOTel(testTelemetryConfig(), discardLogger())
	require.NoError(t, err)
	require.NotNil(t, providers)

	// Disabled signals still hand out usable no-op instruments
	assert.Nil(t, providers.TracerProvider)
	assert.Nil(t, providers.MeterProvider)
	assert.Nil(t, providers.Registry)
	assert.NotNil(t, providers.Tracer)
	assert.NotNil(t, providers.Meter)

	metrics, err := CreateExportMetrics(providers.Meter)
	require.NoError(t, err)
	metrics.CustomersWritten.Add(context.Background(), 1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, providers.Shutdown(ctx))
}

// TestOTelConfiguration tests the supported exporter combinations
func TestOTelConfiguration(t *testing.T) {
	tests := []struct {
		name           string
		traceExporter  string
		metricExporter string
		wantTracing    bool
		wantMetrics    bool
	}{
		{"all enabled", "stdout", "prometheus", true, true},
		{"metrics only", "none", "prometheus", false, true},
		{"tracing only", "stdout", "none", true, false},
		{"empty means none", "", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testTelemetryConfig()
			cfg.TraceExporter = tt.traceExporter
			cfg.MetricExporter = tt.metricExporter

			providers, err := InitializeOTel(cfg, discardLogger())
			require.NoError(t, err)

			assert.Equal(t, tt.wantTracing, providers.TracerProvider != nil)
			assert.Equal(t, tt.wantMetrics, providers.MeterProvider != nil)
			assert.Equal(t, tt.wantMetrics, providers.Registry != nil)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			assert.NoError(t, providers.Shutdown(ctx))
		})
	}
}

func TestOTelConfiguration_Unsupported(t *testing.T) {
	cfg := testTelemetryConfig()
	cfg.TraceExporter = "jaeger"
	_, err := InitializeOTel(cfg, discardLogger())
	assert.ErrorContains(t, err, "unsupported trace exporter")

	cfg = testTelemetryConfig()
	cfg.MetricExporter = "statsd"
	_, err = InitializeOTel(cfg, discardLogger())
	assert.ErrorContains(t, err, "unsupported metric exporter")
}

func TestWriteMetricsFile(t *testing.T) {
	cfg := testTelemetryConfig()
	cfg.MetricExporter = "prometheus"

	providers, err := InitializeOTel(cfg, discardLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	metrics, err := CreateExportMetrics(providers.Meter)
	require.NoError(t, err)

	ctx := context.Background()
	attrs := metric.WithAttributes(attribute.String("file_name", "customers1.csv"))
	metrics.CustomersWritten.Add(ctx, 7, attrs)
	metrics.FilesWritten.Add(ctx, 1)
	metrics.WriteDuration.Record(ctx, 0.25, attrs)

	path := filepath.Join(t.TempDir(), "custexport.prom")
	require.NoError(t, providers.WriteMetricsFile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	text := string(content)
	assert.Contains(t, text, "# TYPE customers_written_total counter")
	assert.Contains(t, text, `file_name="customers1.csv"`)
	assert.Contains(t, text, "export_files_total")
	assert.Contains(t, text, "export_write_duration_seconds_bucket")
}

func TestWriteMetricsFile_Disabled(t *testing.T) {
	providers, err := InitializeOTel(testTelemetryConfig(), discardLogger())
	require.NoError(t, err)

	err = providers.WriteMetricsFile(filepath.Join(t.TempDir(), "custexport.prom"))
	assert.ErrorContains(t, err, "metrics are not enabled")
}

func TestTracerRecordsSpans(t *testing.T) {
	cfg := testTelemetryConfig()
	cfg.TraceExporter = "stdout"

	providers, err := InitializeOTel(cfg, discardLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	_, span := providers.Tracer.Start(context.Background(), "test-operation")
	defer span.End()

	assert.True(t, span.SpanContext().IsValid())
	assert.True(t, span.IsRecording())
}
