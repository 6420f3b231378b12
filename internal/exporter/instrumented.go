package exporter

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"custexport/internal/infrastructure"
	"custexport/pkg/contracts/domain"
)

const (
	TracerName = "custexport.exporter"
)

// Instrumentation holds the telemetry used by InstrumentedCustomerWriter.
// Nil fields fall back to the global tracer, no metrics and the global logger.
type Instrumentation struct {
	Tracer  trace.Tracer
	Metrics *infrastructure.ExportMetrics
	Logger  *slog.Logger
}

// InstrumentedCustomerWriter records a span, metrics and a log entry for
// every call it delegates. Placed directly around the CSVCustomerWriter,
// each call corresponds to one physical output file.
type InstrumentedCustomerWriter struct {
	next    CustomerWriter
	tracer  trace.Tracer
	metrics *infrastructure.ExportMetrics
	logger  *slog.Logger
}

// NewInstrumentedCustomerWriter wraps next with tracing, metrics and logging
func NewInstrumentedCustomerWriter(next CustomerWriter, inst Instrumentation) (*InstrumentedCustomerWriter, error) {
	if next == nil {
		return nil, &ConfigError{Field: "next", Value: nil, Reason: "wrapped writer is required"}
	}

	tracer := inst.Tracer
	if tracer == nil {
		tracer = otel.Tracer(TracerName)
	}

	return &InstrumentedCustomerWriter{
		next:    next,
		tracer:  tracer,
		metrics: inst.Metrics,
		logger:  inst.Logger,
	}, nil
}

// WriteCustomers delegates to the wrapped writer inside a span
func (w *InstrumentedCustomerWriter) WriteCustomers(ctx context.Context, fileName string, customers []domain.Customer) error {
	if err := checkCustomers(customers); err != nil {
		return err
	}

	ctx, span := w.tracer.Start(ctx, "exporter.write_customers",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("export.file_name", fileName),
			attribute.Int("export.customer_count", len(customers)),
		),
	)
	defer span.End()

	start := time.Now()
	err := w.next.WriteCustomers(ctx, fileName, customers)
	duration := time.Since(start)

	logger := w.loggerFor(ctx)
	attrs := metric.WithAttributes(attribute.String("file_name", fileName))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if w.metrics != nil {
			w.metrics.WriteErrors.Add(ctx, 1, attrs)
		}
		logger.ErrorContext(ctx, "Failed to write customers",
			slog.String("file_name", fileName),
			slog.Int("customer_count", len(customers)),
			slog.String("error", err.Error()))
		return err
	}

	span.SetStatus(codes.Ok, "")
	if w.metrics != nil {
		w.metrics.WriteDuration.Record(ctx, duration.Seconds(), attrs)
		w.metrics.CustomersWritten.Add(ctx, int64(len(customers)), attrs)
		if len(customers) > 0 {
			w.metrics.FilesWritten.Add(ctx, 1)
		}
	}

	logger.DebugContext(ctx, "Wrote customers",
		slog.String("file_name", fileName),
		slog.Int("customer_count", len(customers)),
		slog.Duration("duration", duration))

	return nil
}

func (w *InstrumentedCustomerWriter) loggerFor(ctx context.Context) *slog.Logger {
	if w.logger != nil {
		return w.logger
	}
	return infrastructure.LoggerFromContext(ctx)
}
