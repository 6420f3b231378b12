package infrastructure

import (
	"go.opentelemetry.io/otel/metric"
)

// ExportMetrics holds the instruments recorded while writing customers
type ExportMetrics struct {
	CustomersWritten metric.Int64Counter
	FilesWritten     metric.Int64Counter
	WriteDuration    metric.Float64Histogram
	WriteErrors      metric.Int64Counter
}

// CreateExportMetrics creates the exporter instruments on the given meter
func CreateExportMetrics(meter metric.Meter) (*ExportMetrics, error) {
	customersWritten, err := meter.Int64Counter(
		"customers_written_total",
		metric.WithDescription("Total number of customer rows written"),
	)
	if err != nil {
		return nil, err
	}

	filesWritten, err := meter.Int64Counter(
		"export_files_total",
		metric.WithDescription("Total number of non-empty file writes"),
	)
	if err != nil {
		return nil, err
	}

	writeDuration, err := meter.Float64Histogram(
		"export_write_duration_seconds",
		metric.WithDescription("Time spent writing one batch of customers"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	writeErrors, err := meter.Int64Counter(
		"export_write_errors_total",
		metric.WithDescription("Total number of failed customer writes"),
	)
	if err != nil {
		return nil, err
	}

	return &ExportMetrics{
		CustomersWritten: customersWritten,
		FilesWritten:     filesWritten,
		WriteDuration:    writeDuration,
		WriteErrors:      writeErrors,
	}, nil
}
