package exporter

import (
	"context"
	"strconv"
	"strings"

	"custexport/pkg/contracts/domain"
)

// DefaultBatchSize is the number of customers per file when none is configured
const DefaultBatchSize = 10

// BatchedCustomerWriter splits large customer lists into fixed-size batches,
// each delegated under its own numbered file name. Lists that fit in one
// batch are delegated unchanged, keeping the original file name.
type BatchedCustomerWriter struct {
	next      CustomerWriter
	batchSize int
}

// NewBatchedCustomerWriter wraps next with batching.
// A non-positive batch size is rejected here rather than at write time.
func NewBatchedCustomerWriter(next CustomerWriter, batchSize int) (*BatchedCustomerWriter, error) {
	if next == nil {
		return nil, &ConfigError{Field: "next", Value: nil, Reason: "wrapped writer is required"}
	}
	if batchSize <= 0 {
		return nil, &ConfigError{Field: "batch_size", Value: batchSize, Reason: "must be greater than zero"}
	}

	return &BatchedCustomerWriter{
		next:      next,
		batchSize: batchSize,
	}, nil
}

// BatchSize returns the configured batch size
func (w *BatchedCustomerWriter) BatchSize() int {
	return w.batchSize
}

// WriteCustomers delegates customers in batches of at most BatchSize.
// Batch i (1-based) of "name.ext" is written to "name<i>.ext". A delegate
// error stops the remaining batches; batches already written are kept.
func (w *BatchedCustomerWriter) WriteCustomers(ctx context.Context, fileName string, customers []domain.Customer) error {
	if err := checkCustomers(customers); err != nil {
		return err
	}

	if len(customers) <= w.batchSize {
		return w.next.WriteCustomers(ctx, fileName, customers)
	}

	batchCount := BatchCount(len(customers), w.batchSize)

	for batch := 1; batch <= batchCount; batch++ {
		start := (batch - 1) * w.batchSize
		end := min(start+w.batchSize, len(customers))

		if err := w.next.WriteCustomers(ctx, BatchFileName(fileName, batch), customers[start:end]); err != nil {
			return err
		}
	}

	return nil
}

// BatchCount returns ceil(total / batchSize)
func BatchCount(total, batchSize int) int {
	if total <= 0 || batchSize <= 0 {
		return 0
	}
	return (total + batchSize - 1) / batchSize
}

// SplitFileName splits a file name at its last dot into base and extension.
// A name without a dot, or whose only dot is the first character
// (".csv"), has no extension.
func SplitFileName(fileName string) (base, ext string) {
	idx := strings.LastIndex(fileName, ".")
	if idx <= 0 {
		return fileName, ""
	}
	return fileName[:idx], fileName[idx:]
}

// BatchFileName returns the file name used for the given 1-based batch
func BatchFileName(fileName string, batch int) string {
	base, ext := SplitFileName(fileName)
	return base + strconv.Itoa(batch) + ext
}
