package exporter

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// PipelineOptions configures the writer chain built by NewPipeline
type PipelineOptions struct {
	// BatchSize is the maximum number of customers per file; zero selects DefaultBatchSize
	BatchSize int `validate:"gte=0"`

	// Deduplicate drops repeated customer names before writing
	Deduplicate bool

	// DedupPerBatch places deduplication inside batching, so duplicates are
	// only removed within a single batch. Ignored unless Deduplicate is set.
	DedupPerBatch bool

	// Instrument adds tracing, metrics and logging around each file write
	Instrument *Instrumentation `validate:"-"`
}

// NewPipeline assembles the writer chain over a line sink.
//
// The default chain is Dedup(Batch(CSV)): duplicates are removed across the
// whole export and the survivors are then split into files. With
// DedupPerBatch the chain becomes Batch(Dedup(CSV)).
func NewPipeline(lines LineWriter, opts PipelineOptions) (CustomerWriter, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	batchSize := opts.BatchSize
	if batchSize == 0 {
		batchSize = DefaultBatchSize
	}

	csv, err := NewCSVCustomerWriter(lines)
	if err != nil {
		return nil, err
	}

	var inner CustomerWriter = csv
	if opts.Instrument != nil {
		instrumented, err := NewInstrumentedCustomerWriter(inner, *opts.Instrument)
		if err != nil {
			return nil, err
		}
		inner = instrumented
	}

	if opts.Deduplicate && opts.DedupPerBatch {
		dedup, err := NewDeduplicatingCustomerWriter(inner)
		if err != nil {
			return nil, err
		}
		batched, err := NewBatchedCustomerWriter(dedup, batchSize)
		if err != nil {
			return nil, err
		}
		return batched, nil
	}

	batched, err := NewBatchedCustomerWriter(inner, batchSize)
	if err != nil {
		return nil, err
	}
	if opts.Deduplicate {
		dedup, err := NewDeduplicatingCustomerWriter(batched)
		if err != nil {
			return nil, err
		}
		return dedup, nil
	}
	return batched, nil
}

// validateOptions converts struct tag violations into a ConfigError
func validateOptions(opts PipelineOptions) error {
	err := validate.Struct(opts)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ConfigError{
			Field:  fe.Field(),
			Value:  fe.Value(),
			Reason: fmt.Sprintf("failed %q validation", fe.Tag()+"="+fe.Param()),
		}
	}
	return fmt.Errorf("failed to validate pipeline options: %w", err)
}
