// Package exporter writes customer records to delimited text files.
//
// Every component implements CustomerWriter, so they can be nested in any
// order around the CSVCustomerWriter, which is the only component that talks
// to the LineWriter sink:
//
// CSVCustomerWriter: formats each customer as "name,contact" and appends it
// to the named file. No header row, no quoting.
//
// BatchedCustomerWriter: splits lists longer than the batch size into
// numbered files ("customers.csv" becomes "customers1.csv", "customers2.csv").
//
// DeduplicatingCustomerWriter: keeps the first customer for each name.
//
// InstrumentedCustomerWriter: records spans, metrics and logs per call.
//
// Order matters for deduplication. Dedup(Batch(w)) removes duplicates across
// the whole export; Batch(Dedup(w)) only removes duplicates that land in the
// same batch. Both compositions are allowed, NewPipeline builds the first one
// unless asked otherwise.
//
// Example usage:
//
//	lines := files.NewLineFileWriter("/path/to/output", files.LineFileOptions{})
//	defer lines.Close()
//
//	writer, err := exporter.NewPipeline(lines, exporter.PipelineOptions{
//		BatchSize:   15000,
//		Deduplicate: true,
//	})
//	if err != nil {
//		return err
//	}
//
//	err = writer.WriteCustomers(ctx, "customers.csv", customers)
package exporter
