package exporter

import (
	"context"

	"custexport/pkg/contracts/domain"
)

// CSVCustomerWriter is the innermost CustomerWriter. It formats each customer
// as a CSV row and appends it to the line sink under the unchanged file name.
type CSVCustomerWriter struct {
	lines LineWriter
}

// NewCSVCustomerWriter creates a new CSV customer writer over the given sink
func NewCSVCustomerWriter(lines LineWriter) (*CSVCustomerWriter, error) {
	if lines == nil {
		return nil, &ConfigError{Field: "lines", Value: nil, Reason: "line writer is required"}
	}
	return &CSVCustomerWriter{lines: lines}, nil
}

// WriteCustomers appends one row per customer, in order.
// Sink errors are returned unchanged and stop the remaining rows.
func (w *CSVCustomerWriter) WriteCustomers(_ context.Context, fileName string, customers []domain.Customer) error {
	if err := checkCustomers(customers); err != nil {
		return err
	}

	for _, customer := range customers {
		if err := w.lines.WriteLine(fileName, FormatCSVRow(customer)); err != nil {
			return err
		}
	}

	return nil
}
