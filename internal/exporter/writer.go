package exporter

import (
	"context"

	"custexport/pkg/contracts/domain"
)

// CustomerWriter writes customers to a named target.
//
// Implementations must reject a nil customers slice with an ArgumentError
// before touching the sink. An empty slice is valid and writes nothing.
// The context carries the run id for logging and tracing; writers do not
// abort on cancellation.
type CustomerWriter interface {
	WriteCustomers(ctx context.Context, fileName string, customers []domain.Customer) error
}

// LineWriter appends one line of text to a named output
type LineWriter interface {
	WriteLine(fileName, line string) error
}

// checkCustomers validates the customers argument shared by all writers
func checkCustomers(customers []domain.Customer) error {
	if customers == nil {
		return NewNilCustomersError()
	}
	return nil
}
