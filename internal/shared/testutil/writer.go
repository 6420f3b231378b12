package testutil

import (
	"context"
	"sync"

	"custexport/pkg/contracts/domain"
)

// WriteCall is one recorded WriteCustomers call
type WriteCall struct {
	FileName  string
	Customers []domain.Customer
}

// CustomerWriterFunc adapts a plain function to a customer writer so tests
// can inject failures or inspect what a decorator passes on
type CustomerWriterFunc func(ctx context.Context, fileName string, customers []domain.Customer) error

// WriteCustomers calls f
func (f CustomerWriterFunc) WriteCustomers(ctx context.Context, fileName string, customers []domain.Customer) error {
	return f(ctx, fileName, customers)
}

// RecordingCustomerWriter records the calls a decorator delegates to it.
// It accepts a nil customers slice so tests can observe what was passed on.
type RecordingCustomerWriter struct {
	mu    sync.Mutex
	calls []WriteCall
}

// NewRecordingCustomerWriter creates an empty recording writer
func NewRecordingCustomerWriter() *RecordingCustomerWriter {
	return &RecordingCustomerWriter{}
}

// WriteCustomers records fileName and a copy of customers
func (w *RecordingCustomerWriter) WriteCustomers(_ context.Context, fileName string, customers []domain.Customer) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var batch []domain.Customer
	if customers != nil {
		batch = make([]domain.Customer, len(customers))
		copy(batch, customers)
	}
	w.calls = append(w.calls, WriteCall{FileName: fileName, Customers: batch})

	return nil
}

// Calls returns the recorded calls in order
func (w *RecordingCustomerWriter) Calls() []WriteCall {
	w.mu.Lock()
	defer w.mu.Unlock()

	calls := make([]WriteCall, len(w.calls))
	copy(calls, w.calls)
	return calls
}

// Concat joins the customers of every recorded call, in call order
func (w *RecordingCustomerWriter) Concat() []domain.Customer {
	var all []domain.Customer
	for _, call := range w.Calls() {
		all = append(all, call.Customers...)
	}
	return all
}
