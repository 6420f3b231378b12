package exporter

import (
	"context"

	"custexport/pkg/contracts/domain"
)

// DeduplicatingCustomerWriter drops every customer whose name was already
// seen earlier in the same call, then delegates the survivors unchanged.
//
// Deduplication only sees the slice it is given. Wrapped around a
// BatchedCustomerWriter it removes duplicates across the whole export;
// wrapped inside one it only removes duplicates within each batch.
type DeduplicatingCustomerWriter struct {
	next CustomerWriter
}

// NewDeduplicatingCustomerWriter wraps next with deduplication
func NewDeduplicatingCustomerWriter(next CustomerWriter) (*DeduplicatingCustomerWriter, error) {
	if next == nil {
		return nil, &ConfigError{Field: "next", Value: nil, Reason: "wrapped writer is required"}
	}
	return &DeduplicatingCustomerWriter{next: next}, nil
}

// WriteCustomers delegates the first occurrence of each customer name
func (w *DeduplicatingCustomerWriter) WriteCustomers(ctx context.Context, fileName string, customers []domain.Customer) error {
	if err := checkCustomers(customers); err != nil {
		return err
	}

	return w.next.WriteCustomers(ctx, fileName, Deduplicate(customers))
}

// Deduplicate returns the first occurrence of each customer key, in input
// order. The input slice is not modified and the result is never nil.
func Deduplicate(customers []domain.Customer) []domain.Customer {
	seen := make(map[string]struct{}, len(customers))
	unique := make([]domain.Customer, 0, len(customers))

	for _, customer := range customers {
		key := customer.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, customer)
	}

	return unique
}
