package testutil

import (
	"strconv"

	"custexport/pkg/contracts/domain"
)

// NewCustomer creates a customer fixture
func NewCustomer(name, contactNumber string) domain.Customer {
	return domain.NewCustomer(name, contactNumber)
}

// NewCustomers creates n distinct customers named and numbered "0".."n-1"
func NewCustomers(n int) []domain.Customer {
	customers := make([]domain.Customer, 0, n)
	for i := 0; i < n; i++ {
		customers = append(customers, NewCustomer(strconv.Itoa(i), strconv.Itoa(i)))
	}
	return customers
}

// CSVLine returns the line a customer is expected to produce in an export
func CSVLine(customer domain.Customer) string {
	return customer.Name + "," + customer.ContactNumber
}

// CSVLines returns the expected lines for customers, in order
func CSVLines(customers []domain.Customer) []string {
	lines := make([]string, 0, len(customers))
	for _, customer := range customers {
		lines = append(lines, CSVLine(customer))
	}
	return lines
}
