package domain

// Customer is a single exportable customer record
type Customer struct {
	Name          string `json:"name" yaml:"name"`
	ContactNumber string `json:"contact_number" yaml:"contact_number"`
}

// NewCustomer creates a customer value
func NewCustomer(name, contactNumber string) Customer {
	return Customer{Name: name, ContactNumber: contactNumber}
}

// Key returns the value customers are deduplicated on.
// Two customers with the same name are duplicates regardless of contact number.
func (c Customer) Key() string {
	return c.Name
}
