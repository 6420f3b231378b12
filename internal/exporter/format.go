package exporter

import (
	"custexport/pkg/contracts/domain"
)

// fieldSeparator joins the fields of a row. Fields are not quoted or escaped,
// so a name containing a comma produces an extra column.
const fieldSeparator = ","

// FormatCSVRow formats a customer as a single CSV row without line terminator
func FormatCSVRow(customer domain.Customer) string {
	return customer.Name + fieldSeparator + customer.ContactNumber
}
