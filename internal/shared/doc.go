// Package shared holds code used across the exporter's packages.
//
// The testutil subpackage is the single home for test fixtures:
//
//   - NewCustomer / NewCustomers build customer fixtures
//   - RecordingLineWriter is an in-memory line sink with export assertions
//   - RecordingCustomerWriter records what a decorator delegates
//   - BufferedSlogHandler captures log records
//
// Example usage:
//
//	func TestExport(t *testing.T) {
//	    lines := testutil.NewRecordingLineWriter()
//	    customers := testutil.NewCustomers(12)
//
//	    // run the writer under test against lines
//
//	    lines.AssertCustomersWritten(t, "customers1.csv", customers[:10])
//	    lines.AssertCustomerCount(t, len(customers))
//	}
package shared
