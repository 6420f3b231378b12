package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"custexport/pkg/contracts/domain"
)

// LineCall is one recorded WriteLine call
type LineCall struct {
	FileName string
	Line     string
}

// RecordingLineWriter is an in-memory line sink that records every call
type RecordingLineWriter struct {
	// FailOn, when set, is consulted before each write; a non-nil error is
	// returned to the caller and the line is not recorded
	FailOn func(fileName, line string) error

	mu    sync.Mutex
	calls []LineCall
}

// NewRecordingLineWriter creates an empty recording sink
func NewRecordingLineWriter() *RecordingLineWriter {
	return &RecordingLineWriter{}
}

// WriteLine records the call
func (w *RecordingLineWriter) WriteLine(fileName, line string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.FailOn != nil {
		if err := w.FailOn(fileName, line); err != nil {
			return err
		}
	}

	w.calls = append(w.calls, LineCall{FileName: fileName, Line: line})
	return nil
}

// Calls returns a copy of all recorded calls in order
func (w *RecordingLineWriter) Calls() []LineCall {
	w.mu.Lock()
	defer w.mu.Unlock()

	calls := make([]LineCall, len(w.calls))
	copy(calls, w.calls)
	return calls
}

// Count returns the number of recorded lines
func (w *RecordingLineWriter) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.calls)
}

// Files returns the distinct file names written, in first-write order
func (w *RecordingLineWriter) Files() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	seen := make(map[string]bool)
	var files []string
	for _, call := range w.calls {
		if !seen[call.FileName] {
			seen[call.FileName] = true
			files = append(files, call.FileName)
		}
	}
	return files
}

// Lines returns the lines written to fileName, in order
func (w *RecordingLineWriter) Lines(fileName string) []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	var lines []string
	for _, call := range w.calls {
		if call.FileName == fileName {
			lines = append(lines, call.Line)
		}
	}
	return lines
}

// AssertCustomerWritten checks that customer was written to fileName
func (w *RecordingLineWriter) AssertCustomerWritten(t *testing.T, fileName string, customer domain.Customer) {
	t.Helper()
	assert.Contains(t, w.Lines(fileName), CSVLine(customer), "customer %q not written to %s", customer.Name, fileName)
}

// AssertCustomersWritten checks that every customer was written to fileName
func (w *RecordingLineWriter) AssertCustomersWritten(t *testing.T, fileName string, customers []domain.Customer) {
	t.Helper()
	for _, customer := range customers {
		w.AssertCustomerWritten(t, fileName, customer)
	}
}

// AssertFileContents checks that fileName holds exactly customers, in order
func (w *RecordingLineWriter) AssertFileContents(t *testing.T, fileName string, customers []domain.Customer) {
	t.Helper()
	assert.Equal(t, CSVLines(customers), w.Lines(fileName), "unexpected contents of %s", fileName)
}

// AssertCustomerCount checks the total number of lines written
func (w *RecordingLineWriter) AssertCustomerCount(t *testing.T, expected int) {
	t.Helper()
	assert.Equal(t, expected, w.Count(), "unexpected number of customers written")
}
