package dataprocessing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"custexport/internal/infrastructure"
	"custexport/pkg/contracts/domain"
)

// ErrUnsupportedFormat is returned for input files that are neither CSV nor Excel
var ErrUnsupportedFormat = errors.New("unsupported input format")

// RowError reports a malformed row in an input file
type RowError struct {
	Source string
	Row    int
	Reason string
}

// Error implements the error interface
func (e *RowError) Error() string {
	return fmt.Sprintf("%s row %d: %s", e.Source, e.Row, e.Reason)
}

// ParseFile reads customers from a CSV or Excel file.
//
// The first column is the customer name and the second the contact number;
// extra columns are ignored. The first non-blank row is skipped as a header
// when its first cell is "name" and its second cell is a contact column
// label, so a customer actually named "Name" is kept. Blank rows are
// skipped. A missing contact number is kept as an empty string.
func ParseFile(filePath string) ([]domain.Customer, error) {
	var rows [][]string
	var err error

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".xlsx":
		rows, err = readExcelRows(filePath)
	case ".csv":
		rows, err = readCSVRows(filePath)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filePath)
	}
	if err != nil {
		return nil, err
	}

	customers, err := parseRows(filepath.Base(filePath), rows)
	if err != nil {
		return nil, err
	}

	infrastructure.WithComponent(infrastructure.GetLogger(), "dataprocessing").Debug("Parsed customer file",
		slog.String("file_path", filePath),
		slog.Int("total_rows", len(rows)),
		slog.Int("customer_count", len(customers)))

	return customers, nil
}

// readExcelRows returns the rows of the first sheet of an Excel workbook
func readExcelRows(filePath string) ([][]string, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in %s", filePath)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

// readCSVRows returns all records of a CSV file, tolerating a UTF-8 BOM
// and rows of varying length
func readCSVRows(filePath string) ([][]string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		rows = append(rows, record)
	}

	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}

// parseRows converts raw rows into customers
func parseRows(source string, rows [][]string) ([]domain.Customer, error) {
	customers := make([]domain.Customer, 0, len(rows))
	seenData := false

	for i, row := range rows {
		if isBlankRow(row) {
			continue
		}
		if !seenData {
			seenData = true
			if isHeaderRow(row) {
				continue
			}
		}

		name := strings.TrimSpace(row[0])
		if name == "" {
			return nil, &RowError{Source: source, Row: i + 1, Reason: "missing customer name"}
		}

		contact := ""
		if len(row) > 1 {
			contact = strings.TrimSpace(row[1])
		}

		customers = append(customers, domain.NewCustomer(name, contact))
	}

	return customers, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// contactHeaderLabels are words that mark the second cell of a header row
var contactHeaderLabels = []string{"contact", "phone", "mobile", "number"}

func isHeaderRow(row []string) bool {
	if len(row) < 2 || !strings.EqualFold(strings.TrimSpace(row[0]), "name") {
		return false
	}

	label := strings.ToLower(strings.TrimSpace(row[1]))
	for _, word := range contactHeaderLabels {
		if strings.Contains(label, word) {
			return true
		}
	}
	return false
}
