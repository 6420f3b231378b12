package dataprocessing

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"custexport/pkg/contracts/domain"
)

func TestLoadAll_PreservesArgumentOrder(t *testing.T) {
	dir := t.TempDir()

	var paths []string
	var expected []domain.Customer
	for i := 0; i < 8; i++ {
		name := fmt.Sprintf("customer-%d", i)
		paths = append(paths, writeCSV(t, dir, fmt.Sprintf("part%d.csv", i), name+",1\n"+name+"-b,2\n"))
		expected = append(expected, domain.NewCustomer(name, "1"), domain.NewCustomer(name+"-b", "2"))
	}

	customers, err := LoadAll(context.Background(), paths)
	require.NoError(t, err)
	assert.Equal(t, expected, customers)
}

func TestLoadAll_MixedFormats(t *testing.T) {
	dir := t.TempDir()
	xlsx := writeWorkbook(t, dir, "a.xlsx", [][]interface{}{{"Alice", "1"}})
	csvPath := writeCSV(t, dir, "b.csv", "Bob,2\nAlice,3\n")

	customers, err := LoadAll(context.Background(), []string{csvPath, xlsx})
	require.NoError(t, err)

	assert.Equal(t, []domain.Customer{
		domain.NewCustomer("Bob", "2"),
		domain.NewCustomer("Alice", "3"),
		domain.NewCustomer("Alice", "1"),
	}, customers)
}

func TestLoadAll_Error(t *testing.T) {
	dir := t.TempDir()
	good := writeCSV(t, dir, "good.csv", "Alice,1\n")
	missing := filepath.Join(dir, "missing.csv")

	customers, err := LoadAll(context.Background(), []string{good, missing})
	require.Error(t, err)
	assert.Nil(t, customers)
	assert.Contains(t, err.Error(), "failed to load "+missing)
}

func TestLoadAll_Empty(t *testing.T) {
	customers, err := LoadAll(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, customers)
	assert.Empty(t, customers)
}
