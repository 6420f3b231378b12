package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// inputExtensions lists the customer file types that can be loaded
var inputExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
}

// IsInputFile reports whether name has a loadable customer file extension
func IsInputFile(name string) bool {
	return inputExtensions[strings.ToLower(filepath.Ext(name))]
}

// ResolveInputs expands the given paths into a list of input files.
// Files are kept in argument order; a directory contributes its CSV and
// Excel files sorted by name. Subdirectories are not searched.
func ResolveInputs(paths []string) ([]string, error) {
	var inputs []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat input %s: %w", path, err)
		}

		if !info.IsDir() {
			inputs = append(inputs, path)
			continue
		}

		found, err := findInputFiles(path)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, found...)
	}

	return inputs, nil
}

// findInputFiles lists the input files directly inside dir
func findInputFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !IsInputFile(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}

	sort.Strings(files)
	return files, nil
}
