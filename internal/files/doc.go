// Package files provides the file system side of the customer exporter.
//
// LineFileWriter: the line sink used by the exporter. It appends lines to
// named files under an output directory, keeping each file open until
// Close. Target names must stay inside the output directory.
//
// ResolveInputs: expands command line arguments into the list of customer
// files to load, walking directories one level deep.
//
// Example usage:
//
//	lines := files.NewLineFileWriter("/path/to/output", files.LineFileOptions{Truncate: true})
//	defer lines.Close()
//
//	if err := lines.WriteLine("customers.csv", "Peter Wiles,12345697123"); err != nil {
//		return err
//	}
package files
