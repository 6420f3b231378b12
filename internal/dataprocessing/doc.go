// Package dataprocessing loads customer records from input files.
//
// ParseFile reads a single CSV or Excel (.xlsx) file. LoadAll reads several
// files in parallel and joins the results in argument order, so the
// exported order only depends on the order the files were named in.
//
// # Usage
//
//	customers, err := dataprocessing.LoadAll(ctx, []string{"jan.csv", "feb.xlsx"})
//	if err != nil {
//		return err
//	}
package dataprocessing
