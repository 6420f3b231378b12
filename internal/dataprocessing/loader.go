package dataprocessing

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"custexport/pkg/contracts/domain"
)

// LoadAll parses the given files concurrently and returns their customers
// concatenated in the order the files were given. The first failure
// cancels the remaining parses.
func LoadAll(ctx context.Context, paths []string) ([]domain.Customer, error) {
	results := make([][]domain.Customer, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			customers, err := ParseFile(path)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", path, err)
			}
			results[i] = customers
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, customers := range results {
		total += len(customers)
	}

	all := make([]domain.Customer, 0, total)
	for _, customers := range results {
		all = append(all, customers...)
	}
	return all, nil
}
