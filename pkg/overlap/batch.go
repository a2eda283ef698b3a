package overlap

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Outcome is the result of one query in a batch. Validation failures stay in
// Err and do not stop the batch.
type Outcome struct {
	Index  int
	Result Result
	Err    error
}

// EvaluateBatch answers queries on at most workers goroutines (unbounded when
// workers <= 0). Outcomes are in input order. It fails only when ctx is done.
func EvaluateBatch(ctx context.Context, e Evaluator, queries []Query, workers int) ([]Outcome, error) {
	outcomes := make([]Outcome, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, q := range queries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := e.Evaluate(q)
			outcomes[i] = Outcome{Index: i, Result: res, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}
