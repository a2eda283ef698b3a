package overlap

import (
	"context"
	"errors"
	"testing"

	"github.com/QYUbit/rectoverlap/pkg/geom"
)

func TestEvaluateBatch(t *testing.T) {
	queries := []Query{
		NewQuery([10]float64{4, 4, 4, 4, 0, 7, 4, 4, 4, 0}),
		NewQuery([10]float64{1, 1, 1, 1, 0, 5, 5, 1, 1, 0}),
		NewQuery([10]float64{1, 1, -1, 1, 0, 5, 5, 1, 1, 0}),
		NewQuery([10]float64{5, 5, 2, 2, 0, 5, 5, 4, 4, 0}),
	}

	for _, workers := range []int{0, 1, 3} {
		outcomes, err := EvaluateBatch(context.Background(), Evaluator{Tester: geom.NewTester(geom.Epsilon)}, queries, workers)
		if err != nil {
			t.Fatal(err)
		}
		if len(outcomes) != len(queries) {
			t.Fatalf("Expected %d outcomes, got %d", len(queries), len(outcomes))
		}

		for i, o := range outcomes {
			if o.Index != i {
				t.Errorf("Outcome %d has index %d", i, o.Index)
			}
		}
		if outcomes[0].Err != nil || !outcomes[0].Result.Overlaps {
			t.Errorf("Expected overlap for outcome 0, got %+v", outcomes[0])
		}
		if outcomes[1].Err != nil || outcomes[1].Result.Overlaps {
			t.Errorf("Expected separation for outcome 1, got %+v", outcomes[1])
		}
		if !errors.Is(outcomes[2].Err, geom.ErrInvalidDimension) {
			t.Errorf("Expected ErrInvalidDimension for outcome 2, got %v", outcomes[2].Err)
		}
		if outcomes[3].Err != nil || !outcomes[3].Result.Overlaps {
			t.Errorf("Expected overlap for outcome 3, got %+v", outcomes[3])
		}
	}
}

func TestEvaluateBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	queries := []Query{NewQuery([10]float64{0, 0, 1, 1, 0, 0, 0, 1, 1, 0})}
	if _, err := EvaluateBatch(ctx, Evaluator{}, queries, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
