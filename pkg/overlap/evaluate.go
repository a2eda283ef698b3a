package overlap

import (
	"github.com/QYUbit/rectoverlap/pkg/geom"
	"github.com/google/uuid"
)

type Verdict string

const (
	VerdictOverlap   Verdict = "overlap"
	VerdictSeparated Verdict = "separated"
)

func verdictOf(overlaps bool) Verdict {
	if overlaps {
		return VerdictOverlap
	}
	return VerdictSeparated
}

// Result is the answer to one Query. SeparatingAxis is set only when the
// rectangles are separated.
type Result struct {
	ID             string         `json:"id,omitempty" jsonschema:"description=request identifier"`
	Query          Query          `json:"query"`
	Overlaps       bool           `json:"overlaps"`
	Verdict        Verdict        `json:"verdict" jsonschema:"enum=overlap,enum=separated"`
	Rect1          geom.Quad      `json:"rect1" jsonschema:"description=corners of rectangle 1 counter-clockwise"`
	Rect2          geom.Quad      `json:"rect2" jsonschema:"description=corners of rectangle 2 counter-clockwise"`
	SeparatingAxis *geom.Vector2D `json:"separatingAxis,omitempty" jsonschema:"description=unit axis on which the projections are disjoint"`
}

// Evaluator answers queries with a fixed tolerance. IDs, when set, stamps
// each Result.
type Evaluator struct {
	Tester geom.Tester
	IDs    func() string
}

// NewEvaluator returns an Evaluator tagging results with random UUIDs.
func NewEvaluator(epsilon float64) Evaluator {
	return Evaluator{
		Tester: geom.NewTester(epsilon),
		IDs:    uuid.NewString,
	}
}

// Evaluate answers q with the default tolerance and no ID.
func Evaluate(q Query) (Result, error) {
	return Evaluator{Tester: geom.NewTester(geom.Epsilon)}.Evaluate(q)
}

func (e Evaluator) Evaluate(q Query) (Result, error) {
	rect1, rect2, err := q.Rectangles()
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Query: q,
		Rect1: rect1.Corners(),
		Rect2: rect2.Corners(),
	}
	if e.IDs != nil {
		res.ID = e.IDs()
	}

	if axis, separated := e.Tester.SeparatingAxis(rect1, rect2); separated {
		res.SeparatingAxis = &axis
	}
	res.Overlaps = res.SeparatingAxis == nil
	res.Verdict = verdictOf(res.Overlaps)

	return res, nil
}
