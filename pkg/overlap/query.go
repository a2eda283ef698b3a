// Package overlap evaluates overlap queries for pairs of oriented rectangles
// and renders the results for the legacy text harness.
package overlap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/QYUbit/rectoverlap/pkg/geom"
)

// ParamNames lists the positional parameters in argument order.
var ParamNames = [10]string{"x1", "y1", "w1", "h1", "r1", "x2", "y2", "w2", "h2", "r2"}

// Query holds the ten scalars describing two rectangles. Rotations are in
// degrees.
type Query struct {
	X1 float64 `json:"x1" jsonschema:"description=center x of rectangle 1"`
	Y1 float64 `json:"y1" jsonschema:"description=center y of rectangle 1"`
	W1 float64 `json:"w1" jsonschema:"description=width of rectangle 1,minimum=0"`
	H1 float64 `json:"h1" jsonschema:"description=height of rectangle 1,minimum=0"`
	R1 float64 `json:"r1" jsonschema:"description=rotation of rectangle 1 in degrees"`
	X2 float64 `json:"x2" jsonschema:"description=center x of rectangle 2"`
	Y2 float64 `json:"y2" jsonschema:"description=center y of rectangle 2"`
	W2 float64 `json:"w2" jsonschema:"description=width of rectangle 2,minimum=0"`
	H2 float64 `json:"h2" jsonschema:"description=height of rectangle 2,minimum=0"`
	R2 float64 `json:"r2" jsonschema:"description=rotation of rectangle 2 in degrees"`
}

// NewQuery packs a vector in ParamNames order.
func NewQuery(v [10]float64) Query {
	return Query{
		X1: v[0], Y1: v[1], W1: v[2], H1: v[3], R1: v[4],
		X2: v[5], Y2: v[6], W2: v[7], H2: v[8], R2: v[9],
	}
}

func (q Query) Values() [10]float64 {
	return [10]float64{q.X1, q.Y1, q.W1, q.H1, q.R1, q.X2, q.Y2, q.W2, q.H2, q.R2}
}

// Args formats q as command line arguments.
func (q Query) Args() []string {
	values := q.Values()
	args := make([]string, len(values))
	for i, v := range values {
		args[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return args
}

// ParseArgs parses exactly ten numeric arguments.
func ParseArgs(args []string) (Query, error) {
	if len(args) != len(ParamNames) {
		return Query{}, fmt.Errorf("%w: expected %d parameters, got %d", ErrMalformedInput, len(ParamNames), len(args))
	}

	var v [10]float64
	for i, arg := range args {
		f, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
		if err != nil {
			return Query{}, fmt.Errorf("%w: parameter %s (%q) is not a number", ErrMalformedInput, ParamNames[i], arg)
		}
		v[i] = f
	}
	return NewQuery(v), nil
}

// Rectangles validates and builds both rectangles.
func (q Query) Rectangles() (geom.Rectangle, geom.Rectangle, error) {
	rect1, err := geom.NewRectangle(geom.NewVector2D(q.X1, q.Y1), q.W1, q.H1, q.R1)
	if err != nil {
		return geom.Rectangle{}, geom.Rectangle{}, fmt.Errorf("rect1: %w", err)
	}
	rect2, err := geom.NewRectangle(geom.NewVector2D(q.X2, q.Y2), q.W2, q.H2, q.R2)
	if err != nil {
		return geom.Rectangle{}, geom.Rectangle{}, fmt.Errorf("rect2: %w", err)
	}
	return rect1, rect2, nil
}
