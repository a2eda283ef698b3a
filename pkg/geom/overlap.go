package geom

import "math"

// Epsilon is the default relative tolerance of the overlap test.
const Epsilon = 1e-9

// Tester runs the separating axis test. Both rectangles are projected
// relative to the midpoint of their centers, so the verdict does not depend
// on where the pair sits in the plane. Projected intervals count as
// overlapping only when they share more than Epsilon*scale, where scale is
// the largest of those local projections. Touching is therefore separated.
// The zero value compares exactly.
type Tester struct {
	Epsilon float64
}

func NewTester(epsilon float64) Tester {
	if epsilon < 0 || math.IsNaN(epsilon) {
		epsilon = 0
	}
	return Tester{Epsilon: epsilon}
}

// Overlaps reports whether a and b share interior area, using Epsilon.
func Overlaps(a, b Rectangle) bool {
	return Tester{Epsilon: Epsilon}.Overlaps(a, b)
}

// SeparatingAxis returns the first axis that separates a and b, using Epsilon.
func SeparatingAxis(a, b Rectangle) (Vector2D, bool) {
	return Tester{Epsilon: Epsilon}.SeparatingAxis(a, b)
}

func (t Tester) Overlaps(a, b Rectangle) bool {
	_, separated := t.SeparatingAxis(a, b)
	return !separated
}

// SeparatingAxis tests the two edge normals of a, then those of b, and stops
// at the first axis on which the projections are disjoint.
func (t Tester) SeparatingAxis(a, b Rectangle) (Vector2D, bool) {
	// Offset of each center from the midpoint; zero for a shared center.
	half := b.Center.Scale(0.5).Sub(a.Center.Scale(0.5))
	ca := a.movedTo(half.Scale(-1)).Corners()
	cb := b.movedTo(half).Corners()

	for _, r := range [2]Rectangle{a, b} {
		for _, axis := range r.Axes() {
			min1, max1 := ca.Project(axis)
			min2, max2 := cb.Project(axis)

			if !t.overlaps(min1, max1, min2, max2) {
				return axis, true
			}
		}
	}
	return Vector2D{}, false
}

func (t Tester) overlaps(min1, max1, min2, max2 float64) bool {
	tol := t.tolerance(min1, max1, min2, max2)
	return max1-min2 > tol && max2-min1 > tol
}

func (t Tester) tolerance(values ...float64) float64 {
	if t.Epsilon <= 0 {
		return 0
	}
	scale := 0.0
	for _, v := range values {
		scale = math.Max(scale, math.Abs(v))
	}
	return t.Epsilon * scale
}
