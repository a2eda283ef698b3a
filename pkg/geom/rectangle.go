package geom

import (
	"fmt"
	"math"
)

// Quad is the ordered corner sequence of a rectangle.
type Quad [4]Vector2D

func (q Quad) Center() Vector2D {
	var sum Vector2D
	for _, v := range q {
		sum = sum.Add(v)
	}
	return sum.Scale(1.0 / float64(len(q)))
}

// Project returns the extent of q along axis.
func (q Quad) Project(axis Vector2D) (float64, float64) {
	min := math.Inf(1)
	max := math.Inf(-1)

	for _, v := range q {
		dot := v.Dot(axis)
		min = math.Min(min, dot)
		max = math.Max(max, dot)
	}
	return min, max
}

// MaxCoordinate bounds the corners of a valid rectangle, leaving headroom
// for the projections of the overlap test.
const MaxCoordinate = math.MaxFloat64 / 4

// Rectangle is an oriented rectangle. Rotation is in degrees, counter-clockwise
// about Center.
type Rectangle struct {
	Center   Vector2D `json:"center"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	Rotation float64  `json:"rotation"`
}

// NewRectangle validates its inputs and returns the rectangle. Zero width or
// height is allowed and yields a segment or a point.
func NewRectangle(center Vector2D, width, height, rotation float64) (Rectangle, error) {
	r := Rectangle{
		Center:   center,
		Width:    width,
		Height:   height,
		Rotation: rotation,
	}
	if err := r.Validate(); err != nil {
		return Rectangle{}, err
	}
	return r, nil
}

func (r Rectangle) Validate() error {
	if !r.Center.IsFinite() {
		return fmt.Errorf("%w: center (%v, %v) is not finite", ErrInvalidCenter, r.Center.X, r.Center.Y)
	}
	if !isFinite(r.Width) || r.Width < 0 {
		return fmt.Errorf("%w: width %v", ErrInvalidDimension, r.Width)
	}
	if !isFinite(r.Height) || r.Height < 0 {
		return fmt.Errorf("%w: height %v", ErrInvalidDimension, r.Height)
	}
	if !isFinite(r.Rotation) {
		return fmt.Errorf("%w: %v degrees", ErrInvalidRotation, r.Rotation)
	}

	radius := r.BoundingRadius()
	if radius > MaxCoordinate {
		return fmt.Errorf("%w: %v x %v exceeds %v", ErrInvalidDimension, r.Width, r.Height, MaxCoordinate)
	}
	if math.Abs(r.Center.X)+radius > MaxCoordinate || math.Abs(r.Center.Y)+radius > MaxCoordinate {
		return fmt.Errorf("%w: corners around (%v, %v) exceed %v", ErrInvalidCenter, r.Center.X, r.Center.Y, MaxCoordinate)
	}
	return nil
}

func (r Rectangle) movedTo(center Vector2D) Rectangle {
	r.Center = center
	return r
}

// Corners returns the four vertices counter-clockwise, starting from the
// rotated bottom-left corner.
func (r Rectangle) Corners() Quad {
	sin, cos := sincosDegrees(r.Rotation)
	dw := r.Width / 2
	dh := r.Height / 2

	offsets := Quad{
		{-dw, -dh},
		{dw, -dh},
		{dw, dh},
		{-dw, dh},
	}

	var corners Quad
	for i, o := range offsets {
		corners[i] = o.rotate(sin, cos).Add(r.Center)
	}
	return corners
}

// Axes returns the unit normals of edges 0-1 and 1-2. They come from the
// orientation rather than the corners, so zero-size rectangles still have two.
func (r Rectangle) Axes() [2]Vector2D {
	sin, cos := sincosDegrees(r.Rotation)
	edge := Vector2D{cos, sin}
	return [2]Vector2D{edge.Perpendicular(), edge}
}

// BoundingRadius is half the diagonal.
func (r Rectangle) BoundingRadius() float64 {
	return math.Hypot(r.Width, r.Height) / 2
}

// Corners validates the parameters and returns the rectangle's vertices.
func Corners(center Vector2D, width, height, rotation float64) (Quad, error) {
	r, err := NewRectangle(center, width, height, rotation)
	if err != nil {
		return Quad{}, err
	}
	return r.Corners(), nil
}
