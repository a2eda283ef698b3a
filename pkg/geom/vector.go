package geom

import (
	"fmt"
	"math"
)

// Vector2D is an immutable point or direction in the plane.
type Vector2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Point2D names a Vector2D used as a position.
type Point2D = Vector2D

func NewVector2D(x, y float64) Vector2D {
	return Vector2D{X: x, Y: y}
}

func (v Vector2D) Add(o Vector2D) Vector2D {
	return Vector2D{v.X + o.X, v.Y + o.Y}
}

func (v Vector2D) Sub(o Vector2D) Vector2D {
	return Vector2D{v.X - o.X, v.Y - o.Y}
}

func (v Vector2D) Dot(o Vector2D) float64 {
	return v.X*o.X + v.Y*o.Y
}

func (v Vector2D) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

func (v Vector2D) Distance(o Vector2D) float64 {
	return v.Sub(o).Length()
}

func (v Vector2D) Perpendicular() Vector2D {
	return Vector2D{-v.Y, v.X}
}

func (v Vector2D) Scale(s float64) Vector2D {
	return Vector2D{v.X * s, v.Y * s}
}

// Rotate turns v counter-clockwise about the origin by degrees.
func (v Vector2D) Rotate(degrees float64) Vector2D {
	sin, cos := sincosDegrees(degrees)
	return v.rotate(sin, cos)
}

func (v Vector2D) rotate(sin, cos float64) Vector2D {
	return Vector2D{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

func (v Vector2D) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y)
}

func (v Vector2D) String() string {
	return fmt.Sprintf("{%.2f, %.2f}", v.X, v.Y)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// sincosDegrees reduces deg modulo 360 and returns exact values on the
// quarter turns, where math.Sincos would leave residue such as 6e-17.
func sincosDegrees(deg float64) (sin, cos float64) {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	switch deg {
	case 0, 360:
		return 0, 1
	case 90:
		return 1, 0
	case 180:
		return 0, -1
	case 270:
		return -1, 0
	}
	return math.Sincos(deg * math.Pi / 180)
}
