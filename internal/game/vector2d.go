package game

import "math"

// Vec2 is a 2D vector in table-space coordinates. Value type, freely copied.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Plus(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Minus(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Times(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

func (v Vec2) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

func (v Vec2) MagnitudeSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns v scaled to unit length. The zero vector normalizes to
// the zero vector; operations that need a real direction must reject zero
// input before calling this.
func (v Vec2) Normalize() Vec2 {
	m := v.Magnitude()
	if m == 0 {
		return Vec2{}
	}
	return v.Times(1.0 / m)
}

// ProjectOnto returns the component of v along o. Returns the zero vector
// when o is zero.
func (v Vec2) ProjectOnto(o Vec2) Vec2 {
	m := o.Magnitude()
	if m == 0 {
		return Vec2{}
	}
	return o.Normalize().Times(v.Dot(o) / m)
}

func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Distance returns the Euclidean distance between two points.
func Distance(p, q Vec2) float64 {
	return p.Minus(q).Magnitude()
}
