package vmath

import (
	"math"
)

// Vec2 is a float64 2D vector
// World units are unscaled; one tick of velocity is one tick of displacement
type Vec2 struct {
	X, Y float64
}

func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func V2Add(a, b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

func V2Sub(a, b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

func V2Scale(v Vec2, s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// V2Div divides by scalar, zero-safe (returns zero vector for s == 0)
func V2Div(v Vec2, s float64) Vec2 {
	if s == 0 {
		return Vec2{}
	}
	inv := 1.0 / s
	return Vec2{v.X * inv, v.Y * inv}
}

func V2Neg(v Vec2) Vec2 {
	return Vec2{-v.X, -v.Y}
}

// V2Dot returns x1*x2 + y1*y2
func V2Dot(a, b Vec2) float64 {
	return a.X*b.X + a.Y*b.Y
}

// V2MagSq returns squared magnitude without sqrt
// Prefer for comparisons on hot paths
func V2MagSq(v Vec2) float64 {
	return v.X*v.X + v.Y*v.Y
}

func V2Mag(v Vec2) float64 {
	return math.Sqrt(V2MagSq(v))
}

// V2Normalize returns unit vector, zero-safe
// Callers that need to distinguish a zero input check V2IsZero first
func V2Normalize(v Vec2) Vec2 {
	mag := V2Mag(v)
	if mag == 0 {
		return Vec2{}
	}
	inv := 1.0 / mag
	return Vec2{v.X * inv, v.Y * inv}
}

func V2DistanceSq(a, b Vec2) float64 {
	return V2MagSq(V2Sub(b, a))
}

func V2Distance(a, b Vec2) float64 {
	return V2Mag(V2Sub(b, a))
}

// V2Perpendicular returns vector rotated 90° counter-clockwise
func V2Perpendicular(v Vec2) Vec2 {
	return Vec2{-v.Y, v.X}
}

func V2IsZero(v Vec2) bool {
	return v.X == 0 && v.Y == 0
}

// V2IsFinite reports whether neither component is NaN or ±Inf
func V2IsFinite(v Vec2) bool {
	return IsFinite(v.X) && IsFinite(v.Y)
}

// V2ApproxEqual compares component-wise within epsilon
func V2ApproxEqual(a, b Vec2, epsilon float64) bool {
	return math.Abs(a.X-b.X) <= epsilon && math.Abs(a.Y-b.Y) <= epsilon
}

func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
