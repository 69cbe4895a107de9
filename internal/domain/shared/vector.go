package shared

import "math"

// Vec2 is a 2D position, velocity or direction in battle space
type Vec2 struct{ X, Y float64 }

func (a Vec2) Add(b Vec2) Vec2      { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2      { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Dot(b Vec2) float64   { return a.X*b.X + a.Y*b.Y }
func (a Vec2) Len() float64         { return math.Hypot(a.X, a.Y) }
func (a Vec2) Scale(s float64) Vec2 { return Vec2{a.X * s, a.Y * s} }

// DistanceTo returns the euclidean distance between two points
func (a Vec2) DistanceTo(b Vec2) float64 {
	return b.Sub(a).Len()
}

// BearingTo returns the absolute bearing from a to b in degrees, [0, 360).
// 0 degrees points along +X, angles grow counter-clockwise.
func (a Vec2) BearingTo(b Vec2) float64 {
	d := b.Sub(a)
	return NormalizeDegrees(math.Atan2(d.Y, d.X) * 180 / math.Pi)
}

// FromHeading returns the unit vector for a heading in degrees
func FromHeading(degrees float64) Vec2 {
	rad := degrees * math.Pi / 180
	return Vec2{math.Cos(rad), math.Sin(rad)}
}

// NormalizeDegrees wraps an angle into [0, 360)
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// AngleDelta returns the signed smallest rotation from one heading to another, in (-180, 180]
func AngleDelta(from, to float64) float64 {
	d := NormalizeDegrees(to - from)
	if d > 180 {
		d -= 360
	}
	return d
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
