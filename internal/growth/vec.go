package growth

import "math"

// Vec3 is a world-space coordinate. Y is the vertical axis; growth happens in
// the X/Z plane.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v+o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v-o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// DistanceSq returns the squared Euclidean distance between v and o.
func (v Vec3) DistanceSq(o Vec3) float64 {
	dx, dy, dz := v.X-o.X, v.Y-o.Y, v.Z-o.Z
	return dx*dx + dy*dy + dz*dz
}

// Distance returns the Euclidean distance between v and o.
func (v Vec3) Distance(o Vec3) float64 { return math.Sqrt(v.DistanceSq(o)) }
