// Package physics provides collision detection and distance utilities.
package physics

import "math"

// Vec2 is a 2D vector in world units.
type Vec2 struct {
	X, Y float64
}

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// PointInCircle checks if a point is within radius of a target position.
func PointInCircle(px, py, cx, cy, radius float64) bool {
	return DistanceSquared(px, py, cx, cy) <= radius*radius
}

// AABBOverlap reports whether two axis-aligned boxes intersect.
// Positions are box centers and sizes are full widths and heights.
// Boxes that only touch along an edge do not overlap.
func AABBOverlap(aPos, aSize, bPos, bSize Vec2) bool {
	return math.Abs(aPos.X-bPos.X)*2 < aSize.X+bSize.X &&
		math.Abs(aPos.Y-bPos.Y)*2 < aSize.Y+bSize.Y
}

// Normalize returns (x, y) scaled to unit length, or (0, 0) for the zero vector.
func Normalize(x, y float64) (float64, float64) {
	l := math.Hypot(x, y)
	if l == 0 {
		return 0, 0
	}
	return x / l, y / l
}
