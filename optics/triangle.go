package optics

import (
	"math/rand"
)

// mtEpsilon is the Möller–Trumbore rejection epsilon. Both the value and
// the order of the rejection tests in Intersect are load-bearing for
// numerical parity; do not reorder them.
const mtEpsilon = 1e-6

// Triangle is a planar polygon with three vertices and a unit normal
// computed once at construction from the cross product of its edges.
type Triangle struct {
	V1, V2, V3 Point
	Normal     Vector
}

// NewTriangle builds a triangle from three vertices.
func NewTriangle(v1, v2, v3 Point) Triangle {
	e1 := v2.Sub(v1)
	e2 := v3.Sub(v1)
	return Triangle{V1: v1, V2: v2, V3: v3, Normal: e1.Cross(e2).Normalize()}
}

// IsDegenerate reports whether any two vertices coincide.
func (t Triangle) IsDegenerate() bool {
	return t.V1 == t.V2 || t.V2 == t.V3 || t.V1 == t.V3
}

// Intersect runs the Möller–Trumbore ray/triangle test. The direction need
// not be normalized. It returns the hit point, or ok=false when the ray is
// parallel to the triangle's plane, misses the barycentric bounds, or would
// hit at or behind its origin. It never panics.
func (t Triangle) Intersect(origin Point, dir Vector) (Point, bool) {
	e1 := t.V2.Sub(t.V1)
	e2 := t.V3.Sub(t.V1)

	h := dir.Cross(e2)
	a := e1.Dot(h)
	if a > -mtEpsilon && a < mtEpsilon {
		return Point{}, false
	}

	f := 1.0 / a
	s := origin.Sub(t.V1)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return Point{}, false
	}

	q := s.Cross(e1)
	v := f * dir.Dot(q)
	if v < 0 || u+v > 1 {
		return Point{}, false
	}

	tt := f * e2.Dot(q)
	if tt <= mtEpsilon {
		return Point{}, false
	}
	return origin.Add(dir.Scale(tt)), true
}

// Area returns the triangle's surface area.
func (t Triangle) Area() float64 {
	e1 := t.V2.Sub(t.V1)
	e2 := t.V3.Sub(t.V1)
	return 0.5 * e1.Cross(e2).Module()
}

// Centroid returns the arithmetic mean of the vertices.
func (t Triangle) Centroid() Point {
	return Point{
		X: (t.V1.X + t.V2.X + t.V3.X) / 3,
		Y: (t.V1.Y + t.V2.Y + t.V3.Y) / 3,
		Z: (t.V1.Z + t.V2.Z + t.V3.Z) / 3,
	}
}

// RandomPointInside samples a point uniformly inside the triangle via
// barycentric coordinates. Samples past the r1+r2=1 diagonal are folded
// back rather than rejected, which is what keeps the point inside the
// triangle.
func (t Triangle) RandomPointInside(rng *rand.Rand) Point {
	r1 := rng.Float64()
	r2 := rng.Float64()
	if r1+r2 > 1 {
		r1, r2 = 1-r1, 1-r2
	}
	w := 1 - r1 - r2
	return Point{
		X: w*t.V1.X + r1*t.V2.X + r2*t.V3.X,
		Y: w*t.V1.Y + r1*t.V2.Y + r2*t.V3.Y,
		Z: w*t.V1.Z + r1*t.V2.Z + r2*t.V3.Z,
	}
}

// Rectangle is a planar quad decomposed at construction into two triangles
// sharing the diagonal between vertices 0 and 2. It is an input convenience
// for callers; meshes only ever store triangles.
type Rectangle struct {
	V1, V2, V3, V4 Point
	T1, T2         Triangle
	Normal         Vector
}

// NewRectangle builds a rectangle from four vertices in winding order.
func NewRectangle(v1, v2, v3, v4 Point) Rectangle {
	t1 := NewTriangle(v1, v2, v3)
	t2 := NewTriangle(v3, v4, v1)
	return Rectangle{V1: v1, V2: v2, V3: v3, V4: v4, T1: t1, T2: t2, Normal: t1.Normal}
}

// Centroid returns the mean of the four vertices.
func (r Rectangle) Centroid() Point {
	return Point{
		X: (r.V1.X + r.V2.X + r.V3.X + r.V4.X) / 4,
		Y: (r.V1.Y + r.V2.Y + r.V3.Y + r.V4.Y) / 4,
		Z: (r.V1.Z + r.V2.Z + r.V3.Z + r.V4.Z) / 4,
	}
}

// RandomPointInside samples a point uniformly inside the rectangle: one of
// the two triangles is chosen with probability 0.5, then sampled.
func (r Rectangle) RandomPointInside(rng *rand.Rand) Point {
	if rng.Float64() < 0.5 {
		return r.T1.RandomPointInside(rng)
	}
	return r.T2.RandomPointInside(rng)
}
