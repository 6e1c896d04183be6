package optics

import (
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"
)

// ErrZeroVectorAngle is returned by AngleWith when either operand has zero
// magnitude, since the angle is ill-defined.
var ErrZeroVectorAngle = errors.New("angle with a zero vector is undefined")

// Point is a location in 3D space. It is a plain value type with no identity
// beyond coordinate equality.
type Point struct {
	X, Y, Z float64
}

// P is a shorthand constructor for Point
func P(x, y, z float64) Point {
	return Point{X: x, Y: y, Z: z}
}

// Add returns the point displaced by v.
func (p Point) Add(v Vector) Point {
	return Point{p.X + v.X, p.Y + v.Y, p.Z + v.Z}
}

// Sub returns the vector pointing from q to p.
func (p Point) Sub(q Point) Vector {
	return NewVector(p.X-q.X, p.Y-q.Y, p.Z-q.Z)
}

// DistanceTo returns the Euclidean distance between p and q.
func (p Point) DistanceTo(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	dz := p.Z - q.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func (p Point) String() string {
	return fmt.Sprintf("Point(%g, %g, %g)", p.X, p.Y, p.Z)
}

// Vector is a direction in 3D space with a magnitude cached at construction.
// Vectors are immutable values; every operation returns a new Vector.
type Vector struct {
	X, Y, Z float64

	module float64
}

// NewVector builds a Vector and caches its magnitude.
func NewVector(x, y, z float64) Vector {
	return Vector{X: x, Y: y, Z: z, module: math.Sqrt(x*x + y*y + z*z)}
}

// Module returns the cached magnitude of the vector.
func (v Vector) Module() float64 {
	return v.module
}

// Normalize returns the unit vector with v's direction. Normalizing a zero
// vector logs a warning and returns the vector unchanged; it never divides
// by zero.
func (v Vector) Normalize() Vector {
	if v.module == 0 {
		log.Printf("optics: cannot normalize a zero vector; vector unchanged")
		return v
	}
	return NewVector(v.X/v.module, v.Y/v.module, v.Z/v.module)
}

// Dot returns the dot product of v and o.
func (v Vector) Dot(o Vector) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product of v and o.
func (v Vector) Cross(o Vector) Vector {
	return NewVector(
		v.Y*o.Z-v.Z*o.Y,
		v.Z*o.X-v.X*o.Z,
		v.X*o.Y-v.Y*o.X,
	)
}

// Scale returns v scaled by s.
func (v Vector) Scale(s float64) Vector {
	return NewVector(v.X*s, v.Y*s, v.Z*s)
}

// Add returns the sum of v and o.
func (v Vector) Add(o Vector) Vector {
	return NewVector(v.X+o.X, v.Y+o.Y, v.Z+o.Z)
}

// Invert returns the vector pointing the opposite way.
func (v Vector) Invert() Vector {
	return NewVector(-v.X, -v.Y, -v.Z)
}

// AngleWith returns the angle in radians between v and o.
func (v Vector) AngleWith(o Vector) (float64, error) {
	mm := v.module * o.module
	if mm == 0 {
		return 0, ErrZeroVectorAngle
	}
	c := v.Dot(o) / mm
	// Clamp against floating error pushing the ratio past ±1.
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return math.Acos(c), nil
}

func (v Vector) String() string {
	return fmt.Sprintf("Vector(%g, %g, %g, module=%g)", v.X, v.Y, v.Z, v.module)
}

// RandomUnitVector samples a direction on the unit sphere with
// θ ~ U(0,2π), φ ~ U(0,π). The distribution is biased toward the poles;
// this sampling law is load-bearing for cone emission and must not be
// swapped for an area-uniform sampler.
func RandomUnitVector(rng *rand.Rand) Vector {
	theta := rng.Float64() * 2 * math.Pi
	phi := rng.Float64() * math.Pi
	return NewVector(
		math.Sin(phi)*math.Cos(theta),
		math.Sin(phi)*math.Sin(theta),
		math.Cos(phi),
	)
}
