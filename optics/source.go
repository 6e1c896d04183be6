package optics

import (
	"math"
	"math/rand"
)

// EmissionMode selects where a RaySource's rays originate.
type EmissionMode int

const (
	// EmitPoint emits every ray from the source's reference point.
	EmitPoint EmissionMode = iota
	// EmitRectangle emits rays from points sampled uniformly inside the
	// source's rectangle.
	EmitRectangle
)

// RaySource stochastically emits rays with a direction sampled within a
// cone around its normal and a wavelength sampled uniformly within a band.
//
// The source owns a zero-face mesh used purely to carry a reference point
// and name when no geometric emitting surface exists, so scene bookkeeping
// can treat sources like any other placed object.
type RaySource struct {
	Normal        Vector
	Aperture      float64 // cone half-angle in radians; 0 = collimated
	MinWavelength float64 // nm
	MaxWavelength float64 // nm
	Rectangle     *Rectangle
	Mode          EmissionMode
	Intensity     float64
	Name          string

	placeholder *Mesh
	rng         *rand.Rand
}

// NewRaySource builds a source. The aperture is given in degrees. When rect
// is nil the source always emits from reference regardless of mode. The rng
// drives all sampling; pass a seeded one for reproducible runs.
func NewRaySource(reference Point, normal Vector, apertureDegrees, minWavelength, maxWavelength float64, rect *Rectangle, mode EmissionMode, intensity float64, name string, rng *rand.Rand) *RaySource {
	if rect == nil {
		mode = EmitPoint
	}
	placeholder := NewMesh(name)
	if mode == EmitRectangle {
		placeholder.AddRectangle(*rect)
	}
	placeholder.Reference = reference
	return &RaySource{
		Normal:        normal,
		Aperture:      apertureDegrees * math.Pi / 180,
		MinWavelength: minWavelength,
		MaxWavelength: maxWavelength,
		Rectangle:     rect,
		Mode:          mode,
		Intensity:     intensity,
		Name:          name,
		placeholder:   placeholder,
		rng:           rng,
	}
}

// Reference returns the source's reference point.
func (s *RaySource) Reference() Point {
	return s.placeholder.Reference
}

// Mesh returns the source's associated placeholder mesh.
func (s *RaySource) Mesh() *Mesh {
	return s.placeholder
}

// NextRay emits the next ray: wavelength uniform in the band, direction
// sampled within the cone, origin at the reference point or inside the
// rectangle depending on mode.
func (s *RaySource) NextRay() *Ray {
	wavelength := s.MinWavelength + s.rng.Float64()*(s.MaxWavelength-s.MinWavelength)
	direction := s.randomVectorInCone()

	var origin Point
	switch s.Mode {
	case EmitRectangle:
		origin = s.Rectangle.RandomPointInside(s.rng)
	default:
		origin = s.Reference()
	}
	return NewRay(origin, direction, wavelength, s.Intensity, Vacuum())
}

// randomVectorInCone rejection-samples unit directions until one falls
// within the aperture around the normal. The accepted vector is returned
// as sampled, without renormalization. A zero aperture returns the
// configured normal unchanged.
func (s *RaySource) randomVectorInCone() Vector {
	if s.Aperture == 0 {
		return s.Normal
	}
	for {
		v := RandomUnitVector(s.rng)
		angle, err := v.AngleWith(s.Normal)
		if err != nil {
			// Zero normal: nothing to aim at, fall back to the sample.
			return v
		}
		if angle <= s.Aperture {
			return v
		}
	}
}
