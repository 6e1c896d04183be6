package optics

import (
	"fmt"
	"image/color"
	"math"
)

// Ray is a traveling light element. It is created by a RaySource or spawned
// by the propagation engine, terminated exactly once, and immutable
// thereafter.
//
// The direction need not be pre-normalized by the caller, but propagation
// assumes it approximates unit length for the Fresnel angle math.
type Ray struct {
	Origin     Point
	Direction  Vector
	Wavelength float64 // nanometers, expected in [380, 750]
	Intensity  float64 // [0, 1]
	Medium     Material

	terminal   Point
	terminated bool
}

// NewRay builds an unterminated ray traveling through the given medium.
func NewRay(origin Point, direction Vector, wavelength, intensity float64, medium Material) *Ray {
	return &Ray{
		Origin:     origin,
		Direction:  direction,
		Wavelength: wavelength,
		Intensity:  intensity,
		Medium:     medium,
	}
}

// Terminal returns the terminal point, if the ray has been terminated.
func (r *Ray) Terminal() (Point, bool) {
	return r.terminal, r.terminated
}

// Terminate fixes the ray's terminal point and applies Beer-Lambert
// attenuation for the distance traveled through the current medium. A ray
// is terminated at most once; a second call is an error.
//
// Scene coordinates are interpreted as millimeters when converting the
// medium's extinction coefficient into an attenuation rate.
func (r *Ray) Terminate(p Point) error {
	if r.terminated {
		return fmt.Errorf("%w: terminal already at %v", ErrRayTerminated, r.terminal)
	}
	r.terminal = p
	r.terminated = true
	r.Intensity *= beerLambert(r.Medium, r.Wavelength, r.Origin.DistanceTo(p))
	return nil
}

// beerLambert returns the transmitted fraction over a path of the given
// length (millimeters) through the medium: exp(-4πκd/λ) with λ in the same
// length unit as d.
func beerLambert(medium Material, wavelength, distance float64) float64 {
	kappa := imag(medium.RefractiveIndex(wavelength))
	if kappa == 0 {
		return 1
	}
	lambdaMM := wavelength * 1e-6 // nm -> mm
	return math.Exp(-4 * math.Pi * kappa * distance / lambdaMM)
}

// Color approximates the ray's display color from its wavelength using the
// CIE 1931 band approximation, with alpha carrying the ray's intensity.
// Wavelengths outside [380, 750] nm come out black.
func (r *Ray) Color() color.NRGBA {
	gamma := 0.8
	var red, green, blue float64
	w := r.Wavelength

	switch {
	case w >= 380 && w < 440:
		red = -(w - 440) / (440 - 380)
		blue = 1.0
	case w >= 440 && w < 490:
		green = (w - 440) / (490 - 440)
		blue = 1.0
	case w >= 490 && w < 510:
		green = 1.0
		blue = -(w - 510) / (510 - 490)
	case w >= 510 && w < 580:
		red = (w - 510) / (580 - 510)
		green = 1.0
	case w >= 580 && w < 645:
		red = 1.0
		green = -(w - 645) / (645 - 580)
	case w >= 645 && w <= 750:
		red = 1.0
	}

	var factor float64
	switch {
	case w >= 380 && w < 420:
		factor = 0.3 + 0.7*(w-380)/(420-380)
	case w >= 420 && w < 645:
		factor = 1.0
	case w >= 645 && w <= 750:
		factor = 0.3 + 0.7*(750-w)/(750-645)
	}

	channel := func(c float64) uint8 {
		return uint8(255 * math.Pow(c*factor, gamma))
	}
	alpha := r.Intensity
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	return color.NRGBA{R: channel(red), G: channel(green), B: channel(blue), A: uint8(255 * alpha)}
}

func (r *Ray) String() string {
	return fmt.Sprintf("Ray(origin=%v, direction=(%g, %g, %g), wavelength=%gnm, intensity=%g)",
		r.Origin, r.Direction.X, r.Direction.Y, r.Direction.Z, r.Wavelength, r.Intensity)
}
