package optics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminateVacuum(t *testing.T) {
	assert := assert.New(t)

	r := NewRay(P(0, 0, 0), NewVector(0, 0, 1), 550, 1.0, Vacuum())
	_, ok := r.Terminal()
	assert.False(ok)

	require.NoError(t, r.Terminate(P(0, 0, 10)))
	terminal, ok := r.Terminal()
	assert.True(ok)
	assert.Equal(P(0, 0, 10), terminal)
	// Vacuum does not absorb.
	assert.Equal(1.0, r.Intensity)
}

func TestTerminateOnce(t *testing.T) {
	assert := assert.New(t)

	r := NewRay(P(0, 0, 0), NewVector(0, 0, 1), 550, 1.0, Vacuum())
	require.NoError(t, r.Terminate(P(0, 0, 1)))
	assert.ErrorIs(r.Terminate(P(0, 0, 2)), ErrRayTerminated)

	terminal, _ := r.Terminal()
	assert.Equal(P(0, 0, 1), terminal)
}

func TestTerminateAbsorbing(t *testing.T) {
	assert := assert.New(t)

	kappa := 1e-5
	wavelength := 500.0
	distance := 0.01
	medium := ConstantMaterial("tinted", complex(1.5, kappa))

	r := NewRay(P(0, 0, 0), NewVector(0, 0, 1), wavelength, 1.0, medium)
	require.NoError(t, r.Terminate(P(0, 0, distance)))

	want := math.Exp(-4 * math.Pi * kappa * distance / (wavelength * 1e-6))
	assert.InDelta(want, r.Intensity, 1e-12)
	assert.Less(r.Intensity, 1.0)
}

func TestColor(t *testing.T) {
	tests := []struct {
		name       string
		wavelength float64
		check      func(t *testing.T, r, g, b uint8)
	}{
		{"green 530nm", 530, func(t *testing.T, r, g, b uint8) {
			assert.Equal(t, uint8(255), g)
			assert.Equal(t, uint8(0), b)
		}},
		{"red 700nm", 700, func(t *testing.T, r, g, b uint8) {
			assert.Greater(t, r, uint8(0))
			assert.Equal(t, uint8(0), g)
			assert.Equal(t, uint8(0), b)
		}},
		{"blue 450nm", 450, func(t *testing.T, r, g, b uint8) {
			assert.Equal(t, uint8(255), b)
			assert.Equal(t, uint8(0), r)
		}},
		{"outside visible band", 900, func(t *testing.T, r, g, b uint8) {
			assert.Equal(t, uint8(0), r)
			assert.Equal(t, uint8(0), g)
			assert.Equal(t, uint8(0), b)
		}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ray := NewRay(P(0, 0, 0), NewVector(0, 0, 1), test.wavelength, 1.0, Vacuum())
			c := ray.Color()
			test.check(t, c.R, c.G, c.B)
			assert.Equal(t, uint8(255), c.A)
		})
	}
}

func TestColorAlphaTracksIntensity(t *testing.T) {
	assert := assert.New(t)

	ray := NewRay(P(0, 0, 0), NewVector(0, 0, 1), 550, 0.5, Vacuum())
	assert.InDelta(127, float64(ray.Color().A), 1.0)
}
