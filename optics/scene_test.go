package optics

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulate(t *testing.T) {
	assert := assert.New(t)
	rng := rand.New(rand.NewSource(42))

	scene := &Scene{}
	scene.AddMesh(unitSquareMesh("window"))
	scene.AddSource(NewRaySource(P(0, 0, -10), NewVector(0, 0, 1), 0, 380, 740, nil, EmitPoint, 1.0, "beam", rng))

	scene.Simulate(100, testTracer(), 4)

	rays := scene.Rays()
	// Every emitted ray terminates on the window and spawns a transmitted
	// ray that escapes; the zero-intensity reflections are pruned.
	assert.Len(rays, 200)
	for _, r := range rays {
		_, ok := r.Terminal()
		assert.True(ok)
		assert.LessOrEqual(r.Intensity, 1.0)
		assert.GreaterOrEqual(r.Intensity, 0.0)
	}
}

func TestSimulateResetsRays(t *testing.T) {
	assert := assert.New(t)
	rng := rand.New(rand.NewSource(1))

	scene := &Scene{}
	scene.AddSource(NewRaySource(P(0, 0, 0), NewVector(0, 0, 1), 0, 380, 740, nil, EmitPoint, 1.0, "beam", rng))

	scene.Simulate(10, testTracer(), 1)
	first := len(scene.Rays())
	scene.Simulate(10, testTracer(), 1)

	assert.Equal(10, first)
	assert.Len(scene.Rays(), 10)
}

func TestSimulateMultipleSources(t *testing.T) {
	assert := assert.New(t)
	rng := rand.New(rand.NewSource(9))

	scene := &Scene{}
	scene.AddSource(NewRaySource(P(0, 0, -5), NewVector(0, 0, 1), 0, 380, 740, nil, EmitPoint, 1.0, "a", rng))
	scene.AddSource(NewRaySource(P(0, 0, 5), NewVector(0, 0, -1), 0, 380, 740, nil, EmitPoint, 1.0, "b", rng))

	scene.Simulate(50, testTracer(), 2)

	// No meshes: every emitted ray escapes.
	rays := scene.Rays()
	require.Len(t, rays, 100)
	for _, r := range rays {
		terminal, ok := r.Terminal()
		assert.True(ok)
		assert.InDelta(15.0, terminal.DistanceTo(P(0, 0, 0)), 1e-9)
	}
}

func TestSummarize(t *testing.T) {
	assert := assert.New(t)

	a := NewRay(P(0, 0, 0), NewVector(0, 0, 1), 400, 0.5, Vacuum())
	b := NewRay(P(0, 0, 0), NewVector(0, 0, 1), 600, 1.0, Vacuum())
	s := Summarize([]*Ray{a, b})

	assert.Equal(2, s.Rays)
	assert.InDelta(1.5, s.TotalEnergy, 1e-12)
	assert.InDelta(0.75, s.MeanIntensity, 1e-12)
	assert.Equal(400.0, s.MinWavelength)
	assert.Equal(600.0, s.MaxWavelength)

	empty := Summarize(nil)
	assert.Equal(0, empty.Rays)
	assert.Equal(0.0, empty.TotalEnergy)
}
