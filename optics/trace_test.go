package optics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTracer() Tracer {
	return Tracer{
		MinIntensity:   1e-6,
		EscapeLength:   20,
		MaxReflections: 3,
	}
}

func glass() Material {
	return ConstantMaterial("glass", complex(1.5, 0))
}

func TestTraceEscape(t *testing.T) {
	assert := assert.New(t)

	ray := NewRay(P(0, 0, 0), NewVector(0, 0, 1), 550, 1.0, Vacuum())
	finished := testTracer().Trace(ray, nil)

	require.Len(t, finished, 1)
	terminal, ok := finished[0].Terminal()
	assert.True(ok)
	assert.Equal(P(0, 0, 20), terminal)
	assert.Equal(1.0, finished[0].Intensity)
}

func TestTracePrunesFaintRays(t *testing.T) {
	assert := assert.New(t)

	ray := NewRay(P(0, 0, 0), NewVector(0, 0, 1), 550, 1e-9, Vacuum())
	assert.Empty(testTracer().Trace(ray, nil))
}

func TestTraceVacuumInterface(t *testing.T) {
	assert := assert.New(t)

	// A vacuum-material mesh hit by a ray traveling in vacuum: n1 = n2, so
	// the transmitted ray continues undeviated and reflectance is zero.
	mesh := unitSquareMesh("window")
	ray := NewRay(P(0, 0, -10), NewVector(0, 0, 1), 550, 1.0, Vacuum())
	finished := testTracer().Trace(ray, []*Mesh{mesh})

	require.Len(t, finished, 2)

	terminal, _ := finished[0].Terminal()
	assert.InDelta(0.0, terminal.Z, 1e-9)

	transmitted := finished[1]
	terminal, _ = transmitted.Terminal()
	assert.InDelta(0.0, terminal.X, 1e-9)
	assert.InDelta(0.0, terminal.Y, 1e-9)
	assert.InDelta(20.0, terminal.Z, 1e-9)
	assert.InDelta(1.0, transmitted.Intensity, 1e-9)
}

func TestTraceRefraction(t *testing.T) {
	assert := assert.New(t)

	mesh := unitSquareMesh("lens")
	mesh.SetMaterial(glass())

	// 30 degrees of incidence onto the z=0 plane.
	dir := NewVector(math.Sin(math.Pi/6), 0, math.Cos(math.Pi/6))
	ray := NewRay(P(-0.3, 0, -0.5), dir, 550, 1.0, Vacuum())
	finished := testTracer().Trace(ray, []*Mesh{mesh})

	// Incoming ray, reflected ray, transmitted ray.
	require.Len(t, finished, 3)

	var transmitted, reflected *Ray
	for _, r := range finished[1:] {
		if r.Medium.Is(glass()) {
			transmitted = r
		} else {
			reflected = r
		}
	}
	require.NotNil(t, transmitted)
	require.NotNil(t, reflected)

	// Snell: sin(theta2) = sin(theta1)/1.5, so the transmitted ray bends
	// toward the normal.
	theta2, err := transmitted.Direction.AngleWith(NewVector(0, 0, 1))
	require.NoError(t, err)
	wantTheta2 := math.Asin(math.Sin(math.Pi/6) / 1.5)
	assert.InDelta(wantTheta2, theta2, 1e-9)
	assert.Less(theta2, math.Pi/6)

	// Nonzero reflectance, and the split conserves energy: R + T = 1.
	assert.Greater(reflected.Intensity, 0.0)
	assert.Less(reflected.Intensity, 1.0)
	assert.InDelta(1.0, reflected.Intensity+transmitted.Intensity, 1e-9)

	// The reflected ray mirrors back off the surface on the incident side.
	assert.Less(reflected.Direction.Z, 0.0)
}

func TestTraceTotalInternalReflection(t *testing.T) {
	assert := assert.New(t)

	// A ray already inside glass hitting its own exit face at 60 degrees:
	// beyond the critical angle, so the split clamps to R=1, T=0 and no
	// transmitted ray is spawned.
	mesh := unitSquareMesh("prism")
	mesh.SetMaterial(glass())

	dir := NewVector(math.Sin(math.Pi/3), 0, math.Cos(math.Pi/3))
	ray := NewRay(P(-0.2, 0, -0.2), dir, 550, 1.0, glass())
	finished := testTracer().Trace(ray, []*Mesh{mesh})

	require.Len(t, finished, 2)
	reflected := finished[1]
	assert.InDelta(1.0, reflected.Intensity, 1e-9)
	assert.True(reflected.Medium.Is(glass()))
	// Nothing crosses to the far side of the interface.
	for _, r := range finished {
		terminal, ok := r.Terminal()
		assert.True(ok)
		assert.LessOrEqual(terminal.Z, 1e-9)
	}
}

func TestTraceReflectionBudget(t *testing.T) {
	assert := assert.New(t)

	mesh := unitSquareMesh("lens")
	mesh.SetMaterial(glass())

	dir := NewVector(math.Sin(math.Pi/6), 0, math.Cos(math.Pi/6))
	ray := NewRay(P(-0.3, 0, -0.5), dir, 550, 1.0, Vacuum())

	tracer := testTracer()
	tracer.MaxReflections = 0
	finished := tracer.Trace(ray, []*Mesh{mesh})

	// With no reflection budget only the incoming and transmitted rays
	// survive.
	require.Len(t, finished, 2)
	for _, r := range finished {
		assert.GreaterOrEqual(r.Direction.Z, 0.0)
	}
}

func TestTraceEnergyNonIncrease(t *testing.T) {
	assert := assert.New(t)

	// An absorbing glass slab: front face at z=0, back face at z=0.2. The
	// sum of intensities over all escaped descendants of one emitted ray
	// must never exceed the emitted intensity.
	front := unitSquareMesh("slab")
	front.SetMaterial(ConstantMaterial("slab", complex(1.5, 1e-6)))
	back := front.Translate(0, 0, 0.2)

	dir := NewVector(math.Sin(math.Pi/8), 0, math.Cos(math.Pi/8))
	ray := NewRay(P(-0.1, 0, -0.5), dir, 550, 1.0, Vacuum())
	finished := testTracer().Trace(ray, []*Mesh{front, back})

	assert.NotEmpty(finished)
	escaped := 0.0
	for _, r := range finished {
		terminal, ok := r.Terminal()
		assert.True(ok)
		// Leaves terminate escape-length away from the slab; interface
		// terminations land on one of its faces.
		if math.Abs(terminal.Z) > 1 {
			escaped += r.Intensity
		}
	}
	assert.Greater(escaped, 0.0)
	assert.LessOrEqual(escaped, 1.0+1e-9)
}

func TestTraceIterationCap(t *testing.T) {
	assert := assert.New(t)

	mesh := unitSquareMesh("window")
	ray := NewRay(P(0, 0, -10), NewVector(0, 0, 1), 550, 1.0, Vacuum())

	tracer := testTracer()
	tracer.MaxIterations = 1
	finished := tracer.Trace(ray, []*Mesh{mesh})

	// The cap stops the worklist after the first split; the transmitted
	// child is dropped.
	assert.Len(finished, 1)
}
