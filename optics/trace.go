package optics

import (
	"log"
	"math"
)

// defaultMaxIterations caps the tracer's worklist. The transmission branch
// has no depth bound of its own, so an adversarial all-transmitting,
// non-absorbing scene could otherwise spin forever.
const defaultMaxIterations = 1 << 20

// Tracer propagates rays through a set of meshes, splitting them at each
// dielectric interface with polarization-averaged Fresnel coefficients and
// attenuating them per Beer-Lambert in whatever medium they traverse.
type Tracer struct {
	// MinIntensity is the pruning floor: rays below it are discarded
	// silently with no output recorded.
	MinIntensity float64
	// EscapeLength is how far a ray travels past the last surface before
	// being terminated as escaped.
	EscapeLength float64
	// MaxReflections is the per-path reflection budget. Refractions do not
	// consume it.
	MaxReflections int
	// MaxIterations overrides the defensive worklist cap when positive.
	MaxIterations int
}

// pending is one worklist entry: a ray still traveling plus the reflection
// budget remaining along its path.
type pending struct {
	ray    *Ray
	budget int
}

// Trace propagates ray through the meshes and returns every terminated ray
// descending from it (the ray itself included when it terminates). The
// worklist replaces recursion so that deep transmission chains cannot blow
// the stack.
func (t Tracer) Trace(ray *Ray, meshes []*Mesh) []*Ray {
	maxIter := t.MaxIterations
	if maxIter <= 0 {
		maxIter = defaultMaxIterations
	}

	var finished []*Ray
	work := []pending{{ray: ray, budget: t.MaxReflections}}

	for iter := 0; len(work) > 0; iter++ {
		if iter >= maxIter {
			log.Printf("optics: tracer hit iteration cap (%d); dropping %d pending rays", maxIter, len(work))
			break
		}
		item := work[len(work)-1]
		work = work[:len(work)-1]
		r := item.ray

		// Pruning rule, not an error: too faint to matter.
		if r.Intensity < t.MinIntensity {
			continue
		}

		hit, mesh, ok := nearestHit(r, meshes)
		if !ok {
			// Escaped the scene: terminate a fixed distance out, attenuated
			// in the ray's current medium.
			r.Terminate(r.Origin.Add(r.Direction.Scale(t.EscapeLength)))
			finished = append(finished, r)
			continue
		}

		children := t.split(r, hit, mesh, item.budget)
		finished = append(finished, r)
		work = append(work, children...)
	}
	return finished
}

// hitPoint is a resolved nearest intersection.
type hitPoint struct {
	point Point
	face  int
}

// nearestHit queries every mesh and keeps the intersection nearest the ray
// origin. Ties keep the first mesh encountered.
func nearestHit(r *Ray, meshes []*Mesh) (hitPoint, *Mesh, bool) {
	var (
		best     hitPoint
		bestMesh *Mesh
		bestDist float64
		found    bool
	)
	for _, m := range meshes {
		p, face, ok := m.NearestIntersection(r.Origin, r.Direction)
		if !ok {
			continue
		}
		d := r.Origin.DistanceTo(p)
		if !found || d < bestDist {
			best, bestMesh, bestDist, found = hitPoint{point: p, face: face}, m, d, true
		}
	}
	return best, bestMesh, found
}

// split terminates the incoming ray at the hit point and spawns its
// reflected and transmitted children.
func (t Tracer) split(r *Ray, hit hitPoint, mesh *Mesh, budget int) []pending {
	normal := mesh.Triangle(hit.face).Normal

	// Orient the face normal to oppose the incoming ray so the incidence
	// angle is always measured on the arriving side.
	inverted := r.Direction.Invert()
	if angle, err := inverted.AngleWith(normal); err == nil && angle > math.Pi/2 {
		normal = normal.Invert()
	}

	// The incoming ray ends here; attenuation over the traveled segment is
	// applied by Terminate.
	r.Terminate(hit.point)

	// A ray hitting a face of the medium it is already inside is exiting
	// that solid; the far side cannot be the same solid again, so it is
	// treated as vacuum. This is a known modeling approximation: it cannot
	// tell "exiting solid A" apart from "entering an adjoining solid of the
	// same material".
	farSide := mesh.Material
	if mesh.Material.Is(r.Medium) {
		farSide = Vacuum()
	}

	n1 := real(r.Medium.RefractiveIndex(r.Wavelength))
	n2 := real(farSide.RefractiveIndex(r.Wavelength))
	ratio := n1 / n2

	theta1, err := inverted.AngleWith(normal)
	if err != nil {
		// Degenerate direction; nothing sensible to spawn.
		return nil
	}
	cos1 := math.Cos(theta1)
	sin2 := ratio * math.Sin(theta1)

	var children []pending

	if sin2 > 1 {
		// Total internal reflection: the refraction angle is out of domain,
		// so the split clamps to R=1, T=0 and no transmitted ray is
		// spawned.
		if budget > 0 {
			children = append(children, pending{
				ray:    NewRay(hit.point, reflect(r.Direction, normal), r.Wavelength, r.Intensity, r.Medium),
				budget: budget - 1,
			})
		}
		return children
	}

	theta2 := math.Asin(sin2)
	cos2 := math.Cos(theta2)

	// Polarization-averaged Fresnel intensity coefficients.
	rs := (n2*cos1 - n1*cos2) / (n2*cos1 + n1*cos2)
	rp := (n1*cos1 - n2*cos2) / (n1*cos1 + n2*cos2)
	reflectance := (rs*rs + rp*rp) / 2
	transmittance := 1 - reflectance

	if budget > 0 {
		children = append(children, pending{
			ray:    NewRay(hit.point, reflect(r.Direction, normal), r.Wavelength, r.Intensity*reflectance, r.Medium),
			budget: budget - 1,
		})
	}

	// Refraction keeps the full remaining budget; only reflections consume
	// it.
	refracted := r.Direction.Scale(ratio).Add(normal.Scale(ratio*cos1 - cos2))
	children = append(children, pending{
		ray:    NewRay(hit.point, refracted, r.Wavelength, r.Intensity*transmittance, farSide),
		budget: budget,
	})
	return children
}

// reflect mirrors d about the oriented surface normal n.
func reflect(d, n Vector) Vector {
	return d.Add(n.Scale(-2 * d.Dot(n)))
}
