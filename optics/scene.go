package optics

import (
	"runtime"
	"sync"
)

// Scene holds the meshes and ray sources to simulate, and collects the
// terminated rays produced by simulation for external rendering.
type Scene struct {
	Meshes  []*Mesh
	Sources []*RaySource

	mu   sync.Mutex
	rays []*Ray
}

// AddMesh places a mesh in the scene.
func (s *Scene) AddMesh(m *Mesh) {
	s.Meshes = append(s.Meshes, m)
}

// AddSource places a ray source in the scene.
func (s *Scene) AddSource(src *RaySource) {
	s.Sources = append(s.Sources, src)
}

// Rays returns the terminated rays collected by the last Simulate call.
func (s *Scene) Rays() []*Ray {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rays
}

// Simulate emits raysPerSource rays from every source and traces each one
// through the scene's meshes. Each emitted ray is an independent task: the
// geometry is read-only during the run, so tracing fans out across a
// bounded pool of workers and the terminated rays fan back into a single
// collection. workers <= 0 uses one worker per CPU.
//
// Emission stays on the caller's goroutine so each source's RNG is consumed
// in a deterministic order.
func (s *Scene) Simulate(raysPerSource int, tracer Tracer, workers int) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	s.mu.Lock()
	s.rays = nil
	s.mu.Unlock()

	tasks := make(chan *Ray, workers)
	results := make(chan []*Ray, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ray := range tasks {
				results <- tracer.Trace(ray, s.Meshes)
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, src := range s.Sources {
			for i := 0; i < raysPerSource; i++ {
				tasks <- src.NextRay()
			}
		}
		close(tasks)
	}()

	for finished := range results {
		s.mu.Lock()
		s.rays = append(s.rays, finished...)
		s.mu.Unlock()
	}
}
