package optics

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hpinc/go3mf"
)

// NewMeshFrom3MF reads every build item of a 3MF model into a single mesh.
// Coordinates are taken as-is; unit handling is left to the caller. The
// mesh name is the file's base name without extension.
func NewMeshFrom3MF(path string) (*Mesh, error) {
	r, err := go3mf.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening 3MF file: %w", err)
	}
	var model go3mf.Model
	if err := r.Decode(&model); err != nil {
		return nil, fmt.Errorf("decoding 3MF model: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	m := NewMesh(name)

	for _, item := range model.Build.Items {
		obj, ok := model.FindObject(item.ObjectPath(), item.ObjectID)
		if !ok || obj.Mesh == nil {
			continue
		}
		vertices := obj.Mesh.Vertices.Vertex
		for _, tri := range obj.Mesh.Triangles.Triangle {
			v1 := vertices[tri.V1]
			v2 := vertices[tri.V2]
			v3 := vertices[tri.V3]
			m.AddFace(NewTriangle(
				Point{float64(v1.X()), float64(v1.Y()), float64(v1.Z())},
				Point{float64(v2.X()), float64(v2.Y()), float64(v2.Z())},
				Point{float64(v3.X()), float64(v3.Y()), float64(v3.Z())},
			))
		}
	}
	return m, nil
}
