package optics

import (
	"bufio"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ReferenceKind selects how a mesh's reference point is derived.
type ReferenceKind int

const (
	// ReferenceCentroid places the reference at the area-weighted centroid.
	ReferenceCentroid ReferenceKind = iota
	// ReferenceLowest places the reference at the centroid with the chosen
	// axis coordinate replaced by the minimum over all vertices.
	ReferenceLowest
	// ReferenceHighest is ReferenceLowest with the maximum instead.
	ReferenceHighest
	// ReferenceManual places the reference at explicit coordinates.
	ReferenceManual
)

// Axis names a coordinate axis for ReferenceLowest / ReferenceHighest.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Mesh is an indexed triangle collection bound to a material. Vertices are
// deduplicated into a single arena; faces are index triples into it and the
// per-face Triangle geometry is derived by indirection, so there is no
// second copy of vertex data to keep consistent.
//
// A mesh with no vertices degenerates to its reference point.
type Mesh struct {
	Name      string
	Vertices  []Point
	Faces     [][3]int
	Material  Material
	Reference Point

	vertexIndex map[Point]int
}

// NewMesh returns an empty mesh bound to vacuum.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:        name,
		Material:    Vacuum(),
		vertexIndex: make(map[Point]int),
	}
}

// NewMeshFromOBJ parses the OBJ subset described in the package docs:
// `v x y z` vertices and `f` faces of 3 or 4 1-based indices (the first
// slash-segment of each index is used). Quads are split along the 0-2
// diagonal. A non-nil progress callback receives a percentage of lines
// consumed. The mesh name is the file's base name without extension.
func NewMeshFromOBJ(path string, progress func(percent int)) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening OBJ file: %w", err)
	}
	defer f.Close()

	// Lines are read up front so progress can be reported against a total.
	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ file: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	m := NewMesh(name)

	// Raw vertex list in file order; face indices refer to this list, the
	// mesh arena dedups independently.
	var raw []Point

	for i, line := range lines {
		lineNo := i + 1
		switch {
		case strings.HasPrefix(line, "v "):
			parts := strings.Fields(line)
			if len(parts) < 4 {
				return nil, &FormatError{Path: path, Line: lineNo, Msg: "vertex needs 3 coordinates"}
			}
			var coords [3]float64
			for j := 0; j < 3; j++ {
				v, err := strconv.ParseFloat(parts[j+1], 64)
				if err != nil {
					return nil, &FormatError{Path: path, Line: lineNo, Msg: fmt.Sprintf("parsing vertex coordinate %q: %v", parts[j+1], err)}
				}
				coords[j] = v
			}
			raw = append(raw, Point{coords[0], coords[1], coords[2]})
		case strings.HasPrefix(line, "f "):
			parts := strings.Fields(line)[1:]
			indices := make([]int, len(parts))
			for j, part := range parts {
				idxStr := strings.SplitN(part, "/", 2)[0]
				idx, err := strconv.Atoi(idxStr)
				if err != nil {
					return nil, &FormatError{Path: path, Line: lineNo, Msg: fmt.Sprintf("parsing face index %q: %v", part, err)}
				}
				idx-- // OBJ indices are 1-based
				if idx < 0 || idx >= len(raw) {
					return nil, fmt.Errorf("%s:%d: face index %d out of range (have %d vertices)", path, lineNo, idx+1, len(raw))
				}
				indices[j] = idx
			}
			switch len(indices) {
			case 3:
				m.AddFace(NewTriangle(raw[indices[0]], raw[indices[1]], raw[indices[2]]))
			case 4:
				rect := NewRectangle(raw[indices[0]], raw[indices[1]], raw[indices[2]], raw[indices[3]])
				m.AddRectangle(rect)
			default:
				return nil, &FormatError{Path: path, Line: lineNo, Msg: fmt.Sprintf("unsupported face with %d vertices", len(indices))}
			}
		}
		if progress != nil {
			progress((lineNo * 100) / len(lines))
		}
	}
	return m, nil
}

// AddFace appends a triangle to the mesh, deduplicating its vertices into
// the arena. Degenerate triangles are rejected with a non-fatal warning and
// the mesh keeps accepting subsequent faces.
func (m *Mesh) AddFace(t Triangle) {
	if t.IsDegenerate() {
		log.Printf("optics: rejecting degenerate face in mesh %q (non-distinct vertices)", m.Name)
		return
	}
	m.Faces = append(m.Faces, [3]int{
		m.internVertex(t.V1),
		m.internVertex(t.V2),
		m.internVertex(t.V3),
	})
}

// AddRectangle appends a rectangle as its two triangles.
func (m *Mesh) AddRectangle(r Rectangle) {
	m.AddFace(r.T1)
	m.AddFace(r.T2)
}

func (m *Mesh) internVertex(p Point) int {
	if m.vertexIndex == nil {
		m.vertexIndex = make(map[Point]int, len(m.Vertices))
		for i, v := range m.Vertices {
			m.vertexIndex[v] = i
		}
	}
	if i, ok := m.vertexIndex[p]; ok {
		return i
	}
	i := len(m.Vertices)
	m.Vertices = append(m.Vertices, p)
	m.vertexIndex[p] = i
	return i
}

// Triangle materializes the geometry of face i from the vertex arena.
func (m *Mesh) Triangle(i int) Triangle {
	f := m.Faces[i]
	return NewTriangle(m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]])
}

// SetMaterial binds a material to the mesh.
func (m *Mesh) SetMaterial(mat Material) {
	m.Material = mat
}

// Area returns the total surface area of the mesh.
func (m *Mesh) Area() float64 {
	total := 0.0
	for i := range m.Faces {
		total += m.Triangle(i).Area()
	}
	return total
}

// Centroid returns the area-weighted centroid of the mesh's faces. An empty
// mesh yields its reference point.
func (m *Mesh) Centroid() Point {
	var sx, sy, sz, total float64
	for i := range m.Faces {
		t := m.Triangle(i)
		a := t.Area()
		c := t.Centroid()
		sx += a * c.X
		sy += a * c.Y
		sz += a * c.Z
		total += a
	}
	if total == 0 {
		return m.Reference
	}
	return Point{sx / total, sy / total, sz / total}
}

// Translate returns a new mesh displaced by (dx, dy, dz). The receiver is
// left untouched; vertices shared with other meshes are never mutated in
// place.
func (m *Mesh) Translate(dx, dy, dz float64) *Mesh {
	d := NewVector(dx, dy, dz)
	out := &Mesh{
		Name:      m.Name,
		Vertices:  make([]Point, len(m.Vertices)),
		Faces:     make([][3]int, len(m.Faces)),
		Material:  m.Material,
		Reference: m.Reference.Add(d),
	}
	for i, v := range m.Vertices {
		out.Vertices[i] = v.Add(d)
	}
	copy(out.Faces, m.Faces)
	return out
}

// ChangeReferencePoint returns a copy of the mesh with its reference point
// rederived. Lowest and Highest take the axis along which to look; Manual
// takes explicit coordinates. Unknown kinds are an error.
func (m *Mesh) ChangeReferencePoint(kind ReferenceKind, axis Axis, manual *Point) (*Mesh, error) {
	out := *m
	out.vertexIndex = nil
	switch kind {
	case ReferenceCentroid:
		out.Reference = m.Centroid()
	case ReferenceLowest, ReferenceHighest:
		if len(m.Vertices) == 0 {
			return nil, fmt.Errorf("%w: mesh %q has no vertices", ErrInvalidReference, m.Name)
		}
		limit := math.Inf(1)
		if kind == ReferenceHighest {
			limit = math.Inf(-1)
		}
		for _, v := range m.Vertices {
			c := axisCoord(v, axis)
			if (kind == ReferenceLowest && c < limit) || (kind == ReferenceHighest && c > limit) {
				limit = c
			}
		}
		ref := m.Centroid()
		switch axis {
		case AxisX:
			ref.X = limit
		case AxisY:
			ref.Y = limit
		case AxisZ:
			ref.Z = limit
		default:
			return nil, fmt.Errorf("%w: unknown axis %d", ErrInvalidReference, axis)
		}
		out.Reference = ref
	case ReferenceManual:
		if manual == nil {
			return nil, fmt.Errorf("%w: manual reference needs coordinates", ErrInvalidReference)
		}
		out.Reference = *manual
	default:
		return nil, fmt.Errorf("%w: unknown kind %d", ErrInvalidReference, kind)
	}
	return &out, nil
}

func axisCoord(p Point, axis Axis) float64 {
	switch axis {
	case AxisX:
		return p.X
	case AxisY:
		return p.Y
	default:
		return p.Z
	}
}

// NearestIntersection tests the ray against every face and returns the hit
// nearest the ray origin along with the face index. Scene sizes are small
// enough that a linear scan suffices; ties keep the first face encountered.
func (m *Mesh) NearestIntersection(origin Point, dir Vector) (Point, int, bool) {
	var (
		best     Point
		bestFace int
		bestDist float64
		found    bool
	)
	for i := range m.Faces {
		p, ok := m.Triangle(i).Intersect(origin, dir)
		if !ok {
			continue
		}
		d := origin.DistanceTo(p)
		if !found || d < bestDist {
			best, bestFace, bestDist, found = p, i, d, true
		}
	}
	return best, bestFace, found
}
