package optics

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// MTLMaterial holds the properties of one newmtl block from a legacy
// Wavefront .mtl library. Only the properties the simulation can use are
// retained.
type MTLMaterial struct {
	Ns      []float64 // specular exponent
	Ka      []float64 // ambient color
	Kd      []float64 // diffuse color
	Ks      []float64 // specular color
	Ni      []float64 // optical density (refractive index)
	D       []float64 // dissolve
	MapKd   string
	MapBump string
}

// Material converts the legacy entry into a constant-index Material using
// its optical density. Entries without Ni behave as vacuum-like media with
// index 1.
func (m MTLMaterial) Material(name string) Material {
	n := 1.0
	if len(m.Ni) > 0 {
		n = m.Ni[0]
	}
	return ConstantMaterial(name, complex(n, 0))
}

// ParseMTL reads a .mtl material library into a map keyed by material name.
// Comments, blank lines, and properties appearing before any newmtl
// statement are skipped.
func ParseMTL(path string) (map[string]MTLMaterial, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening MTL file: %w", err)
	}
	defer f.Close()

	materials := make(map[string]MTLMaterial)
	var current string
	hasCurrent := false

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		key := fields[0]
		if key == "newmtl" {
			if len(fields) < 2 {
				return nil, &FormatError{Path: path, Line: lineNo, Msg: "newmtl without a name"}
			}
			current = fields[1]
			hasCurrent = true
			materials[current] = MTLMaterial{}
			continue
		}
		if !hasCurrent {
			continue
		}

		mat := materials[current]
		switch key {
		case "Ns", "Ka", "Kd", "Ks", "Ni", "d":
			vals := make([]float64, 0, len(fields)-1)
			for _, field := range fields[1:] {
				v, err := strconv.ParseFloat(field, 64)
				if err != nil {
					return nil, &FormatError{Path: path, Line: lineNo, Msg: fmt.Sprintf("parsing %s value %q: %v", key, field, err)}
				}
				vals = append(vals, v)
			}
			switch key {
			case "Ns":
				mat.Ns = vals
			case "Ka":
				mat.Ka = vals
			case "Kd":
				mat.Kd = vals
			case "Ks":
				mat.Ks = vals
			case "Ni":
				mat.Ni = vals
			case "d":
				mat.D = vals
			}
		case "map_Kd":
			if len(fields) > 1 {
				mat.MapKd = fields[1]
			}
		case "map_Bump":
			if len(fields) > 1 {
				mat.MapBump = fields[1]
			}
		}
		materials[current] = mat
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading MTL file: %w", err)
	}
	return materials, nil
}
