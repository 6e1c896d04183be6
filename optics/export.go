package optics

import (
	"encoding/json"
	"fmt"
	"os"
)

// JSON schema types consumed by external viewers.
type PointJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type RayJSON struct {
	Origin     PointJSON `json:"origin"`
	Terminal   PointJSON `json:"terminal"`
	Wavelength float64   `json:"wavelength"` // nm
	Intensity  float64   `json:"intensity"`
	Color      string    `json:"color"` // #rrggbbaa
}

func pointJSON(p Point) PointJSON {
	return PointJSON{X: p.X, Y: p.Y, Z: p.Z}
}

// RaysJSON converts terminated rays into their export schema. Rays without
// a terminal point are skipped; the engine only ever hands out terminated
// rays, so normally nothing is dropped.
func RaysJSON(rays []*Ray) []RayJSON {
	out := make([]RayJSON, 0, len(rays))
	for _, r := range rays {
		terminal, ok := r.Terminal()
		if !ok {
			continue
		}
		c := r.Color()
		out = append(out, RayJSON{
			Origin:     pointJSON(r.Origin),
			Terminal:   pointJSON(terminal),
			Wavelength: r.Wavelength,
			Intensity:  r.Intensity,
			Color:      fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A),
		})
	}
	return out
}

// SaveRaysToJSON writes the terminated-ray list to a JSON file for external
// rendering.
func SaveRaysToJSON(filename string, rays []*Ray) error {
	data, err := json.MarshalIndent(RaysJSON(rays), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling rays: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("writing rays file: %w", err)
	}
	return nil
}
