package optics

import (
	"fmt"
	"math"

	"github.com/fogleman/gg"
)

// ViewPlane selects the axis plane a View projects onto.
type ViewPlane int

const (
	ViewXY ViewPlane = iota
	ViewXZ
	ViewYZ
)

// View renders an orthographic projection of a scene's meshes and traced
// rays for quick inspection. It is a debugging surface, not part of the
// simulation core.
type View struct {
	Plane ViewPlane
	XSize int
	YSize int

	// cached mapping from scene coordinates to image coordinates
	scale      float64
	xTranslate float64
	yTranslate float64
}

func (v View) project(p Point) (float64, float64) {
	switch v.Plane {
	case ViewXZ:
		return p.X, p.Z
	case ViewYZ:
		return p.Y, p.Z
	default:
		return p.X, p.Y
	}
}

// Render draws mesh wireframes in gray and terminated rays in their
// wavelength colors, and writes the result as a PNG.
func (v View) Render(scene *Scene, filename string) error {
	if v.XSize <= 0 || v.YSize <= 0 {
		return fmt.Errorf("view size must be positive, got %dx%d", v.XSize, v.YSize)
	}
	v.fitScale(scene)

	dc := gg.NewContext(v.XSize, v.YSize)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	dc.SetRGBA(0.5, 0.5, 0.5, 1)
	dc.SetLineWidth(1)
	for _, m := range scene.Meshes {
		for i := range m.Faces {
			t := m.Triangle(i)
			v.line(dc, t.V1, t.V2)
			v.line(dc, t.V2, t.V3)
			v.line(dc, t.V3, t.V1)
		}
	}
	dc.Stroke()

	for _, r := range scene.Rays() {
		terminal, ok := r.Terminal()
		if !ok {
			continue
		}
		c := r.Color()
		dc.SetRGBA(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, float64(c.A)/255)
		v.line(dc, r.Origin, terminal)
		dc.Stroke()
	}

	return dc.SavePNG(filename)
}

func (v View) line(dc *gg.Context, a, b Point) {
	ax, ay := v.toImage(a)
	bx, by := v.toImage(b)
	dc.DrawLine(ax, ay, bx, by)
}

func (v View) toImage(p Point) (float64, float64) {
	x, y := v.project(p)
	// Flip Y so "up" in the scene is up in the image.
	return (x + v.xTranslate) * v.scale, float64(v.YSize) - (y+v.yTranslate)*v.scale
}

// fitScale computes the scene-to-image mapping so everything drawn fits
// inside the image with a small margin.
func (v *View) fitScale(scene *Scene) {
	xMin, xMax := math.Inf(1), math.Inf(-1)
	yMin, yMax := math.Inf(1), math.Inf(-1)
	include := func(p Point) {
		x, y := v.project(p)
		xMin = math.Min(xMin, x)
		xMax = math.Max(xMax, x)
		yMin = math.Min(yMin, y)
		yMax = math.Max(yMax, y)
	}
	for _, m := range scene.Meshes {
		for _, vert := range m.Vertices {
			include(vert)
		}
	}
	for _, r := range scene.Rays() {
		include(r.Origin)
		if terminal, ok := r.Terminal(); ok {
			include(terminal)
		}
	}
	if xMax <= xMin || yMax <= yMin {
		v.scale = 1
		return
	}

	const margin = 0.95
	xScale := float64(v.XSize) / (xMax - xMin)
	yScale := float64(v.YSize) / (yMax - yMin)
	v.scale = math.Min(xScale, yScale) * margin
	v.xTranslate = -xMin + (float64(v.XSize)/v.scale-(xMax-xMin))/2
	v.yTranslate = -yMin + (float64(v.YSize)/v.scale-(yMax-yMin))/2
}
