package main

import (
	"fmt"
	"log"
	"math/rand"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/BryanCasanelli/RayTracing/optics"
	"github.com/BryanCasanelli/RayTracing/optics/config"
)

var CLI struct {
	Simulate SimulateCmd `cmd:"" help:"Trace rays through a scene described by a YAML config"`
}

type SimulateCmd struct {
	Config   string `arg:"" name:"config" help:"scene config YAML file"`
	Rays     string `name:"rays" default:"rays.json" help:"terminated-ray JSON output"`
	View     string `name:"view" default:"view.png" help:"scene view PNG output (empty to skip)"`
	Plane    string `name:"plane" default:"xz" enum:"xy,xz,yz" help:"projection plane for the view"`
	Spectrum string `name:"spectrum" default:"" help:"wavelength histogram PNG output (empty to skip)"`
}

func (c SimulateCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(cfg.Simulation.Seed))

	scene := &optics.Scene{}
	for _, mc := range cfg.Meshes {
		mesh, err := loadMesh(mc)
		if err != nil {
			return err
		}
		scene.AddMesh(mesh)
	}
	for _, sc := range cfg.Sources {
		var rect *optics.Rectangle
		mode := optics.EmitPoint
		if sc.Rectangle != nil {
			r := optics.NewRectangle(
				point(sc.Rectangle[0]), point(sc.Rectangle[1]),
				point(sc.Rectangle[2]), point(sc.Rectangle[3]),
			)
			rect = &r
			mode = optics.EmitRectangle
		}
		scene.AddSource(optics.NewRaySource(
			point(sc.Position),
			optics.NewVector(sc.Normal[0], sc.Normal[1], sc.Normal[2]),
			sc.ApertureDegrees, sc.MinWavelength, sc.MaxWavelength,
			rect, mode, sc.Intensity, sc.Name, rng,
		))
	}

	tracer := optics.Tracer{
		MinIntensity:   cfg.Simulation.MinIntensity,
		EscapeLength:   cfg.Simulation.EscapeLength,
		MaxReflections: cfg.Simulation.MaxReflections,
	}
	scene.Simulate(cfg.Simulation.RaysPerSource, tracer, cfg.Simulation.Workers)

	fmt.Println(optics.Summarize(scene.Rays()))

	if err := optics.SaveRaysToJSON(c.Rays, scene.Rays()); err != nil {
		return err
	}
	if c.View != "" {
		view := optics.View{Plane: viewPlane(c.Plane), XSize: 1280, YSize: 960}
		if err := view.Render(scene, c.View); err != nil {
			return err
		}
	}
	if c.Spectrum != "" {
		if err := optics.SaveSpectrumPNG(c.Spectrum, scene.Rays(), 24); err != nil {
			return err
		}
	}
	return nil
}

func loadMesh(mc config.MeshConfig) (*optics.Mesh, error) {
	var mesh *optics.Mesh
	var err error
	switch strings.ToLower(filepath.Ext(mc.Path)) {
	case ".3mf":
		mesh, err = optics.NewMeshFrom3MF(mc.Path)
	default:
		mesh, err = optics.NewMeshFromOBJ(mc.Path, nil)
	}
	if err != nil {
		return nil, err
	}

	switch {
	case mc.MaterialPath != "":
		mat, err := optics.LoadMaterial(mc.MaterialPath)
		if err != nil {
			return nil, err
		}
		mesh.SetMaterial(mat)
	case mc.Index != nil:
		mesh.SetMaterial(optics.ConstantMaterial(mesh.Name, complex(*mc.Index, 0)))
	}

	if mc.Translate != [3]float64{} {
		mesh = mesh.Translate(mc.Translate[0], mc.Translate[1], mc.Translate[2])
	}

	if mc.Reference != nil {
		kind, axis, manual := referenceRequest(*mc.Reference)
		mesh, err = mesh.ChangeReferencePoint(kind, axis, manual)
		if err != nil {
			return nil, err
		}
	}
	return mesh, nil
}

func referenceRequest(rc config.ReferenceConfig) (optics.ReferenceKind, optics.Axis, *optics.Point) {
	kind := optics.ReferenceCentroid
	switch rc.Kind {
	case "lowest":
		kind = optics.ReferenceLowest
	case "highest":
		kind = optics.ReferenceHighest
	case "manual":
		kind = optics.ReferenceManual
	}
	axis := optics.AxisZ
	switch rc.Axis {
	case "x":
		axis = optics.AxisX
	case "y":
		axis = optics.AxisY
	}
	var manual *optics.Point
	if kind == optics.ReferenceManual {
		p := point(rc.Position)
		manual = &p
	}
	return kind, axis, manual
}

func point(c [3]float64) optics.Point {
	return optics.P(c[0], c[1], c[2])
}

func viewPlane(name string) optics.ViewPlane {
	switch name {
	case "xy":
		return optics.ViewXY
	case "yz":
		return optics.ViewYZ
	default:
		return optics.ViewXZ
	}
}

func main() {
	ctx := kong.Parse(&CLI)
	if err := ctx.Run(); err != nil {
		log.Fatal(err)
	}
}
