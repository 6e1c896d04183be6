package optics

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	lin "github.com/sgreben/piecewiselinear"
)

// Material maps wavelength in nanometers to a complex refractive index.
// The real and imaginary parts are interpolated independently over a
// tabulated sample set, with linear extrapolation beyond the table's ends.
//
// Two materials are the same medium iff their names are equal.
type Material struct {
	Name string

	wavelengths []float64
	realPart    lin.Function
	imagPart    lin.Function

	// Constant-index materials (vacuum, legacy MTL media) bypass
	// interpolation entirely.
	constant complex128
	isConst  bool
}

// Vacuum returns the canonical default material: index (1, 0) at every
// wavelength.
func Vacuum() Material {
	return ConstantMaterial("vacuum", complex(1, 0))
}

// ConstantMaterial builds a material with the same complex index at every
// wavelength.
func ConstantMaterial(name string, n complex128) Material {
	return Material{Name: name, constant: n, isConst: true}
}

// NewMaterial builds a dispersive material from tabulated samples. The
// wavelengths are in nanometers and must be sorted ascending; sortedness is
// the caller's responsibility and is not validated here.
func NewMaterial(name string, wavelengths []float64, indices []complex128) Material {
	re := make([]float64, len(indices))
	im := make([]float64, len(indices))
	for i, n := range indices {
		re[i] = real(n)
		im[i] = imag(n)
	}
	return Material{
		Name:        name,
		wavelengths: wavelengths,
		realPart:    lin.Function{X: wavelengths, Y: re},
		imagPart:    lin.Function{X: wavelengths, Y: im},
	}
}

// LoadMaterial reads a dispersion table of whitespace-separated rows:
//
//	wavelength_micrometers real_index imag_index
//
// Wavelengths are converted to nanometers on load. The material's name is
// the file's base name without extension.
func LoadMaterial(path string) (Material, error) {
	f, err := os.Open(path)
	if err != nil {
		return Material{}, fmt.Errorf("opening material file: %w", err)
	}
	defer f.Close()

	var wavelengths []float64
	var indices []complex128

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 3 {
			return Material{}, &FormatError{Path: path, Line: lineNo, Msg: "expected 3 columns: wavelength_um real imag"}
		}
		vals := make([]float64, 3)
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return Material{}, &FormatError{Path: path, Line: lineNo, Msg: fmt.Sprintf("parsing %q: %v", field, err)}
			}
			vals[i] = v
		}
		wavelengths = append(wavelengths, vals[0]*1000) // um -> nm
		indices = append(indices, complex(vals[1], vals[2]))
	}
	if err := scanner.Err(); err != nil {
		return Material{}, fmt.Errorf("reading material file: %w", err)
	}
	if len(wavelengths) == 0 {
		return Material{}, &FormatError{Path: path, Msg: "empty material table"}
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return NewMaterial(name, wavelengths, indices), nil
}

// RefractiveIndex returns the complex refractive index at the given
// wavelength in nanometers. Inside the tabulated range the parts are
// piecewise-linearly interpolated; outside it they are extrapolated along
// the slope of the nearest segment, not clamped.
func (m Material) RefractiveIndex(wavelength float64) complex128 {
	if m.isConst {
		return m.constant
	}
	return complex(
		interpolate(m.realPart, wavelength),
		interpolate(m.imagPart, wavelength),
	)
}

// Is reports whether m and other represent the same medium. Identity is by
// name.
func (m Material) Is(other Material) bool {
	return m.Name == other.Name
}

// interpolate evaluates f at x, extrapolating linearly past either end.
// lin.Function.At clamps outside its domain, so the tails are handled here.
func interpolate(f lin.Function, x float64) float64 {
	n := len(f.X)
	if n == 1 {
		return f.Y[0]
	}
	switch {
	case x < f.X[0]:
		slope := (f.Y[1] - f.Y[0]) / (f.X[1] - f.X[0])
		return f.Y[0] + slope*(x-f.X[0])
	case x > f.X[n-1]:
		slope := (f.Y[n-1] - f.Y[n-2]) / (f.X[n-1] - f.X[n-2])
		return f.Y[n-1] + slope*(x-f.X[n-1])
	default:
		return f.At(x)
	}
}
