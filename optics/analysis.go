package optics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Summary aggregates a terminated-ray list.
type Summary struct {
	Rays            int
	TotalEnergy     float64
	MeanIntensity   float64
	StdDevIntensity float64
	MinWavelength   float64
	MaxWavelength   float64
}

// Summarize computes intensity statistics over terminated rays.
func Summarize(rays []*Ray) Summary {
	s := Summary{Rays: len(rays)}
	if len(rays) == 0 {
		return s
	}
	intensities := make([]float64, len(rays))
	s.MinWavelength = math.Inf(1)
	s.MaxWavelength = math.Inf(-1)
	for i, r := range rays {
		intensities[i] = r.Intensity
		s.TotalEnergy += r.Intensity
		s.MinWavelength = math.Min(s.MinWavelength, r.Wavelength)
		s.MaxWavelength = math.Max(s.MaxWavelength, r.Wavelength)
	}
	s.MeanIntensity = stat.Mean(intensities, nil)
	s.StdDevIntensity = stat.StdDev(intensities, nil)
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("%d rays, total energy %.4f, intensity %.4f ± %.4f, wavelengths %.0f-%.0f nm",
		s.Rays, s.TotalEnergy, s.MeanIntensity, s.StdDevIntensity, s.MinWavelength, s.MaxWavelength)
}

// SaveSpectrumPNG plots a histogram of the terminated rays' wavelengths.
func SaveSpectrumPNG(filename string, rays []*Ray, bins int) error {
	if len(rays) == 0 {
		return fmt.Errorf("no rays to plot")
	}
	if bins <= 0 {
		bins = 16
	}
	values := make(plotter.Values, len(rays))
	for i, r := range rays {
		values[i] = r.Wavelength
	}

	p := plot.New()
	p.Title.Text = "Terminated ray spectrum"
	p.X.Label.Text = "wavelength (nm)"
	p.Y.Label.Text = "rays"

	h, err := plotter.NewHist(values, bins)
	if err != nil {
		return fmt.Errorf("building histogram: %w", err)
	}
	p.Add(h)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, filename); err != nil {
		return fmt.Errorf("saving spectrum plot: %w", err)
	}
	return nil
}
