package config

// SceneConfig is the complete YAML description of a simulation run.
type SceneConfig struct {
	Meshes     []MeshConfig     `yaml:"meshes"`
	Sources    []SourceConfig   `yaml:"sources"`
	Simulation SimulationConfig `yaml:"simulation"`
}

type MeshConfig struct {
	// Path to an .obj or .3mf file, resolved against the config file's
	// directory when relative.
	Path string `yaml:"path"`
	// MaterialPath points to a dispersion table (wavelength_um real imag
	// rows). Mutually exclusive with Index.
	MaterialPath string `yaml:"material,omitempty"`
	// Index binds a constant real refractive index instead of a table.
	Index *float64 `yaml:"index,omitempty"`
	// Translate displaces the mesh after loading.
	Translate [3]float64 `yaml:"translate,omitempty"`
	// Reference overrides the mesh reference point.
	Reference *ReferenceConfig `yaml:"reference,omitempty"`
}

type ReferenceConfig struct {
	Kind     string     `yaml:"kind"` // centroid | lowest | highest | manual
	Axis     string     `yaml:"axis,omitempty"`
	Position [3]float64 `yaml:"position,omitempty"`
}

type SourceConfig struct {
	Name            string         `yaml:"name"`
	Position        [3]float64     `yaml:"position"`
	Normal          [3]float64     `yaml:"normal"`
	ApertureDegrees float64        `yaml:"aperture_degrees"`
	MinWavelength   float64        `yaml:"min_wavelength"` // nm, default 380
	MaxWavelength   float64        `yaml:"max_wavelength"` // nm, default 740
	Intensity       float64        `yaml:"intensity"`      // default 1
	Rectangle       *[4][3]float64 `yaml:"rectangle,omitempty"`
}

type SimulationConfig struct {
	RaysPerSource  int     `yaml:"rays_per_source"`
	MinIntensity   float64 `yaml:"min_intensity"`
	EscapeLength   float64 `yaml:"escape_length"`
	MaxReflections int     `yaml:"max_reflections"`
	Seed           int64   `yaml:"seed"`
	Workers        int     `yaml:"workers"`
}
