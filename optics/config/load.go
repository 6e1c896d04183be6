package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads a SceneConfig from a YAML file. Relative mesh and material
// paths are resolved against the config file's directory.
func Load(path string) (*SceneConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := &SceneConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	baseDir := filepath.Dir(path)
	for i := range cfg.Meshes {
		if cfg.Meshes[i].Path != "" {
			cfg.Meshes[i].Path = resolve(baseDir, cfg.Meshes[i].Path)
		}
		if cfg.Meshes[i].MaterialPath != "" {
			cfg.Meshes[i].MaterialPath = resolve(baseDir, cfg.Meshes[i].MaterialPath)
		}
	}

	applyDefaults(cfg)
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes a SceneConfig as YAML.
func Save(cfg *SceneConfig, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func resolve(baseDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

func applyDefaults(cfg *SceneConfig) {
	for i := range cfg.Sources {
		src := &cfg.Sources[i]
		if src.MinWavelength == 0 {
			src.MinWavelength = 380
		}
		if src.MaxWavelength == 0 {
			src.MaxWavelength = 740
		}
		if src.Intensity == 0 {
			src.Intensity = 1
		}
	}
	sim := &cfg.Simulation
	if sim.RaysPerSource == 0 {
		sim.RaysPerSource = 100
	}
	if sim.MinIntensity == 0 {
		sim.MinIntensity = 1e-3
	}
	if sim.EscapeLength == 0 {
		sim.EscapeLength = 100
	}
	if sim.MaxReflections == 0 {
		sim.MaxReflections = 3
	}
}

func validate(cfg *SceneConfig) error {
	for i, m := range cfg.Meshes {
		if m.Path == "" {
			return fmt.Errorf("mesh %d: path is required", i)
		}
		if m.MaterialPath != "" && m.Index != nil {
			return fmt.Errorf("mesh %d: material and index are mutually exclusive", i)
		}
		if m.Reference != nil {
			switch m.Reference.Kind {
			case "centroid", "lowest", "highest", "manual":
			default:
				return fmt.Errorf("mesh %d: unknown reference kind %q", i, m.Reference.Kind)
			}
		}
	}
	for i, s := range cfg.Sources {
		if s.MaxWavelength < s.MinWavelength {
			return fmt.Errorf("source %d: max_wavelength below min_wavelength", i)
		}
	}
	if len(cfg.Sources) == 0 {
		return fmt.Errorf("at least one source is required")
	}
	return nil
}
