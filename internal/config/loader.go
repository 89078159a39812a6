package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// Bundle is every config table a simulation needs to build its roster
// and ability registry, loaded together so a single missing file fails
// the run before any units are constructed.
type Bundle struct {
	Defaults  Defaults
	Units     UnitsConfig
	Abilities AbilitiesConfig
	Traits    TraitsConfig
	Items     ItemsConfig
}

// LoadAll reads defaults.yaml, units.yaml, abilities.yaml, traits.yaml,
// and items.yaml from dir.
func LoadAll(dir string) (*Bundle, error) {
	var b Bundle
	if err := loadYAML(filepath.Join(dir, "defaults.yaml"), &b.Defaults); err != nil {
		return nil, err
	}
	if err := loadYAML(filepath.Join(dir, "units.yaml"), &b.Units); err != nil {
		return nil, err
	}
	if err := loadYAML(filepath.Join(dir, "abilities.yaml"), &b.Abilities); err != nil {
		return nil, err
	}
	if err := loadYAML(filepath.Join(dir, "traits.yaml"), &b.Traits); err != nil {
		return nil, err
	}
	if err := loadYAML(filepath.Join(dir, "items.yaml"), &b.Items); err != nil {
		return nil, err
	}
	return &b, nil
}
