package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rgehrsitz/dreamplan/internal/domain"
)

// SettingsFileName is the assumptions file looked up in the config directory
const SettingsFileName = "assumptions.toml"

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "dreamplan")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "dreamplan")
}

// DefaultSettingsPath returns the full path to the assumptions file.
func DefaultSettingsPath() string {
	return filepath.Join(ConfigDir(), SettingsFileName)
}

// settingsFile defers decoding so that a table in the file only overrides
// the keys it names.
type settingsFile struct {
	Assumptions toml.Primitive                         `toml:"assumptions"`
	Strategies  map[domain.StrategyName]toml.Primitive `toml:"strategies"`
	ChildCosts  toml.Primitive                         `toml:"child_costs"`
}

type childCostsFile struct {
	Phases map[domain.ChildPhase]toml.Primitive `toml:"phases"`
}

// LoadEngineSettings reads an assumptions file over the built-in defaults.
// An empty path uses DefaultSettingsPath, and a missing default file yields
// the defaults. A missing explicit path is an error.
func LoadEngineSettings(path string) (domain.EngineSettings, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultSettingsPath()
	}

	settings := domain.DefaultEngineSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return settings, nil
		}
		return settings, fmt.Errorf("reading settings %s: %w", path, err)
	}

	if err := DecodeEngineSettings(string(data), &settings); err != nil {
		return settings, fmt.Errorf("parsing settings %s: %w", path, err)
	}
	if err := settings.Validate(); err != nil {
		return settings, fmt.Errorf("settings validation failed: %w", err)
	}
	return settings, nil
}

// DecodeEngineSettings merges TOML text into settings
func DecodeEngineSettings(text string, settings *domain.EngineSettings) error {
	var raw settingsFile
	md, err := toml.Decode(text, &raw)
	if err != nil {
		return err
	}

	if md.IsDefined("assumptions") {
		if err := md.PrimitiveDecode(raw.Assumptions, &settings.Assumptions); err != nil {
			return fmt.Errorf("assumptions: %w", err)
		}
	}

	if len(raw.Strategies) > 0 && settings.Strategies == nil {
		settings.Strategies = domain.StrategyConfigs{}
	}
	for name, prim := range raw.Strategies {
		cfg := settings.Strategies[name]
		if cfg.Name == "" {
			cfg.Name = string(name)
		}
		if err := md.PrimitiveDecode(prim, &cfg); err != nil {
			return fmt.Errorf("strategies.%s: %w", name, err)
		}
		settings.Strategies[name] = cfg
	}

	if md.IsDefined("child_costs") {
		if err := decodeChildCosts(md, raw.ChildCosts, &settings.ChildCosts); err != nil {
			return fmt.Errorf("child_costs: %w", err)
		}
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func decodeChildCosts(md toml.MetaData, prim toml.Primitive, table *domain.ChildCostTable) error {
	phases := make(map[domain.ChildPhase]domain.PhaseCost, len(table.Phases))
	for k, v := range table.Phases {
		phases[k] = v
	}

	table.Phases = nil
	if err := md.PrimitiveDecode(prim, table); err != nil {
		return err
	}

	var overrides childCostsFile
	if err := md.PrimitiveDecode(prim, &overrides); err != nil {
		return err
	}
	for phase, p := range overrides.Phases {
		band := phases[phase]
		if err := md.PrimitiveDecode(p, &band); err != nil {
			return fmt.Errorf("phases.%s: %w", phase, err)
		}
		phases[phase] = band
	}
	table.Phases = phases
	return nil
}
