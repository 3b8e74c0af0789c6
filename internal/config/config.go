// Package config loads the service's YAML configuration file, in the
// same shape and with the same environment-variable expansion the
// teacher pack's services use for theirs.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/fulcrumgenomics/ref-solver/internal/matching"
)

// Server holds the HTTP-API-facing settings.
type Server struct {
	Port    int    `yaml:"port"`
	Catalog string `yaml:"catalog"`
	Debug   bool   `yaml:"debug"`
}

// Scoring mirrors matching.Config in a YAML-friendly shape: plain
// floats and ints rather than the matching package's own types, so the
// file format doesn't need to know about Weights or Confidence.
type Scoring struct {
	ConflictCredit     float64 `yaml:"conflict_credit"`
	WeightMatchQuality float64 `yaml:"weight_match_quality"`
	WeightCoverage     float64 `yaml:"weight_coverage"`
	WeightOrder        float64 `yaml:"weight_order"`
	MinComposite       float64 `yaml:"min_composite"`
	DefaultLimit       int     `yaml:"default_limit"`
}

// Config is the top-level configuration file shape.
type Config struct {
	Server  Server  `yaml:"server"`
	Scoring Scoring `yaml:"scoring"`
}

// Default returns the configuration the service runs with when no file
// is supplied, matching matching.DefaultConfig's values.
func Default() Config {
	mc := matching.DefaultConfig()
	return Config{
		Server: Server{
			Port:    8080,
			Catalog: "",
			Debug:   false,
		},
		Scoring: Scoring{
			ConflictCredit:     mc.ConflictCredit,
			WeightMatchQuality: mc.Weights.MatchQuality,
			WeightCoverage:     mc.Weights.Coverage,
			WeightOrder:        mc.Weights.Order,
			MinComposite:       mc.MinComposite,
			DefaultLimit:       5,
		},
	}
}

// Load reads and parses a YAML configuration file, expanding
// ${VAR}-style environment references before unmarshalling, filling
// every field the file omits with Default's value, then applying any
// REFSOLVE_<FIELD> environment overrides on top of the file's values.
// Overrides are read once, here, at load time; nothing in this package
// watches the environment afterward.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	raw = []byte(os.ExpandEnv(string(raw)))

	cfg := Default()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// envOverride looks up name and, if set, parses it with parse and
// assigns it through set. Field-by-field rather than a generic
// reflection pass, so a malformed value names exactly which
// REFSOLVE_<FIELD> variable is at fault.
func envOverride(name string, set func(string) error) error {
	v, ok := os.LookupEnv(name)
	if !ok {
		return nil
	}
	if err := set(v); err != nil {
		return fmt.Errorf("%s=%q: %w", name, v, err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) error {
	overrides := []struct {
		name string
		set  func(string) error
	}{
		{"REFSOLVE_SERVER_PORT", func(v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return err
			}
			cfg.Server.Port = n
			return nil
		}},
		{"REFSOLVE_SERVER_CATALOG", func(v string) error {
			cfg.Server.Catalog = v
			return nil
		}},
		{"REFSOLVE_SERVER_DEBUG", func(v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return err
			}
			cfg.Server.Debug = b
			return nil
		}},
		{"REFSOLVE_SCORING_CONFLICT_CREDIT", func(v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return err
			}
			cfg.Scoring.ConflictCredit = f
			return nil
		}},
		{"REFSOLVE_SCORING_WEIGHT_MATCH_QUALITY", func(v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return err
			}
			cfg.Scoring.WeightMatchQuality = f
			return nil
		}},
		{"REFSOLVE_SCORING_WEIGHT_COVERAGE", func(v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return err
			}
			cfg.Scoring.WeightCoverage = f
			return nil
		}},
		{"REFSOLVE_SCORING_WEIGHT_ORDER", func(v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return err
			}
			cfg.Scoring.WeightOrder = f
			return nil
		}},
		{"REFSOLVE_SCORING_MIN_COMPOSITE", func(v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return err
			}
			cfg.Scoring.MinComposite = f
			return nil
		}},
		{"REFSOLVE_SCORING_DEFAULT_LIMIT", func(v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return err
			}
			cfg.Scoring.DefaultLimit = n
			return nil
		}},
	}
	for _, o := range overrides {
		if err := envOverride(o.name, o.set); err != nil {
			return err
		}
	}
	return nil
}

// MatchingConfig converts the scoring section into a matching.Config.
// DefaultLimit has no matching.Config counterpart: it governs how many
// results the CLI and HTTP layers ask FindMatches for when the caller
// doesn't specify a limit, not how FindMatches itself scores.
func (c Config) MatchingConfig() matching.Config {
	return matching.Config{
		ConflictCredit: c.Scoring.ConflictCredit,
		Weights: matching.Weights{
			MatchQuality: c.Scoring.WeightMatchQuality,
			Coverage:     c.Scoring.WeightCoverage,
			Order:        c.Scoring.WeightOrder,
		},
		MinComposite: c.Scoring.MinComposite,
	}
}
