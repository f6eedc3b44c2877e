package intel

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// LoadConfig builds an IntelConfig by layering defaults, an optional YAML
// file, and environment variables.
// Order of precedence (low -> high):
//  1. defaults (DefaultIntelConfig)
//  2. file (YAML) if INTEL_CONFIG is set
//  3. env (prefix INTEL_)
func LoadConfig() (*IntelConfig, error) {
	base := DefaultIntelConfig()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("INTEL_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: INTEL_ROSTER_PATH, INTEL_ATTACK_WEIGHT, ...
	// Map env keys like INTEL_ATTACK_WEIGHT -> attack_weight (flat keys).
	// Underscores are preserved to match the koanf tags on the struct.
	envProvider := env.Provider("INTEL_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "intel_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	// Unmarshal into a copy of the defaults
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	cfg.PossessionWeight = 1.0 - cfg.AttackWeight

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}

	UpdateConfig(&cfg)
	return &cfg, nil
}
