package config

import (
	_ "embed"
)

//go:embed defaults/t2048.yaml
var defaultT2048YAML []byte

// DefaultT2048Config returns the built-in configuration.
func DefaultT2048Config() T2048Config {
	return T2048Config{
		Rules: RulesConfig{
			SpawnFourProbability: 0.10,
			Target:               2048,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultT2048YAML
}
