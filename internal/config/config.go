// Package config provides YAML-based rules loading and difficulty presets
// for 2048.
package config

import (
	"fmt"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// T2048Config contains all configuration for the game.
type T2048Config struct {
	Rules RulesConfig `yaml:"rules"`
}

// RulesConfig defines the tunable game rules.
type RulesConfig struct {
	SpawnFourProbability float64 `yaml:"spawn_four_probability"` // chance a spawned tile is a 4
	Target               int     `yaml:"target"`                 // tile that wins a classic game
}

// Validate checks that the rules are playable.
func (c T2048Config) Validate() error {
	p := c.Rules.SpawnFourProbability
	if p < 0 || p > 1 {
		return fmt.Errorf("config: spawn_four_probability %v out of range [0, 1]", p)
	}
	if c.Rules.Target < 0 {
		return fmt.Errorf("config: target %d must not be negative", c.Rules.Target)
	}
	if t := c.Rules.Target; t != 0 && t&(t-1) != 0 {
		return fmt.Errorf("config: target %d is not a power of two", t)
	}
	return nil
}

// CoreRules converts the config into the rules a game is reset with.
func (c T2048Config) CoreRules() core.Rules {
	return core.Rules{
		SpawnFourProb: c.Rules.SpawnFourProbability,
		Target:        c.Rules.Target,
	}
}
