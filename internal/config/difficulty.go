package config

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed" // only 2s spawn
)

// Presets lists every known preset.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// Valid reports whether p is a known preset.
func (p DifficultyPreset) Valid() bool {
	switch p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return true
	}
	return false
}

// SpawnFourProbabilityForPreset returns the spawn_four_probability for a preset.
// More 4s crowd the board faster.
func SpawnFourProbabilityForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.05
	case DifficultyHard:
		return 0.25
	case DifficultyFixed:
		return 0.0
	default:
		return 0.10
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// An empty preset leaves the loaded rules untouched.
func ApplyPreset(cfg *T2048Config, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	cfg.Rules.SpawnFourProbability = SpawnFourProbabilityForPreset(preset)
}
