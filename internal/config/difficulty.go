package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// presetScale holds the multipliers a preset applies to the base config.
type presetScale struct {
	speed  float64
	paddle float64
}

var presets = map[DifficultyPreset]presetScale{
	DifficultyEasy:   {speed: 0.75, paddle: 1.25},
	DifficultyNormal: {speed: 1, paddle: 1},
	DifficultyHard:   {speed: 1.5, paddle: 0.8},
}

// ParsePreset validates a preset name. The empty string means no preset.
func ParsePreset(name string) (DifficultyPreset, error) {
	if name == "" {
		return "", nil
	}
	p := DifficultyPreset(name)
	if _, ok := presets[p]; !ok {
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", name)
	}
	return p, nil
}

// ApplyBreakoutPreset scales ball speed and paddle width. It must be applied
// before a session starts since the speed magnitude is fixed per session.
func ApplyBreakoutPreset(cfg *BreakoutConfig, preset DifficultyPreset) {
	s, ok := presets[preset]
	if !ok {
		return
	}
	cfg.Ball.Speed *= s.speed
	cfg.Paddle.Width *= s.paddle
}
