// internal/game/tuning.go
//
// Tunable engine constants with optional YAML overrides. Defaults match the
// documented thresholds; a missing tuning file is not an error — the engine
// runs on defaults, the same way the config loader in similar services treats
// absent override files.

package game

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds the probability thresholds the rules engine rolls against.
// Every draw compares as rng.Float64() < threshold.
type Tuning struct {
	// DoublePlayChance applies on a groundout with a runner on first and
	// fewer than two outs.
	DoublePlayChance float64 `yaml:"double_play_chance"`

	// StealSuccess covers attempts on second and third base.
	StealSuccess float64 `yaml:"steal_success"`

	// StealHomeSuccess is the fixed window for stealing home.
	StealHomeSuccess float64 `yaml:"steal_home_success"`

	// PickoffSuccess is the pitcher's window to pick a runner off.
	PickoffSuccess float64 `yaml:"pickoff_success"`

	// AutoReplacePitchCount is the pitch count at which a CPU pitcher is
	// replaced with the next bullpen arm before the next plate appearance.
	AutoReplacePitchCount int `yaml:"auto_replace_pitch_count"`
}

// DefaultTuning returns the stock thresholds.
func DefaultTuning() Tuning {
	return Tuning{
		DoublePlayChance:      0.55,
		StealSuccess:          0.70,
		StealHomeSuccess:      0.30,
		PickoffSuccess:        0.15,
		AutoReplacePitchCount: 100,
	}
}

// LoadTuning reads YAML overrides from path on top of the defaults.
// An empty path or a missing file yields the defaults without error.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return t, nil
		}
		return t, fmt.Errorf("read tuning %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &t); err != nil {
		return DefaultTuning(), fmt.Errorf("parse tuning %s: %w", path, err)
	}
	if err := t.validate(); err != nil {
		return DefaultTuning(), fmt.Errorf("tuning %s: %w", path, err)
	}
	return t, nil
}

func (t Tuning) validate() error {
	for name, p := range map[string]float64{
		"double_play_chance": t.DoublePlayChance,
		"steal_success":      t.StealSuccess,
		"steal_home_success": t.StealHomeSuccess,
		"pickoff_success":    t.PickoffSuccess,
	} {
		if p < 0 || p > 1 {
			return fmt.Errorf("%s must be in [0,1], got %v", name, p)
		}
	}
	if t.AutoReplacePitchCount <= fatigueKnee {
		return fmt.Errorf("auto_replace_pitch_count must exceed %d", fatigueKnee)
	}
	return nil
}
