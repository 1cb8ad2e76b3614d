// Package script loads and plays scripted animation sequences. A
// sequence is a YAML document of ordered steps; every step is validated
// against the config registry at load time, so playback never issues an
// out-of-bounds command.
package script

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"craniod/config"
)

// Sequence is one scripted animation
type Sequence struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step is one sequence entry. Exactly one of the three actions must be
// set.
type Step struct {
	Servo   *ServoStep `yaml:"servo,omitempty"`
	Eyes    *EyeStep   `yaml:"eyes,omitempty"`
	PauseMS uint32     `yaml:"pause_ms,omitempty"`
}

// ServoStep commands one servo position and holds it
type ServoStep struct {
	Channel  uint8  `yaml:"channel"`
	Position uint16 `yaml:"position"`
	HoldMS   uint32 `yaml:"hold_ms"`
}

// EyeStep commands an eye offset animated over a duration
type EyeStep struct {
	H          int16  `yaml:"h"`
	V          int16  `yaml:"v"`
	DurationMS uint32 `yaml:"duration_ms"`
}

// Load parses and validates a sequence document
func Load(data []byte) (*Sequence, error) {
	var seq Sequence
	if err := yaml.Unmarshal(data, &seq); err != nil {
		return nil, fmt.Errorf("parse sequence: %w", err)
	}
	if err := seq.Validate(); err != nil {
		return nil, err
	}
	return &seq, nil
}

// Validate checks every step against the registry bounds
func (s *Sequence) Validate() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("sequence %q has no steps", s.Name)
	}

	for i, step := range s.Steps {
		actions := 0
		if step.Servo != nil {
			actions++
		}
		if step.Eyes != nil {
			actions++
		}
		if step.PauseMS != 0 {
			actions++
		}
		if actions != 1 {
			return fmt.Errorf("step %d: want exactly one of servo, eyes, pause_ms", i)
		}

		switch {
		case step.Servo != nil:
			sv := step.Servo
			if !config.IsValidPosition(sv.Channel, sv.Position) {
				return fmt.Errorf("step %d: position %d invalid for channel %d", i, sv.Position, sv.Channel)
			}
			if sv.HoldMS != 0 && !config.IsValidDuration(sv.HoldMS) {
				return fmt.Errorf("step %d: hold %d ms outside duration bounds", i, sv.HoldMS)
			}

		case step.Eyes != nil:
			ey := step.Eyes
			if !config.IsValidEyeOffset(ey.H, ey.V) {
				return fmt.Errorf("step %d: eye offset (%d, %d) out of bounds", i, ey.H, ey.V)
			}
			if ey.DurationMS != 0 && !config.IsValidDuration(ey.DurationMS) {
				return fmt.Errorf("step %d: duration %d ms outside duration bounds", i, ey.DurationMS)
			}

		default:
			if !config.IsValidDuration(step.PauseMS) {
				return fmt.Errorf("step %d: pause %d ms outside duration bounds", i, step.PauseMS)
			}
		}
	}
	return nil
}
