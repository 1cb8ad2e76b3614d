package script

import (
	"fmt"
	"time"

	"craniod/config"
)

// Servos is the servo surface sequences play against
type Servos interface {
	SetTarget(channel uint8, target uint16) error
}

// EyeSink receives eye offsets from sequences
type EyeSink interface {
	SetOffset(h, v int16) error
}

// Player executes validated sequences step by step
type Player struct {
	servos Servos
	eyes   EyeSink

	// sleep is swappable so tests run instantly
	sleep func(time.Duration)
}

// NewPlayer wires a player to its sinks
func NewPlayer(servos Servos, eyes EyeSink) *Player {
	return &Player{
		servos: servos,
		eyes:   eyes,
		sleep:  time.Sleep,
	}
}

// Play runs every step in order, stopping at the first failure
func (p *Player) Play(seq *Sequence) error {
	for i, step := range seq.Steps {
		switch {
		case step.Servo != nil:
			sv := step.Servo
			if err := p.servos.SetTarget(sv.Channel, sv.Position); err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
			if sv.HoldMS != 0 {
				p.sleep(time.Duration(sv.HoldMS) * time.Millisecond)
			}

		case step.Eyes != nil:
			ey := step.Eyes
			if err := p.eyes.SetOffset(ey.H, ey.V); err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
			ms := ey.DurationMS
			if ms == 0 {
				ms = config.EyeAnimationMS
			}
			p.sleep(time.Duration(ms) * time.Millisecond)

		default:
			p.sleep(time.Duration(step.PauseMS) * time.Millisecond)
		}
	}
	return nil
}
