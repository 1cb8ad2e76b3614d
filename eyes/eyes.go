// Package eyes is the boundary between eye-offset commands and whatever
// renders the eyes. It validates and clamps offsets against the config
// bounds and derives screen geometry and blink timing from the registry
// constants, so no caller re-declares them.
package eyes

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"craniod/config"
)

// ErrOffsetOutOfRange is returned for offsets outside the configured
// bounds; the offending values are carried in the wrapping error text.
var ErrOffsetOutOfRange = errors.New("eye offset outside configured bounds")

// State tracks the last accepted eye offset. Rejecting invalid offsets
// before they reach a renderer is this layer's contract.
type State struct {
	mu   sync.Mutex
	h, v int16
}

// NewState creates a centered eye state
func NewState() *State {
	return &State{}
}

// SetOffset accepts a validated offset or refuses without changing
// state
func (s *State) SetOffset(h, v int16) error {
	if !config.IsValidEyeOffset(h, v) {
		return fmt.Errorf("offset (%d, %d): %w", h, v, ErrOffsetOutOfRange)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.h, s.v = h, v
	return nil
}

// Offset returns the current offset
func (s *State) Offset() (h, v int16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h, s.v
}

// Center returns the eyes to the neutral offset
func (s *State) Center() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.h, s.v = 0, 0
}

// Clamp forces an offset into the configured bounds, for callers that
// prefer clamping over rejection
func Clamp(h, v int16) (int16, int16) {
	if h > config.EyeOffsetMaxH {
		h = config.EyeOffsetMaxH
	}
	if h < -config.EyeOffsetMaxH {
		h = -config.EyeOffsetMaxH
	}
	if v > config.EyeOffsetMaxV {
		v = config.EyeOffsetMaxV
	}
	if v < -config.EyeOffsetMaxV {
		v = -config.EyeOffsetMaxV
	}
	return h, v
}

// PupilCenter maps an offset to pupil screen coordinates. The offset is
// clamped first so the pupil can never be drawn outside its bounds.
func PupilCenter(h, v int16) (x, y int) {
	h, v = Clamp(h, v)
	return config.EyeCenterX + int(h), config.EyeCenterY + int(v)
}

// BlinkPlan is the three phases of one blink
type BlinkPlan struct {
	Close time.Duration
	Pause time.Duration
	Open  time.Duration
}

// Blink returns the standard blink plan from the registry timing
// constants
func Blink() BlinkPlan {
	return BlinkPlan{
		Close: time.Duration(config.BlinkCloseMS) * time.Millisecond,
		Pause: time.Duration(config.BlinkPauseMS) * time.Millisecond,
		Open:  time.Duration(config.BlinkOpenMS) * time.Millisecond,
	}
}

// NextBlinkInterval draws the gap until the next spontaneous blink
func NextBlinkInterval(rng *rand.Rand) time.Duration {
	span := int64(config.BlinkIntervalMaxMS - config.BlinkIntervalMinMS)
	ms := int64(config.BlinkIntervalMinMS) + rng.Int63n(span+1)
	return time.Duration(ms) * time.Millisecond
}
