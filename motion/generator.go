// Package motion generates the skull's unscripted movement: a generator
// that draws moves from a registry envelope, and a scheduler that owns
// the timing loop and the scripted/dynamic mode state.
package motion

import (
	"math/rand"
	"time"

	"craniod/config"
)

// Move is one procedural movement: wait Delay, command Target on
// Channel, then hold the reached position for Hold.
type Move struct {
	Channel uint8
	Target  uint16
	Delay   time.Duration
	Hold    time.Duration
}

// Generator draws moves from a movement envelope. It owns no clock and
// performs no I/O; randomness comes from the injected source, so tests
// can seed it.
type Generator struct {
	env      config.MovementEnvelope
	channels []uint8
	rng      *rand.Rand
}

// NewGenerator creates a generator over the given channels. Channels
// without a configured range are skipped.
func NewGenerator(env config.MovementEnvelope, channels []uint8, rng *rand.Rand) *Generator {
	usable := make([]uint8, 0, len(channels))
	for _, ch := range channels {
		if _, ok := config.LookupRange(ch); ok {
			usable = append(usable, ch)
		}
	}
	return &Generator{
		env:      env,
		channels: usable,
		rng:      rng,
	}
}

// SetEnvelope switches the envelope the next draws use
func (g *Generator) SetEnvelope(env config.MovementEnvelope) {
	g.env = env
}

// Next draws the next move. The target is uniform inside
// home +/- intensity * (distance from home to the range edge), so it
// always satisfies the position bounds check.
func (g *Generator) Next() Move {
	ch := g.channels[g.rng.Intn(len(g.channels))]
	r, _ := config.LookupRange(ch)

	// Reach is scaled independently toward each edge because home is
	// not necessarily centered in the range.
	reachDown := g.env.Intensity * float64(r.Home-r.Min)
	reachUp := g.env.Intensity * float64(r.Max-r.Home)

	offset := -reachDown + g.rng.Float64()*(reachDown+reachUp)
	target := uint16(int32(r.Home) + int32(offset))
	if target < r.Min {
		target = r.Min
	}
	if target > r.Max {
		target = r.Max
	}

	return Move{
		Channel: ch,
		Target:  target,
		Delay:   g.uniformMS(g.env.MinInterval, g.env.MaxInterval),
		Hold:    g.uniformMS(g.env.MinHold, g.env.MaxHold),
	}
}

// uniformMS draws a duration uniformly from the closed range [min, max]
func (g *Generator) uniformMS(min, max uint32) time.Duration {
	ms := min
	if max > min {
		ms += uint32(g.rng.Int63n(int64(max-min) + 1))
	}
	return time.Duration(ms) * time.Millisecond
}
