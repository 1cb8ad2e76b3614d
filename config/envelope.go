package config

// Behavioral mode names selecting a movement envelope.
const (
	ModeIdle    = "idle"
	ModeTalking = "talking"
)

// MovementEnvelope bounds the unscripted movement generator for one
// behavioral mode: how often the skull moves, how far from home relative
// to the travel range, and how long a reached position is held.
// Intervals and holds are milliseconds.
type MovementEnvelope struct {
	MinInterval uint32
	MaxInterval uint32
	Intensity   float64 // 0.0..1.0 fraction of the distance from home to the range edge
	MinHold     uint32
	MaxHold     uint32
}

type namedEnvelope struct {
	mode     string
	envelope MovementEnvelope
}

var movementEnvelopes = [...]namedEnvelope{
	{ModeIdle, MovementEnvelope{
		MinInterval: 1000,
		MaxInterval: 4000,
		Intensity:   0.7,
		MinHold:     500,
		MaxHold:     2000,
	}},
	// Talking: frequent small head movements layered under jaw motion.
	{ModeTalking, MovementEnvelope{
		MinInterval: 200,
		MaxInterval: 800,
		Intensity:   0.35,
		MinHold:     100,
		MaxHold:     400,
	}},
}

// LookupEnvelope returns the movement envelope for a behavioral mode.
func LookupEnvelope(mode string) (MovementEnvelope, bool) {
	for _, e := range movementEnvelopes {
		if e.mode == mode {
			return e.envelope, true
		}
	}
	return MovementEnvelope{}, false
}

// Envelopes returns the defined mode names in table order.
func Envelopes() []string {
	modes := make([]string, 0, len(movementEnvelopes))
	for _, e := range movementEnvelopes {
		modes = append(modes, e.mode)
	}
	return modes
}
