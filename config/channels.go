// Package config is the single source of truth for the skull's motion
// bounds: servo travel ranges, per-channel motion shaping, movement
// envelopes for procedural modes, and the fixed eye/timing constants.
// Everything is a compiled-in literal table. Lookups return copies and
// the validators are pure functions over immutable data, so any number
// of goroutines may call in without coordination.
package config

// Servo channel assignments on the Maestro.
const (
	PanChannel uint8 = 0
	NodChannel uint8 = 1
	JawChannel uint8 = 2
)

// Named servo positions in Maestro quarter-microsecond units
// (6000 = 1500us pulse width).
const (
	PanLeft   uint16 = 4416
	PanCenter uint16 = 6000
	PanRight  uint16 = 7232

	NodUp     uint16 = 4224
	NodCenter uint16 = 4600
	NodDown   uint16 = 4992

	JawClosed uint16 = 5888
	JawOpen   uint16 = 6528
)

// ChannelRange holds the travel bounds for one servo channel.
// Min and Max form a closed interval and Home always lies inside it.
type ChannelRange struct {
	Channel uint8
	Min     uint16
	Max     uint16
	Home    uint16
}

// MotionProfile holds the Maestro speed/acceleration shaping for one
// channel. Zero is the Maestro sentinel for unlimited.
type MotionProfile struct {
	Channel uint8
	Speed   uint16 // 0.25 us / 10 ms per unit
	Accel   uint16 // 0.25 us / 10 ms / 80 ms per unit
}

var channelRanges = [...]ChannelRange{
	{Channel: PanChannel, Min: PanLeft, Max: PanRight, Home: PanCenter},
	{Channel: NodChannel, Min: NodUp, Max: NodDown, Home: NodCenter},
	{Channel: JawChannel, Min: JawClosed, Max: JawOpen, Home: JawClosed},
}

// Independent from channelRanges: a channel may carry a range with no
// profile, or the other way around. Association is by channel id only.
var motionProfiles = [...]MotionProfile{
	{Channel: PanChannel, Speed: 60, Accel: 30},
	{Channel: NodChannel, Speed: 50, Accel: 25},
	{Channel: JawChannel, Speed: 0, Accel: 100}, // jaw: unlimited speed for snappy talking
}

// LookupRange returns the travel range for a channel. The second result
// is false when the channel is not configured; callers must treat that
// as a normal outcome, not a failure.
func LookupRange(channel uint8) (ChannelRange, bool) {
	for _, r := range channelRanges {
		if r.Channel == channel {
			return r, true
		}
	}
	return ChannelRange{}, false
}

// LookupMotionProfile returns the motion shaping for a channel.
func LookupMotionProfile(channel uint8) (MotionProfile, bool) {
	for _, p := range motionProfiles {
		if p.Channel == channel {
			return p, true
		}
	}
	return MotionProfile{}, false
}

// Channels returns the configured channel ids in table order.
func Channels() []uint8 {
	ids := make([]uint8, 0, len(channelRanges))
	for _, r := range channelRanges {
		ids = append(ids, r.Channel)
	}
	return ids
}

// MotionProfiles returns a copy of the profile table, for drivers that
// push all shaping to the controller at startup.
func MotionProfiles() []MotionProfile {
	out := make([]MotionProfile, len(motionProfiles))
	copy(out, motionProfiles[:])
	return out
}
