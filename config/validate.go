package config

// Eye offset bounds in screen pixels from the eye center. These are
// display coordinates, not servo units; an eye offset must never be
// checked against a servo travel range.
const (
	EyeOffsetMaxH int16 = 60
	EyeOffsetMaxV int16 = 30
)

// Global duration bounds in milliseconds. Every duration in the system
// (hold times, animation lengths, movement intervals) shares this floor
// and ceiling.
const (
	MinDurationMS uint32 = 10
	MaxDurationMS uint32 = 30000
)

// IsValidPosition reports whether pos lies inside the channel's travel
// range, inclusive on both ends. Unknown channels are never valid.
func IsValidPosition(channel uint8, pos uint16) bool {
	r, ok := LookupRange(channel)
	if !ok {
		return false
	}
	return pos >= r.Min && pos <= r.Max
}

// IsValidEyeOffset reports whether both offsets lie inside the fixed
// symmetric eye bounds.
func IsValidEyeOffset(h, v int16) bool {
	return h >= -EyeOffsetMaxH && h <= EyeOffsetMaxH &&
		v >= -EyeOffsetMaxV && v <= EyeOffsetMaxV
}

// IsValidDuration reports whether a millisecond duration lies inside
// the global floor/ceiling.
func IsValidDuration(ms uint32) bool {
	return ms >= MinDurationMS && ms <= MaxDurationMS
}
