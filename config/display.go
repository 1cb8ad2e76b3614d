package config

// Eye geometry on the 240x240 round display.
const (
	ScreenWidth  = 240
	ScreenHeight = 240
	EyeCenterX   = 120
	EyeCenterY   = 120
	PupilRadius  = 20
	EyelidWidth  = 240
	EyelidHeight = 120
)

// Named eye offsets for scripted looks.
const (
	EyeLeft  int16 = -40
	EyeRight int16 = 40
	EyeUp    int16 = -30
	EyeDown  int16 = 30
)

// Blink and eye animation timing, milliseconds. Blinks are scheduled at
// a random interval inside [BlinkIntervalMinMS, BlinkIntervalMaxMS].
const (
	BlinkIntervalMinMS uint32 = 1000
	BlinkIntervalMaxMS uint32 = 5000

	EyeAnimationMS uint32 = 500
	BlinkCloseMS   uint32 = 150
	BlinkPauseMS   uint32 = 100
	BlinkOpenMS    uint32 = 150
)
