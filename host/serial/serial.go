package serial

import (
	"io"
)

// Port represents a serial port interface
// This abstraction allows for different implementations:
// - Native serial (using github.com/tarm/serial)
// - Mock serial (for testing)
type Port interface {
	io.ReadWriteCloser

	// Flush flushes any buffered data
	Flush() error
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "COM3")
	Device string

	// Baud rate (the Maestro's USB command port ignores this; it matters
	// for the TTL serial pins)
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultConfig returns a default configuration for a Maestro command port
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        9600, // Maestro UART default; USB CDC ignores it
		ReadTimeout: 100,  // 100ms read timeout
	}
}
