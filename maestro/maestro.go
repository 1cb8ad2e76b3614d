// Package maestro drives a Pololu Maestro servo controller over a
// serial port, using either the compact protocol or the device-numbered
// Pololu protocol. Every position command is checked against the config
// registry before any byte goes on the wire; an out-of-range or unknown
// target is refused, never transmitted.
package maestro

import (
	"errors"
	"fmt"
	"time"

	"craniod/config"
	"craniod/host/serial"
)

// Maestro serial command bytes (compact protocol).
const (
	cmdSetTarget       = 0x84
	cmdSetSpeed        = 0x87
	cmdSetAcceleration = 0x89
	cmdGetPosition     = 0x90
	cmdGetMovingState  = 0x93
	cmdGetErrors       = 0xA1
	cmdGoHome          = 0xA2

	// First byte of a Pololu-protocol frame.
	pololuStart = 0xAA
)

var (
	// ErrPositionOutOfRange is returned when a target fails the registry
	// bounds check. Nothing is written to the port in that case.
	ErrPositionOutOfRange = errors.New("position outside configured travel range")

	// ErrUnknownChannel is returned for channels with no configured range.
	ErrUnknownChannel = errors.New("channel not configured")

	// ErrResponseTimeout is returned when the controller does not answer
	// a read request in time.
	ErrResponseTimeout = errors.New("no response from controller")
)

// Controller is a connection to one Maestro. Methods are synchronous:
// the Maestro only ever sends bytes in reply to a request, so there is
// no background reader.
type Controller struct {
	port    serial.Port
	device  uint8 // Pololu-protocol device number; 0 = compact protocol
	useCRC  bool
	timeout time.Duration
}

// NewController creates a controller using the compact protocol
func NewController(port serial.Port) *Controller {
	return &Controller{
		port:    port,
		timeout: 2 * time.Second,
	}
}

// SetDeviceNumber switches to the Pololu protocol addressing the given
// device number. Needed when several Maestros share one serial line.
func (c *Controller) SetDeviceNumber(device uint8) {
	c.device = device
}

// EnableCRC appends a CRC-7 byte to every frame. The Maestro must have
// its serial CRC option enabled to match.
func (c *Controller) EnableCRC(on bool) {
	c.useCRC = on
}

// SetTarget commands a servo position in quarter-microsecond units.
// The target is validated against the channel's travel range first; on
// failure the command is refused and nothing is transmitted.
func (c *Controller) SetTarget(channel uint8, target uint16) error {
	if !config.IsValidPosition(channel, target) {
		if _, ok := config.LookupRange(channel); !ok {
			return fmt.Errorf("set target channel %d: %w", channel, ErrUnknownChannel)
		}
		return fmt.Errorf("set target channel %d position %d: %w", channel, target, ErrPositionOutOfRange)
	}

	return c.send(cmdSetTarget, channel, byte(target&0x7F), byte((target>>7)&0x7F))
}

// SetSpeed sets the Maestro's speed limit for a channel (0 = unlimited)
func (c *Controller) SetSpeed(channel uint8, speed uint16) error {
	return c.send(cmdSetSpeed, channel, byte(speed&0x7F), byte((speed>>7)&0x7F))
}

// SetAcceleration sets the acceleration limit for a channel (0 = unlimited)
func (c *Controller) SetAcceleration(channel uint8, accel uint16) error {
	return c.send(cmdSetAcceleration, channel, byte(accel&0x7F), byte((accel>>7)&0x7F))
}

// ApplyMotionProfiles pushes every configured motion profile to the
// controller. Call once after connecting, before any movement.
func (c *Controller) ApplyMotionProfiles() error {
	for _, p := range config.MotionProfiles() {
		if err := c.SetSpeed(p.Channel, p.Speed); err != nil {
			return fmt.Errorf("apply speed for channel %d: %w", p.Channel, err)
		}
		if err := c.SetAcceleration(p.Channel, p.Accel); err != nil {
			return fmt.Errorf("apply acceleration for channel %d: %w", p.Channel, err)
		}
	}
	return nil
}

// Home moves one channel to its configured home position
func (c *Controller) Home(channel uint8) error {
	r, ok := config.LookupRange(channel)
	if !ok {
		return fmt.Errorf("home channel %d: %w", channel, ErrUnknownChannel)
	}
	return c.SetTarget(channel, r.Home)
}

// HomeAll moves every configured channel to its home position
func (c *Controller) HomeAll() error {
	for _, ch := range config.Channels() {
		if err := c.Home(ch); err != nil {
			return err
		}
	}
	return nil
}

// GoHome sends the Maestro's own go-home command, which also applies to
// channels this host does not manage
func (c *Controller) GoHome() error {
	return c.send(cmdGoHome)
}

// GetPosition reads the current position of a channel in
// quarter-microsecond units
func (c *Controller) GetPosition(channel uint8) (uint16, error) {
	if err := c.send(cmdGetPosition, channel); err != nil {
		return 0, err
	}
	buf, err := c.readResponse(2)
	if err != nil {
		return 0, fmt.Errorf("get position channel %d: %w", channel, err)
	}
	return uint16(buf[0]) | uint16(buf[1])<<8, nil
}

// GetMovingState reports whether any servo is still moving toward its
// target (Mini Maestro only)
func (c *Controller) GetMovingState() (bool, error) {
	if err := c.send(cmdGetMovingState); err != nil {
		return false, err
	}
	buf, err := c.readResponse(1)
	if err != nil {
		return false, fmt.Errorf("get moving state: %w", err)
	}
	return buf[0] != 0, nil
}

// GetErrors reads and clears the Maestro's error register
func (c *Controller) GetErrors() (uint16, error) {
	if err := c.send(cmdGetErrors); err != nil {
		return 0, err
	}
	buf, err := c.readResponse(2)
	if err != nil {
		return 0, fmt.Errorf("get errors: %w", err)
	}
	return uint16(buf[0]) | uint16(buf[1])<<8, nil
}

// Close closes the underlying port
func (c *Controller) Close() error {
	return c.port.Close()
}

// send frames and writes one command
func (c *Controller) send(cmd byte, payload ...byte) error {
	frame := make([]byte, 0, 3+len(payload)+1)
	if c.device != 0 {
		// Pololu protocol: start byte, device number, command with the
		// high bit cleared.
		frame = append(frame, pololuStart, c.device, cmd&0x7F)
	} else {
		frame = append(frame, cmd)
	}
	frame = append(frame, payload...)
	if c.useCRC {
		frame = append(frame, CRC7(frame))
	}

	n, err := c.port.Write(frame)
	if err != nil {
		return fmt.Errorf("write command 0x%02X: %w", cmd, err)
	}
	if n != len(frame) {
		return fmt.Errorf("incomplete write: %d/%d bytes", n, len(frame))
	}
	return nil
}

// readResponse collects exactly n response bytes, tolerating the short
// timed-out reads the serial layer produces
func (c *Controller) readResponse(n int) ([]byte, error) {
	buf := make([]byte, n)
	got := 0
	deadline := time.Now().Add(c.timeout)

	for got < n {
		r, err := c.port.Read(buf[got:])
		if err != nil {
			return nil, err
		}
		got += r
		if r == 0 {
			if time.Now().After(deadline) {
				return nil, fmt.Errorf("%w after %v", ErrResponseTimeout, c.timeout)
			}
			time.Sleep(time.Millisecond)
		}
	}
	return buf, nil
}
