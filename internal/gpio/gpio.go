// Package gpio provides digital pin input and output with hardware abstraction.
// Three backends are available: the Linux GPIO character device (default),
// periph.io and memory-mapped go-rpio. The fake implementations allow testing
// without hardware.
package gpio

import (
	"errors"
	"fmt"
	"io"
)

// ErrUnsupported is returned by backends that cannot run on this platform.
var ErrUnsupported = errors.New("gpio: not supported on this platform")

// ErrUnknownDriver is returned by Open for a driver name it does not know.
var ErrUnknownDriver = errors.New("gpio: unknown driver")

// Level is the binary value of a line.
type Level bool

const (
	Low  Level = false
	High Level = true
)

// String returns the string representation of the level.
func (l Level) String() string {
	if l == High {
		return "High"
	}
	return "Low"
}

// Int returns 1 for High and 0 for Low.
func (l Level) Int() int {
	if l == High {
		return 1
	}
	return 0
}

// LevelOf converts a raw line value into a Level. Any non-zero value is High.
func LevelOf(v int) Level {
	return v != 0
}

// Input reads the level of a single line.
type Input interface {
	// Read samples the current level of the line.
	Read() (Level, error)
	io.Closer
}

// Output drives the level of a single line.
type Output interface {
	// Write sets the level of the line.
	Write(Level) error
	io.Closer
}

// Driver opens lines by their BCM number.
type Driver interface {
	// OpenInput requests the line as an input with the pull-up bias enabled.
	// Buttons are wired active-low: pressed pulls the line Low.
	OpenInput(line int) (Input, error)

	// OpenOutput requests the line as an output driven to idle from the
	// start. Closing the output drives it back to idle before release.
	OpenOutput(line int, idle Level) (Output, error)

	// Close releases the driver. Lines must be closed independently.
	Close() error
}

// idleOutput drives its line back to the idle level when closed.
type idleOutput struct {
	Output
	idle Level
}

func withIdle(out Output, idle Level) Output {
	return &idleOutput{Output: out, idle: idle}
}

func (o *idleOutput) Close() error {
	var errs []error
	if err := o.Output.Write(o.idle); err != nil {
		errs = append(errs, fmt.Errorf("restore idle level %s: %w", o.idle, err))
	}
	if err := o.Output.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Driver names accepted by Open.
const (
	DriverCdev   = "cdev"
	DriverPeriph = "periph"
	DriverRpio   = "rpio"
)

// Open returns the named backend. chip is only used by the cdev backend.
func Open(name, chip string) (Driver, error) {
	var (
		d   Driver
		err error
	)
	switch name {
	case DriverCdev, "":
		d, err = NewCdevDriver(chip)
	case DriverPeriph:
		d, err = NewPeriphDriver()
	case DriverRpio:
		d, err = NewRpioDriver()
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownDriver, name)
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}
