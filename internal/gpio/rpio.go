//go:build linux

package gpio

import (
	"fmt"

	"github.com/stianeikeland/go-rpio/v4"
)

// RpioDriver drives lines through /dev/gpiomem using go-rpio.
type RpioDriver struct{}

// NewRpioDriver maps the GPIO memory range.
func NewRpioDriver() (*RpioDriver, error) {
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("open gpiomem: %w", err)
	}
	return &RpioDriver{}, nil
}

// OpenInput sets the pin as input with pull-up.
func (d *RpioDriver) OpenInput(line int) (Input, error) {
	p := rpio.Pin(line)
	p.Input()
	p.PullUp()
	return rpioLine(line), nil
}

// OpenOutput sets the pin as output driven to idle.
func (d *RpioDriver) OpenOutput(line int, idle Level) (Output, error) {
	p := rpio.Pin(line)
	if idle == High {
		p.High()
	} else {
		p.Low()
	}
	p.Output()
	return withIdle(rpioOutput{rpioLine(line)}, idle), nil
}

// Close unmaps the GPIO memory.
func (d *RpioDriver) Close() error {
	return rpio.Close()
}

type rpioLine int

func (r rpioLine) Read() (Level, error) {
	return Level(rpio.Pin(r).Read() == rpio.High), nil
}

func (r rpioLine) Write(l Level) error {
	if l == High {
		rpio.Pin(r).High()
	} else {
		rpio.Pin(r).Low()
	}
	return nil
}

// rpioOutput keeps driving its last level after Close.
type rpioOutput struct {
	rpioLine
}

func (rpioOutput) Close() error {
	return nil
}

// Close leaves the pin as an input with pull-down, like the Pi boots.
func (r rpioLine) Close() error {
	p := rpio.Pin(r)
	p.Input()
	p.PullDown()
	return nil
}
