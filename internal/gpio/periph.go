package gpio

import (
	"fmt"
	"strconv"

	pgpio "periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// PeriphDriver drives lines through periph.io host drivers.
type PeriphDriver struct{}

// NewPeriphDriver loads the periph.io host drivers.
func NewPeriphDriver() (*PeriphDriver, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init periph host: %w", err)
	}
	return &PeriphDriver{}, nil
}

func periphPin(line int) (pgpio.PinIO, error) {
	p := gpioreg.ByName("GPIO" + strconv.Itoa(line))
	if p == nil {
		return nil, fmt.Errorf("no periph pin for line %d", line)
	}
	return p, nil
}

// OpenInput configures the pin as an input with pull-up and no edge detection.
func (d *PeriphDriver) OpenInput(line int) (Input, error) {
	p, err := periphPin(line)
	if err != nil {
		return nil, err
	}
	if err := p.In(pgpio.PullUp, pgpio.NoEdge); err != nil {
		return nil, fmt.Errorf("configure input line %d: %w", line, err)
	}
	return &periphLine{pin: p, offset: line}, nil
}

// OpenOutput configures the pin as an output driven to idle.
func (d *PeriphDriver) OpenOutput(line int, idle Level) (Output, error) {
	p, err := periphPin(line)
	if err != nil {
		return nil, err
	}
	if err := p.Out(periphLevel(idle)); err != nil {
		return nil, fmt.Errorf("configure output line %d: %w", line, err)
	}
	return withIdle(&periphLine{pin: p, offset: line}, idle), nil
}

// Close is a no-op, periph.io keeps no driver-wide handle.
func (d *PeriphDriver) Close() error {
	return nil
}

type periphLine struct {
	pin    pgpio.PinIO
	offset int
}

func (p *periphLine) Read() (Level, error) {
	return Level(p.pin.Read() == pgpio.High), nil
}

func periphLevel(l Level) pgpio.Level {
	if l == High {
		return pgpio.High
	}
	return pgpio.Low
}

func (p *periphLine) Write(l Level) error {
	if err := p.pin.Out(periphLevel(l)); err != nil {
		return fmt.Errorf("write line %d: %w", p.offset, err)
	}
	return nil
}

func (p *periphLine) Close() error {
	if err := p.pin.Halt(); err != nil {
		return fmt.Errorf("halt line %d: %w", p.offset, err)
	}
	return nil
}
