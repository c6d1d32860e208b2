//go:build linux

package gpio

import (
	"errors"
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

const consumer = "swamp-controller"

// DefaultChip is the GPIO character device of the Raspberry Pi header.
const DefaultChip = "gpiochip0"

// CdevDriver drives lines through the Linux GPIO character device.
type CdevDriver struct {
	chip *gpiocdev.Chip
}

// NewCdevDriver opens the named chip (DefaultChip when empty).
func NewCdevDriver(chip string) (*CdevDriver, error) {
	if chip == "" {
		chip = DefaultChip
	}
	c, err := gpiocdev.NewChip(chip, gpiocdev.WithConsumer(consumer))
	if err != nil {
		return nil, fmt.Errorf("open gpio chip %s: %w", chip, err)
	}
	return &CdevDriver{chip: c}, nil
}

// OpenInput requests the line as an input with pull-up.
func (d *CdevDriver) OpenInput(line int) (Input, error) {
	l, err := d.chip.RequestLine(line, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		return nil, fmt.Errorf("request input line %d: %w", line, err)
	}
	return &cdevLine{line: l, offset: line}, nil
}

// OpenOutput requests the line as an output, initially at idle.
func (d *CdevDriver) OpenOutput(line int, idle Level) (Output, error) {
	l, err := d.chip.RequestLine(line, gpiocdev.AsOutput(idle.Int()))
	if err != nil {
		return nil, fmt.Errorf("request output line %d: %w", line, err)
	}
	return withIdle(&cdevLine{line: l, offset: line, output: true}, idle), nil
}

// Close releases the chip.
func (d *CdevDriver) Close() error {
	if d.chip == nil {
		return nil
	}
	if err := d.chip.Close(); err != nil {
		return fmt.Errorf("close chip: %w", err)
	}
	return nil
}

type cdevLine struct {
	line   *gpiocdev.Line
	offset int
	output bool
}

func (c *cdevLine) Read() (Level, error) {
	v, err := c.line.Value()
	if err != nil {
		return Low, fmt.Errorf("read line %d: %w", c.offset, err)
	}
	return LevelOf(v), nil
}

func (c *cdevLine) Write(l Level) error {
	if err := c.line.SetValue(l.Int()); err != nil {
		return fmt.Errorf("write line %d: %w", c.offset, err)
	}
	return nil
}

// Close releases the line. Inputs are first returned to pull-down, matching
// the Pi boot defaults; outputs are released as they are so the last level
// stays on the line.
func (c *cdevLine) Close() error {
	if c.output {
		if err := c.line.Close(); err != nil {
			return fmt.Errorf("close line %d: %w", c.offset, err)
		}
		return nil
	}

	var errs []error
	if err := c.line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
		errs = append(errs, fmt.Errorf("reconfigure line %d: %w", c.offset, err))
	}
	if err := c.line.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close line %d: %w", c.offset, err))
	}
	return errors.Join(errs...)
}
