// Package relay drives relay outputs for the cooler motor windings and pump.
package relay

import (
	"errors"
	"fmt"
	"time"

	"github.com/sweeney/swamp-controller/internal/gpio"
	"github.com/sweeney/swamp-controller/internal/logic"
)

// SettleDelay is how long a released motor winding is left before the other
// one is energised.
const SettleDelay = 100 * time.Millisecond

// State is the logical state of a relay.
type State uint8

const (
	Off State = iota
	On
)

// Valid reports whether s is Off or On.
func (s State) Valid() bool {
	switch s {
	case Off, On:
		return true
	}
	return false
}

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case Off:
		return "Off"
	case On:
		return "On"
	default:
		return "Unknown"
	}
}

// Relay drives one output line. Writes are fire-and-forget: a failed write is
// returned but the logical state still follows the request.
type Relay struct {
	out       gpio.Output
	activeLow bool
	state     State
}

// New creates a relay on out. activeLow relay boards energise on a Low level.
func New(out gpio.Output, activeLow bool) *Relay {
	return &Relay{out: out, activeLow: activeLow}
}

// On energises the relay.
func (r *Relay) On() error {
	return r.SetState(On)
}

// Off releases the relay.
func (r *Relay) Off() error {
	return r.SetState(Off)
}

// SetState applies s and writes the output. An undefined state is ignored and
// the retained state is written again.
func (r *Relay) SetState(s State) error {
	if s.Valid() {
		r.state = s
	}
	return r.out.Write(r.level())
}

// GetState returns the last applied logical state.
func (r *Relay) GetState() State {
	return r.state
}

func (r *Relay) level() gpio.Level {
	if r.state == On {
		return !OffLevel(r.activeLow)
	}
	return OffLevel(r.activeLow)
}

// OffLevel is the line level that releases a relay of the given polarity.
func OffLevel(activeLow bool) gpio.Level {
	return gpio.Level(activeLow)
}

// Motor switches the two motor windings so they are never energised together.
type Motor struct {
	low   *Relay
	high  *Relay
	sleep func(time.Duration)
}

// NewMotor creates a Motor. sleep is used for the settling delay; nil means time.Sleep.
func NewMotor(low, high *Relay, sleep func(time.Duration)) *Motor {
	if sleep == nil {
		sleep = time.Sleep
	}
	return &Motor{low: low, high: high, sleep: sleep}
}

// Apply drives the windings for speed s. The winding not in use is released
// first; the selected one is energised after SettleDelay.
func (m *Motor) Apply(s logic.Speed) error {
	switch s {
	case logic.SpeedLow:
		return m.switchTo(m.low, m.high)
	case logic.SpeedHigh:
		return m.switchTo(m.high, m.low)
	default:
		return m.Off()
	}
}

// Off releases both windings, attempting the second even if the first fails.
func (m *Motor) Off() error {
	var errs []error
	if err := m.low.Off(); err != nil {
		errs = append(errs, fmt.Errorf("motor low off: %w", err))
	}
	if err := m.high.Off(); err != nil {
		errs = append(errs, fmt.Errorf("motor high off: %w", err))
	}
	return errors.Join(errs...)
}

func (m *Motor) switchTo(on, off *Relay) error {
	if err := off.Off(); err != nil {
		return fmt.Errorf("release winding: %w", err)
	}
	m.sleep(SettleDelay)
	if err := on.On(); err != nil {
		return fmt.Errorf("energise winding: %w", err)
	}
	return nil
}

// Low returns the low speed winding relay.
func (m *Motor) Low() *Relay {
	return m.low
}

// High returns the high speed winding relay.
func (m *Motor) High() *Relay {
	return m.high
}
