// Package logic contains the control state machines of the swamp cooler:
// button debouncing, the motor speed and pump selectors, and the hold timer.
// This package does no I/O of its own (no GPIO, logging, or time.Sleep).
// Pins and time are injected as gpio.Input and clock.Clock.
package logic

import "time"

// Button timing thresholds.
const (
	// ClickMin is the hold time a press must exceed to count as a click.
	ClickMin = 25 * time.Millisecond
	// LongPress is the hold time at which a held press becomes a long press.
	LongPress = 2000 * time.Millisecond
)

// Hold timer constants.
const (
	HoldStep     = 30 * time.Minute
	HoldMax      = 24 * time.Hour
	HoldInterval = time.Minute
)

// ButtonState mirrors the raw pin level of an active-low button.
type ButtonState string

const (
	Released ButtonState = "RELEASED"
	Pressed  ButtonState = "PRESSED"
)

// ButtonEvent is a debounced button event.
type ButtonEvent string

const (
	EventNone      ButtonEvent = ""
	EventClick     ButtonEvent = "CLICK"
	EventLongPress ButtonEvent = "LONG_PRESS"
)

// Speed is the fan motor speed.
type Speed uint8

const (
	SpeedOff Speed = iota
	SpeedLow
	SpeedHigh
)

// Valid reports whether s is one of the defined speeds.
func (s Speed) Valid() bool {
	switch s {
	case SpeedOff, SpeedLow, SpeedHigh:
		return true
	}
	return false
}

// Next returns the following speed in the cycle off, low, high, off.
func (s Speed) Next() Speed {
	switch s {
	case SpeedOff:
		return SpeedLow
	case SpeedLow:
		return SpeedHigh
	default:
		return SpeedOff
	}
}

// String returns the 4-character display label.
func (s Speed) String() string {
	switch s {
	case SpeedLow:
		return "Low "
	case SpeedHigh:
		return "High"
	default:
		return "Off "
	}
}

// PumpState is the water pump state.
type PumpState uint8

const (
	PumpOff PumpState = iota
	PumpOn
)

// Valid reports whether p is one of the defined pump states.
func (p PumpState) Valid() bool {
	switch p {
	case PumpOff, PumpOn:
		return true
	}
	return false
}

// Next toggles the pump state.
func (p PumpState) Next() PumpState {
	if p == PumpOff {
		return PumpOn
	}
	return PumpOff
}

// String returns the 3-character display label.
func (p PumpState) String() string {
	if p == PumpOn {
		return "On "
	}
	return "Off"
}
