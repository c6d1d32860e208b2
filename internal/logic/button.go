package logic

import (
	"time"

	"github.com/sweeney/swamp-controller/internal/clock"
	"github.com/sweeney/swamp-controller/internal/gpio"
)

// Button turns polled samples of an active-low input into click and
// long-press events. Read must be called at a steady period of a few tens
// of milliseconds at most; the polling cadence is the debounce.
type Button struct {
	pin   gpio.Input
	clock clock.Clock

	prev    ButtonState
	current ButtonState

	pressedAt clock.Ticks
	held      time.Duration
	// active is cleared when a long press is consumed so it is not repeated
	active bool

	// pending is a queue of one: a click or a long press, never both
	pending ButtonEvent
}

// NewButton creates a released button reading from pin.
func NewButton(pin gpio.Input, clk clock.Clock) *Button {
	return &Button{
		pin:     pin,
		clock:   clk,
		prev:    Released,
		current: Released,
	}
}

// Read samples the pin once and advances the press state machine.
// A failed sample leaves the state untouched.
func (b *Button) Read() error {
	lvl, err := b.pin.Read()
	if err != nil {
		return err
	}

	b.current = Released
	if lvl == gpio.Low {
		b.current = Pressed
	}

	switch {
	case b.prev == Released && b.current == Pressed:
		b.pressedAt = b.clock.Now()
		b.held = 0
		b.active = true

	case b.prev == Pressed && b.current == Pressed:
		b.held = clock.Since(b.pressedAt, b.clock.Now())
		if b.active && b.held >= LongPress {
			b.pending = EventLongPress
		}

	case b.prev == Pressed && b.current == Released:
		b.held = clock.Since(b.pressedAt, b.clock.Now())
		if b.held > ClickMin && b.held < LongPress {
			b.pending = EventClick
		}
		b.active = false
		b.pressedAt = 0
		b.held = 0
	}

	b.prev = b.current
	return nil
}

// HoldTime returns how long the current press has been held as of the last Read.
func (b *Button) HoldTime() time.Duration {
	return b.held
}

// State returns the state seen by the last Read.
func (b *Button) State() ButtonState {
	return b.current
}

// IsClick reports and consumes a pending click.
func (b *Button) IsClick() bool {
	if b.pending != EventClick {
		return false
	}
	b.pending = EventNone
	return true
}

// IsLongPress reports and consumes a pending long press. Holding the button
// further does not produce another long press or a click on release.
func (b *Button) IsLongPress() bool {
	if b.pending != EventLongPress {
		return false
	}
	b.pending = EventNone
	b.active = false
	return true
}

// Event returns and consumes whatever event is pending.
func (b *Button) Event() ButtonEvent {
	switch b.pending {
	case EventClick:
		b.IsClick()
		return EventClick
	case EventLongPress:
		b.IsLongPress()
		return EventLongPress
	}
	return EventNone
}
