package logic

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/sweeney/swamp-controller/internal/clock"
	"github.com/sweeney/swamp-controller/internal/gpio"
)

const pollStep = 5 * time.Millisecond

func setupButton(t *testing.T, start clock.Ticks) (*Button, *gpio.FakeInput, *clock.Fake) {
	t.Helper()
	in := gpio.NewFakeInput(gpio.High)
	clk := clock.NewFake(start)
	b := NewButton(in, clk)
	mustRead(t, b)
	return b, in, clk
}

func mustRead(t *testing.T, b *Button) {
	t.Helper()
	if err := b.Read(); err != nil {
		t.Fatalf("Read: unexpected error: %v", err)
	}
}

// holdFor presses the button and keeps polling it until d has elapsed.
func holdFor(t *testing.T, b *Button, in *gpio.FakeInput, clk *clock.Fake, d time.Duration) {
	t.Helper()
	in.Set(gpio.Low)
	mustRead(t, b)
	for elapsed := pollStep; elapsed <= d; elapsed += pollStep {
		clk.Advance(pollStep)
		mustRead(t, b)
	}
}

func release(t *testing.T, b *Button, in *gpio.FakeInput) {
	t.Helper()
	in.Set(gpio.High)
	mustRead(t, b)
}

func TestNewButtonReleased(t *testing.T) {
	b, _, _ := setupButton(t, 0)
	if b.State() != Released {
		t.Errorf("State: got %s, want %s", b.State(), Released)
	}
	if b.IsClick() {
		t.Error("new button should not report a click")
	}
	if b.IsLongPress() {
		t.Error("new button should not report a long press")
	}
}

func TestButtonPressDurations(t *testing.T) {
	tests := []struct {
		name      string
		hold      time.Duration
		wantClick bool
	}{
		{"bounce 10ms", 10 * time.Millisecond, false},
		{"at click minimum", ClickMin, false},
		{"just above click minimum", ClickMin + pollStep, true},
		{"500ms", 500 * time.Millisecond, true},
		{"just below long press", LongPress - pollStep, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, in, clk := setupButton(t, 1000)

			holdFor(t, b, in, clk, tt.hold)
			if b.State() != Pressed {
				t.Errorf("State while held: got %s, want %s", b.State(), Pressed)
			}
			if b.HoldTime() != tt.hold {
				t.Errorf("HoldTime: got %v, want %v", b.HoldTime(), tt.hold)
			}
			if b.IsLongPress() {
				t.Error("unexpected long press while held")
			}

			release(t, b, in)
			if b.State() != Released {
				t.Errorf("State after release: got %s, want %s", b.State(), Released)
			}
			if got := b.IsClick(); got != tt.wantClick {
				t.Errorf("IsClick: got %v, want %v", got, tt.wantClick)
			}
			if b.IsClick() {
				t.Error("IsClick should be consumed after the first call")
			}
			if b.IsLongPress() {
				t.Error("unexpected long press after release")
			}
		})
	}
}

func TestButtonLongPressConsumedWhileHeld(t *testing.T) {
	b, in, clk := setupButton(t, 0)

	holdFor(t, b, in, clk, LongPress-pollStep)
	if b.IsLongPress() {
		t.Fatal("long press reported before threshold")
	}

	clk.Advance(pollStep)
	mustRead(t, b)
	if !b.IsLongPress() {
		t.Fatal("expected long press at threshold")
	}
	if b.IsClick() {
		t.Error("click and long press must not both be pending")
	}

	// Keep holding well past the threshold
	for i := 0; i < 600; i++ {
		clk.Advance(pollStep)
		mustRead(t, b)
		if b.IsLongPress() {
			t.Fatalf("long press repeated after %d more polls", i+1)
		}
	}

	release(t, b, in)
	if b.IsClick() {
		t.Error("release after long press must not click")
	}
}

func TestButtonLongPressNotConsumedUntilRelease(t *testing.T) {
	b, in, clk := setupButton(t, 0)

	holdFor(t, b, in, clk, 2100*time.Millisecond)
	release(t, b, in)

	if b.IsClick() {
		t.Error("release after 2100ms must not click")
	}
	if !b.IsLongPress() {
		t.Error("expected pending long press")
	}
	if b.IsLongPress() {
		t.Error("IsLongPress should be consumed after the first call")
	}
}

func TestButtonPressAcrossClockWrap(t *testing.T) {
	b, in, clk := setupButton(t, math.MaxUint32-100)

	holdFor(t, b, in, clk, 500*time.Millisecond)
	release(t, b, in)

	if !b.IsClick() {
		t.Error("expected click for a press spanning the counter wrap")
	}
}

func TestButtonRepeatedClicks(t *testing.T) {
	b, in, clk := setupButton(t, 0)

	for i := 0; i < 3; i++ {
		holdFor(t, b, in, clk, 100*time.Millisecond)
		release(t, b, in)
		if !b.IsClick() {
			t.Errorf("press %d: expected click", i)
		}
		clk.Advance(200 * time.Millisecond)
		mustRead(t, b)
	}
}

func TestButtonEvent(t *testing.T) {
	b, in, clk := setupButton(t, 0)

	if ev := b.Event(); ev != EventNone {
		t.Errorf("Event: got %q, want none", ev)
	}

	holdFor(t, b, in, clk, 100*time.Millisecond)
	release(t, b, in)
	if ev := b.Event(); ev != EventClick {
		t.Errorf("Event: got %q, want %q", ev, EventClick)
	}
	if ev := b.Event(); ev != EventNone {
		t.Errorf("Event after consume: got %q, want none", ev)
	}

	holdFor(t, b, in, clk, LongPress)
	if ev := b.Event(); ev != EventLongPress {
		t.Errorf("Event: got %q, want %q", ev, EventLongPress)
	}
	clk.Advance(time.Second)
	mustRead(t, b)
	if ev := b.Event(); ev != EventNone {
		t.Errorf("Event after consumed long press: got %q, want none", ev)
	}
}

func TestButtonReadError(t *testing.T) {
	b, in, clk := setupButton(t, 0)

	in.Set(gpio.Low)
	mustRead(t, b)

	in.ReadError = errors.New("line gone")
	clk.Advance(100 * time.Millisecond)
	if err := b.Read(); err == nil {
		t.Fatal("expected read error")
	}
	if b.State() != Pressed {
		t.Errorf("State after failed read: got %s, want %s", b.State(), Pressed)
	}

	in.ReadError = nil
	in.Set(gpio.High)
	mustRead(t, b)
	if !b.IsClick() {
		t.Error("expected click once reads recover")
	}
}
