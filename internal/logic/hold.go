package logic

import (
	"fmt"
	"time"

	"github.com/sweeney/swamp-controller/internal/clock"
)

// HoldTimer counts a hold period down one interval at a time and reports
// expiry once.
type HoldTimer struct {
	clock clock.Clock

	enabled   bool
	expired   bool
	remaining time.Duration
	updatedAt clock.Ticks
}

// NewHoldTimer creates a disarmed timer.
func NewHoldTimer(clk clock.Clock) *HoldTimer {
	return &HoldTimer{clock: clk}
}

// Start arms the timer from now without touching the remaining time.
func (h *HoldTimer) Start() {
	h.enabled = true
	h.updatedAt = h.clock.Now()
	h.expired = false
}

// Stop disarms the timer and clears the remaining time.
func (h *HoldTimer) Stop() {
	h.enabled = false
	h.remaining = 0
}

// AddTime extends the hold by HoldStep and arms the timer if it was
// disarmed. A step that would pass HoldMax is not applied.
func (h *HoldTimer) AddTime() {
	if h.remaining <= HoldMax-HoldStep {
		h.remaining += HoldStep
	}
	if !h.enabled {
		h.Start()
	}
}

// Update counts down one interval once at least HoldInterval has passed
// since the previous countdown. It reports whether anything changed.
// When less than one interval is left the timer stops and expires.
func (h *HoldTimer) Update() bool {
	if !h.enabled {
		return false
	}

	now := h.clock.Now()
	if clock.Since(h.updatedAt, now) < HoldInterval {
		return false
	}

	if h.remaining < HoldInterval {
		h.Stop()
		h.expired = true
	} else {
		h.remaining -= HoldInterval
	}
	h.updatedAt = now
	return true
}

// IsEnabled reports whether the timer is armed.
func (h *HoldTimer) IsEnabled() bool {
	return h.enabled
}

// Remaining returns the remaining hold time.
func (h *HoldTimer) Remaining() time.Duration {
	return h.remaining
}

// IsExpired reports and consumes an expiry.
func (h *HoldTimer) IsExpired() bool {
	if !h.expired {
		return false
	}
	h.expired = false
	return true
}

// Text renders the remaining time as HH:MM, or --:-- when disarmed.
func (h *HoldTimer) Text() string {
	if !h.enabled {
		return "--:--"
	}
	hours := h.remaining / time.Hour
	minutes := (h.remaining % time.Hour) / time.Minute
	return fmt.Sprintf("%02d:%02d", int(hours), int(minutes))
}
