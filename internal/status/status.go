// Package status keeps a snapshot of what the cooler is showing and doing.
// It is fed by the controller through the Display methods and read for the
// heartbeat and shutdown log lines.
package status

import "time"

// Config contains daemon configuration for display.
type Config struct {
	PollMs      int64
	HeartbeatMs int64
	Driver      string
}

// EventCounts tracks the number of operator and timer events since startup.
type EventCounts struct {
	MotorChanges int
	PumpChanges  int
	HoldAdds     int
	HoldStops    int
	Shutdowns    int
	Expiries     int
	ReadErrors   int
}

// Snapshot is a point-in-time view of the controller state.
type Snapshot struct {
	Motor     string
	Pump      string
	Hold      string
	Counts    EventCounts
	StartTime time.Time
	Now       time.Time
	Config    Config
}

// HoldArmed reports whether the hold text shows a running countdown.
func (s Snapshot) HoldArmed() bool {
	return s.Hold != "" && s.Hold != "--:--"
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds the latest displayed texts and counters.
type Tracker struct {
	snap Snapshot
	now  func() time.Time
}

// NewTracker creates a Tracker with the given start time and config.
// now may be nil, in which case time.Now is used.
func NewTracker(startTime time.Time, cfg Config, now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
		now: now,
	}
}

// ShowMotor records the motor speed text.
func (t *Tracker) ShowMotor(text string) {
	t.snap.Motor = text
}

// ShowPump records the pump text.
func (t *Tracker) ShowPump(text string) {
	t.snap.Pump = text
}

// ShowHold records the hold time text.
func (t *Tracker) ShowHold(text string) {
	t.snap.Hold = text
}

// Update sets the event counts.
func (t *Tracker) Update(counts EventCounts) {
	t.snap.Counts = counts
}

// Snapshot returns a copy of the state with Now set to the current time.
func (t *Tracker) Snapshot() Snapshot {
	s := t.snap
	s.Now = t.now()
	return s
}
