package status

import (
	"encoding/json"
	"strings"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string     `json:"event,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	Motor         string     `json:"motor"`
	Pump          string     `json:"pump"`
	Hold          string     `json:"hold"`
	HoldArmed     bool       `json:"hold_armed"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	Counts        CountsJSON `json:"event_counts"`
	Config        ConfigJSON `json:"config"`
}

// CountsJSON is the JSON representation of event counts.
type CountsJSON struct {
	MotorChanges int `json:"motor_changes"`
	PumpChanges  int `json:"pump_changes"`
	HoldAdds     int `json:"hold_adds"`
	HoldStops    int `json:"hold_stops"`
	Shutdowns    int `json:"shutdowns"`
	Expiries     int `json:"expiries"`
	ReadErrors   int `json:"read_errors"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs      int64  `json:"poll_ms"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
	Driver      string `json:"driver"`
}

func orUnknown(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "UNKNOWN"
	}
	return s
}

func buildInner(snap Snapshot) StatusInner {
	return StatusInner{
		Motor:         orUnknown(snap.Motor),
		Pump:          orUnknown(snap.Pump),
		Hold:          orUnknown(snap.Hold),
		HoldArmed:     snap.HoldArmed(),
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		Counts: CountsJSON{
			MotorChanges: snap.Counts.MotorChanges,
			PumpChanges:  snap.Counts.PumpChanges,
			HoldAdds:     snap.Counts.HoldAdds,
			HoldStops:    snap.Counts.HoldStops,
			Shutdowns:    snap.Counts.Shutdowns,
			Expiries:     snap.Counts.Expiries,
			ReadErrors:   snap.Counts.ReadErrors,
		},
		Config: ConfigJSON{
			PollMs:      snap.Config.PollMs,
			HeartbeatMs: snap.Config.HeartbeatMs,
			Driver:      snap.Config.Driver,
		},
	}
}

// FormatJSON returns the indented JSON status (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the single-line JSON status for a lifecycle log line.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
