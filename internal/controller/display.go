package controller

import "github.com/womat/debug"

// Display shows the fixed-width state texts to the operator.
type Display interface {
	ShowMotor(text string)
	ShowPump(text string)
	ShowHold(text string)
}

// Displays fans every text out to several displays.
type Displays []Display

func (d Displays) ShowMotor(text string) {
	for _, disp := range d {
		disp.ShowMotor(text)
	}
}

func (d Displays) ShowPump(text string) {
	for _, disp := range d {
		disp.ShowPump(text)
	}
}

func (d Displays) ShowHold(text string) {
	for _, disp := range d {
		disp.ShowHold(text)
	}
}

// LogDisplay writes one diagnostic line per state change.
type LogDisplay struct{}

func (LogDisplay) ShowMotor(text string) { debug.InfoLog.Printf("Motor: %s", text) }
func (LogDisplay) ShowPump(text string)  { debug.InfoLog.Printf("Pump: %s", text) }
func (LogDisplay) ShowHold(text string)  { debug.InfoLog.Printf("Hold: %s", text) }
