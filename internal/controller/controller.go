// Package controller wires the buttons, selectors, hold timer and relays of
// the cooler together. Step runs one iteration of the polling loop.
package controller

import (
	"errors"
	"io"

	"github.com/womat/debug"

	"github.com/sweeney/swamp-controller/internal/logic"
	"github.com/sweeney/swamp-controller/internal/relay"
	"github.com/sweeney/swamp-controller/internal/status"
)

// Parts are the components a Controller drives.
type Parts struct {
	MotorButton *logic.Button
	PumpButton  *logic.Button
	HoldButton  *logic.Button
	Hold        *logic.HoldTimer
	Motor       *relay.Motor
	Pump        *relay.Relay
	Display     Display
}

type button struct {
	name    string
	b       *logic.Button
	failing bool
}

// Controller reacts to button events and the hold timer.
type Controller struct {
	motorButton *button
	pumpButton  *button
	holdButton  *button

	motor logic.MotorSpeed
	pump  logic.Pump
	hold  *logic.HoldTimer

	motorRelays *relay.Motor
	pumpRelay   *relay.Relay

	display Display
	counts  status.EventCounts

	// lines opened by Open, closed by Close
	lines []io.Closer
}

// New creates a Controller. Call Init before the first Step.
func New(p Parts) *Controller {
	return &Controller{
		motorButton: &button{name: "motor", b: p.MotorButton},
		pumpButton:  &button{name: "pump", b: p.PumpButton},
		holdButton:  &button{name: "hold", b: p.HoldButton},
		hold:        p.Hold,
		motorRelays: p.Motor,
		pumpRelay:   p.Pump,
		display:     p.Display,
	}
}

// Init releases every relay and shows the initial texts.
func (c *Controller) Init() {
	c.motor.TurnOff()
	c.pump.TurnOff()
	c.updateMotor()
	c.updatePump()
	c.display.ShowHold(c.hold.Text())
}

// Step polls the buttons and the hold timer once and reacts to their events.
// Button actions on the hold timer are applied before its expiry is checked.
func (c *Controller) Step() {
	c.read(c.motorButton)
	c.read(c.pumpButton)
	c.read(c.holdButton)

	holdChanged := c.hold.Update()

	if c.motorButton.b.IsClick() {
		c.motor.Change()
		c.counts.MotorChanges++
		c.updateMotor()
	} else if c.motorButton.b.IsLongPress() {
		debug.InfoLog.Print("motor button held, turning everything off")
		c.counts.Shutdowns++
		c.TurnAllOff()
	}

	if c.pumpButton.b.IsClick() {
		c.pump.Change()
		c.counts.PumpChanges++
		c.updatePump()
	}

	if c.holdButton.b.IsClick() {
		c.hold.AddTime()
		c.counts.HoldAdds++
		holdChanged = true
	} else if c.holdButton.b.IsLongPress() {
		c.hold.Stop()
		c.counts.HoldStops++
		holdChanged = true
	}

	if holdChanged {
		if c.hold.IsExpired() {
			debug.InfoLog.Print("hold expired, turning everything off")
			c.counts.Expiries++
			c.TurnAllOff()
		}
		c.display.ShowHold(c.hold.Text())
	}
}

// TurnAllOff stops the motor and the pump. The hold timer is left alone.
func (c *Controller) TurnAllOff() {
	c.motor.TurnOff()
	c.pump.TurnOff()
	c.updateMotor()
	c.updatePump()
}

// Shutdown releases every relay before the process exits.
func (c *Controller) Shutdown() {
	c.TurnAllOff()
	c.hold.Stop()
	c.display.ShowHold(c.hold.Text())
}

// Close releases the GPIO lines the Controller was opened on.
func (c *Controller) Close() error {
	var errs []error
	for _, l := range c.lines {
		if err := l.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.lines = nil
	return errors.Join(errs...)
}

// Counts returns the events handled since startup.
func (c *Controller) Counts() status.EventCounts {
	return c.counts
}

// Speed returns the selected motor speed.
func (c *Controller) Speed() logic.Speed {
	return c.motor.Get()
}

// PumpState returns the selected pump state.
func (c *Controller) PumpState() logic.PumpState {
	return c.pump.Get()
}

// Hold returns the hold timer.
func (c *Controller) Hold() *logic.HoldTimer {
	return c.hold
}

func (c *Controller) read(btn *button) {
	if err := btn.b.Read(); err != nil {
		c.counts.ReadErrors++
		if !btn.failing {
			debug.ErrorLog.Printf("read %s button: %v", btn.name, err)
			btn.failing = true
		}
		return
	}
	if btn.failing {
		debug.InfoLog.Printf("%s button readable again", btn.name)
		btn.failing = false
	}
}

func (c *Controller) updateMotor() {
	c.display.ShowMotor(c.motor.Text())
	if err := c.motorRelays.Apply(c.motor.Get()); err != nil {
		debug.ErrorLog.Printf("apply motor speed %q: %v", c.motor.Text(), err)
	}
}

func (c *Controller) updatePump() {
	c.display.ShowPump(c.pump.Text())

	var err error
	switch c.pump.Get() {
	case logic.PumpOn:
		err = c.pumpRelay.On()
	default:
		err = c.pumpRelay.Off()
	}
	if err != nil {
		debug.ErrorLog.Printf("apply pump state %q: %v", c.pump.Text(), err)
	}
}
