package controller

import (
	"fmt"
	"io"
	"time"

	"github.com/sweeney/swamp-controller/internal/clock"
	"github.com/sweeney/swamp-controller/internal/config"
	"github.com/sweeney/swamp-controller/internal/gpio"
	"github.com/sweeney/swamp-controller/internal/logic"
	"github.com/sweeney/swamp-controller/internal/relay"
)

// Open requests the button and relay lines named in cfg from d and builds
// an initialised Controller on them. Relay lines are requested at their off
// level so no relay is energised before Init. sleep may be nil. On error
// every line already requested is closed again.
func Open(cfg *config.Config, d gpio.Driver, clk clock.Clock, sleep func(time.Duration), display Display) (c *Controller, err error) {
	var lines []io.Closer
	defer func() {
		if err != nil {
			for _, l := range lines {
				_ = l.Close()
			}
		}
	}()

	input := func(name string, line int) (*logic.Button, error) {
		in, err := d.OpenInput(line)
		if err != nil {
			return nil, fmt.Errorf("open %s button line %d: %w", name, line, err)
		}
		lines = append(lines, in)
		return logic.NewButton(in, clk), nil
	}
	output := func(name string, line int) (*relay.Relay, error) {
		out, err := d.OpenOutput(line, relay.OffLevel(cfg.Relays.ActiveLow))
		if err != nil {
			return nil, fmt.Errorf("open %s relay line %d: %w", name, line, err)
		}
		lines = append(lines, out)
		return relay.New(out, cfg.Relays.ActiveLow), nil
	}

	var p Parts
	if p.MotorButton, err = input("motor", cfg.Buttons.Motor); err != nil {
		return nil, err
	}
	if p.PumpButton, err = input("pump", cfg.Buttons.Pump); err != nil {
		return nil, err
	}
	if p.HoldButton, err = input("hold", cfg.Buttons.Hold); err != nil {
		return nil, err
	}

	low, err := output("motor low", cfg.Relays.MotorLow)
	if err != nil {
		return nil, err
	}
	high, err := output("motor high", cfg.Relays.MotorHigh)
	if err != nil {
		return nil, err
	}
	if p.Pump, err = output("pump", cfg.Relays.Pump); err != nil {
		return nil, err
	}

	p.Motor = relay.NewMotor(low, high, sleep)
	p.Hold = logic.NewHoldTimer(clk)
	p.Display = display

	c = New(p)
	c.lines = lines
	c.Init()
	return c, nil
}
