package controller

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweeney/swamp-controller/internal/clock"
	"github.com/sweeney/swamp-controller/internal/config"
	"github.com/sweeney/swamp-controller/internal/gpio"
	"github.com/sweeney/swamp-controller/internal/logic"
	"github.com/sweeney/swamp-controller/internal/relay"
)

func TestOpen(t *testing.T) {
	cfg := config.NewConfig()
	d := gpio.NewFakeDriver()
	clk := clock.NewFake(0)
	disp := &recordDisplay{}

	c, err := Open(cfg, d, clk, func(time.Duration) {}, disp)
	require.NoError(t, err)

	require.Len(t, d.Inputs, 3)
	require.Len(t, d.Outputs, 3)
	for line, out := range d.Outputs {
		assert.Equal(t, gpio.High, out.Level(), "active-low relay on line %d released", line)
	}
	assert.Equal(t, "--:--", last(disp.hold))

	motor := d.Inputs[cfg.Buttons.Motor]
	motor.Set(gpio.Low)
	for i := 0; i < 5; i++ {
		clk.Advance(poll)
		c.Step()
	}
	motor.Set(gpio.High)
	clk.Advance(poll)
	c.Step()

	assert.Equal(t, logic.SpeedLow, c.Speed())
	assert.Equal(t, gpio.Low, d.Outputs[cfg.Relays.MotorLow].Level())
	assert.Equal(t, gpio.High, d.Outputs[cfg.Relays.MotorHigh].Level())

	require.NoError(t, c.Close())
	for line, in := range d.Inputs {
		assert.True(t, in.Closed, "input line %d", line)
	}
	for line, out := range d.Outputs {
		assert.True(t, out.Closed, "output line %d", line)
	}
}

func TestOpenActiveHigh(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Relays.ActiveLow = false
	d := gpio.NewFakeDriver()

	_, err := Open(cfg, d, clock.NewFake(0), nil, &recordDisplay{})
	require.NoError(t, err)

	for line, out := range d.Outputs {
		assert.Equal(t, gpio.Low, out.Level(), "relay on line %d released", line)
	}
}

func TestOpenClosesLinesOnError(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Buttons.Hold = cfg.Buttons.Motor
	d := gpio.NewFakeDriver()

	_, err := Open(cfg, d, clock.NewFake(0), nil, &recordDisplay{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hold button")

	assert.True(t, d.Inputs[cfg.Buttons.Motor].Closed)
	assert.True(t, d.Inputs[cfg.Buttons.Pump].Closed)
	assert.Empty(t, d.Outputs)
}

func TestOpenNeverEnergisesRelays(t *testing.T) {
	for _, activeLow := range []bool{true, false} {
		t.Run(fmt.Sprintf("active_low=%v", activeLow), func(t *testing.T) {
			cfg := config.NewConfig()
			cfg.Relays.ActiveLow = activeLow
			off := relay.OffLevel(activeLow)
			d := gpio.NewFakeDriver()

			c, err := Open(cfg, d, clock.NewFake(0), nil, &recordDisplay{})
			require.NoError(t, err)

			for line, out := range d.Outputs {
				require.NotEmpty(t, out.Writes, "line %d", line)
				for i, lvl := range out.Writes {
					assert.Equal(t, off, lvl, "line %d write %d", line, i)
				}
			}

			require.NoError(t, c.Close())
			for line, out := range d.Outputs {
				assert.Equal(t, off, out.Level(), "line %d left released after close", line)
			}
		})
	}
}

func TestOpenFailureLeavesRelaysReleased(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Relays.Pump = cfg.Relays.MotorLow
	d := gpio.NewFakeDriver()

	_, err := Open(cfg, d, clock.NewFake(0), nil, &recordDisplay{})
	require.Error(t, err)

	for _, line := range []int{cfg.Relays.MotorLow, cfg.Relays.MotorHigh} {
		out := d.Outputs[line]
		assert.True(t, out.Closed, "line %d", line)
		for i, lvl := range out.Writes {
			assert.Equal(t, gpio.High, lvl, "line %d write %d", line, i)
		}
	}
}
