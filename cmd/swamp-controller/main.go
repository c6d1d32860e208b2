// Command swamp-controller drives the fan motor and water pump relays of an
// evaporative cooler from three push buttons and a countdown hold timer.
package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"github.com/womat/debug"

	"github.com/sweeney/swamp-controller/internal/clock"
	"github.com/sweeney/swamp-controller/internal/config"
	"github.com/sweeney/swamp-controller/internal/controller"
	"github.com/sweeney/swamp-controller/internal/gpio"
	"github.com/sweeney/swamp-controller/internal/logic"
	"github.com/sweeney/swamp-controller/internal/status"
)

const (
	appName           = "swamp-controller"
	version           = "1.0.0"
	defaultConfigFile = "/etc/" + appName + "/" + appName + ".yaml"
)

func main() {
	cfg := config.NewConfig()

	app := &cli.App{
		Name:    appName,
		Usage:   "swamp cooler motor and pump controller",
		Version: version,
		UsageText: appName + " [--config <file>] [--log standard|debug|trace] [--print-state]" +
			"\n\nEXAMPLE:" +
			"\n\t" + appName + " --config /etc/" + appName + "/" + appName + ".yaml",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Destination: &cfg.Flag.ConfigFile, Value: defaultConfigFile, Usage: "load configuration from `FILE`"},
			&cli.StringFlag{Name: "log", Aliases: []string{"l"}, Destination: &cfg.Flag.LogLevel, Usage: "`LEVEL` overrides the configured log level (standard|debug|trace)"},
			&cli.BoolFlag{Name: "print-state", Destination: &cfg.Flag.PrintState, Usage: "print the button levels and exit"},
		},
		Action: func(*cli.Context) error {
			if err := cfg.LoadConfig(); err != nil {
				return err
			}
			debug.SetDebug(cfg.Debug.File, cfg.Debug.Flag)
			defer func() {
				if cfg.Debug.File != os.Stderr && cfg.Debug.File != os.Stdout {
					_ = cfg.Debug.File.Close()
				}
			}()
			return run(cfg)
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	driver, err := gpio.Open(cfg.Gpio.Driver, cfg.Gpio.Chip)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer driver.Close()

	if cfg.Flag.PrintState {
		return printState(os.Stdout, cfg, driver)
	}

	tracker := status.NewTracker(time.Now(), status.Config{
		PollMs:      cfg.Poll.Milliseconds(),
		HeartbeatMs: cfg.Heartbeat.Milliseconds(),
		Driver:      cfg.Gpio.Driver,
	}, nil)

	ctrl, err := controller.Open(cfg, driver, clock.NewMonotonic(), nil,
		controller.Displays{controller.LogDisplay{}, tracker})
	if err != nil {
		return err
	}
	defer func() {
		if err := ctrl.Close(); err != nil {
			debug.ErrorLog.Printf("close lines: %v", err)
		}
	}()

	events := debug.InfoLog.Writer()
	writeEvent(events, status.FormatStatusEvent(tracker.Snapshot(), "STARTUP", ""))
	debug.InfoLog.Printf("started: driver=%s poll=%v heartbeat=%v", cfg.Gpio.Driver, cfg.Poll, cfg.Heartbeat)

	ticker := time.NewTicker(cfg.Poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	return runLoop(ctrl, tracker, cfg.Heartbeat, events, time.Now, ticker.C, sigCh)
}

// runLoop steps the controller on every tick until a signal arrives, then
// releases every relay. Lifecycle events are written to events as one JSON
// document per line.
func runLoop(ctrl *controller.Controller, tracker *status.Tracker, heartbeat time.Duration, events io.Writer, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	lastBeat := now()

	for {
		select {
		case s := <-sig:
			debug.InfoLog.Printf("received %v, shutting down", s)
			ctrl.Shutdown()
			tracker.Update(ctrl.Counts())
			writeEvent(events, status.FormatStatusEvent(tracker.Snapshot(), "SHUTDOWN", signalName(s)))
			return nil

		case <-tick:
			t := now()
			ctrl.Step()
			tracker.Update(ctrl.Counts())

			if heartbeat > 0 && t.Sub(lastBeat) >= heartbeat {
				lastBeat = t
				snap := tracker.Snapshot()
				debug.DebugLog.Printf("heartbeat: uptime=%v motor=%q pump=%q hold=%s",
					snap.Uptime().Truncate(time.Second), snap.Motor, snap.Pump, snap.Hold)
				writeEvent(events, status.FormatStatusEvent(snap, "HEARTBEAT", ""))
			}
		}
	}
}

func writeEvent(w io.Writer, payload []byte) {
	if _, err := w.Write(append(payload, '\n')); err != nil {
		debug.ErrorLog.Printf("write status event: %v", err)
	}
}

func signalName(s os.Signal) string {
	switch s {
	case syscall.SIGINT:
		return "SIGINT"
	case syscall.SIGTERM:
		return "SIGTERM"
	}
	return "UNKNOWN"
}

// printState reads each button line once and prints its state.
func printState(w io.Writer, cfg *config.Config, d gpio.Driver) error {
	buttons := []struct {
		name string
		line int
	}{
		{"Motor", cfg.Buttons.Motor},
		{"Pump", cfg.Buttons.Pump},
		{"Hold", cfg.Buttons.Hold},
	}

	for _, b := range buttons {
		in, err := d.OpenInput(b.line)
		if err != nil {
			return fmt.Errorf("open %s button line %d: %w", b.name, b.line, err)
		}
		lvl, err := in.Read()
		_ = in.Close()
		if err != nil {
			return fmt.Errorf("read %s button line %d: %w", b.name, b.line, err)
		}

		state := logic.Released
		if lvl == gpio.Low {
			state = logic.Pressed
		}
		fmt.Fprintf(w, "%s: %s (line %d %s)\n", b.name, state, b.line, lvl)
	}
	return nil
}
