// Package config loads the controller configuration from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/womat/debug"
	"gopkg.in/yaml.v2"

	"github.com/sweeney/swamp-controller/internal/gpio"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the controller configuration. Button and relay timing is
// fixed in the logic and relay packages and cannot be configured here.
type Config struct {
	Gpio         GpioConfig    `yaml:"gpio"`
	Buttons      ButtonConfig  `yaml:"buttons"`
	Relays       RelayConfig   `yaml:"relays"`
	PollInt      int           `yaml:"poll"`
	Poll         time.Duration `yaml:"-"`
	HeartbeatInt int           `yaml:"heartbeat"`
	Heartbeat    time.Duration `yaml:"-"`
	Debug        DebugConfig   `yaml:"debug"`
	Flag         FlagConfig    `yaml:"-"`
}

// GpioConfig selects the GPIO backend.
type GpioConfig struct {
	Driver string `yaml:"driver"`
	Chip   string `yaml:"chip"`
}

// ButtonConfig holds the BCM lines of the push buttons.
type ButtonConfig struct {
	Motor int `yaml:"motor"`
	Pump  int `yaml:"pump"`
	Hold  int `yaml:"hold"`
}

// RelayConfig holds the BCM lines of the relays and their polarity.
type RelayConfig struct {
	MotorLow  int  `yaml:"motor_low"`
	MotorHigh int  `yaml:"motor_high"`
	Pump      int  `yaml:"pump"`
	ActiveLow bool `yaml:"active_low"`
}

// DebugConfig defines the log destination and level.
type DebugConfig struct {
	File       io.WriteCloser `yaml:"-"`
	Flag       int            `yaml:"-"`
	FlagString string         `yaml:"flag"`
	FileString string         `yaml:"file"`
}

// FlagConfig holds values given on the command line.
type FlagConfig struct {
	ConfigFile string
	LogLevel   string
	PrintState bool
}

// NewConfig returns the defaults.
func NewConfig() *Config {
	return &Config{
		Gpio: GpioConfig{
			Driver: gpio.DriverCdev,
			Chip:   gpio.DefaultChip,
		},
		Buttons: ButtonConfig{
			Motor: 17,
			Pump:  27,
			Hold:  22,
		},
		Relays: RelayConfig{
			MotorLow:  5,
			MotorHigh: 6,
			Pump:      13,
			ActiveLow: true,
		},
		PollInt:      20,
		Poll:         20 * time.Millisecond,
		HeartbeatInt: 900,
		Heartbeat:    15 * time.Minute,
		Debug: DebugConfig{
			FileString: "stderr",
			FlagString: "standard",
		},
	}
}

// LoadConfig reads the config file, applies command line overrides and
// validates the result. A missing config file keeps the defaults.
func (c *Config) LoadConfig() error {
	if err := c.readConfigFile(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("error reading config file %q: %w", c.Flag.ConfigFile, err)
		}
	}

	if c.Flag.LogLevel != "" {
		c.Debug.FlagString = c.Flag.LogLevel
	}

	c.Poll = time.Duration(c.PollInt) * time.Millisecond
	c.Heartbeat = time.Duration(c.HeartbeatInt) * time.Second

	if err := c.Validate(); err != nil {
		return err
	}

	if err := c.setDebugConfig(); err != nil {
		return fmt.Errorf("unable to open debug file %q: %w", c.Debug.FileString, err)
	}
	return nil
}

func (c *Config) readConfigFile() error {
	if c.Flag.ConfigFile == "" {
		return os.ErrNotExist
	}
	file, err := os.Open(c.Flag.ConfigFile)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	return yaml.NewDecoder(file).Decode(c)
}

// Validate checks line numbers, the poll period and the driver name.
func (c *Config) Validate() error {
	switch c.Gpio.Driver {
	case gpio.DriverCdev, gpio.DriverPeriph, gpio.DriverRpio:
	default:
		return fmt.Errorf("%w: gpio driver %q", ErrInvalid, c.Gpio.Driver)
	}

	// the debounce thresholds assume a poll of a few tens of milliseconds
	if c.Poll < time.Millisecond || c.Poll > 50*time.Millisecond {
		return fmt.Errorf("%w: poll %v outside 1ms..50ms", ErrInvalid, c.Poll)
	}
	if c.Heartbeat < 0 {
		return fmt.Errorf("%w: negative heartbeat", ErrInvalid)
	}

	lines := map[string]int{
		"buttons.motor":     c.Buttons.Motor,
		"buttons.pump":      c.Buttons.Pump,
		"buttons.hold":      c.Buttons.Hold,
		"relays.motor_low":  c.Relays.MotorLow,
		"relays.motor_high": c.Relays.MotorHigh,
		"relays.pump":       c.Relays.Pump,
	}
	used := map[int]string{}
	for name, line := range lines {
		if line < 0 {
			return fmt.Errorf("%w: %s line %d", ErrInvalid, name, line)
		}
		if other, ok := used[line]; ok {
			return fmt.Errorf("%w: line %d used by %s and %s", ErrInvalid, line, other, name)
		}
		used[line] = name
	}
	return nil
}

func (c *Config) setDebugConfig() (err error) {
	switch c.Debug.FlagString {
	case "trace", "full":
		c.Debug.Flag = debug.Full
	case "debug":
		c.Debug.Flag = debug.Warning | debug.Info | debug.Error | debug.Fatal | debug.Debug
	case "standard":
		c.Debug.Flag = debug.Standard
	default:
		return fmt.Errorf("%w: log level %q", ErrInvalid, c.Debug.FlagString)
	}

	switch c.Debug.FileString {
	case "stderr":
		c.Debug.File = os.Stderr
	case "stdout":
		c.Debug.File = os.Stdout
	default:
		if c.Debug.File, err = os.OpenFile(c.Debug.FileString, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666); err != nil {
			return
		}
	}
	return
}
