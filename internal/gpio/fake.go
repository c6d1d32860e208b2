package gpio

import (
	"errors"
	"fmt"
)

// FakeInput is a test double that returns scripted levels.
type FakeInput struct {
	// Levels contains scripted values to return.
	// Each call to Read() consumes the next level.
	Levels []Level

	// index tracks current position in Levels
	index int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Read()
	ReadError error
}

// NewFakeInput creates a FakeInput with the given levels.
func NewFakeInput(levels ...Level) *FakeInput {
	return &FakeInput{Levels: levels}
}

// Read returns the next scripted level.
// If levels are exhausted, returns the last level repeatedly.
func (f *FakeInput) Read() (Level, error) {
	if f.ReadError != nil {
		return Low, f.ReadError
	}

	if len(f.Levels) == 0 {
		return Low, errors.New("no levels configured")
	}

	l := f.Levels[f.index]
	if f.index < len(f.Levels)-1 {
		f.index++
	}
	return l, nil
}

// Set replaces the script with a single level held from now on.
func (f *FakeInput) Set(l Level) {
	f.Levels = []Level{l}
	f.index = 0
}

// Close marks the input as closed.
func (f *FakeInput) Close() error {
	f.Closed = true
	return nil
}

// Reset resets the input to the beginning of levels.
func (f *FakeInput) Reset() {
	f.index = 0
	f.Closed = false
}

// FakeOutput records every level written to it.
type FakeOutput struct {
	// Writes contains all levels written, oldest first.
	Writes []Level

	// WriteError, if set, will be returned by Write (the write is still recorded).
	WriteError error

	// Closed tracks if Close was called
	Closed bool
}

// NewFakeOutput creates a FakeOutput for testing.
func NewFakeOutput() *FakeOutput {
	return &FakeOutput{}
}

// Write records the level.
func (f *FakeOutput) Write(l Level) error {
	f.Writes = append(f.Writes, l)
	return f.WriteError
}

// Level returns the last written level, Low if nothing was written.
func (f *FakeOutput) Level() Level {
	if len(f.Writes) == 0 {
		return Low
	}
	return f.Writes[len(f.Writes)-1]
}

// Close marks the output as closed.
func (f *FakeOutput) Close() error {
	f.Closed = true
	return nil
}

// FakeDriver hands out fakes keyed by line number.
type FakeDriver struct {
	Inputs  map[int]*FakeInput
	Outputs map[int]*FakeOutput
	Closed  bool
}

// NewFakeDriver creates an empty FakeDriver.
func NewFakeDriver() *FakeDriver {
	return &FakeDriver{
		Inputs:  map[int]*FakeInput{},
		Outputs: map[int]*FakeOutput{},
	}
}

// OpenInput returns a FakeInput held High (released, pull-up).
func (d *FakeDriver) OpenInput(line int) (Input, error) {
	if _, ok := d.Inputs[line]; ok {
		return nil, fmt.Errorf("line %d already used", line)
	}
	in := NewFakeInput(High)
	d.Inputs[line] = in
	return in, nil
}

// OpenOutput returns a FakeOutput that has been driven to idle. Like the
// real backends it is driven back to idle when closed.
func (d *FakeDriver) OpenOutput(line int, idle Level) (Output, error) {
	if _, ok := d.Outputs[line]; ok {
		return nil, fmt.Errorf("line %d already used", line)
	}
	out := NewFakeOutput()
	out.Writes = append(out.Writes, idle)
	d.Outputs[line] = out
	return withIdle(out, idle), nil
}

// Close marks the driver as closed.
func (d *FakeDriver) Close() error {
	d.Closed = true
	return nil
}
