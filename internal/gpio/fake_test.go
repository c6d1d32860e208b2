package gpio

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeInputRead(t *testing.T) {
	f := NewFakeInput(High, Low, High)

	for i, want := range []Level{High, Low, High} {
		got, err := f.Read()
		require.NoError(t, err)
		assert.Equal(t, want, got, "level %d", i)
	}

	// Exhausted: last level repeats
	got, err := f.Read()
	require.NoError(t, err)
	assert.Equal(t, High, got)
}

func TestFakeInputNoLevels(t *testing.T) {
	f := NewFakeInput()

	_, err := f.Read()
	assert.Error(t, err)
}

func TestFakeInputError(t *testing.T) {
	f := NewFakeInput(High)
	f.ReadError = errors.New("simulated error")

	_, err := f.Read()
	assert.EqualError(t, err, "simulated error")
}

func TestFakeInputSetAndReset(t *testing.T) {
	f := NewFakeInput(Low, High)
	f.Read()
	f.Reset()

	got, _ := f.Read()
	assert.Equal(t, Low, got, "after reset")

	f.Set(High)
	got, _ = f.Read()
	assert.Equal(t, High, got, "after set")
	got, _ = f.Read()
	assert.Equal(t, High, got, "set level holds")
}

func TestFakeInputClose(t *testing.T) {
	f := NewFakeInput(High)
	assert.False(t, f.Closed)
	require.NoError(t, f.Close())
	assert.True(t, f.Closed)
}

func TestFakeOutput(t *testing.T) {
	f := NewFakeOutput()
	assert.Equal(t, Low, f.Level(), "no writes yet")

	require.NoError(t, f.Write(High))
	require.NoError(t, f.Write(Low))
	assert.Equal(t, []Level{High, Low}, f.Writes)
	assert.Equal(t, Low, f.Level())

	f.WriteError = errors.New("stuck")
	assert.Error(t, f.Write(High))
	assert.Equal(t, High, f.Level(), "failed write still recorded")
}

func TestFakeDriver(t *testing.T) {
	d := NewFakeDriver()

	in, err := d.OpenInput(17)
	require.NoError(t, err)
	lvl, err := in.Read()
	require.NoError(t, err)
	assert.Equal(t, High, lvl, "inputs idle High with pull-up")

	_, err = d.OpenInput(17)
	assert.Error(t, err, "line reuse")

	out, err := d.OpenOutput(5, Low)
	require.NoError(t, err)
	assert.Equal(t, []Level{Low}, d.Outputs[5].Writes, "opened at idle")
	require.NoError(t, out.Write(High))
	assert.Equal(t, High, d.Outputs[5].Level())

	require.NoError(t, d.Close())
	assert.True(t, d.Closed)
}

func TestLevel(t *testing.T) {
	assert.Equal(t, "High", High.String())
	assert.Equal(t, "Low", Low.String())
	assert.Equal(t, 1, High.Int())
	assert.Equal(t, 0, Low.Int())
	assert.Equal(t, High, LevelOf(1))
	assert.Equal(t, Low, LevelOf(0))
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open("bogus", "")
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestOutputCloseRestoresIdle(t *testing.T) {
	d := NewFakeDriver()

	out, err := d.OpenOutput(6, High)
	require.NoError(t, err)
	require.NoError(t, out.Write(Low))

	require.NoError(t, out.Close())
	assert.Equal(t, []Level{High, Low, High}, d.Outputs[6].Writes)
	assert.True(t, d.Outputs[6].Closed)
}

func TestOutputCloseWriteError(t *testing.T) {
	d := NewFakeDriver()
	out, err := d.OpenOutput(6, High)
	require.NoError(t, err)

	d.Outputs[6].WriteError = errors.New("stuck")
	assert.Error(t, out.Close())
	assert.True(t, d.Outputs[6].Closed, "line released even if the idle write fails")
}
