//go:build !linux

package gpio

// RpioDriver is not available on non-Linux platforms.
type RpioDriver struct{}

// NewRpioDriver returns ErrUnsupported on non-Linux platforms.
func NewRpioDriver() (*RpioDriver, error) {
	return nil, ErrUnsupported
}

// OpenInput is not implemented on non-Linux platforms.
func (d *RpioDriver) OpenInput(int) (Input, error) {
	return nil, ErrUnsupported
}

// OpenOutput is not implemented on non-Linux platforms.
func (d *RpioDriver) OpenOutput(int, Level) (Output, error) {
	return nil, ErrUnsupported
}

// Close is not implemented on non-Linux platforms.
func (d *RpioDriver) Close() error {
	return nil
}
