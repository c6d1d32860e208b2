//go:build !linux

package gpio

// DefaultChip is the GPIO character device of the Raspberry Pi header.
const DefaultChip = "gpiochip0"

// CdevDriver is not available on non-Linux platforms.
type CdevDriver struct{}

// NewCdevDriver returns ErrUnsupported on non-Linux platforms.
func NewCdevDriver(string) (*CdevDriver, error) {
	return nil, ErrUnsupported
}

// OpenInput is not implemented on non-Linux platforms.
func (d *CdevDriver) OpenInput(int) (Input, error) {
	return nil, ErrUnsupported
}

// OpenOutput is not implemented on non-Linux platforms.
func (d *CdevDriver) OpenOutput(int, Level) (Output, error) {
	return nil, ErrUnsupported
}

// Close is not implemented on non-Linux platforms.
func (d *CdevDriver) Close() error {
	return nil
}
