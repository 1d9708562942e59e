//go:build headless

package synth

// NewDeviceOutput is unavailable in headless builds.
func NewDeviceOutput() (Output, error) {
	return nil, ErrNoDevice
}
