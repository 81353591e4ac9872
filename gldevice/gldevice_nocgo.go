//go:build tinygo || !cgo

package gldevice

// Device is unavailable without CGo.
type Device struct{}

// New always fails without CGo.
func New(win Presenter) (*Device, error) {
	return nil, errNoCGO
}
