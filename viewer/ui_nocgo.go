//go:build tinygo || !cgo

package viewer

import (
	"errors"

	"github.com/soypat/boxview"
)

// Run requires CGo for window and GL access.
func Run(app boxview.App, cfg Config) error {
	return errors.New("require cgo for UI rendering")
}
