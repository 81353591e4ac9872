// Package viewer runs a boxview.App in a GLFW window: it owns the window,
// the GL device and the event loop and forwards resize, pointer and frame
// events to the app on a single goroutine.
//
// Callers must lock the main goroutine to its OS thread before calling [Run],
// typically with runtime.LockOSThread in an init function.
package viewer

import (
	"context"
	"io"
	"log"

	"github.com/soypat/boxview"
)

// Config configures [Run]. Zero fields take defaults.
type Config struct {
	// Window size in screen coordinates. Defaults to 800x600.
	Width, Height int
	// Title of the window. Defaults to "Box Demo".
	Title string
	// Context cancels the event loop when done. May be nil.
	Context context.Context
	// Capture, if set, receives the first frame as PNG and Run returns after it.
	Capture io.Writer
	// Logger receives progress and error lines. Nil uses the standard logger.
	Logger *log.Logger
	// Silent suppresses progress lines.
	Silent bool
}

func (cfg *Config) setDefaults() {
	if cfg.Width <= 0 {
		cfg.Width = 800
	}
	if cfg.Height <= 0 {
		cfg.Height = 600
	}
	if cfg.Title == "" {
		cfg.Title = "Box Demo"
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
}

func (cfg *Config) logf(format string, args ...any) {
	if !cfg.Silent {
		cfg.Logger.Printf(format, args...)
	}
}

// aspectRatio returns width/height or false for a degenerate (minimized) surface.
func aspectRatio(width, height int) (float32, bool) {
	if width <= 0 || height <= 0 {
		return 0, false
	}
	return float32(width) / float32(height), true
}

// pointerButtons builds the button flags from the pressed state of the left,
// right and middle buttons.
func pointerButtons(left, right, middle bool) boxview.Buttons {
	var b boxview.Buttons
	if left {
		b |= boxview.ButtonPrimary
	}
	if right {
		b |= boxview.ButtonSecondary
	}
	if middle {
		b |= boxview.ButtonMiddle
	}
	return b
}
