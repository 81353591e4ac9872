//go:build !tinygo && cgo

package viewer

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/soypat/boxview"
	"github.com/soypat/boxview/gldevice"
	"github.com/soypat/glgl/v4.6-core/glgl"
)

// Run opens a window, initializes app and drives it until the window is
// closed, cfg.Context is done or a frame fails. app.Close is always called
// once app.Init has been called.
func Run(app boxview.App, cfg Config) (err error) {
	cfg.setDefaults()
	window, terminate, err := glgl.InitWithCurrentWindow33(glgl.WindowConfig{
		Title:   cfg.Title,
		Version: [2]int{4, 6},
		Width:   cfg.Width,
		Height:  cfg.Height,
	})
	if err != nil {
		return fmt.Errorf("starting GLFW window: %w", err)
	}
	defer terminate()

	dev, err := gldevice.New(window)
	if err != nil {
		return err
	}
	fbWidth, fbHeight := window.GetFramebufferSize()
	dev.Resize(fbWidth, fbHeight)

	err = app.Init(boxview.Graphics{
		Device:    dev,
		Context:   dev.Context(),
		SwapChain: dev.SwapChain(),
		Capturer:  cursorCapture{window: window},
	})
	defer func() {
		err = errors.Join(err, app.Close())
	}()
	if err != nil {
		cfg.Logger.Printf("initialization failed:\n%v", err)
		return err
	}
	if aspect, ok := aspectRatio(fbWidth, fbHeight); ok {
		app.Resize(aspect)
	}

	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		dev.Resize(width, height)
		if aspect, ok := aspectRatio(width, height); ok {
			app.Resize(aspect)
		}
	})
	buttons := func(w *glfw.Window) boxview.Buttons {
		return pointerButtons(
			w.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press,
			w.GetMouseButton(glfw.MouseButtonRight) == glfw.Press,
			w.GetMouseButton(glfw.MouseButtonMiddle) == glfw.Press,
		)
	}
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		x, y := cursorPixel(w.GetCursorPos())
		switch action {
		case glfw.Press:
			app.OnPointerDown(buttons(w), x, y)
		case glfw.Release:
			app.OnPointerUp(buttons(w), x, y)
		}
	})
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		x, y := cursorPixel(xpos, ypos)
		app.OnPointerMove(buttons(w), x, y)
	})

	if cfg.Capture != nil {
		dev.SwapChain().CaptureNext(cfg.Capture)
	}
	cfg.logf("rendering %dx%d", fbWidth, fbHeight)
	ctx := cfg.Context
	previousTime := glfw.GetTime()
	for !window.ShouldClose() {
		if ctx != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
		glfw.PollEvents()
		currentTime := glfw.GetTime()
		elapsedTime := currentTime - previousTime
		previousTime = currentTime

		app.Update(float32(elapsedTime))
		if err := app.Draw(); err != nil {
			return fmt.Errorf("drawing frame: %w", err)
		}
		if cfg.Capture != nil {
			cfg.logf("frame captured")
			return nil
		}
	}
	return nil
}

func cursorPixel(xpos, ypos float64) (x, y int) {
	return int(math.Floor(xpos)), int(math.Floor(ypos))
}

// cursorCapture hides and locks the cursor to the window during a drag so
// motion keeps being reported past the window edges.
type cursorCapture struct {
	window *glfw.Window
}

func (c cursorCapture) Capture() {
	c.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
}

func (c cursorCapture) Release() {
	c.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
}
