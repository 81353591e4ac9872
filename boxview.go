// Package boxview implements an orbit-camera cube viewer: a procedurally
// built cube mesh drawn every frame through a fixed pipeline while the user
// drags the mouse to orbit and zoom the camera.
//
// The package holds no GPU or window code. Graphics devices, effects and the
// window loop are reached through the interfaces declared in device.go and the
// [App] contract; see packages gldevice and viewer for the OpenGL/GLFW side.
package boxview

import (
	"errors"
)

// epstol is used to check for badly conditioned lengths before normalization.
const epstol = 6e-7

var (
	// ErrTechniqueNotFound is returned when an effect does not declare the requested technique.
	ErrTechniqueNotFound = errors.New("technique not found")
	// ErrVariableNotFound is returned when an effect does not declare the requested variable.
	ErrVariableNotFound = errors.New("effect variable not found")
	// ErrSignatureMismatch is returned when an input layout does not satisfy a pass input signature.
	ErrSignatureMismatch = errors.New("input layout does not match pass signature")
	// ErrNotInitialized is returned when drawing before a successful Init.
	ErrNotInitialized = errors.New("app not initialized")
	// ErrAlreadyInitialized is returned by Init on an app that has not been closed.
	ErrAlreadyInitialized = errors.New("app already initialized")
)

// Buttons is the pointer button state reported with every pointer event.
type Buttons uint8

const (
	ButtonPrimary Buttons = 1 << iota
	ButtonSecondary
	ButtonMiddle
)

// Has reports whether all buttons in b2 are held in b.
func (b Buttons) Has(b2 Buttons) bool { return b&b2 == b2 }

// Capturer grants a view exclusive pointer input while a drag is in progress.
type Capturer interface {
	Capture()
	Release()
}

// Graphics groups the collaborators an [App] needs from the windowing layer.
type Graphics struct {
	Device    Device
	Context   Context
	SwapChain SwapChain
	// Capturer may be nil, in which case pointer capture is a no-op.
	Capturer Capturer
}

// App is the capability contract a windowing loop drives. Calls happen on a
// single goroutine: pointer events, then Update, then Draw, once per tick.
type App interface {
	// Init creates all GPU resources. On error no resources are left allocated.
	Init(g Graphics) error
	// Resize is called with the new output aspect ratio before the next Draw.
	Resize(aspect float32)
	Update(dt float32)
	// Draw renders and presents a frame. Errors are fatal to the session.
	Draw() error
	OnPointerDown(btn Buttons, x, y int)
	OnPointerUp(btn Buttons, x, y int)
	OnPointerMove(btn Buttons, x, y int)
	// Close releases every resource. It is safe to call more than once.
	Close() error
}
