// Package gldevice implements the boxview device, context, swap chain and
// effect contracts on OpenGL 4.5+. All calls must happen on the goroutine
// owning the current GL context.
//
// Depth follows DirectX conventions: clip control is set to a [0,1] depth
// range so projections built by boxview.PerspectiveFovLH are used unchanged,
// and clockwise triangles are front facing.
package gldevice

import "errors"

var errNoCGO = errors.New("gldevice requires CGo and is not supported on TinyGo")

// Presenter swaps the front and back buffers of a window. *glfw.Window implements it.
type Presenter interface {
	SwapBuffers()
}
