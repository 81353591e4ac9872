package boxview

import (
	math "github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/glgl/math/ms1"
	"github.com/soypat/glgl/math/ms3"
)

// Orbit camera limits and input sensitivities.
const (
	MinPhi    = 0.1
	MaxPhi    = math.Pi - 0.1
	MinRadius = 3.0
	MaxRadius = 15.0
	// DegreesPerPixel converts primary-drag pixels to rotation.
	DegreesPerPixel = 0.25
	// UnitsPerPixel converts secondary-drag pixels to zoom.
	UnitsPerPixel = 0.005
)

// OrbitCamera looks at the origin from a point on a sphere given in
// spherical coordinates. Theta is the azimuth, Phi the polar angle
// measured from +Z and Radius the distance to the origin.
type OrbitCamera struct {
	Theta  float32
	Phi    float32
	Radius float32
	// Last observed pointer position in pixels.
	LastX, LastY int
	// Capturer is notified on pointer down and up. May be nil.
	Capturer Capturer
}

// NewOrbitCamera returns a camera at θ=1.5π, φ=0.25π and radius 5.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Theta:  1.5 * math.Pi,
		Phi:    0.25 * math.Pi,
		Radius: 5,
	}
}

// OnPointerDown records the drag origin and captures the pointer.
func (c *OrbitCamera) OnPointerDown(btn Buttons, x, y int) {
	c.LastX = x
	c.LastY = y
	if c.Capturer != nil {
		c.Capturer.Capture()
	}
}

// OnPointerUp releases the pointer capture.
func (c *OrbitCamera) OnPointerUp(btn Buttons, x, y int) {
	if c.Capturer != nil {
		c.Capturer.Release()
	}
}

// OnPointerMove rotates the camera while the primary button is held and
// zooms while the secondary button is held. Primary wins when both are held.
func (c *OrbitCamera) OnPointerMove(btn Buttons, x, y int) {
	dx := float32(x - c.LastX)
	dy := float32(y - c.LastY)
	switch {
	case btn.Has(ButtonPrimary):
		c.Rotate(mgl32.DegToRad(DegreesPerPixel*dx), mgl32.DegToRad(DegreesPerPixel*dy))
	case btn.Has(ButtonSecondary):
		c.Zoom(UnitsPerPixel*dx - UnitsPerPixel*dy)
	}
	c.LastX = x
	c.LastY = y
}

// Rotate adds angles in radians to Theta and Phi. Phi is clamped to [MinPhi, MaxPhi].
func (c *OrbitCamera) Rotate(dTheta, dPhi float32) {
	c.Theta += dTheta
	c.Phi = ms1.Clamp(c.Phi+dPhi, MinPhi, MaxPhi)
}

// Zoom adds dr to Radius clamped to [MinRadius, MaxRadius].
func (c *OrbitCamera) Zoom(dr float32) {
	c.Radius = ms1.Clamp(c.Radius+dr, MinRadius, MaxRadius)
}

// Eye returns the Cartesian camera position.
func (c *OrbitCamera) Eye() ms3.Vec {
	sinPhi, cosPhi := math.Sincos(c.Phi)
	sinTheta, cosTheta := math.Sincos(c.Theta)
	return ms3.Vec{
		X: c.Radius * sinPhi * cosTheta,
		Y: c.Radius * sinPhi * sinTheta,
		Z: c.Radius * cosPhi,
	}
}

// ViewMatrix returns the left-handed view matrix looking from Eye to the
// origin with +Y up.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return LookAtLH(c.Eye(), ms3.Vec{}, ms3.Vec{Y: 1})
}
