package boxview

// Color is a linear RGBA colour as uploaded to the GPU.
type Color struct {
	R, G, B, A float32
}

// Named colours used by the box mesh and the frame clear.
var (
	White   = Color{R: 1, G: 1, B: 1, A: 1}
	Black   = Color{R: 0, G: 0, B: 0, A: 1}
	Red     = Color{R: 1, G: 0, B: 0, A: 1}
	Green   = Color{R: 0, G: 1, B: 0, A: 1}
	Blue    = Color{R: 0, G: 0, B: 1, A: 1}
	Yellow  = Color{R: 1, G: 1, B: 0, A: 1}
	Cyan    = Color{R: 0, G: 1, B: 1, A: 1}
	Magenta = Color{R: 1, G: 0, B: 1, A: 1}
	Silver  = Color{R: 0.75, G: 0.75, B: 0.75, A: 1}
	// Clear is the all-zero colour of the dummy vertex.
	Clear = Color{}
)

// Negated returns c with every RGB channel negated and alpha forced to -1.
// Zero channels become negative zero.
func (c Color) Negated() Color {
	return Color{R: -c.R, G: -c.G, B: -c.B, A: -1}
}

// Array returns the colour as a [4]float32 in RGBA order.
func (c Color) Array() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}
