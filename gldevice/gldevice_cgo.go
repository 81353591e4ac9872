//go:build !tinygo && cgo

package gldevice

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/soypat/boxview"
	"github.com/soypat/glgl/v4.6-core/glgl"
)

var (
	_ boxview.Device    = (*Device)(nil)
	_ boxview.Context   = (*Context)(nil)
	_ boxview.SwapChain = (*SwapChain)(nil)
)

// Device creates GL resources and owns the single immediate [Context] and [SwapChain].
type Device struct {
	ctx  Context
	swap SwapChain
}

// New configures fixed pipeline state on the current GL context.
// win is swapped on every [SwapChain.Present].
func New(win Presenter) (*Device, error) {
	if win == nil {
		return nil, errors.New("nil presenter")
	}
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.FrontFace(gl.CW)
	gl.CullFace(gl.BACK)
	gl.ClipControl(gl.LOWER_LEFT, gl.ZERO_TO_ONE)
	if err := glgl.Err(); err != nil {
		return nil, fmt.Errorf("configuring pipeline state: %w", err)
	}
	d := &Device{
		swap: SwapChain{win: win, interval: -1},
	}
	d.swap.ctx = &d.ctx
	return d, nil
}

// Context returns the immediate rendering context.
func (d *Device) Context() *Context { return &d.ctx }

// SwapChain returns the swap chain presenting to the window.
func (d *Device) SwapChain() *SwapChain { return &d.swap }

// Resize sets the viewport to the framebuffer size in pixels.
func (d *Device) Resize(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	d.swap.width = width
	d.swap.height = height
}

type buffer struct {
	id   uint32
	bind boxview.BindFlags
	size int
}

func (b *buffer) Release() error {
	if b.id == 0 {
		return nil
	}
	gl.DeleteBuffers(1, &b.id)
	b.id = 0
	return glgl.Err()
}

// CreateBuffer allocates a buffer with immutable storage. Only non-immutable
// usages may be updated afterwards.
func (d *Device) CreateBuffer(desc boxview.BufferDesc, data []byte) (boxview.Buffer, error) {
	switch {
	case desc.ByteWidth <= 0:
		return nil, errors.New("zero or negative buffer size")
	case desc.Usage == boxview.UsageImmutable && len(data) == 0:
		return nil, errors.New("immutable buffer requires initial data")
	case len(data) != 0 && len(data) != desc.ByteWidth:
		return nil, fmt.Errorf("initial data length %d does not match buffer size %d", len(data), desc.ByteWidth)
	}
	var flags uint32
	if desc.Usage != boxview.UsageImmutable {
		flags = gl.DYNAMIC_STORAGE_BIT
	}
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = unsafe.Pointer(&data[0])
	}
	b := &buffer{bind: desc.Bind, size: desc.ByteWidth}
	gl.CreateBuffers(1, &b.id)
	gl.NamedBufferStorage(b.id, desc.ByteWidth, ptr, flags)
	if err := glgl.Err(); err != nil {
		b.Release()
		return nil, fmt.Errorf("buffer storage: %w", err)
	}
	return b, nil
}

type inputLayout struct {
	vao   uint32
	elems []boxview.InputElement
}

func (l *inputLayout) Release() error {
	if l.vao == 0 {
		return nil
	}
	gl.DeleteVertexArrays(1, &l.vao)
	l.vao = 0
	return glgl.Err()
}

// CreateInputLayout builds a vertex array object whose attributes read the
// elements consumed by sig from vertex buffer slot 0.
func (d *Device) CreateInputLayout(elems []boxview.InputElement, sig boxview.InputSignature) (boxview.InputLayout, error) {
	if err := boxview.MatchSignature(elems, sig); err != nil {
		return nil, err
	}
	l := &inputLayout{elems: append([]boxview.InputElement{}, elems...)}
	gl.CreateVertexArrays(1, &l.vao)
	for _, e := range elems {
		reg := -1
		for _, p := range sig {
			if p.Semantic == e.Semantic {
				reg = p.Register
				break
			}
		}
		if reg < 0 {
			continue // Not consumed by the stage.
		}
		loc := uint32(reg)
		gl.EnableVertexArrayAttrib(l.vao, loc)
		gl.VertexArrayAttribFormat(l.vao, loc, int32(e.Format.Components()), gl.FLOAT, false, uint32(e.Offset))
		gl.VertexArrayAttribBinding(l.vao, loc, 0)
	}
	if err := glgl.Err(); err != nil {
		l.Release()
		return nil, fmt.Errorf("vertex array: %w", err)
	}
	return l, nil
}

// Context records input assembler state and resolves it on every draw.
type Context struct {
	layout    *inputLayout
	topology  uint32
	vb        *buffer
	vbStride  int
	vbOffset  int
	ib        *buffer
	indexType uint32
	indexSize int
	ibOffset  int
	// err is the first invalid command since the last Present.
	err error
}

var errMissingDrawState = errors.New("DrawIndexed without input layout, vertex buffer or index buffer")

// takeErr returns and clears the pending command error.
func (c *Context) takeErr() error {
	err := c.err
	c.err = nil
	return err
}

func (c *Context) ClearRenderTarget(col boxview.Color) {
	gl.ClearColor(col.R, col.G, col.B, col.A)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (c *Context) ClearDepthStencil(depth float32, stencil uint8) {
	gl.DepthMask(true)
	gl.ClearDepthf(depth)
	gl.ClearStencil(int32(stencil))
	gl.Clear(gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)
}

func (c *Context) SetInputLayout(l boxview.InputLayout) {
	c.layout, _ = l.(*inputLayout)
}

func (c *Context) SetPrimitiveTopology(t boxview.Topology) {
	switch t {
	case boxview.TopologyTriangleListAdj:
		c.topology = gl.TRIANGLES_ADJACENCY
	default:
		c.topology = gl.TRIANGLES
	}
}

func (c *Context) SetVertexBuffer(slot int, b boxview.Buffer, stride, offset int) {
	if slot != 0 {
		return // Single vertex stream.
	}
	c.vb, _ = b.(*buffer)
	c.vbStride = stride
	c.vbOffset = offset
}

func (c *Context) SetIndexBuffer(b boxview.Buffer, f boxview.IndexFormat, offset int) {
	c.ib, _ = b.(*buffer)
	c.ibOffset = offset
	switch f {
	case boxview.IndexUint16:
		c.indexType, c.indexSize = gl.UNSIGNED_SHORT, 2
	default:
		c.indexType, c.indexSize = gl.UNSIGNED_INT, 4
	}
}

// DrawIndexed draws count indices. A draw with missing input state is
// skipped and reported by the next Present.
func (c *Context) DrawIndexed(count, startIndex, baseVertex int) {
	if c.layout == nil || c.vb == nil || c.ib == nil {
		if c.err == nil {
			c.err = errMissingDrawState
		}
		return
	}
	vao := c.layout.vao
	gl.VertexArrayVertexBuffer(vao, 0, c.vb.id, c.vbOffset, int32(c.vbStride))
	gl.VertexArrayElementBuffer(vao, c.ib.id)
	gl.BindVertexArray(vao)
	gl.DrawElementsBaseVertex(c.topology, int32(count), c.indexType,
		gl.PtrOffset(c.ibOffset+startIndex*c.indexSize), int32(baseVertex))
	gl.BindVertexArray(0)
}

// SwapChain presents the back buffer of a window.
type SwapChain struct {
	ctx      *Context
	win      Presenter
	interval int
	width    int
	height   int
	capture  io.Writer
}

// CaptureNext makes the next Present encode the back buffer as PNG to w before swapping.
func (s *SwapChain) CaptureNext(w io.Writer) { s.capture = w }

// Present swaps buffers waiting for syncInterval vertical blanks. Invalid
// context commands and pending GL errors since the last Present are
// returned. flags is reserved and must be zero.
func (s *SwapChain) Present(syncInterval int, flags uint32) error {
	if flags != 0 {
		return fmt.Errorf("unsupported present flags %#x", flags)
	}
	if s.ctx != nil {
		if err := s.ctx.takeErr(); err != nil {
			return err
		}
	}
	if err := glgl.Err(); err != nil {
		return err
	}
	if s.capture != nil {
		w := s.capture
		s.capture = nil
		if err := s.writePNG(w); err != nil {
			return fmt.Errorf("capturing frame: %w", err)
		}
	}
	if syncInterval != s.interval {
		glfw.SwapInterval(syncInterval)
		s.interval = syncInterval
	}
	s.win.SwapBuffers()
	return nil
}

func (s *SwapChain) writePNG(w io.Writer) error {
	if s.width <= 0 || s.height <= 0 {
		return errors.New("swap chain has no size, call Device.Resize first")
	}
	img := image.NewNRGBA(image.Rect(0, 0, s.width, s.height))
	gl.ReadBuffer(gl.BACK)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(s.width), int32(s.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	if err := glgl.Err(); err != nil {
		return err
	}
	// GL rows start at the bottom.
	stride := img.Stride
	tmp := make([]byte, stride)
	for top, bot := 0, s.height-1; top < bot; top, bot = top+1, bot-1 {
		rowTop := img.Pix[top*stride : (top+1)*stride]
		rowBot := img.Pix[bot*stride : (bot+1)*stride]
		copy(tmp, rowTop)
		copy(rowTop, rowBot)
		copy(rowBot, tmp)
	}
	return png.Encode(w, img)
}
