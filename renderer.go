package boxview

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Renderer issues the per-frame commands that draw the box mesh.
type Renderer struct {
	// Background is the colour the render target is cleared to.
	Background Color

	ctx   Context
	swap  SwapChain
	pipe  *Pipeline
	vb    Buffer
	ib    Buffer
	count int

	world mgl32.Mat4
	view  mgl32.Mat4
	proj  mgl32.Mat4
}

// NewRenderer returns a Renderer drawing indexCount indices of vb/ib with pipe.
// The renderer does not take ownership of the buffers or pipeline.
func NewRenderer(ctx Context, swap SwapChain, pipe *Pipeline, vb, ib Buffer, indexCount int) *Renderer {
	return &Renderer{
		Background: Silver,
		ctx:        ctx,
		swap:       swap,
		pipe:       pipe,
		vb:         vb,
		ib:         ib,
		count:      indexCount,
		world:      mgl32.Ident4(),
		view:       mgl32.Ident4(),
		proj:       mgl32.Ident4(),
	}
}

// Resize rebuilds the projection for the given aspect ratio (width/height).
func (r *Renderer) Resize(aspect float32) {
	r.proj = PerspectiveFovLH(FieldOfViewY, aspect, NearPlane, FarPlane)
}

// SetView sets the view matrix used by the next Draw.
func (r *Renderer) SetView(view mgl32.Mat4) { r.view = view }

// Projection returns the current projection matrix.
func (r *Renderer) Projection() mgl32.Mat4 { return r.proj }

// View returns the current view matrix.
func (r *Renderer) View() mgl32.Mat4 { return r.view }

// Draw clears the targets, draws the mesh once per technique pass and
// presents the frame.
func (r *Renderer) Draw() error {
	ctx := r.ctx
	ctx.ClearRenderTarget(r.Background)
	ctx.ClearDepthStencil(1, 0)

	ctx.SetInputLayout(r.pipe.Layout)
	ctx.SetPrimitiveTopology(TopologyTriangleListAdj)
	ctx.SetVertexBuffer(0, r.vb, VertexSize, 0)
	ctx.SetIndexBuffer(r.ib, IndexUint32, 0)

	r.pipe.WorldViewProj.SetMatrix(WorldViewProj(r.world, r.view, r.proj))

	tech := r.pipe.Technique
	for p := 0; p < tech.NumPasses(); p++ {
		if err := tech.Pass(p).Apply(ctx); err != nil {
			return fmt.Errorf("applying pass %d of %q: %w", p, tech.Name(), err)
		}
		ctx.DrawIndexed(r.count, 0, 0)
	}
	if err := r.swap.Present(0, 0); err != nil {
		return fmt.Errorf("present: %w", err)
	}
	return nil
}
