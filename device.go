package boxview

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/boxview/fx"
)

// Usage describes how a buffer's contents may change after creation.
type Usage uint8

const (
	UsageDefault Usage = iota
	// UsageImmutable buffers are initialized once at creation and never updated.
	UsageImmutable
	UsageDynamic
)

// BindFlags is the pipeline stage a buffer is bound to.
type BindFlags uint8

const (
	BindVertexBuffer BindFlags = 1 << iota
	BindIndexBuffer
)

// BufferDesc describes a GPU buffer to create.
type BufferDesc struct {
	Usage     Usage
	Bind      BindFlags
	ByteWidth int
}

// Format is the data format of a single vertex attribute.
type Format uint8

const (
	FormatUnknown Format = iota
	FormatR32G32Float
	FormatR32G32B32Float
	FormatR32G32B32A32Float
)

// Components returns the number of float32 components of the format.
func (f Format) Components() int {
	switch f {
	case FormatR32G32Float:
		return 2
	case FormatR32G32B32Float:
		return 3
	case FormatR32G32B32A32Float:
		return 4
	}
	return 0
}

func (f Format) String() string {
	switch f {
	case FormatR32G32Float:
		return "R32G32_FLOAT"
	case FormatR32G32B32Float:
		return "R32G32B32_FLOAT"
	case FormatR32G32B32A32Float:
		return "R32G32B32A32_FLOAT"
	}
	return "UNKNOWN"
}

// Topology is the primitive topology used to interpret the index buffer.
type Topology uint8

const (
	TopologyTriangleList Topology = iota
	// TopologyTriangleListAdj consumes 6 indices per primitive: corners at
	// positions 0, 2 and 4 and adjacency vertices at 1, 3 and 5.
	TopologyTriangleListAdj
)

// IndexFormat is the width of index buffer elements.
type IndexFormat uint8

const (
	IndexUint16 IndexFormat = iota
	IndexUint32
)

// InputElement maps a byte offset of the vertex buffer to a shader input.
type InputElement struct {
	Semantic string
	Format   Format
	Offset   int
}

// SignatureParam is one input expected by a pass's vertex stage.
type SignatureParam struct {
	Semantic   string
	Components int
	// Register is the input slot the stage reads the parameter from.
	Register int
}

// InputSignature is the ordered set of vertex inputs a pass consumes.
type InputSignature []SignatureParam

// Buffer is a GPU buffer owned by the caller until Release.
type Buffer interface {
	Release() error
}

// InputLayout is a compiled vertex input description.
type InputLayout interface {
	Release() error
}

// Device creates GPU resources.
type Device interface {
	CreateBuffer(desc BufferDesc, data []byte) (Buffer, error)
	CreateInputLayout(elems []InputElement, sig InputSignature) (InputLayout, error)
	// CreateEffect compiles every pass of the parsed effect.
	CreateEffect(desc *fx.Desc) (Effect, error)
}

// Context issues rendering commands. Errors are reported by [SwapChain.Present].
type Context interface {
	ClearRenderTarget(c Color)
	ClearDepthStencil(depth float32, stencil uint8)
	SetInputLayout(l InputLayout)
	SetPrimitiveTopology(t Topology)
	SetVertexBuffer(slot int, b Buffer, stride, offset int)
	SetIndexBuffer(b Buffer, f IndexFormat, offset int)
	DrawIndexed(count, startIndex, baseVertex int)
}

// SwapChain presents rendered frames.
type SwapChain interface {
	Present(syncInterval int, flags uint32) error
}

// Effect is a compiled shader program made of named techniques and variables.
type Effect interface {
	TechniqueByName(name string) (Technique, bool)
	MatrixByName(name string) (MatrixVariable, bool)
	Release() error
}

// Technique is an ordered list of passes.
type Technique interface {
	Name() string
	NumPasses() int
	Pass(i int) Pass
}

// Pass is one pipeline state configuration of a technique.
type Pass interface {
	Name() string
	// Apply binds the pass state and uploads effect variables to ctx.
	Apply(ctx Context) error
	InputSignature() InputSignature
}

// MatrixVariable is a 4x4 matrix effect parameter. Values take effect on the next [Pass.Apply].
type MatrixVariable interface {
	SetMatrix(m mgl32.Mat4)
}
