package boxview

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/glgl/math/ms3"
)

const (
	// CornerCount is the number of cube corners.
	CornerCount = 8
	// VertexCount is the fixed vertex buffer length: 8 named-colour corners,
	// 8 negated-colour corners at the same positions and the dummy vertex.
	VertexCount = 2*CornerCount + 1
	// NegatedBase is the first slot of the negated-colour corners.
	NegatedBase = CornerCount
	// DummySlot is the slot of the origin vertex with zero colour referenced
	// by adjacency positions of the index buffer.
	DummySlot = VertexCount - 1
	// FaceIndexCount is the number of indices every face contributes: two
	// adjacency triangles of 6 indices.
	FaceIndexCount = 12
	// IndexCount is the fixed index buffer length.
	IndexCount = 6 * FaceIndexCount
	// VertexSize is the size in bytes of [Vertex] and the vertex buffer stride.
	VertexSize = int(unsafe.Sizeof(Vertex{}))

	adjPrimitiveSize = 6
)

// Vertex is the layout of one vertex buffer element: position at byte 0 and
// colour at byte 12 with no padding. ms3.Vec is padded to 16 bytes so it
// cannot be used for Pos.
type Vertex struct {
	Pos   mgl32.Vec3
	Color Color
}

// Triangulation identifies how a face's 12 indices are laid out.
type Triangulation uint8

const (
	// SchemeCentroid faces reference the dummy slot at the first two
	// adjacency positions and the negated copy of the triangle's middle
	// corner at the last.
	SchemeCentroid Triangulation = iota
	// SchemeQuadSplit faces reference the dummy slot at the first two
	// adjacency positions and the quad's remaining corner at the last.
	SchemeQuadSplit
)

func (t Triangulation) String() string {
	switch t {
	case SchemeCentroid:
		return "centroid"
	case SchemeQuadSplit:
		return "quad-split"
	}
	return "unknown"
}

// Face is one row of the box face table.
type Face struct {
	Name    string
	Scheme  Triangulation
	Indices [FaceIndexCount]uint32
}

const (
	dmy = DummySlot
	neg = NegatedBase
)

// boxFaces is a fixed table; the per-face schemes do not follow a rule.
var boxFaces = [6]Face{
	{Name: "front", Scheme: SchemeCentroid, Indices: [12]uint32{
		0, dmy, 1, dmy, 2, neg + 1,
		2, dmy, 3, dmy, 0, neg + 3,
	}},
	{Name: "back", Scheme: SchemeCentroid, Indices: [12]uint32{
		6, dmy, 5, dmy, 4, neg + 5,
		4, dmy, 7, dmy, 6, neg + 7,
	}},
	{Name: "left", Scheme: SchemeQuadSplit, Indices: [12]uint32{
		4, dmy, 5, dmy, 1, 0,
		1, dmy, 0, dmy, 4, 5,
	}},
	{Name: "right", Scheme: SchemeQuadSplit, Indices: [12]uint32{
		3, dmy, 2, dmy, 6, 7,
		6, dmy, 7, dmy, 3, 2,
	}},
	{Name: "top", Scheme: SchemeCentroid, Indices: [12]uint32{
		1, dmy, 5, dmy, 6, neg + 5,
		6, dmy, 2, dmy, 1, neg + 2,
	}},
	{Name: "bottom", Scheme: SchemeQuadSplit, Indices: [12]uint32{
		4, dmy, 0, dmy, 3, 7,
		3, dmy, 7, dmy, 4, 0,
	}},
}

// BoxFaces returns the face table used by [BuildBoxMesh].
func BoxFaces() [6]Face { return boxFaces }

// boxCorners lists the unit cube corners with their named colours.
var boxCorners = [CornerCount]Vertex{
	{Pos: mgl32.Vec3{-1, -1, -1}, Color: White},
	{Pos: mgl32.Vec3{-1, 1, -1}, Color: Black},
	{Pos: mgl32.Vec3{1, 1, -1}, Color: Red},
	{Pos: mgl32.Vec3{1, -1, -1}, Color: Green},
	{Pos: mgl32.Vec3{-1, -1, 1}, Color: Blue},
	{Pos: mgl32.Vec3{-1, 1, 1}, Color: Yellow},
	{Pos: mgl32.Vec3{1, 1, 1}, Color: Cyan},
	{Pos: mgl32.Vec3{1, -1, 1}, Color: Magenta},
}

// Mesh is the CPU side of the box geometry. Lengths are fixed by the array types.
type Mesh struct {
	Vertices [VertexCount]Vertex
	Indices  [IndexCount]uint32
}

// BuildBoxMesh returns the vertex and index tables of a unit cube centered at
// the origin with corners at (±1,±1,±1).
func BuildBoxMesh() Mesh {
	var m Mesh
	for i, c := range boxCorners {
		m.Vertices[i] = c
		m.Vertices[NegatedBase+i] = Vertex{Pos: c.Pos, Color: c.Color.Negated()}
	}
	m.Vertices[DummySlot] = Vertex{Color: Clear}
	for i, f := range boxFaces {
		copy(m.Indices[i*FaceIndexCount:], f.Indices[:])
	}
	return m
}

// Validate checks every index resolves to a vertex slot.
func (m *Mesh) Validate() error {
	var errs []error
	for i, idx := range m.Indices {
		if idx >= VertexCount {
			errs = append(errs, fmt.Errorf("index %d references slot %d out of %d vertices", i, idx, VertexCount))
		}
	}
	return errors.Join(errs...)
}

// Triangles returns the corner triangles encoded by the adjacency index
// buffer, skipping the adjacency positions.
func (m *Mesh) Triangles() [][3]uint32 {
	tris := make([][3]uint32, 0, IndexCount/adjPrimitiveSize)
	for i := 0; i < IndexCount; i += adjPrimitiveSize {
		tris = append(tris, [3]uint32{m.Indices[i], m.Indices[i+2], m.Indices[i+4]})
	}
	return tris
}

// Bounds returns the bounding box of the cube corners.
func (m *Mesh) Bounds() ms3.Box {
	p0 := msVec(m.Vertices[0].Pos)
	bb := ms3.Box{Min: p0, Max: p0}
	for _, v := range m.Vertices[1:DummySlot] {
		p := msVec(v.Pos)
		bb.Min = ms3.MinElem(bb.Min, p)
		bb.Max = ms3.MaxElem(bb.Max, p)
	}
	return bb
}

// VertexBytes returns the vertex array as bytes for upload. The slice aliases m.
func (m *Mesh) VertexBytes() []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(&m.Vertices[0])), len(m.Vertices)*VertexSize)
}

// IndexBytes returns the index array as bytes for upload. The slice aliases m.
func (m *Mesh) IndexBytes() []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(&m.Indices[0])), len(m.Indices)*4)
}

// BuildGeometryBuffers uploads m as immutable vertex and index buffers.
// On error no buffer is left allocated.
func BuildGeometryBuffers(dev Device, m *Mesh) (vb, ib Buffer, err error) {
	if err = m.Validate(); err != nil {
		return nil, nil, err
	}
	vdata := m.VertexBytes()
	vb, err = dev.CreateBuffer(BufferDesc{
		Usage:     UsageImmutable,
		Bind:      BindVertexBuffer,
		ByteWidth: len(vdata),
	}, vdata)
	if err != nil {
		return nil, nil, fmt.Errorf("creating vertex buffer: %w", err)
	}
	idata := m.IndexBytes()
	ib, err = dev.CreateBuffer(BufferDesc{
		Usage:     UsageImmutable,
		Bind:      BindIndexBuffer,
		ByteWidth: len(idata),
	}, idata)
	if err != nil {
		return nil, nil, errors.Join(fmt.Errorf("creating index buffer: %w", err), vb.Release())
	}
	return vb, ib, nil
}
