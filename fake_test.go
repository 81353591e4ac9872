package boxview_test

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/boxview"
	"github.com/soypat/boxview/fx"
)

// recorder logs every device and context call in order.
type recorder struct {
	calls []string
}

func (r *recorder) logf(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) count(prefix string) (n int) {
	for _, c := range r.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

type fakeBuffer struct {
	rec      *recorder
	desc     boxview.BufferDesc
	data     []byte
	released int
}

func (b *fakeBuffer) Release() error {
	b.released++
	b.rec.logf("ReleaseBuffer %d", b.desc.Bind)
	return nil
}

type fakeLayout struct {
	elems    []boxview.InputElement
	released int
}

func (l *fakeLayout) Release() error { l.released++; return nil }

type fakeDevice struct {
	rec *recorder
	// failBuffer makes the n-th (1-based) CreateBuffer call fail.
	failBuffer int
	failEffect error
	failLayout error
	effect     *fakeEffect

	buffers []*fakeBuffer
	layouts []*fakeLayout
	descs   []*fx.Desc
}

func newFakeDevice() *fakeDevice {
	rec := &recorder{}
	return &fakeDevice{rec: rec, effect: newFakeEffect(rec, boxview.ColorTechnique, 1, boxview.WorldViewProjParam)}
}

func (d *fakeDevice) CreateBuffer(desc boxview.BufferDesc, data []byte) (boxview.Buffer, error) {
	d.rec.logf("CreateBuffer %d", desc.Bind)
	if d.failBuffer == len(d.buffers)+1 {
		return nil, errors.New("out of video memory")
	}
	b := &fakeBuffer{rec: d.rec, desc: desc, data: append([]byte{}, data...)}
	d.buffers = append(d.buffers, b)
	return b, nil
}

func (d *fakeDevice) CreateInputLayout(elems []boxview.InputElement, sig boxview.InputSignature) (boxview.InputLayout, error) {
	d.rec.logf("CreateInputLayout")
	if d.failLayout != nil {
		return nil, d.failLayout
	}
	l := &fakeLayout{elems: elems}
	d.layouts = append(d.layouts, l)
	return l, nil
}

func (d *fakeDevice) CreateEffect(desc *fx.Desc) (boxview.Effect, error) {
	d.rec.logf("CreateEffect")
	d.descs = append(d.descs, desc)
	if d.failEffect != nil {
		return nil, d.failEffect
	}
	return d.effect, nil
}

// Context methods.

func (d *fakeDevice) ClearRenderTarget(c boxview.Color) { d.rec.logf("ClearRenderTarget %v", c) }
func (d *fakeDevice) ClearDepthStencil(depth float32, stencil uint8) {
	d.rec.logf("ClearDepthStencil %v %d", depth, stencil)
}
func (d *fakeDevice) SetInputLayout(l boxview.InputLayout) { d.rec.logf("SetInputLayout") }
func (d *fakeDevice) SetPrimitiveTopology(t boxview.Topology) {
	d.rec.logf("SetPrimitiveTopology %d", t)
}
func (d *fakeDevice) SetVertexBuffer(slot int, b boxview.Buffer, stride, offset int) {
	d.rec.logf("SetVertexBuffer %d %d %d", slot, stride, offset)
}
func (d *fakeDevice) SetIndexBuffer(b boxview.Buffer, f boxview.IndexFormat, offset int) {
	d.rec.logf("SetIndexBuffer %d %d", f, offset)
}
func (d *fakeDevice) DrawIndexed(count, startIndex, baseVertex int) {
	d.rec.logf("DrawIndexed %d %d %d", count, startIndex, baseVertex)
}

type fakeSwapChain struct {
	rec *recorder
	err error
}

func (s *fakeSwapChain) Present(syncInterval int, flags uint32) error {
	s.rec.logf("Present %d %d", syncInterval, flags)
	return s.err
}

type fakeEffect struct {
	rec      *recorder
	tech     *fakeTechnique
	vars     map[string]*fakeMatrix
	released int
}

func newFakeEffect(rec *recorder, technique string, passes int, matrices ...string) *fakeEffect {
	e := &fakeEffect{rec: rec, vars: make(map[string]*fakeMatrix)}
	for _, name := range matrices {
		e.vars[name] = &fakeMatrix{rec: rec}
	}
	e.tech = &fakeTechnique{name: technique}
	for i := 0; i < passes; i++ {
		e.tech.passes = append(e.tech.passes, &fakePass{
			rec:  rec,
			name: fmt.Sprintf("P%d", i),
			sig: boxview.InputSignature{
				{Semantic: "POSITION", Components: 3, Register: 0},
				{Semantic: "COLOR", Components: 4, Register: 1},
			},
		})
	}
	return e
}

func (e *fakeEffect) TechniqueByName(name string) (boxview.Technique, bool) {
	if e.tech.name != name {
		return nil, false
	}
	return e.tech, true
}

func (e *fakeEffect) MatrixByName(name string) (boxview.MatrixVariable, bool) {
	m, ok := e.vars[name]
	return m, ok
}

func (e *fakeEffect) Release() error { e.released++; return nil }

type fakeTechnique struct {
	name   string
	passes []*fakePass
}

func (t *fakeTechnique) Name() string            { return t.name }
func (t *fakeTechnique) NumPasses() int          { return len(t.passes) }
func (t *fakeTechnique) Pass(i int) boxview.Pass { return t.passes[i] }

type fakePass struct {
	rec  *recorder
	name string
	sig  boxview.InputSignature
	err  error
}

func (p *fakePass) Name() string                           { return p.name }
func (p *fakePass) InputSignature() boxview.InputSignature { return p.sig }
func (p *fakePass) Apply(ctx boxview.Context) error {
	p.rec.logf("Apply %s", p.name)
	return p.err
}

type fakeMatrix struct {
	rec   *recorder
	value mgl32.Mat4
	sets  int
}

func (m *fakeMatrix) SetMatrix(v mgl32.Mat4) {
	m.rec.logf("SetMatrix")
	m.value = v
	m.sets++
}

type fakeCapturer struct {
	captures, releases int
}

func (c *fakeCapturer) Capture() { c.captures++ }
func (c *fakeCapturer) Release() { c.releases++ }

func fakeGraphics(dev *fakeDevice) (boxview.Graphics, *fakeSwapChain, *fakeCapturer) {
	swap := &fakeSwapChain{rec: dev.rec}
	capt := &fakeCapturer{}
	return boxview.Graphics{
		Device:    dev,
		Context:   dev,
		SwapChain: swap,
		Capturer:  capt,
	}, swap, capt
}
