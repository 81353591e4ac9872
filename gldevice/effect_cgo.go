//go:build !tinygo && cgo

package gldevice

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/boxview"
	"github.com/soypat/boxview/fx"
	"github.com/soypat/glgl/v4.6-core/glgl"
)

var _ boxview.Effect = (*effect)(nil)

type effect struct {
	techniques []*technique
	matrices   map[string]*matrixVariable
}

type technique struct {
	name   string
	passes []*pass
}

type pass struct {
	name     string
	prog     glgl.Program
	sig      boxview.InputSignature
	uniforms map[string]int32 // mat4 uniform name to location.
	fx       *effect
}

type matrixVariable struct {
	value mgl32.Mat4
}

// CreateEffect compiles every pass of desc and reflects its vertex inputs and
// mat4 uniforms. A matrix variable is shared by all passes declaring it.
func (d *Device) CreateEffect(desc *fx.Desc) (boxview.Effect, error) {
	e := &effect{matrices: make(map[string]*matrixVariable)}
	for _, td := range desc.Techniques {
		t := &technique{name: td.Name}
		e.techniques = append(e.techniques, t)
		for _, pd := range td.Passes {
			p, err := e.compilePass(pd)
			if err != nil {
				return nil, errors.Join(fmt.Errorf("technique %q pass %q: %w", td.Name, pd.Name, err), e.Release())
			}
			t.passes = append(t.passes, p)
		}
	}
	return e, nil
}

func (e *effect) compilePass(pd fx.Pass) (*pass, error) {
	src, err := glgl.ParseCombined(strings.NewReader(pd.Source))
	if err != nil {
		return nil, err
	}
	src.Vertex = nullTerminate(src.Vertex)
	src.Fragment = nullTerminate(src.Fragment)
	prog, err := glgl.CompileProgram(src)
	if err != nil {
		return nil, err
	}
	p := &pass{
		name:     pd.Name,
		prog:     prog,
		uniforms: make(map[string]int32),
		fx:       e,
	}
	p.sig = activeAttributes(prog.ID())
	for name, loc := range activeMat4Uniforms(prog.ID()) {
		p.uniforms[name] = loc
		if _, ok := e.matrices[name]; !ok {
			e.matrices[name] = &matrixVariable{value: mgl32.Ident4()}
		}
	}
	if err := glgl.Err(); err != nil {
		prog.Delete()
		return nil, fmt.Errorf("reflecting program: %w", err)
	}
	return p, nil
}

func (e *effect) TechniqueByName(name string) (boxview.Technique, bool) {
	for _, t := range e.techniques {
		if t.name == name {
			return t, true
		}
	}
	return nil, false
}

func (e *effect) MatrixByName(name string) (boxview.MatrixVariable, bool) {
	m, ok := e.matrices[name]
	return m, ok
}

func (e *effect) Release() error {
	for _, t := range e.techniques {
		for _, p := range t.passes {
			if p.prog.ID() != 0 {
				p.prog.Delete()
			}
		}
		t.passes = nil
	}
	e.techniques = nil
	return glgl.Err()
}

func (t *technique) Name() string                      { return t.name }
func (t *technique) NumPasses() int                    { return len(t.passes) }
func (t *technique) Pass(i int) boxview.Pass           { return t.passes[i] }
func (p *pass) Name() string                           { return p.name }
func (p *pass) InputSignature() boxview.InputSignature { return p.sig }

// Apply binds the pass program and uploads the current value of every
// matrix variable it declares.
func (p *pass) Apply(ctx boxview.Context) error {
	p.prog.Bind()
	for name, loc := range p.uniforms {
		m := p.fx.matrices[name].value
		gl.UniformMatrix4fv(loc, 1, false, &m[0])
	}
	return glgl.Err()
}

func (m *matrixVariable) SetMatrix(v mgl32.Mat4) { m.value = v }

const maxNameLen = 256

func activeAttributes(prog uint32) boxview.InputSignature {
	var count int32
	gl.GetProgramiv(prog, gl.ACTIVE_ATTRIBUTES, &count)
	var sig boxview.InputSignature
	var buf [maxNameLen]uint8
	for i := uint32(0); i < uint32(count); i++ {
		var length, size int32
		var xtype uint32
		gl.GetActiveAttrib(prog, i, maxNameLen, &length, &size, &xtype, &buf[0])
		name := string(buf[:length])
		loc := gl.GetAttribLocation(prog, &buf[0])
		if loc < 0 || strings.HasPrefix(name, "gl_") {
			continue
		}
		sig = append(sig, boxview.SignatureParam{
			Semantic:   name,
			Components: components(xtype),
			Register:   int(loc),
		})
	}
	return sig
}

func activeMat4Uniforms(prog uint32) map[string]int32 {
	var count int32
	gl.GetProgramiv(prog, gl.ACTIVE_UNIFORMS, &count)
	uniforms := make(map[string]int32)
	var buf [maxNameLen]uint8
	for i := uint32(0); i < uint32(count); i++ {
		var length, size int32
		var xtype uint32
		gl.GetActiveUniform(prog, i, maxNameLen, &length, &size, &xtype, &buf[0])
		if xtype != gl.FLOAT_MAT4 {
			continue
		}
		loc := gl.GetUniformLocation(prog, &buf[0])
		if loc >= 0 {
			uniforms[string(buf[:length])] = loc
		}
	}
	return uniforms
}

func components(xtype uint32) int {
	switch xtype {
	case gl.FLOAT:
		return 1
	case gl.FLOAT_VEC2:
		return 2
	case gl.FLOAT_VEC3:
		return 3
	case gl.FLOAT_VEC4:
		return 4
	}
	return 0
}

func nullTerminate(s string) string {
	if s == "" || strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}
