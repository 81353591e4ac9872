// Package fx parses effect sources: named techniques made of ordered passes
// where every pass carries a combined GLSL program.
//
// Grammar, one directive per line:
//
//	#technique ColorTech
//	#pass P0
//	#shader vertex
//	...GLSL...
//	#shader fragment
//	...GLSL...
//
// Lines before the first directive are ignored, which leaves room for a
// header comment. Everything after a #pass line up to the next #pass or
// #technique is the pass source, in the format read by glgl.ParseCombined.
package fx

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"
)

//go:embed color.glsl
var _colorEffect []byte

// ColorEffect returns the default effect source: technique ColorTech with a
// single pass transforming POSITION by gWorldViewProj and passing COLOR through.
func ColorEffect() []byte {
	return append([]byte{}, _colorEffect...) // copy contents.
}

const (
	directiveTechnique = "#technique"
	directivePass      = "#pass"
	directiveShader    = "#shader"
)

// Desc is a parsed effect.
type Desc struct {
	Techniques []Technique
}

// Technique is a named ordered list of passes.
type Technique struct {
	Name   string
	Passes []Pass
}

// Pass is a named combined shader program.
type Pass struct {
	Name string
	// Source holds the #shader sections of the pass verbatim.
	Source string
	// Stages lists the shader stages declared in Source in order of appearance.
	Stages []string
}

// Technique returns the technique with the given name.
func (d *Desc) Technique(name string) (*Technique, bool) {
	for i := range d.Techniques {
		if d.Techniques[i].Name == name {
			return &d.Techniques[i], true
		}
	}
	return nil, false
}

// HasStage reports whether the pass declares the shader stage.
func (p *Pass) HasStage(stage string) bool {
	for _, s := range p.Stages {
		if s == stage {
			return true
		}
	}
	return false
}

// Parse reads an effect source.
func Parse(r io.Reader) (*Desc, error) {
	var (
		desc   Desc
		tech   *Technique
		pass   *Pass
		source strings.Builder
		lineno int
	)
	flushPass := func() error {
		if pass == nil {
			return nil
		}
		pass.Source = source.String()
		source.Reset()
		if !pass.HasStage("vertex") {
			return fmt.Errorf("pass %q of technique %q has no vertex stage", pass.Name, tech.Name)
		}
		tech.Passes = append(tech.Passes, *pass)
		pass = nil
		return nil
	}
	flushTechnique := func() error {
		if tech == nil {
			return nil
		}
		if err := flushPass(); err != nil {
			return err
		}
		if len(tech.Passes) == 0 {
			return fmt.Errorf("technique %q has no passes", tech.Name)
		}
		desc.Techniques = append(desc.Techniques, *tech)
		tech = nil
		return nil
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		directive, arg := splitDirective(line)
		switch directive {
		case directiveTechnique:
			if arg == "" {
				return nil, fmt.Errorf("line %d: technique without name", lineno)
			}
			if err := flushTechnique(); err != nil {
				return nil, err
			}
			if _, dup := desc.Technique(arg); dup {
				return nil, fmt.Errorf("line %d: duplicate technique %q", lineno, arg)
			}
			tech = &Technique{Name: arg}
		case directivePass:
			if tech == nil {
				return nil, fmt.Errorf("line %d: pass outside of technique", lineno)
			} else if arg == "" {
				return nil, fmt.Errorf("line %d: pass without name", lineno)
			}
			if err := flushPass(); err != nil {
				return nil, err
			}
			for _, p := range tech.Passes {
				if p.Name == arg {
					return nil, fmt.Errorf("line %d: duplicate pass %q in technique %q", lineno, arg, tech.Name)
				}
			}
			pass = &Pass{Name: arg}
		default:
			if pass == nil {
				if tech != nil && strings.TrimSpace(line) != "" {
					return nil, fmt.Errorf("line %d: source outside of pass", lineno)
				}
				continue // Header.
			}
			if directive == directiveShader {
				if arg == "" {
					return nil, fmt.Errorf("line %d: shader without stage", lineno)
				}
				pass.Stages = append(pass.Stages, arg)
			}
			source.WriteString(line)
			source.WriteByte('\n')
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := flushTechnique(); err != nil {
		return nil, err
	}
	if len(desc.Techniques) == 0 {
		return nil, errors.New("effect declares no techniques")
	}
	return &desc, nil
}

func splitDirective(line string) (directive, arg string) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "#") {
		return "", ""
	}
	directive, arg, _ = strings.Cut(line, " ")
	switch directive {
	case directiveTechnique, directivePass, directiveShader:
		return directive, strings.TrimSpace(arg)
	}
	return "", ""
}
