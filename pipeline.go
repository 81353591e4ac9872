package boxview

import (
	"errors"
	"fmt"
)

// Names resolved from the color effect.
const (
	ColorTechnique     = "ColorTech"
	WorldViewProjParam = "gWorldViewProj"
)

// BoxInputLayout describes [Vertex] to the vertex stage. COLOR only declares
// three channels even though [Color] carries four; the shader receives 1
// for alpha.
var BoxInputLayout = []InputElement{
	{Semantic: "POSITION", Format: FormatR32G32B32Float, Offset: 0},
	{Semantic: "COLOR", Format: FormatR32G32B32Float, Offset: 12},
}

// Pipeline holds the resources resolved once from an effect.
type Pipeline struct {
	Technique     Technique
	WorldViewProj MatrixVariable
	Layout        InputLayout
}

// ConfigurePipeline resolves the named technique and matrix variable from
// effect and builds an input layout from elems against the input signature of
// the technique's first pass.
func ConfigurePipeline(dev Device, effect Effect, elems []InputElement, technique, wvp string) (*Pipeline, error) {
	tech, ok := effect.TechniqueByName(technique)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTechniqueNotFound, technique)
	} else if tech.NumPasses() == 0 {
		return nil, fmt.Errorf("technique %q has no passes", technique)
	}
	mvar, ok := effect.MatrixByName(wvp)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrVariableNotFound, wvp)
	}
	sig := tech.Pass(0).InputSignature()
	if err := MatchSignature(elems, sig); err != nil {
		return nil, fmt.Errorf("technique %q pass 0: %w", technique, err)
	}
	layout, err := dev.CreateInputLayout(elems, sig)
	if err != nil {
		return nil, fmt.Errorf("creating input layout: %w", err)
	}
	return &Pipeline{
		Technique:     tech,
		WorldViewProj: mvar,
		Layout:        layout,
	}, nil
}

// Release frees the input layout. Safe to call on a nil or released Pipeline.
func (p *Pipeline) Release() error {
	if p == nil || p.Layout == nil {
		return nil
	}
	err := p.Layout.Release()
	p.Layout = nil
	return err
}

// MatchSignature checks that every input of sig is fed by an element with the
// same semantic. Inputs with more components than provided are filled by
// the pipeline so only a missing semantic or an unknown format is an error.
func MatchSignature(elems []InputElement, sig InputSignature) error {
	var errs []error
	seen := make(map[string]bool, len(elems))
	for _, e := range elems {
		if e.Format.Components() == 0 {
			errs = append(errs, fmt.Errorf("%w: element %q has unknown format", ErrSignatureMismatch, e.Semantic))
		} else if seen[e.Semantic] {
			errs = append(errs, fmt.Errorf("%w: duplicate element %q", ErrSignatureMismatch, e.Semantic))
		}
		seen[e.Semantic] = true
	}
	for _, p := range sig {
		if !seen[p.Semantic] {
			errs = append(errs, fmt.Errorf("%w: no element for input %q", ErrSignatureMismatch, p.Semantic))
		}
	}
	return errors.Join(errs...)
}
