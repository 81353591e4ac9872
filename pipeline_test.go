package boxview_test

import (
	"errors"
	"testing"

	"github.com/soypat/boxview"
)

func TestConfigurePipeline(t *testing.T) {
	dev := newFakeDevice()
	pipe, err := boxview.ConfigurePipeline(dev, dev.effect, boxview.BoxInputLayout, boxview.ColorTechnique, boxview.WorldViewProjParam)
	if err != nil {
		t.Fatal(err)
	}
	if pipe.Technique.Name() != boxview.ColorTechnique {
		t.Errorf("technique %q", pipe.Technique.Name())
	}
	if pipe.WorldViewProj != dev.effect.vars[boxview.WorldViewProjParam] {
		t.Error("wrong matrix variable")
	}
	if len(dev.layouts) != 1 || len(dev.layouts[0].elems) != 2 {
		t.Fatalf("input layout not created from box elements")
	}
	if err := pipe.Release(); err != nil {
		t.Fatal(err)
	}
	if err := pipe.Release(); err != nil {
		t.Fatal(err)
	}
	if dev.layouts[0].released != 1 {
		t.Errorf("layout released %d times", dev.layouts[0].released)
	}
	var nilPipe *boxview.Pipeline
	if err := nilPipe.Release(); err != nil {
		t.Error(err)
	}
}

func TestConfigurePipelineErrors(t *testing.T) {
	for _, tc := range []struct {
		name      string
		technique string
		wvp       string
		passes    int
		elems     []boxview.InputElement
		failAt    error
		wantIs    error
	}{
		{
			name: "missing technique", technique: "NoSuchTech", wvp: boxview.WorldViewProjParam,
			passes: 1, elems: boxview.BoxInputLayout, wantIs: boxview.ErrTechniqueNotFound,
		},
		{
			name: "missing variable", technique: boxview.ColorTechnique, wvp: "gView",
			passes: 1, elems: boxview.BoxInputLayout, wantIs: boxview.ErrVariableNotFound,
		},
		{
			name: "missing colour element", technique: boxview.ColorTechnique, wvp: boxview.WorldViewProjParam,
			passes: 1, elems: boxview.BoxInputLayout[:1], wantIs: boxview.ErrSignatureMismatch,
		},
		{
			name: "no passes", technique: boxview.ColorTechnique, wvp: boxview.WorldViewProjParam,
			passes: 0, elems: boxview.BoxInputLayout,
		},
		{
			name: "layout failure", technique: boxview.ColorTechnique, wvp: boxview.WorldViewProjParam,
			passes: 1, elems: boxview.BoxInputLayout, failAt: errLayout, wantIs: errLayout,
		},
	} {
		dev := newFakeDevice()
		dev.effect = newFakeEffect(dev.rec, boxview.ColorTechnique, tc.passes, boxview.WorldViewProjParam)
		dev.failLayout = tc.failAt
		pipe, err := boxview.ConfigurePipeline(dev, dev.effect, tc.elems, tc.technique, tc.wvp)
		if err == nil {
			t.Errorf("%s: expected error", tc.name)
			continue
		}
		if pipe != nil {
			t.Errorf("%s: got pipeline alongside error", tc.name)
		}
		if tc.wantIs != nil && !errors.Is(err, tc.wantIs) {
			t.Errorf("%s: error %q is not %q", tc.name, err, tc.wantIs)
		}
		if tc.failAt == nil && len(dev.layouts) != 0 {
			t.Errorf("%s: layout created despite error", tc.name)
		}
	}
}

var errLayout = errors.New("layout rejected")

func TestMatchSignature(t *testing.T) {
	sig := boxview.InputSignature{
		{Semantic: "POSITION", Components: 3, Register: 0},
		{Semantic: "COLOR", Components: 4, Register: 1},
	}
	if err := boxview.MatchSignature(boxview.BoxInputLayout, sig); err != nil {
		t.Errorf("box layout: %v", err)
	}
	// Extra elements are not consumed but are allowed.
	extra := append([]boxview.InputElement{{Semantic: "TEXCOORD", Format: boxview.FormatR32G32Float, Offset: 28}}, boxview.BoxInputLayout...)
	if err := boxview.MatchSignature(extra, sig); err != nil {
		t.Errorf("extra element: %v", err)
	}
	for _, tc := range []struct {
		name  string
		elems []boxview.InputElement
	}{
		{"empty", nil},
		{"unknown format", []boxview.InputElement{
			{Semantic: "POSITION", Format: boxview.FormatUnknown},
			{Semantic: "COLOR", Format: boxview.FormatR32G32B32Float, Offset: 12},
		}},
		{"duplicate", []boxview.InputElement{
			{Semantic: "POSITION", Format: boxview.FormatR32G32B32Float},
			{Semantic: "POSITION", Format: boxview.FormatR32G32B32Float, Offset: 12},
			{Semantic: "COLOR", Format: boxview.FormatR32G32B32Float, Offset: 24},
		}},
	} {
		err := boxview.MatchSignature(tc.elems, sig)
		if !errors.Is(err, boxview.ErrSignatureMismatch) {
			t.Errorf("%s: got %v", tc.name, err)
		}
	}
}
