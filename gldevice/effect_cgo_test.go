//go:build !tinygo && cgo

package gldevice

import (
	"errors"
	"testing"

	"github.com/go-gl/gl/v4.6-core/gl"
)

func TestComponents(t *testing.T) {
	for xtype, want := range map[uint32]int{
		gl.FLOAT:      1,
		gl.FLOAT_VEC2: 2,
		gl.FLOAT_VEC3: 3,
		gl.FLOAT_VEC4: 4,
		gl.FLOAT_MAT4: 0,
		gl.INT:        0,
	} {
		if got := components(xtype); got != want {
			t.Errorf("components(%#x) = %d, want %d", xtype, got, want)
		}
	}
}

func TestNullTerminate(t *testing.T) {
	for _, tc := range []struct{ in, want string }{
		{"", ""},
		{"void main(){}", "void main(){}\x00"},
		{"void main(){}\x00", "void main(){}\x00"},
	} {
		if got := nullTerminate(tc.in); got != tc.want {
			t.Errorf("nullTerminate(%q) = %q", tc.in, got)
		}
	}
}

func TestDrawWithoutStateReportedOnPresent(t *testing.T) {
	var ctx Context
	swap := SwapChain{ctx: &ctx, interval: -1}
	ctx.DrawIndexed(72, 0, 0)
	ctx.DrawIndexed(72, 0, 0)
	if err := swap.Present(0, 0); !errors.Is(err, errMissingDrawState) {
		t.Fatalf("Present after invalid draw: %v", err)
	}
	if err := ctx.takeErr(); err != nil {
		t.Errorf("error not cleared by Present: %v", err)
	}
	if err := swap.Present(0, 1); err == nil {
		t.Error("expected error for non-zero flags")
	}
}
