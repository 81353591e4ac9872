package viewer

import (
	"testing"

	"github.com/soypat/boxview"
)

func TestAspectRatio(t *testing.T) {
	for _, tc := range []struct {
		w, h int
		want float32
		ok   bool
	}{
		{800, 600, 800.0 / 600, true},
		{1, 1, 1, true},
		{1920, 1080, 1920.0 / 1080, true},
		{0, 600, 0, false},
		{800, 0, 0, false},
		{-1, 10, 0, false},
	} {
		got, ok := aspectRatio(tc.w, tc.h)
		if ok != tc.ok || got != tc.want {
			t.Errorf("aspectRatio(%d,%d) = %v,%v want %v,%v", tc.w, tc.h, got, ok, tc.want, tc.ok)
		}
	}
}

func TestPointerButtons(t *testing.T) {
	if b := pointerButtons(false, false, false); b != 0 {
		t.Errorf("no buttons: %v", b)
	}
	b := pointerButtons(true, false, true)
	if !b.Has(boxview.ButtonPrimary) || b.Has(boxview.ButtonSecondary) || !b.Has(boxview.ButtonMiddle) {
		t.Errorf("left+middle: %v", b)
	}
	if b := pointerButtons(false, true, false); b != boxview.ButtonSecondary {
		t.Errorf("right: %v", b)
	}
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.setDefaults()
	if cfg.Width != 800 || cfg.Height != 600 || cfg.Title != "Box Demo" || cfg.Logger == nil {
		t.Errorf("defaults %+v", cfg)
	}
	cfg = Config{Width: 320, Height: 200, Title: "x"}
	cfg.setDefaults()
	if cfg.Width != 320 || cfg.Height != 200 || cfg.Title != "x" {
		t.Errorf("overrode set fields: %+v", cfg)
	}
}
