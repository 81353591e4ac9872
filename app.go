package boxview

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/soypat/boxview/fx"
)

// BoxConfig configures a [BoxApp]. The zero value is ready to use.
type BoxConfig struct {
	// EffectPath is the effect source file. Empty selects the embedded color effect.
	EffectPath string
	// Logger receives progress lines. Nil uses the standard logger.
	Logger *log.Logger
	// Silent suppresses progress lines. Errors are still returned.
	Silent bool
}

// BoxApp is the [App] that orbits a camera around the box mesh.
type BoxApp struct {
	Camera *OrbitCamera
	// Renderer is nil until Init succeeds.
	Renderer *Renderer

	cfg    BoxConfig
	mesh   Mesh
	vb, ib Buffer
	effect Effect
	pipe   *Pipeline
	aspect float32
}

var _ App = (*BoxApp)(nil)

// NewBoxApp returns an uninitialized app with the camera at its default position.
func NewBoxApp(cfg BoxConfig) *BoxApp {
	return &BoxApp{
		Camera: NewOrbitCamera(),
		cfg:    cfg,
		aspect: 1,
	}
}

func (a *BoxApp) logf(format string, args ...any) {
	if a.cfg.Silent {
		return
	}
	if a.cfg.Logger != nil {
		a.cfg.Logger.Printf(format, args...)
	} else {
		log.Printf(format, args...)
	}
}

// Init builds geometry, compiles the effect and configures the pipeline.
// Any failure releases what was created and is returned. A second Init
// without Close fails with [ErrAlreadyInitialized] and keeps the app running.
func (a *BoxApp) Init(g Graphics) (err error) {
	if g.Device == nil || g.Context == nil || g.SwapChain == nil {
		return errors.New("Init requires device, context and swap chain")
	}
	if a.Renderer != nil {
		return ErrAlreadyInitialized
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, a.Close())
		}
	}()
	a.Camera.Capturer = g.Capturer

	a.mesh = BuildBoxMesh()
	a.vb, a.ib, err = BuildGeometryBuffers(g.Device, &a.mesh)
	if err != nil {
		return fmt.Errorf("building geometry buffers: %w", err)
	}
	a.logf("uploaded %d vertices, %d indices", VertexCount, IndexCount)

	src, name, err := a.effectSource()
	if err != nil {
		return err
	}
	desc, err := fx.Parse(src)
	if err != nil {
		return fmt.Errorf("parsing effect %s: %w", name, err)
	}
	a.effect, err = g.Device.CreateEffect(desc)
	if err != nil {
		return fmt.Errorf("compiling effect %s: %w", name, err)
	}
	a.pipe, err = ConfigurePipeline(g.Device, a.effect, BoxInputLayout, ColorTechnique, WorldViewProjParam)
	if err != nil {
		return fmt.Errorf("configuring pipeline: %w", err)
	}
	a.logf("effect %s: technique %s with %d pass(es)", name, ColorTechnique, a.pipe.Technique.NumPasses())

	a.Renderer = NewRenderer(g.Context, g.SwapChain, a.pipe, a.vb, a.ib, IndexCount)
	a.Renderer.Resize(a.aspect)
	a.Renderer.SetView(a.Camera.ViewMatrix())
	return nil
}

func (a *BoxApp) effectSource() (io.Reader, string, error) {
	if a.cfg.EffectPath == "" {
		return bytes.NewReader(fx.ColorEffect()), "color.glsl", nil
	}
	b, err := os.ReadFile(a.cfg.EffectPath)
	if err != nil {
		return nil, "", fmt.Errorf("reading effect: %w", err)
	}
	return bytes.NewReader(b), a.cfg.EffectPath, nil
}

// Resize records the aspect ratio and rebuilds the projection.
func (a *BoxApp) Resize(aspect float32) {
	a.aspect = aspect
	if a.Renderer != nil {
		a.Renderer.Resize(aspect)
	}
}

// Update recomputes the view matrix from the camera. dt is unused.
func (a *BoxApp) Update(dt float32) {
	if a.Renderer != nil {
		a.Renderer.SetView(a.Camera.ViewMatrix())
	}
}

// Draw renders one frame.
func (a *BoxApp) Draw() error {
	if a.Renderer == nil {
		return ErrNotInitialized
	}
	return a.Renderer.Draw()
}

func (a *BoxApp) OnPointerDown(btn Buttons, x, y int) { a.Camera.OnPointerDown(btn, x, y) }
func (a *BoxApp) OnPointerUp(btn Buttons, x, y int)   { a.Camera.OnPointerUp(btn, x, y) }
func (a *BoxApp) OnPointerMove(btn Buttons, x, y int) { a.Camera.OnPointerMove(btn, x, y) }

// Close releases the pipeline, effect and buffers.
func (a *BoxApp) Close() error {
	var errs []error
	a.Renderer = nil
	errs = append(errs, a.pipe.Release())
	a.pipe = nil
	if a.effect != nil {
		errs = append(errs, a.effect.Release())
		a.effect = nil
	}
	if a.ib != nil {
		errs = append(errs, a.ib.Release())
		a.ib = nil
	}
	if a.vb != nil {
		errs = append(errs, a.vb.Release())
		a.vb = nil
	}
	return errors.Join(errs...)
}
