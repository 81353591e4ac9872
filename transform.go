package boxview

import (
	math "github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/glgl/math/ms3"
)

// Matrices are stored column-major and act on column vectors, so the
// row-vector product world×view×proj is computed as proj·view·world.

// Projection defaults.
const (
	FieldOfViewY = 0.25 * math.Pi
	NearPlane    = 1.0
	FarPlane     = 1000.0
)

// LookAtLH returns a left-handed view matrix: the camera at eye looks along
// +Z towards target.
func LookAtLH(eye, target, up ms3.Vec) mgl32.Mat4 {
	e := vec3(eye)
	zaxis := vec3(target).Sub(e).Normalize()
	xaxis := vec3(up).Cross(zaxis)
	if xaxis.Len() < epstol {
		// Looking along up: any right axis perpendicular to it will do.
		xaxis = mgl32.Vec3{1, 0, 0}.Cross(zaxis).Cross(zaxis)
	}
	xaxis = xaxis.Normalize()
	yaxis := zaxis.Cross(xaxis)
	return mgl32.Mat4{
		xaxis[0], yaxis[0], zaxis[0], 0,
		xaxis[1], yaxis[1], zaxis[1], 0,
		xaxis[2], yaxis[2], zaxis[2], 0,
		-xaxis.Dot(e), -yaxis.Dot(e), -zaxis.Dot(e), 1,
	}
}

// PerspectiveFovLH returns a left-handed perspective projection mapping view
// depth [near, far] to clip depth [0, 1].
func PerspectiveFovLH(fovY, aspect, near, far float32) mgl32.Mat4 {
	sin, cos := math.Sincos(0.5 * fovY)
	h := cos / sin
	w := h / aspect
	fRange := far / (far - near)
	return mgl32.Mat4{
		w, 0, 0, 0,
		0, h, 0, 0,
		0, 0, fRange, 1,
		0, 0, -fRange * near, 0,
	}
}

// WorldViewProj combines the three transforms so that a vertex is taken
// through world, then view, then projection.
func WorldViewProj(world, view, proj mgl32.Mat4) mgl32.Mat4 {
	return proj.Mul4(view).Mul4(world)
}

func vec3(v ms3.Vec) mgl32.Vec3  { return mgl32.Vec3{v.X, v.Y, v.Z} }
func msVec(v mgl32.Vec3) ms3.Vec { return ms3.Vec{X: v[0], Y: v[1], Z: v[2]} }
