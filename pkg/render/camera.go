package render

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
)

// Projector supplies the transforms a render pass projects through.
// Camera and Light implement it.
type Projector interface {
	ViewProjection() math3d.Mat4
	InverseViewProjection() math3d.Mat4
}

// Camera is a perspective eye with a quaternion orientation. Matrices are
// computed on demand and cached until a setter marks them dirty.
type Camera struct {
	position math3d.Vec3
	rotation math3d.Quat

	fov    float64 // vertical field of view in radians
	aspect float64 // width / height
	near   float64
	far    float64

	viewProj    math3d.Mat4
	invViewProj math3d.Mat4
	dirty       bool
}

// NewCamera creates a camera at the origin looking down -Z with a 90 degree
// field of view.
func NewCamera() *Camera {
	return &Camera{
		rotation: math3d.QuatIdentity(),
		fov:      math.Pi / 2,
		aspect:   1,
		near:     0.1,
		far:      1000,
		dirty:    true,
	}
}

// Position returns the camera position.
func (c *Camera) Position() math3d.Vec3 { return c.position }

// Rotation returns the camera orientation.
func (c *Camera) Rotation() math3d.Quat { return c.rotation }

// FOV returns the vertical field of view in radians.
func (c *Camera) FOV() float64 { return c.fov }

// SetPosition sets the camera position.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.position = pos
	c.dirty = true
}

// SetRotation sets the camera orientation.
func (c *Camera) SetRotation(q math3d.Quat) {
	c.rotation = q.Normalize()
	c.dirty = true
}

// SetFOV sets the field of view (in radians).
func (c *Camera) SetFOV(fov float64) {
	c.fov = fov
	c.dirty = true
}

// SetAspectRatio sets the aspect ratio.
func (c *Camera) SetAspectRatio(aspect float64) {
	c.aspect = aspect
	c.dirty = true
}

// SetClipPlanes sets the near and far clipping planes.
func (c *Camera) SetClipPlanes(near, far float64) {
	c.near = near
	c.far = far
	c.dirty = true
}

// Forward returns the forward direction vector.
func (c *Camera) Forward() math3d.Vec3 { return c.rotation.Forward() }

// Right returns the right direction vector.
func (c *Camera) Right() math3d.Vec3 { return c.rotation.Right() }

// Up returns the up direction vector.
func (c *Camera) Up() math3d.Vec3 { return c.rotation.Up() }

// ViewProjection returns the combined view-projection matrix.
func (c *Camera) ViewProjection() math3d.Mat4 {
	c.update()
	return c.viewProj
}

// InverseViewProjection maps clip coordinates back to world space.
func (c *Camera) InverseViewProjection() math3d.Mat4 {
	c.update()
	return c.invViewProj
}

func (c *Camera) update() {
	if !c.dirty {
		return
	}
	c.viewProj, c.invViewProj = perspectiveProjector(c.position, c.rotation, c.fov, c.aspect, c.near, c.far)
	c.dirty = false
}

// perspectiveProjector builds the view-projection of an eye at pos oriented
// by rot, and its inverse.
func perspectiveProjector(pos math3d.Vec3, rot math3d.Quat, fov, aspect, near, far float64) (vp, inv math3d.Mat4) {
	view := rot.Conjugate().Mat4().Mul(math3d.Translate(pos.Negate()))
	vp = math3d.Perspective(fov, aspect, near, far).Mul(view)
	inv = math3d.Translate(pos).
		Mul(rot.Mat4()).
		Mul(math3d.InversePerspective(fov, aspect, near, far))
	return vp, inv
}

// MoveForward moves the camera forward (or backward if negative).
func (c *Camera) MoveForward(distance float64) {
	c.SetPosition(c.position.Add(c.Forward().Scale(distance)))
}

// MoveRight moves the camera right (or left if negative).
func (c *Camera) MoveRight(distance float64) {
	c.SetPosition(c.position.Add(c.Right().Scale(distance)))
}

// MoveUp moves the camera along world up (or down if negative).
func (c *Camera) MoveUp(distance float64) {
	c.SetPosition(c.position.Add(math3d.Up().Scale(distance)))
}

// Rotate applies q after the current orientation.
func (c *Camera) Rotate(q math3d.Quat) {
	c.SetRotation(q.Mul(c.rotation))
}

// LookAt makes the camera look at a target point.
func (c *Camera) LookAt(target math3d.Vec3) {
	c.SetRotation(math3d.QuatLookRotation(target.Sub(c.position), math3d.Up()))
}

// WorldToScreen transforms a world point to pixel coordinates for a target
// of the given size. visible is false behind the camera or outside the
// frustum.
func (c *Camera) WorldToScreen(worldPos math3d.Vec3, screenWidth, screenHeight int) (x, y, depth float64, visible bool) {
	return projectToScreen(c.ViewProjection(), worldPos, screenWidth, screenHeight)
}

func projectToScreen(vp math3d.Mat4, worldPos math3d.Vec3, screenWidth, screenHeight int) (x, y, depth float64, visible bool) {
	clipPos := vp.MulVec4(math3d.Point(worldPos))
	if clipPos.W <= 0 {
		return 0, 0, 0, false
	}
	visible = clipPos.InsideClipVolume()

	screen := math3d.ScreenSpace(float64(screenWidth)/2, float64(screenHeight)/2)
	p := screen.MulVec4(clipPos).PerspectiveDivide()
	return p.X, p.Y, p.Z, visible
}
