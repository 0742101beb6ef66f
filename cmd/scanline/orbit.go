package main

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

const (
	minPitch    = -math.Pi/2 + 0.01
	maxPitch    = math.Pi/2 - 0.01
	minDistance = 0.5
)

// orbitAxis tracks position and velocity for one axis; the velocity decays
// to zero through a critically damped spring.
type orbitAxis struct {
	Position  float64
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64 // spring velocity of Velocity itself
}

func newOrbitAxis(fps int, position float64) orbitAxis {
	return orbitAxis{
		Position: position,
		// Frequency 4.0 = moderate speed, damping 1.0 = no overshoot
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

func (a *orbitAxis) update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// orbit swings the camera around a pivot on a sphere. Yaw 0 puts the camera
// on the +Z side of the pivot.
type orbit struct {
	Pivot    math3d.Vec3
	Yaw      orbitAxis
	Pitch    orbitAxis
	Distance float64

	fps  int
	home [3]float64
}

// newOrbit derives an orbit from the camera's current placement. The pivot
// is the point along the view direction as far away as the camera is from
// the origin, so a camera aimed at the origin orbits the origin.
func newOrbit(cam *render.Camera, fps int) *orbit {
	pos := cam.Position()
	dist := pos.Len()
	if dist < minDistance {
		dist = 5
	}
	pivot := pos.Add(cam.Forward().Scale(dist))
	off := pos.Sub(pivot)

	yaw := math.Atan2(off.X, off.Z)
	pitch := math.Asin(math3d.Clamp(off.Y/dist, -1, 1))
	o := &orbit{
		Pivot:    pivot,
		Distance: dist,
		fps:      fps,
		home:     [3]float64{yaw, math3d.Clamp(pitch, minPitch, maxPitch), dist},
	}
	o.Reset()
	return o
}

// Reset returns to the starting placement and stops all motion.
func (o *orbit) Reset() {
	o.Yaw = newOrbitAxis(o.fps, o.home[0])
	o.Pitch = newOrbitAxis(o.fps, o.home[1])
	o.Distance = o.home[2]
}

func (o *orbit) Impulse(yaw, pitch float64) {
	o.Yaw.Velocity += yaw
	o.Pitch.Velocity += pitch
}

// Zoom scales the distance to the pivot.
func (o *orbit) Zoom(factor float64) {
	o.Distance = math.Max(minDistance, o.Distance*factor)
}

// Step advances one frame and places cam.
func (o *orbit) Step(cam *render.Camera) {
	o.Yaw.update()
	o.Pitch.update()
	o.Pitch.Position = math3d.Clamp(o.Pitch.Position, minPitch, maxPitch)
	o.Apply(cam)
}

// Apply places cam without advancing the springs.
func (o *orbit) Apply(cam *render.Camera) {
	yaw, pitch := o.Yaw.Position, o.Pitch.Position
	off := math3d.V3(
		math.Cos(pitch)*math.Sin(yaw),
		math.Sin(pitch),
		math.Cos(pitch)*math.Cos(yaw),
	).Scale(o.Distance)
	cam.SetPosition(o.Pivot.Add(off))
	cam.LookAt(o.Pivot)
}
