package camera

import (
	"github.com/chewxy/math32"
)

// Orbit is a spherical camera orbiting the origin. Yaw and pitch are
// unbounded so the camera can loop over the poles without gimbal clamping;
// only distance is clamped.
type Orbit struct {
	distance float32
	yaw      float32
	pitch    float32

	distVel  float32
	yawVel   float32
	pitchVel float32

	minDistance float32
	maxDistance float32
	accel       float32
	damping     float32

	home float32 // distance to return to on Reset
}

const (
	defaultAccel   = 6.0
	defaultDamping = 0.88
)

// NewOrbit creates an orbiting camera at the given start distance.
func NewOrbit(distance, minDistance, maxDistance float32) *Orbit {
	return &Orbit{
		distance:    distance,
		minDistance: minDistance,
		maxDistance: maxDistance,
		accel:       defaultAccel,
		damping:     defaultDamping,
		home:        distance,
	}
}

// SetResponse overrides the acceleration constant and per-frame damping
// factor. Damping must be in (0,1).
func (o *Orbit) SetResponse(accel, damping float32) {
	o.accel = accel
	o.damping = damping
}

// Update integrates one frame of input. Horizontal input always drives yaw.
// Vertical input drives pitch, or zoom when the precision modifier is held.
// Forward/back always drives zoom. Damping is raised to dt*60 so the control
// feel is identical at any frame rate.
func (o *Orbit) Update(in Input, dt float64) {
	fdt := float32(dt)

	o.yawVel += (in.Right - in.Left) * o.accel * fdt
	if in.Precise {
		o.distVel += (in.Down - in.Up) * o.accel * fdt
	} else {
		o.pitchVel += (in.Up - in.Down) * o.accel * fdt
	}
	o.distVel += (in.Back - in.Forward) * o.accel * fdt

	decay := math32.Pow(o.damping, fdt*60)
	o.yawVel *= decay
	o.pitchVel *= decay
	o.distVel *= decay

	o.yaw += o.yawVel * fdt
	o.pitch += o.pitchVel * fdt
	o.distance += o.distVel * fdt

	if o.distance < o.minDistance {
		o.distance = o.minDistance
		o.distVel = 0
	}
	if o.distance > o.maxDistance {
		o.distance = o.maxDistance
		o.distVel = 0
	}
}

// View derives the basis analytically from the spherical angles. Right and
// up are the partial derivatives of position with respect to yaw and pitch,
// which stays stable at the poles without a cross product.
func (o *Orbit) View() View {
	sy, cy := math32.Sincos(o.yaw)
	sp, cp := math32.Sincos(o.pitch)
	d := o.distance

	pos := [3]float32{d * cp * sy, d * sp, d * cp * cy}

	// Forward points at the origin.
	fwd := [3]float32{-cp * sy, -sp, -cp * cy}

	// d(pos)/d(yaw), normalized.
	right := [3]float32{cy, 0, -sy}

	// d(pos)/d(pitch), normalized.
	up := [3]float32{-sp * sy, cp, -sp * cy}

	return View{Position: pos, Forward: fwd, Right: right, Up: up}
}

// Reset returns the camera to its construction pose and kills all velocity.
func (o *Orbit) Reset() {
	o.distance = o.home
	o.yaw = 0
	o.pitch = 0
	o.distVel = 0
	o.yawVel = 0
	o.pitchVel = 0
}

func (o *Orbit) Yaw() float32      { return o.yaw }
func (o *Orbit) Pitch() float32    { return o.pitch }
func (o *Orbit) Distance() float32 { return o.distance }

// Roll is part of the rotation chain the cube mapper applies. The orbit
// model carries no roll state, so this is always zero.
func (o *Orbit) Roll() float32 { return 0 }
