package mapper

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/glowdeck/glowdeck/camera"
	"github.com/glowdeck/glowdeck/frame"
)

// faceDirs are the base direction vectors of the cube faces, in pass order.
var faceDirs = [6][3]float32{
	{0, 0, 1},  // front
	{1, 0, 0},  // right
	{0, 0, -1}, // back
	{-1, 0, 0}, // left
	{0, 1, 0},  // top
	{0, -1, 0}, // bottom
}

// FaceNames matches faceDirs, in pass order.
var FaceNames = [6]string{"front", "right", "back", "left", "top", "bottom"}

// OrbitState is the slice of the orbiting camera the cube mapper reads to
// reposition itself per face.
type OrbitState interface {
	Yaw() float32
	Pitch() float32
	Roll() float32
	Distance() float32
}

// Cube renders one pass per active face and lays the results out
// horizontally. Before each pass the shared orbit camera's current rotation
// is applied to the face's base direction to place a fixed camera looking at
// the origin, so all faces stay coherent as the user navigates.
type Cube struct {
	panels     int
	faceWidth  int
	faceHeight int
	orbit      OrbitState
}

// NewCube creates a cube mapper with 1-6 active faces at the given per-face
// resolution. orbit may be nil, in which case faces use identity rotation at
// unit distance.
func NewCube(panels, faceWidth, faceHeight int, orbit OrbitState) (*Cube, error) {
	if panels < 1 || panels > 6 {
		return nil, fmt.Errorf("cube mapper needs 1-6 panels, got %d", panels)
	}
	return &Cube{
		panels:     panels,
		faceWidth:  faceWidth,
		faceHeight: faceHeight,
		orbit:      orbit,
	}, nil
}

// FacePosition computes the camera position for face index: the face's base
// direction rotated by yaw, then pitch, then roll, scaled by distance.
func (c *Cube) FacePosition(face int) [3]float32 {
	var yaw, pitch, roll float32
	distance := float32(1)
	if c.orbit != nil {
		yaw = c.orbit.Yaw()
		pitch = c.orbit.Pitch()
		roll = c.orbit.Roll()
		distance = c.orbit.Distance()
	}
	v := faceDirs[face]
	v = rotateRoll(v, roll)
	v = rotatePitch(v, pitch)
	v = rotateYaw(v, yaw)
	return [3]float32{v[0] * distance, v[1] * distance, v[2] * distance}
}

func (c *Cube) Specs() []RenderSpec {
	specs := make([]RenderSpec, c.panels)
	for i := 0; i < c.panels; i++ {
		pos := c.FacePosition(i)
		specs[i] = RenderSpec{
			Width:  c.faceWidth,
			Height: c.faceHeight,
			Camera: camera.NewStatic(pos, [3]float32{0, 0, 0}),
		}
	}
	return specs
}

func (c *Cube) Layout(bufs []*frame.Buffer) (*frame.Buffer, error) {
	if len(bufs) != c.panels {
		return nil, fmt.Errorf("cube mapper expects %d pass results, got %d", c.panels, len(bufs))
	}
	return frame.HConcat(bufs)
}

func (c *Cube) OutputSize() (int, int) {
	return c.faceWidth * c.panels, c.faceHeight
}

// Rotation about the Y axis.
func rotateYaw(v [3]float32, a float32) [3]float32 {
	s, c := math32.Sincos(a)
	return [3]float32{c*v[0] + s*v[2], v[1], -s*v[0] + c*v[2]}
}

// Rotation about the X axis. Positive pitch carries +Z toward +Y, matching
// the orbit model's spherical convention so the front face tracks the orbit
// camera exactly.
func rotatePitch(v [3]float32, a float32) [3]float32 {
	s, c := math32.Sincos(a)
	return [3]float32{v[0], c*v[1] + s*v[2], -s*v[1] + c*v[2]}
}

// Rotation about the Z axis.
func rotateRoll(v [3]float32, a float32) [3]float32 {
	s, c := math32.Sincos(a)
	return [3]float32{c*v[0] - s*v[1], s*v[0] + c*v[1], v[2]}
}
