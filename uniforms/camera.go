package uniforms

import (
	"github.com/glowdeck/glowdeck/camera"
)

// CameraSource wraps a camera model and exposes its view vectors as shader
// uniforms. It carries the override slot the cube mapper uses during
// multi-pass rendering: while an override camera is set, its vectors replace
// the wrapped model's for uniform output, without disturbing the model's
// state. A renderer instance owns exactly one CameraSource.
type CameraSource struct {
	cam      camera.Camera
	poll     func() camera.Input
	override camera.Camera
}

// NewCameraSource wraps cam. poll supplies the frame's directional input and
// may be nil for cameras that take no input.
func NewCameraSource(cam camera.Camera, poll func() camera.Input) *CameraSource {
	return &CameraSource{cam: cam, poll: poll}
}

// Camera returns the wrapped model (never the override).
func (s *CameraSource) Camera() camera.Camera { return s.cam }

// SetOverride routes uniform output through cam until ClearOverride.
func (s *CameraSource) SetOverride(cam camera.Camera) { s.override = cam }

// ClearOverride restores the wrapped model's output.
func (s *CameraSource) ClearOverride() { s.override = nil }

// Update advances the wrapped model. The override never receives input; it
// is a fixed per-pass pose.
func (s *CameraSource) Update(dt float64) {
	var in camera.Input
	if s.poll != nil {
		in = s.poll()
	}
	s.cam.Update(in, dt)
}

func (s *CameraSource) Uniforms() Map {
	active := s.cam
	if s.override != nil {
		active = s.override
	}
	v := active.View()
	return Map{
		"iCamPos":     Vec3(v.Position[0], v.Position[1], v.Position[2]),
		"iCamForward": Vec3(v.Forward[0], v.Forward[1], v.Forward[2]),
		"iCamRight":   Vec3(v.Right[0], v.Right[1], v.Right[2]),
		"iCamUp":      Vec3(v.Up[0], v.Up[1], v.Up[2]),
	}
}
