package camera

// Input carries the normalized directional signals polled once per frame
// from the input-handling layer. Each direction is in [0,1]; Precise is the
// precision-modifier flag that redirects vertical input to zoom.
type Input struct {
	Left, Right   float32
	Up, Down      float32
	Forward, Back float32
	Precise       bool
}

// View is a camera position plus its three orthogonal basis vectors.
type View struct {
	Position [3]float32
	Forward  [3]float32
	Right    [3]float32
	Up       [3]float32
}

// Camera converts directional input into view vectors. Update is called once
// per frame with the frame's dt; View may be called any number of times
// between updates.
type Camera interface {
	Update(in Input, dt float64)
	View() View
	Reset()
}
