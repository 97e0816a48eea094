package camera

import (
	"github.com/chewxy/math32"
)

// Static is a fixed camera defined by a position and a look-at point. Its
// basis is computed once at construction and again only on Reset; input is
// ignored.
type Static struct {
	position [3]float32
	lookAt   [3]float32
	view     View
}

// NewStatic builds a fixed camera looking from position toward lookAt.
func NewStatic(position, lookAt [3]float32) *Static {
	s := &Static{position: position, lookAt: lookAt}
	s.rebuild()
	return s
}

func (s *Static) rebuild() {
	fwd := normalize(sub(s.lookAt, s.position))
	worldUp := [3]float32{0, 1, 0}
	right := cross(fwd, worldUp)
	if length(right) < 1e-6 {
		// Looking straight up or down; pick an arbitrary horizontal right.
		right = [3]float32{1, 0, 0}
	} else {
		right = normalize(right)
	}
	up := cross(right, fwd)
	s.view = View{Position: s.position, Forward: fwd, Right: right, Up: up}
}

func (s *Static) Update(in Input, dt float64) {}

func (s *Static) View() View { return s.view }

func (s *Static) Reset() { s.rebuild() }

func sub(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func cross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func length(v [3]float32) float32 {
	return math32.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

func normalize(v [3]float32) [3]float32 {
	l := length(v)
	if l == 0 {
		return v
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}
