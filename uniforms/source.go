package uniforms

// Source is a pluggable provider of shader uniform values. Sources are
// polled once per frame: Update first, then Uniforms. The renderer never
// knows a source's concrete type.
type Source interface {
	Update(dt float64)
	Uniforms() Map
}

// Manager holds the registered sources and merges their output into one map
// per frame. Registration order is significant: on a name collision the
// later source wins. Collisions are a configuration error, not detected here.
type Manager struct {
	sources []Source
}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) Add(s Source) {
	m.sources = append(m.sources, s)
}

// Update advances every source by dt.
func (m *Manager) Update(dt float64) {
	for _, s := range m.sources {
		s.Update(dt)
	}
}

// Merged rebuilds the combined uniform map for the current frame.
func (m *Manager) Merged() Map {
	out := make(Map)
	for _, s := range m.sources {
		for name, v := range s.Uniforms() {
			out[name] = v
		}
	}
	return out
}
