package uniforms

// Kind discriminates the value types a shader uniform can take.
type Kind int

const (
	KindFloat Kind = iota
	KindInt
	KindVec2
	KindVec3
	KindVec4
)

// Value is a tagged union of the uniform value types: scalar float, integer,
// or a 2/3/4-component float vector.
type Value struct {
	Kind Kind
	Int  int32
	Vec  [4]float32
}

func Float(v float32) Value { return Value{Kind: KindFloat, Vec: [4]float32{v}} }
func Int(v int32) Value     { return Value{Kind: KindInt, Int: v} }

func Vec2(x, y float32) Value    { return Value{Kind: KindVec2, Vec: [4]float32{x, y}} }
func Vec3(x, y, z float32) Value { return Value{Kind: KindVec3, Vec: [4]float32{x, y, z}} }
func Vec4(x, y, z, w float32) Value {
	return Value{Kind: KindVec4, Vec: [4]float32{x, y, z, w}}
}

// Map is a frame's worth of named uniform values.
type Map map[string]Value
