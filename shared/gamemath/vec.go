package gamemath

// Axis selects a component of a Vec.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// Other returns the perpendicular axis.
func (a Axis) Other() Axis {
	return 1 - a
}

// Vec is a 2D fixed-point vector. Y grows downward.
type Vec struct {
	X, Y Fix
}

// V builds a Vec from integer components.
func V(x, y int) Vec {
	return Vec{FromInt(x), FromInt(y)}
}

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

// Scale multiplies both components by s.
func (v Vec) Scale(s Fix) Vec {
	return Vec{v.X.Mul(s), v.Y.Mul(s)}
}

func (v Vec) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Axis returns the component on a.
func (v Vec) Axis(a Axis) Fix {
	if a == AxisX {
		return v.X
	}
	return v.Y
}

// WithAxis returns a copy of v with component a replaced.
func (v Vec) WithAxis(a Axis, val Fix) Vec {
	if a == AxisX {
		v.X = val
	} else {
		v.Y = val
	}
	return v
}
