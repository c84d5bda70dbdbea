package gamemath

// Rect is an axis-aligned rectangle given by its top-left corner and size.
// The zero Rect has zero area and is used as "no rectangle".
type Rect struct {
	Pos, Size Vec
}

// Max returns the bottom-right corner.
func (r Rect) Max() Vec {
	return r.Pos.Add(r.Size)
}

func (r Rect) Area() Fix {
	return r.Size.X.Mul(r.Size.Y)
}

// Intersects reports strict overlap; touching edges do not count.
func (r Rect) Intersects(o Rect) bool {
	rMax, oMax := r.Max(), o.Max()
	return r.Pos.X < oMax.X && o.Pos.X < rMax.X &&
		r.Pos.Y < oMax.Y && o.Pos.Y < rMax.Y
}

// Touches is Intersects with edges included.
func (r Rect) Touches(o Rect) bool {
	rMax, oMax := r.Max(), o.Max()
	return r.Pos.X <= oMax.X && o.Pos.X <= rMax.X &&
		r.Pos.Y <= oMax.Y && o.Pos.Y <= rMax.Y
}

// Intersection returns the overlapping region, or the zero Rect when r and
// o do not strictly overlap.
func (r Rect) Intersection(o Rect) Rect {
	if !r.Intersects(o) {
		return Rect{}
	}
	pos := Vec{Max(r.Pos.X, o.Pos.X), Max(r.Pos.Y, o.Pos.Y)}
	rMax, oMax := r.Max(), o.Max()
	end := Vec{Min(rMax.X, oMax.X), Min(rMax.Y, oMax.Y)}
	return Rect{Pos: pos, Size: end.Sub(pos)}
}
