package geometry

// Bounds is an axis aligned bounding box. Min is lesser or equal than Max on
// every axis.
type Bounds struct {
	Min Vector3f `json:"min"`
	Max Vector3f `json:"max"`
}

// NewBounds returns the bounds centered on center with the given full size.
func NewBounds(center Vector3f, size Vector3f) Bounds {
	half := Mul(size, 0.5)
	return NewBoundsMinMax(Sub(center, half), Add(center, half))
}

// NewBoundsMinMax returns the bounds spanning the two corners, whichever order
// they are given in.
func NewBoundsMinMax(a Vector3f, b Vector3f) Bounds {
	return Bounds{Min: Min(a, b), Max: Max(a, b)}
}

func (b Bounds) Center() Vector3f {
	return Mul(Add(b.Min, b.Max), 0.5)
}

func (b Bounds) Size() Vector3f {
	return Sub(b.Max, b.Min)
}

// Extents returns the half size.
func (b Bounds) Extents() Vector3f {
	return Mul(b.Size(), 0.5)
}

// Encapsulate grows b so that it also contains other.
func (b Bounds) Encapsulate(other Bounds) Bounds {
	return Bounds{Min: Min(b.Min, other.Min), Max: Max(b.Max, other.Max)}
}

func (b Bounds) EncapsulatePoint(p Vector3f) Bounds {
	return Bounds{Min: Min(b.Min, p), Max: Max(b.Max, p)}
}

// Contains reports whether p lies inside b, borders included.
func (b Bounds) Contains(p Vector3f) bool {
	return p.GreaterOrEqualThan(b.Min) && p.LesserOrEqualThan(b.Max)
}

func (b Bounds) ContainsBounds(other Bounds) bool {
	return b.Contains(other.Min) && b.Contains(other.Max)
}

func (b Bounds) Intersects(other Bounds) bool {
	return b.Min.X <= other.Max.X && b.Max.X >= other.Min.X &&
		b.Min.Y <= other.Max.Y && b.Max.Y >= other.Min.Y &&
		b.Min.Z <= other.Max.Z && b.Max.Z >= other.Min.Z
}

// ClosestPoint returns the point of b closest to p. It is p itself when p is
// inside b.
func (b Bounds) ClosestPoint(p Vector3f) Vector3f {
	return Vector3f{
		Clamp(p.X, b.Min.X, b.Max.X),
		Clamp(p.Y, b.Min.Y, b.Max.Y),
		Clamp(p.Z, b.Min.Z, b.Max.Z),
	}
}

// Expand grows b by amount on every side.
func (b Bounds) Expand(amount float32) Bounds {
	delta := Vector3f{amount, amount, amount}
	return Bounds{Min: Sub(b.Min, delta), Max: Add(b.Max, delta)}
}
