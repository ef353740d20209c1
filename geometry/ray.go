package geometry

import (
	"math"
)

// Ray is a segment going from From to To. Intersections are reported as a
// parameter t in [0, 1] along the segment.
type Ray struct {
	From Vector3f
	To   Vector3f
}

// NewDownRay returns a ray going straight down from origin over length.
func NewDownRay(origin Vector3f, length float32) Ray {
	return Ray{
		From: origin,
		To:   Vector3f{origin.X, origin.Y - length, origin.Z},
	}
}

func (r Ray) Direction() Vector3f {
	return Sub(r.To, r.From)
}

func (r Ray) PointAt(t float32) Vector3f {
	return Add(r.From, Mul(r.Direction(), t))
}

// Quad is a rectangle with one zero extent, such as a floor or a wall.
type Quad struct {
	Center  Vector3f
	Extents Vector3f // Half-Extents!

	// implicit
	Normal Vector3f
}

func NewQuad(center Vector3f, extents Vector3f) Quad {
	return Quad{
		Center:  center,
		Extents: extents,
		Normal:  calculateNormal(center, extents),
	}
}

func (q Quad) Bounds() Bounds {
	return NewBoundsMinMax(Sub(q.Center, q.Extents), Add(q.Center, q.Extents))
}

func calculateNormal(c Vector3f, e Vector3f) Vector3f {
	pointA := Add(c, Vector3f{e.X, e.Y, 0})
	pointB := Add(c, Vector3f{0, e.Y, e.Z})
	vectorA := Sub(pointA, c)
	vectorB := Sub(pointB, c)
	normal := Cross(vectorB, vectorA)
	normal.NormalizeInPlace()
	return normal
}

// IntersectQuad returns the intersection of the ray segment with q. A zero
// length ray is a point test and hits at t=0 when it lies on q.
func IntersectQuad(r Ray, q Quad) (bool, float32) {
	rayDir := r.Direction()

	if rayDir.Equal(Zero) {
		if q.containsWithEpsilon(r.From) {
			return true, 0
		}
		return false, -1
	}

	denominator := q.Normal.Dot(rayDir)
	if denominator != 0 {
		t := (q.Normal.Dot(q.Center) - q.Normal.Dot(r.From)) / denominator
		if t >= 0 && t <= 1 && q.containsWithEpsilon(r.PointAt(t)) {
			return true, t
		}
	}
	return false, -1
}

func (q Quad) containsWithEpsilon(p Vector3f) bool {
	minPoint := Sub(q.Center, q.Extents)
	maxPoint := Add(q.Center, q.Extents)
	return InRangeWithEpsilon(p.X, minPoint.X, maxPoint.X, 0.0001) &&
		InRangeWithEpsilon(p.Y, minPoint.Y, maxPoint.Y, 0.0001) &&
		InRangeWithEpsilon(p.Z, minPoint.Z, maxPoint.Z, 0.0001)
}

// IntersectBounds is a slab test of the ray segment against b. A ray starting
// inside b hits at t=0.
func IntersectBounds(r Ray, b Bounds) (bool, float32) {
	dir := r.Direction()
	tMin, tMax := float32(0), float32(1)

	axes := [3][4]float32{
		{r.From.X, dir.X, b.Min.X, b.Max.X},
		{r.From.Y, dir.Y, b.Min.Y, b.Max.Y},
		{r.From.Z, dir.Z, b.Min.Z, b.Max.Z},
	}
	for _, a := range axes {
		origin, d, lo, hi := a[0], a[1], a[2], a[3]

		// parallel to the slab:
		if math.Abs(float64(d)) < 1e-9 {
			if origin < lo || origin > hi {
				return false, -1
			}
			continue
		}

		t1 := (lo - origin) / d
		t2 := (hi - origin) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tMin {
			tMin = t1
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return false, -1
		}
	}
	return true, tMin
}

// IntersectSphere returns the first intersection of the ray segment with the
// sphere surface. A ray starting inside the sphere hits at t=0.
func IntersectSphere(r Ray, center Vector3f, radius float32) (bool, float32) {
	dir := r.Direction()
	oc := Sub(r.From, center)

	a := float64(dir.Dot(dir))
	c := float64(oc.Dot(oc)) - float64(radius)*float64(radius)
	if c <= 0 {
		return true, 0
	}
	if a == 0 {
		return false, -1
	}

	b := 2 * float64(oc.Dot(dir))
	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return false, -1
	}

	t := (-b - math.Sqrt(discriminant)) / (2 * a)
	if t < 0 || t > 1 {
		return false, -1
	}
	return true, float32(t)
}
