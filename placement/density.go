package placement

import (
	"math"

	"github.com/aukilabs/probeseed/geometry"
)

// DensityEstimator scores how much collision geometry surrounds a point.
type DensityEstimator struct {
	Geometry Geometry
	Mask     geometry.Mask

	// Colliders further than Radius have no influence.
	Radius float32

	// Exponent applied to each collider influence.
	Falloff float32
}

func NewDensityEstimator(g Geometry, p Params) DensityEstimator {
	return DensityEstimator{
		Geometry: g,
		Mask:     p.densityMask(),
		Radius:   p.DensityRadius(),
		Falloff:  p.DensityFalloff,
	}
}

// EstimateDensity returns a score in [0, 1]. Every collider within Radius
// adds (1 - distance/Radius)^Falloff and the sum is clamped, so several close
// colliders saturate the score. No collider around gives exactly 0.
func (e DensityEstimator) EstimateDensity(p geometry.Vector3f) float32 {
	radius := max(e.Radius, minStep)

	colliders := e.Geometry.OverlapSphere(p, radius, e.Mask)
	if len(colliders) == 0 {
		return 0
	}

	var totalInfluence float64
	for _, c := range colliders {
		distance := geometry.Distance(p, e.Geometry.ClosestPoint(c, p))
		influence := 1 - geometry.Clamp01(distance/radius)
		totalInfluence += math.Pow(float64(influence), float64(e.Falloff))
	}

	return geometry.Clamp01(float32(totalInfluence))
}
