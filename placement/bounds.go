package placement

import (
	"github.com/aukilabs/probeseed/geometry"
)

// ComputeSceneBounds returns the union of the bounds of every renderable. A
// scene without renderables gets a box of DefaultBoundsSize centered on the
// origin.
func ComputeSceneBounds(g Geometry) geometry.Bounds {
	var bounds geometry.Bounds
	hasBounds := false

	for _, b := range g.RenderableBounds() {
		if !hasBounds {
			bounds = geometry.NewBoundsMinMax(b.Min, b.Max)
			hasBounds = true
			continue
		}
		bounds = bounds.Encapsulate(b)
	}

	if !hasBounds {
		bounds = geometry.NewBounds(geometry.Zero, geometry.Mul(geometry.One, DefaultBoundsSize))
	}
	return bounds
}
