package placement

import (
	"github.com/aukilabs/probeseed/geometry"
)

// SurfaceSample is the highest surface found in an analysis column.
type SurfaceSample struct {
	X      float32
	Z      float32
	Height float32
	Found  bool
}

type SurfaceSampler struct {
	Geometry Geometry
	Mask     geometry.Mask
}

// FindSurfaceHeight casts a ray from (x, yMax, z) straight down over
// yMax-yMin and returns the height of the first surface hit. It returns false
// when nothing is hit, which is expected for empty columns.
//
// The range is padded by a small epsilon on both ends so that surfaces lying
// exactly on yMin or yMax are found, including when yMin equals yMax.
func (s SurfaceSampler) FindSurfaceHeight(x float32, z float32, yMin float32, yMax float32) (float32, bool) {
	if yMax < yMin {
		return 0, false
	}

	origin := geometry.Vector3f{X: x, Y: yMax + minStep, Z: z}
	hit, ok := s.Geometry.RaycastDown(origin, yMax-yMin+2*minStep, s.Mask)
	if !ok {
		return 0, false
	}
	return hit.Y, true
}

// Sample is FindSurfaceHeight returning a SurfaceSample.
func (s SurfaceSampler) Sample(x float32, z float32, yMin float32, yMax float32) SurfaceSample {
	height, found := s.FindSurfaceHeight(x, z, yMin, yMax)
	return SurfaceSample{X: x, Z: z, Height: height, Found: found}
}
