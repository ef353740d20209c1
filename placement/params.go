package placement

import (
	"github.com/aukilabs/probeseed/geometry"
)

const (
	// RejectionFactor scales the local spacing into the minimum distance a
	// candidate must keep from every accepted probe.
	RejectionFactor = 0.8

	// DefaultBoundsSize is the side of the box used when the scene has no
	// renderable.
	DefaultBoundsSize = 10

	// Spacings and strides never go below this so that a run always
	// terminates.
	minStep = 0.01
)

// Params are the tunables of an adaptive placement run.
type Params struct {
	// Probe spacing used in the densest areas.
	MinProbeSpacing float32 `json:"minProbeSpacing"`

	// Probe spacing used in empty areas.
	MaxProbeSpacing float32 `json:"maxProbeSpacing"`

	// How quickly density falls off from colliders. Above 1 concentrates
	// influence near surfaces, below 1 spreads it.
	DensityFalloff float32 `json:"densityFalloff"`

	// Height of probes above the surface they are snapped to.
	HeightAboveSurface float32 `json:"heightAboveSurface"`

	// Colliders taking part in surface and density queries.
	PlacementMask geometry.Mask `json:"placementMask"`

	// Overrides PlacementMask for density queries when set. A floor hit by
	// surface rays is at distance 0 of every sampled point and saturates the
	// density unless it is left out of this mask.
	DensityMask *geometry.Mask `json:"densityMask,omitempty"`

	// Stride of the coarse analysis grid.
	AnalysisGridSize float32 `json:"analysisGridSize"`
}

func DefaultParams() Params {
	return Params{
		MinProbeSpacing:    1,
		MaxProbeSpacing:    10,
		DensityFalloff:     2,
		HeightAboveSurface: 0.5,
		PlacementMask:      geometry.Everything,
		AnalysisGridSize:   5,
	}
}

// Spacing returns the local probe spacing for a density in [0, 1].
func (p Params) Spacing(density float32) float32 {
	return InterpolateSpacing(p.MinProbeSpacing, p.MaxProbeSpacing, density)
}

// DensityRadius is the radius in which colliders influence density.
func (p Params) DensityRadius() float32 {
	return max(2*p.MaxProbeSpacing, minStep)
}

func (p Params) densityMask() geometry.Mask {
	if p.DensityMask != nil {
		return *p.DensityMask
	}
	return p.PlacementMask
}

func (p Params) analysisStep() float32 {
	return max(p.AnalysisGridSize, minStep)
}
