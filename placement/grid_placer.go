package placement

import (
	"math"

	"github.com/aukilabs/probeseed/geometry"
)

// GridPlacer lays local sub-grids of probes around analysis anchors. It keeps
// every probe accepted during the run so that sub-grids of neighbouring cells
// do not cluster along their common border.
type GridPlacer struct {
	Sampler            SurfaceSampler
	MaxProbeSpacing    float32
	HeightAboveSurface float32

	accepted *acceptedSet
}

func NewGridPlacer(g Geometry, p Params, linearScan bool) *GridPlacer {
	return &GridPlacer{
		Sampler:            SurfaceSampler{Geometry: g, Mask: p.PlacementMask},
		MaxProbeSpacing:    p.MaxProbeSpacing,
		HeightAboveSurface: p.HeightAboveSurface,
		accepted:           newAcceptedSet(linearScan),
	}
}

// Place generates a sub-grid of (n+1)x(n+1) candidates centered on anchor,
// n being ceil(MaxProbeSpacing/spacing), and returns the accepted ones.
//
// Each candidate is clamped into bounds horizontally, snapped above the
// surface below it when there is one, and rejected when it is out of bounds
// or closer than spacing*RejectionFactor to an accepted probe. Bounds are
// extended upwards by HeightAboveSurface so that probes over the highest
// surface are kept. Candidates are visited x major, z minor.
func (p *GridPlacer) Place(anchor geometry.Vector3f, spacing float32, bounds geometry.Bounds) []geometry.Vector3f {
	spacing = max(spacing, minStep)
	cellCount := int(math.Ceil(float64(p.MaxProbeSpacing / spacing)))
	if cellCount < 0 {
		cellCount = 0
	}
	startOffset := -float32(cellCount) * spacing * 0.5
	minDistance := spacing * RejectionFactor

	// Probes snap above surfaces lying on top of the bounds. The secondary ray
	// reaches below the anchor surface even when the bounds are flat.
	limits := bounds.EncapsulatePoint(geometry.Add(bounds.Max, geometry.Mul(geometry.Up, max(p.HeightAboveSurface, 0))))
	height := max(bounds.Size().Y, 2*p.HeightAboveSurface, minStep)

	var placed []geometry.Vector3f
	for x := 0; x <= cellCount; x++ {
		for z := 0; z <= cellCount; z++ {
			probe := geometry.Vector3f{
				X: anchor.X + startOffset + float32(x)*spacing,
				Y: anchor.Y,
				Z: anchor.Z + startOffset + float32(z)*spacing,
			}

			// keep within bounds:
			probe.X = geometry.Clamp(probe.X, bounds.Min.X, bounds.Max.X)
			probe.Z = geometry.Clamp(probe.Z, bounds.Min.Z, bounds.Max.Z)

			// adjust height to surface, keeping the anchor height on a miss:
			origin := geometry.Add(probe, geometry.Mul(geometry.Up, height))
			if surface, ok := p.Sampler.FindSurfaceHeight(probe.X, probe.Z, origin.Y-2*height, origin.Y); ok {
				probe.Y = surface + p.HeightAboveSurface
			}

			if !limits.Contains(probe) || p.accepted.tooClose(probe, minDistance) {
				continue
			}

			p.accepted.add(probe)
			placed = append(placed, probe)
		}
	}

	p.accepted.rebalance()
	return placed
}

// Accepted returns every probe accepted so far, in acceptance order.
func (p *GridPlacer) Accepted() []geometry.Vector3f {
	return p.accepted.positions
}

func (p *GridPlacer) Len() int {
	return p.accepted.len()
}
