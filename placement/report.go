package placement

import (
	"math"
	"sort"
	"time"

	"github.com/aukilabs/probeseed/geometry"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ProbeSet is the ordered list of probes accepted by a run.
type ProbeSet []geometry.Vector3f

// Report summarizes a placement run.
type Report struct {
	RunID        string          `json:"runId"`
	Bounds       geometry.Bounds `json:"bounds"`
	CellsScanned int             `json:"cellsScanned"`
	CellsSkipped int             `json:"cellsSkipped"`
	ProbeCount   int             `json:"probeCount"`
	Duration     time.Duration   `json:"duration"`
	Neighbors    NeighborStats   `json:"neighbors"`
}

// NeighborStats describes the distance of each probe to its nearest other
// probe. It is zero for sets of less than two probes.
type NeighborStats struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdDev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

func ComputeNeighborStats(points []geometry.Vector3f) NeighborStats {
	if len(points) < 2 {
		return NeighborStats{}
	}

	distances := NearestNeighborDistances(points)
	mean, stdDev := stat.MeanStdDev(distances, nil)
	return NeighborStats{
		Mean:   mean,
		StdDev: stdDev,
		Min:    floats.Min(distances),
		Max:    floats.Max(distances),
	}
}

// NearestNeighborDistances returns, for each point, the distance to the
// closest other point. Points are swept in x order and the sweep stops as
// soon as the x gap exceeds the best distance found.
func NearestNeighborDistances(points []geometry.Vector3f) []float64 {
	distances := make([]float64, len(points))
	if len(points) < 2 {
		for i := range distances {
			distances[i] = math.Inf(1)
		}
		return distances
	}

	order := make([]int, len(points))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return points[order[a]].X < points[order[b]].X
	})

	for k, i := range order {
		p := points[i]
		best := math.Inf(1)

		for j := k + 1; j < len(order); j++ {
			q := points[order[j]]
			if float64(q.X-p.X) >= best {
				break
			}
			best = math.Min(best, geometry.Sub(q, p).Length())
		}
		for j := k - 1; j >= 0; j-- {
			q := points[order[j]]
			if float64(p.X-q.X) >= best {
				break
			}
			best = math.Min(best, geometry.Sub(q, p).Length())
		}

		distances[i] = best
	}
	return distances
}
