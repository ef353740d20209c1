package placement

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/probeseed/featureflag"
	"github.com/aukilabs/probeseed/geometry"
	"github.com/google/uuid"
)

const (
	ErrTypeSinkWrite = "sink_write"
)

type options struct {
	linearScan bool
}

type Option func(*options)

// WithLinearRejectionScan makes the grid placer check candidates against
// every accepted probe instead of using a k-d tree.
func WithLinearRejectionScan() Option {
	return func(o *options) {
		o.linearScan = true
	}
}

// Generate runs an adaptive placement against g and returns the accepted
// probes.
//
// Analysis cells are visited x major, z minor, from the minimum corner of the
// scene bounds with a stride of p.AnalysisGridSize. Cells without a surface
// below them are skipped.
func Generate(g Geometry, p Params, opts ...Option) (ProbeSet, Report) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	start := time.Now()
	report := Report{
		RunID: uuid.New().String(),
	}

	bounds := ComputeSceneBounds(g)
	report.Bounds = bounds

	sampler := SurfaceSampler{Geometry: g, Mask: p.PlacementMask}
	estimator := NewDensityEstimator(g, p)
	placer := NewGridPlacer(g, p, o.linearScan)

	step := p.analysisStep()
	for i := 0; ; i++ {
		x := bounds.Min.X + float32(i)*step
		if x >= bounds.Max.X {
			break
		}

		for j := 0; ; j++ {
			z := bounds.Min.Z + float32(j)*step
			if z >= bounds.Max.Z {
				break
			}
			report.CellsScanned++

			surface := sampler.Sample(x, z, bounds.Min.Y, bounds.Max.Y)
			if !surface.Found {
				report.CellsSkipped++
				continue
			}

			density := estimator.EstimateDensity(geometry.Vector3f{X: x, Y: surface.Height, Z: z})
			spacing := p.Spacing(density)
			anchor := geometry.Vector3f{X: x, Y: surface.Height + p.HeightAboveSurface, Z: z}
			placer.Place(anchor, spacing, bounds)
		}
	}

	probes := ProbeSet(placer.Accepted())
	report.ProbeCount = len(probes)
	report.Neighbors = ComputeNeighborStats(probes)
	report.Duration = time.Since(start)
	return probes, report
}

type State int32

const (
	StateIdle State = iota
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	default:
		return "unknown"
	}
}

// Engine runs adaptive placements on demand and hands the result to its sink.
// A MemorySink is created on the first run when Sink is nil. Runs never
// overlap: a run started while another is in progress waits for it to finish.
type Engine struct {
	Geometry     Geometry
	Params       Params
	Sink         Sink
	FeatureFlags featureflag.FeatureFlag

	mutex sync.Mutex
	state atomic.Int32
}

func (e *Engine) State() State {
	return State(e.state.Load())
}

// Run generates the probes and replaces the sink content with them.
func (e *Engine) Run() (Report, error) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	e.state.Store(int32(StateRunning))
	defer e.state.Store(int32(StateIdle))

	var opts []Option
	e.FeatureFlags.IfSet(featureflag.FlagLinearRejectionScan, func() {
		opts = append(opts, WithLinearRejectionScan())
	})

	probes, report := Generate(e.Geometry, e.Params, opts...)
	instrumentRun(report)

	if e.Sink == nil {
		e.Sink = &MemorySink{}
		logs.WithTag("run_id", report.RunID).
			Info("no probe sink set, created an in-memory probe sink")
	}

	if err := e.Sink.SetProbePositions(probes); err != nil {
		err = errors.New("setting probe positions failed").
			WithType(ErrTypeSinkWrite).
			WithTag("run_id", report.RunID).
			WithTag("probe_count", report.ProbeCount).
			Wrap(err)
		instrumentSinkError(err)
		return report, err
	}

	logs.WithTag("run_id", report.RunID).
		WithTag("probe_count", report.ProbeCount).
		WithTag("cells_scanned", report.CellsScanned).
		WithTag("cells_skipped", report.CellsSkipped).
		WithTag("mean_neighbor_distance", report.Neighbors.Mean).
		WithTag("duration", report.Duration.String()).
		Info("generated adaptive light probes")
	return report, nil
}
