package placement

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	errTypeLabel    = "error_type"
	cellResultLabel = "result"
)

var (
	placementRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "placement_runs",
		Help: "The number of adaptive placement runs.",
	})

	placementRunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "placement_run_duration",
		Help: "The time to run an adaptive placement.",
	})

	placementProbeCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "placement_probe_count",
		Help: "The number of probes generated by the last placement run.",
	})

	placementCells = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "placement_analysis_cells",
		Help: "The number of analysis cells scanned, by result.",
	}, []string{
		cellResultLabel,
	})

	placementSinkError = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "placement_sink_errors",
		Help: "The errors that occured while handing probes to the sink.",
	}, []string{
		errTypeLabel,
	})
)

func instrumentRun(r Report) {
	placementRuns.Inc()
	placementRunDuration.Observe(r.Duration.Seconds())
	placementProbeCount.Set(float64(r.ProbeCount))

	placementCells.
		With(prometheus.Labels{cellResultLabel: "placed"}).
		Add(float64(r.CellsScanned - r.CellsSkipped))
	placementCells.
		With(prometheus.Labels{cellResultLabel: "skipped"}).
		Add(float64(r.CellsSkipped))
}

func instrumentSinkError(err error) {
	placementSinkError.
		With(prometheus.Labels{
			errTypeLabel: errors.Type(err),
		}).
		Inc()
}
