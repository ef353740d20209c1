package storage

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	sinkMemory = "memory"
	sinkFile   = "file"
	sinkSQLite = "sqlite"

	sinkLabel    = "sink"
	errTypeLabel = "error_type"
)

var (
	probeWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storage_probe_writes",
		Help: "The number of probe sets written, by sink.",
	}, []string{
		sinkLabel,
	})

	probesWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storage_probes_written",
		Help: "The number of probes written, by sink.",
	}, []string{
		sinkLabel,
	})

	probeWriteErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storage_probe_write_errors",
		Help: "The errors that occured while writing probe sets.",
	}, []string{
		sinkLabel,
		errTypeLabel,
	})
)

func instrumentWrite(sink string, probeCount int, err error) {
	if err != nil {
		probeWriteErrors.
			With(prometheus.Labels{
				sinkLabel:    sink,
				errTypeLabel: errors.Type(err),
			}).
			Inc()
		return
	}

	probeWrites.With(prometheus.Labels{sinkLabel: sink}).Inc()
	probesWritten.With(prometheus.Labels{sinkLabel: sink}).Add(float64(probeCount))
}
