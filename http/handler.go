package http

import (
	"net/http"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/probeseed/geometry"
	"github.com/aukilabs/probeseed/placement"
	"github.com/segmentio/encoding/json"
)

// Runner runs a placement and reports about it.
type Runner interface {
	Run() (placement.Report, error)
}

// ProbeSource returns the current probe positions.
type ProbeSource interface {
	Positions() []geometry.Vector3f
}

func HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func HandleReadyCheck(readinessCheck func() bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !readinessCheck() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

func HandleVersion(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(version))
	}
}

func HandleWithCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// HandleGenerate re-runs the placement on POST and responds with the run
// report.
func HandleGenerate(runner Runner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		report, err := runner.Run()
		if err != nil {
			logs.Warn(errors.New("generating probes failed").
				WithTag("run_id", report.RunID).
				Wrap(err))
			writeJSON(w, http.StatusInternalServerError, errorResponse{
				Error:  err.Error(),
				Type:   errors.Type(err),
				Report: report,
			})
			return
		}

		writeJSON(w, http.StatusOK, report)
	}
}

// HandleProbes responds with the current probe positions.
func HandleProbes(source ProbeSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		positions := source.Positions()
		if positions == nil {
			positions = []geometry.Vector3f{}
		}
		writeJSON(w, http.StatusOK, positions)
	}
}

type errorResponse struct {
	Error  string           `json:"error"`
	Type   string           `json:"type,omitempty"`
	Report placement.Report `json:"report"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		logs.Warn(errors.New("encoding http response failed").Wrap(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}
