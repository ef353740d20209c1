package scene

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	queryLabel  = "query"
	resultLabel = "result"

	queryRaycast = "raycast_down"
	queryOverlap = "overlap_sphere"
)

var (
	sceneQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scene_queries",
		Help: "The number of geometry queries run against the scene.",
	}, []string{
		queryLabel,
		resultLabel,
	})

	sceneObjectCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "scene_object_count",
		Help: "The number of objects in the loaded scenes.",
	})
)

func instrumentQuery(query string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}

	sceneQueries.
		With(prometheus.Labels{
			queryLabel:  query,
			resultLabel: result,
		}).
		Inc()
}
