package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"syscall"
	"time"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/events"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/go-tooling/pkg/metrics"
	"github.com/aukilabs/probeseed/featureflag"
	"github.com/aukilabs/probeseed/geometry"
	probehttp "github.com/aukilabs/probeseed/http"
	"github.com/aukilabs/probeseed/placement"
	"github.com/aukilabs/probeseed/preview"
	"github.com/aukilabs/probeseed/scene"
	"github.com/aukilabs/probeseed/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/encoding/json"
)

var (
	// The probeseed version number. Set at build.
	version = "v0.1.0"

	infoGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name:        "probeseed_info",
		Help:        "Probeseed information.",
		ConstLabels: prometheus.Labels{"version": version},
	})
)

// This will effectively disable obfuscation of the config struct. Without it, the keys would get obfuscated causing the cli package to generate garbled command-line options.
// https://github.com/burrowers/garble/issues/403
var _ = reflect.TypeOf(config{})

type config struct {
	Scene              string       `cli:""        env:"PROBESEED_SCENE"                help:"Path of the JSON scene description."`
	Out                string       `cli:""        env:"PROBESEED_OUT"                  help:"File where probes are written (.pb|.json)."`
	DB                 string       `cli:""        env:"PROBESEED_DB"                   help:"Sqlite database where probe sets are stored."`
	SetName            string       `cli:""        env:"PROBESEED_SET_NAME"             help:"Name of the probe set in the database. Defaults to the scene file name."`
	Plot               string       `cli:""        env:"PROBESEED_PLOT"                 help:"Image file where a top down preview of the probes is saved (.png|.svg|.pdf)."`
	MinProbeSpacing    float64      `cli:""        env:"PROBESEED_MIN_PROBE_SPACING"    help:"Probe spacing in dense areas."`
	MaxProbeSpacing    float64      `cli:""        env:"PROBESEED_MAX_PROBE_SPACING"    help:"Probe spacing in empty areas."`
	DensityFalloff     float64      `cli:""        env:"PROBESEED_DENSITY_FALLOFF"      help:"Exponent applied to collider influence."`
	HeightAboveSurface float64      `cli:""        env:"PROBESEED_HEIGHT_ABOVE_SURFACE" help:"Height of probes above surfaces."`
	PlacementMask      int64        `cli:""        env:"PROBESEED_PLACEMENT_MASK"       help:"Bit mask of the collision layers used for placement."`
	DensityMask        int64        `cli:""        env:"PROBESEED_DENSITY_MASK"         help:"Bit mask of the collision layers used for density. Negative uses the placement mask."`
	AnalysisGridSize   float64      `cli:""        env:"PROBESEED_ANALYSIS_GRID_SIZE"   help:"Stride of the analysis grid."`
	FeatureFlags       []string     `cli:",hidden" env:"PROBESEED_FEATURE_FLAGS"        help:"Comma separated feature flags"`
	LogLevel           string       `cli:""        env:"PROBESEED_LOG_LEVEL"            help:"Log level (debug|info|warning|error)."`
	LogIndent          bool         `cli:""        env:"PROBESEED_LOG_INDENT"           help:"Indent logs."`
	Serve              bool         `cli:""        env:"PROBESEED_SERVE"                help:"Keep serving probes and generation requests after the first run."`
	Addr               string       `cli:""        env:"PROBESEED_ADDR"                 help:"Listening address for generation requests."`
	AdminAddr          string       `cli:""        env:"PROBESEED_ADMIN_ADDR"           help:"Admin listening address."`
	Events             eventsConfig `cli:",hidden" env:"-"                              help:"Event pusher configuration."`
	Version            bool         `cli:""        env:"-"                              help:"Show version."`
	Help               bool         `cli:""        env:"-"                              help:"Show help."`
}

type eventsConfig struct {
	Endpoint      string        `cli:",hidden" env:"PROBESEED_EVENTS_ENDPOINT"       help:"Endpoint to where events are pushed."`
	FlushInterval time.Duration `cli:",hidden" env:"PROBESEED_EVENTS_FLUSH_INTERVAL" help:"The duration between each event flush."`
	BatchSize     int           `cli:",hidden" env:"PROBESEED_EVENTS_BATCH_SIZE"     help:"The maximum number of events sent at once."`
	QueueSize     int           `cli:",hidden" env:"PROBESEED_EVENTS_QUEUE_SIZE"     help:"The size of the queue where events are stored."`
}

func main() {
	defaults := placement.DefaultParams()
	conf := config{
		MinProbeSpacing:    float64(defaults.MinProbeSpacing),
		MaxProbeSpacing:    float64(defaults.MaxProbeSpacing),
		DensityFalloff:     float64(defaults.DensityFalloff),
		HeightAboveSurface: float64(defaults.HeightAboveSurface),
		PlacementMask:      int64(defaults.PlacementMask),
		DensityMask:        -1,
		AnalysisGridSize:   float64(defaults.AnalysisGridSize),
		LogLevel:           logs.InfoLevel.String(),
		Addr:               ":4100",
		AdminAddr:          ":18191",
		Events: eventsConfig{
			FlushInterval: events.DefaultFlushInterval,
			BatchSize:     events.DefaultBatchSize,
			QueueSize:     events.DefaultQueueSize,
		},
	}

	// set the information gauge to 1, useful for SUM query
	infoGauge.Set(1)

	ctx, cancel := cli.ContextWithSignals(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cli.Register().
		Help("Generates adaptive light probes for a scene.").
		Options(&conf)
	cli.Load()

	if conf.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	logs.SetLevel(logs.ParseLevel(conf.LogLevel))
	logs.Encoder = json.Marshal
	if conf.LogIndent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}

	errors.Encoder = json.Marshal

	if err := validateConfig(conf); err != nil {
		logs.Fatal(err)
	}

	if conf.Events.Endpoint != "" {
		eventsPusher := events.Pusher{
			Endpoint:      conf.Events.Endpoint,
			FlushInterval: conf.Events.FlushInterval,
			BatchSize:     conf.Events.BatchSize,
			QueueSize:     conf.Events.QueueSize,
			Transport:     metrics.HTTPTransport(http.DefaultTransport),
		}
		go eventsPusher.Start()
		defer eventsPusher.Close()

		eventsLogger := events.Logger{
			Pusher:           &eventsPusher,
			SDKType:          "probeseed",
			SDKVersionFamily: version,
		}
		logs.SetLogger(eventsLogger.Log)
	}

	featureFlags := featureflag.New(conf.FeatureFlags)

	s, err := scene.LoadFile(conf.Scene)
	if err != nil {
		logs.Fatal(err)
	}

	debugInfo := s.DebugInfo()
	logs.WithTag("version", version).
		WithTag("scene", conf.Scene).
		WithTag("objects", s.Len()).
		WithTag("colliders", debugInfo.ColliderCount).
		WithTag("grid_resolution", debugInfo.Resolution).
		WithTag("grid_rows", debugInfo.RowCount).
		WithTag("grid_cols", debugInfo.ColCount).
		WithTag("grid_occupancy", debugInfo.Occupancy).
		WithTag("feature_flags", featureFlags.Strings()).
		Info("scene loaded")

	var sinks []placement.Sink

	if conf.Out != "" {
		fileSink, err := storage.NewFileSink(conf.Out)
		if err != nil {
			logs.Fatal(err)
		}
		sinks = append(sinks, fileSink)
	}

	if conf.DB != "" {
		store, err := storage.OpenStore(conf.DB, probeSetName(conf))
		if err != nil {
			logs.Fatal(err)
		}
		defer store.Close()

		store.FeatureFlags = featureFlags
		sinks = append(sinks, store)
	}

	var group *storage.ProbeGroup
	if conf.Plot != "" || conf.Serve {
		group = &storage.ProbeGroup{}
		sinks = append(sinks, group)
	}

	target := storage.NewTarget(sinks...)
	engine := placement.Engine{
		Geometry:     s,
		Params:       params(conf),
		Sink:         target,
		FeatureFlags: featureFlags,
	}

	report, err := engine.Run()
	if err != nil {
		logs.Fatal(err)
	}
	if group == nil {
		group = target.ProbeGroup()
	}

	if conf.Plot != "" {
		if err := preview.SaveTopDown(conf.Plot, group.Positions(), report.Bounds, s.RenderableBounds()); err != nil {
			logs.Warn(err)
		} else {
			logs.WithTag("path", conf.Plot).Info("probe preview saved")
		}
	}

	fmt.Printf("generated %v adaptive light probes\n", report.ProbeCount)

	if !conf.Serve {
		return
	}

	var service http.ServeMux
	service.Handle("/generate", probehttp.HandleWithCORS(probehttp.HandleGenerate(&engine)))
	service.Handle("/probes", probehttp.HandleWithCORS(probehttp.HandleProbes(group)))
	service.Handle("/health", probehttp.HandleWithCORS(http.HandlerFunc(probehttp.HandleHealthCheck)))
	service.Handle("/version", probehttp.HandleWithCORS(probehttp.HandleVersion(version)))

	readinessCheck := func() bool {
		return engine.State() == placement.StateIdle
	}
	service.Handle("/ready", probehttp.HandleWithCORS(probehttp.HandleReadyCheck(readinessCheck)))

	var admin http.ServeMux
	admin.Handle("/metrics", promhttp.Handler())
	admin.HandleFunc("/health", probehttp.HandleHealthCheck)
	admin.HandleFunc("/debug/pprof/", pprof.Index)
	admin.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	admin.HandleFunc("/debug/pprof/profile", pprof.Profile)
	admin.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	admin.HandleFunc("/debug/pprof/trace", pprof.Trace)
	admin.Handle("/debug/pprof/goroutine", pprof.Handler("goroutine"))
	admin.Handle("/debug/pprof/heap", pprof.Handler("heap"))
	admin.HandleFunc("/ready", probehttp.HandleReadyCheck(readinessCheck))

	logs.WithTag("version", version).
		WithTag("log_level", conf.LogLevel).
		WithTag("addr", conf.Addr).
		WithTag("admin_addr", conf.AdminAddr).
		Info("starting probeseed server")

	probehttp.ListenAndServe(ctx,
		probehttp.Server{
			Role: "service",
			Server: &http.Server{Addr: conf.Addr, Handler: metrics.HTTPHandler(&service,
				probehttp.MetricsPathFormatter)},
		},
		probehttp.Server{
			Role:   "admin",
			Server: &http.Server{Addr: conf.AdminAddr, Handler: &admin},
		},
	)
}

func params(conf config) placement.Params {
	p := placement.Params{
		MinProbeSpacing:    float32(conf.MinProbeSpacing),
		MaxProbeSpacing:    float32(conf.MaxProbeSpacing),
		DensityFalloff:     float32(conf.DensityFalloff),
		HeightAboveSurface: float32(conf.HeightAboveSurface),
		PlacementMask:      geometry.MaskFromInt(conf.PlacementMask),
		AnalysisGridSize:   float32(conf.AnalysisGridSize),
	}

	if conf.DensityMask >= 0 {
		densityMask := geometry.MaskFromInt(conf.DensityMask)
		p.DensityMask = &densityMask
	}
	return p
}

func probeSetName(conf config) string {
	if conf.SetName != "" {
		return conf.SetName
	}
	return strings.TrimSuffix(filepath.Base(conf.Scene), filepath.Ext(conf.Scene))
}

func validateConfig(conf config) error {
	if conf.Scene == "" {
		return errors.New("a scene file is required")
	}

	if conf.Serve && (conf.Addr == "" || conf.AdminAddr == "") {
		return errors.New("serving requires an address and an admin address").
			WithTag("addr", conf.Addr).
			WithTag("admin_addr", conf.AdminAddr)
	}

	return nil
}
