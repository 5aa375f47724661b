package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests        *prometheus.CounterVec
	CounterRoutinesSaved   *prometheus.CounterVec
	CounterRoutinesDeleted *prometheus.CounterVec
	CounterStoreFallbacks  *prometheus.CounterVec
	CounterDraftsCreated   prometheus.Counter
	CounterRequestPanics   prometheus.Counter

	// gauges
	GaugeOpenDrafts prometheus.Gauge

	// histograms
	HistogramRequestDuration *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager("fitbuilder", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("fitbuilder", "test_server", reg), reg
}

// NewRegistry returns a registry carrying build info, Go runtime and
// process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "status"})
	counterRoutinesSaved := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "routines_saved",
		Help:      "The total number of saved routines",
	}, []string{"backend"})
	counterRoutinesDeleted := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "routines_deleted",
		Help:      "The total number of deleted routines",
	}, []string{"backend"})
	counterStoreFallbacks := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "routine_store_fallbacks",
		Help:      "Loads that found unreadable routine data and used an empty collection",
	}, []string{"reason"})
	counterDraftsCreated := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "drafts_created",
		Help:      "The total number of routine drafts started",
	})

	counterRequestPanics := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "handle_request_panic",
		Help:      "The total number of serve request panics",
	})

	gaugeOpenDrafts := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "open_drafts",
		Help:      "Current number of routine drafts held in memory",
	})

	histogramRequestDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_duration_seconds",
		Help:      "Histogram of response time for requests in seconds",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"route", "method", "status_code"})

	return &Manager{
		CounterRequests:          counterRequests,
		CounterRoutinesSaved:     counterRoutinesSaved,
		CounterRoutinesDeleted:   counterRoutinesDeleted,
		CounterStoreFallbacks:    counterStoreFallbacks,
		CounterDraftsCreated:     counterDraftsCreated,
		CounterRequestPanics:     counterRequestPanics,
		GaugeOpenDrafts:          gaugeOpenDrafts,
		HistogramRequestDuration: histogramRequestDuration,
	}
}

// StoreFallbackHook counts unreadable routine data by reason.
func (m *Manager) StoreFallbackHook() func(key, reason string) {
	return func(_, reason string) {
		m.CounterStoreFallbacks.WithLabelValues(reason).Inc()
	}
}
