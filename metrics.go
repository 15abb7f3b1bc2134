package orbitkit

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ticksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orbitkit_ticks_total",
		Help: "Total number of fleet ticks executed.",
	})

	crashesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orbitkit_crashes_total",
		Help: "Total number of satellites that crashed into the central body.",
	})

	timeScaleClamps = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orbitkit_time_scale_clamps_total",
		Help: "Total number of time-scale values clamped to a safety ceiling.",
	})

	liveSatellites = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "orbitkit_live_satellites",
		Help: "Number of tracked, non-crashed satellites.",
	})
)

func init() {
	prometheus.MustRegister(ticksTotal)
	prometheus.MustRegister(crashesTotal)
	prometheus.MustRegister(timeScaleClamps)
	prometheus.MustRegister(liveSatellites)
}

// MetricsHandler returns the Prometheus metrics HTTP handler.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
