// Package metrics exposes engine observability as Prometheus collectors,
// grounded on _examples/etalazz-vsa's
// internal/ratelimiter/telemetry/churn/prom_counters.go: package-level
// counters/histograms registered once at init, a tiny opt-in HTTP endpoint,
// and hot-path Observe* functions that always update the collectors; the
// values are only exposed over HTTP once Serve is called.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	halfCyclesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sim6502_half_cycles_total",
		Help: "Total half-cycles executed by the engine (§4.7 Step calls)",
	})
	worklistPasses = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sim6502_worklist_passes",
		Help:    "Number of ping-pong worklist passes per drive() call (§4.4)",
		Buckets: []float64{1, 2, 4, 8, 16, 32, 50},
	})
	propagationCappedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sim6502_propagation_capped_total",
		Help: "Total drive() calls that exceeded the worklist iteration cap (§9)",
	})
	imageLoadFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sim6502_image_load_failures_total",
		Help: "Total ROM image load failures at host startup (§7 ImageLoadFailure)",
	})
)

func init() {
	prometheus.MustRegister(halfCyclesTotal, worklistPasses, propagationCappedTotal, imageLoadFailuresTotal)
}

// ObserveStep should be called once per engine.Sim.Step.
func ObserveStep() {
	halfCyclesTotal.Inc()
}

// ObserveWorklistPasses records how many passes a single drive() call took.
func ObserveWorklistPasses(passes int) {
	worklistPasses.Observe(float64(passes))
}

// ObservePropagationCapped should be called from a Sim's Diagnostic hook
// when it receives engine.ErrPropagationCapped.
func ObservePropagationCapped() {
	propagationCappedTotal.Inc()
}

// ObserveImageLoadFailure should be called when memory.LoadROM returns
// memory.ErrImageLoad.
func ObserveImageLoadFailure() {
	imageLoadFailuresTotal.Inc()
}

// Serve exposes /metrics on addr in a background goroutine, mirroring the
// teacher's startMetricsEndpoint helper.
func Serve(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		_ = server.ListenAndServe()
	}()
}
