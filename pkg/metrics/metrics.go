// Package metrics provides Prometheus instrumentation for the store.
//
// Repositories time every persistence call, the cart service counts the rows
// it inserts or updates, and checkout counts outcomes. `store metrics` (or
// METRICS_ADDR on `store shop`) exposes the registry over HTTP:
//
//	curl http://localhost:9100/metrics
package metrics

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/middleware"
)

const namespace = "grocerystore"

var (
	// StoreOpDuration tracks persistence latency per collection and operation.
	StoreOpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operation_duration_seconds",
			Help:      "Duration of persistence operations in seconds.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .5, 1},
		},
		[]string{"collection", "operation"},
	)

	// StoreOpErrors counts failed persistence operations.
	StoreOpErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operation_errors_total",
			Help:      "Total failed persistence operations.",
		},
		[]string{"collection", "operation"},
	)

	// CartRows counts cart rows written by consolidation.
	CartRows = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cart",
			Name:      "rows_total",
			Help:      "Cart rows written during consolidation.",
		},
		[]string{"action"}, // "inserted" | "updated"
	)

	// Checkouts counts checkout outcomes.
	Checkouts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "checkout",
			Name:      "total",
			Help:      "Checkouts by outcome.",
		},
		[]string{"status"}, // "paid" | "cancelled" | "nothing_to_pay" | "failed"
	)

	// Revenue accumulates paid totals in the base currency.
	Revenue = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "checkout",
		Name:      "revenue_sek_total",
		Help:      "Sum of paid checkout totals in SEK.",
	})

	// CacheHits / CacheMisses track catalogue cache effectiveness.
	CacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total catalogue cache hits.",
	})
	CacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Total catalogue cache misses.",
	})
)

// DefaultRegistry is the registry every store metric is registered on.
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	DefaultRegistry.MustRegister(collectors.NewGoCollector())
	DefaultRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	DefaultRegistry.MustRegister(
		StoreOpDuration,
		StoreOpErrors,
		CartRows,
		Checkouts,
		Revenue,
		CacheHits,
		CacheMisses,
	)
}

// ObserveStoreOp records a persistence call:
//
//	defer metrics.ObserveStoreOp("products", "find_all", time.Now(), &err)
func ObserveStoreOp(collection, operation string, start time.Time, errp *error) {
	StoreOpDuration.WithLabelValues(collection, operation).Observe(time.Since(start).Seconds())
	if errp != nil && *errp != nil {
		StoreOpErrors.WithLabelValues(collection, operation).Inc()
	}
}

// Handler exposes the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{})
}

// Router mounts /metrics and /healthz. ping reports store health.
func Router(ping func(r *http.Request) error) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(middleware.AccessLog)

	r.Method(http.MethodGet, "/metrics", Handler())
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if ping != nil {
			if err := ping(req); err != nil {
				http.Error(w, err.Error(), http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}
