package observability

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"route", "method"},
	)

	AIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_requests_total",
			Help: "Total number of AI requests by provider and operation",
		},
		[]string{"provider", "operation"},
	)
	AIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_request_duration_seconds",
			Help:    "AI request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"provider", "operation"},
	)

	GenerationRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_runs_total",
			Help: "Total number of assessment generation runs by outcome",
		},
		[]string{"outcome"},
	)
	GenerationAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_attempts_total",
			Help: "Total number of AI gateway attempts by outcome",
		},
		[]string{"outcome"},
	)
	QuestionsAcceptedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "questions_accepted_total",
			Help: "Total number of candidate questions accepted into results",
		},
	)
	QuestionsRejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "questions_rejected_total",
			Help: "Total number of candidate questions rejected by reason",
		},
		[]string{"reason"},
	)
	LedgerDeductionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_deductions_total",
			Help: "Total number of coin deduction attempts by outcome",
		},
		[]string{"outcome"},
	)

	// Distribution of accepted questions per successful run
	QuestionsPerRunHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "generation_questions_per_run",
			Help:    "Accepted questions per successful generation run",
			Buckets: []float64{3, 4, 5, 6, 7, 8, 9, 10},
		},
	)
)

func InitMetrics() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(AIRequestsTotal)
	prometheus.MustRegister(AIRequestDuration)
	prometheus.MustRegister(GenerationRunsTotal)
	prometheus.MustRegister(GenerationAttemptsTotal)
	prometheus.MustRegister(QuestionsAcceptedTotal)
	prometheus.MustRegister(QuestionsRejectedTotal)
	prometheus.MustRegister(LedgerDeductionsTotal)
	prometheus.MustRegister(QuestionsPerRunHistogram)
}

// HTTPMetricsMiddleware records Prometheus metrics for each request.
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		dur := time.Since(start).Seconds()
		// Route pattern may be unavailable outside chi router; guard nil
		var route string
		if rc := chi.RouteContext(r.Context()); rc != nil {
			route = rc.RoutePattern()
		}
		if route == "" {
			// fallback when route pattern is unavailable
			route = r.URL.Path
		}
		method := r.Method
		status := ww.Status()
		HTTPRequestsTotal.WithLabelValues(route, method, http.StatusText(status)).Inc()
		HTTPRequestDuration.WithLabelValues(route, method).Observe(dur)
	})
}

// ObserveRun records the outcome of one generation run.
func ObserveRun(outcome string, accepted int) {
	GenerationRunsTotal.WithLabelValues(outcome).Inc()
	if outcome == "success" {
		QuestionsPerRunHistogram.Observe(float64(accepted))
	}
}
