// Package metrics provides Prometheus instrumentation for pricing and the
// HTTP surface.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"teetime/internal/domain/pricing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomePriced  = "priced"
	OutcomeBlocked = "blocked"

	SourceQuote    = "quote"
	SourcePurchase = "purchase"
)

var (
	// PricingResults counts engine evaluations by where they ran and whether the slot was sellable.
	PricingResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "teetime_pricing_results_total",
		Help: "Pricing engine evaluations",
	}, []string{"source", "outcome"})

	// FactorsApplied counts adjustments by factor code.
	FactorsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "teetime_pricing_factors_total",
		Help: "Price adjustments applied, by factor code",
	}, []string{"code"})

	PanicActivations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "teetime_pricing_panic_activations_total",
		Help: "Evaluations that switched panic mode on",
	})

	// DiscountRate tracks the distribution of final discount rates of sellable results.
	DiscountRate = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "teetime_pricing_discount_rate",
		Help:    "Final discount rate of priced results",
		Buckets: []float64{0, 0.05, 0.1, 0.15, 0.2, 0.25, 0.3, 0.35, 0.4},
	})

	WeatherCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "teetime_weather_cache_lookups_total",
		Help: "Weather cache lookups by result",
	}, []string{"result"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "teetime_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "teetime_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
	}, []string{"method", "path"})
)

// ObserveResult records one engine evaluation.
func ObserveResult(source string, result pricing.Result) {
	if result.IsBlocked {
		PricingResults.WithLabelValues(source, OutcomeBlocked).Inc()
		return
	}
	PricingResults.WithLabelValues(source, OutcomePriced).Inc()
	for _, f := range result.Factors {
		FactorsApplied.WithLabelValues(string(f.Code)).Inc()
	}
	if result.PanicMode.Active {
		PanicActivations.Inc()
	}
	DiscountRate.Observe(result.DiscountRate)
}

func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request metrics. The route template is used as the path
// label so ids do not explode cardinality.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
