// Package observability exposes folio's Prometheus metrics.
package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	calendarRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "folio",
		Subsystem: "calendar",
		Name:      "requests_total",
		Help:      "Contribution calendars served, by data origin.",
	}, []string{"origin"})
	activityPages = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "folio",
		Subsystem: "activity",
		Name:      "pages_total",
		Help:      "Activity pages loaded, by data origin.",
	}, []string{"origin"})
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "folio",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests handled, by route and status code.",
	}, []string{"route", "code"})
	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "folio",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency, by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})
	githubRateRemaining = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "folio",
		Subsystem: "github",
		Name:      "rate_limit_remaining",
		Help:      "Remaining GitHub API requests in the current window.",
	})
)

func init() {
	prometheus.MustRegister(calendarRequests, activityPages, httpRequests, httpDuration, githubRateRemaining)
}

// RecordCalendar counts a served calendar.
func RecordCalendar(origin string) {
	calendarRequests.WithLabelValues(origin).Inc()
}

// RecordActivityPage counts a loaded activity page.
func RecordActivityPage(origin string) {
	activityPages.WithLabelValues(origin).Inc()
}

// RecordHTTP records one handled request. An empty route is reported as
// "unmatched" to keep label cardinality bounded.
func RecordHTTP(route string, code int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// RecordRateLimit updates the remaining-requests gauge.
func RecordRateLimit(remaining int) {
	if remaining < 0 {
		return
	}
	githubRateRemaining.Set(float64(remaining))
}
