package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	UsersRegistered  prometheus.Counter
	LoginFailures    prometheus.Counter
	PortfolioAdded   prometheus.Counter
	PortfolioRemoved prometheus.Counter
	RateLimited      prometheus.Counter
	QuoteCacheHits   prometheus.Counter
	QuoteCacheMisses prometheus.Counter
}

// New creates the metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "stockfolio_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stockfolio_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		UsersRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "stockfolio_users_registered_total",
			Help: "Total number of users registered",
		}),
		LoginFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "stockfolio_login_failures_total",
			Help: "Total number of rejected logins",
		}),
		PortfolioAdded: factory.NewCounter(prometheus.CounterOpts{
			Name: "stockfolio_portfolio_entries_added_total",
			Help: "Total number of stocks added to portfolios",
		}),
		PortfolioRemoved: factory.NewCounter(prometheus.CounterOpts{
			Name: "stockfolio_portfolio_entries_removed_total",
			Help: "Total number of stocks removed from portfolios",
		}),
		RateLimited: factory.NewCounter(prometheus.CounterOpts{
			Name: "stockfolio_rate_limited_requests_total",
			Help: "Total number of requests rejected by the rate limiter",
		}),
		QuoteCacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "stockfolio_quote_cache_hits_total",
			Help: "Total number of market quotes served from cache",
		}),
		QuoteCacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "stockfolio_quote_cache_misses_total",
			Help: "Total number of market quotes fetched upstream",
		}),
	}
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// The helpers below are safe on a nil *Metrics so callers without metrics
// need no guards.

func (m *Metrics) IncrementUsersRegistered() {
	if m != nil {
		m.UsersRegistered.Inc()
	}
}

func (m *Metrics) IncrementLoginFailures() {
	if m != nil {
		m.LoginFailures.Inc()
	}
}

func (m *Metrics) IncrementPortfolioAdded() {
	if m != nil {
		m.PortfolioAdded.Inc()
	}
}

func (m *Metrics) IncrementPortfolioRemoved() {
	if m != nil {
		m.PortfolioRemoved.Inc()
	}
}

func (m *Metrics) IncrementRateLimited() {
	if m != nil {
		m.RateLimited.Inc()
	}
}

func (m *Metrics) IncrementQuoteCacheHits() {
	if m != nil {
		m.QuoteCacheHits.Inc()
	}
}

func (m *Metrics) IncrementQuoteCacheMisses() {
	if m != nil {
		m.QuoteCacheMisses.Inc()
	}
}
