package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

// Metrics holds the service's Prometheus collectors
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	LoginsTotal        *prometheus.CounterVec
	RegistrationsTotal prometheus.Counter
	QuotaRejections    *prometheus.CounterVec

	dbConnectionsOpen  prometheus.Gauge
	dbConnectionsInUse prometheus.Gauge
	dbConnectionsIdle  prometheus.Gauge
}

// New registers the service's collectors on the default registry
func New() *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskhub",
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "taskhub",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		LoginsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskhub",
				Name:      "logins_total",
				Help:      "Total number of login attempts",
			},
			[]string{"result"}, // success, failure, throttled
		),
		RegistrationsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: "taskhub",
				Name:      "tenant_registrations_total",
				Help:      "Total number of tenant registrations",
			},
		),
		QuotaRejections: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskhub",
				Name:      "quota_rejections_total",
				Help:      "Total number of creations rejected by tenant quotas",
			},
			[]string{"resource"}, // user, project
		),
		dbConnectionsOpen: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "taskhub",
				Name:      "db_connections_open",
				Help:      "Number of open database connections",
			},
		),
		dbConnectionsInUse: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "taskhub",
				Name:      "db_connections_in_use",
				Help:      "Number of database connections currently in use",
			},
		),
		dbConnectionsIdle: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "taskhub",
				Name:      "db_connections_idle",
				Help:      "Number of idle database connections",
			},
		),
	}
}

// Handler returns gin middleware recording per-request counters and latency.
// Paths are recorded by route template, not raw URL, to bound cardinality.
func (m *Metrics) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.RequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.RequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// WatchDBPool periodically exports database connection pool stats until the
// stop channel closes.
func (m *Metrics) WatchDBPool(db *gorm.DB, stop <-chan struct{}) {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			sqlDB, err := db.DB()
			if err != nil {
				continue
			}
			stats := sqlDB.Stats()
			m.dbConnectionsOpen.Set(float64(stats.OpenConnections))
			m.dbConnectionsInUse.Set(float64(stats.InUse))
			m.dbConnectionsIdle.Set(float64(stats.Idle))
		}
	}
}
