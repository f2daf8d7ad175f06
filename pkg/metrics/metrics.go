package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP リクエスト遅延（秒）
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// チェンジログのファンアウト行数
	ChangelogFanoutCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "changelog_fanout_total",
			Help: "Total number of changelog rows fanned out, by event",
		},
		[]string{"event"},
	)
)

// RecordHTTPRequestDuration は HTTP リクエスト遅延を記録する
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// IncrementFanout はファンアウトしたチェンジログ行数を加算する
func IncrementFanout(event string, rows int) {
	if rows <= 0 {
		return
	}
	ChangelogFanoutCount.WithLabelValues(event).Add(float64(rows))
}
