// Package metrics khai báo các Prometheus collectors của service.
// Expose qua GET /metrics ở cmd/server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// CycleRuns đếm số chu kỳ ingest theo kết quả (success/error)
	CycleRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agent_cycle_runs_total",
		Help: "Tổng số chu kỳ ingest đã chạy, phân theo kết quả.",
	}, []string{"result"})

	// PostsIngested đếm tổng số bài mới được ghi vào kho
	PostsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agent_posts_ingested_total",
		Help: "Tổng số bài Reddit mới được ingest.",
	})

	// CycleDuration đo thời gian chạy một chu kỳ ingest
	CycleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "agent_cycle_duration_seconds",
		Help:    "Thời gian chạy một chu kỳ ingest.",
		Buckets: prometheus.DefBuckets,
	})

	// HTTPRequests đếm request theo method, path và status code
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Tổng số HTTP request, phân theo method, path và status.",
	}, []string{"method", "path", "status"})
)

// Handler trả về HTTP handler expose metrics theo định dạng Prometheus
func Handler() http.Handler {
	return promhttp.Handler()
}
