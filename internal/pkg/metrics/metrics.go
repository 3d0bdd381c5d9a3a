package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RecipesImported 成功匯入的食譜數，source 為 text、video、record 或 sheet
	RecipesImported = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chef_recipes_imported_total",
			Help: "Total number of recipes imported.",
		},
		[]string{"source"},
	)

	// ImportFailures 匯入失敗次數
	ImportFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chef_import_failures_total",
			Help: "Total number of failed recipe imports.",
		},
		[]string{"source", "reason"},
	)

	// AIRequests AI 呼叫次數，result 為 success、error 或 cache_hit
	AIRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chef_ai_requests_total",
			Help: "Total number of AI extraction requests.",
		},
		[]string{"model", "result"},
	)

	// AIRequestDuration AI 呼叫耗時
	AIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chef_ai_request_duration_seconds",
			Help:    "Duration of AI provider calls.",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 80},
		},
		[]string{"model"},
	)

	// AIQueueLength 等待中的 AI 請求數
	AIQueueLength = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "chef_ai_queue_length",
			Help: "Number of AI requests waiting for a worker.",
		},
	)

	// CatalogRefreshes 目錄重新載入次數
	CatalogRefreshes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chef_catalog_refreshes_total",
			Help: "Total number of catalog reloads from the store.",
		},
		[]string{"result"},
	)

	// CatalogRecipes 目前目錄中的食譜數
	CatalogRecipes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "chef_catalog_recipes",
			Help: "Number of recipes in the loaded catalog.",
		},
	)

	// HTTPRequests HTTP 請求數
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chef_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration HTTP 請求耗時
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chef_http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

func init() {
	prometheus.MustRegister(
		RecipesImported,
		ImportFailures,
		AIRequests,
		AIRequestDuration,
		AIQueueLength,
		CatalogRefreshes,
		CatalogRecipes,
		HTTPRequests,
		HTTPRequestDuration,
	)
}

// Handler /metrics 端點
func Handler() http.Handler {
	return promhttp.Handler()
}
