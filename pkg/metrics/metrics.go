package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Define global variables for metrics.
// We use 'promauto' which automatically registers metrics without complex initialization.

var (
	// 1. HTTP Requests Total (Counter)
	// Counts how many requests arrive, labeled by method, path, and status code.
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lexvek_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"}, // Labels
	)

	// 2. HTTP Request Duration (Histogram)
	// Measures server response time. Queries are in-memory matrix scans, so
	// the buckets lean toward the fast end.
	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lexvek_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		},
		[]string{"method", "path"},
	)

	// 3. Vocabulary size (Gauge)
	// Tracks how many words the served model knows.
	VocabularyWords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lexvek_vocabulary_words",
			Help: "Number of words in the served model's vocabulary",
		},
	)

	// 4. Similarity queries (Counter)
	// Counts model queries by kind (similar, analogy, vector).
	ModelQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lexvek_model_queries_total",
			Help: "Total number of model queries served",
		},
		[]string{"kind"},
	)
)
