// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vidtube"

var (
	// HTTPRequestsTotal tracks handled HTTP requests.
	// Labels:
	//   - method: GET, POST, ...
	//   - route: chi route pattern, e.g. /api/v1/videos/{videoID}
	//   - code: response status code
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "code"},
	)

	// HTTPRequestDuration tracks request latency per route.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// CacheOperationsTotal tracks cache operations (get, set, delete).
	// Labels:
	//   - operation: get, set, delete
	//   - status: hit, miss, success, error
	//   - cache_type: redis
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Total number of cache operations",
		},
		[]string{"operation", "status", "cache_type"},
	)

	// DBQueriesTotal tracks database queries.
	// Labels:
	//   - query_type: select, insert, update, delete
	//   - table: videos, users, likes, ...
	DBQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "db_queries_total",
			Help:      "Total number of database queries",
		},
		[]string{"query_type", "table"},
	)

	// SingleflightRequestsTotal tracks singleflight behavior.
	// Labels:
	//   - result: initiated (new execution), shared (reused result)
	SingleflightRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "singleflight_requests_total",
			Help:      "Total number of singleflight requests",
		},
		[]string{"result"},
	)

	// LockAcquisitionsTotal tracks distributed lock attempts.
	// Labels:
	//   - status: acquired, failed
	LockAcquisitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lock_acquisitions_total",
			Help:      "Total number of distributed lock acquisition attempts",
		},
		[]string{"status"},
	)

	// StorageOperationsTotal tracks media store calls.
	// Labels:
	//   - operation: upload, delete
	//   - kind: video, image
	//   - status: success, error
	StorageOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_operations_total",
			Help:      "Total number of media store operations",
		},
		[]string{"operation", "kind", "status"},
	)

	// CleanupTasksTotal tracks asset cleanup tasks handled by the worker.
	// Labels:
	//   - result: deleted, retried, dead_lettered
	CleanupTasksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cleanup_tasks_total",
			Help:      "Total number of asset cleanup tasks processed",
		},
		[]string{"result"},
	)

	// QueueMessagesTotal tracks broker-side outcomes per queue.
	// Labels:
	//   - queue: queue name
	//   - outcome: published, acked, retried, dead_lettered, rejected
	QueueMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queue_messages_total",
			Help:      "Total number of queue messages by outcome",
		},
		[]string{"queue", "outcome"},
	)
)

// Cache operation status constants.
const (
	CacheStatusHit     = "hit"
	CacheStatusMiss    = "miss"
	CacheStatusSuccess = "success"
	CacheStatusError   = "error"
)

// Cache operation type constants.
const (
	CacheOpGet    = "get"
	CacheOpSet    = "set"
	CacheOpDelete = "delete"
)

// Cache type constants.
const (
	CacheTypeRedis = "redis"
)

// DB query type constants.
const (
	DBQuerySelect = "select"
	DBQueryInsert = "insert"
	DBQueryUpdate = "update"
	DBQueryDelete = "delete"
)

// Table name constants.
const (
	TableVideos        = "videos"
	TableUsers         = "users"
	TableLikes         = "likes"
	TableSubscriptions = "subscriptions"
	TableComments      = "comments"
	TablePlaylists     = "playlists"
	TableTweets        = "tweets"
)

// Singleflight result constants.
const (
	SingleflightInitiated = "initiated"
	SingleflightShared    = "shared"
)

// Lock status constants.
const (
	LockAcquired = "acquired"
	LockFailed   = "failed"
)

// Storage operation constants.
const (
	StorageOpUpload = "upload"
	StorageOpDelete = "delete"
	StatusSuccess   = "success"
	StatusError     = "error"
)

// Cleanup result constants.
const (
	CleanupDeleted      = "deleted"
	CleanupRetried      = "retried"
	CleanupDeadLettered = "dead_lettered"
)

// Queue outcome constants.
const (
	QueuePublished    = "published"
	QueueAcked        = "acked"
	QueueRetried      = "retried"
	QueueDeadLettered = "dead_lettered"
	QueueRejected     = "rejected"
)

// ObserveQuery increments DBQueriesTotal for a single statement.
func ObserveQuery(queryType, table string) {
	DBQueriesTotal.WithLabelValues(queryType, table).Inc()
}

// RegisterPoolGauges exposes database pool occupancy. stats is read on every scrape.
func RegisterPoolGauges(stats func() (acquired, idle, total int32)) {
	gauge := func(name, help string, pick func(acquired, idle, total int32) int32) {
		promauto.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		}, func() float64 {
			return float64(pick(stats()))
		})
	}

	gauge("db_pool_acquired_connections", "Connections currently in use", func(a, _, _ int32) int32 { return a })
	gauge("db_pool_idle_connections", "Idle connections in the pool", func(_, i, _ int32) int32 { return i })
	gauge("db_pool_total_connections", "Total connections in the pool", func(_, _, t int32) int32 { return t })
}
