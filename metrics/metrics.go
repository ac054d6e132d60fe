// Package metrics holds the Prometheus collectors for the filesystem API:
//
// - operations by kind (counter): put/get/delete/list/getMetadata
// - operation failures by kind and error Kind (counter)
// - registry-write retries (counter)
// - fresh-write cache hit/miss (counter)
// - operation latency (histogram)
package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	prometheus.MustRegister(OperationsTotal)
	prometheus.MustRegister(OperationErrorsTotal)
	prometheus.MustRegister(RegistryRetriesTotal)
	prometheus.MustRegister(CacheResultTotal)
	prometheus.MustRegister(OperationDuration)
	prometheus.MustRegister(HamtShardedDirectories)
}

var OperationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "s5_operations_total",
		Help: "Filesystem API operations by kind (put/get/delete/list/getMetadata).",
	},
	[]string{"operation"},
)

var OperationErrorsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "s5_operation_errors_total",
		Help: "Filesystem API operations that failed, by kind and error Kind.",
	},
	[]string{"operation", "kind"},
)

var RegistryRetriesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "s5_registry_retries_total",
		Help: "Registry-write retries after a revision-too-low rejection.",
	},
	[]string{"outcome"}, // "retried", "conflict"
)

var CacheResultTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "s5_cache_result_total",
		Help: "Fresh-write cache lookups by cache name and result.",
	},
	[]string{"cache", "result"}, // result: "hit", "miss"
)

var OperationDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "s5_operation_duration_seconds",
		Help: "Filesystem API operation latency.",
	},
	[]string{"operation"},
)

var HamtShardedDirectories = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "s5_hamt_sharded_directories",
		Help: "Directories currently encoded as a HAMT root, by client instance.",
	},
	[]string{"client"},
)
