package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Статусы прогона импорта.
const (
	StatusSuccess = "success"
	StatusInvalid = "invalid"
	StatusFailed  = "failed"
)

var (
	ImportRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "xmlorders_import_runs_total",
			Help: "Number of import runs by outcome",
		},
		[]string{"status"}, // success|invalid|failed
	)
	ImportedRows = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "xmlorders_imported_rows_total",
			Help: "Number of rows committed by entity",
		},
		[]string{"entity"}, // orders|customers|products|line_items
	)
	ImportDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "xmlorders_import_duration_seconds",
			Help:    "Duration of a full import run",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 14),
		},
	)
	ImportNotifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "xmlorders_import_notifications_total",
			Help: "Import-completed events sent to Kafka",
		},
		[]string{"status"}, // sent|failed
	)
)

var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "xmlorders_cache_operations_total",
			Help: "Order view cache operations",
		},
		[]string{"op"}, // hit|miss|evicted|expired|purged
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "xmlorders_cache_size",
			Help: "Number of orders currently in cache",
		},
	)
)

var registerOnce sync.Once

// MustRegister — регистрирует метрики в глобальном реестре; повторный вызов безопасен.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ImportRuns, ImportedRows, ImportDuration, ImportNotifications, CacheOps, CacheSize)
	})
}

// WriteTextfile — сбрасывает текущее состояние реестра в файл для textfile-коллектора node_exporter.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
