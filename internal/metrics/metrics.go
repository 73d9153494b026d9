// Package metrics exposes a join or conversion run's storage.Stats as
// Prometheus gauges, served over HTTP for external scraping during a
// long-running batch job.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/blockjoin/engine/internal/storage"
)

// Registry mirrors a storage.Stats as a set of gauges under a single
// Prometheus registry, independent of the process-global default registry so
// multiple runs in the same process (e.g. a benchmark driver) never collide.
type Registry struct {
	reg   *prometheus.Registry
	stats *storage.Stats

	blockReads    prometheus.GaugeFunc
	blockWrites   prometheus.GaugeFunc
	outputRecords prometheus.GaugeFunc
	elapsedNanos  prometheus.GaugeFunc
	memoryUsage   prometheus.GaugeFunc
}

// NewRegistry builds a Registry that reads live values from stats on every
// scrape; it does not snapshot stats at construction time.
func NewRegistry(stats *storage.Stats) *Registry {
	r := &Registry{reg: prometheus.NewRegistry(), stats: stats}

	r.blockReads = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "blockjoin", Name: "block_reads_total", Help: "Blocks read from a table file.",
	}, func() float64 { return float64(stats.BlockReads()) })
	r.blockWrites = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "blockjoin", Name: "block_writes_total", Help: "Blocks written to a table file.",
	}, func() float64 { return float64(stats.BlockWrites()) })
	r.outputRecords = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "blockjoin", Name: "output_records_total", Help: "Records produced by a join.",
	}, func() float64 { return float64(stats.OutputRecords()) })
	r.elapsedNanos = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "blockjoin", Name: "elapsed_nanoseconds", Help: "Wall-clock run time of the last completed run.",
	}, func() float64 { return float64(stats.ElapsedNanos()) })
	r.memoryUsage = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "blockjoin", Name: "memory_usage_bytes", Help: "Reported memory usage: buffer pool size for BNLJ, an estimate for hash join.",
	}, func() float64 { return float64(stats.MemoryUsage()) })

	r.reg.MustRegister(r.blockReads, r.blockWrites, r.outputRecords, r.elapsedNanos, r.memoryUsage)
	return r
}

// Handler returns an http.Handler serving this registry's metrics in the
// Prometheus text exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
