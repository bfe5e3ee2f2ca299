package metrics

import (
	"sync/atomic"
	"time"
)

// Collector keeps in-process request counters for the dashboard's
// /metrics endpoint.
type Collector struct {
	totalRequests     uint64
	errorRequests     uint64
	settlementWrites  uint64
	settlementRejects uint64
	totalDurationMs   uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

// RecordSettlement counts settlement attempts; rejected covers
// validation failures that blocked the write.
func (c *Collector) RecordSettlement(rejected bool) {
	if rejected {
		atomic.AddUint64(&c.settlementRejects, 1)
		return
	}
	atomic.AddUint64(&c.settlementWrites, 1)
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":          total,
		"errorsTotal":            atomic.LoadUint64(&c.errorRequests),
		"settlementsTotal":       atomic.LoadUint64(&c.settlementWrites),
		"settlementsRejected":    atomic.LoadUint64(&c.settlementRejects),
		"avgRequestDurationMs":   avg,
		"totalRequestDurationMs": totalMs,
	}
}
