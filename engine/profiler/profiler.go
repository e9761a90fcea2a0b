package profiler

import (
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"
)

// Stats is one reporting window's worth of measurements.
type Stats struct {
	TicksPerSecond   float64
	ChangesPerSecond float64
	HeapMB           float64
	AllocRateMB      float64
	GCCount          uint32
	MaxPauseUs       uint64
}

// Profiler tracks tick rate, camera change rate and memory statistics.
// Tick is called from the tick loop; RecordChange may be called from any goroutine.
type Profiler struct {
	tickCount      int
	changes        atomic.Int64
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	logger         *slog.Logger
	last           Stats
}

// NewProfiler creates a new Profiler reporting once per second through slog.Default.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
		logger:         slog.Default(),
	}
}

// SetInterval changes the reporting interval.
//
// Parameters:
//   - interval: time between reports
func (p *Profiler) SetInterval(interval time.Duration) {
	p.updateInterval = interval
}

// RecordChange counts one camera change notification.
func (p *Profiler) RecordChange() {
	p.changes.Add(1)
}

// Last returns the stats from the most recent report.
func (p *Profiler) Last() Stats {
	return p.last
}

// Tick should be called once per engine tick.
// Logs statistics when the update interval has elapsed.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.tickCount++
	now := time.Now()
	elapsed := now.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	seconds := max(elapsed.Seconds(), time.Nanosecond.Seconds())
	runtime.ReadMemStats(&p.memStats)

	gcCount := p.memStats.NumGC
	var maxPauseUs uint64
	// PauseNs is a circular buffer of the last 256 pauses.
	startIdx := p.lastGCCount
	if gcCount-startIdx > 256 {
		startIdx = gcCount - 256
	}
	for i := startIdx; i < gcCount; i++ {
		if pause := p.memStats.PauseNs[i%256] / 1000; pause > maxPauseUs {
			maxPauseUs = pause
		}
	}

	p.last = Stats{
		TicksPerSecond:   float64(p.tickCount) / seconds,
		ChangesPerSecond: float64(p.changes.Swap(0)) / seconds,
		HeapMB:           float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB:      float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / seconds,
		GCCount:          gcCount,
		MaxPauseUs:       maxPauseUs,
	}

	p.logger.Info("profiler",
		"tps", p.last.TicksPerSecond,
		"changes_per_sec", p.last.ChangesPerSecond,
		"heap_mb", p.last.HeapMB,
		"alloc_rate_mb", p.last.AllocRateMB,
		"gc", gcCount,
		"max_pause_us", maxPauseUs,
	)

	p.tickCount = 0
	p.lastTime = now
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
