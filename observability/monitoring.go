package observability

import (
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// MonitoringStats is the JSON body served on the health endpoint.
type MonitoringStats struct {
	Status            string    `json:"status"`
	StartedAt         time.Time `json:"started_at"`
	Rooms             int       `json:"rooms"`
	Sessions          int64     `json:"sessions"`
	CommandsProcessed uint64    `json:"commands_processed"`
	BroadcastsSent    uint64    `json:"broadcasts_sent"`
	AllocMemMb        uint64    `json:"alloc_mem_mb"`
	NumGC             uint32    `json:"num_gc"`
	RSSBytes          uint64    `json:"rss_bytes"`
	CPUPercent        float64   `json:"cpu_percent"`
	PidStatus         string    `json:"pid_status,omitempty"`
}

// MonitoringManager keeps cheap counters updated on the hot path and a
// snapshot refreshed by the heartbeat.
type MonitoringManager struct {
	log         *slog.Logger
	mu          sync.RWMutex
	latestStats MonitoringStats

	sessions   int64
	commands   uint64
	broadcasts uint64
}

func NewMonitoringManager(log *slog.Logger) *MonitoringManager {
	return &MonitoringManager{
		log:         log,
		latestStats: MonitoringStats{Status: "ok", StartedAt: time.Now().UTC()},
	}
}

func (mm *MonitoringManager) IncrSessions()   { atomic.AddInt64(&mm.sessions, 1) }
func (mm *MonitoringManager) DecrSessions()   { atomic.AddInt64(&mm.sessions, -1) }
func (mm *MonitoringManager) IncrCommands()   { atomic.AddUint64(&mm.commands, 1) }
func (mm *MonitoringManager) IncrBroadcasts() { atomic.AddUint64(&mm.broadcasts, 1) }

// Refresh stores the latest process figures along with the counters.
func (mm *MonitoringManager) Refresh(rooms int, rss uint64, cpuPercent float64, pidStatus string) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	mm.mu.Lock()
	defer mm.mu.Unlock()
	mm.latestStats.Rooms = rooms
	mm.latestStats.AllocMemMb = m.Alloc / 1024 / 1024
	mm.latestStats.NumGC = m.NumGC
	mm.latestStats.RSSBytes = rss
	mm.latestStats.CPUPercent = cpuPercent
	mm.latestStats.PidStatus = pidStatus

	mm.log.Debug("Stats refreshed",
		"rooms", rooms,
		"sessions", atomic.LoadInt64(&mm.sessions),
		"mem_mb", mm.latestStats.AllocMemMb,
	)
}

func (mm *MonitoringManager) GetLatest() MonitoringStats {
	mm.mu.RLock()
	stats := mm.latestStats
	mm.mu.RUnlock()

	stats.Sessions = atomic.LoadInt64(&mm.sessions)
	stats.CommandsProcessed = atomic.LoadUint64(&mm.commands)
	stats.BroadcastsSent = atomic.LoadUint64(&mm.broadcasts)
	return stats
}
