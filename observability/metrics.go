package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "billiard_live"

// Metrics exposes the hub's Prometheus collectors.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	rooms           prometheus.Gauge
	sessions        *prometheus.GaugeVec
	commands        *prometheus.CounterVec
	commandDuration *prometheus.HistogramVec
	broadcasts      *prometheus.CounterVec
	evictions       prometheus.Counter
	rejections      *prometheus.CounterVec
	restarts        *prometheus.CounterVec
	rss             prometheus.Gauge
	cpu             prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		rooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "rooms_active",
			Help: "Match rooms currently alive.",
		}),
		sessions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "sessions_active",
			Help: "Connected sessions by role.",
		}, []string{"role"}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "commands_total",
			Help: "Scorekeeper commands processed, by action and result.",
		}, []string{"action", "result"}),
		commandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "command_duration_seconds",
			Help:    "Time spent applying one command inside its room.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}, []string{"action"}),
		broadcasts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "broadcasts_total",
			Help: "Messages fanned out to rooms, by type.",
		}, []string{"type"}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "sessions_evicted_total",
			Help: "Sessions dropped because their outbound buffer was full.",
		}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "auth_rejections_total",
			Help: "Scorekeeper handshakes rejected, by reason.",
		}, []string{"reason"}),
		restarts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "worker_restarts_total",
			Help: "Supervised worker restarts after a crash.",
		}, []string{"worker"}),
		rss: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "process_rss_bytes",
			Help: "Resident memory reported by the heartbeat.",
		}),
		cpu: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "process_cpu_percent",
			Help: "CPU usage reported by the heartbeat.",
		}),
	}
	reg.MustRegister(m.rooms, m.sessions, m.commands, m.commandDuration, m.broadcasts,
		m.evictions, m.rejections, m.restarts, m.rss, m.cpu)
	return m
}

func (m *Metrics) RoomOpened() {
	if m != nil {
		m.rooms.Inc()
	}
}

func (m *Metrics) RoomClosed() {
	if m != nil {
		m.rooms.Dec()
	}
}

func (m *Metrics) SessionOpened(role string) {
	if m != nil {
		m.sessions.WithLabelValues(role).Inc()
	}
}

func (m *Metrics) SessionClosed(role string) {
	if m != nil {
		m.sessions.WithLabelValues(role).Dec()
	}
}

func (m *Metrics) CommandApplied(action string, success bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	result := "ok"
	if !success {
		result = "failed"
	}
	m.commands.WithLabelValues(action, result).Inc()
	m.commandDuration.WithLabelValues(action).Observe(elapsed.Seconds())
}

func (m *Metrics) Broadcast(messageType string) {
	if m != nil {
		m.broadcasts.WithLabelValues(messageType).Inc()
	}
}

func (m *Metrics) SessionEvicted() {
	if m != nil {
		m.evictions.Inc()
	}
}

func (m *Metrics) AuthRejected(reason string) {
	if m != nil {
		m.rejections.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) WorkerRestarted(worker string) {
	if m != nil {
		m.restarts.WithLabelValues(worker).Inc()
	}
}

func (m *Metrics) ProcessStats(rss uint64, cpuPercent float64) {
	if m == nil {
		return
	}
	m.rss.Set(float64(rss))
	m.cpu.Set(cpuPercent)
}
