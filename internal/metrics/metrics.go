package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pausepad/internal/model"
	"pausepad/internal/timer"
)

// Timer exports countdown activity as Prometheus metrics. One instance is
// shared by every controller of a process.
type Timer struct {
	registry  *prometheus.Registry
	completed *prometheus.CounterVec
	sessions  *prometheus.CounterVec
	seconds   *prometheus.CounterVec
	running   prometheus.Gauge
}

func NewTimer() *Timer {
	m := &Timer{
		registry: prometheus.NewRegistry(),
		completed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pausepad",
			Name:      "intervals_completed_total",
			Help:      "Intervals that counted down to zero, by mode.",
		}, []string{"mode"}),
		sessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pausepad",
			Name:      "sessions_closed_total",
			Help:      "Session records closed, by mode and outcome.",
		}, []string{"mode", "outcome"}),
		seconds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pausepad",
			Name:      "countdown_seconds_total",
			Help:      "Seconds counted down, by mode.",
		}, []string{"mode"}),
		running: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pausepad",
			Name:      "timers_running",
			Help:      "Timers currently counting down.",
		}),
	}
	m.registry.MustRegister(
		m.completed,
		m.sessions,
		m.seconds,
		m.running,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Observer returns a per-controller observer. It tracks whether its own
// timer is running so the shared gauge stays consistent.
func (m *Timer) Observer() timer.Observer {
	running := false
	return timer.ObserverFunc(func(event timer.Event) {
		switch event.Type {
		case timer.EventTick:
			m.seconds.WithLabelValues(string(event.State.Mode)).Inc()
		case timer.EventIntervalCompleted:
			// The final second completes the interval instead of emitting a tick.
			m.seconds.WithLabelValues(string(event.Mode)).Inc()
			m.completed.WithLabelValues(string(event.Mode)).Inc()
		case timer.EventSessionClosed:
			if event.Record != nil {
				m.sessions.WithLabelValues(string(event.Record.Mode), outcome(*event.Record)).Inc()
			}
		}

		now := event.State.Status == model.StatusRunning
		if now != running {
			running = now
			if now {
				m.running.Inc()
			} else {
				m.running.Dec()
			}
		}
	})
}

func (m *Timer) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Timer) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func outcome(record model.SessionRecord) string {
	if record.Completed {
		return "completed"
	}
	return "interrupted"
}
