// Package metrics exports execution counts and durations to Prometheus.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/devicelab-dev/khaos/pkg/engine"
)

// Status label values.
const (
	StatusPassed  = "passed"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// Listener is an engine.Listener recording every terminal node.
type Listener struct {
	// NodesTotal counts terminal nodes by kind and status.
	NodesTotal *prometheus.CounterVec
	// NodeDuration tracks the duration of finished nodes by kind.
	NodeDuration *prometheus.HistogramVec

	mu      sync.Mutex
	started map[string]time.Time
	now     func() time.Time
}

// NewListener registers the khaos collectors on reg.
func NewListener(reg prometheus.Registerer) *Listener {
	factory := promauto.With(reg)

	return &Listener{
		NodesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "khaos_nodes_total",
				Help: "Total number of executed nodes",
			},
			[]string{"kind", "status"},
		),
		NodeDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "khaos_node_duration_seconds",
				Help:    "Duration of executed nodes in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"kind"},
		),
		started: make(map[string]time.Time),
		now:     time.Now,
	}
}

// ExecutionStarted implements engine.Listener
func (l *Listener) ExecutionStarted(d engine.Descriptor) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.started[d.UniqueID().String()] = l.now()
}

// ExecutionSkipped implements engine.Listener
func (l *Listener) ExecutionSkipped(d engine.Descriptor, _ string) {
	l.NodesTotal.WithLabelValues(d.Kind().String(), StatusSkipped).Inc()
}

// ExecutionFinished implements engine.Listener
func (l *Listener) ExecutionFinished(d engine.Descriptor, result engine.ExecutionResult) {
	status := StatusPassed
	if result.Status == engine.StatusFailed {
		status = StatusFailed
	}
	l.NodesTotal.WithLabelValues(d.Kind().String(), status).Inc()

	l.mu.Lock()
	id := d.UniqueID().String()
	start, ok := l.started[id]
	delete(l.started, id)
	now := l.now()
	l.mu.Unlock()

	if ok {
		l.NodeDuration.WithLabelValues(d.Kind().String()).Observe(now.Sub(start).Seconds())
	}
}

// WriteTextfile writes every metric gathered by g to path in the text
// exposition format read by the node exporter textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
