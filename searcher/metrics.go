package searcher

import "time"

// SearchMetrics describes the work done for one decision.
type SearchMetrics struct {
	Duration     time.Duration
	Nodes        int64 // alpha-beta calls, leaves included
	Leaves       int64
	Playouts     int64
	FullPlayouts int64 // playouts that reached a terminal state
}

// MetricsCollector counts search work. Searches are sequential, so plain
// counters suffice.
type MetricsCollector interface {
	Start()
	AddNode()
	AddLeaf()
	AddPlayout(full bool)
	Complete() SearchMetrics
}

type metricsCollector struct {
	startTime time.Time
	now       func() time.Time
	metrics   SearchMetrics
}

// NewMetricsCollector counts search work and measures its duration with now.
func NewMetricsCollector(now func() time.Time) MetricsCollector {
	return &metricsCollector{now: now}
}

func (m *metricsCollector) Start() {
	m.startTime = m.now()
	m.metrics = SearchMetrics{}
}

func (m *metricsCollector) AddNode() {
	m.metrics.Nodes++
}

func (m *metricsCollector) AddLeaf() {
	m.metrics.Leaves++
}

func (m *metricsCollector) AddPlayout(full bool) {
	m.metrics.Playouts++
	if full {
		m.metrics.FullPlayouts++
	}
}

func (m *metricsCollector) Complete() SearchMetrics {
	metrics := m.metrics
	metrics.Duration = m.now().Sub(m.startTime)
	return metrics
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return noMetricsCollector{}
}

func (noMetricsCollector) Start()                  {}
func (noMetricsCollector) AddNode()                {}
func (noMetricsCollector) AddLeaf()                {}
func (noMetricsCollector) AddPlayout(bool)         {}
func (noMetricsCollector) Complete() SearchMetrics { return SearchMetrics{} }
