package metrics

import (
	vm "github.com/VictoriaMetrics/metrics"
)

// Counter is a counter metric.
type Counter struct {
	*metricBase
	*vm.Counter
}

// NewCounter registers a new counter metric.
func NewCounter(id string, labels map[string]string) (*Counter, error) {
	base, err := newMetricBase(id, labels)
	if err != nil {
		return nil, err
	}

	m := &Counter{
		metricBase: base,
	}
	m.Counter = m.set.NewCounter(m.LabeledID())

	if err := register(m); err != nil {
		return nil, err
	}
	return m, nil
}

// CurrentValue returns the current counter value.
func (c *Counter) CurrentValue() uint64 {
	return c.Get()
}
