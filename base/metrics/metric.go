package metrics

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
	"sync"

	vm "github.com/VictoriaMetrics/metrics"
)

// PrometheusFormatRequirement is required format defined by prometheus for
// metric and label names.
const (
	prometheusBaseFormt         = "[a-zA-Z_][a-zA-Z0-9_]*"
	PrometheusFormatRequirement = "^" + prometheusBaseFormt + "$"
)

var (
	prometheusFormat = regexp.MustCompile(PrometheusFormatRequirement)

	registry     = make(map[string]Metric)
	registryLock sync.RWMutex

	metricNamespace string

	// ErrAlreadyRegistered is returned when a metric with the same labeled ID
	// is registered twice.
	ErrAlreadyRegistered = errors.New("metric already registered")
)

// Metric represents one or more metrics.
type Metric interface {
	ID() string
	LabeledID() string
	WritePrometheus(w io.Writer)
}

type metricBase struct {
	Identifier        string
	Labels            map[string]string
	LabeledIdentifier string
	set               *vm.Set
}

// SetNamespace sets the namespace that is prefixed to all metric IDs
// registered afterwards.
func SetNamespace(namespace string) error {
	if namespace != "" && !prometheusFormat.MatchString(namespace) {
		return fmt.Errorf("metric namespace %q must match %s", namespace, PrometheusFormatRequirement)
	}

	registryLock.Lock()
	defer registryLock.Unlock()

	metricNamespace = namespace
	return nil
}

func newMetricBase(id string, labels map[string]string) (*metricBase, error) {
	// Check formats.
	if !prometheusFormat.MatchString(strings.ReplaceAll(id, "/", "_")) {
		return nil, fmt.Errorf("metric name %q must match %s", id, PrometheusFormatRequirement)
	}
	for labelName := range labels {
		if !prometheusFormat.MatchString(labelName) {
			return nil, fmt.Errorf("metric label name %q must match %s", labelName, PrometheusFormatRequirement)
		}
	}

	base := &metricBase{
		Identifier: id,
		Labels:     labels,
		set:        vm.NewSet(),
	}
	base.LabeledIdentifier = base.buildLabeledID()
	return base, nil
}

// ID returns the given ID of the metric.
func (m *metricBase) ID() string {
	return m.Identifier
}

// LabeledID returns the Prometheus-compatible labeled ID of the metric.
func (m *metricBase) LabeledID() string {
	return m.LabeledIdentifier
}

// WritePrometheus writes the metric in the prometheus format to the given writer.
func (m *metricBase) WritePrometheus(w io.Writer) {
	m.set.WritePrometheus(w)
}

func (m *metricBase) buildLabeledID() string {
	registryLock.RLock()
	namespace := metricNamespace
	registryLock.RUnlock()

	metricID := strings.TrimSpace(strings.ReplaceAll(m.Identifier, "/", "_"))
	if namespace != "" {
		metricID = namespace + "_" + metricID
	}

	if len(m.Labels) == 0 {
		return metricID
	}

	// Sort labels to make the labeled ID reproducible.
	labels := make([]string, 0, len(m.Labels))
	for labelName, labelValue := range m.Labels {
		labels = append(labels, fmt.Sprintf("%s=%q", labelName, labelValue))
	}
	sort.Strings(labels)

	return fmt.Sprintf("%s{%s}", metricID, strings.Join(labels, ","))
}

func register(m Metric) error {
	registryLock.Lock()
	defer registryLock.Unlock()

	if _, ok := registry[m.LabeledID()]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, m.LabeledID())
	}
	registry[m.LabeledID()] = m
	return nil
}

// WritePrometheus writes all registered metrics in the prometheus text
// format to the given writer, sorted by their labeled ID.
func WritePrometheus(w io.Writer) {
	registryLock.RLock()
	all := make([]Metric, 0, len(registry))
	for _, m := range registry {
		all = append(all, m)
	}
	registryLock.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		return all[i].LabeledID() < all[j].LabeledID()
	})
	for _, m := range all {
		m.WritePrometheus(w)
	}
}
