// The metrics package defines the prometheus collectors that record decode
// outcomes.
package metrics

import (
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "unmaterial"

	kindLabelName    = "kind"
	outcomeLabelName = "outcome"
)

// Outcomes of decoding one export.
const (
	// OutcomeOK is a complete decode without diagnostics.
	OutcomeOK = "ok"
	// OutcomeWarned is a complete decode with diagnostics.
	OutcomeWarned = "warned"
	// OutcomePartial is a decode stopped early by corrupt data.
	OutcomePartial = "partial"
	// OutcomeUnsupported is an export whose class is not decodable.
	OutcomeUnsupported = "unsupported"
	// OutcomeInvalid is an export whose byte range lies outside of the
	// package.
	OutcomeInvalid = "invalid"
)

// Decode holds the collectors of one decoding client. Collectors are created
// unregistered, so that independent clients and tests do not conflict.
type Decode struct {
	Objects           *prometheus.CounterVec
	SkippedBytes      prometheus.Counter
	UnknownProperties prometheus.Counter
	Duration          prometheus.Histogram
}

// NewDecode returns a new set of decode collectors.
func NewDecode() *Decode {
	return &Decode{
		Objects: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "objects_total",
				Help:      "number of decoded exports by kind and outcome",
			}, []string{kindLabelName, outcomeLabelName}),
		SkippedBytes: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "skipped_bytes_total",
				Help:      "number of object bytes jumped over to reach a stopper",
			}),
		UnknownProperties: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "unknown_properties_total",
				Help:      "number of properties skipped because no kind declares them",
			}),
		Duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "package_decode_seconds",
				Help:      "time taken to decode every export of a package",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 16),
			}),
	}
}

// Collectors returns every collector of m.
func (m *Decode) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.Objects, m.SkippedBytes, m.UnknownProperties, m.Duration}
}

// Register registers every collector of m with r.
func (m *Decode) Register(r prometheus.Registerer) error {
	for _, c := range m.Collectors() {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Flatten gathers the metrics of g into a map keyed by metric name and
// labels, such as `unmaterial_objects_total{kind="Texture",outcome="ok"}`.
// Counters map to their value, and histograms to their sample count.
func Flatten(g prometheus.Gatherer) (map[string]float64, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, err
	}
	m := map[string]float64{}
	for _, f := range families {
		for _, metric := range f.GetMetric() {
			var b strings.Builder
			b.WriteString(f.GetName())
			if labels := metric.GetLabel(); len(labels) > 0 {
				b.WriteByte('{')
				for i, l := range labels {
					if i > 0 {
						b.WriteByte(',')
					}
					fmt.Fprintf(&b, "%s=%q", l.GetName(), l.GetValue())
				}
				b.WriteByte('}')
			}
			switch {
			case metric.GetCounter() != nil:
				m[b.String()] = metric.GetCounter().GetValue()
			case metric.GetHistogram() != nil:
				m[b.String()] = float64(metric.GetHistogram().GetSampleCount())
			case metric.GetGauge() != nil:
				m[b.String()] = metric.GetGauge().GetValue()
			}
		}
	}
	return m, nil
}
