package status

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector exports a Registry to prometheus
// Bools and ints become gauges; strings become a labelled info gauge
type Collector struct {
	reg        *Registry
	namespace  string
	stringDesc *prometheus.Desc
}

// NewCollector creates a collector over reg
func NewCollector(reg *Registry, namespace string) *Collector {
	return &Collector{
		reg:       reg,
		namespace: namespace,
		stringDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "string_info"),
			"String-valued shell state",
			[]string{"key", "value"}, nil,
		),
	}
}

// Describe sends nothing, making this an unchecked collector: keys may be registered after Register
func (c *Collector) Describe(chan<- *prometheus.Desc) {}

// Collect implements prometheus.Collector
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.reg.Bools.Range(func(key string, v *atomic.Bool) {
		val := 0.0
		if v.Load() {
			val = 1
		}
		ch <- prometheus.MustNewConstMetric(c.desc(key), prometheus.GaugeValue, val)
	})
	c.reg.Ints.Range(func(key string, v *atomic.Int64) {
		ch <- prometheus.MustNewConstMetric(c.desc(key), prometheus.GaugeValue, float64(v.Load()))
	})
	c.reg.Strings.Range(func(key string, v *AtomicString) {
		ch <- prometheus.MustNewConstMetric(c.stringDesc, prometheus.GaugeValue, 1, key, v.Load())
	})
}

func (c *Collector) desc(key string) *prometheus.Desc {
	return prometheus.NewDesc(prometheus.BuildFQName(c.namespace, "", key), "Shell state "+key, nil, nil)
}
