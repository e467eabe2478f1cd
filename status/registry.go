// Package status holds the process-wide values derived from shell variables.
//
// Producers cache pointers at construction and store into them on every
// re-initialisation; readers anywhere in the shell load them without locking.
package status

import (
	"fmt"
	"sync/atomic"
)

// Registry is the central facade for derived values
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total values across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Strings.Count()
}

// Snapshot renders every value as a string, keyed by name
func (r *Registry) Snapshot() map[string]string {
	out := make(map[string]string, r.TotalCount())
	r.Bools.Range(func(key string, v *atomic.Bool) {
		out[key] = fmt.Sprint(v.Load())
	})
	r.Ints.Range(func(key string, v *atomic.Int64) {
		out[key] = fmt.Sprint(v.Load())
	})
	r.Strings.Range(func(key string, v *AtomicString) {
		out[key] = v.Load()
	})
	return out
}
