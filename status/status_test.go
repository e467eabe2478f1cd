package status

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricMapGetReturnsStablePointer(t *testing.T) {
	m := NewMetricMap[atomic.Bool]()
	a := m.Get("x")
	b := m.Get("x")
	assert.Same(t, a, b)
	assert.True(t, m.Has("x"))
	assert.False(t, m.Has("y"))
	assert.Equal(t, 1, m.Count())
}

func TestMetricMapConcurrentGet(t *testing.T) {
	m := NewMetricMap[atomic.Int64]()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Get("shared").Add(1)
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(32), m.Get("shared").Load())
	assert.Equal(t, 1, m.Count())
}

func TestMetricMapRangeSorted(t *testing.T) {
	m := NewMetricMap[atomic.Bool]()
	m.Get("c")
	m.Get("a")
	m.Get("b")

	var keys []string
	m.Range(func(key string, _ *atomic.Bool) { keys = append(keys, key) })
	assert.Equal(t, []string{"a", "b", "c"}, keys)
	assert.Equal(t, keys, m.Keys())
}

func TestAtomicString(t *testing.T) {
	var s AtomicString
	assert.Equal(t, "", s.Load())
	s.Store("a long history session name that exceeds twenty bytes")
	assert.Equal(t, "a long history session name that exceeds twenty bytes", s.Load())
}

func TestRegistrySnapshot(t *testing.T) {
	r := NewRegistry()
	r.Bools.Get("term_has_xn").Store(true)
	r.Ints.Get("read_byte_limit").Store(42)
	r.Strings.Get("history_session").Store("fish")

	assert.Equal(t, 3, r.TotalCount())
	assert.Equal(t, map[string]string{
		"term_has_xn":     "true",
		"read_byte_limit": "42",
		"history_session": "fish",
	}, r.Snapshot())
}

func TestCollector(t *testing.T) {
	r := NewRegistry()
	r.Bools.Get("can_set_title").Store(true)
	r.Ints.Get("color_support").Store(3)

	promReg := prometheus.NewRegistry()
	require.NoError(t, promReg.Register(NewCollector(r, "shellcore")))

	// Keys registered after Register are still collected
	r.Strings.Get("cursor_selection_mode").Store("inclusive")

	families, err := promReg.Gather()
	require.NoError(t, err)

	byName := make(map[string]*dto.MetricFamily)
	for _, f := range families {
		byName[f.GetName()] = f
	}

	require.Contains(t, byName, "shellcore_can_set_title")
	assert.Equal(t, 1.0, byName["shellcore_can_set_title"].GetMetric()[0].GetGauge().GetValue())
	require.Contains(t, byName, "shellcore_color_support")
	assert.Equal(t, 3.0, byName["shellcore_color_support"].GetMetric()[0].GetGauge().GetValue())

	require.Contains(t, byName, "shellcore_string_info")
	labels := byName["shellcore_string_info"].GetMetric()[0].GetLabel()
	got := map[string]string{}
	for _, l := range labels {
		got[l.GetName()] = l.GetValue()
	}
	assert.Equal(t, map[string]string{"key": "cursor_selection_mode", "value": "inclusive"}, got)
}
