package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPipelineMetrics_RegistersAllCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()

	m, err := NewPipelineMetrics(reg)
	require.NoError(t, err)
	require.NotNil(t, m)

	mfs, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(mfs))
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	assert.True(t, names["codegen_runs_total"])
	assert.True(t, names["codegen_phase_duration_seconds"])
	assert.True(t, names["codegen_phase_errors_total"])
	assert.True(t, names["codegen_files_emitted_total"])
	assert.True(t, names["codegen_cache_lookups_total"])
	assert.True(t, names["codegen_active_runs"])
}

func TestNewPipelineMetrics_SecondCallOnSameRegistryDoesNotError(t *testing.T) {
	reg := prometheus.NewRegistry()

	_, err := NewPipelineMetrics(reg)
	require.NoError(t, err)

	m2, err := NewPipelineMetrics(reg)
	require.NoError(t, err)
	require.NotNil(t, m2)
}

func TestRecordRun_IncrementsLabeledCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewPipelineMetrics(reg)
	require.NoError(t, err)

	m.RecordRun(true)
	m.RecordRun(false)
	m.RecordRun(false)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.RunsTotal.WithLabelValues("success")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.RunsTotal.WithLabelValues("failure")))
}

func TestRecordPhase_ObservesDurationAndErrors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewPipelineMetrics(reg)
	require.NoError(t, err)

	m.RecordPhase("render", 0.25, 0)
	m.RecordPhase("render", 0.5, 2)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.PhaseErrorsTotal.WithLabelValues("render")))

	count := testutil.CollectAndCount(m.PhaseDurationSeconds)
	assert.Equal(t, 1, count)
}

func TestRecordFileEmitted_IncrementsByClassification(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewPipelineMetrics(reg)
	require.NoError(t, err)

	m.RecordFileEmitted("model")
	m.RecordFileEmitted("model")
	m.RecordFileEmitted("schema")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.FilesEmittedTotal.WithLabelValues("model")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.FilesEmittedTotal.WithLabelValues("schema")))
}

func TestRecordCacheLookup_IncrementsByResult(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewPipelineMetrics(reg)
	require.NoError(t, err)

	m.RecordCacheLookup("hit")
	m.RecordCacheLookup("miss")
	m.RecordCacheLookup("hit")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.CacheLookupsTotal.WithLabelValues("hit")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CacheLookupsTotal.WithLabelValues("miss")))
}

func TestNewPipelineMetrics_NilRegistryUsesDefault(t *testing.T) {
	m, err := NewPipelineMetrics(nil)
	require.NoError(t, err)
	require.NotNil(t, m)
}
