package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveEdit("forked")
	m.ObserveEdit("forked")
	m.ObserveSubmission("accepted")
	m.ObserveLifecycle("soft_delete")
	m.ObserveCache(true)
	m.ObserveCache(false)
	m.ObserveOperation("edit", time.Now())

	assert.Equal(t, 2.0, testutil.ToFloat64(m.EditsTotal.WithLabelValues("forked")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SubmissionsTotal.WithLabelValues("accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LifecycleTotal.WithLabelValues("soft_delete")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StatsCacheTotal.WithLabelValues("hit")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.OperationDuration))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveEdit("in_place")
		m.ObserveSubmission("accepted")
		m.ObserveLifecycle("restore")
		m.ObserveOperation("stats", time.Now())
		m.ObserveCache(true)
	})
}

func TestTracing(t *testing.T) {
	shutdown, err := InitTracing(context.Background(), "formflow-test", false)
	require.NoError(t, err)
	defer func() { _ = shutdown(context.Background()) }()

	ctx, span := StartSpan(context.Background(), "unit")
	assert.True(t, span.SpanContext().IsValid())
	assert.NotNil(t, ctx)
	EndSpan(span, errors.New("boom"))
}
