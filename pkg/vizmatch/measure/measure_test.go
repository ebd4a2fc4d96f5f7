package measure_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stereosat/micmac-pipeline/pkg/vizmatch/measure"
)

func TestAddMetricReturnsExisting(t *testing.T) {
	t.Parallel()

	msr := measure.NewDefaultMeasure()
	first := msr.AddMetric("a-b", 1)
	second := msr.AddMetric("a-b", 4)

	assert.Same(t, first, second)
	assert.Len(t, msr.AllMetrics(), 1)
}

func TestAVGDuration(t *testing.T) {
	t.Parallel()

	msr := measure.NewDefaultMeasure()
	metric := msr.AddMetric("a-b", 1)

	assert.Equal(t, time.Duration(0), metric.AVGDuration())

	metric.AddDuration(10 * time.Millisecond)
	metric.AddDuration(30 * time.Millisecond)
	assert.Equal(t, 20*time.Millisecond, metric.AVGDuration())
}

func TestTotalDuration(t *testing.T) {
	t.Parallel()

	msr := measure.NewDefaultMeasure()
	metric := msr.AddMetric("a-b", 1)
	metric.SetTotalDuration(time.Second)
	assert.Equal(t, time.Second, metric.GetTotalDuration())
}

func TestGetMetricUnknown(t *testing.T) {
	t.Parallel()

	msr := measure.NewDefaultMeasure()
	assert.Nil(t, msr.GetMetric("missing"))
}

func TestConcurrentAddMetric(t *testing.T) {
	t.Parallel()

	msr := measure.NewDefaultMeasure()

	var wgrp sync.WaitGroup
	for i := 0; i < 8; i++ {
		wgrp.Add(1)
		go func() {
			defer wgrp.Done()
			msr.AddMetric("a-b", 1).AddDuration(time.Millisecond)
		}()
	}
	wgrp.Wait()

	require.Len(t, msr.AllMetrics(), 1)
	assert.Equal(t, time.Millisecond, msr.GetMetric("a-b").AVGDuration())
}
