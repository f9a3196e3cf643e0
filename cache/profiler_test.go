package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfilerAccumulates(t *testing.T) {
	profiler := NewProfiler()

	for i := 0; i < 3; i++ {
		timer := profiler.Start("Hello")
		time.Sleep(time.Millisecond)
		profiler.Stop(timer)
	}
	timer := profiler.Start("Other")
	profiler.Stop(timer)

	report := profiler.Report()
	require.Len(t, report, 2)

	// Sorted by identity.
	assert.Equal(t, "Hello", report[0].Identity)
	assert.Equal(t, int64(3), report[0].Calls)
	assert.GreaterOrEqual(t, report[0].Total, 3*time.Millisecond)
	assert.Equal(t, report[0].Total/3, report[0].Average)

	assert.Equal(t, "Other", report[1].Identity)
	assert.Equal(t, int64(1), report[1].Calls)
}

func TestProfilerStopNilTimer(t *testing.T) {
	profiler := NewProfiler()

	// The disabled path hands Stop a nil handle.
	profiler.Stop(nil)

	assert.Empty(t, profiler.Report())
}

func TestProfilerClear(t *testing.T) {
	profiler := NewProfiler()
	profiler.Stop(profiler.Start("Hello"))
	require.Len(t, profiler.Report(), 1)

	profiler.Clear()

	assert.Empty(t, profiler.Report())
}

func TestProfilerReportDoesNotMutate(t *testing.T) {
	profiler := NewProfiler()
	profiler.Stop(profiler.Start("Hello"))

	first := profiler.Report()
	second := profiler.Report()

	assert.Equal(t, first, second)
}
