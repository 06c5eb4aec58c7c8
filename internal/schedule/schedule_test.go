package schedule

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitDone(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("task did not finish")
	}
}

func TestTask_Fires(t *testing.T) {
	task := New()
	assert.Equal(t, Idle, task.State())

	var calls atomic.Int32
	task.Arm(time.Now().Add(20*time.Millisecond), func() { calls.Add(1) })
	assert.Equal(t, Armed, task.State())

	waitDone(t, task.Done())
	assert.Equal(t, Fired, task.State())
	assert.Equal(t, int32(1), calls.Load())
}

func TestTask_PastTimeFiresImmediately(t *testing.T) {
	task := New()
	var calls atomic.Int32
	task.Arm(time.Now().Add(-time.Hour), func() { calls.Add(1) })

	waitDone(t, task.Done())
	assert.Equal(t, int32(1), calls.Load())
}

func TestTask_Cancel(t *testing.T) {
	task := New()
	var calls atomic.Int32
	task.Arm(time.Now().Add(time.Hour), func() { calls.Add(1) })

	assert.True(t, task.Cancel())
	assert.Equal(t, Cancelled, task.State())
	waitDone(t, task.Done())
	assert.False(t, task.Cancel(), "nothing left to cancel")
	assert.Equal(t, int32(0), calls.Load())
}

func TestTask_RearmReplacesPending(t *testing.T) {
	task := New()
	var first, second atomic.Int32

	task.Arm(time.Now().Add(50*time.Millisecond), func() { first.Add(1) })
	firstDone := task.Done()
	task.Arm(time.Now().Add(10*time.Millisecond), func() { second.Add(1) })

	waitDone(t, firstDone)
	waitDone(t, task.Done())
	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, int32(0), first.Load())
	assert.Equal(t, int32(1), second.Load())
	assert.Equal(t, Fired, task.State())
}

func TestTask_CancelAfterFire(t *testing.T) {
	task := New()
	task.Arm(time.Now(), func() {})
	waitDone(t, task.Done())
	assert.False(t, task.Cancel())
	assert.Equal(t, Fired, task.State())
}

func TestNextOccurrence(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	later, err := NextOccurrence(now, 14, 30, 0)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC), later)

	earlier, err := NextOccurrence(now, 9, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC), earlier)

	same, err := NextOccurrence(now, 12, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC), same)

	_, err = NextOccurrence(now, 24, 0, 0)
	assert.Error(t, err)
}

func TestParseClock(t *testing.T) {
	h, m, s, err := ParseClock("07:05:09")
	require.NoError(t, err)
	assert.Equal(t, []int{7, 5, 9}, []int{h, m, s})

	h, m, s, err = ParseClock("23:59")
	require.NoError(t, err)
	assert.Equal(t, []int{23, 59, 0}, []int{h, m, s})

	_, _, _, err = ParseClock("25:00")
	assert.Error(t, err)
	_, _, _, err = ParseClock("noon")
	assert.Error(t, err)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "armed", Armed.String())
	assert.Equal(t, "unknown", State(42).String())
}
