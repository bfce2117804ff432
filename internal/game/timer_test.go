package game

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/letter-rush/internal/protocol"
	"github.com/palemoky/letter-rush/internal/testutil"
)

// newTimedSession builds a bare session with one attached client and a
// millisecond tick, bypassing the registry.
func newTimedSession(t *testing.T) (*Session, *testutil.SimpleClient) {
	t.Helper()

	c := &testutil.SimpleClient{ID: "p1"}
	s := newSession("ABCD", 3, testCategories, "standard", time.Millisecond)
	s.Users = append(s.Users, newPlayer(c, "Alice", 1))

	t.Cleanup(s.cancelTimer)
	return s, c
}

func timerValues(c *testutil.SimpleClient) []int {
	var values []int
	for _, msg := range c.MessagesOfType(protocol.MsgTimerValue) {
		var payload protocol.TimerValuePayload
		if err := json.Unmarshal(msg.Payload, &payload); err == nil {
			values = append(values, payload.Timer)
		}
	}
	return values
}

func TestTimerTicks(t *testing.T) {
	s, c := newTimedSession(t)

	s.StartTimer()
	assert.True(t, s.TimerActive())

	require.Eventually(t, func() bool {
		return len(timerValues(c)) >= 5
	}, time.Second, time.Millisecond)

	s.cancelTimer()

	// Values climb from 1 in strict single increments
	values := timerValues(c)[:5]
	assert.Equal(t, []int{1, 2, 3, 4, 5}, values)
}

func TestTimerExpiry(t *testing.T) {
	s, c := newTimedSession(t)

	s.StartTimer()

	// 61 ticks at 1ms, let it run out on its own
	require.Eventually(t, func() bool {
		return !s.TimerActive()
	}, 2*time.Second, time.Millisecond)

	values := timerValues(c)
	require.NotEmpty(t, values)
	assert.Equal(t, 60, values[len(values)-2])
	assert.Equal(t, 0, values[len(values)-1])
	assert.Equal(t, 0, s.Snapshot().CurrentTimerValue)
}

func TestStopTimer(t *testing.T) {
	s, c := newTimedSession(t)

	s.StartTimer()
	require.Eventually(t, func() bool {
		return len(timerValues(c)) >= 2
	}, time.Second, time.Millisecond)

	s.StopTimer()
	assert.False(t, s.TimerActive())
	assert.Equal(t, 0, s.Snapshot().CurrentTimerValue)

	// Let any in-flight tick land before inspecting the stream
	time.Sleep(20 * time.Millisecond)

	// Cut signal is the sentinel pair 60 then 0
	values := timerValues(c)
	found := false
	for i := 1; i < len(values); i++ {
		if values[i-1] == 60 && values[i] == 0 {
			found = true
			break
		}
	}
	assert.True(t, found, "expected 60,0 cut pair in %v", values)

	// A stopped goroutine must not resurface with stale ticks
	before := len(values)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, before, len(timerValues(c)))
}

func TestStopTimerWithoutActiveTimer(t *testing.T) {
	s, c := newTimedSession(t)

	s.StopTimer()

	assert.False(t, s.TimerActive())
	assert.Empty(t, timerValues(c))
}

func TestStartTimerSupersedesPrevious(t *testing.T) {
	s, c := newTimedSession(t)

	s.StartTimer()
	require.Eventually(t, func() bool {
		return len(timerValues(c)) >= 3
	}, time.Second, time.Millisecond)

	// Restart resets the count; the old goroutine abandons its next tick
	s.StartTimer()
	assert.Equal(t, 0, s.Snapshot().CurrentTimerValue)
	assert.True(t, s.TimerActive())

	require.Eventually(t, func() bool {
		values := timerValues(c)
		if len(values) < 2 {
			return false
		}
		// Look for the restart: a 1 following a value greater than 1
		for i := 1; i < len(values); i++ {
			if values[i] == 1 && values[i-1] > 1 {
				return true
			}
		}
		return false
	}, time.Second, time.Millisecond)

	s.cancelTimer()
}
