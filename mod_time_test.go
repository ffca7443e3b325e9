package hellomesh

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTime_Tick(t *testing.T) {
	start := time.Unix(100, 0)
	tm := &Time{Time: start, windowStart: start}

	for i := 1; i <= 59; i++ {
		tm.tick(start.Add(time.Duration(i) * 16 * time.Millisecond))
	}
	assert.Equal(t, 16*time.Millisecond, tm.Dt)
	assert.Equal(t, uint64(59), tm.Frames)
	assert.Zero(t, tm.FPS, "no full second measured yet")

	tm.tick(start.Add(time.Second))
	assert.InDelta(t, 60.0, tm.FPS, 0.001)
	assert.Equal(t, 0, tm.windowFrames)
}
