package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func useFakeClock(t *testing.T) *fakeClock {

	c := &fakeClock{t: time.Unix(1000, 0)}
	now = c.now
	t.Cleanup(func() { now = time.Now })

	Init()
	return c
}

func TestFrameTimes(t *testing.T) {

	c := useFakeClock(t)
	assert.Zero(t, GetAvgFPS())

	for i := 0; i < 10; i++ {
		FrameStarted()
		c.advance(20 * time.Millisecond)
		FrameEnded()
	}

	assert.InDelta(t, 0.02, DT(), 1e-6)
	assert.InDelta(t, 50, GetAvgFPS(), 1e-3)
	assert.InDelta(t, 0.2, ElapsedTime(), 1e-6)
}

func TestAvgFPSOnlyCountsRecentFrames(t *testing.T) {

	c := useFakeClock(t)

	for i := 0; i < fpsWindowSize; i++ {
		FrameStarted()
		c.advance(100 * time.Millisecond)
		FrameEnded()
	}
	assert.InDelta(t, 10, GetAvgFPS(), 1e-3)

	for i := 0; i < fpsWindowSize; i++ {
		FrameStarted()
		c.advance(10 * time.Millisecond)
		FrameEnded()
	}
	assert.InDelta(t, 100, GetAvgFPS(), 1e-2)
}

func TestTicker(t *testing.T) {

	tk := NewTicker(60)

	assert.Equal(t, 0, tk.Advance(0.01))
	assert.Equal(t, 1, tk.Advance(0.01))
	assert.Equal(t, 3, tk.Advance(0.05))
	assert.Equal(t, 0, tk.Advance(0))
}
