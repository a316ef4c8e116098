// Package timing tracks frame times for the main loop
package timing

import (
	"time"
)

const fpsWindowSize = 60

var (
	// now is swapped by tests
	now = time.Now

	startTime      time.Time
	frameStartTime time.Time
	dt             float32

	frameTimes     [fpsWindowSize]float32
	frameTimesNext int
	frameTimesLen  int
)

func Init() {
	startTime = now()
	frameStartTime = startTime
	dt = 0
	frameTimesNext = 0
	frameTimesLen = 0
}

func FrameStarted() {
	frameStartTime = now()
}

func FrameEnded() {

	dt = float32(now().Sub(frameStartTime).Seconds())

	frameTimes[frameTimesNext] = dt
	frameTimesNext = (frameTimesNext + 1) % fpsWindowSize
	if frameTimesLen < fpsWindowSize {
		frameTimesLen++
	}
}

// DT is the duration of the last frame in seconds
func DT() float32 {
	return dt
}

// ElapsedTime is the time in seconds since Init
func ElapsedTime() float32 {
	return float32(now().Sub(startTime).Seconds())
}

// GetAvgFPS averages over the last fpsWindowSize frames
func GetAvgFPS() float32 {

	if frameTimesLen == 0 {
		return 0
	}

	var total float32
	for i := 0; i < frameTimesLen; i++ {
		total += frameTimes[i]
	}

	if total == 0 {
		return 0
	}

	return float32(frameTimesLen) / total
}

// Ticker turns variable frame times into a whole number of fixed length ticks
type Ticker struct {
	TickSeconds float32
	acc         float32
}

// Advance adds dt seconds and returns how many ticks are now due
func (t *Ticker) Advance(dtSeconds float32) int {

	t.acc += dtSeconds

	ticks := 0
	for t.acc >= t.TickSeconds {
		t.acc -= t.TickSeconds
		ticks++
	}

	return ticks
}

func NewTicker(ticksPerSecond float32) Ticker {
	return Ticker{TickSeconds: 1 / ticksPerSecond}
}
