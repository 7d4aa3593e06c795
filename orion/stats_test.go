package orion

import (
	"testing"
	"time"
)

func TestFrameTimes(t *testing.T) {
	clock := time.Unix(0, 0)

	times := FrameTimes{
		now: func() time.Time { return clock },
	}

	var reports int

	for range 120 {
		if times.Tick() {
			reports += 1
		}

		clock = clock.Add(20 * time.Millisecond)
	}

	if reports != 2 {
		t.Errorf("reports = %d, want 2", reports)
	}

	if times.AverageDuration != 20*time.Millisecond {
		t.Errorf("AverageDuration = %s, want 20ms", times.AverageDuration)
	}

	if fps := times.FPS(); fps < 49.9 || fps > 50.1 {
		t.Errorf("FPS() = %f, want 50", fps)
	}
}

func TestFrameTimesWithoutFrames(t *testing.T) {
	var times FrameTimes

	if fps := times.FPS(); fps != 0 {
		t.Errorf("FPS() = %f, want 0", fps)
	}
}
