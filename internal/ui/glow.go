package ui

import "time"

// glowEpoch anchors the shared glow clock. Every cell derives its pulse
// from the same epoch, so cells created at different times stay in phase.
var glowEpoch = time.Now()

// GlowPhase returns the position within the glow cycle at now, in [0, 1)
func GlowPhase(now time.Time, period time.Duration) float32 {
	if period <= 0 {
		return 0
	}
	elapsed := now.Sub(glowEpoch) % period
	if elapsed < 0 {
		elapsed += period
	}
	return float32(elapsed) / float32(period)
}

// GlowAlpha maps a cycle position to a pulse intensity in [0, 1], rising
// smoothly to a peak at mid-cycle and falling back
func GlowAlpha(phase float32) float32 {
	t := 1 - absf(2*phase-1)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}
