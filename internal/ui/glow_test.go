package ui

import (
	"testing"
	"time"
)

func TestGlowPhaseWrapsWithinCycle(t *testing.T) {
	period := 2400 * time.Millisecond

	phase := GlowPhase(glowEpoch.Add(3*period+period/4), period)
	if phase < 0.24 || phase > 0.26 {
		t.Errorf("Expected phase near 0.25, got %.3f", phase)
	}

	phase = GlowPhase(glowEpoch, period)
	if phase != 0 {
		t.Errorf("Expected phase 0 at the epoch, got %.3f", phase)
	}
}

func TestGlowPhaseZeroPeriod(t *testing.T) {
	if phase := GlowPhase(time.Now(), 0); phase != 0 {
		t.Errorf("Expected phase 0 for zero period, got %.3f", phase)
	}
}

func TestGlowPhaseSharedClock(t *testing.T) {
	period := 2400 * time.Millisecond
	instant := glowEpoch.Add(7 * time.Second)

	first := GlowPhase(instant, period)
	second := GlowPhase(instant.Add(period), period)
	if first != second {
		t.Errorf("Expected identical phase one full period apart, got %.4f and %.4f", first, second)
	}
}

func TestGlowAlphaPulseShape(t *testing.T) {
	if alpha := GlowAlpha(0); alpha != 0 {
		t.Errorf("Expected alpha 0 at cycle start, got %.3f", alpha)
	}
	if alpha := GlowAlpha(0.5); alpha != 1 {
		t.Errorf("Expected alpha 1 at mid cycle, got %.3f", alpha)
	}
	if alpha := GlowAlpha(1); alpha != 0 {
		t.Errorf("Expected alpha 0 at cycle end, got %.3f", alpha)
	}

	previous := float32(-1)
	for phase := float32(0); phase <= 0.5; phase += 0.05 {
		alpha := GlowAlpha(phase)
		if alpha < previous {
			t.Errorf("Expected rising intensity up to mid cycle, got %.3f after %.3f at phase %.2f", alpha, previous, phase)
		}
		previous = alpha
	}
}
