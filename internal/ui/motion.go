package ui

import (
	"time"

	"fyne.io/fyne/v2"

	"github.com/pixlshare/pixl-viewer/internal/model"
)

// Frame is one visual state of an animated element: where it sits and how
// opaque it is
type Frame struct {
	Rect    model.Rect
	Opacity float32
}

// Channel drives one visual element independently of every other element.
// Set snaps to a frame without animating, AnimateTo runs a flight and
// signals settle on the returned channel. With reduced motion enabled
// AnimateTo completes synchronously; that is also the deterministic path
// used in tests.
//
// Channel methods and the apply callback run on the UI thread.
type Channel struct {
	name  string
	apply func(Frame)

	current Frame
	curve   fyne.AnimationCurve

	reduced bool
	scale   float32

	anim *fyne.Animation
	done chan struct{}
}

// NewChannel creates a channel applying frames through the given callback.
// The default curve is a spring-like ease-out with a slight overshoot.
func NewChannel(name string, apply func(Frame)) *Channel {
	return &Channel{
		name:  name,
		apply: apply,
		curve: springCurve,
		scale: 1,
	}
}

// SetCurve replaces the interpolation curve for subsequent flights
func (c *Channel) SetCurve(curve fyne.AnimationCurve) {
	c.curve = curve
}

// SetReducedMotion makes AnimateTo complete synchronously when enabled
func (c *Channel) SetReducedMotion(reduced bool) {
	c.reduced = reduced
}

// SetDurationScale stretches or shrinks every flight duration
func (c *Channel) SetDurationScale(scale float32) {
	if scale <= 0 {
		scale = 1
	}
	c.scale = scale
}

// Current returns the frame the channel last applied
func (c *Channel) Current() Frame {
	return c.current
}

// Set snaps the channel to a frame, cancelling any flight in progress
func (c *Channel) Set(frame Frame) {
	c.stopInFlight()
	c.current = frame
	c.apply(frame)
}

// AnimateTo flies the channel to the target frame and returns a channel that
// is closed once the flight settles. A flight already in progress is stopped
// and its done channel closed, so no awaiter is ever left hanging.
func (c *Channel) AnimateTo(target Frame, duration time.Duration) <-chan struct{} {
	c.stopInFlight()

	duration = time.Duration(float64(duration) * float64(c.scale))
	if c.reduced || duration <= 0 {
		c.current = target
		c.apply(target)
		return closedDone
	}

	start := c.current
	done := make(chan struct{})
	c.done = done

	anim := fyne.NewAnimation(duration, func(progress float32) {
		frame := mixFrame(start, target, c.curve(progress))
		c.current = frame
		c.apply(frame)

		if progress >= 1 && c.done == done {
			c.anim = nil
			c.done = nil
			close(done)
		}
	})
	anim.Curve = fyne.AnimationLinear
	c.anim = anim
	anim.Start()

	return done
}

// Stop cancels an in-flight animation, leaving the channel at whatever frame
// it last applied
func (c *Channel) Stop() {
	c.stopInFlight()
}

func (c *Channel) stopInFlight() {
	if c.anim != nil {
		c.anim.Stop()
		c.anim = nil
	}
	if c.done != nil {
		close(c.done)
		c.done = nil
	}
}

// closedDone is returned for synchronous completions
var closedDone = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// AwaitAll blocks until every done channel has settled
func AwaitAll(dones ...<-chan struct{}) {
	for _, done := range dones {
		<-done
	}
}

// allSettled reports whether every done channel has already settled
func allSettled(dones []<-chan struct{}) bool {
	for _, done := range dones {
		select {
		case <-done:
		default:
			return false
		}
	}
	return true
}

// awaitThen runs fn once all flights settle. If they already have, fn runs
// immediately on the calling goroutine; otherwise a background goroutine
// waits and hops back to the UI thread.
func awaitThen(dones []<-chan struct{}, fn func()) {
	if allSettled(dones) {
		fn()
		return
	}
	go func() {
		AwaitAll(dones...)
		fyne.Do(fn)
	}()
}

// mixFrame interpolates between two frames without clamping so spring curves
// can overshoot
func mixFrame(from, to Frame, t float32) Frame {
	return Frame{
		Rect: model.Rect{
			Left:   mix(from.Rect.Left, to.Rect.Left, t),
			Top:    mix(from.Rect.Top, to.Rect.Top, t),
			Width:  mix(from.Rect.Width, to.Rect.Width, t),
			Height: mix(from.Rect.Height, to.Rect.Height, t),
		},
		Opacity: mix(from.Opacity, to.Opacity, t),
	}
}

func mix(from, to, t float32) float32 {
	return from + (to-from)*t
}

// springCurve eases out with a slight overshoot so flights settle with a
// spring feel. springCurve(0) = 0 and springCurve(1) = 1.
func springCurve(t float32) float32 {
	const s = 1.35
	u := t - 1
	return 1 + (s+1)*u*u*u + s*u*u
}
