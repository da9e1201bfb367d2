package ui

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// GestureKind classifies a completed pointer sequence on the focused artwork
type GestureKind int

const (
	GestureNone GestureKind = iota
	GestureTap
	GestureSwipeNext
	GestureSwipePrevious
	GestureDismiss
	GestureSnapBack
)

// String returns the string representation of the gesture kind
func (gk GestureKind) String() string {
	switch gk {
	case GestureTap:
		return "tap"
	case GestureSwipeNext:
		return "swipe_next"
	case GestureSwipePrevious:
		return "swipe_previous"
	case GestureDismiss:
		return "dismiss"
	case GestureSnapBack:
		return "snap_back"
	default:
		return "none"
	}
}

// classifyGesture maps a completed drag to exactly one gesture kind. dx and
// dy are the total pointer offsets in logical px, vx and vy the release
// velocities in logical px per millisecond. The same tuple always yields the
// same kind.
//
// Vertical dismissal accepts either direction: dragging the artwork down
// drops it back into the grid just like flicking it up does.
func classifyGesture(dx, dy float32, duration time.Duration, vx, vy float32) GestureKind {
	absDX := absf(dx)
	absDY := absf(dy)

	if absDX < TapMaxOffset && absDY < TapMaxOffset && duration < TapMaxDuration {
		return GestureTap
	}

	if absDX > absDY*HorizontalRatio && absDX > HorizontalMinDX {
		if dx < 0 {
			return GestureSwipeNext
		}
		return GestureSwipePrevious
	}

	if absDY > VerticalDismissMinDY || (absf(vy) > FlickMinVelocity && absDY > FlickMinDY) {
		return GestureDismiss
	}

	return GestureSnapBack
}

// GestureRecord captures pointer-down state used to classify the release
type GestureRecord struct {
	StartX    float32
	StartY    float32
	StartTime time.Time

	LastX float32
	LastY float32
}

// Recognizer consumes one pointer down/move/up/cancel stream and resolves it
// into a GestureKind on release. It also runs the cancellable long-press
// timer: holding still for LongPressDuration fires onLongPress without
// ending the gesture, and a release after the hold classifies as a no-op
// snap-back since the pointer has not moved appreciably.
//
// The timer fires on its own goroutine, so onLongPress must hop to the UI
// thread itself if it touches widgets.
type Recognizer struct {
	mutex sync.Mutex

	record         *GestureRecord
	longPressTimer *time.Timer
	longPressDelay time.Duration

	onLongPress func()
	onPressing  func(pressing bool)
}

// NewRecognizer creates a recognizer. onLongPress fires when a hold
// completes; onPressing reports pointer contact for the pressed visual cue.
// Either callback may be nil.
func NewRecognizer(onLongPress func(), onPressing func(bool)) *Recognizer {
	return &Recognizer{
		longPressDelay: LongPressDuration,
		onLongPress:    onLongPress,
		onPressing:     onPressing,
	}
}

// Active returns true while a pointer sequence is being tracked
func (r *Recognizer) Active() bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.record != nil
}

// Begin starts tracking at the pointer-down position. A second pointer while
// one is tracked is ignored.
func (r *Recognizer) Begin(x, y float32) {
	r.mutex.Lock()
	if r.record != nil {
		r.mutex.Unlock()
		zap.S().Debugf("gesture: ignoring secondary pointer down at (%.0f, %.0f)", x, y)
		return
	}

	r.record = &GestureRecord{
		StartX:    x,
		StartY:    y,
		StartTime: time.Now(),
		LastX:     x,
		LastY:     y,
	}
	r.longPressTimer = time.AfterFunc(r.longPressDelay, r.firePress)
	pressing := r.onPressing
	r.mutex.Unlock()

	if pressing != nil {
		pressing(true)
	}
}

// Move updates the tracked position and returns the running offsets. Once
// movement exceeds the jitter threshold the pending long-press is cancelled,
// because a real drag is in progress rather than a hold.
func (r *Recognizer) Move(x, y float32) (dx, dy float32) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.record == nil {
		return 0, 0
	}

	r.record.LastX = x
	r.record.LastY = y
	dx = x - r.record.StartX
	dy = y - r.record.StartY

	if r.longPressTimer != nil && (absf(dx) > JitterThreshold || absf(dy) > JitterThreshold) {
		r.longPressTimer.Stop()
		r.longPressTimer = nil
	}
	return dx, dy
}

// End stops tracking and classifies the completed sequence
func (r *Recognizer) End(x, y float32) GestureKind {
	r.mutex.Lock()
	record := r.record
	if record == nil {
		r.mutex.Unlock()
		return GestureNone
	}
	r.record = nil
	if r.longPressTimer != nil {
		r.longPressTimer.Stop()
		r.longPressTimer = nil
	}
	pressing := r.onPressing
	r.mutex.Unlock()

	if pressing != nil {
		pressing(false)
	}

	dx := x - record.StartX
	dy := y - record.StartY
	duration := time.Since(record.StartTime)

	millis := float32(duration.Milliseconds())
	if millis <= 0 {
		millis = 1
	}
	kind := classifyGesture(dx, dy, duration, dx/millis, dy/millis)

	zap.S().Debugf("gesture: dx=%.0f dy=%.0f duration=%s -> %s", dx, dy, duration, kind)
	return kind
}

// Cancel drops the tracked sequence without classifying it. The caller
// snaps the artwork back itself.
func (r *Recognizer) Cancel() {
	r.mutex.Lock()
	if r.record == nil {
		r.mutex.Unlock()
		return
	}
	r.record = nil
	if r.longPressTimer != nil {
		r.longPressTimer.Stop()
		r.longPressTimer = nil
	}
	pressing := r.onPressing
	r.mutex.Unlock()

	if pressing != nil {
		pressing(false)
	}
}

// firePress runs when the long-press timer elapses without being cancelled
func (r *Recognizer) firePress() {
	r.mutex.Lock()
	if r.record == nil {
		r.mutex.Unlock()
		return
	}
	r.longPressTimer = nil
	cb := r.onLongPress
	r.mutex.Unlock()

	if cb != nil {
		cb()
	}
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
