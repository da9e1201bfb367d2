package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconRefresh  = "⟳"
	IconClose    = "×"
	IconPlay     = "▶"
	IconPause    = "⏸"
	IconComments = "💬"
	IconViews    = "👁"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
)

// DefaultEmoji is the reaction toggled by a long-press on the focused artwork
const (
	DefaultEmoji = "🔥"
)

// Focused overlay layout (logical px)
const (
	// FocusSize is the preferred width and height of the focused artwork box.
	// Small windows shrink it to fit, see Viewport.
	FocusSize float32 = 384

	// FocusTopInset pins the focused box at a fixed offset from the top of
	// the visual viewport
	FocusTopInset float32 = 96

	FocusMinMargin float32 = 16

	HeaderHeight float32 = 56
	HeaderGap    float32 = 12
	MetaHeight   float32 = 72
	MetaGap      float32 = 12

	// DockedBarHeight is how much a visible bottom player bar shortens the
	// overlay backdrop
	DockedBarHeight float32 = 64

	ChromePadding float32 = 12
)

// Gesture classification thresholds
const (
	TapMaxOffset   float32 = 10
	TapMaxDuration         = 300 * time.Millisecond

	// A swipe is horizontal when |dx| beats |dy| by this ratio and clears
	// the minimum distance
	HorizontalRatio float32 = 1.25
	HorizontalMinDX float32 = 70

	// Vertical dismiss: either a long displacement or a fast flick over a
	// shorter one. Both directions dismiss.
	VerticalDismissMinDY float32 = 90
	FlickMinVelocity     float32 = 0.55 // logical px per millisecond
	FlickMinDY           float32 = 45

	// JitterThreshold is how far the pointer may wander before a pending
	// long-press is treated as a drag
	JitterThreshold float32 = 10

	LongPressDuration = 420 * time.Millisecond
)

// Animation timing and feel
const (
	FlightDuration = 320 * time.Millisecond
	FadeDuration   = 200 * time.Millisecond
	CrossFadeHalf  = 120 * time.Millisecond

	BounceDuration         = 110 * time.Millisecond
	BounceOffset   float32 = 26

	BurstDuration = 450 * time.Millisecond

	GlowPeriod = 2400 * time.Millisecond
)

// Overlay visuals
const (
	BackdropMaxAlpha uint8   = 217
	PressedScale     float32 = 0.97

	ChromeSlideOffset float32 = 18
)

// Grid cell visuals
const (
	GlowFrameInset  float32 = 2
	GlowFrameStroke float32 = 2
	GlowBaseAlpha   uint8   = 36
	GlowPeakAlpha   uint8   = 112
)
