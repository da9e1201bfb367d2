package ui

import (
	"fyne.io/fyne/v2"

	"github.com/pixlshare/pixl-viewer/internal/model"
)

// Viewport is a snapshot of the overlay's visible area. It derives every
// fixed target rectangle of the focused layout. A fresh snapshot is taken on
// every resize; target rects are never cached across frames.
type Viewport struct {
	Size               fyne.Size
	HasSecondaryChrome bool
}

// UsableHeight returns the height left for the overlay once a docked bottom
// bar is accounted for
func (v Viewport) UsableHeight() float32 {
	height := v.Size.Height
	if v.HasSecondaryChrome {
		height -= DockedBarHeight
	}
	if height < 0 {
		height = 0
	}
	return height
}

// BackdropRect covers the usable viewport
func (v Viewport) BackdropRect() model.Rect {
	return model.NewRect(0, 0, v.Size.Width, v.UsableHeight())
}

// FocusedRect returns the box the selected artwork settles into: a square of
// up to FocusSize logical px, horizontally centered and pinned at a fixed
// offset from the top of the visual viewport. Small viewports shrink the
// square so the meta panel below it still fits.
func (v Viewport) FocusedRect() model.Rect {
	side := FocusSize

	if maxWidth := v.Size.Width - 2*FocusMinMargin; side > maxWidth {
		side = maxWidth
	}
	if maxHeight := v.UsableHeight() - FocusTopInset - MetaGap - MetaHeight - FocusMinMargin; side > maxHeight {
		side = maxHeight
	}
	if side < 0 {
		side = 0
	}

	return model.NewRect((v.Size.Width-side)/2, FocusTopInset, side, side)
}

// HeaderRect sits directly above the given focused box with the same width
func (v Viewport) HeaderRect(focused model.Rect) model.Rect {
	return model.NewRect(focused.Left, focused.Top-HeaderGap-HeaderHeight, focused.Width, HeaderHeight)
}

// MetaRect sits directly below the given focused box with the same width
func (v Viewport) MetaRect(focused model.Rect) model.Rect {
	return model.NewRect(focused.Left, focused.Bottom()+MetaGap, focused.Width, MetaHeight)
}
