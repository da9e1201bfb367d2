package ui

import (
	"fyne.io/fyne/v2"
	"go.uber.org/zap"
)

// HistoryGuard turns the window close request into a back action while the
// overlay is open. One Push installs a single close intercept regardless of
// how often it is called, and Release removes it exactly once, so closing
// the window again after the overlay is gone quits the app normally.
// Repeated back presses during the same session funnel into onBack, whose
// phase machine ignores everything after the first.
type HistoryGuard struct {
	window    fyne.Window
	pushed    bool
	intercept func()
}

// NewHistoryGuard creates a guard for one window
func NewHistoryGuard(window fyne.Window) *HistoryGuard {
	return &HistoryGuard{window: window}
}

// Active reports whether the close intercept is currently installed
func (h *HistoryGuard) Active() bool {
	return h.pushed
}

// Push installs the close intercept routing back presses to onBack. A
// second Push while one is active is ignored.
func (h *HistoryGuard) Push(onBack func()) {
	if h.pushed {
		zap.S().Debugf("history: push ignored, intercept already installed")
		return
	}
	h.pushed = true
	h.intercept = func() {
		zap.S().Debugf("history: back requested")
		onBack()
	}
	h.window.SetCloseIntercept(h.intercept)
}

// Release removes the intercept. Safe to call on every close path; only
// the first call after a Push does anything.
func (h *HistoryGuard) Release() {
	if !h.pushed {
		return
	}
	h.pushed = false
	h.intercept = nil
	h.window.SetCloseIntercept(nil)
}
