package ui

// Package ui contains the Fyne-based user interface for the application.
// The gallery shell holds the grid, header controls and the docked player
// bar; tapping a tile hands off to the focus overlay, which runs the
// shared-element flight, swipe paging, gesture recognition and the phase
// machine that keeps them honest. All UI strings are localized via
// Localization.
