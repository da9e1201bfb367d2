package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"
)

func TestHistoryGuardRoutesBackOnce(t *testing.T) {
	test.NewApp()
	window := test.NewWindow(nil)
	defer window.Close()

	backs := 0
	guard := NewHistoryGuard(window)
	if guard.Active() {
		t.Error("Expected a fresh guard to be inactive")
	}

	guard.Push(func() { backs++ })
	if !guard.Active() {
		t.Error("Expected guard to be active after Push")
	}

	guard.intercept()
	guard.intercept()
	if backs != 2 {
		t.Errorf("Expected every back press to reach onBack, got %d", backs)
	}
}

func TestHistoryGuardSecondPushIgnored(t *testing.T) {
	test.NewApp()
	window := test.NewWindow(nil)
	defer window.Close()

	guard := NewHistoryGuard(window)
	first := 0
	second := 0
	guard.Push(func() { first++ })
	guard.Push(func() { second++ })

	guard.intercept()
	if first != 1 || second != 0 {
		t.Errorf("Expected the first handler to stay installed, got first=%d second=%d", first, second)
	}
}

func TestHistoryGuardReleaseIsIdempotent(t *testing.T) {
	test.NewApp()
	window := test.NewWindow(nil)
	defer window.Close()

	guard := NewHistoryGuard(window)
	guard.Release()

	guard.Push(func() {})
	guard.Release()
	if guard.Active() {
		t.Error("Expected guard to be inactive after Release")
	}
	guard.Release()

	guard.Push(func() {})
	if !guard.Active() {
		t.Error("Expected guard to accept a new Push after Release")
	}
	guard.Release()
}
