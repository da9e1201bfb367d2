package ui

import (
	"fmt"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"

	"github.com/pixlshare/pixl-viewer/internal/config"
	"github.com/pixlshare/pixl-viewer/internal/media"
	"github.com/pixlshare/pixl-viewer/internal/social"
)

func newTestShell(t *testing.T) *GalleryShell {
	t.Helper()

	app := test.NewApp()
	app.Preferences().SetBool(config.KeyReducedMotion, true)
	app.Preferences().SetBool(config.KeyGlowEnabled, false)

	window := test.NewWindow(nil)
	t.Cleanup(window.Close)

	client := stubFeedClient{}
	stats := social.NewCache(client, "viewer-1")
	store := media.NewStore("")

	shell := NewGalleryShell(window, app, client, stats, store)
	window.Resize(fyne.NewSize(800, 600))
	return shell
}

func TestGalleryShellBuildsUI(t *testing.T) {
	shell := newTestShell(t)

	if shell.grid == nil || shell.overlay == nil {
		t.Fatal("Expected grid and overlay to be created")
	}
	if shell.window.Content() == nil {
		t.Error("Expected window content to be set")
	}
	if shell.window.MainMenu() == nil {
		t.Error("Expected a main menu")
	}
	if shell.window.Title() != "Pixl Viewer" {
		t.Errorf("Expected window title Pixl Viewer, got %q", shell.window.Title())
	}
	if shell.playerBar.Hidden {
		t.Error("Expected the player bar visible by default")
	}
}

func TestGalleryShellAppliesFeed(t *testing.T) {
	shell := newTestShell(t)

	shell.applyFeed(feedItems(6))

	if shell.grid.Count() != 6 {
		t.Errorf("Expected 6 items in the grid, got %d", shell.grid.Count())
	}
	if len(shell.overlay.items) != 6 {
		t.Errorf("Expected 6 items in the overlay, got %d", len(shell.overlay.items))
	}
	want := fmt.Sprintf(shell.localization.GetText(KeyFeedCount), 6)
	if shell.notificationLabel.Text != want {
		t.Errorf("Expected notification %q, got %q", want, shell.notificationLabel.Text)
	}
	if shell.notificationContainer.Hidden {
		t.Error("Expected the notification panel visible after a load")
	}
}

func TestGalleryShellOpensOverlayOnSelect(t *testing.T) {
	shell := newTestShell(t)
	shell.applyFeed(feedItems(4))

	shell.onSelectItem(2)

	if !shell.overlay.IsOpen() {
		t.Fatal("Expected the overlay to open on selection")
	}
	if shell.overlay.SelectedIndex() != 2 {
		t.Errorf("Expected selected index 2, got %d", shell.overlay.SelectedIndex())
	}

	// Selecting while open must not restart the session
	shell.onSelectItem(0)
	if shell.overlay.SelectedIndex() != 2 {
		t.Errorf("Expected selection to stay at 2, got %d", shell.overlay.SelectedIndex())
	}
}

func TestGalleryShellLanguageChange(t *testing.T) {
	shell := newTestShell(t)

	shell.onLanguageChange("ru")

	if shell.settings.GetLanguage() != "ru" {
		t.Errorf("Expected persisted language ru, got %q", shell.settings.GetLanguage())
	}
	if shell.localization.GetCurrentLanguage() != "ru" {
		t.Errorf("Expected current language ru, got %q", shell.localization.GetCurrentLanguage())
	}
	if shell.playerLabel.Text != "чиптюн-радио" {
		t.Errorf("Expected localized player label, got %q", shell.playerLabel.Text)
	}
}

func TestGalleryShellPlayerToggle(t *testing.T) {
	shell := newTestShell(t)

	if shell.playToggle.Text != IconPlay {
		t.Fatalf("Expected play icon at start, got %q", shell.playToggle.Text)
	}

	shell.onPlayToggle()
	if !shell.playing || shell.playToggle.Text != IconPause {
		t.Errorf("Expected playing with pause icon, got playing=%v icon=%q", shell.playing, shell.playToggle.Text)
	}

	shell.onPlayToggle()
	if shell.playing || shell.playToggle.Text != IconPlay {
		t.Errorf("Expected stopped with play icon, got playing=%v icon=%q", shell.playing, shell.playToggle.Text)
	}
}

func TestGalleryShellSettingsSavedAppliesChanges(t *testing.T) {
	shell := newTestShell(t)

	shell.settings.SetShowPlayerBar(false)
	shell.settings.SetGridCellSize(200)
	shell.settings.SetGlowEnabled(true)
	shell.onSettingsSaved()

	if !shell.playerBar.Hidden {
		t.Error("Expected the player bar hidden after disabling it")
	}
	if shell.grid.cellSize != 200 {
		t.Errorf("Expected grid cell size 200, got %f", shell.grid.cellSize)
	}
	if !shell.grid.glowEnabled {
		t.Error("Expected glow enabled on the grid")
	}

	shell.settings.SetGlowEnabled(false)
	shell.onSettingsSaved()
	if shell.grid.glowEnabled {
		t.Error("Expected glow disabled on the grid")
	}
}
