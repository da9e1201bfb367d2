package config

import (
	"testing"

	"fyne.io/fyne/v2/test"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.app != app {
		t.Error("Settings app reference should match provided app")
	}
}

func TestAPIBaseURL(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	url := settings.GetAPIBaseURL()
	if url != DefaultAPIBaseURL {
		t.Errorf("Expected default API URL %s, got %s", DefaultAPIBaseURL, url)
	}

	// Test setting custom value
	settings.SetAPIBaseURL("https://pixl.example.com/")

	retrieved := settings.GetAPIBaseURL()
	if retrieved != "https://pixl.example.com" {
		t.Errorf("Expected trailing slash to be trimmed, got %s", retrieved)
	}

	// Test empty value defaults back
	settings.SetAPIBaseURL("   ")
	if settings.GetAPIBaseURL() != DefaultAPIBaseURL {
		t.Errorf("Empty URL should default to %s, got %s", DefaultAPIBaseURL, settings.GetAPIBaseURL())
	}
}

func TestViewerID(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	viewer := settings.GetViewerID()
	if viewer != DefaultViewerID {
		t.Errorf("Expected default viewer %s, got %s", DefaultViewerID, viewer)
	}

	// Test setting custom value
	settings.SetViewerID("user-ada")
	if settings.GetViewerID() != "user-ada" {
		t.Errorf("Expected viewer 'user-ada', got %s", settings.GetViewerID())
	}
}

func TestReducedMotion(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetReducedMotion() != DefaultReducedMotion {
		t.Errorf("Expected default reduced motion %v", DefaultReducedMotion)
	}

	settings.SetReducedMotion(true)
	if !settings.GetReducedMotion() {
		t.Error("Expected reduced motion to be enabled after set")
	}
}

func TestShowPlayerBar(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetShowPlayerBar() != DefaultShowPlayerBar {
		t.Errorf("Expected default player bar %v", DefaultShowPlayerBar)
	}

	settings.SetShowPlayerBar(false)
	if settings.GetShowPlayerBar() {
		t.Error("Expected player bar to be hidden after set")
	}
}

func TestAnimationScale(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	scale := settings.GetAnimationScale()
	if scale != DefaultAnimationScale {
		t.Errorf("Expected default animation scale %v, got %v", DefaultAnimationScale, scale)
	}

	// Test setting custom value
	settings.SetAnimationScale(2.0)
	if settings.GetAnimationScale() != 2.0 {
		t.Errorf("Expected animation scale 2.0, got %v", settings.GetAnimationScale())
	}

	// Test boundary values
	settings.SetAnimationScale(0.01) // Should be clamped to minimum
	if settings.GetAnimationScale() != MinAnimationScale {
		t.Errorf("Animation scale should be clamped to %v", MinAnimationScale)
	}

	settings.SetAnimationScale(50) // Should be clamped to maximum
	if settings.GetAnimationScale() != MaxAnimationScale {
		t.Errorf("Animation scale should be clamped to %v", MaxAnimationScale)
	}
}

func TestGridCellSize(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	size := settings.GetGridCellSize()
	if size != DefaultGridCellSize {
		t.Errorf("Expected default cell size %d, got %d", DefaultGridCellSize, size)
	}

	// Test setting custom value
	settings.SetGridCellSize(160)
	if settings.GetGridCellSize() != 160 {
		t.Errorf("Expected cell size 160, got %d", settings.GetGridCellSize())
	}

	// Test boundary values
	settings.SetGridCellSize(10) // Should be clamped to minimum
	if settings.GetGridCellSize() != MinGridCellSize {
		t.Errorf("Cell size should be clamped to %d", MinGridCellSize)
	}

	settings.SetGridCellSize(999) // Should be clamped to maximum
	if settings.GetGridCellSize() != MaxGridCellSize {
		t.Errorf("Cell size should be clamped to %d", MaxGridCellSize)
	}
}

func TestLanguage(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	lang := settings.GetLanguage()
	if lang != DefaultLanguage {
		t.Errorf("Expected default language %s, got %s", DefaultLanguage, lang)
	}

	// Test setting custom value
	settings.SetLanguage("ru")
	if settings.GetLanguage() != "ru" {
		t.Errorf("Expected language 'ru', got %s", settings.GetLanguage())
	}
}

func TestGetLanguageOptions(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	options := settings.GetLanguageOptions()

	expectedLangs := []string{"system", "en", "ru"}
	for _, lang := range expectedLangs {
		if _, exists := options[lang]; !exists {
			t.Errorf("Expected language option '%s' to exist", lang)
		}
	}

	if len(options) != len(expectedLangs) {
		t.Errorf("Expected %d language options, got %d", len(expectedLangs), len(options))
	}
}
