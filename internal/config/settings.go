package config

import (
	"strings"

	"fyne.io/fyne/v2"
)

// Settings keys for Fyne preferences
const (
	KeyAPIBaseURL     = "api_base_url"
	KeyViewerID       = "viewer_id"
	KeyReducedMotion  = "reduced_motion"
	KeyShowPlayerBar  = "show_player_bar"
	KeyGlowEnabled    = "glow_enabled"
	KeyAnimationScale = "animation_scale"
	KeyGridCellSize   = "grid_cell_size"
	KeyLanguage       = "app_language"
)

// Default values
const (
	DefaultAPIBaseURL    = "http://localhost:8990"
	DefaultViewerID      = "pixl-local"
	DefaultReducedMotion = false
	DefaultShowPlayerBar = true
	DefaultGlowEnabled   = true
	DefaultLanguage      = "system"

	DefaultAnimationScale = 1.0
	MinAnimationScale     = 0.25
	MaxAnimationScale     = 4.0

	DefaultGridCellSize = 132
	MinGridCellSize     = 96
	MaxGridCellSize     = 240
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetAPIBaseURL returns the social backend base URL
func (s *Settings) GetAPIBaseURL() string {
	url := s.app.Preferences().String(KeyAPIBaseURL)
	if url == "" {
		s.SetAPIBaseURL(DefaultAPIBaseURL)
		return DefaultAPIBaseURL
	}
	return url
}

// SetAPIBaseURL sets the social backend base URL
func (s *Settings) SetAPIBaseURL(url string) {
	url = strings.TrimRight(strings.TrimSpace(url), "/")
	if url == "" {
		url = DefaultAPIBaseURL
	}
	s.app.Preferences().SetString(KeyAPIBaseURL, url)
}

// GetViewerID returns the acting account id
func (s *Settings) GetViewerID() string {
	viewer := s.app.Preferences().String(KeyViewerID)
	if viewer == "" {
		s.SetViewerID(DefaultViewerID)
		return DefaultViewerID
	}
	return viewer
}

// SetViewerID sets the acting account id
func (s *Settings) SetViewerID(viewer string) {
	viewer = strings.TrimSpace(viewer)
	if viewer == "" {
		viewer = DefaultViewerID
	}
	s.app.Preferences().SetString(KeyViewerID, viewer)
}

// GetReducedMotion returns whether transition animations are skipped
func (s *Settings) GetReducedMotion() bool {
	return s.app.Preferences().BoolWithFallback(KeyReducedMotion, DefaultReducedMotion)
}

// SetReducedMotion sets whether transition animations are skipped
func (s *Settings) SetReducedMotion(reduced bool) {
	s.app.Preferences().SetBool(KeyReducedMotion, reduced)
}

// GetShowPlayerBar returns whether the docked chiptune player bar is shown
func (s *Settings) GetShowPlayerBar() bool {
	return s.app.Preferences().BoolWithFallback(KeyShowPlayerBar, DefaultShowPlayerBar)
}

// SetShowPlayerBar sets whether the docked chiptune player bar is shown
func (s *Settings) SetShowPlayerBar(show bool) {
	s.app.Preferences().SetBool(KeyShowPlayerBar, show)
}

// GetGlowEnabled returns whether decorative glow loops run
func (s *Settings) GetGlowEnabled() bool {
	return s.app.Preferences().BoolWithFallback(KeyGlowEnabled, DefaultGlowEnabled)
}

// SetGlowEnabled sets whether decorative glow loops run
func (s *Settings) SetGlowEnabled(enabled bool) {
	s.app.Preferences().SetBool(KeyGlowEnabled, enabled)
}

// GetAnimationScale returns the duration multiplier applied to transitions
func (s *Settings) GetAnimationScale() float64 {
	return s.app.Preferences().FloatWithFallback(KeyAnimationScale, DefaultAnimationScale)
}

// SetAnimationScale sets the duration multiplier applied to transitions
func (s *Settings) SetAnimationScale(scale float64) {
	if scale < MinAnimationScale {
		scale = MinAnimationScale
	}
	if scale > MaxAnimationScale {
		scale = MaxAnimationScale
	}
	s.app.Preferences().SetFloat(KeyAnimationScale, scale)
}

// GetGridCellSize returns the gallery thumbnail cell edge in logical pixels
func (s *Settings) GetGridCellSize() int {
	value := s.app.Preferences().Int(KeyGridCellSize)
	if value <= 0 {
		s.SetGridCellSize(DefaultGridCellSize)
		return DefaultGridCellSize
	}
	return value
}

// SetGridCellSize sets the gallery thumbnail cell edge in logical pixels
func (s *Settings) SetGridCellSize(size int) {
	if size < MinGridCellSize {
		size = MinGridCellSize
	}
	if size > MaxGridCellSize {
		size = MaxGridCellSize
	}
	s.app.Preferences().SetInt(KeyGridCellSize, size)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
	}
}
