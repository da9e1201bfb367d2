package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle        = "app_title"
	KeyFile            = "file"
	KeyRefresh         = "refresh"
	KeySettings        = "settings"
	KeyLanguage        = "language"
	KeySave            = "save"
	KeyCancel          = "cancel"
	KeyLoadingFeed     = "loading_feed"
	KeyFeedFailed      = "feed_failed"
	KeyFeedCount       = "feed_count"
	KeySettingsSaved   = "settings_saved"
	KeyAPIBaseURL      = "api_base_url"
	KeyViewerID        = "viewer_id"
	KeyReducedMotion   = "reduced_motion"
	KeyShowPlayerBar   = "show_player_bar"
	KeyGlowEnabled     = "glow_enabled"
	KeyAnimationScale  = "animation_scale"
	KeyGridCellSize    = "grid_cell_size"
	KeyConnection      = "connection"
	KeyInterface       = "interface"
	KeyByAuthor        = "by_author"
	KeyOverlayHint     = "overlay_hint"
	KeyNowPlaying      = "now_playing"
	KeyErrorOpeningURL = "error_opening_url"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:        "Pixl Viewer",
		KeyFile:            "File",
		KeyRefresh:         "Refresh",
		KeySettings:        "Settings",
		KeyLanguage:        "Language",
		KeySave:            "Save",
		KeyCancel:          "Cancel",
		KeyLoadingFeed:     "Loading feed...",
		KeyFeedFailed:      "Feed unavailable",
		KeyFeedCount:       "%d artworks",
		KeySettingsSaved:   "Settings saved successfully!",
		KeyAPIBaseURL:      "API Base URL",
		KeyViewerID:        "Viewer ID",
		KeyReducedMotion:   "Reduced motion",
		KeyShowPlayerBar:   "Show player bar",
		KeyGlowEnabled:     "Thumbnail glow",
		KeyAnimationScale:  "Animation speed scale",
		KeyGridCellSize:    "Grid cell size",
		KeyConnection:      "Connection",
		KeyInterface:       "Interface",
		KeyByAuthor:        "by %s",
		KeyOverlayHint:     "hold to react · swipe to browse",
		KeyNowPlaying:      "chiptune radio",
		KeyErrorOpeningURL: "Error opening page",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:        "Pixl Viewer",
		KeyFile:            "Файл",
		KeyRefresh:         "Обновить",
		KeySettings:        "Настройки",
		KeyLanguage:        "Язык",
		KeySave:            "Сохранить",
		KeyCancel:          "Отмена",
		KeyLoadingFeed:     "Загрузка ленты...",
		KeyFeedFailed:      "Лента недоступна",
		KeyFeedCount:       "%d работ",
		KeySettingsSaved:   "Настройки успешно сохранены!",
		KeyAPIBaseURL:      "Адрес API",
		KeyViewerID:        "ID зрителя",
		KeyReducedMotion:   "Упрощённая анимация",
		KeyShowPlayerBar:   "Показывать панель плеера",
		KeyGlowEnabled:     "Подсветка миниатюр",
		KeyAnimationScale:  "Масштаб скорости анимации",
		KeyGridCellSize:    "Размер ячейки сетки",
		KeyConnection:      "Подключение",
		KeyInterface:       "Интерфейс",
		KeyByAuthor:        "от %s",
		KeyOverlayHint:     "удерживайте для реакции · листайте свайпом",
		KeyNowPlaying:      "чиптюн-радио",
		KeyErrorOpeningURL: "Ошибка открытия страницы",
	}
}
