package ui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/pixlshare/pixl-viewer/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	apiBaseEntry   *widget.Entry
	viewerIDEntry  *widget.Entry
	reducedCheck   *widget.Check
	playerBarCheck *widget.Check
	glowCheck      *widget.Check
	animScaleEntry *widget.Entry
	cellSizeEntry  *widget.Entry
	languageSelect *widget.Select
}

// ShowSettingsDialog builds and shows the settings dialog. onSaved fires
// after a confirmed save so the caller can re-apply live settings.
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func()) {
	NewSettingsDialog(settings, localization, window, onSaved).Show()
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	// Backend address and acting account
	sd.apiBaseEntry = widget.NewEntry()
	sd.apiBaseEntry.SetPlaceHolder(config.DefaultAPIBaseURL)

	sd.viewerIDEntry = widget.NewEntry()
	sd.viewerIDEntry.SetPlaceHolder(config.DefaultViewerID)

	// Interface toggles
	sd.reducedCheck = widget.NewCheck(sd.localization.GetText(KeyReducedMotion), nil)
	sd.playerBarCheck = widget.NewCheck(sd.localization.GetText(KeyShowPlayerBar), nil)
	sd.glowCheck = widget.NewCheck(sd.localization.GetText(KeyGlowEnabled), nil)

	// Animation duration multiplier
	sd.animScaleEntry = widget.NewEntry()
	sd.animScaleEntry.SetPlaceHolder("0.25 - 4.0")

	// Grid cell size
	sd.cellSizeEntry = widget.NewEntry()
	sd.cellSizeEntry.SetPlaceHolder("96 - 240")

	// Language selection
	languageOptions := []string{}
	languageLabels := sd.settings.GetLanguageOptions()
	for code := range languageLabels {
		languageOptions = append(languageOptions, code)
	}
	sd.languageSelect = widget.NewSelect(languageOptions, nil)
	sd.languageSelect.PlaceHolder = sd.localization.GetText(KeyLanguage)

	// Create form
	form := container.NewVBox(
		widget.NewLabel(sd.localization.GetText(KeyConnection)),
		widget.NewSeparator(),

		widget.NewLabel(sd.localization.GetText(KeyAPIBaseURL)+":"),
		sd.apiBaseEntry,

		widget.NewLabel(sd.localization.GetText(KeyViewerID)+":"),
		sd.viewerIDEntry,

		widget.NewSeparator(),
		widget.NewLabel(sd.localization.GetText(KeyInterface)),
		widget.NewSeparator(),

		sd.reducedCheck,
		sd.playerBarCheck,
		sd.glowCheck,

		widget.NewLabel(sd.localization.GetText(KeyAnimationScale)+":"),
		sd.animScaleEntry,

		widget.NewLabel(sd.localization.GetText(KeyGridCellSize)+":"),
		sd.cellSizeEntry,

		widget.NewLabel(sd.localization.GetText(KeyLanguage)+":"),
		sd.languageSelect,
	)

	// Create dialog with buttons
	sd.dialog = dialog.NewCustomConfirm(
		sd.localization.GetText(KeySettings),
		sd.localization.GetText(KeySave),
		sd.localization.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(500, 560))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.apiBaseEntry.SetText(sd.settings.GetAPIBaseURL())
	sd.viewerIDEntry.SetText(sd.settings.GetViewerID())
	sd.reducedCheck.SetChecked(sd.settings.GetReducedMotion())
	sd.playerBarCheck.SetChecked(sd.settings.GetShowPlayerBar())
	sd.glowCheck.SetChecked(sd.settings.GetGlowEnabled())
	sd.animScaleEntry.SetText(strconv.FormatFloat(sd.settings.GetAnimationScale(), 'f', 2, 64))
	sd.cellSizeEntry.SetText(strconv.Itoa(sd.settings.GetGridCellSize()))
	sd.languageSelect.SetSelected(sd.settings.GetLanguage())
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	// Save backend address and viewer
	if sd.apiBaseEntry.Text != "" {
		sd.settings.SetAPIBaseURL(sd.apiBaseEntry.Text)
	}
	if sd.viewerIDEntry.Text != "" {
		sd.settings.SetViewerID(sd.viewerIDEntry.Text)
	}

	// Save interface toggles
	sd.settings.SetReducedMotion(sd.reducedCheck.Checked)
	sd.settings.SetShowPlayerBar(sd.playerBarCheck.Checked)
	sd.settings.SetGlowEnabled(sd.glowCheck.Checked)

	// Validate and save animation scale
	if sd.animScaleEntry.Text != "" {
		if scale, err := strconv.ParseFloat(sd.animScaleEntry.Text, 64); err == nil {
			sd.settings.SetAnimationScale(scale)
		}
	}

	// Validate and save grid cell size
	if sd.cellSizeEntry.Text != "" {
		if size, err := strconv.Atoi(sd.cellSizeEntry.Text); err == nil {
			sd.settings.SetGridCellSize(size)
		}
	}

	// Save language
	if sd.languageSelect.Selected != "" {
		sd.settings.SetLanguage(sd.languageSelect.Selected)
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}
}
