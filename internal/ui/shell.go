package ui

import (
	"context"
	"fmt"
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/pixlshare/pixl-viewer/internal/config"
	"github.com/pixlshare/pixl-viewer/internal/media"
	"github.com/pixlshare/pixl-viewer/internal/model"
	"github.com/pixlshare/pixl-viewer/internal/platform"
	"github.com/pixlshare/pixl-viewer/internal/social"
)

// Shell constants
const (
	FeedRequestTimeout = 10 * time.Second
)

// GalleryShell is the main window structure: the gallery grid in the center,
// header controls on top and the optional docked player bar at the bottom.
// Tapping a grid cell hands off to the focus overlay.
type GalleryShell struct {
	window       fyne.Window
	settings     *config.Settings
	localization *Localization

	client social.Client
	stats  *social.Cache
	store  *media.Store

	grid    *GalleryGrid
	overlay *FocusOverlay

	titleLabel *widget.Label
	refreshBtn *widget.Button

	// Docked player bar
	playerBar   *fyne.Container
	playerLabel *widget.Label
	playToggle  *widget.Button
	playing     bool

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSpinner   *widget.ProgressBarInfinite

	loadMutex sync.Mutex
	loading   bool
}

// NewGalleryShell creates and initializes the main UI
func NewGalleryShell(window fyne.Window, app fyne.App, client social.Client, stats *social.Cache, store *media.Store) *GalleryShell {
	// Initialize settings
	settings := config.NewSettings(app)

	// Initialize localization
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &GalleryShell{
		window:       window,
		settings:     settings,
		localization: localization,
		client:       client,
		stats:        stats,
		store:        store,
	}

	zap.S().Debugf("shell: initialized, client ready=%v", ui.client != nil)

	// Set window title
	window.SetTitle(localization.GetText(KeyAppTitle))

	// Push stats changes into the overlay's meta panel
	ui.stats.SetUpdateCallback(ui.onStatsUpdate)

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *GalleryShell) setupUI() {
	// Create menu
	ui.createMenu()

	// Create gallery grid
	ui.grid = NewGalleryGrid(
		ui.store,
		ui.stats,
		float32(ui.settings.GetGridCellSize()),
		ui.settings.GetGlowEnabled(),
		ui.onSelectItem,
	)

	// Create focus overlay on top of the grid
	ui.overlay = NewFocusOverlay(ui.window, ui.grid, ui.stats, ui.store, ui.localization)
	ui.overlay.SetReducedMotion(ui.settings.GetReducedMotion())
	ui.overlay.SetDurationScale(float32(ui.settings.GetAnimationScale()))
	ui.overlay.SetSecondaryChrome(ui.settings.GetShowPlayerBar())
	ui.overlay.OnIndexChanged = ui.onFocusedIndexChanged
	ui.overlay.OnNavigateToDetail = ui.onOpenDetail

	// Create header row
	ui.titleLabel = widget.NewLabel(ui.localization.GetText(KeyAppTitle))
	ui.titleLabel.TextStyle = fyne.TextStyle{Bold: true}

	ui.refreshBtn = widget.NewButton(IconRefresh, ui.onRefreshClick)
	ui.refreshBtn.Importance = widget.LowImportance

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	topPanel := container.NewBorder(nil, nil, ui.titleLabel, container.NewHBox(ui.refreshBtn, settingsBtn))

	// Create notification panel under the header (hidden by default)
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Alignment = fyne.TextAlignLeading
	ui.notificationSpinner = widget.NewProgressBarInfinite()
	ui.notificationSpinner.Hide()
	ui.notificationContainer = container.NewHBox(ui.notificationSpinner, container.NewPadded(ui.notificationLabel))
	ui.notificationContainer.Hide()

	// Combine header and notification panel at the top
	topCombined := container.NewVBox(topPanel, ui.notificationContainer)

	// Create docked player bar. The bar stays visible while the overlay is
	// open, so its height matches what the overlay viewport subtracts.
	ui.playToggle = widget.NewButton(IconPlay, ui.onPlayToggle)
	ui.playToggle.Importance = widget.LowImportance
	ui.playerLabel = widget.NewLabel(ui.localization.GetText(KeyNowPlaying))

	barSpacer := canvas.NewRectangle(color.Transparent)
	barSpacer.SetMinSize(fyne.NewSize(0, DockedBarHeight))
	ui.playerBar = container.NewStack(
		barSpacer,
		container.NewBorder(nil, nil, ui.playToggle, nil, ui.playerLabel),
	)
	if !ui.settings.GetShowPlayerBar() {
		ui.playerBar.Hide()
	}

	// Create main layout
	content := container.NewBorder(
		topCombined,         // top
		ui.playerBar,        // bottom
		nil,                 // left
		nil,                 // right
		ui.grid.Container(), // center
	)

	ui.window.SetContent(content)

	zap.S().Debugf("shell: UI setup completed")
}

// createMenu creates the application menu
func (ui *GalleryShell) createMenu() {
	// File menu items
	refreshItem := fyne.NewMenuItem(ui.localization.GetText(KeyRefresh), ui.onRefreshClick)
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	// Language submenu
	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))

	availableLanguages := ui.localization.GetAvailableLanguages()
	for code, name := range availableLanguages {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})

		// Mark current language
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}

		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	// Create main menu
	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), refreshItem, settingsItem),
		languageMenu,
	)

	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *GalleryShell) onLanguageChange(langCode string) {
	// Update localization
	ui.localization.SetLanguage(langCode)

	// Save to settings
	ui.settings.SetLanguage(langCode)

	// Update UI texts
	ui.refreshUITexts()

	// Recreate menu to update checkmarks
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *GalleryShell) refreshUITexts() {
	// Update window title
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))

	// Update UI elements
	ui.titleLabel.SetText(ui.localization.GetText(KeyAppTitle))
	ui.playerLabel.SetText(ui.localization.GetText(KeyNowPlaying))
}

// LoadFeed fetches the feed in the background and applies it to the grid.
// Re-entrant calls while a fetch is in flight are ignored.
func (ui *GalleryShell) LoadFeed() {
	ui.loadMutex.Lock()
	if ui.loading {
		ui.loadMutex.Unlock()
		return
	}
	ui.loading = true
	ui.loadMutex.Unlock()

	ui.showNotification(ui.localization.GetText(KeyLoadingFeed), true)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), FeedRequestTimeout)
		defer cancel()

		items, err := ui.client.ListItems(ctx)

		ui.loadMutex.Lock()
		ui.loading = false
		ui.loadMutex.Unlock()

		if err != nil {
			zap.S().Warnf("shell: feed load failed: %v", err)
			ui.showNotification(ui.localization.GetText(KeyFeedFailed), false)
			return
		}

		fyne.Do(func() {
			ui.applyFeed(items)
		})
	}()
}

// applyFeed installs a fetched feed. Must run on the UI thread.
func (ui *GalleryShell) applyFeed(items []model.ArtItem) {
	ui.grid.SetItems(items)
	ui.overlay.SetItems(items)

	ui.notificationSpinner.Hide()
	ui.notificationLabel.SetText(fmt.Sprintf(ui.localization.GetText(KeyFeedCount), len(items)))
	ui.notificationContainer.Show()
	ui.notificationContainer.Refresh()

	zap.S().Debugf("shell: feed loaded, %d items", len(items))
}

// showNotification displays a message in the notification panel under the
// header. When spinning is true, a spinner indicates background activity.
func (ui *GalleryShell) showNotification(message string, spinning bool) {
	if ui.notificationLabel == nil || ui.notificationContainer == nil || ui.notificationSpinner == nil {
		return
	}
	fyne.Do(func() {
		ui.notificationLabel.SetText(message)
		if spinning {
			ui.notificationSpinner.Show()
		} else {
			ui.notificationSpinner.Hide()
		}
		ui.notificationContainer.Show()
		ui.notificationContainer.Refresh()
	})
}

// hideNotification hides the notification panel.
func (ui *GalleryShell) hideNotification() {
	if ui.notificationContainer == nil || ui.notificationSpinner == nil {
		return
	}
	fyne.Do(func() {
		ui.notificationSpinner.Hide()
		ui.notificationContainer.Hide()
	})
}

// onRefreshClick handles the refresh button click
func (ui *GalleryShell) onRefreshClick() {
	ui.LoadFeed()
}

// onSelectItem opens the focus overlay on the tapped grid cell
func (ui *GalleryShell) onSelectItem(index int) {
	if ui.overlay.IsOpen() {
		return
	}
	ui.hideNotification()
	ui.overlay.Open(index)
}

// onFocusedIndexChanged keeps the grid scrolled to the artwork focused in
// the overlay, so closing lands on a visible cell
func (ui *GalleryShell) onFocusedIndexChanged(index int) {
	ui.grid.ScrollTo(index)
}

// onStatsUpdate handles social counter changes from background loads
func (ui *GalleryShell) onStatsUpdate(itemID string) {
	fyne.Do(func() {
		if ui.overlay != nil {
			ui.overlay.RefreshStats(itemID)
		}
	})
}

// onOpenDetail opens the item's web page in the system browser
func (ui *GalleryShell) onOpenDetail(item model.ArtItem) {
	pageURL := ui.settings.GetAPIBaseURL() + "/items/" + item.ID
	zap.S().Debugf("shell: opening detail page %s", pageURL)

	if err := platform.OpenWebPage(pageURL); err != nil {
		zap.S().Warnf("shell: opening %s failed: %v", pageURL, err)
		ui.showNotification(ui.localization.GetText(KeyErrorOpeningURL), false)
	}
}

// onPlayToggle flips the decorative player bar between play and pause
func (ui *GalleryShell) onPlayToggle() {
	ui.playing = !ui.playing
	if ui.playing {
		ui.playToggle.SetText(IconPause)
	} else {
		ui.playToggle.SetText(IconPlay)
	}
	zap.S().Debugf("shell: player playing=%v", ui.playing)
}

// onShowSettings shows the settings dialog
func (ui *GalleryShell) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, ui.onSettingsSaved)
}

// onSettingsSaved re-applies every setting that affects live components
func (ui *GalleryShell) onSettingsSaved() {
	ui.overlay.SetReducedMotion(ui.settings.GetReducedMotion())
	ui.overlay.SetDurationScale(float32(ui.settings.GetAnimationScale()))
	ui.overlay.SetSecondaryChrome(ui.settings.GetShowPlayerBar())

	ui.grid.SetCellSize(float32(ui.settings.GetGridCellSize()))
	ui.grid.SetGlowEnabled(ui.settings.GetGlowEnabled())

	if ui.settings.GetShowPlayerBar() {
		ui.playerBar.Show()
	} else {
		ui.playerBar.Hide()
	}

	// The dialog can also change the language
	ui.localization.SetLanguage(ui.settings.GetLanguage())
	ui.refreshUITexts()
	ui.createMenu()

	ui.showNotification(ui.localization.GetText(KeySettingsSaved), false)
}
