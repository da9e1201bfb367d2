package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	"github.com/pixlshare/pixl-viewer/internal/applog"
	"github.com/pixlshare/pixl-viewer/internal/config"
	"github.com/pixlshare/pixl-viewer/internal/media"
	"github.com/pixlshare/pixl-viewer/internal/social"
	"github.com/pixlshare/pixl-viewer/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.pixlshare.pixl-viewer"
	AppName = "Pixl Viewer"

	WindowWidth  = 960
	WindowHeight = 680
)

func main() {
	defer applog.Init(applog.Environment())()

	zap.S().Infof("%s v%s starting", AppName, version)

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	// Apply gallery theme
	myApp.Settings().SetTheme(ui.NewGalleryTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Initialize services
	settings := config.NewSettings(myApp)
	client := social.NewHTTPClient(settings.GetAPIBaseURL(), settings.GetViewerID())
	stats := social.NewCache(client, settings.GetViewerID())
	store := media.NewStore(settings.GetAPIBaseURL())

	// Create and setup UI
	shell := ui.NewGalleryShell(myWindow, myApp, client, stats, store)
	shell.LoadFeed()

	// Show and run
	myWindow.ShowAndRun()
}
