package platform

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
	OSAndroid = "android"
)

// Command constants
const (
	OpenCommand    = "open"
	XDGOpenCommand = "xdg-open"
	CmdCommand     = "cmd"
	StartCommand   = "start"
	WindowsCmdFlag = "/c"
)

// OpenWebPage opens the URL in the default system browser
func OpenWebPage(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("unsupported url scheme: %q", parsed.Scheme)
	}

	switch runtime.GOOS {
	case OSDarwin:
		return openWebPageMacOS(parsed.String())
	case OSWindows:
		return openWebPageWindows(parsed.String())
	case OSLinux:
		return openWebPageLinux(parsed.String())
	case OSAndroid:
		return openWebPageAndroid(parsed.String())
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// openWebPageMacOS opens the URL with the default browser on macOS
func openWebPageMacOS(pageURL string) error {
	cmd := exec.Command(OpenCommand, pageURL)
	return cmd.Run()
}

// openWebPageWindows opens the URL with the default browser on Windows
func openWebPageWindows(pageURL string) error {
	cmd := exec.Command(CmdCommand, WindowsCmdFlag, StartCommand, "", pageURL)
	return cmd.Run()
}

// openWebPageLinux opens the URL with the default browser on Linux
func openWebPageLinux(pageURL string) error {
	// xdg-open resolves the user's preferred browser
	cmd := exec.Command(XDGOpenCommand, pageURL)
	return cmd.Run()
}

// openWebPageAndroid opens the URL through a VIEW intent on Android
func openWebPageAndroid(pageURL string) error {
	cmd := exec.Command("am", "start", "-a", "android.intent.action.VIEW", "-d", pageURL)
	return cmd.Run()
}
