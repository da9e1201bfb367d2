package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// GalleryTheme defines a dark, low-chrome theme tuned for artwork viewing
type GalleryTheme struct{}

// NewGalleryTheme creates a new gallery theme
func NewGalleryTheme() fyne.Theme {
	return &GalleryTheme{}
}

// Color returns theme colors. The gallery is always dark so artwork reads the
// same regardless of the OS variant.
func (t *GalleryTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return color.RGBA{R: 13, G: 13, B: 18, A: 255} // Near-black blue
	case theme.ColorNameForeground:
		return color.RGBA{R: 232, G: 233, B: 240, A: 255} // Soft white text
	case theme.ColorNamePrimary:
		return color.RGBA{R: 122, G: 92, B: 255, A: 255} // Violet for primary actions
	case theme.ColorNameSuccess:
		return color.RGBA{R: 64, G: 192, B: 120, A: 255} // Green for confirmations
	case theme.ColorNameError:
		return color.RGBA{R: 224, G: 74, B: 74, A: 255} // Red for errors
	case theme.ColorNameWarning:
		return color.RGBA{R: 255, G: 183, B: 52, A: 255} // Amber for warnings
	case theme.ColorNameInputBackground:
		return color.RGBA{R: 26, G: 27, B: 36, A: 255} // Slightly lifted panels
	case theme.ColorNameSeparator:
		return color.RGBA{R: 42, G: 43, B: 54, A: 255}
	}

	// Use the dark defaults for everything else
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

// Font returns theme fonts
func (t *GalleryTheme) Font(style fyne.TextStyle) fyne.Resource {
	// Use default theme fonts
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *GalleryTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	// Use default theme icons
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with compact adjustments so the chrome stays out
// of the artwork's way
func (t *GalleryTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3 // Reduced from default 4
	case theme.SizeNameInnerPadding:
		return 6 // Reduced from default 8
	case theme.SizeNameLineSpacing:
		return 2 // Reduced from default 4
	case theme.SizeNameScrollBar:
		return 12 // Reduced from default 16
	case theme.SizeNameText:
		return 13 // Reduced from default 14
	case theme.SizeNameHeadingText:
		return 16 // Reduced from default 18
	case theme.SizeNameSubHeadingText:
		return 13 // Reduced from default 16
	case theme.SizeNameCaptionText:
		return 10 // Reduced from default 11
	case theme.SizeNameInputRadius:
		return 3 // Reduced from default 5
	case theme.SizeNameSelectionRadius:
		return 2 // Reduced from default 3
	}

	// Use default theme for everything else
	return theme.DefaultTheme().Size(name)
}
