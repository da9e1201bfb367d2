package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
)

// chromePanel is one floating text bar of the focus overlay: the author
// header above the artwork and the stats strip below it. Panels are plain
// canvas primitives positioned by motion channel frames, so they can slide
// and fade independently of the artwork flight.
type chromePanel struct {
	bg       *canvas.Rectangle
	title    *canvas.Text
	sub      *canvas.Text
	trailing *canvas.Text

	baseBG       color.NRGBA
	baseTitle    color.NRGBA
	baseSub      color.NRGBA
	baseTrailing color.NRGBA
}

func newChromePanel(titleSize, subSize float32) *chromePanel {
	p := &chromePanel{
		baseBG:       withAlpha(theme.Color(theme.ColorNameOverlayBackground), 235),
		baseTitle:    withAlpha(theme.Color(theme.ColorNameForeground), 255),
		baseSub:      withAlpha(theme.Color(theme.ColorNameForeground), 160),
		baseTrailing: withAlpha(theme.Color(theme.ColorNameForeground), 130),
	}

	p.bg = canvas.NewRectangle(p.baseBG)
	p.bg.CornerRadius = 6

	p.title = canvas.NewText("", p.baseTitle)
	p.title.TextSize = titleSize
	p.title.TextStyle = fyne.TextStyle{Bold: true}

	p.sub = canvas.NewText("", p.baseSub)
	p.sub.TextSize = subSize

	p.trailing = canvas.NewText("", p.baseTrailing)
	p.trailing.TextSize = subSize
	return p
}

func (p *chromePanel) objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{p.bg, p.title, p.sub, p.trailing}
}

// setContent swaps the displayed strings, e.g. at the midpoint of a
// swipe cross-fade
func (p *chromePanel) setContent(title, sub, trailing string) {
	p.title.Text = title
	p.sub.Text = sub
	p.trailing.Text = trailing
	p.title.Refresh()
	p.sub.Refresh()
	p.trailing.Refresh()
}

// applyFrame moves the panel to the frame's rectangle and scales every
// element's color toward transparent by the frame's opacity
func (p *chromePanel) applyFrame(f Frame) {
	r := f.Rect

	p.bg.Move(fyne.NewPos(r.Left, r.Top))
	p.bg.Resize(fyne.NewSize(r.Width, r.Height))

	titleSize := p.title.MinSize()
	subSize := p.sub.MinSize()
	contentHeight := titleSize.Height
	if p.sub.Text != "" {
		contentHeight += subSize.Height
	}
	top := r.Top + (r.Height-contentHeight)/2

	p.title.Move(fyne.NewPos(r.Left+ChromePadding, top))
	p.sub.Move(fyne.NewPos(r.Left+ChromePadding, top+titleSize.Height))

	trailingSize := p.trailing.MinSize()
	p.trailing.Move(fyne.NewPos(r.Right()-ChromePadding-trailingSize.Width, r.Top+(r.Height-trailingSize.Height)/2))

	p.bg.FillColor = scaleAlpha(p.baseBG, f.Opacity)
	p.title.Color = scaleAlpha(p.baseTitle, f.Opacity)
	p.sub.Color = scaleAlpha(p.baseSub, f.Opacity)
	p.trailing.Color = scaleAlpha(p.baseTrailing, f.Opacity)

	p.bg.Refresh()
	p.title.Refresh()
	p.sub.Refresh()
	p.trailing.Refresh()
}

// scaleAlpha multiplies the color's alpha by opacity, clamped to [0, 1]
func scaleAlpha(c color.NRGBA, opacity float32) color.NRGBA {
	if opacity < 0 {
		opacity = 0
	} else if opacity > 1 {
		opacity = 1
	}
	c.A = uint8(float32(c.A) * opacity)
	return c
}
