package ui

import (
	"image"
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/pixlshare/pixl-viewer/internal/media"
	"github.com/pixlshare/pixl-viewer/internal/model"
	"github.com/pixlshare/pixl-viewer/internal/social"
)

// GalleryGrid presents the feed as a wrapping grid of artwork cells and
// reports on-screen cell geometry to the focus overlay. It is the overlay's
// GeometrySource: OriginRect answers where an item's tile currently sits in
// window coordinates, or reports that the tile is gone or scrolled away.
type GalleryGrid struct {
	store *media.Store
	stats *social.Cache

	cellSize    float32
	glowEnabled bool
	onSelect    func(index int)

	mutex sync.RWMutex
	items []model.ArtItem
	cells map[*galleryCell]struct{}

	wrap *widget.GridWrap
}

// NewGalleryGrid creates the grid. onSelect fires with the tapped item index.
func NewGalleryGrid(store *media.Store, stats *social.Cache, cellSize float32, glowEnabled bool, onSelect func(index int)) *GalleryGrid {
	g := &GalleryGrid{
		store:       store,
		stats:       stats,
		cellSize:    cellSize,
		glowEnabled: glowEnabled,
		onSelect:    onSelect,
		cells:       make(map[*galleryCell]struct{}),
	}

	g.wrap = widget.NewGridWrap(
		func() int { return g.Count() },
		func() fyne.CanvasObject { return newGalleryCell(g) },
		func(id widget.GridWrapItemID, o fyne.CanvasObject) {
			cell := o.(*galleryCell)
			if item, ok := g.Item(int(id)); ok {
				cell.bind(item, int(id))
			}
		},
	)
	return g
}

// Container returns the canvas object to embed in the window layout
func (g *GalleryGrid) Container() fyne.CanvasObject {
	return g.wrap
}

// SetItems replaces the feed contents and redraws the grid
func (g *GalleryGrid) SetItems(items []model.ArtItem) {
	g.mutex.Lock()
	g.items = items
	g.mutex.Unlock()
	g.wrap.Refresh()
}

// SetCellSize changes the tile edge length and re-lays out the grid
func (g *GalleryGrid) SetCellSize(size float32) {
	g.mutex.Lock()
	changed := g.cellSize != size
	g.cellSize = size
	g.mutex.Unlock()
	if changed {
		g.wrap.Refresh()
	}
}

// SetGlowEnabled starts or stops the pulsing border on every live cell
func (g *GalleryGrid) SetGlowEnabled(enabled bool) {
	g.mutex.Lock()
	if g.glowEnabled == enabled {
		g.mutex.Unlock()
		return
	}
	g.glowEnabled = enabled
	cells := make([]*galleryCell, 0, len(g.cells))
	for cell := range g.cells {
		cells = append(cells, cell)
	}
	g.mutex.Unlock()

	for _, cell := range cells {
		if enabled {
			cell.startGlow()
		} else {
			cell.stopGlow()
		}
	}
}

// Count returns the number of items in the feed
func (g *GalleryGrid) Count() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return len(g.items)
}

// Item returns the item at index, if it exists
func (g *GalleryGrid) Item(index int) (model.ArtItem, bool) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	if index < 0 || index >= len(g.items) {
		return model.ArtItem{}, false
	}
	return g.items[index], true
}

// ScrollTo brings the cell for index into view, so a later return flight
// from the overlay has a live tile to land on
func (g *GalleryGrid) ScrollTo(index int) {
	if index < 0 || index >= g.Count() {
		return
	}
	g.wrap.ScrollTo(widget.GridWrapItemID(index))
}

// OriginRect reports the window-space rectangle of the artwork box inside
// the cell currently bound to index. ok is false when the item is gone, the
// cell is recycled, or the tile sits fully outside the window, in which
// case the overlay falls back to a fade.
func (g *GalleryGrid) OriginRect(index int) (model.Rect, bool) {
	g.mutex.RLock()
	var match *galleryCell
	if index >= 0 && index < len(g.items) {
		for cell := range g.cells {
			if cell.index == index {
				match = cell
				break
			}
		}
	}
	g.mutex.RUnlock()
	if match == nil {
		return model.Rect{}, false
	}

	driver := fyne.CurrentApp().Driver()
	cnv := driver.CanvasForObject(match.image)
	if cnv == nil {
		return model.Rect{}, false
	}

	size := match.image.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return model.Rect{}, false
	}

	pos := driver.AbsolutePositionForObject(match.image)
	rect := model.NewRect(pos.X, pos.Y, size.Width, size.Height)

	canvasSize := cnv.Size()
	if rect.Right() <= 0 || rect.Bottom() <= 0 || rect.Left >= canvasSize.Width || rect.Top >= canvasSize.Height {
		return model.Rect{}, false
	}
	return rect, true
}

func (g *GalleryGrid) rememberCell(cell *galleryCell) {
	g.mutex.Lock()
	g.cells[cell] = struct{}{}
	g.mutex.Unlock()
}

func (g *GalleryGrid) forgetCell(cell *galleryCell) {
	g.mutex.Lock()
	delete(g.cells, cell)
	g.mutex.Unlock()
}

// galleryCell is one reusable tile: a glowing frame around the pixel-art
// thumbnail with the title underneath
type galleryCell struct {
	widget.BaseWidget
	grid *GalleryGrid

	index int
	item  model.ArtItem

	placeholder *canvas.Rectangle
	frame       *canvas.Rectangle
	image       *canvas.Image
	hover       *canvas.Rectangle
	caption     *widget.Label

	glow *fyne.Animation
}

func newGalleryCell(g *GalleryGrid) *galleryCell {
	cell := &galleryCell{
		grid:        g,
		index:       -1,
		placeholder: canvas.NewRectangle(theme.Color(theme.ColorNameInputBackground)),
		frame:       canvas.NewRectangle(color.Transparent),
		image:       canvas.NewImageFromImage(nil),
		hover:       canvas.NewRectangle(color.NRGBA{R: 255, G: 255, B: 255, A: 18}),
		caption:     widget.NewLabel(""),
	}
	cell.placeholder.CornerRadius = 4
	cell.frame.CornerRadius = 4
	cell.frame.StrokeWidth = GlowFrameStroke
	cell.frame.StrokeColor = withAlpha(theme.Color(theme.ColorNamePrimary), GlowBaseAlpha)
	// nearest-neighbour scaling keeps the pixel art crisp
	cell.image.ScaleMode = canvas.ImageScalePixels
	cell.image.FillMode = canvas.ImageFillContain
	cell.image.Hide()
	cell.hover.Hide()
	cell.caption.Alignment = fyne.TextAlignCenter
	cell.caption.Truncation = fyne.TextTruncateEllipsis

	cell.ExtendBaseWidget(cell)
	g.rememberCell(cell)

	if g.glowEnabled {
		cell.startGlow()
	}
	return cell
}

// startGlow runs the pulsing border loop. The tick ignores the animation's
// own progress and reads the shared glow clock instead, so every cell in
// the grid pulses in phase no matter when it was created.
func (c *galleryCell) startGlow() {
	if c.glow != nil {
		return
	}
	base := theme.Color(theme.ColorNamePrimary)
	span := float32(GlowPeakAlpha - GlowBaseAlpha)

	c.glow = fyne.NewAnimation(GlowPeriod, func(float32) {
		alpha := GlowAlpha(GlowPhase(time.Now(), GlowPeriod))
		c.frame.StrokeColor = withAlpha(base, GlowBaseAlpha+uint8(span*alpha))
		canvas.Refresh(c.frame)
	})
	c.glow.RepeatCount = fyne.AnimationRepeatForever
	c.glow.Curve = fyne.AnimationLinear
	c.glow.Start()
}

// stopGlow halts the loop and settles the border on its resting alpha
func (c *galleryCell) stopGlow() {
	if c.glow == nil {
		return
	}
	c.glow.Stop()
	c.glow = nil
	c.frame.StrokeColor = withAlpha(theme.Color(theme.ColorNamePrimary), GlowBaseAlpha)
	canvas.Refresh(c.frame)
}

// bind points the cell at a feed item. Artwork resolves from the in-memory
// store when warm, otherwise a background load fills it in once fetched.
func (c *galleryCell) bind(item model.ArtItem, index int) {
	c.index = index
	sameItem := c.item.ID == item.ID
	c.item = item
	c.caption.SetText(item.GetDisplayTitle())

	if sameItem && c.image.Image != nil {
		return
	}

	c.grid.stats.EnsureLoaded(item.ID)

	if img := c.grid.store.LoadMemoryOnly(item.ID); img != nil {
		c.image.Image = img
		c.image.Show()
		c.image.Refresh()
		return
	}

	c.image.Image = nil
	c.image.Hide()
	c.image.Refresh()

	boundID := item.ID
	c.grid.store.Load(item, func(img image.Image) {
		fyne.Do(func() {
			// the cell may have been recycled for another item meanwhile
			if c.item.ID != boundID || img == nil {
				return
			}
			c.image.Image = img
			c.image.Show()
			c.image.Refresh()
		})
	})
}

// Tapped opens the focus overlay on this cell's item
func (c *galleryCell) Tapped(*fyne.PointEvent) {
	if c.grid.onSelect != nil && c.index >= 0 {
		c.grid.onSelect(c.index)
	}
}

var _ desktop.Hoverable = (*galleryCell)(nil)

func (c *galleryCell) MouseIn(*desktop.MouseEvent) {
	c.hover.Show()
	c.hover.Refresh()
}

func (c *galleryCell) MouseMoved(*desktop.MouseEvent) {}

func (c *galleryCell) MouseOut() {
	c.hover.Hide()
	c.hover.Refresh()
}

func (c *galleryCell) CreateRenderer() fyne.WidgetRenderer {
	return &galleryCellRenderer{cell: c}
}

type galleryCellRenderer struct {
	cell *galleryCell
}

func (r *galleryCellRenderer) Layout(size fyne.Size) {
	captionHeight := r.cell.caption.MinSize().Height
	artHeight := size.Height - captionHeight
	if artHeight < 0 {
		artHeight = 0
	}
	artArea := fyne.NewSize(size.Width, artHeight)

	r.cell.placeholder.Resize(artArea)
	r.cell.placeholder.Move(fyne.NewPos(0, 0))
	r.cell.frame.Resize(artArea)
	r.cell.frame.Move(fyne.NewPos(0, 0))
	r.cell.hover.Resize(artArea)
	r.cell.hover.Move(fyne.NewPos(0, 0))

	imageWidth := artArea.Width - 2*GlowFrameInset
	imageHeight := artArea.Height - 2*GlowFrameInset
	if imageWidth < 0 {
		imageWidth = 0
	}
	if imageHeight < 0 {
		imageHeight = 0
	}
	r.cell.image.Resize(fyne.NewSize(imageWidth, imageHeight))
	r.cell.image.Move(fyne.NewPos(GlowFrameInset, GlowFrameInset))

	r.cell.caption.Resize(fyne.NewSize(size.Width, captionHeight))
	r.cell.caption.Move(fyne.NewPos(0, artHeight))
}

func (r *galleryCellRenderer) MinSize() fyne.Size {
	return fyne.NewSize(r.cell.grid.cellSize, r.cell.grid.cellSize+r.cell.caption.MinSize().Height)
}

func (r *galleryCellRenderer) Refresh() {
	r.cell.placeholder.Refresh()
	r.cell.frame.Refresh()
	r.cell.image.Refresh()
	r.cell.caption.Refresh()
}

func (r *galleryCellRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.cell.placeholder, r.cell.image, r.cell.frame, r.cell.hover, r.cell.caption}
}

func (r *galleryCellRenderer) Destroy() {
	r.cell.stopGlow()
	r.cell.grid.forgetCell(r.cell)
}

// withAlpha returns the color with its alpha channel replaced
func withAlpha(c color.Color, alpha uint8) color.NRGBA {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: alpha}
}
