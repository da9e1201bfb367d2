package ui

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/pixlshare/pixl-viewer/internal/media"
	"github.com/pixlshare/pixl-viewer/internal/model"
	"github.com/pixlshare/pixl-viewer/internal/platform"
	"github.com/pixlshare/pixl-viewer/internal/social"
)

// GeometrySource answers where an item's grid tile currently sits in window
// coordinates. ok is false when the tile does not exist or is scrolled
// fully out of view, and the overlay then falls back to a fade.
type GeometrySource interface {
	OriginRect(index int) (model.Rect, bool)
}

// OverlaySession captures the facts fixed at the moment the overlay opened.
// The initial origin rect is the opening tile's geometry, kept as the
// return-flight fallback when the live tile has been scrolled away. It only
// applies while the selection still points at the item it was captured for.
type OverlaySession struct {
	SelectedIndex      int
	InitialOriginRect  model.Rect
	HasInitialOrigin   bool
	HasSecondaryChrome bool
}

// TransitionElement pins one artwork of a swipe: the item it shows, the
// rect its flight starts from and the rect it is flying to.
type TransitionElement struct {
	Item      model.ArtItem
	StartRect model.Rect
	Rect      model.Rect
}

// TransitionSnapshot pins down one swipe before any animation starts, so
// the dual flight and the index commit agree on what is moving where even
// if the feed or viewport changes mid-transition. The outgoing element
// flies from the focus position back to its grid tile while the incoming
// element flies from its own tile up to the focus position; the main
// focused element stays hidden in between.
type TransitionSnapshot struct {
	FromIndex int
	ToIndex   int
	Outgoing  TransitionElement
	Incoming  TransitionElement
}

// closeMode is how the return flight ends
type closeMode int

const (
	closeToFreshOrigin closeMode = iota
	closeToInitialOrigin
	closeFade
)

func (m closeMode) String() string {
	switch m {
	case closeToFreshOrigin:
		return "fresh origin"
	case closeToInitialOrigin:
		return "initial origin"
	default:
		return "fade"
	}
}

// FocusOverlay is the full-window artwork viewer layered over the gallery.
// Opening flies the tapped tile up to a fixed focus position, swiping moves
// through neighbouring items, and dismissing flies the artwork back onto
// its tile. A phase machine serializes these transitions; every entry point
// must run on the UI thread.
type FocusOverlay struct {
	widget.BaseWidget

	window   fyne.Window
	geometry GeometrySource
	stats    *social.Cache
	store    *media.Store
	loc      *Localization

	// OnClosed fires after the overlay left the screen. OnNavigateToDetail
	// fires when the viewer taps into the focused artwork or its chrome.
	// OnIndexChanged fires after a swipe or jump commits.
	OnClosed           func()
	OnNavigateToDetail func(item model.ArtItem)
	OnIndexChanged     func(index int)

	items    []model.ArtItem
	selected int

	machine  *PhaseMachine
	session  OverlaySession
	viewport Viewport

	swipeSnapshot   *TransitionSnapshot
	busy            bool
	dragging        bool
	pendingRelayout bool

	// contentKey identifies which item currently owns the chrome text, so a
	// stale cross-fade midpoint never resurrects an older item's content
	contentKey uint64

	hasSecondaryChrome bool

	backdrop *canvas.Rectangle
	flight   *canvas.Image
	outgoing *canvas.Image
	incoming *canvas.Image
	header   *chromePanel
	meta     *chromePanel
	burst    *canvas.Text

	focusedCh  *Channel
	outgoingCh *Channel
	incomingCh *Channel
	backdropCh *Channel
	headerCh   *Channel
	metaCh     *Channel
	burstCh    *Channel

	recognizer  *Recognizer
	lastPointer fyne.Position

	history      *HistoryGuard
	prevTypedKey func(*fyne.KeyEvent)
}

// NewFocusOverlay creates the overlay for one window. It stays off the
// canvas until Open is called.
func NewFocusOverlay(window fyne.Window, geometry GeometrySource, stats *social.Cache, store *media.Store, loc *Localization) *FocusOverlay {
	o := &FocusOverlay{
		window:   window,
		geometry: geometry,
		stats:    stats,
		store:    store,
		loc:      loc,
		selected: -1,
	}

	o.backdrop = canvas.NewRectangle(color.NRGBA{})
	o.flight = canvas.NewImageFromImage(nil)
	o.flight.ScaleMode = canvas.ImageScalePixels
	o.flight.FillMode = canvas.ImageFillContain
	o.outgoing = canvas.NewImageFromImage(nil)
	o.outgoing.ScaleMode = canvas.ImageScalePixels
	o.outgoing.FillMode = canvas.ImageFillContain
	o.outgoing.Hide()
	o.incoming = canvas.NewImageFromImage(nil)
	o.incoming.ScaleMode = canvas.ImageScalePixels
	o.incoming.FillMode = canvas.ImageFillContain
	o.incoming.Hide()
	o.header = newChromePanel(15, 12)
	o.meta = newChromePanel(14, 12)
	o.burst = canvas.NewText("", color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	o.burst.Hide()

	o.focusedCh = NewChannel("focused", func(f Frame) { applyImageFrame(o.flight, f) })
	o.outgoingCh = NewChannel("outgoing", func(f Frame) { applyImageFrame(o.outgoing, f) })
	o.incomingCh = NewChannel("incoming", func(f Frame) { applyImageFrame(o.incoming, f) })
	o.backdropCh = NewChannel("backdrop", o.applyBackdropFrame)
	o.headerCh = NewChannel("header", o.header.applyFrame)
	o.metaCh = NewChannel("meta", o.meta.applyFrame)
	o.burstCh = NewChannel("burst", o.applyBurstFrame)
	o.backdropCh.SetCurve(fyne.AnimationEaseOut)

	o.recognizer = NewRecognizer(
		func() { fyne.Do(o.handleLongPress) },
		func(pressing bool) {
			if pressing {
				o.applyPressedCue()
			}
		},
	)

	o.history = NewHistoryGuard(window)

	o.ExtendBaseWidget(o)
	return o
}

// SetItems replaces the feed the overlay pages through. Indexes must stay
// stable while the overlay is open.
func (o *FocusOverlay) SetItems(items []model.ArtItem) {
	o.items = items
}

// SetSecondaryChrome declares whether a docked bar shortens the viewport
func (o *FocusOverlay) SetSecondaryChrome(visible bool) {
	o.hasSecondaryChrome = visible
}

// SetReducedMotion switches every motion channel between animated flights
// and instant placement
func (o *FocusOverlay) SetReducedMotion(reduced bool) {
	for _, ch := range o.channels() {
		ch.SetReducedMotion(reduced)
	}
}

// SetDurationScale stretches or shrinks every transition duration
func (o *FocusOverlay) SetDurationScale(scale float32) {
	for _, ch := range o.channels() {
		ch.SetDurationScale(scale)
	}
}

// IsOpen reports whether an overlay session is active, including one still
// flying out
func (o *FocusOverlay) IsOpen() bool {
	return o.machine != nil
}

// SelectedIndex returns the index the overlay currently focuses, -1 when
// closed
func (o *FocusOverlay) SelectedIndex() int {
	if o.machine == nil {
		return -1
	}
	return o.selected
}

// Open mounts the overlay over the gallery and flies the item's artwork
// from its grid tile to the focus position. With no usable tile geometry
// the artwork fades in at the focus position instead.
func (o *FocusOverlay) Open(index int) {
	if o.machine != nil {
		zap.S().Warnf("overlay: open ignored, session already active in phase %s", o.machine.Current())
		return
	}
	item, ok := o.itemAt(index)
	if !ok {
		zap.S().Warnf("overlay: open ignored, index %d out of range", index)
		return
	}

	o.machine = NewPhaseMachine()
	o.selected = index

	origin, hasOrigin := o.geometry.OriginRect(index)
	o.session = OverlaySession{
		SelectedIndex:      index,
		InitialOriginRect:  origin,
		HasInitialOrigin:   hasOrigin,
		HasSecondaryChrome: o.hasSecondaryChrome,
	}

	cnv := o.window.Canvas()
	o.viewport = Viewport{Size: cnv.Size(), HasSecondaryChrome: o.hasSecondaryChrome}

	cnv.Overlays().Add(o)
	o.Resize(cnv.Size())
	o.Move(fyne.NewPos(0, 0))

	o.history.Push(o.requestDismiss)
	o.prevTypedKey = cnv.OnTypedKey()
	cnv.SetOnTypedKey(o.typedKey)

	if err := o.machine.Transition(PhaseFlyingIn); err != nil {
		return
	}

	o.bindFocusedItem(item)
	o.stats.EnsureLoaded(item.ID)

	target := o.viewport.FocusedRect()
	headerRect := o.viewport.HeaderRect(target)
	metaRect := o.viewport.MetaRect(target)

	if hasOrigin {
		o.focusedCh.Set(Frame{Rect: origin, Opacity: 1})
	} else {
		zap.S().Debugf("overlay: no origin for index %d, fading in", index)
		o.focusedCh.Set(Frame{Rect: rectScaled(target, 0.92), Opacity: 0})
	}
	o.backdropCh.Set(Frame{Rect: o.viewport.BackdropRect(), Opacity: 0})
	o.headerCh.Set(Frame{Rect: headerRect.Offset(0, -ChromeSlideOffset), Opacity: 0})
	o.metaCh.Set(Frame{Rect: metaRect.Offset(0, ChromeSlideOffset), Opacity: 0})

	o.busy = true
	dones := []<-chan struct{}{
		o.focusedCh.AnimateTo(Frame{Rect: target, Opacity: 1}, FlightDuration),
		o.backdropCh.AnimateTo(Frame{Rect: o.viewport.BackdropRect(), Opacity: 1}, FadeDuration),
		o.headerCh.AnimateTo(Frame{Rect: headerRect, Opacity: 1}, FlightDuration),
		o.metaCh.AnimateTo(Frame{Rect: metaRect, Opacity: 1}, FlightDuration),
	}
	awaitThen(dones, func() {
		if o.machine == nil || o.machine.Current() != PhaseFlyingIn {
			return
		}
		if err := o.machine.Transition(PhaseSelected); err != nil {
			return
		}
		o.settleIdle()
		o.stats.NoteDisplayed(item)
	})
}

// Close dismisses the overlay with a return flight, equivalent to the
// escape key or a vertical swipe
func (o *FocusOverlay) Close() {
	o.requestDismiss()
}

// JumpTo switches the overlay to an arbitrary item through the same
// swipe sub-cycle a horizontal gesture runs, dual flight included when
// both grid tiles are measurable.
func (o *FocusOverlay) JumpTo(index int) {
	if o.machine == nil || o.machine.Current() != PhaseSelected || o.busy {
		return
	}
	if index == o.selected {
		return
	}
	if _, ok := o.itemAt(index); !ok {
		zap.S().Warnf("overlay: jump ignored, index %d out of range", index)
		return
	}
	o.swipeToIndex(index)
}

// RefreshStats redraws the meta strip when the focused item's counters
// changed. Must be called on the UI thread.
func (o *FocusOverlay) RefreshStats(itemID string) {
	if o.machine == nil {
		return
	}
	item, ok := o.itemAt(o.selected)
	if !ok || item.ID != itemID {
		return
	}
	o.applyMetaContent(item)
}

// requestDismiss starts the return flight. The phase machine rejects it
// outside Selected, which is what folds double back presses, escape during
// a swipe and repeated close requests into one dismissal.
func (o *FocusOverlay) requestDismiss() {
	if o.machine == nil {
		return
	}
	if err := o.machine.Transition(PhaseFlyingOut); err != nil {
		return
	}
	o.busy = true

	item, _ := o.itemAt(o.selected)
	o.stats.NoteHidden(item.ID)
	o.recognizer.Cancel()

	target, mode := o.closeTarget()
	zap.S().Debugf("overlay: closing via %s", mode)

	var dones []<-chan struct{}
	if mode == closeFade {
		current := o.focusedCh.Current().Rect
		dones = append(dones, o.focusedCh.AnimateTo(Frame{Rect: rectScaled(current, 0.92), Opacity: 0}, FadeDuration))
	} else {
		dones = append(dones, o.focusedCh.AnimateTo(Frame{Rect: target, Opacity: 1}, FlightDuration))
	}

	focused := o.viewport.FocusedRect()
	headerRect := o.viewport.HeaderRect(focused)
	metaRect := o.viewport.MetaRect(focused)
	dones = append(dones,
		o.backdropCh.AnimateTo(Frame{Rect: o.viewport.BackdropRect(), Opacity: 0}, FadeDuration),
		o.headerCh.AnimateTo(Frame{Rect: headerRect.Offset(0, -ChromeSlideOffset), Opacity: 0}, FadeDuration),
		o.metaCh.AnimateTo(Frame{Rect: metaRect.Offset(0, ChromeSlideOffset), Opacity: 0}, FadeDuration),
	)
	awaitThen(dones, o.finishClose)
}

// closeTarget picks where the return flight lands: the item's live tile,
// the tile captured at open, or nowhere (fade) when neither is usable
func (o *FocusOverlay) closeTarget() (model.Rect, closeMode) {
	if fresh, ok := o.geometry.OriginRect(o.selected); ok {
		return fresh, closeToFreshOrigin
	}
	if o.session.HasInitialOrigin && o.selected == o.session.SelectedIndex {
		return o.session.InitialOriginRect, closeToInitialOrigin
	}
	return model.Rect{}, closeFade
}

func (o *FocusOverlay) finishClose() {
	if o.machine == nil {
		return
	}
	cnv := o.window.Canvas()
	cnv.Overlays().Remove(o)
	cnv.SetOnTypedKey(o.prevTypedKey)
	o.prevTypedKey = nil
	o.history.Release()

	o.machine = nil
	o.busy = false
	o.dragging = false
	o.pendingRelayout = false
	o.swipeSnapshot = nil
	o.outgoing.Hide()
	o.incoming.Hide()
	o.flight.Show()
	o.burst.Hide()

	if o.OnClosed != nil {
		o.OnClosed()
	}
}

// swipe pages to the neighbouring item. Past either end of the feed the
// artwork bounces instead.
func (o *FocusOverlay) swipe(delta int) {
	if o.machine == nil || o.busy {
		return
	}
	next := o.selected + delta
	if next < 0 || next >= len(o.items) {
		o.bounce(delta)
		return
	}
	o.swipeToIndex(next)
}

// swipeToIndex replaces the selection through the Swiping sub-cycle. With
// both grid tiles measurable the artworks trade places in a dual flight:
// the current artwork flies from the focus position back down to its tile
// while the next artwork flies from its own tile up to the focus position,
// the main focused element hidden underneath. When either tile cannot be
// measured the index swaps immediately and the artwork snaps onto the
// focus position without a flight.
func (o *FocusOverlay) swipeToIndex(next int) {
	if o.machine == nil || o.busy {
		return
	}
	nextItem, ok := o.itemAt(next)
	if !ok {
		return
	}
	current, _ := o.itemAt(o.selected)

	outOrigin, okOut := o.geometry.OriginRect(o.selected)
	inOrigin, okIn := o.geometry.OriginRect(next)

	if err := o.machine.Transition(PhaseSwiping); err != nil {
		return
	}
	o.busy = true
	o.stats.EnsureLoaded(nextItem.ID)

	focused := o.viewport.FocusedRect()
	if !okOut || !okIn {
		zap.S().Debugf("overlay: tiles for %d -> %d not measurable, swapping in place", o.selected, next)
		o.swapInPlace(next, focused)
		return
	}

	snapshot := &TransitionSnapshot{
		FromIndex: o.selected,
		ToIndex:   next,
		Outgoing:  TransitionElement{Item: current, StartRect: focused, Rect: outOrigin},
		Incoming:  TransitionElement{Item: nextItem, StartRect: inOrigin, Rect: focused},
	}
	o.swipeSnapshot = snapshot

	o.outgoing.Image = o.flight.Image
	o.outgoing.Show()
	o.flight.Hide()
	o.outgoingCh.Set(Frame{Rect: snapshot.Outgoing.StartRect, Opacity: 1})

	o.bindIncomingItem(nextItem)
	o.incoming.Show()
	o.incomingCh.Set(Frame{Rect: snapshot.Incoming.StartRect, Opacity: 1})

	dones := []<-chan struct{}{
		o.outgoingCh.AnimateTo(Frame{Rect: snapshot.Outgoing.Rect, Opacity: 1}, FlightDuration),
		o.incomingCh.AnimateTo(Frame{Rect: snapshot.Incoming.Rect, Opacity: 1}, FlightDuration),
		o.backdropCh.AnimateTo(Frame{Rect: o.viewport.BackdropRect(), Opacity: 1}, FadeDuration),
		o.crossFadeChrome(nextItem, focused),
	}
	awaitThen(dones, func() {
		if o.machine == nil || o.machine.Current() != PhaseSwiping || o.swipeSnapshot != snapshot {
			return
		}
		o.commitSwipe(snapshot)
	})
}

// swapInPlace is the geometry fallback for a swipe: the index changes
// immediately and the artwork snaps back onto the focus position, chrome
// still cross-fading.
func (o *FocusOverlay) swapInPlace(next int, focused model.Rect) {
	previous, _ := o.itemAt(o.selected)
	o.selected = next
	item, _ := o.itemAt(next)
	o.bindFocusedArtwork(item)

	dones := []<-chan struct{}{
		o.focusedCh.AnimateTo(Frame{Rect: focused, Opacity: 1}, FadeDuration),
		o.backdropCh.AnimateTo(Frame{Rect: o.viewport.BackdropRect(), Opacity: 1}, FadeDuration),
		o.crossFadeChrome(item, focused),
	}

	o.stats.NoteHidden(previous.ID)
	o.stats.NoteDisplayed(item)
	if o.OnIndexChanged != nil {
		o.OnIndexChanged(o.selected)
	}

	awaitThen(dones, func() {
		if o.machine == nil || o.machine.Current() != PhaseSwiping {
			return
		}
		if err := o.machine.Transition(PhaseSelected); err != nil {
			return
		}
		o.settleIdle()
	})
}

func (o *FocusOverlay) commitSwipe(snapshot *TransitionSnapshot) {
	o.outgoing.Hide()
	o.incoming.Hide()
	o.flight.Show()

	if len(o.items) == 0 {
		// the feed vanished mid-flight, nothing left to focus
		o.swipeSnapshot = nil
		if err := o.machine.Transition(PhaseSelected); err != nil {
			return
		}
		o.busy = false
		o.requestDismiss()
		return
	}

	item, ok := o.itemAt(snapshot.ToIndex)
	if !ok {
		// the feed shrank mid-flight, retreat to the nearest valid index
		o.selected = clampIndex(snapshot.FromIndex, len(o.items))
		item, _ = o.itemAt(o.selected)
	} else {
		o.selected = snapshot.ToIndex
	}

	// rebind through the store: artwork that was still downloading during
	// the flight lands on the committed selection when it arrives
	o.bindFocusedItem(item)
	o.focusedCh.Set(Frame{Rect: o.viewport.FocusedRect(), Opacity: 1})

	o.swipeSnapshot = nil
	if err := o.machine.Transition(PhaseSelected); err != nil {
		return
	}

	o.stats.NoteHidden(snapshot.Outgoing.Item.ID)
	o.stats.NoteDisplayed(item)
	if o.OnIndexChanged != nil {
		o.OnIndexChanged(o.selected)
	}
	o.settleIdle()
}

// crossFadeChrome fades both text panels out, swaps their content at the
// midpoint and fades them back in. The fade holds a fresh content key;
// if another binding takes the key before the midpoint, the swap is
// abandoned and a newer owner's text stays put.
func (o *FocusOverlay) crossFadeChrome(item model.ArtItem, focused model.Rect) <-chan struct{} {
	key := o.nextContentKey()
	headerRect := o.viewport.HeaderRect(focused)
	metaRect := o.viewport.MetaRect(focused)

	done := make(chan struct{})
	out := []<-chan struct{}{
		o.headerCh.AnimateTo(Frame{Rect: headerRect, Opacity: 0}, CrossFadeHalf),
		o.metaCh.AnimateTo(Frame{Rect: metaRect, Opacity: 0}, CrossFadeHalf),
	}
	awaitThen(out, func() {
		if o.contentKey != key {
			close(done)
			return
		}
		o.applyChromeContent(item)
		in := []<-chan struct{}{
			o.headerCh.AnimateTo(Frame{Rect: headerRect, Opacity: 1}, CrossFadeHalf),
			o.metaCh.AnimateTo(Frame{Rect: metaRect, Opacity: 1}, CrossFadeHalf),
		}
		awaitThen(in, func() { close(done) })
	})
	return done
}

// nextContentKey advances the monotonic key naming which binding owns the
// chrome text
func (o *FocusOverlay) nextContentKey() uint64 {
	o.contentKey++
	return o.contentKey
}

// bounce nudges the artwork toward the gesture and springs it back,
// signalling the end of the feed. The phase stays Selected.
func (o *FocusOverlay) bounce(delta int) {
	if o.busy {
		return
	}
	o.busy = true
	zap.S().Debugf("overlay: bounce at boundary, index %d", o.selected)

	focused := o.viewport.FocusedRect()
	nudged := focused.Offset(-float32(delta)*BounceOffset, 0)

	out := o.focusedCh.AnimateTo(Frame{Rect: nudged, Opacity: 1}, BounceDuration)
	awaitThen([]<-chan struct{}{out}, func() {
		if o.machine == nil || o.machine.Current() != PhaseSelected {
			return
		}
		back := o.focusedCh.AnimateTo(Frame{Rect: focused, Opacity: 1}, BounceDuration)
		awaitThen([]<-chan struct{}{back}, func() {
			if o.machine == nil || o.machine.Current() != PhaseSelected {
				return
			}
			o.settleIdle()
		})
	})
}

// snapBack returns a dragged artwork to the focus position without
// changing the selection
func (o *FocusOverlay) snapBack() {
	o.realign()
}

// handleTap routes a tap by where it landed: inside the artwork or its
// chrome opens the detail page, anywhere else dismisses
func (o *FocusOverlay) handleTap(pos fyne.Position) {
	focused := o.viewport.FocusedRect()
	headerRect := o.viewport.HeaderRect(focused)
	metaRect := o.viewport.MetaRect(focused)

	inside := focused.Contains(pos.X, pos.Y) ||
		headerRect.Contains(pos.X, pos.Y) ||
		metaRect.Contains(pos.X, pos.Y)

	o.focusedCh.AnimateTo(Frame{Rect: focused, Opacity: 1}, BounceDuration)

	if inside {
		if item, ok := o.itemAt(o.selected); ok && o.OnNavigateToDetail != nil {
			o.OnNavigateToDetail(item)
		}
		return
	}
	o.requestDismiss()
}

// handleLongPress toggles the viewer's reaction on the focused item with a
// haptic pulse and an emoji burst over the artwork
func (o *FocusOverlay) handleLongPress() {
	if o.machine == nil || o.machine.Current() != PhaseSelected {
		return
	}
	item, ok := o.itemAt(o.selected)
	if !ok {
		return
	}

	active := o.stats.ToggleReaction(item.ID, DefaultEmoji)
	platform.TriggerHaptic()
	zap.S().Debugf("overlay: reaction %s now %v on %s", DefaultEmoji, active, item.ID)

	focused := o.viewport.FocusedRect()
	o.burst.Text = DefaultEmoji
	o.burst.Show()
	o.burstCh.Set(Frame{Rect: rectCentered(focused.CenterX(), focused.CenterY(), 32), Opacity: 1})
	done := o.burstCh.AnimateTo(Frame{Rect: rectCentered(focused.CenterX(), focused.CenterY()-24, 88), Opacity: 0}, BurstDuration)
	awaitThen([]<-chan struct{}{done}, func() {
		o.burst.Hide()
	})
}

func (o *FocusOverlay) handleGesture(kind GestureKind, pos fyne.Position) {
	o.dragging = false
	switch kind {
	case GestureTap:
		o.handleTap(pos)
	case GestureSwipeNext:
		o.swipe(1)
	case GestureSwipePrevious:
		o.swipe(-1)
	case GestureDismiss:
		o.requestDismiss()
	case GestureSnapBack:
		o.snapBack()
	}
}

// relayout reacts to a window resize. A settled overlay glides to the
// recomputed rects right away; with a transition or drag in flight the
// resize is parked and applied when the sequence settles, so the running
// animation keeps its frames.
func (o *FocusOverlay) relayout() {
	if o.machine == nil {
		return
	}
	if o.machine.Current() != PhaseSelected || o.busy || o.dragging {
		o.pendingRelayout = true
		return
	}
	o.realign()
}

// realign glides every settled element to the current viewport's rects
func (o *FocusOverlay) realign() {
	o.pendingRelayout = false
	target := o.viewport.FocusedRect()
	o.focusedCh.AnimateTo(Frame{Rect: target, Opacity: 1}, FadeDuration)
	o.backdropCh.AnimateTo(Frame{Rect: o.viewport.BackdropRect(), Opacity: 1}, FadeDuration)
	o.headerCh.AnimateTo(Frame{Rect: o.viewport.HeaderRect(target), Opacity: 1}, FadeDuration)
	o.metaCh.AnimateTo(Frame{Rect: o.viewport.MetaRect(target), Opacity: 1}, FadeDuration)
}

// settleIdle ends a transition sequence: the overlay takes input again and
// any viewport change that arrived mid-flight is applied now
func (o *FocusOverlay) settleIdle() {
	o.busy = false
	if o.pendingRelayout {
		o.relayout()
	}
}

func (o *FocusOverlay) typedKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyEscape:
		o.requestDismiss()
	case fyne.KeyLeft:
		o.swipeIfIdle(-1)
	case fyne.KeyRight:
		o.swipeIfIdle(1)
	default:
		if o.prevTypedKey != nil {
			o.prevTypedKey(ev)
		}
	}
}

func (o *FocusOverlay) swipeIfIdle(delta int) {
	if o.machine != nil && o.machine.Current() == PhaseSelected && !o.busy {
		o.swipe(delta)
	}
}

// pointer stream

func (o *FocusOverlay) pointerDown(pos fyne.Position) {
	if o.machine == nil || o.machine.Current() != PhaseSelected || o.busy {
		return
	}
	o.lastPointer = pos
	o.recognizer.Begin(pos.X, pos.Y)
}

func (o *FocusOverlay) pointerMove(pos fyne.Position) {
	if !o.recognizer.Active() {
		return
	}
	o.lastPointer = pos
	dx, dy := o.recognizer.Move(pos.X, pos.Y)
	if !o.dragging {
		if absf(dx) <= JitterThreshold && absf(dy) <= JitterThreshold {
			return
		}
		o.dragging = true
	}

	base := o.viewport.FocusedRect()
	o.focusedCh.Set(Frame{Rect: base.Offset(dx, dy), Opacity: 1})

	dim := absf(dy) / 300
	if dim > 0.6 {
		dim = 0.6
	}
	o.backdropCh.Set(Frame{Rect: o.viewport.BackdropRect(), Opacity: 1 - dim})
}

func (o *FocusOverlay) pointerUp(pos fyne.Position) {
	kind := o.recognizer.End(pos.X, pos.Y)
	if kind == GestureNone {
		return
	}
	o.handleGesture(kind, pos)
}

func (o *FocusOverlay) pointerCancel() {
	if !o.recognizer.Active() {
		return
	}
	o.recognizer.Cancel()
	o.dragging = false
	o.snapBack()
}

var _ desktop.Mouseable = (*FocusOverlay)(nil)

func (o *FocusOverlay) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	o.pointerDown(ev.Position)
}

func (o *FocusOverlay) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	o.pointerUp(ev.Position)
}

var _ fyne.Draggable = (*FocusOverlay)(nil)

func (o *FocusOverlay) Dragged(ev *fyne.DragEvent) {
	o.pointerMove(ev.Position)
}

func (o *FocusOverlay) DragEnd() {
	o.pointerUp(o.lastPointer)
}

var _ mobile.Touchable = (*FocusOverlay)(nil)

func (o *FocusOverlay) TouchDown(ev *mobile.TouchEvent) {
	o.pointerDown(ev.Position)
}

func (o *FocusOverlay) TouchUp(ev *mobile.TouchEvent) {
	o.pointerUp(ev.Position)
}

func (o *FocusOverlay) TouchCancel(*mobile.TouchEvent) {
	o.pointerCancel()
}

var _ fyne.Scrollable = (*FocusOverlay)(nil)

// Scrolled pages with the mouse wheel
func (o *FocusOverlay) Scrolled(ev *fyne.ScrollEvent) {
	delta := ev.Scrolled.DY
	if absf(ev.Scrolled.DX) > absf(ev.Scrolled.DY) {
		delta = ev.Scrolled.DX
	}
	if delta < 0 {
		o.swipeIfIdle(1)
	} else if delta > 0 {
		o.swipeIfIdle(-1)
	}
}

// content binding

func (o *FocusOverlay) itemAt(index int) (model.ArtItem, bool) {
	if index < 0 || index >= len(o.items) {
		return model.ArtItem{}, false
	}
	return o.items[index], true
}

func (o *FocusOverlay) bindFocusedItem(item model.ArtItem) {
	o.nextContentKey()
	o.bindFocusedArtwork(item)
	o.applyChromeContent(item)
}

// bindFocusedArtwork loads the item's art into the focused element without
// touching the chrome, for paths where a cross-fade owns the text
func (o *FocusOverlay) bindFocusedArtwork(item model.ArtItem) {
	o.loadArtwork(o.flight, item, func() bool {
		current, ok := o.itemAt(o.selected)
		return ok && current.ID == item.ID
	})
}

func (o *FocusOverlay) bindIncomingItem(item model.ArtItem) {
	o.loadArtwork(o.incoming, item, func() bool {
		return o.swipeSnapshot != nil && o.swipeSnapshot.ToIndex < len(o.items) &&
			o.items[o.swipeSnapshot.ToIndex].ID == item.ID
	})
}

func (o *FocusOverlay) loadArtwork(img *canvas.Image, item model.ArtItem, stillWanted func() bool) {
	if cached := o.store.LoadMemoryOnly(item.ID); cached != nil {
		img.Image = cached
		img.Refresh()
		return
	}
	img.Image = nil
	img.Refresh()
	o.store.Load(item, func(res image.Image) {
		fyne.Do(func() {
			if res == nil || !stillWanted() {
				return
			}
			img.Image = res
			img.Refresh()
		})
	})
}

func (o *FocusOverlay) applyChromeContent(item model.ArtItem) {
	o.header.setContent(
		item.GetDisplayTitle(),
		fmt.Sprintf(o.loc.GetText(KeyByAuthor), item.OwnerName),
		item.AgeString(time.Now()),
	)
	o.applyMetaContent(item)
}

func (o *FocusOverlay) applyMetaContent(item model.ArtItem) {
	entry, ok := o.stats.Get(item.ID)
	o.meta.setContent(statsLine(entry, ok), o.loc.GetText(KeyOverlayHint), "")
}

// statsLine renders the counters strip, with dashes while values are
// still loading
func statsLine(entry social.Entry, ok bool) string {
	if !ok || !entry.Status.IsReady() {
		return fmt.Sprintf("%s %s%s%s %s%s%s %s",
			DefaultEmoji, DashPlaceholder,
			MiddleDotSeparator, IconComments, DashPlaceholder,
			MiddleDotSeparator, IconViews, DashPlaceholder)
	}
	return fmt.Sprintf("%s %d%s%s %d%s%s %d",
		DefaultEmoji, entry.TotalReactions(),
		MiddleDotSeparator, IconComments, entry.CommentCount,
		MiddleDotSeparator, IconViews, entry.ViewCount)
}

// frame application

func applyImageFrame(img *canvas.Image, f Frame) {
	img.Move(fyne.NewPos(f.Rect.Left, f.Rect.Top))
	img.Resize(fyne.NewSize(f.Rect.Width, f.Rect.Height))
	opacity := f.Opacity
	if opacity < 0 {
		opacity = 0
	} else if opacity > 1 {
		opacity = 1
	}
	img.Translucency = float64(1 - opacity)
	img.Refresh()
}

func (o *FocusOverlay) applyBackdropFrame(f Frame) {
	o.backdrop.Move(fyne.NewPos(f.Rect.Left, f.Rect.Top))
	o.backdrop.Resize(fyne.NewSize(f.Rect.Width, f.Rect.Height))
	o.backdrop.FillColor = scaleAlpha(color.NRGBA{A: BackdropMaxAlpha}, f.Opacity)
	o.backdrop.Refresh()
}

func (o *FocusOverlay) applyBurstFrame(f Frame) {
	o.burst.TextSize = f.Rect.Height
	o.burst.Move(fyne.NewPos(f.Rect.Left, f.Rect.Top))
	o.burst.Color = scaleAlpha(color.NRGBA{R: 255, G: 255, B: 255, A: 255}, f.Opacity)
	o.burst.Refresh()
}

func (o *FocusOverlay) applyPressedCue() {
	if o.machine == nil || o.machine.Current() != PhaseSelected || o.busy || o.dragging {
		return
	}
	o.focusedCh.Set(Frame{Rect: rectScaled(o.viewport.FocusedRect(), PressedScale), Opacity: 1})
}

func (o *FocusOverlay) channels() []*Channel {
	return []*Channel{o.focusedCh, o.outgoingCh, o.incomingCh, o.backdropCh, o.headerCh, o.metaCh, o.burstCh}
}

// geometry helpers

func rectScaled(r model.Rect, factor float32) model.Rect {
	w := r.Width * factor
	h := r.Height * factor
	return model.NewRect(r.CenterX()-w/2, r.CenterY()-h/2, w, h)
}

func rectCentered(cx, cy, size float32) model.Rect {
	return model.NewRect(cx-size/2, cy-size/2, size, size)
}

func clampIndex(index, length int) int {
	if index < 0 {
		return 0
	}
	if index >= length {
		return length - 1
	}
	return index
}

// widget plumbing

func (o *FocusOverlay) CreateRenderer() fyne.WidgetRenderer {
	objects := []fyne.CanvasObject{o.backdrop, o.outgoing, o.incoming, o.flight}
	objects = append(objects, o.header.objects()...)
	objects = append(objects, o.meta.objects()...)
	objects = append(objects, o.burst)
	return &focusOverlayRenderer{overlay: o, objects: objects}
}

type focusOverlayRenderer struct {
	overlay *FocusOverlay
	objects []fyne.CanvasObject
}

// Layout is the resize signal: the canvas keeps overlay members sized to
// the window, so a new size here means the window changed
func (r *focusOverlayRenderer) Layout(size fyne.Size) {
	if size == r.overlay.viewport.Size {
		return
	}
	r.overlay.viewport.Size = size
	r.overlay.relayout()
}

func (r *focusOverlayRenderer) MinSize() fyne.Size {
	return fyne.NewSize(0, 0)
}

func (r *focusOverlayRenderer) Refresh() {
	for _, obj := range r.objects {
		obj.Refresh()
	}
}

func (r *focusOverlayRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *focusOverlayRenderer) Destroy() {
	for _, ch := range r.overlay.channels() {
		ch.Stop()
	}
}
