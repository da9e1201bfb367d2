package social

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pixlshare/pixl-viewer/internal/model"
)

const (
	// ViewDebounce is how long an item must stay continuously on screen
	// before a view is registered
	ViewDebounce = 2 * time.Second

	cacheRequestTimeout = 8 * time.Second
)

// Entry is a read-only snapshot of one item's cached social counters
type Entry struct {
	ItemID       string
	Status       model.StatsStatus
	Totals       map[string]int
	Mine         map[string]bool
	CommentCount int
	ViewCount    int
}

// HasMine returns true if the viewer currently reacts with the given emoji
func (e Entry) HasMine(emoji string) bool {
	return e.Mine[emoji]
}

// TotalReactions returns the sum of all per-emoji counts
func (e Entry) TotalReactions() int {
	sum := 0
	for _, n := range e.Totals {
		sum += n
	}
	return sum
}

// entry is the mutable record behind an Entry snapshot
type entry struct {
	status       model.StatsStatus
	totals       map[string]int
	mine         map[string]bool
	commentCount int
	viewCount    int

	// last server-confirmed reaction values, restored when a toggle fails
	confirmedTotals map[string]int
	confirmedMine   map[string]bool

	// stale re-sync responses are discarded by sequence number
	resyncSeq int
}

// Cache holds social counters per item for one viewing session. Entries are
// created lazily and never evicted, so re-visiting an item shows cached
// values instantly while a background re-sync may still refresh them.
// All mutation goes through Cache methods; the UI only reads snapshots.
type Cache struct {
	entries      map[string]*entry
	entriesMutex sync.RWMutex

	client   Client
	viewerID string

	viewed       map[string]bool
	viewTimers   map[string]*time.Timer
	viewDebounce time.Duration

	onUpdate func(itemID string) // callback for UI updates
}

// NewCache creates the session cache backed by the given API client.
// viewerID is used to skip view registration on the viewer's own items.
func NewCache(client Client, viewerID string) *Cache {
	return &Cache{
		entries:      make(map[string]*entry),
		client:       client,
		viewerID:     viewerID,
		viewed:       make(map[string]bool),
		viewTimers:   make(map[string]*time.Timer),
		viewDebounce: ViewDebounce,
	}
}

// SetUpdateCallback sets the callback invoked after every entry change
func (c *Cache) SetUpdateCallback(callback func(itemID string)) {
	c.onUpdate = callback
}

// Get returns a snapshot of the cached counters for an item
func (c *Cache) Get(itemID string) (Entry, bool) {
	c.entriesMutex.RLock()
	defer c.entriesMutex.RUnlock()

	e, ok := c.entries[itemID]
	if !ok {
		return Entry{}, false
	}
	return Entry{
		ItemID:       itemID,
		Status:       e.status,
		Totals:       cloneCounts(e.totals),
		Mine:         cloneSet(e.mine),
		CommentCount: e.commentCount,
		ViewCount:    e.viewCount,
	}, true
}

// EnsureLoaded makes sure counters for an item are loaded or loading.
// A Loading entry is left alone so rapid repeat calls issue no duplicate
// requests; a Ready entry keeps serving cached values while reaction totals
// refresh in the background.
func (c *Cache) EnsureLoaded(itemID string) {
	c.entriesMutex.Lock()
	e := c.entryLocked(itemID)

	switch e.status {
	case model.StatsStatusLoading:
		c.entriesMutex.Unlock()
		return
	case model.StatsStatusReady:
		c.entriesMutex.Unlock()
		go c.resync(itemID)
		return
	}

	e.status = model.StatsStatusLoading
	c.entriesMutex.Unlock()

	c.notify(itemID)
	go c.load(itemID)
}

// ToggleReaction flips the viewer's reaction and returns true if it was
// added. The visible delta is applied immediately; if the server call fails
// the entry rolls back to the last confirmed values, and if it succeeds a
// background re-sync reconciles totals with reactions from other users.
func (c *Cache) ToggleReaction(itemID, emoji string) bool {
	c.entriesMutex.Lock()
	e := c.entryLocked(itemID)

	add := !e.mine[emoji]
	if add {
		e.mine[emoji] = true
		e.totals[emoji]++
	} else {
		delete(e.mine, emoji)
		if e.totals[emoji] > 0 {
			e.totals[emoji]--
		}
	}

	rollbackTotals := cloneCounts(e.confirmedTotals)
	rollbackMine := cloneSet(e.confirmedMine)
	c.entriesMutex.Unlock()

	c.notify(itemID)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cacheRequestTimeout)
		defer cancel()

		if err := c.client.ToggleReaction(ctx, itemID, emoji, add); err != nil {
			zap.S().Warnf("social: toggling %s on %s failed, rolling back: %v", emoji, itemID, err)

			c.entriesMutex.Lock()
			e := c.entryLocked(itemID)
			e.totals = rollbackTotals
			e.mine = rollbackMine
			c.entriesMutex.Unlock()

			c.notify(itemID)
			return
		}

		c.resync(itemID)
	}()

	return add
}

// NoteDisplayed marks the item as currently presented to the viewer,
// arming the view debounce timer. Views on the viewer's own items are
// never registered.
func (c *Cache) NoteDisplayed(item model.ArtItem) {
	if item.IsOwnedBy(c.viewerID) {
		return
	}

	c.entriesMutex.Lock()
	defer c.entriesMutex.Unlock()

	if c.viewed[item.ID] {
		return
	}
	if _, armed := c.viewTimers[item.ID]; armed {
		return
	}

	itemID := item.ID
	c.viewTimers[itemID] = time.AfterFunc(c.viewDebounce, func() {
		c.registerView(itemID)
	})
}

// NoteHidden cancels a pending view registration for the item
func (c *Cache) NoteHidden(itemID string) {
	c.entriesMutex.Lock()
	defer c.entriesMutex.Unlock()

	if timer, ok := c.viewTimers[itemID]; ok {
		timer.Stop()
		delete(c.viewTimers, itemID)
	}
}

// load fetches all counters for one item. Exactly one load runs per item
// at a time, guarded by the Loading status.
func (c *Cache) load(itemID string) {
	ctx, cancel := context.WithTimeout(context.Background(), cacheRequestTimeout)
	defer cancel()

	state, stateErr := c.client.FetchReactionState(ctx, itemID)
	comments, commentsErr := c.client.FetchCommentCount(ctx, itemID)
	views, viewsErr := c.client.FetchViewCount(ctx, itemID)

	c.entriesMutex.Lock()
	e := c.entryLocked(itemID)

	if stateErr == nil {
		e.totals = cloneCounts(state.Totals)
		e.confirmedTotals = cloneCounts(state.Totals)
		e.mine = setFromList(state.Mine)
		e.confirmedMine = setFromList(state.Mine)
	}
	if commentsErr == nil {
		e.commentCount = comments
	}
	if viewsErr == nil {
		e.viewCount = views
	}

	if stateErr != nil || commentsErr != nil || viewsErr != nil {
		// degraded values stay visible, the next EnsureLoaded retries
		e.status = model.StatsStatusIdle
		c.entriesMutex.Unlock()
		zap.S().Warnf("social: loading stats for %s failed (reactions: %v, comments: %v, views: %v)",
			itemID, stateErr, commentsErr, viewsErr)
		c.notify(itemID)
		return
	}

	e.status = model.StatsStatusReady
	c.entriesMutex.Unlock()

	zap.S().Debugf("social: stats for %s ready (%d reactions, %d comments, %d views)",
		itemID, state.TotalReactions(), comments, views)
	c.notify(itemID)
}

// resync refreshes reaction totals of an already-loaded entry. Responses
// arriving after a newer re-sync has started are dropped.
func (c *Cache) resync(itemID string) {
	c.entriesMutex.Lock()
	e := c.entryLocked(itemID)
	e.resyncSeq++
	seq := e.resyncSeq
	c.entriesMutex.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), cacheRequestTimeout)
	defer cancel()

	state, err := c.client.FetchReactionState(ctx, itemID)
	if err != nil {
		zap.S().Debugf("social: re-sync for %s failed: %v", itemID, err)
		return
	}

	c.entriesMutex.Lock()
	e = c.entryLocked(itemID)
	if e.resyncSeq != seq {
		c.entriesMutex.Unlock()
		return
	}
	e.totals = cloneCounts(state.Totals)
	e.confirmedTotals = cloneCounts(state.Totals)
	e.mine = setFromList(state.Mine)
	e.confirmedMine = setFromList(state.Mine)
	c.entriesMutex.Unlock()

	c.notify(itemID)
}

// registerView fires once the debounce timer elapses
func (c *Cache) registerView(itemID string) {
	c.entriesMutex.Lock()
	delete(c.viewTimers, itemID)
	if c.viewed[itemID] {
		c.entriesMutex.Unlock()
		return
	}
	c.viewed[itemID] = true
	c.entriesMutex.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), cacheRequestTimeout)
	defer cancel()

	if err := c.client.RegisterView(ctx, itemID); err != nil {
		// best effort, views are never retried
		zap.S().Debugf("social: registering view for %s failed: %v", itemID, err)
		return
	}

	zap.S().Debugf("social: registered view for %s", itemID)
}

// entryLocked returns the record for itemID, creating it lazily.
// Callers must hold entriesMutex.
func (c *Cache) entryLocked(itemID string) *entry {
	e, ok := c.entries[itemID]
	if !ok {
		e = &entry{
			status:          model.StatsStatusIdle,
			totals:          make(map[string]int),
			mine:            make(map[string]bool),
			confirmedTotals: make(map[string]int),
			confirmedMine:   make(map[string]bool),
		}
		c.entries[itemID] = e
	}
	return e
}

// notify calls the update callback if set
func (c *Cache) notify(itemID string) {
	if c.onUpdate != nil {
		c.onUpdate(itemID)
	}
}

func cloneCounts(src map[string]int) map[string]int {
	dst := make(map[string]int, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func cloneSet(src map[string]bool) map[string]bool {
	dst := make(map[string]bool, len(src))
	for k, v := range src {
		if v {
			dst[k] = v
		}
	}
	return dst
}

func setFromList(list []string) map[string]bool {
	set := make(map[string]bool, len(list))
	for _, item := range list {
		set[item] = true
	}
	return set
}
