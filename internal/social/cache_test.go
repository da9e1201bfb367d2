package social

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/pixlshare/pixl-viewer/internal/model"
)

type pendingToggle struct {
	emoji   string
	add     bool
	release chan error
}

// fakeClient is an in-memory backend with controllable request timing
type fakeClient struct {
	mu sync.Mutex

	totals map[string]int
	mine   map[string]bool

	commentCount int
	viewCount    int

	reactionFetches int
	toggleCalls     int
	viewRegisters   int

	fetchErr  error
	fetchGate chan struct{} // FetchReactionState blocks here when set

	holdToggles    bool
	pendingToggles []pendingToggle

	viewCh chan string
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		totals: map[string]int{},
		mine:   map[string]bool{},
		viewCh: make(chan string, 8),
	}
}

func (f *fakeClient) ListItems(ctx context.Context) ([]model.ArtItem, error) {
	return nil, nil
}

func (f *fakeClient) FetchReactionState(ctx context.Context, itemID string) (model.ReactionState, error) {
	f.mu.Lock()
	f.reactionFetches++
	gate := f.fetchGate
	err := f.fetchErr
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return model.ReactionState{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	state := model.ReactionState{Totals: cloneCounts(f.totals)}
	for emoji := range f.mine {
		state.Mine = append(state.Mine, emoji)
	}
	return state, nil
}

func (f *fakeClient) ToggleReaction(ctx context.Context, itemID, emoji string, add bool) error {
	f.mu.Lock()
	f.toggleCalls++
	if f.holdToggles {
		wait := make(chan error, 1)
		f.pendingToggles = append(f.pendingToggles, pendingToggle{emoji: emoji, add: add, release: wait})
		f.mu.Unlock()
		return <-wait
	}
	f.applyToggleLocked(emoji, add)
	f.mu.Unlock()
	return nil
}

// releaseToggle applies and completes the oldest held toggle call
func (f *fakeClient) releaseToggle(err error) {
	f.mu.Lock()
	if len(f.pendingToggles) == 0 {
		f.mu.Unlock()
		return
	}
	p := f.pendingToggles[0]
	f.pendingToggles = f.pendingToggles[1:]
	if err == nil {
		f.applyToggleLocked(p.emoji, p.add)
	}
	f.mu.Unlock()
	p.release <- err
}

func (f *fakeClient) applyToggleLocked(emoji string, add bool) {
	if add {
		if !f.mine[emoji] {
			f.mine[emoji] = true
			f.totals[emoji]++
		}
	} else if f.mine[emoji] {
		delete(f.mine, emoji)
		f.totals[emoji]--
	}
}

func (f *fakeClient) FetchCommentCount(ctx context.Context, itemID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return 0, f.fetchErr
	}
	return f.commentCount, nil
}

func (f *fakeClient) FetchViewCount(ctx context.Context, itemID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return 0, f.fetchErr
	}
	return f.viewCount, nil
}

func (f *fakeClient) RegisterView(ctx context.Context, itemID string) error {
	f.mu.Lock()
	f.viewRegisters++
	f.mu.Unlock()
	f.viewCh <- itemID
	return nil
}

func (f *fakeClient) reactionFetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reactionFetches
}

func (f *fakeClient) toggleCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.toggleCalls
}

func (f *fakeClient) pendingToggleCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pendingToggles)
}

func (f *fakeClient) viewRegisterCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.viewRegisters
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func loadedCache(t *testing.T, fake *fakeClient) *Cache {
	t.Helper()
	cache := NewCache(fake, "viewer-1")
	cache.EnsureLoaded("item-1")
	waitFor(t, "initial load", func() bool {
		entry, ok := cache.Get("item-1")
		return ok && entry.Status.IsReady()
	})
	return cache
}

func TestCache_EnsureLoadedDeduplicatesFetches(t *testing.T) {
	fake := newFakeClient()
	fake.totals["🔥"] = 2
	gate := make(chan struct{})
	fake.fetchGate = gate

	cache := NewCache(fake, "viewer-1")

	cache.EnsureLoaded("item-1")
	cache.EnsureLoaded("item-1")
	cache.EnsureLoaded("item-1")

	close(gate)

	waitFor(t, "entry to become ready", func() bool {
		entry, ok := cache.Get("item-1")
		return ok && entry.Status.IsReady()
	})

	if n := fake.reactionFetchCount(); n != 1 {
		t.Errorf("Expected exactly 1 reaction fetch for rapid EnsureLoaded calls, got %d", n)
	}
}

func TestCache_LoadFailureLeavesEntryRetryable(t *testing.T) {
	fake := newFakeClient()
	fake.fetchErr = errors.New("backend down")

	cache := NewCache(fake, "viewer-1")
	cache.EnsureLoaded("item-1")

	waitFor(t, "degraded entry", func() bool {
		entry, ok := cache.Get("item-1")
		return ok && entry.Status == model.StatsStatusIdle
	})

	entry, _ := cache.Get("item-1")
	if entry.TotalReactions() != 0 || entry.CommentCount != 0 {
		t.Error("Expected degraded entry to show zero counts")
	}

	// clearing the failure lets a later EnsureLoaded try again
	fake.mu.Lock()
	fake.fetchErr = nil
	fake.totals["🔥"] = 4
	fake.mu.Unlock()

	cache.EnsureLoaded("item-1")

	waitFor(t, "entry to recover", func() bool {
		entry, ok := cache.Get("item-1")
		return ok && entry.Status.IsReady() && entry.Totals["🔥"] == 4
	})
}

func TestCache_EnsureLoadedServesCacheThenResyncs(t *testing.T) {
	fake := newFakeClient()
	fake.totals["🔥"] = 1
	cache := loadedCache(t, fake)

	// another user reacts while we are away
	fake.mu.Lock()
	fake.totals["🔥"] = 7
	fake.mu.Unlock()

	cache.EnsureLoaded("item-1")

	entry, _ := cache.Get("item-1")
	if entry.Status != model.StatsStatusReady {
		t.Errorf("Expected cached entry to stay Ready, got %s", entry.Status)
	}

	waitFor(t, "background re-sync", func() bool {
		entry, _ := cache.Get("item-1")
		return entry.Totals["🔥"] == 7
	})
}

func TestCache_ToggleReactionOptimisticThenConfirmed(t *testing.T) {
	fake := newFakeClient()
	fake.totals["🔥"] = 5
	cache := loadedCache(t, fake)

	fake.mu.Lock()
	fake.holdToggles = true
	fake.mu.Unlock()

	added := cache.ToggleReaction("item-1", "🔥")
	if !added {
		t.Fatal("Expected toggle to report the reaction as added")
	}

	// optimistic value shows before the server replies
	entry, _ := cache.Get("item-1")
	if entry.Totals["🔥"] != 6 || !entry.HasMine("🔥") {
		t.Errorf("Expected optimistic 6/mine, got %d/%v", entry.Totals["🔥"], entry.HasMine("🔥"))
	}

	waitFor(t, "toggle call to arrive", func() bool { return fake.pendingToggleCount() == 1 })
	fake.releaseToggle(nil)

	waitFor(t, "confirmed values to update", func() bool {
		cache.entriesMutex.RLock()
		defer cache.entriesMutex.RUnlock()
		e := cache.entries["item-1"]
		return e != nil && e.confirmedTotals["🔥"] == 6 && e.confirmedMine["🔥"]
	})
}

func TestCache_ToggleRollbackOnFailure(t *testing.T) {
	fake := newFakeClient()
	fake.totals["🔥"] = 5
	cache := loadedCache(t, fake)

	fake.mu.Lock()
	fake.holdToggles = true
	fake.mu.Unlock()

	cache.ToggleReaction("item-1", "🔥")

	entry, _ := cache.Get("item-1")
	if entry.Totals["🔥"] != 6 {
		t.Fatalf("Expected optimistic count 6, got %d", entry.Totals["🔥"])
	}

	waitFor(t, "toggle call to arrive", func() bool { return fake.pendingToggleCount() == 1 })
	fake.releaseToggle(errors.New("rejected"))

	waitFor(t, "rollback to confirmed values", func() bool {
		entry, _ := cache.Get("item-1")
		return entry.Totals["🔥"] == 5 && !entry.HasMine("🔥")
	})
}

func TestCache_ToggleThenUntoggleSettlesAtBaseline(t *testing.T) {
	fake := newFakeClient()
	fake.totals["🔥"] = 5
	cache := loadedCache(t, fake)

	fake.mu.Lock()
	fake.holdToggles = true
	fake.mu.Unlock()

	cache.ToggleReaction("item-1", "🔥")
	waitFor(t, "first toggle call", func() bool { return fake.pendingToggleCount() == 1 })

	// toggle back before the first call resolves
	cache.ToggleReaction("item-1", "🔥")
	waitFor(t, "second toggle call", func() bool { return fake.pendingToggleCount() == 2 })

	entry, _ := cache.Get("item-1")
	if entry.Totals["🔥"] != 5 || entry.HasMine("🔥") {
		t.Errorf("Expected baseline mid-flight, got %d/%v", entry.Totals["🔥"], entry.HasMine("🔥"))
	}

	fake.releaseToggle(nil)
	fake.releaseToggle(nil)

	waitFor(t, "both toggles to settle", func() bool {
		return fake.toggleCount() == 2 && fake.pendingToggleCount() == 0
	})

	// once everything settles, no double-counting and no drift
	waitFor(t, "display to settle at baseline", func() bool {
		entry, _ := cache.Get("item-1")
		return entry.Totals["🔥"] == 5 && !entry.HasMine("🔥")
	})
}

func TestCache_ViewDebounce(t *testing.T) {
	fake := newFakeClient()
	cache := NewCache(fake, "viewer-1")
	cache.viewDebounce = 100 * time.Millisecond

	item := model.ArtItem{ID: "item-1", OwnerID: "someone-else"}

	// hidden before the debounce elapses: no view
	cache.NoteDisplayed(item)
	time.Sleep(25 * time.Millisecond)
	cache.NoteHidden(item.ID)
	time.Sleep(250 * time.Millisecond)

	if n := fake.viewRegisterCount(); n != 0 {
		t.Errorf("Expected no views after early hide, got %d", n)
	}

	// continuously displayed: exactly one view
	cache.NoteDisplayed(item)
	select {
	case id := <-fake.viewCh:
		if id != "item-1" {
			t.Errorf("Expected view for item-1, got %s", id)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("View was never registered")
	}

	// revisits in the same session never register again
	cache.NoteHidden(item.ID)
	cache.NoteDisplayed(item)
	time.Sleep(250 * time.Millisecond)

	if n := fake.viewRegisterCount(); n != 1 {
		t.Errorf("Expected exactly 1 view per session, got %d", n)
	}
}

func TestCache_OwnItemsNeverRegisterViews(t *testing.T) {
	fake := newFakeClient()
	cache := NewCache(fake, "viewer-1")
	cache.viewDebounce = 50 * time.Millisecond

	cache.NoteDisplayed(model.ArtItem{ID: "mine-1", OwnerID: "viewer-1"})
	time.Sleep(150 * time.Millisecond)

	if n := fake.viewRegisterCount(); n != 0 {
		t.Errorf("Expected no views on the viewer's own item, got %d", n)
	}
}
