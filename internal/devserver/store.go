package devserver

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pixlshare/pixl-viewer/internal/model"
	"github.com/pixlshare/pixl-viewer/internal/pixelart"
)

// ErrItemNotFound is returned for requests against unknown item ids
var ErrItemNotFound = errors.New("item not found")

// LocalViewerID is the account the bundled client runs as. The first seeded
// item belongs to it so the owner-skip path can be exercised locally.
const LocalViewerID = "pixl-local"

var seedTitles = []string{
	"Neon Koi", "Tiny Dragon", "Moonlit Tower", "Pocket Nebula",
	"8-bit Harbor", "Cave Crystal", "Drifting Island", "Rusty Automaton",
	"Glacier Fox", "Ember Wisp", "Static Bloom", "Night Market",
}

var seedAuthors = []struct {
	id   string
	name string
}{
	{"user-ada", "ada"},
	{"user-mori", "mori"},
	{"user-punk", "pixelpunk"},
	{"user-lumen", "lumen"},
	{"user-kata", "kata"},
}

var seedEmojis = []string{"🔥", "💜", "👾", "✨"}

// itemStats holds the mutable social counters for one item. Reactions are
// stored per viewer so totals always agree with the individual sets.
type itemStats struct {
	reactions map[string]map[string]bool // emoji -> viewer ids
	comments  int
	views     int
}

// Store is the in-memory social backend state for local development
type Store struct {
	mu    sync.RWMutex
	items []model.ArtItem
	stats map[string]*itemStats
}

// NewStore seeds a store with n generated items. The seed governs titles,
// sprites and counters; item ids are fresh UUIDs on every boot.
func NewStore(n int, seed int64) *Store {
	rng := rand.New(rand.NewSource(seed))
	now := time.Now()

	s := &Store{
		stats: make(map[string]*itemStats),
	}

	sizes := []int{12, 16, 16, 16, 20, 24}

	for i := 0; i < n; i++ {
		id := uuid.NewString()
		author := seedAuthors[rng.Intn(len(seedAuthors))]

		item := model.ArtItem{
			ID:         id,
			Title:      seedTitles[rng.Intn(len(seedTitles))],
			MediaURL:   fmt.Sprintf("/api/items/%s/art.png", id),
			OwnerID:    author.id,
			OwnerName:  author.name,
			Seed:       rng.Int63(),
			SpriteSize: sizes[rng.Intn(len(sizes))],
			CreatedAt:  now.Add(-time.Duration(i) * 3 * time.Hour),
		}

		// the first item belongs to the local viewer
		if i == 0 {
			item.OwnerID = LocalViewerID
			item.OwnerName = "you"
		}

		// sprinkle descriptions on some posts
		if rng.Intn(3) == 0 {
			item.Description = fmt.Sprintf("%s, %dx%d", pixelart.PaletteFor(item.Seed).Name, item.SpriteSize, item.SpriteSize)
		}

		st := &itemStats{
			reactions: make(map[string]map[string]bool),
			comments:  rng.Intn(18),
			views:     40 + rng.Intn(900),
		}
		for _, emoji := range seedEmojis {
			fans := rng.Intn(5)
			if fans == 0 {
				continue
			}
			set := make(map[string]bool, fans)
			for f := 0; f < fans; f++ {
				set[fmt.Sprintf("seed-fan-%d", rng.Intn(40))] = true
			}
			st.reactions[emoji] = set
		}

		s.items = append(s.items, item)
		s.stats[id] = st
	}

	return s
}

// Items returns the feed as an ordered list
func (s *Store) Items() []model.ArtItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]model.ArtItem, len(s.items))
	copy(items, s.items)
	return items
}

// Item returns one item by id
func (s *Store) Item(id string) (model.ArtItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return model.ArtItem{}, false
}

// ReactionState returns totals and the viewer's own set for one item
func (s *Store) ReactionState(id, viewerID string) (model.ReactionState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.stats[id]
	if !ok {
		return model.ReactionState{}, ErrItemNotFound
	}

	state := model.ReactionState{Totals: make(map[string]int)}
	for emoji, viewers := range st.reactions {
		if len(viewers) == 0 {
			continue
		}
		state.Totals[emoji] = len(viewers)
		if viewers[viewerID] {
			state.Mine = append(state.Mine, emoji)
		}
	}
	return state, nil
}

// ToggleReaction adds or removes the viewer from an emoji's reaction set.
// Repeating the same toggle is a no-op, so totals can never drift.
func (s *Store) ToggleReaction(id, viewerID, emoji string, add bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.stats[id]
	if !ok {
		return ErrItemNotFound
	}

	set := st.reactions[emoji]
	if set == nil {
		set = make(map[string]bool)
		st.reactions[emoji] = set
	}

	if add {
		set[viewerID] = true
	} else {
		delete(set, viewerID)
	}
	return nil
}

// CommentCount returns the number of comments on an item
func (s *Store) CommentCount(id string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.stats[id]
	if !ok {
		return 0, ErrItemNotFound
	}
	return st.comments, nil
}

// ViewCount returns the number of registered views of an item
func (s *Store) ViewCount(id string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.stats[id]
	if !ok {
		return 0, ErrItemNotFound
	}
	return st.views, nil
}

// RegisterView counts one view of an item
func (s *Store) RegisterView(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.stats[id]
	if !ok {
		return ErrItemNotFound
	}
	st.views++
	return nil
}
