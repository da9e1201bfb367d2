package media

import (
	"context"
	"image"
	"net/http"
	"strings"
	"sync"
	"time"

	// register decoders for artwork fetched over HTTP
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"go.uber.org/zap"

	"github.com/pixlshare/pixl-viewer/internal/model"
	"github.com/pixlshare/pixl-viewer/internal/pixelart"
)

const (
	// FetchTimeout bounds a single artwork download
	FetchTimeout = 5 * time.Second
)

// Store resolves item artwork and keeps every resolved image in memory for
// the life of the session. Resolution order: memory cache, HTTP fetch of the
// item's media URL, local sprite render from the item seed. The local render
// means a dead server never blocks the gallery from drawing.
type Store struct {
	mu       sync.Mutex
	cache    map[string]image.Image
	inflight map[string][]func(image.Image)

	client  *http.Client
	baseURL string
}

// NewStore creates an artwork store resolving server-relative media URLs
// against baseURL
func NewStore(baseURL string) *Store {
	return &Store{
		cache:    make(map[string]image.Image),
		inflight: make(map[string][]func(image.Image)),
		client:   &http.Client{Timeout: FetchTimeout},
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

// LoadMemoryOnly returns the cached artwork or nil without doing any IO.
// Grid cells use this as the instant path before scheduling a real load.
func (s *Store) LoadMemoryOnly(itemID string) image.Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache[itemID]
}

// Load resolves the artwork for an item and calls cb exactly once with the
// result. cb may run on a background goroutine, so UI call sites wrap their
// updates in fyne.Do. Concurrent loads for the same item share one fetch.
func (s *Store) Load(item model.ArtItem, cb func(image.Image)) {
	s.mu.Lock()
	if img, ok := s.cache[item.ID]; ok {
		s.mu.Unlock()
		cb(img)
		return
	}
	if waiters, ok := s.inflight[item.ID]; ok {
		s.inflight[item.ID] = append(waiters, cb)
		s.mu.Unlock()
		return
	}
	s.inflight[item.ID] = []func(image.Image){cb}
	s.mu.Unlock()

	go s.resolve(item)
}

func (s *Store) resolve(item model.ArtItem) {
	img := s.fetch(item)
	if img == nil {
		zap.S().Debugf("media: rendering %s locally from seed %d", item.ID, item.Seed)
		img = pixelart.Sprite(item.Seed, item.SpriteSize)
	}

	s.mu.Lock()
	s.cache[item.ID] = img
	waiters := s.inflight[item.ID]
	delete(s.inflight, item.ID)
	s.mu.Unlock()

	for _, cb := range waiters {
		cb(img)
	}
}

func (s *Store) fetch(item model.ArtItem) image.Image {
	if item.MediaURL == "" {
		return nil
	}

	url := item.MediaURL
	if strings.HasPrefix(url, "/") {
		if s.baseURL == "" {
			return nil
		}
		url = s.baseURL + url
	}

	ctx, cancel := context.WithTimeout(context.Background(), FetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil
	}

	resp, err := s.client.Do(req)
	if err != nil {
		zap.S().Warnf("media: fetch %s failed: %v", url, err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		zap.S().Warnf("media: fetch %s returned status %d", url, resp.StatusCode)
		return nil
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		zap.S().Warnf("media: decode %s failed: %v", url, err)
		return nil
	}
	return img
}
