package media

import (
	"image"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pixlshare/pixl-viewer/internal/model"
	"github.com/pixlshare/pixl-viewer/internal/pixelart"
)

func artServer(t *testing.T, requests *int32, gate chan struct{}) *httptest.Server {
	t.Helper()

	data, err := pixelart.EncodePNG(pixelart.Sprite(1, 8))
	if err != nil {
		t.Fatalf("failed to encode test sprite: %v", err)
	}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(requests, 1)
		if gate != nil {
			<-gate
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(data)
	}))
}

func TestStore_LoadFetchesAndCaches(t *testing.T) {
	var requests int32
	srv := artServer(t, &requests, nil)
	defer srv.Close()

	store := NewStore(srv.URL)
	item := model.ArtItem{ID: "a1", MediaURL: "/api/items/a1/art.png", Seed: 1, SpriteSize: 8}

	got := make(chan image.Image, 1)
	store.Load(item, func(img image.Image) { got <- img })

	select {
	case img := <-got:
		if img == nil {
			t.Fatal("Expected an image, got nil")
		}
		if img.Bounds().Dx() != 8 {
			t.Errorf("Expected 8px artwork, got %d", img.Bounds().Dx())
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Load callback never fired")
	}

	if store.LoadMemoryOnly("a1") == nil {
		t.Error("Expected artwork to be cached after load")
	}

	// Second load must be served from memory
	store.Load(item, func(img image.Image) { got <- img })
	select {
	case <-got:
	case <-time.After(2 * time.Second):
		t.Fatal("Cached load callback never fired")
	}

	if n := atomic.LoadInt32(&requests); n != 1 {
		t.Errorf("Expected exactly 1 server request, got %d", n)
	}
}

func TestStore_ConcurrentLoadsShareOneFetch(t *testing.T) {
	var requests int32
	gate := make(chan struct{})
	srv := artServer(t, &requests, gate)
	defer srv.Close()

	store := NewStore(srv.URL)
	item := model.ArtItem{ID: "a2", MediaURL: "/api/items/a2/art.png", Seed: 2, SpriteSize: 8}

	got := make(chan image.Image, 2)
	store.Load(item, func(img image.Image) { got <- img })
	store.Load(item, func(img image.Image) { got <- img })

	close(gate)

	for i := 0; i < 2; i++ {
		select {
		case img := <-got:
			if img == nil {
				t.Fatal("Expected an image, got nil")
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("Callback %d never fired", i)
		}
	}

	if n := atomic.LoadInt32(&requests); n != 1 {
		t.Errorf("Expected exactly 1 server request for concurrent loads, got %d", n)
	}
}

func TestStore_FallsBackToLocalSprite(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	store := NewStore(srv.URL)
	item := model.ArtItem{ID: "a3", MediaURL: "/api/items/a3/art.png", Seed: 3, SpriteSize: 16}

	got := make(chan image.Image, 1)
	store.Load(item, func(img image.Image) { got <- img })

	select {
	case img := <-got:
		if img == nil {
			t.Fatal("Expected a locally rendered sprite, got nil")
		}
		if img.Bounds().Dx() != 16 {
			t.Errorf("Expected 16px local sprite, got %d", img.Bounds().Dx())
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Fallback callback never fired")
	}
}

func TestStore_EmptyMediaURLRendersLocally(t *testing.T) {
	store := NewStore("")
	item := model.ArtItem{ID: "a4", Seed: 4, SpriteSize: 8}

	got := make(chan image.Image, 1)
	store.Load(item, func(img image.Image) { got <- img })

	select {
	case img := <-got:
		if img == nil {
			t.Fatal("Expected a locally rendered sprite, got nil")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Local render callback never fired")
	}
}
