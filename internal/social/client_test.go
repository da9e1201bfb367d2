package social

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPClient_FetchReactionState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/api/items/item-1/reactions" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if viewer := r.Header.Get(ViewerHeader); viewer != "viewer-1" {
			t.Errorf("Expected viewer header viewer-1, got '%s'", viewer)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"totals": map[string]int{"🔥": 3},
			"mine":   []string{"🔥"},
		})
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "viewer-1")
	state, err := client.FetchReactionState(context.Background(), "item-1")
	if err != nil {
		t.Fatalf("FetchReactionState failed: %v", err)
	}

	if state.TotalFor("🔥") != 3 {
		t.Errorf("Expected 3 🔥 reactions, got %d", state.TotalFor("🔥"))
	}
	if !state.HasMine("🔥") {
		t.Error("Expected viewer's own 🔥 reaction")
	}
}

func TestHTTPClient_ToggleReactionBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}

		var body struct {
			Emoji string `json:"emoji"`
			Add   bool   `json:"add"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("Failed to decode toggle body: %v", err)
		}
		if body.Emoji != "💜" || !body.Add {
			t.Errorf("Unexpected toggle body: %+v", body)
		}

		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "viewer-1")
	if err := client.ToggleReaction(context.Background(), "item-1", "💜", true); err != nil {
		t.Fatalf("ToggleReaction failed: %v", err)
	}
}

func TestHTTPClient_Counts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/items/item-1/comments/count":
			json.NewEncoder(w).Encode(map[string]int{"count": 12})
		case "/api/items/item-1/views/count":
			json.NewEncoder(w).Encode(map[string]int{"count": 440})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "viewer-1")

	comments, err := client.FetchCommentCount(context.Background(), "item-1")
	if err != nil {
		t.Fatalf("FetchCommentCount failed: %v", err)
	}
	if comments != 12 {
		t.Errorf("Expected 12 comments, got %d", comments)
	}

	views, err := client.FetchViewCount(context.Background(), "item-1")
	if err != nil {
		t.Fatalf("FetchViewCount failed: %v", err)
	}
	if views != 440 {
		t.Errorf("Expected 440 views, got %d", views)
	}
}

func TestHTTPClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "viewer-1")

	if err := client.RegisterView(context.Background(), "item-1"); err == nil {
		t.Error("Expected an error for a 403 response")
	}

	if _, err := client.ListItems(context.Background()); err == nil {
		t.Error("Expected an error for a 403 response")
	}
}
