package model

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// ArtItem represents a single published pixel-art post in the feed.
// Items arrive from the server as an ordered list with stable identity;
// the client never mutates them, only indexes into the list.
type ArtItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	MediaURL    string    `json:"media_url"`  // canonical rendered artwork
	OwnerID     string    `json:"owner_id"`   // author account id
	OwnerName   string    `json:"owner_name"` // author display name
	Seed        int64     `json:"seed"`       // deterministic sprite seed
	SpriteSize  int       `json:"sprite_size"`
	CreatedAt   time.Time `json:"created_at"`
}

// GetDisplayTitle returns title, description excerpt, or a placeholder in
// order of preference
func (ai *ArtItem) GetDisplayTitle() string {
	// First priority: explicit title
	if strings.TrimSpace(ai.Title) != "" {
		return ai.Title
	}

	// Second priority: first line of the description, shortened
	if desc := strings.TrimSpace(ai.Description); desc != "" {
		if idx := strings.IndexRune(desc, '\n'); idx > 0 {
			desc = desc[:idx]
		}
		if utf8.RuneCountInString(desc) > 40 {
			runes := []rune(desc)
			desc = string(runes[:40]) + "…"
		}
		return desc
	}

	return "Untitled"
}

// IsOwnedBy returns true if the item belongs to the given viewer account
func (ai *ArtItem) IsOwnedBy(viewerID string) bool {
	return ai.OwnerID != "" && ai.OwnerID == viewerID
}

// AgeString returns a rough human-readable age of the post (e.g. "3h", "2d")
func (ai *ArtItem) AgeString(now time.Time) string {
	if ai.CreatedAt.IsZero() || now.Before(ai.CreatedAt) {
		return "now"
	}

	age := now.Sub(ai.CreatedAt)
	switch {
	case age < time.Minute:
		return "now"
	case age < time.Hour:
		return fmt.Sprintf("%dm", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh", int(age.Hours()))
	default:
		return fmt.Sprintf("%dd", int(age.Hours()/24))
	}
}
