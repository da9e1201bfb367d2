package social

import (
	"context"

	"github.com/pixlshare/pixl-viewer/internal/model"
)

// Client defines the interface to the social backend. Implementations must
// be safe for concurrent use.
type Client interface {
	// ListItems fetches the feed as an ordered list with stable identity
	ListItems(ctx context.Context) ([]model.ArtItem, error)

	// FetchReactionState fetches per-emoji totals and the viewer's own set
	FetchReactionState(ctx context.Context, itemID string) (model.ReactionState, error)

	// ToggleReaction adds or removes one of the viewer's reactions
	ToggleReaction(ctx context.Context, itemID, emoji string, add bool) error

	// FetchCommentCount fetches the number of comments on an item
	FetchCommentCount(ctx context.Context, itemID string) (int, error)

	// FetchViewCount fetches the number of registered views of an item
	FetchViewCount(ctx context.Context, itemID string) (int, error)

	// RegisterView records one view of an item, best effort
	RegisterView(ctx context.Context, itemID string) error
}
