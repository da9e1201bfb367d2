package devserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/pixlshare/pixl-viewer/internal/pixelart"
	"github.com/pixlshare/pixl-viewer/internal/social"
)

// Handler serves the social API consumed by the client
type Handler struct {
	store    *Store
	validate *validator.Validate
	logger   *zap.Logger
}

// NewHandler creates an API handler on top of a store
func NewHandler(store *Store, logger *zap.Logger) *Handler {
	return &Handler{
		store:    store,
		validate: validator.New(),
		logger:   logger,
	}
}

// ToggleReactionRequest is the request body for toggling a reaction.
// Emoji length is capped at 8 runes, enough for multi-codepoint emoji.
type ToggleReactionRequest struct {
	Emoji string `json:"emoji" validate:"required,max=8"`
	Add   bool   `json:"add"`
}

// RegisterRoutes mounts all API routes on the router
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/items", func(r chi.Router) {
		r.Get("/", h.listItems)
		r.Route("/{itemID}", func(r chi.Router) {
			r.Get("/art.png", h.artwork)
			r.Get("/reactions", h.reactionState)
			r.Post("/reactions", h.toggleReaction)
			r.Get("/comments/count", h.commentCount)
			r.Get("/views/count", h.viewCount)
			r.Post("/views", h.registerView)
		})
	})
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.store.Items())
}

func (h *Handler) artwork(w http.ResponseWriter, r *http.Request) {
	item, ok := h.store.Item(chi.URLParam(r, "itemID"))
	if !ok {
		h.respondError(w, http.StatusNotFound, "Item not found")
		return
	}

	sprite := pixelart.Sprite(item.Seed, item.SpriteSize)
	scale := pixelart.FitScale(item.SpriteSize, item.SpriteSize, 256, 256)

	data, err := pixelart.EncodePNG(pixelart.ScaleNearest(sprite, scale))
	if err != nil {
		h.logger.Error("Failed to encode artwork", zap.String("item", item.ID), zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "Failed to encode artwork")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "max-age=86400")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Error("Failed to write artwork", zap.String("item", item.ID), zap.Error(err))
	}
}

func (h *Handler) reactionState(w http.ResponseWriter, r *http.Request) {
	state, err := h.store.ReactionState(chi.URLParam(r, "itemID"), viewerID(r))
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, state)
}

func (h *Handler) toggleReaction(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")

	var req ToggleReactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	viewer := viewerID(r)
	if err := h.store.ToggleReaction(itemID, viewer, req.Emoji, req.Add); err != nil {
		h.respondStoreError(w, err)
		return
	}

	h.logger.Debug("Reaction toggled",
		zap.String("item", itemID),
		zap.String("viewer", viewer),
		zap.String("emoji", req.Emoji),
		zap.Bool("add", req.Add))

	// reply with the fresh state so curious clients can reconcile instantly
	state, err := h.store.ReactionState(itemID, viewer)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, state)
}

func (h *Handler) commentCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.store.CommentCount(chi.URLParam(r, "itemID"))
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]int{"count": count})
}

func (h *Handler) viewCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.store.ViewCount(chi.URLParam(r, "itemID"))
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]int{"count": count})
}

func (h *Handler) registerView(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	if err := h.store.RegisterView(itemID); err != nil {
		h.respondStoreError(w, err)
		return
	}

	h.logger.Debug("View registered", zap.String("item", itemID), zap.String("viewer", viewerID(r)))
	w.WriteHeader(http.StatusAccepted)
}

// viewerID resolves the acting account from the request headers
func viewerID(r *http.Request) string {
	if viewer := r.Header.Get(social.ViewerHeader); viewer != "" {
		return viewer
	}
	return "anonymous"
}

func (h *Handler) respondStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrItemNotFound) {
		h.respondError(w, http.StatusNotFound, "Item not found")
		return
	}
	h.respondError(w, http.StatusInternalServerError, err.Error())
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]interface{}{
		"error":   true,
		"message": message,
		"code":    status,
	})
}
