package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/inkwell-app/inkwell-be/internal/auth"
	"github.com/inkwell-app/inkwell-be/internal/services"
)

// PostHandler handles HTTP requests for posts.
type PostHandler struct {
	posts services.PostServiceProvider
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(posts services.PostServiceProvider) *PostHandler {
	return &PostHandler{posts: posts}
}

// CreatePostPayload defines the structure for post creation requests.
type CreatePostPayload struct {
	Title   string `json:"title" validate:"required,min=3,max=100"`
	Content string `json:"content" validate:"required,min=10"`
}

// UpdatePostPayload defines the structure for partial post updates. Omitted
// fields keep their stored values.
type UpdatePostPayload struct {
	Title   *string `json:"title" validate:"omitempty,min=3,max=100"`
	Content *string `json:"content" validate:"omitempty,min=10"`
}

// GetAll handles the request to list all posts, newest first.
func (h *PostHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.GetAllPosts()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list posts")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve posts")
		return
	}
	respondJSON(w, http.StatusOK, posts)
}

// Get handles the request to fetch a single post with its comments.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	post, err := h.posts.GetPostByID(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Post not found")
			return
		}
		log.Error().Err(err).Str("post_id", id).Msg("Failed to get post")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve post")
		return
	}
	respondJSON(w, http.StatusOK, post)
}

// Create handles the request to create a new post for the session user.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Missing auth token")
		return
	}

	var payload CreatePostPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(payload); err != nil {
		respondError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	post, err := h.posts.CreatePost(claims.UserID, payload.Title, payload.Content)
	if err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to create post")
		respondError(w, http.StatusInternalServerError, "Failed to create post")
		return
	}
	respondJSON(w, http.StatusCreated, post)
}

// Update handles a partial update of a post owned by the session user.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Missing auth token")
		return
	}
	id := chi.URLParam(r, "id")

	var payload UpdatePostPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.Title == nil && payload.Content == nil {
		respondError(w, http.StatusBadRequest, "Nothing to update")
		return
	}
	if err := validate.Struct(payload); err != nil {
		respondError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	post, err := h.posts.UpdatePost(claims.UserID, id, payload.Title, payload.Content)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			respondError(w, http.StatusNotFound, "Post not found")
		case errors.Is(err, services.ErrForbidden):
			respondError(w, http.StatusForbidden, "Not authorized to update this post")
		default:
			log.Error().Err(err).Str("post_id", id).Msg("Failed to update post")
			respondError(w, http.StatusInternalServerError, "Failed to update post")
		}
		return
	}
	respondJSON(w, http.StatusOK, post)
}

// Delete handles the removal of a post owned by the session user.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Missing auth token")
		return
	}
	id := chi.URLParam(r, "id")

	if err := h.posts.DeletePost(claims.UserID, id); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			respondError(w, http.StatusNotFound, "Post not found")
		case errors.Is(err, services.ErrForbidden):
			respondError(w, http.StatusForbidden, "Not authorized to delete this post")
		default:
			log.Error().Err(err).Str("post_id", id).Msg("Failed to delete post")
			respondError(w, http.StatusInternalServerError, "Failed to delete post")
		}
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Post removed"})
}
