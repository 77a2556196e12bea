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

// CommentHandler handles HTTP requests for comments.
type CommentHandler struct {
	comments services.CommentServiceProvider
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(comments services.CommentServiceProvider) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// CommentPayload defines the structure for comment creation requests.
type CommentPayload struct {
	Content string `json:"content" validate:"required,min=3,max=500"`
}

// List handles the request to list a post's comments.
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postId")
	comments, err := h.comments.GetCommentsByPost(postID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Post not found")
			return
		}
		log.Error().Err(err).Str("post_id", postID).Msg("Failed to list comments")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve comments")
		return
	}
	respondJSON(w, http.StatusOK, comments)
}

// Create handles the request to add a comment to a post.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Missing auth token")
		return
	}
	postID := chi.URLParam(r, "postId")

	var payload CommentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(payload); err != nil {
		respondError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	comment, err := h.comments.AddComment(claims.UserID, postID, payload.Content)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Post not found")
			return
		}
		log.Error().Err(err).Str("post_id", postID).Msg("Failed to add comment")
		respondError(w, http.StatusInternalServerError, "Failed to add comment")
		return
	}
	respondJSON(w, http.StatusCreated, comment)
}

// Delete handles the removal of a comment by its author.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Missing auth token")
		return
	}
	postID := chi.URLParam(r, "postId")
	commentID := chi.URLParam(r, "commentId")

	if err := h.comments.DeleteComment(claims.UserID, postID, commentID); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			respondError(w, http.StatusNotFound, "Comment not found")
		case errors.Is(err, services.ErrForbidden):
			respondError(w, http.StatusForbidden, "Not authorized to delete this comment")
		default:
			log.Error().Err(err).Str("comment_id", commentID).Msg("Failed to delete comment")
			respondError(w, http.StatusInternalServerError, "Failed to delete comment")
		}
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Comment removed"})
}
