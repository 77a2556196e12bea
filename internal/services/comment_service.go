package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-app/inkwell-be/internal/models"
)

// CommentServiceProvider defines the interface for comment services.
type CommentServiceProvider interface {
	GetCommentsByPost(postID string) ([]models.Comment, error)
	AddComment(userID, postID, content string) (models.Comment, error)
	DeleteComment(userID, postID, commentID string) error
}

// CommentService provides business logic for comments.
type CommentService struct {
	db *sql.DB
}

// NewCommentService creates a new CommentService.
func NewCommentService(db *sql.DB) *CommentService {
	return &CommentService{db: db}
}

// GetCommentsByPost lists a post's comments, oldest first. The post must
// exist.
func (s *CommentService) GetCommentsByPost(postID string) ([]models.Comment, error) {
	if err := s.postExists(postID); err != nil {
		return nil, err
	}
	return commentsByPost(s.db, postID)
}

// AddComment stores a new comment on an existing post. The commenter's
// username is copied onto the comment; a later rename does not rewrite it.
func (s *CommentService) AddComment(userID, postID, content string) (models.Comment, error) {
	if err := s.postExists(postID); err != nil {
		return models.Comment{}, err
	}

	var username string
	err := s.db.QueryRow("SELECT username FROM users WHERE id = ?", userID).Scan(&username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Comment{}, fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		return models.Comment{}, err
	}

	comment := models.Comment{
		ID:            uuid.New().String(),
		Content:       content,
		CommenterName: username,
		UserID:        userID,
		PostID:        postID,
		User:          models.PublicUser{ID: userID, Username: username},
		CreatedAt:     time.Now().UTC(),
	}

	_, err = s.db.Exec(
		"INSERT INTO comments(id, content, commenter_name, user_id, post_id, created_at) VALUES(?, ?, ?, ?, ?, ?)",
		comment.ID, comment.Content, comment.CommenterName, comment.UserID, comment.PostID, comment.CreatedAt,
	)
	if err != nil {
		return models.Comment{}, err
	}
	return comment, nil
}

// DeleteComment removes a comment from a post. Only the commenter may
// delete it.
func (s *CommentService) DeleteComment(userID, postID, commentID string) error {
	var comment models.Comment
	row := s.db.QueryRow(
		"SELECT id, user_id, post_id FROM comments WHERE id = ? AND post_id = ?",
		commentID, postID,
	)
	err := row.Scan(&comment.ID, &comment.UserID, &comment.PostID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("comment %s: %w", commentID, ErrNotFound)
		}
		return err
	}
	if !IsOwner(userID, comment) {
		return fmt.Errorf("comment %s: %w", commentID, ErrForbidden)
	}

	_, err = s.db.Exec("DELETE FROM comments WHERE id = ?", commentID)
	return err
}

func (s *CommentService) postExists(postID string) error {
	var one int
	err := s.db.QueryRow("SELECT 1 FROM posts WHERE id = ?", postID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("post %s: %w", postID, ErrNotFound)
	}
	return err
}

// commentsByPost loads a post's comments with each commenter's current
// public identity. The commenter_name column itself is the write-time
// snapshot and is returned as stored.
func commentsByPost(db *sql.DB, postID string) ([]models.Comment, error) {
	rows, err := db.Query(`
		SELECT c.id, c.content, c.commenter_name, c.user_id, c.post_id, u.username, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id = ?
		ORDER BY c.created_at ASC`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		err := rows.Scan(&c.ID, &c.Content, &c.CommenterName, &c.UserID, &c.PostID, &c.User.Username, &c.CreatedAt)
		if err != nil {
			return nil, err
		}
		c.User.ID = c.UserID
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
