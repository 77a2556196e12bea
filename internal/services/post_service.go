package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-app/inkwell-be/internal/models"
)

// PostServiceProvider defines the interface for post services.
type PostServiceProvider interface {
	GetAllPosts() ([]models.Post, error)
	GetPostByID(id string) (models.Post, error)
	CreatePost(authorID, title, content string) (models.Post, error)
	UpdatePost(userID, id string, title, content *string) (models.Post, error)
	DeletePost(userID, id string) error
}

// PostService provides business logic for posts.
type PostService struct {
	db *sql.DB
}

// NewPostService creates a new PostService.
func NewPostService(db *sql.DB) *PostService {
	return &PostService{db: db}
}

// GetAllPosts retrieves every post, newest creation time first, each with
// its author's public identity and nested comments.
func (s *PostService) GetAllPosts() ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT p.id, p.title, p.content, p.author_id, u.username, p.created_at, p.updated_at
		FROM posts p
		JOIN users u ON u.id = p.author_id
		ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range posts {
		comments, err := commentsByPost(s.db, posts[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load comments for post %s: %w", posts[i].ID, err)
		}
		posts[i].Comments = comments
	}
	return posts, nil
}

// GetPostByID retrieves a single post with its comments.
func (s *PostService) GetPostByID(id string) (models.Post, error) {
	row := s.db.QueryRow(`
		SELECT p.id, p.title, p.content, p.author_id, u.username, p.created_at, p.updated_at
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.id = ?`, id)

	post, err := scanPost(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Post{}, fmt.Errorf("post %s: %w", id, ErrNotFound)
		}
		return models.Post{}, err
	}

	comments, err := commentsByPost(s.db, post.ID)
	if err != nil {
		return models.Post{}, fmt.Errorf("failed to load comments: %w", err)
	}
	post.Comments = comments
	return post, nil
}

// CreatePost stores a new post owned by authorID.
func (s *PostService) CreatePost(authorID, title, content string) (models.Post, error) {
	now := time.Now().UTC()
	id := uuid.New().String()

	_, err := s.db.Exec(
		"INSERT INTO posts(id, title, content, author_id, created_at, updated_at) VALUES(?, ?, ?, ?, ?, ?)",
		id, title, content, authorID, now, now,
	)
	if err != nil {
		return models.Post{}, err
	}
	return s.GetPostByID(id)
}

// UpdatePost applies a partial update: nil fields keep their prior value.
// Only the owning author may update; non-owners get ErrForbidden.
func (s *PostService) UpdatePost(userID, id string, title, content *string) (models.Post, error) {
	post, err := s.GetPostByID(id)
	if err != nil {
		return models.Post{}, err
	}
	if !IsOwner(userID, post) {
		return models.Post{}, fmt.Errorf("post %s: %w", id, ErrForbidden)
	}

	_, err = s.db.Exec(
		"UPDATE posts SET title = COALESCE(?, title), content = COALESCE(?, content), updated_at = ? WHERE id = ?",
		title, content, time.Now().UTC(), id,
	)
	if err != nil {
		return models.Post{}, err
	}
	return s.GetPostByID(id)
}

// DeletePost removes a post. Its comments go with it via the foreign key
// cascade. Only the owning author may delete.
func (s *PostService) DeletePost(userID, id string) error {
	post, err := s.GetPostByID(id)
	if err != nil {
		return err
	}
	if !IsOwner(userID, post) {
		return fmt.Errorf("post %s: %w", id, ErrForbidden)
	}

	_, err = s.db.Exec("DELETE FROM posts WHERE id = ?", id)
	return err
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPost(row rowScanner) (models.Post, error) {
	var post models.Post
	err := row.Scan(
		&post.ID, &post.Title, &post.Content, &post.AuthorID,
		&post.Author.Username, &post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		return models.Post{}, err
	}
	post.Author.ID = post.AuthorID
	return post, nil
}
