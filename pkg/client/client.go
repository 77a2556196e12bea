// Package client is a stateful consumer of the blog API. It plays the role
// the SPA's store plays in the browser: it carries the session cookie issued
// at login and keeps a local cache of fetched posts and comments,
// invalidated whenever a mutation goes through the same client.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"time"

	"github.com/inkwell-app/inkwell-be/internal/models"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d: %s", e.StatusCode, e.Message)
}

// Client talks to a blog API server.
type Client struct {
	baseURL string
	http    *http.Client

	mu       sync.Mutex
	posts    []models.Post               // nil means not fetched
	comments map[string][]models.Comment // keyed by post ID
}

// New creates a client for the API rooted at baseURL (e.g.
// "http://localhost:8080/api"). The cookie jar holds the session across
// calls.
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL:  baseURL,
		http:     &http.Client{Jar: jar, Timeout: 10 * time.Second},
		comments: make(map[string][]models.Comment),
	}, nil
}

// Register creates an account and starts a session.
func (c *Client) Register(username, email, password, confirmPassword string) (models.User, error) {
	var user models.User
	err := c.do(http.MethodPost, "/auth/register", map[string]string{
		"username":        username,
		"email":           email,
		"password":        password,
		"confirmPassword": confirmPassword,
	}, &user, http.StatusCreated)
	return user, err
}

// Login authenticates and stores the session cookie.
func (c *Client) Login(email, password string) (models.User, error) {
	var user models.User
	err := c.do(http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &user, http.StatusOK)
	return user, err
}

// Logout ends the session and drops all cached state.
func (c *Client) Logout() error {
	if err := c.do(http.MethodPost, "/auth/logout", nil, nil, http.StatusOK); err != nil {
		return err
	}
	c.mu.Lock()
	c.posts = nil
	c.comments = make(map[string][]models.Comment)
	c.mu.Unlock()
	return nil
}

// Profile returns the logged-in user.
func (c *Client) Profile() (models.User, error) {
	var user models.User
	err := c.do(http.MethodGet, "/auth/profile", nil, &user, http.StatusOK)
	return user, err
}

// Posts returns the post list, from cache when one is held.
func (c *Client) Posts() ([]models.Post, error) {
	c.mu.Lock()
	cached := c.posts
	c.mu.Unlock()
	if cached != nil {
		return cached, nil
	}
	return c.RefreshPosts()
}

// RefreshPosts fetches the post list from the server and replaces the cache.
func (c *Client) RefreshPosts() ([]models.Post, error) {
	var posts []models.Post
	if err := c.do(http.MethodGet, "/posts", nil, &posts, http.StatusOK); err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.posts = posts
	c.mu.Unlock()
	return posts, nil
}

// Post fetches a single post with its comments.
func (c *Client) Post(id string) (models.Post, error) {
	var post models.Post
	err := c.do(http.MethodGet, "/posts/"+id, nil, &post, http.StatusOK)
	return post, err
}

// CreatePost creates a post owned by the session user.
func (c *Client) CreatePost(title, content string) (models.Post, error) {
	var post models.Post
	err := c.do(http.MethodPost, "/posts", map[string]string{
		"title":   title,
		"content": content,
	}, &post, http.StatusCreated)
	if err == nil {
		c.invalidatePosts()
	}
	return post, err
}

// UpdatePost partially updates a post; nil fields are left unchanged.
func (c *Client) UpdatePost(id string, title, content *string) (models.Post, error) {
	body := map[string]interface{}{}
	if title != nil {
		body["title"] = *title
	}
	if content != nil {
		body["content"] = *content
	}
	var post models.Post
	err := c.do(http.MethodPut, "/posts/"+id, body, &post, http.StatusOK)
	if err == nil {
		c.invalidatePosts()
	}
	return post, err
}

// DeletePost removes a post and its comments.
func (c *Client) DeletePost(id string) error {
	err := c.do(http.MethodDelete, "/posts/"+id, nil, nil, http.StatusOK)
	if err == nil {
		c.invalidatePosts()
		c.mu.Lock()
		delete(c.comments, id)
		c.mu.Unlock()
	}
	return err
}

// Comments returns a post's comments, from cache when held.
func (c *Client) Comments(postID string) ([]models.Comment, error) {
	c.mu.Lock()
	cached, ok := c.comments[postID]
	c.mu.Unlock()
	if ok {
		return cached, nil
	}
	return c.RefreshComments(postID)
}

// RefreshComments fetches a post's comments and replaces the cached list.
func (c *Client) RefreshComments(postID string) ([]models.Comment, error) {
	var comments []models.Comment
	if err := c.do(http.MethodGet, "/"+postID+"/comments", nil, &comments, http.StatusOK); err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.comments[postID] = comments
	c.mu.Unlock()
	return comments, nil
}

// AddComment adds a comment to a post as the session user.
func (c *Client) AddComment(postID, content string) (models.Comment, error) {
	var comment models.Comment
	err := c.do(http.MethodPost, "/"+postID+"/comments", map[string]string{
		"content": content,
	}, &comment, http.StatusCreated)
	if err == nil {
		c.invalidateComments(postID)
	}
	return comment, err
}

// DeleteComment removes one of the session user's comments.
func (c *Client) DeleteComment(postID, commentID string) error {
	err := c.do(http.MethodDelete, "/"+postID+"/comments/"+commentID, nil, nil, http.StatusOK)
	if err == nil {
		c.invalidateComments(postID)
	}
	return err
}

func (c *Client) invalidatePosts() {
	c.mu.Lock()
	c.posts = nil
	c.mu.Unlock()
}

func (c *Client) invalidateComments(postID string) {
	c.mu.Lock()
	delete(c.comments, postID)
	// Posts embed their comments, so the post cache is stale too.
	c.posts = nil
	c.mu.Unlock()
}

func (c *Client) do(method, path string, body, out interface{}, wantStatus int) error {
	var reqBody bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&reqBody).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequest(method, c.baseURL+path, &reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		var payload struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		if payload.Message == "" {
			payload.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: payload.Message}
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
