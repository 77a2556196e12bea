package client

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-app/inkwell-be/internal/api"
	"github.com/inkwell-app/inkwell-be/internal/auth"
	"github.com/inkwell-app/inkwell-be/internal/database"
	"github.com/inkwell-app/inkwell-be/internal/services"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := database.New(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })

	issuer := auth.NewIssuer("test-secret", time.Hour, false)
	router := api.NewRouter(
		issuer,
		services.NewUserService(db),
		services.NewPostService(db),
		services.NewCommentService(db),
		"http://localhost:5173",
	)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestEndToEndFlow(t *testing.T) {
	srv := newTestServer(t)
	c, err := New(srv.URL + "/api")
	require.NoError(t, err)

	user, err := c.Register("alice", "a@x.com", "pw123456", "pw123456")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	user, err = c.Login("a@x.com", "pw123456")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)

	profile, err := c.Profile()
	require.NoError(t, err)
	assert.Equal(t, user.ID, profile.ID)

	post, err := c.CreatePost("Hello World", "1234567890")
	require.NoError(t, err)
	assert.NotEmpty(t, post.ID)

	comment, err := c.AddComment(post.ID, "Nice post")
	require.NoError(t, err)
	assert.Equal(t, "Nice post", comment.Content)

	comments, err := c.Comments(post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, comment.ID, comments[0].ID)
}

func TestClientCachesPosts(t *testing.T) {
	srv := newTestServer(t)
	c, err := New(srv.URL + "/api")
	require.NoError(t, err)

	_, err = c.Register("alice", "a@x.com", "pw123456", "pw123456")
	require.NoError(t, err)

	_, err = c.CreatePost("First post", "first post body")
	require.NoError(t, err)

	posts, err := c.Posts()
	require.NoError(t, err)
	require.Len(t, posts, 1)

	// A second client writes behind this client's back
	other, err := New(srv.URL + "/api")
	require.NoError(t, err)
	_, err = other.Register("bob", "b@x.com", "pw123456", "pw123456")
	require.NoError(t, err)
	_, err = other.CreatePost("Second post", "second post body")
	require.NoError(t, err)

	// Cached view is unchanged until a refresh or a local mutation
	posts, err = c.Posts()
	require.NoError(t, err)
	assert.Len(t, posts, 1)

	posts, err = c.RefreshPosts()
	require.NoError(t, err)
	assert.Len(t, posts, 2)
}

func TestClientInvalidatesOnMutation(t *testing.T) {
	srv := newTestServer(t)
	c, err := New(srv.URL + "/api")
	require.NoError(t, err)

	_, err = c.Register("alice", "a@x.com", "pw123456", "pw123456")
	require.NoError(t, err)

	post, err := c.CreatePost("First post", "first post body")
	require.NoError(t, err)

	_, err = c.Posts()
	require.NoError(t, err)

	_, err = c.AddComment(post.ID, "Nice post")
	require.NoError(t, err)

	// The comment mutation dropped both caches
	posts, err := c.Posts()
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Len(t, posts[0].Comments, 1)

	comments, err := c.Comments(post.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 1)
}

func TestClientErrorsCarryStatusAndMessage(t *testing.T) {
	srv := newTestServer(t)
	c, err := New(srv.URL + "/api")
	require.NoError(t, err)

	_, err = c.Login("ghost@example.com", "pw123456")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid email or password", apiErr.Message)

	_, err = c.Post("missing-id")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestClientSessionGatesMutations(t *testing.T) {
	srv := newTestServer(t)
	c, err := New(srv.URL + "/api")
	require.NoError(t, err)

	_, err = c.CreatePost("Hello World", "1234567890")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	_, err = c.Register("alice", "a@x.com", "pw123456", "pw123456")
	require.NoError(t, err)

	_, err = c.CreatePost("Hello World", "1234567890")
	require.NoError(t, err)

	require.NoError(t, c.Logout())

	_, err = c.CreatePost("Another one", "1234567890")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}
