package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndListComments(t *testing.T) {
	db := newTestDB(t)
	postSvc := NewPostService(db)
	commentSvc := NewCommentService(db)
	alice := createTestUser(t, db, "alice", "alice@example.com")
	bob := createTestUser(t, db, "bob", "bob@example.com")

	post, err := postSvc.CreatePost(alice.ID, "Hello World", "1234567890")
	require.NoError(t, err)

	const n = 5
	for i := 0; i < n; i++ {
		_, err := commentSvc.AddComment(bob.ID, post.ID, fmt.Sprintf("comment number %d", i))
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
	}

	comments, err := commentSvc.GetCommentsByPost(post.ID)
	require.NoError(t, err)
	require.Len(t, comments, n)
	for i, c := range comments {
		assert.Equal(t, fmt.Sprintf("comment number %d", i), c.Content, "comments are listed oldest first")
		assert.Equal(t, "bob", c.CommenterName)
		assert.Equal(t, bob.ID, c.UserID)
		assert.Equal(t, post.ID, c.PostID)
	}
}

func TestAddCommentToMissingPost(t *testing.T) {
	db := newTestDB(t)
	commentSvc := NewCommentService(db)
	alice := createTestUser(t, db, "alice", "alice@example.com")

	_, err := commentSvc.AddComment(alice.ID, "missing-post", "a comment body")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddCommentByMissingUser(t *testing.T) {
	db := newTestDB(t)
	postSvc := NewPostService(db)
	commentSvc := NewCommentService(db)
	alice := createTestUser(t, db, "alice", "alice@example.com")

	post, err := postSvc.CreatePost(alice.ID, "Hello World", "1234567890")
	require.NoError(t, err)

	_, err = commentSvc.AddComment("missing-user", post.ID, "a comment body")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListCommentsOfMissingPost(t *testing.T) {
	db := newTestDB(t)
	commentSvc := NewCommentService(db)

	_, err := commentSvc.GetCommentsByPost("missing-post")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCommenterNameIsASnapshot(t *testing.T) {
	db := newTestDB(t)
	postSvc := NewPostService(db)
	commentSvc := NewCommentService(db)
	alice := createTestUser(t, db, "alice", "alice@example.com")
	bob := createTestUser(t, db, "bob", "bob@example.com")

	post, err := postSvc.CreatePost(alice.ID, "Hello World", "1234567890")
	require.NoError(t, err)
	_, err = commentSvc.AddComment(bob.ID, post.ID, "Nice post")
	require.NoError(t, err)

	// Rename the commenter after the fact
	_, err = db.Exec("UPDATE users SET username = ? WHERE id = ?", "robert", bob.ID)
	require.NoError(t, err)

	comments, err := commentSvc.GetCommentsByPost(post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "bob", comments[0].CommenterName, "historical comments keep the old name")
	assert.Equal(t, "robert", comments[0].User.Username, "nested identity reflects the current name")
}

func TestDeleteComment(t *testing.T) {
	db := newTestDB(t)
	postSvc := NewPostService(db)
	commentSvc := NewCommentService(db)
	alice := createTestUser(t, db, "alice", "alice@example.com")
	bob := createTestUser(t, db, "bob", "bob@example.com")

	post, err := postSvc.CreatePost(alice.ID, "Hello World", "1234567890")
	require.NoError(t, err)
	comment, err := commentSvc.AddComment(bob.ID, post.ID, "Nice post")
	require.NoError(t, err)

	// Only the commenter may delete
	err = commentSvc.DeleteComment(alice.ID, post.ID, comment.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, commentSvc.DeleteComment(bob.ID, post.ID, comment.ID))

	comments, err := commentSvc.GetCommentsByPost(post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	err = commentSvc.DeleteComment(bob.ID, post.ID, comment.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCommentWrongPost(t *testing.T) {
	db := newTestDB(t)
	postSvc := NewPostService(db)
	commentSvc := NewCommentService(db)
	alice := createTestUser(t, db, "alice", "alice@example.com")

	post, err := postSvc.CreatePost(alice.ID, "Hello World", "1234567890")
	require.NoError(t, err)
	other, err := postSvc.CreatePost(alice.ID, "Other post", "another body here")
	require.NoError(t, err)
	comment, err := commentSvc.AddComment(alice.ID, post.ID, "Nice post")
	require.NoError(t, err)

	// The comment is addressed through its parent post
	err = commentSvc.DeleteComment(alice.ID, other.ID, comment.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
