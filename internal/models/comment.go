package models

import "time"

// Comment belongs to a post. CommenterName is copied from the commenter's
// username when the comment is written; it is a historical snapshot and is
// never re-joined against the users table on reads.
type Comment struct {
	ID            string     `json:"id"`
	Content       string     `json:"content"`
	CommenterName string     `json:"commenterName"`
	UserID        string     `json:"userId"`
	PostID        string     `json:"postId"`
	User          PublicUser `json:"user"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// OwnerID reports the user permitted to delete this comment.
func (c Comment) OwnerID() string {
	return c.UserID
}
