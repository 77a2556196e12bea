package models

import "time"

// Post is a blog entry owned by the user that created it.
type Post struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	AuthorID  string     `json:"authorId"`
	Author    PublicUser `json:"author"`
	Comments  []Comment  `json:"comments"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// OwnerID reports the user permitted to mutate or delete this post.
func (p Post) OwnerID() string {
	return p.AuthorID
}
