package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkwell-app/inkwell-be/internal/models"
)

func TestIsOwner(t *testing.T) {
	post := models.Post{AuthorID: "user-1"}
	comment := models.Comment{UserID: "user-2"}

	assert.True(t, IsOwner("user-1", post))
	assert.False(t, IsOwner("user-2", post))
	assert.True(t, IsOwner("user-2", comment))
	assert.False(t, IsOwner("", post))
}
