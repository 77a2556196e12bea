package services

// Owned is any resource that records the user allowed to mutate it.
type Owned interface {
	OwnerID() string
}

// IsOwner reports whether userID may mutate or delete the resource.
func IsOwner(userID string, resource Owned) bool {
	return resource.OwnerID() == userID
}
