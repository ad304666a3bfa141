package repositories

import "errors"

// Conflict-class sentinels surfaced to handlers. Not-found conditions use
// gorm.ErrRecordNotFound directly.
var (
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrNotFollowing     = errors.New("not following this user")
	ErrAlreadyLiked     = errors.New("already liked")
	ErrLikeNotFound     = errors.New("like not found")
	ErrAlreadyRead      = errors.New("notification already read")
)
