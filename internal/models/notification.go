package models

import "time"

// Target types for notifications
const (
	TargetPost    = "post"
	TargetComment = "comment"
)

// Verbs used by the fan-out
const (
	VerbLiked     = "liked your post"
	VerbCommented = "commented on your post"
)

// Notification is written as a side effect of like/comment creation, in
// the same transaction as the triggering row. Clients only ever flip
// IsRead from false to true.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	ActorID     uint      `json:"actor_id" gorm:"index"`
	Actor       User      `json:"actor" gorm:"foreignKey:ActorID"`
	Verb        string    `json:"verb" gorm:"size:255"`
	TargetType  string    `json:"target_type" gorm:"size:20"`
	TargetID    uint      `json:"target_id"`
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
