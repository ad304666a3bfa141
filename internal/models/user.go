package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is an account holder. Passwords are stored as bcrypt hashes and
// never serialized.
type User struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	Username          string    `json:"username" gorm:"size:150;uniqueIndex"`
	Email             string    `json:"email" gorm:"uniqueIndex"`
	Password          string    `json:"-"`
	Bio               string    `json:"bio"`
	ProfilePictureURL string    `json:"profile_picture_url,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// RegisterRequest defines the request body for account registration
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=2,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest defines the request body for signing in
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest defines the request body for editing the caller's profile
type UpdateProfileRequest struct {
	Bio               string `json:"bio,omitempty" validate:"omitempty,max=500"`
	ProfilePictureURL string `json:"profile_picture_url,omitempty" validate:"omitempty,url"`
}

// Profile is a user enriched with graph counts for profile responses
type Profile struct {
	User
	FollowersCount int64 `json:"followers_count"`
	FollowingCount int64 `json:"following_count"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
