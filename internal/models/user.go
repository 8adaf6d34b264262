package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account holder. PasswordHash is never serialized; the
// service layer hashes the plaintext exactly once, at registration or
// on a password change.
type User struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Username     string    `gorm:"size:30;not null;uniqueIndex" json:"username"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	FirstName    string    `gorm:"size:50;not null" json:"first_name"`
	LastName     string    `gorm:"size:50;not null" json:"last_name"`
	AvatarURL    string    `gorm:"size:255" json:"avatar_url"`
	Bio          string    `gorm:"size:500" json:"bio"`
	IsAdmin      bool      `gorm:"not null;default:false" json:"is_admin"`
}

// UserFavorite marks a recipe as favorited by a user. Favoriting is a
// membership toggle on this table, independent of the recipe's likes.
type UserFavorite struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_recipe" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_recipe" json:"recipe_id"`
}

// UserFollow records that follower follows followee.
type UserFollow struct {
	ID         uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	FollowerID uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_follower_followee" json:"follower_id"`
	FolloweeID uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_follower_followee" json:"followee_id"`
}
