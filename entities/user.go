package entities

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	Name     string    `json:"name"`
	Password string    `json:"-"`
	IsActive bool      `gorm:"default:true" json:"is_active"`
	IsStaff  bool      `gorm:"default:false" json:"is_staff"`

	Timestamp
}

type Follow struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FollowerID uuid.UUID `gorm:"not null;uniqueIndex:idx_follows_pair" json:"follower_id"`
	FolloweeID uuid.UUID `gorm:"not null;uniqueIndex:idx_follows_pair" json:"followee_id"`
	CreatedAt  time.Time `gorm:"type:timestamp" json:"created_at"`

	Follower *User `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE" json:"-"`
	Followee *User `gorm:"foreignKey:FolloweeID;constraint:OnDelete:CASCADE" json:"-"`
}
