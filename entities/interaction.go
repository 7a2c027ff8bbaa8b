package entities

import (
	"time"

	"github.com/google/uuid"
)

type Rating struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID   uuid.UUID `gorm:"not null;uniqueIndex:idx_ratings_user_recipe" json:"user_id"`
	RecipeID uuid.UUID `gorm:"not null;uniqueIndex:idx_ratings_user_recipe" json:"recipe_id"`
	Score    int       `gorm:"not null" json:"score"`

	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
	Timestamp
}

type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"not null;index" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"not null;index" json:"recipe_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`

	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
}
