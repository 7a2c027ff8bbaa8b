package entities

import (
	"time"

	"github.com/google/uuid"
)

type Recipe struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID `gorm:"not null;index" json:"user_id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	TimeMinutes int       `json:"time_minutes"`
	Price       float64   `gorm:"type:numeric(5,2)" json:"price"`
	Link        string    `json:"link,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`

	// Derived from the ratings table, never written directly by requests.
	AverageRating float64 `gorm:"type:numeric(3,2);default:0" json:"average_rating"`
	RatingsCount  int     `gorm:"default:0" json:"ratings_count"`

	Tags        []Tag        `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE" json:"tags"`
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients;constraint:OnDelete:CASCADE" json:"ingredients"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Timestamp
}

type Tag struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"not null;uniqueIndex:idx_tags_owner_name" json:"user_id"`
	Name   string    `gorm:"not null;uniqueIndex:idx_tags_owner_name" json:"name"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Timestamp
}

type Ingredient struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"not null;uniqueIndex:idx_ingredients_owner_name" json:"user_id"`
	Name   string    `gorm:"not null;uniqueIndex:idx_ingredients_owner_name" json:"name"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Timestamp
}

type RecipeLike struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"not null;uniqueIndex:idx_recipe_likes_pair" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"not null;uniqueIndex:idx_recipe_likes_pair" json:"recipe_id"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`

	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
}
