package entities

import (
	"time"

	"github.com/google/uuid"
)

type Recipe struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Description  *string   `json:"description"`
	ThumbnailURL *string   `json:"thumbnail_url"`
	CookTime     *int      `json:"cook_time"`
	Servings     *int      `json:"servings"`
	Difficulty   *string   `gorm:"type:varchar(16)" json:"difficulty"`
	AuthorID     uuid.UUID `gorm:"type:uuid;not null;index" json:"author_id"`
	ViewCount    int64     `gorm:"not null;default:0" json:"view_count"`

	Author      *User        `gorm:"foreignKey:AuthorID" json:"-"`
	Ingredients []Ingredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
	Steps       []Step       `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
	Timestamp
}

type Ingredient struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	Name      string    `gorm:"not null" json:"name"`
	Amount    string    `json:"amount"`
	Unit      *string   `json:"unit"`
	SortOrder int       `gorm:"not null" json:"sort_order"`
}

type Step struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID    uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	StepNumber  int       `gorm:"not null" json:"step_number"`
	Instruction string    `gorm:"not null" json:"instruction"`
	ImageURL    *string   `json:"image_url"`
}

type Tag struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name string    `gorm:"uniqueIndex;not null" json:"name"`
}

type RecipeTag struct {
	RecipeID uuid.UUID `gorm:"type:uuid;primary_key" json:"recipe_id"`
	TagID    uuid.UUID `gorm:"type:uuid;primary_key" json:"tag_id"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
	Tag    *Tag    `gorm:"foreignKey:TagID" json:"-"`
}

// Like rows are unique per (user, recipe); the index backs the toggle.
type Like struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_like_user_recipe" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_like_user_recipe" json:"recipe_id"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`

	User   *User   `gorm:"foreignKey:UserID" json:"-"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
}
