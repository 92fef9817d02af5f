package domain

import (
	"errors"
	"time"
)

var (
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrTitleRequired  = errors.New("title is required")
	ErrNotRecipeOwner = errors.New("only the recipe owner may modify it")
	ErrImageRequired  = errors.New("image file is required")
	ErrImageTooLarge  = errors.New("image exceeds the 5MB limit")
	ErrImageType      = errors.New("unsupported image type (jpeg, png, webp only)")
)

type (
	RecipeFilter struct {
		Query      string
		Difficulty string
		Tag        string
	}

	IngredientRequest struct {
		Name   string  `json:"name" validate:"required"`
		Amount string  `json:"amount"`
		Unit   *string `json:"unit,omitempty"`
	}

	StepRequest struct {
		Instruction string  `json:"instruction" validate:"required"`
		ImageURL    *string `json:"image_url,omitempty"`
	}

	CreateRecipeRequest struct {
		Title        string              `json:"title" validate:"required"`
		Description  *string             `json:"description,omitempty"`
		ThumbnailURL *string             `json:"thumbnail_url,omitempty"`
		CookTime     *int                `json:"cook_time,omitempty" validate:"omitempty,min=0"`
		Servings     *int                `json:"servings,omitempty" validate:"omitempty,min=1"`
		Difficulty   *string             `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard"`
		Ingredients  []IngredientRequest `json:"ingredients" validate:"dive"`
		Steps        []StepRequest       `json:"steps" validate:"dive"`
		Tags         []string            `json:"tags"`
	}

	UpdateRecipeRequest struct {
		Title        *string `json:"title,omitempty"`
		Description  *string `json:"description,omitempty"`
		ThumbnailURL *string `json:"thumbnail_url,omitempty"`
		CookTime     *int    `json:"cook_time,omitempty" validate:"omitempty,min=0"`
		Servings     *int    `json:"servings,omitempty" validate:"omitempty,min=1"`
		Difficulty   *string `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard"`
	}

	RecipeSummary struct {
		ID           string    `json:"id"`
		Title        string    `json:"title"`
		Description  *string   `json:"description"`
		ThumbnailURL *string   `json:"thumbnail_url"`
		CookTime     *int      `json:"cook_time"`
		Servings     *int      `json:"servings"`
		Difficulty   *string   `json:"difficulty"`
		AuthorID     string    `json:"author_id"`
		AuthorName   string    `json:"author_name"`
		AuthorAvatar *string   `json:"author_avatar"`
		ViewCount    int64     `json:"view_count"`
		LikeCount    int64     `json:"like_count"`
		CreatedAt    time.Time `json:"created_at"`
		UpdatedAt    time.Time `json:"updated_at"`
	}

	IngredientResponse struct {
		ID        string  `json:"id"`
		Name      string  `json:"name"`
		Amount    string  `json:"amount"`
		Unit      *string `json:"unit"`
		SortOrder int     `json:"sort_order"`
	}

	StepResponse struct {
		ID          string  `json:"id"`
		StepNumber  int     `json:"step_number"`
		Instruction string  `json:"instruction"`
		ImageURL    *string `json:"image_url"`
	}

	RecipeDetail struct {
		RecipeSummary
		Ingredients []IngredientResponse `json:"ingredients"`
		Steps       []StepResponse       `json:"steps"`
		Tags        []string             `json:"tags"`
	}

	RecipeListResponse struct {
		Recipes []RecipeSummary `json:"recipes"`
		Total   int64           `json:"total"`
		Page    int             `json:"page"`
		Limit   int             `json:"limit"`
	}

	ToggleLikeResponse struct {
		Liked bool `json:"liked"`
	}

	UploadImageResponse struct {
		URL string `json:"url"`
		Key string `json:"key"`
	}
)
