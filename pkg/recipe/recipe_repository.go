package recipe

import (
	"CookShare-Backend/domain"
	"CookShare-Backend/entities"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// RecipeRow is a recipe joined with its author and the aggregated
	// like count.
	RecipeRow struct {
		entities.Recipe
		AuthorName   string
		AuthorAvatar *string
		LikeCount    int64
	}

	RecipeRepository interface {
		ListRecipes(ctx context.Context, filter domain.RecipeFilter, page, limit int) ([]RecipeRow, int64, error)
		GetRecipeRow(ctx context.Context, id string) (*RecipeRow, error)
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		IncrementViewCount(ctx context.Context, id string) error
		GetIngredients(ctx context.Context, recipeID string) ([]entities.Ingredient, error)
		GetSteps(ctx context.Context, recipeID string) ([]entities.Step, error)
		GetTagNames(ctx context.Context, recipeID string) ([]string, error)
		CreateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []entities.Ingredient, steps []entities.Step, tags []string) error
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error
		DeleteRecipe(ctx context.Context, id string) error
		ToggleLike(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// applyFilters adds the list predicates conjunctively; the list query and
// its COUNT share this so page contents and total never disagree.
func applyFilters(tx *gorm.DB, filter domain.RecipeFilter) *gorm.DB {
	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		tx = tx.Where("recipes.title LIKE ? OR recipes.description LIKE ?", pattern, pattern)
	}
	if filter.Difficulty != "" {
		tx = tx.Where("recipes.difficulty = ?", filter.Difficulty)
	}
	if filter.Tag != "" {
		tx = tx.Where(
			"EXISTS (SELECT 1 FROM recipe_tags JOIN tags ON tags.id = recipe_tags.tag_id WHERE recipe_tags.recipe_id = recipes.id AND tags.name = ?)",
			filter.Tag,
		)
	}
	return tx
}

func (r *recipeRepository) rowQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Select("recipes.*, users.username AS author_name, users.avatar_url AS author_avatar, COUNT(DISTINCT likes.user_id) AS like_count").
		Joins("JOIN users ON users.id = recipes.author_id").
		Joins("LEFT JOIN likes ON likes.recipe_id = recipes.id").
		Group("recipes.id")
}

func (r *recipeRepository) ListRecipes(ctx context.Context, filter domain.RecipeFilter, page, limit int) ([]RecipeRow, int64, error) {
	var count int64
	countQuery := applyFilters(r.db.WithContext(ctx).Model(&entities.Recipe{}), filter)
	if err := countQuery.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var rows []RecipeRow
	offset := (page - 1) * limit
	if err := applyFilters(r.rowQuery(ctx), filter).
		Order("recipes.created_at DESC").
		Offset(offset).
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, count, nil
}

func (r *recipeRepository) GetRecipeRow(ctx context.Context, id string) (*RecipeRow, error) {
	var row RecipeRow
	if err := r.rowQuery(ctx).
		Where("recipes.id = ?", id).
		Take(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) IncrementViewCount(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}

func (r *recipeRepository) GetIngredients(ctx context.Context, recipeID string) ([]entities.Ingredient, error) {
	var ingredients []entities.Ingredient
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("sort_order").
		Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *recipeRepository) GetSteps(ctx context.Context, recipeID string) ([]entities.Step, error) {
	var steps []entities.Step
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("step_number").
		Find(&steps).Error; err != nil {
		return nil, err
	}
	return steps, nil
}

func (r *recipeRepository) GetTagNames(ctx context.Context, recipeID string) ([]string, error) {
	var names []string
	if err := r.db.WithContext(ctx).
		Model(&entities.Tag{}).
		Joins("JOIN recipe_tags ON recipe_tags.tag_id = tags.id").
		Where("recipe_tags.recipe_id = ?", recipeID).
		Order("tags.name").
		Pluck("tags.name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

// CreateRecipe persists the recipe and everything it owns in one
// transaction; a failed sub-insert leaves no orphaned recipe behind.
func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []entities.Ingredient, steps []entities.Step, tags []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}
		if len(ingredients) > 0 {
			if err := tx.Create(&ingredients).Error; err != nil {
				return err
			}
		}
		if len(steps) > 0 {
			if err := tx.Create(&steps).Error; err != nil {
				return err
			}
		}

		for _, name := range tags {
			var tag entities.Tag
			err := tx.Where("name = ?", name).First(&tag).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				tag = entities.Tag{ID: uuid.New(), Name: name}
				err = tx.Create(&tag).Error
			}
			if err != nil {
				return err
			}

			// Re-linking an already linked tag is a no-op.
			var link entities.RecipeTag
			err = tx.Where("recipe_id = ? AND tag_id = ?", recipe.ID, tag.ID).First(&link).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if err := tx.Create(&entities.RecipeTag{RecipeID: recipe.ID, TagID: tag.ID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Save(recipe).Error
}

// DeleteRecipe cascades to ingredients, steps, tag links and likes; shared
// Tag rows are left alone.
func (r *recipeRepository) DeleteRecipe(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.Ingredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.Step{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.RecipeTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.Like{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.Recipe{}).Error
	})
}

// ToggleLike deletes the row when it exists and inserts it when it does
// not, inside one transaction; the unique index on (user_id, recipe_id)
// keeps concurrent toggles from ever producing duplicates.
func (r *recipeRepository) ToggleLike(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	liked := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&entities.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		liked = true
		return tx.Create(&entities.Like{
			ID:        uuid.New(),
			UserID:    userID,
			RecipeID:  recipeID,
			CreatedAt: time.Now(),
		}).Error
	})
	return liked, err
}
