package recipe

import (
	"CookShare-Backend/domain"
	"CookShare-Backend/entities"
	"CookShare-Backend/internal/utils/storage"
	"context"
	"errors"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		ListRecipes(ctx context.Context, filter domain.RecipeFilter, page, limit int) (domain.RecipeListResponse, error)
		GetRecipeDetail(ctx context.Context, recipeID string) (domain.RecipeDetail, error)
		CreateRecipe(ctx context.Context, userID string, req domain.CreateRecipeRequest) (string, error)
		UpdateRecipe(ctx context.Context, userID, recipeID string, req domain.UpdateRecipeRequest) error
		DeleteRecipe(ctx context.Context, userID, recipeID string) error
		ToggleLike(ctx context.Context, userID, recipeID string) (domain.ToggleLikeResponse, error)
		UploadImage(file *multipart.FileHeader) (domain.UploadImageResponse, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		storage          storage.Storage
	}
)

func NewRecipeService(recipeRepository RecipeRepository, storage storage.Storage) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		storage:          storage,
	}
}

func (s *recipeService) ListRecipes(ctx context.Context, filter domain.RecipeFilter, page, limit int) (domain.RecipeListResponse, error) {
	rows, count, err := s.recipeRepository.ListRecipes(ctx, filter, page, limit)
	if err != nil {
		return domain.RecipeListResponse{}, err
	}

	recipes := make([]domain.RecipeSummary, 0, len(rows))
	for i := range rows {
		recipes = append(recipes, toRecipeSummary(&rows[i]))
	}

	return domain.RecipeListResponse{
		Recipes: recipes,
		Total:   count,
		Page:    page,
		Limit:   limit,
	}, nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID string) (domain.RecipeDetail, error) {
	row, err := s.recipeRepository.GetRecipeRow(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeDetail{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeDetail{}, err
	}

	// Every detail fetch counts as a view, no dedup by viewer.
	if err := s.recipeRepository.IncrementViewCount(ctx, recipeID); err != nil {
		return domain.RecipeDetail{}, err
	}
	row.ViewCount++

	ingredients, err := s.recipeRepository.GetIngredients(ctx, recipeID)
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	steps, err := s.recipeRepository.GetSteps(ctx, recipeID)
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	tags, err := s.recipeRepository.GetTagNames(ctx, recipeID)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	detail := domain.RecipeDetail{
		RecipeSummary: toRecipeSummary(row),
		Ingredients:   make([]domain.IngredientResponse, 0, len(ingredients)),
		Steps:         make([]domain.StepResponse, 0, len(steps)),
		Tags:          tags,
	}
	if detail.Tags == nil {
		detail.Tags = []string{}
	}
	for _, ing := range ingredients {
		detail.Ingredients = append(detail.Ingredients, domain.IngredientResponse{
			ID:        ing.ID.String(),
			Name:      ing.Name,
			Amount:    ing.Amount,
			Unit:      ing.Unit,
			SortOrder: ing.SortOrder,
		})
	}
	for _, step := range steps {
		detail.Steps = append(detail.Steps, domain.StepResponse{
			ID:          step.ID.String(),
			StepNumber:  step.StepNumber,
			Instruction: step.Instruction,
			ImageURL:    step.ImageURL,
		})
	}
	return detail, nil
}

func (s *recipeService) CreateRecipe(ctx context.Context, userID string, req domain.CreateRecipeRequest) (string, error) {
	authorID, err := uuid.Parse(userID)
	if err != nil {
		return "", domain.ErrParseUUID
	}
	if req.Title == "" {
		return "", domain.ErrTitleRequired
	}

	now := time.Now()
	rec := entities.Recipe{
		ID:           uuid.New(),
		Title:        req.Title,
		Description:  req.Description,
		ThumbnailURL: req.ThumbnailURL,
		CookTime:     req.CookTime,
		Servings:     req.Servings,
		Difficulty:   req.Difficulty,
		AuthorID:     authorID,
		Timestamp: entities.Timestamp{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	ingredients := make([]entities.Ingredient, 0, len(req.Ingredients))
	for i, ing := range req.Ingredients {
		ingredients = append(ingredients, entities.Ingredient{
			ID:        uuid.New(),
			RecipeID:  rec.ID,
			Name:      ing.Name,
			Amount:    ing.Amount,
			Unit:      ing.Unit,
			SortOrder: i,
		})
	}

	steps := make([]entities.Step, 0, len(req.Steps))
	for i, step := range req.Steps {
		steps = append(steps, entities.Step{
			ID:          uuid.New(),
			RecipeID:    rec.ID,
			StepNumber:  i + 1,
			Instruction: step.Instruction,
			ImageURL:    step.ImageURL,
		})
	}

	if err := s.recipeRepository.CreateRecipe(ctx, &rec, ingredients, steps, req.Tags); err != nil {
		return "", err
	}
	return rec.ID.String(), nil
}

func (s *recipeService) UpdateRecipe(ctx context.Context, userID, recipeID string, req domain.UpdateRecipeRequest) error {
	rec, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}
	if rec.AuthorID.String() != userID {
		return domain.ErrNotRecipeOwner
	}

	// Absent fields keep their stored values.
	if req.Title != nil {
		rec.Title = *req.Title
	}
	if req.Description != nil {
		rec.Description = req.Description
	}
	if req.ThumbnailURL != nil {
		rec.ThumbnailURL = req.ThumbnailURL
	}
	if req.CookTime != nil {
		rec.CookTime = req.CookTime
	}
	if req.Servings != nil {
		rec.Servings = req.Servings
	}
	if req.Difficulty != nil {
		rec.Difficulty = req.Difficulty
	}
	rec.UpdatedAt = time.Now()

	return s.recipeRepository.UpdateRecipe(ctx, rec)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, userID, recipeID string) error {
	rec, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}
	if rec.AuthorID.String() != userID {
		return domain.ErrNotRecipeOwner
	}

	return s.recipeRepository.DeleteRecipe(ctx, recipeID)
}

func (s *recipeService) ToggleLike(ctx context.Context, userID, recipeID string) (domain.ToggleLikeResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ToggleLikeResponse{}, domain.ErrParseUUID
	}
	recipeUUID, err := uuid.Parse(recipeID)
	if err != nil {
		return domain.ToggleLikeResponse{}, domain.ErrParseUUID
	}

	if _, err := s.recipeRepository.GetRecipeByID(ctx, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ToggleLikeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.ToggleLikeResponse{}, err
	}

	liked, err := s.recipeRepository.ToggleLike(ctx, userUUID, recipeUUID)
	if err != nil {
		return domain.ToggleLikeResponse{}, err
	}
	return domain.ToggleLikeResponse{Liked: liked}, nil
}

func (s *recipeService) UploadImage(file *multipart.FileHeader) (domain.UploadImageResponse, error) {
	if file == nil {
		return domain.UploadImageResponse{}, domain.ErrImageRequired
	}

	result, err := s.storage.UploadFile(file, "recipes", storage.AllowImage...)
	if err != nil {
		if errors.Is(err, storage.ErrFileTooLarge) {
			return domain.UploadImageResponse{}, domain.ErrImageTooLarge
		}
		if errors.Is(err, storage.ErrFileTypeNotAllowed) {
			return domain.UploadImageResponse{}, domain.ErrImageType
		}
		return domain.UploadImageResponse{}, err
	}
	return domain.UploadImageResponse{URL: result.URL, Key: result.Key}, nil
}

func toRecipeSummary(row *RecipeRow) domain.RecipeSummary {
	return domain.RecipeSummary{
		ID:           row.ID.String(),
		Title:        row.Title,
		Description:  row.Description,
		ThumbnailURL: row.ThumbnailURL,
		CookTime:     row.CookTime,
		Servings:     row.Servings,
		Difficulty:   row.Difficulty,
		AuthorID:     row.AuthorID.String(),
		AuthorName:   row.AuthorName,
		AuthorAvatar: row.AuthorAvatar,
		ViewCount:    row.ViewCount,
		LikeCount:    row.LikeCount,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
