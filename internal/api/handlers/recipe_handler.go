package handlers

import (
	"CookShare-Backend/domain"
	"CookShare-Backend/internal/api/presenters"
	"CookShare-Backend/pkg/recipe"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RecipeHandler interface {
		GetRecipes(c *fiber.Ctx) error
		GetRecipeDetail(c *fiber.Ctx) error
		CreateRecipe(c *fiber.Ctx) error
		UpdateRecipe(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
		ToggleLike(c *fiber.Ctx) error
		UploadImage(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
		validator     *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		validator:     validator,
	}
}

func (h *recipeHandler) GetRecipes(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", "12"))
	if err != nil || limit < 1 {
		limit = 12
	}

	filter := domain.RecipeFilter{
		Query:      c.Query("q", ""),
		Difficulty: c.Query("difficulty", ""),
		Tag:        c.Query("tag", ""),
	}

	res, err := h.recipeService.ListRecipes(c.Context(), filter, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, err)
	}

	return presenters.SuccessResponse(c, fiber.StatusOK, res)
}

func (h *recipeHandler) GetRecipeDetail(c *fiber.Ctx) error {
	recipeID := c.Params("id")

	res, err := h.recipeService.GetRecipeDetail(c.Context(), recipeID)
	if err != nil {
		if errors.Is(err, domain.ErrRecipeNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, err)
	}

	return presenters.SuccessResponse(c, fiber.StatusOK, res)
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateRecipeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, errors.New(domain.MessageFailedBodyRequest))
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, err)
	}

	id, err := h.recipeService.CreateRecipe(c.Context(), userID, *req)
	if err != nil {
		if errors.Is(err, domain.ErrTitleRequired) {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, err)
	}

	return presenters.SuccessResponse(c, fiber.StatusCreated, fiber.Map{"id": id})
}

func (h *recipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")
	req := new(domain.UpdateRecipeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, errors.New(domain.MessageFailedBodyRequest))
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, err)
	}

	if err := h.recipeService.UpdateRecipe(c.Context(), userID, recipeID, *req); err != nil {
		switch {
		case errors.Is(err, domain.ErrRecipeNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, err)
		case errors.Is(err, domain.ErrNotRecipeOwner):
			return presenters.ErrorResponse(c, fiber.StatusForbidden, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, err)
	}

	return presenters.SuccessResponse(c, fiber.StatusOK, fiber.Map{"success": true})
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	if err := h.recipeService.DeleteRecipe(c.Context(), userID, recipeID); err != nil {
		switch {
		case errors.Is(err, domain.ErrRecipeNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, err)
		case errors.Is(err, domain.ErrNotRecipeOwner):
			return presenters.ErrorResponse(c, fiber.StatusForbidden, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, err)
	}

	return presenters.SuccessResponse(c, fiber.StatusOK, fiber.Map{"success": true})
}

func (h *recipeHandler) ToggleLike(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	res, err := h.recipeService.ToggleLike(c.Context(), userID, recipeID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecipeNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, err)
		case errors.Is(err, domain.ErrParseUUID):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, err)
	}

	return presenters.SuccessResponse(c, fiber.StatusOK, res)
}

func (h *recipeHandler) UploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.ErrImageRequired)
	}

	res, err := h.recipeService.UploadImage(file)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrImageTooLarge), errors.Is(err, domain.ErrImageType):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, err)
	}

	return presenters.SuccessResponse(c, fiber.StatusOK, res)
}
