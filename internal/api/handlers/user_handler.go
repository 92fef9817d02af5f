package handlers

import (
	"CookShare-Backend/domain"
	"CookShare-Backend/internal/api/presenters"
	"CookShare-Backend/internal/utils/storage"
	"CookShare-Backend/pkg/user"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	UserHandler interface {
		Register(c *fiber.Ctx) error
		Login(c *fiber.Ctx) error
		Me(c *fiber.Ctx) error
		UpdateProfile(c *fiber.Ctx) error
	}

	userHandler struct {
		userService user.UserService
		validator   *validator.Validate
	}
)

func NewUserHandler(userService user.UserService, validator *validator.Validate) UserHandler {
	return &userHandler{
		userService: userService,
		validator:   validator,
	}
}

func (h *userHandler) Register(c *fiber.Ctx) error {
	req := new(domain.RegisterRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.ErrRegisterFieldsRequired)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, err)
	}

	res, err := h.userService.Register(c.Context(), *req)
	if err != nil {
		if errors.Is(err, domain.ErrCredentialTaken) {
			return presenters.ErrorResponse(c, fiber.StatusConflict, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, err)
	}

	return presenters.SuccessResponse(c, fiber.StatusCreated, res)
}

func (h *userHandler) Login(c *fiber.Ctx) error {
	req := new(domain.LoginRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.ErrLoginFieldsRequired)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, err)
	}

	res, err := h.userService.Login(c.Context(), *req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, err)
	}

	return presenters.SuccessResponse(c, fiber.StatusOK, res)
}

func (h *userHandler) Me(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.userService.Me(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, err)
	}

	return presenters.SuccessResponse(c, fiber.StatusOK, res)
}

func (h *userHandler) UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.UpdateProfileRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, err)
	}

	// Avatar is optional multipart; body-only updates are fine too.
	avatar, err := c.FormFile("avatar")
	if err != nil {
		avatar = nil
	}

	res, err := h.userService.UpdateProfile(c.Context(), userID, *req, avatar)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUsernameTaken):
			return presenters.ErrorResponse(c, fiber.StatusConflict, err)
		case errors.Is(err, domain.ErrUserNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, err)
		case errors.Is(err, storage.ErrFileTooLarge), errors.Is(err, storage.ErrFileTypeNotAllowed):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, err)
	}

	return presenters.SuccessResponse(c, fiber.StatusOK, res)
}
