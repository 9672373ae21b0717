package handler

import (
	"errors"

	"gigmatch/internal/delivery/http/dto"
	"gigmatch/internal/delivery/http/middleware"
	"gigmatch/internal/domain/user"
	"gigmatch/internal/pkg/response"
	useruc "gigmatch/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type UserHandler struct {
	svc *useruc.Service
}

func NewUserHandler(svc *useruc.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

type updateMeRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/me", h.GetMe)
	r.Put("/me", h.UpdateMe)
}

func (h *UserHandler) GetMe(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	usr, err := h.svc.GetMe(c.Context(), userID)
	if err != nil {
		return mapUserError(err)
	}
	return response.Success(c, fiber.StatusOK, dto.FromUser(usr))
}

func (h *UserHandler) UpdateMe(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	var req updateMeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	}
	if req.Name == nil && req.Password == nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil)
	}

	usr, err := h.svc.UpdateMe(c.Context(), userID, useruc.UpdateMeInput{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		return mapUserError(err)
	}
	return response.Success(c, fiber.StatusOK, dto.FromUser(usr))
}

func mapUserError(err error) error {
	switch {
	case errors.Is(err, useruc.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	case errors.Is(err, user.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "user not found", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, "Internal server error", err)
	}
}
