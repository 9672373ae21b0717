package handler

import (
	"errors"
	"strconv"

	"gigmatch/internal/delivery/http/middleware"
	"gigmatch/internal/domain/user"
	"gigmatch/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

func actorFromCtx(c fiber.Ctx) (usecase.Actor, error) {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return usecase.Actor{}, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}
	role, ok := c.Locals(middleware.CtxRoleKey).(user.Role)
	if !ok {
		return usecase.Actor{}, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}
	return usecase.Actor{ID: userID, Role: role}, nil
}

func parseQueryInt(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(s)
}

func uuidParam(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid id", err)
	}
	return id, nil
}

// mapUsecaseError translates usecase sentinels into the HTTP taxonomy. The
// conflict messages are the sentinel texts themselves so callers can tell
// "already applied", "all slots are filled" and "expired" apart.
func mapUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", err)
	case errors.Is(err, usecase.ErrSubjectNotFound),
		errors.Is(err, usecase.ErrApplicationNotFound),
		errors.Is(err, usecase.ErrRecipientNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, err.Error(), err)
	case errors.Is(err, usecase.ErrAlreadyApplied),
		errors.Is(err, usecase.ErrSlotsFilled),
		errors.Is(err, usecase.ErrSubjectExpired),
		errors.Is(err, usecase.ErrSubjectClosed),
		errors.Is(err, usecase.ErrIllegalTransition),
		errors.Is(err, usecase.ErrAlreadyResolved):
		return middleware.NewAppError(fiber.StatusConflict, err.Error(), err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, "Internal server error", err)
	}
}
