package handler

import (
	"gigmatch/internal/delivery/http/dto"
	"gigmatch/internal/delivery/http/middleware"
	"gigmatch/internal/pkg/response"
	"gigmatch/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ChatHandler struct {
	uc usecase.ChatUsecase
}

func NewChatHandler(uc usecase.ChatUsecase) *ChatHandler {
	return &ChatHandler{uc: uc}
}

type sendMessageRequest struct {
	Body string `json:"body"`
}

func (h *ChatHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/:peerId", h.List)
	r.Post("/:peerId", h.Send)
	r.Delete("/:peerId", h.DeleteConversation)
}

func (h *ChatHandler) Send(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}
	peerID, err := uuidParam(c, "peerId")
	if err != nil {
		return err
	}

	var req sendMessageRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	}

	msg, err := h.uc.Send(c.Context(), actor, peerID, req.Body)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, dto.FromMessage(msg))
}

func (h *ChatHandler) List(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}
	peerID, err := uuidParam(c, "peerId")
	if err != nil {
		return err
	}

	items, err := h.uc.List(c.Context(), actor, peerID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, dto.FromMessages(items))
}

func (h *ChatHandler) DeleteConversation(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}
	peerID, err := uuidParam(c, "peerId")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteConversation(c.Context(), actor, peerID); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, nil)
}
