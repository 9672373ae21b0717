package handler

import (
	"gigmatch/internal/delivery/http/dto"
	"gigmatch/internal/delivery/http/middleware"
	"gigmatch/internal/domain/application"
	"gigmatch/internal/pkg/response"
	"gigmatch/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ApplicationHandler struct {
	uc usecase.LifecycleUsecase
}

func NewApplicationHandler(uc usecase.LifecycleUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

type applyRequest struct {
	Note    string              `json:"note"`
	Pickup  dto.LocationPayload `json:"pickup"`
	Dropoff dto.LocationPayload `json:"dropoff"`
}

type advanceRequest struct {
	Status string `json:"status"`
}

// RegisterSubjectRoutes mounts the applicant sub-resources under a subject
// group (/jobs or /offers).
func (h *ApplicationHandler) RegisterSubjectRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/:id/applicants", h.Apply)
	r.Get("/:id/applicants", h.ListApplicants)
	r.Post("/:id/applicants/:applicationId/approval", h.Approve)
}

// RegisterRoutes mounts the applicant-centric routes.
func (h *ApplicationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/mine", h.ListMine)
	r.Get("/:id", h.Get)
	r.Patch("/:id", h.Advance)
	r.Delete("/:id", h.Withdraw)
}

func (h *ApplicationHandler) Apply(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}
	subjectID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req applyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	}

	created, err := h.uc.Apply(c.Context(), actor, subjectID, usecase.ApplyInput{
		Note:    req.Note,
		Pickup:  application.Location{Label: req.Pickup.Label, Lat: req.Pickup.Lat, Lng: req.Pickup.Lng},
		Dropoff: application.Location{Label: req.Dropoff.Label, Lat: req.Dropoff.Lat, Lng: req.Dropoff.Lng},
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, dto.FromApplication(created))
}

func (h *ApplicationHandler) ListApplicants(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}
	subjectID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	items, err := h.uc.ListApplicants(c.Context(), actor, subjectID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, dto.FromApplications(items))
}

func (h *ApplicationHandler) Approve(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}
	subjectID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	applicationID, err := uuidParam(c, "applicationId")
	if err != nil {
		return err
	}

	accepted, err := h.uc.Approve(c.Context(), actor, subjectID, applicationID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, dto.FromApplication(accepted))
}

func (h *ApplicationHandler) ListMine(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListMine(c.Context(), actor)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, dto.FromApplications(items))
}

func (h *ApplicationHandler) Get(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	app, err := h.uc.GetApplication(c.Context(), actor, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, dto.FromApplication(app))
}

func (h *ApplicationHandler) Advance(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req advanceRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	}

	updated, err := h.uc.Advance(c.Context(), actor, id, application.Status(req.Status))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, dto.FromApplication(updated))
}

func (h *ApplicationHandler) Withdraw(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Withdraw(c.Context(), actor, id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, nil)
}
