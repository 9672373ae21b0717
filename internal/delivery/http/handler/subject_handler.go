package handler

import (
	"time"

	"gigmatch/internal/delivery/http/dto"
	"gigmatch/internal/delivery/http/middleware"
	"gigmatch/internal/domain/subject"
	"gigmatch/internal/pkg/response"
	"gigmatch/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// SubjectHandler serves both /jobs and /offers; the two groups differ only in
// the subject kind bound at registration time.
type SubjectHandler struct {
	uc   usecase.SubjectUsecase
	kind subject.Kind
}

func NewJobHandler(uc usecase.SubjectUsecase) *SubjectHandler {
	return &SubjectHandler{uc: uc, kind: subject.KindJob}
}

func NewOfferHandler(uc usecase.SubjectUsecase) *SubjectHandler {
	return &SubjectHandler{uc: uc, kind: subject.KindOffer}
}

type createSubjectRequest struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	CapacityMode   string     `json:"capacity_mode"`
	Slots          int        `json:"slots"`
	AvailableUntil *time.Time `json:"available_until"`
}

func (h *SubjectHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/mine", h.ListMine)
	r.Get("/:id", h.Get)
	r.Delete("/:id", h.Delete)
}

func (h *SubjectHandler) Create(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	var req createSubjectRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	}

	in := usecase.CreateSubjectInput{
		Title:          req.Title,
		Description:    req.Description,
		CapacityMode:   subject.CapacityMode(req.CapacityMode),
		Slots:          req.Slots,
		AvailableUntil: req.AvailableUntil,
	}

	var created subject.Subject
	if h.kind == subject.KindJob {
		created, err = h.uc.CreateJob(c.Context(), actor, in)
	} else {
		created, err = h.uc.CreateOffer(c.Context(), actor, in)
	}
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, dto.FromSubject(created))
}

func (h *SubjectHandler) List(c fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	}
	offset, err := parseQueryInt(c, "offset", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	}

	items, err := h.uc.ListOpen(c.Context(), h.kind, limit, offset)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, dto.FromSubjects(items))
}

func (h *SubjectHandler) ListMine(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListOwned(c.Context(), actor)
	if err != nil {
		return mapUsecaseError(err)
	}

	filtered := make([]subject.Subject, 0, len(items))
	for _, s := range items {
		if s.Kind == h.kind {
			filtered = append(filtered, s)
		}
	}
	return response.Success(c, fiber.StatusOK, dto.FromSubjects(filtered))
}

func (h *SubjectHandler) Get(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	subj, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	if subj.Kind != h.kind {
		return middleware.NewAppError(fiber.StatusNotFound, "subject not found", nil)
	}
	return response.Success(c, fiber.StatusOK, dto.FromSubject(subj))
}

func (h *SubjectHandler) Delete(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), actor, id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, nil)
}
