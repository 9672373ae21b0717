package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"gigmatch/internal/domain/subject"
	"gigmatch/internal/domain/user"
	"gigmatch/internal/repository"

	"github.com/google/uuid"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
	maxMultiSlots    = 50
)

type CreateSubjectInput struct {
	Title          string
	Description    string
	CapacityMode   subject.CapacityMode
	Slots          int
	AvailableUntil *time.Time
}

type SubjectUsecase interface {
	CreateJob(ctx context.Context, actor Actor, in CreateSubjectInput) (subject.Subject, error)
	CreateOffer(ctx context.Context, actor Actor, in CreateSubjectInput) (subject.Subject, error)
	Get(ctx context.Context, id uuid.UUID) (subject.Subject, error)
	ListOpen(ctx context.Context, kind subject.Kind, limit, offset int) ([]subject.Subject, error)
	ListOwned(ctx context.Context, actor Actor) ([]subject.Subject, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
}

type Subjects struct {
	repo   repository.SubjectRepository
	logger *log.Logger
}

func NewSubjectUsecase(repo repository.SubjectRepository, logger *log.Logger) *Subjects {
	return &Subjects{repo: repo, logger: logger}
}

// CreateJob opens a customer-owned work request. Capacity mode is fixed here
// and never mutated afterwards.
func (s *Subjects) CreateJob(ctx context.Context, actor Actor, in CreateSubjectInput) (subject.Subject, error) {
	if actor.Role != user.RoleCustomer {
		return subject.Subject{}, ErrForbidden
	}
	return s.create(ctx, actor, subject.KindJob, in)
}

// CreateOffer opens a freelancer-owned availability window; offers carry an
// optional available_until deadline.
func (s *Subjects) CreateOffer(ctx context.Context, actor Actor, in CreateSubjectInput) (subject.Subject, error) {
	if actor.Role != user.RoleFreelancer {
		return subject.Subject{}, ErrForbidden
	}
	if in.AvailableUntil != nil && !in.AvailableUntil.After(time.Now()) {
		return subject.Subject{}, ErrInvalidInput
	}
	return s.create(ctx, actor, subject.KindOffer, in)
}

func (s *Subjects) create(ctx context.Context, actor Actor, kind subject.Kind, in CreateSubjectInput) (subject.Subject, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return subject.Subject{}, ErrInvalidInput
	}
	if !in.CapacityMode.Valid() {
		return subject.Subject{}, ErrInvalidInput
	}

	slots := in.Slots
	switch in.CapacityMode {
	case subject.CapacitySingle:
		slots = 1
	case subject.CapacityMulti:
		if slots < 2 || slots > maxMultiSlots {
			return subject.Subject{}, ErrInvalidInput
		}
	}

	created, err := s.repo.Create(ctx, subject.Subject{
		ID:             uuid.New(),
		OwnerID:        actor.ID,
		Kind:           kind,
		Title:          title,
		Description:    strings.TrimSpace(in.Description),
		CapacityMode:   in.CapacityMode,
		SlotsTotal:     slots,
		Status:         subject.StatusOpen,
		AvailableUntil: in.AvailableUntil,
	})
	if err != nil {
		return subject.Subject{}, s.internal("create subject", err)
	}
	return created, nil
}

func (s *Subjects) Get(ctx context.Context, id uuid.UUID) (subject.Subject, error) {
	subj, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSubjectNotFound) {
			return subject.Subject{}, ErrSubjectNotFound
		}
		return subject.Subject{}, s.internal("get subject", err)
	}
	return subj, nil
}

func (s *Subjects) ListOpen(ctx context.Context, kind subject.Kind, limit, offset int) ([]subject.Subject, error) {
	if !kind.Valid() || limit < 0 || offset < 0 {
		return nil, ErrInvalidInput
	}
	if limit == 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	items, err := s.repo.ListOpen(ctx, kind, limit, offset)
	if err != nil {
		return nil, s.internal("list open subjects", err)
	}
	return items, nil
}

func (s *Subjects) ListOwned(ctx context.Context, actor Actor) ([]subject.Subject, error) {
	items, err := s.repo.ListByOwner(ctx, actor.ID)
	if err != nil {
		return nil, s.internal("list owned subjects", err)
	}
	return items, nil
}

// Delete removes the subject and all its applications via cascade.
func (s *Subjects) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrInvalidInput
	}
	err := s.repo.Delete(ctx, id, actor.ID)
	if err != nil {
		if errors.Is(err, repository.ErrSubjectNotFound) {
			return ErrSubjectNotFound
		}
		return s.internal("delete subject", err)
	}
	return nil
}

func (s *Subjects) internal(op string, err error) error {
	if s.logger != nil {
		s.logger.Printf("subject error | op=%q err=%v", op, err)
	}
	return ErrInternal
}
