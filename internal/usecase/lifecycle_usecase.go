package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"gigmatch/internal/domain/application"
	"gigmatch/internal/domain/subject"
	"gigmatch/internal/domain/user"
	"gigmatch/internal/notify"
	"gigmatch/internal/repository"

	"github.com/google/uuid"
)

// Actor is the verified identity a caller presents: an opaque user id plus a
// role claim. Every lifecycle operation checks it before mutating anything.
type Actor struct {
	ID   uuid.UUID
	Role user.Role
}

type ApplyInput struct {
	Note    string
	Pickup  application.Location
	Dropoff application.Location
}

type LifecycleUsecase interface {
	Apply(ctx context.Context, actor Actor, subjectID uuid.UUID, in ApplyInput) (application.Application, error)
	Approve(ctx context.Context, actor Actor, subjectID, applicationID uuid.UUID) (application.Application, error)
	Advance(ctx context.Context, actor Actor, applicationID uuid.UUID, next application.Status) (application.Application, error)
	Withdraw(ctx context.Context, actor Actor, applicationID uuid.UUID) error
	GetApplication(ctx context.Context, actor Actor, applicationID uuid.UUID) (application.Application, error)
	ListApplicants(ctx context.Context, actor Actor, subjectID uuid.UUID) ([]application.Application, error)
	ListMine(ctx context.Context, actor Actor) ([]application.Application, error)
}

// Lifecycle owns the application state machine. Matching correctness lives in
// the repository's atomic conditional operations; this layer decides which
// operation to issue and maps storage outcomes onto the conflict taxonomy.
type Lifecycle struct {
	subjects repository.SubjectRepository
	apps     repository.ApplicationRepository
	bridge   *notify.Bridge
	logger   *log.Logger
	now      func() time.Time
}

func NewLifecycleUsecase(subjects repository.SubjectRepository, apps repository.ApplicationRepository, bridge *notify.Bridge, logger *log.Logger) *Lifecycle {
	return &Lifecycle{
		subjects: subjects,
		apps:     apps,
		bridge:   bridge,
		logger:   logger,
		now:      time.Now,
	}
}

// Apply submits a PENDING application against an open subject. The duplicate
// check is not performed here: the insert relies on the storage layer's
// unique constraint so concurrent submissions lose deterministically.
func (l *Lifecycle) Apply(ctx context.Context, actor Actor, subjectID uuid.UUID, in ApplyInput) (application.Application, error) {
	if subjectID == uuid.Nil {
		return application.Application{}, ErrInvalidInput
	}

	subj, err := l.subjects.GetByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, repository.ErrSubjectNotFound) {
			return application.Application{}, ErrSubjectNotFound
		}
		return application.Application{}, l.internal("apply: load subject", err)
	}

	if subj.OwnerID == actor.ID {
		return application.Application{}, ErrForbidden
	}
	if string(actor.Role) != subj.ApplicantRole() {
		return application.Application{}, ErrForbidden
	}
	if subj.Status == subject.StatusClosed {
		return application.Application{}, ErrSubjectClosed
	}
	// Expiry overrides whatever status the row carries.
	if subj.Expired(l.now()) {
		return application.Application{}, ErrSubjectExpired
	}
	if subj.SlotsRemaining <= 0 {
		return application.Application{}, ErrSlotsFilled
	}

	created, err := l.apps.Create(ctx, application.Application{
		ID:          uuid.New(),
		SubjectID:   subjectID,
		ApplicantID: actor.ID,
		Status:      application.StatusPending,
		Note:        strings.TrimSpace(in.Note),
		Pickup:      in.Pickup,
		Dropoff:     in.Dropoff,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateApplication):
			return application.Application{}, ErrAlreadyApplied
		case errors.Is(err, repository.ErrSubjectNotFound):
			return application.Application{}, ErrSubjectNotFound
		default:
			return application.Application{}, l.internal("apply: create", err)
		}
	}

	l.bridge.SubjectChanged(ctx, subjectID, notify.EventApplicationCreated)
	return created, nil
}

// Approve accepts one PENDING application. The slot decrement, the status
// flip and (for single-slot subjects) the sibling auto-reject are one atomic
// storage step; under concurrent approvals exactly one caller wins and the
// rest observe a conflict.
func (l *Lifecycle) Approve(ctx context.Context, actor Actor, subjectID, applicationID uuid.UUID) (application.Application, error) {
	if subjectID == uuid.Nil || applicationID == uuid.Nil {
		return application.Application{}, ErrInvalidInput
	}

	subj, err := l.subjects.GetByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, repository.ErrSubjectNotFound) {
			return application.Application{}, ErrSubjectNotFound
		}
		return application.Application{}, l.internal("approve: load subject", err)
	}

	if subj.OwnerID != actor.ID {
		return application.Application{}, ErrForbidden
	}
	if subj.Expired(l.now()) {
		return application.Application{}, ErrSubjectExpired
	}

	app, err := l.apps.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, l.internal("approve: load application", err)
	}
	if app.SubjectID != subjectID {
		return application.Application{}, ErrApplicationNotFound
	}

	accepted, err := l.apps.Approve(ctx, subjectID, applicationID, subj.CapacityMode == subject.CapacitySingle)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrCapacityExhausted):
			return application.Application{}, ErrSlotsFilled
		case errors.Is(err, repository.ErrApplicationResolved):
			return application.Application{}, ErrAlreadyResolved
		default:
			return application.Application{}, l.internal("approve: accept", err)
		}
	}

	l.bridge.SubjectChanged(ctx, subjectID, notify.EventApplicationApproved)
	return accepted, nil
}

// Advance moves a matched application strictly one step forward. The
// PENDING -> ACCEPTED edge is owned by Approve because it consumes capacity,
// so it is rejected here.
func (l *Lifecycle) Advance(ctx context.Context, actor Actor, applicationID uuid.UUID, next application.Status) (application.Application, error) {
	if applicationID == uuid.Nil || !next.Valid() {
		return application.Application{}, ErrInvalidInput
	}

	app, err := l.apps.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, l.internal("advance: load application", err)
	}

	subj, err := l.subjects.GetByID(ctx, app.SubjectID)
	if err != nil {
		return application.Application{}, l.internal("advance: load subject", err)
	}
	if actor.ID != app.ApplicantID && actor.ID != subj.OwnerID {
		return application.Application{}, ErrForbidden
	}

	if app.Status == application.StatusPending {
		return application.Application{}, ErrIllegalTransition
	}
	want, ok := app.Status.Next()
	if !ok || next != want {
		return application.Application{}, ErrIllegalTransition
	}

	updated, err := l.apps.AdvanceStatus(ctx, applicationID, app.Status, next)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationResolved) {
			return application.Application{}, ErrAlreadyResolved
		}
		return application.Application{}, l.internal("advance: update", err)
	}

	l.bridge.SubjectChanged(ctx, app.SubjectID, notify.EventApplicationAdvanced)
	return updated, nil
}

// Withdraw deletes the caller's own application. Pending rows just vanish;
// withdrawing an accepted one hands the slot back to the subject.
func (l *Lifecycle) Withdraw(ctx context.Context, actor Actor, applicationID uuid.UUID) error {
	if applicationID == uuid.Nil {
		return ErrInvalidInput
	}

	app, err := l.apps.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return ErrApplicationNotFound
		}
		return l.internal("withdraw: load application", err)
	}

	if app.ApplicantID != actor.ID {
		return ErrForbidden
	}
	if app.Status != application.StatusPending && app.Status != application.StatusAccepted {
		return ErrAlreadyResolved
	}

	if _, err := l.apps.Withdraw(ctx, applicationID); err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return ErrApplicationNotFound
		}
		return l.internal("withdraw: delete", err)
	}

	l.bridge.SubjectChanged(ctx, app.SubjectID, notify.EventApplicationWithdrawn)
	return nil
}

func (l *Lifecycle) GetApplication(ctx context.Context, actor Actor, applicationID uuid.UUID) (application.Application, error) {
	app, err := l.apps.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, l.internal("get application", err)
	}

	if app.ApplicantID == actor.ID {
		return app, nil
	}
	subj, err := l.subjects.GetByID(ctx, app.SubjectID)
	if err != nil {
		return application.Application{}, l.internal("get application: load subject", err)
	}
	if subj.OwnerID != actor.ID {
		return application.Application{}, ErrForbidden
	}
	return app, nil
}

// ListApplicants is owner-only: applicants see their own rows via ListMine.
func (l *Lifecycle) ListApplicants(ctx context.Context, actor Actor, subjectID uuid.UUID) ([]application.Application, error) {
	subj, err := l.subjects.GetByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, repository.ErrSubjectNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, l.internal("list applicants: load subject", err)
	}
	if subj.OwnerID != actor.ID {
		return nil, ErrForbidden
	}

	items, err := l.apps.ListBySubject(ctx, subjectID)
	if err != nil {
		return nil, l.internal("list applicants", err)
	}
	return items, nil
}

func (l *Lifecycle) ListMine(ctx context.Context, actor Actor) ([]application.Application, error) {
	items, err := l.apps.ListByApplicant(ctx, actor.ID)
	if err != nil {
		return nil, l.internal("list mine", err)
	}
	return items, nil
}

func (l *Lifecycle) internal(op string, err error) error {
	if l.logger != nil {
		l.logger.Printf("lifecycle error | op=%q err=%v", op, err)
	}
	return ErrInternal
}
