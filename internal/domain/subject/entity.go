package subject

import (
	"time"

	"github.com/google/uuid"
)

// Kind tells which side of the marketplace created the subject: a Job is
// posted by a customer and worked by freelancers, an Offer is the inverse.
type Kind string

const (
	KindJob   Kind = "job"
	KindOffer Kind = "offer"
)

// CapacityMode is fixed at creation and never changes afterwards.
type CapacityMode string

const (
	CapacitySingle CapacityMode = "single"
	CapacityMulti  CapacityMode = "multi"
)

type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusClosed     Status = "closed"
)

type Subject struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	Kind           Kind
	Title          string
	Description    string
	CapacityMode   CapacityMode
	SlotsTotal     int
	SlotsRemaining int
	Status         Status
	AvailableUntil *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Expired reports whether the availability window has elapsed. Expiry is a
// passive timeout: it is evaluated at the next apply/approve attempt, not by
// a background sweeper, and it overrides whatever status the row carries.
func (s Subject) Expired(now time.Time) bool {
	if s.AvailableUntil == nil {
		return false
	}
	return now.After(*s.AvailableUntil)
}

// ApplicantRole returns the role allowed to apply against this subject:
// freelancers apply to jobs, customers apply to offers.
func (s Subject) ApplicantRole() string {
	if s.Kind == KindJob {
		return "freelancer"
	}
	return "customer"
}

func (k Kind) Valid() bool {
	return k == KindJob || k == KindOffer
}

func (m CapacityMode) Valid() bool {
	return m == CapacitySingle || m == CapacityMulti
}
