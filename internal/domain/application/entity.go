package application

import (
	"time"

	"github.com/google/uuid"
)

// Status is the forward-only application state machine. Withdrawal is not a
// status: withdrawn applications are deleted.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusOnTheWay Status = "on_the_way"
	StatusDone     Status = "done"
)

// Next returns the only legal successor of a status. ok is false for the
// terminal state. Nothing skips a step and nothing moves backward.
func (s Status) Next() (Status, bool) {
	switch s {
	case StatusPending:
		return StatusAccepted, true
	case StatusAccepted:
		return StatusOnTheWay, true
	case StatusOnTheWay:
		return StatusDone, true
	default:
		return "", false
	}
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusOnTheWay, StatusDone:
		return true
	default:
		return false
	}
}

type Location struct {
	Label string
	Lat   float64
	Lng   float64
}

type Application struct {
	ID          uuid.UUID
	SubjectID   uuid.UUID
	ApplicantID uuid.UUID
	Status      Status
	Note        string
	Pickup      Location
	Dropoff     Location
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
