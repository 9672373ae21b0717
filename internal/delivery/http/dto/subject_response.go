package dto

import (
	"time"

	"gigmatch/internal/domain/subject"

	"github.com/google/uuid"
)

type SubjectResponse struct {
	ID             uuid.UUID  `json:"id"`
	OwnerID        uuid.UUID  `json:"owner_id"`
	Kind           string     `json:"kind"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	CapacityMode   string     `json:"capacity_mode"`
	SlotsTotal     int        `json:"slots_total"`
	SlotsRemaining int        `json:"slots_remaining"`
	Status         string     `json:"status"`
	AvailableUntil *time.Time `json:"available_until,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func FromSubject(s subject.Subject) SubjectResponse {
	return SubjectResponse{
		ID:             s.ID,
		OwnerID:        s.OwnerID,
		Kind:           string(s.Kind),
		Title:          s.Title,
		Description:    s.Description,
		CapacityMode:   string(s.CapacityMode),
		SlotsTotal:     s.SlotsTotal,
		SlotsRemaining: s.SlotsRemaining,
		Status:         string(s.Status),
		AvailableUntil: s.AvailableUntil,
		CreatedAt:      s.CreatedAt,
	}
}

func FromSubjects(items []subject.Subject) []SubjectResponse {
	out := make([]SubjectResponse, 0, len(items))
	for _, s := range items {
		out = append(out, FromSubject(s))
	}
	return out
}
