package dto

import (
	"time"

	"gigmatch/internal/domain/application"

	"github.com/google/uuid"
)

type LocationPayload struct {
	Label string  `json:"label"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
}

type ApplicationResponse struct {
	ID          uuid.UUID       `json:"id"`
	SubjectID   uuid.UUID       `json:"subject_id"`
	ApplicantID uuid.UUID       `json:"applicant_id"`
	Status      string          `json:"status"`
	Note        string          `json:"note,omitempty"`
	Pickup      LocationPayload `json:"pickup"`
	Dropoff     LocationPayload `json:"dropoff"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func FromApplication(a application.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:          a.ID,
		SubjectID:   a.SubjectID,
		ApplicantID: a.ApplicantID,
		Status:      string(a.Status),
		Note:        a.Note,
		Pickup:      LocationPayload{Label: a.Pickup.Label, Lat: a.Pickup.Lat, Lng: a.Pickup.Lng},
		Dropoff:     LocationPayload{Label: a.Dropoff.Label, Lat: a.Dropoff.Lat, Lng: a.Dropoff.Lng},
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func FromApplications(items []application.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(items))
	for _, a := range items {
		out = append(out, FromApplication(a))
	}
	return out
}
