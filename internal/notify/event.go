package notify

import "time"

// Event is a liveness signal, not a data carrier. Subscribers must re-fetch
// authoritative state through the query path; the payload exists only so a
// human can tell pings apart in logs.
type Event struct {
	Type string    `json:"type"`
	At   time.Time `json:"at"`
}

const (
	EventApplicationCreated   = "application.created"
	EventApplicationApproved  = "application.approved"
	EventApplicationAdvanced  = "application.status_advanced"
	EventApplicationWithdrawn = "application.withdrawn"
	EventChatMessage          = "chat.message"
)
