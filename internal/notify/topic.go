package notify

import "github.com/google/uuid"

// Topic names are derived deterministically from entity keys so any
// participant can compute the channel it must subscribe to without a lookup.
// The chat scheme is directional: each user subscribes to its own inbound
// topic and publishes to the counterpart's inbound topic plus the room topic.

func ChatMessagesTopic(senderID, recipientID uuid.UUID) string {
	return "chat-messages/" + senderID.String() + "-" + recipientID.String()
}

func ChatRoomTopic(recipientID uuid.UUID) string {
	return "chat-rooms/" + recipientID.String()
}

func SubjectTopic(subjectID uuid.UUID) string {
	return "subjects/" + subjectID.String()
}
