package notify

import (
	"testing"

	"github.com/google/uuid"
)

// The topic scheme is an external contract: clients compute these strings on
// their own, so the format must stay byte-exact.
func TestTopicFormats(t *testing.T) {
	sender := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	recipient := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	subjectID := uuid.MustParse("33333333-3333-3333-3333-333333333333")

	if got := ChatMessagesTopic(sender, recipient); got != "chat-messages/11111111-1111-1111-1111-111111111111-22222222-2222-2222-2222-222222222222" {
		t.Fatalf("chat messages topic: %s", got)
	}
	if got := ChatRoomTopic(recipient); got != "chat-rooms/22222222-2222-2222-2222-222222222222" {
		t.Fatalf("chat room topic: %s", got)
	}
	if got := SubjectTopic(subjectID); got != "subjects/33333333-3333-3333-3333-333333333333" {
		t.Fatalf("subject topic: %s", got)
	}
}

func TestChatMessagesTopic_Directional(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	if ChatMessagesTopic(a, b) == ChatMessagesTopic(b, a) {
		t.Fatalf("directional topics must differ per direction")
	}
}
