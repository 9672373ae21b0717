package notify

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
)

// Publisher is the pub/sub transport boundary. Topics are plain strings,
// payloads are opaque to subscribers.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload []byte) error
}

// Bridge fans lifecycle and chat signals out to their topics. Every publish
// is fire-and-forget: a transport failure is logged and swallowed, it never
// converts a committed state mutation into a request error. Callers must
// emit only after the storage transaction has committed.
type Bridge struct {
	pub    Publisher
	logger *log.Logger
	now    func() time.Time
}

func NewBridge(pub Publisher, logger *log.Logger) *Bridge {
	return &Bridge{pub: pub, logger: logger, now: time.Now}
}

func (b *Bridge) SubjectChanged(ctx context.Context, subjectID uuid.UUID, eventType string) {
	b.emit(ctx, SubjectTopic(subjectID), eventType)
}

// ChatMessage signals both the directional message topic and the recipient's
// room topic, in that order. The sender's own inbound topic is never touched.
func (b *Bridge) ChatMessage(ctx context.Context, senderID, recipientID uuid.UUID) {
	b.emit(ctx, ChatMessagesTopic(senderID, recipientID), EventChatMessage)
	b.emit(ctx, ChatRoomTopic(recipientID), EventChatMessage)
}

func (b *Bridge) emit(ctx context.Context, topic string, eventType string) {
	if b == nil || b.pub == nil {
		return
	}

	payload, err := json.Marshal(Event{Type: eventType, At: b.now().UTC()})
	if err != nil {
		if b.logger != nil {
			b.logger.Printf("notify marshal error | topic=%s type=%s err=%v", topic, eventType, err)
		}
		return
	}

	if err := b.pub.Publish(ctx, topic, payload); err != nil {
		if b.logger != nil {
			b.logger.Printf("notify publish dropped | topic=%s type=%s err=%v", topic, eventType, err)
		}
	}
}
