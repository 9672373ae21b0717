package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type recordingPublisher struct {
	topics   []string
	payloads [][]byte
	err      error
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, payload []byte) error {
	if p.err != nil {
		return p.err
	}
	p.topics = append(p.topics, topic)
	p.payloads = append(p.payloads, payload)
	return nil
}

func TestBridge_SubjectChanged(t *testing.T) {
	pub := &recordingPublisher{}
	b := NewBridge(pub, nil)
	b.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	subjectID := uuid.New()
	b.SubjectChanged(context.Background(), subjectID, EventApplicationApproved)

	if len(pub.topics) != 1 || pub.topics[0] != SubjectTopic(subjectID) {
		t.Fatalf("unexpected topics: %v", pub.topics)
	}

	var ev Event
	if err := json.Unmarshal(pub.payloads[0], &ev); err != nil {
		t.Fatalf("payload not json: %v", err)
	}
	if ev.Type != EventApplicationApproved {
		t.Fatalf("unexpected event type: %s", ev.Type)
	}
	if !ev.At.Equal(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected event time: %v", ev.At)
	}
}

func TestBridge_ChatMessage_TopicOrder(t *testing.T) {
	pub := &recordingPublisher{}
	b := NewBridge(pub, nil)

	sender := uuid.New()
	recipient := uuid.New()
	b.ChatMessage(context.Background(), sender, recipient)

	want := []string{ChatMessagesTopic(sender, recipient), ChatRoomTopic(recipient)}
	if len(pub.topics) != 2 || pub.topics[0] != want[0] || pub.topics[1] != want[1] {
		t.Fatalf("expected %v, got %v", want, pub.topics)
	}
}

func TestBridge_PublishErrorSwallowed(t *testing.T) {
	b := NewBridge(&recordingPublisher{err: errors.New("broker down")}, nil)

	// Must not panic and must not propagate anything to the caller.
	b.SubjectChanged(context.Background(), uuid.New(), EventApplicationCreated)
	b.ChatMessage(context.Background(), uuid.New(), uuid.New())
}

func TestBridge_NilSafe(t *testing.T) {
	var b *Bridge
	b.SubjectChanged(context.Background(), uuid.New(), EventApplicationCreated)

	empty := NewBridge(nil, nil)
	empty.ChatMessage(context.Background(), uuid.New(), uuid.New())
}
