package ws

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not reached before deadline")
}

func TestHub_SubscribeAndBroadcast(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	client := NewClient(hub, nil, uuid.New())
	hub.Register(client)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	topic := "subjects/" + uuid.NewString()
	hub.Subscribe(client, topic)
	waitFor(t, func() bool { return hub.SubscriberCount(topic) == 1 })

	hub.Broadcast(topic, []byte(`{"type":"application.created"}`))

	select {
	case payload := <-client.send:
		if string(payload) != `{"type":"application.created"}` {
			t.Fatalf("unexpected payload: %s", payload)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no payload delivered")
	}
}

func TestHub_BroadcastSkipsOtherTopics(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	client := NewClient(hub, nil, uuid.New())
	hub.Register(client)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	hub.Subscribe(client, "chat-rooms/"+uuid.NewString())
	hub.Broadcast("subjects/"+uuid.NewString(), []byte("ping"))

	select {
	case payload := <-client.send:
		t.Fatalf("unexpected delivery: %s", payload)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_UnregisterDropsSubscriptions(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	client := NewClient(hub, nil, uuid.New())
	hub.Register(client)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	topic := "chat-rooms/" + uuid.NewString()
	hub.Subscribe(client, topic)
	waitFor(t, func() bool { return hub.SubscriberCount(topic) == 1 })

	hub.Unregister(client)
	waitFor(t, func() bool { return hub.ClientCount() == 0 && hub.SubscriberCount(topic) == 0 })
}

func TestHub_SlowClientEvictionDoesNotBlockRun(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	topic := "subjects/" + uuid.NewString()

	// More stalled clients than the unregister buffer holds, so the eviction
	// path cannot lean on that channel without wedging Run.
	const stalled = 200
	clients := make([]*Client, 0, stalled)
	for i := 0; i < stalled; i++ {
		c := NewClient(hub, nil, uuid.New())
		hub.Register(c)
		clients = append(clients, c)
	}
	waitFor(t, func() bool { return hub.ClientCount() == stalled })

	for _, c := range clients {
		hub.Subscribe(c, topic)
		for len(c.send) < cap(c.send) {
			c.send <- []byte("backlog")
		}
	}
	waitFor(t, func() bool { return hub.SubscriberCount(topic) == stalled })

	hub.Broadcast(topic, []byte("ping"))
	waitFor(t, func() bool { return hub.ClientCount() == 0 && hub.SubscriberCount(topic) == 0 })

	// The loop must still be serving after evicting everyone.
	late := NewClient(hub, nil, uuid.New())
	hub.Register(late)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })
}

func TestAllowedTopic(t *testing.T) {
	me := uuid.New()
	other := uuid.New()

	cases := []struct {
		topic string
		want  bool
	}{
		{"chat-rooms/" + me.String(), true},
		{"chat-rooms/" + other.String(), false},
		{"chat-messages/" + other.String() + "-" + me.String(), true},
		{"chat-messages/" + me.String() + "-" + other.String(), false},
		{"subjects/" + uuid.NewString(), true},
		{"subjects/not-a-uuid", false},
		{"admin/everything", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := allowedTopic(me, tc.topic); got != tc.want {
			t.Fatalf("allowedTopic(%q) = %v, want %v", tc.topic, got, tc.want)
		}
	}
}
