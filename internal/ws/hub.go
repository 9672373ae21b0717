package ws

import (
	"log"
	"sync"
)

type subscription struct {
	client *Client
	topic  string
}

type envelope struct {
	topic   string
	payload []byte
}

// Hub fans liveness pings out to websocket clients by topic. A client only
// receives payloads for topics it has subscribed to; everything else is
// dropped at the hub.
type Hub struct {
	clients map[*Client]map[string]bool
	topics  map[string]map[*Client]bool

	register    chan *Client
	unregister  chan *Client
	subscribe   chan subscription
	unsubscribe chan subscription
	broadcast   chan envelope

	mutex  sync.RWMutex
	logger *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:     make(map[*Client]map[string]bool),
		topics:      make(map[string]map[*Client]bool),
		register:    make(chan *Client, 128),
		unregister:  make(chan *Client, 128),
		subscribe:   make(chan subscription, 256),
		unsubscribe: make(chan subscription, 256),
		broadcast:   make(chan envelope, 1024),
		logger:      logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			h.clients[client] = make(map[string]bool)
			total := len(h.clients)
			h.mutex.Unlock()
			if h.logger != nil {
				h.logger.Printf("WS connected | total_clients=%d", total)
			}

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.drop(client)

		case sub := <-h.subscribe:
			if sub.client == nil || sub.topic == "" {
				continue
			}
			h.mutex.Lock()
			if topics, ok := h.clients[sub.client]; ok {
				topics[sub.topic] = true
				if h.topics[sub.topic] == nil {
					h.topics[sub.topic] = make(map[*Client]bool)
				}
				h.topics[sub.topic][sub.client] = true
			}
			h.mutex.Unlock()

		case sub := <-h.unsubscribe:
			if sub.client == nil || sub.topic == "" {
				continue
			}
			h.mutex.Lock()
			if topics, ok := h.clients[sub.client]; ok {
				delete(topics, sub.topic)
				h.dropSubscription(sub.client, sub.topic)
			}
			h.mutex.Unlock()

		case msg := <-h.broadcast:
			h.mutex.RLock()
			subscribers := make([]*Client, 0, len(h.topics[msg.topic]))
			for c := range h.topics[msg.topic] {
				subscribers = append(subscribers, c)
			}
			h.mutex.RUnlock()

			for _, client := range subscribers {
				select {
				case client.send <- msg.payload:
				default:
					// Evict in place. Queueing onto h.unregister here would
					// have Run blocking on its own channel once the buffer
					// fills.
					h.drop(client)
				}
			}
		}
	}
}

// drop removes a client and all its subscriptions, closing its send channel.
// It takes the write lock directly, so Run can call it for slow-client
// eviction without going back through the unregister channel.
func (h *Hub) drop(client *Client) {
	h.mutex.Lock()
	topics, known := h.clients[client]
	if known {
		for topic := range topics {
			h.dropSubscription(client, topic)
		}
		delete(h.clients, client)
		close(client.send)
	}
	total := len(h.clients)
	h.mutex.Unlock()
	if known && h.logger != nil {
		h.logger.Printf("WS disconnected | total_clients=%d", total)
	}
}

// dropSubscription must be called with the write lock held.
func (h *Hub) dropSubscription(client *Client, topic string) {
	if subs, ok := h.topics[topic]; ok {
		delete(subs, client)
		if len(subs) == 0 {
			delete(h.topics, topic)
		}
	}
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

func (h *Hub) Subscribe(client *Client, topic string) {
	if h == nil {
		return
	}
	h.subscribe <- subscription{client: client, topic: topic}
}

func (h *Hub) Unsubscribe(client *Client, topic string) {
	if h == nil {
		return
	}
	h.unsubscribe <- subscription{client: client, topic: topic}
}

func (h *Hub) Broadcast(topic string, payload []byte) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- envelope{topic: topic, payload: payload}:
	default:
		if h.logger != nil {
			h.logger.Printf("WS broadcast dropped | topic=%s reason=buffer_full", topic)
		}
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

func (h *Hub) SubscriberCount(topic string) int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.topics[topic])
}
