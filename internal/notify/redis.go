package notify

import (
	"context"
	"fmt"
	"log"
	"strings"

	"gigmatch/internal/config"

	"github.com/redis/go-redis/v9"
)

type RedisPublisher struct {
	client *redis.Client
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "localhost"
	}
	port := strings.TrimSpace(cfg.Port)
	if port == "" {
		port = "6379"
	}
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: cfg.Password,
		DB:       0,
	})
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, topic string, payload []byte) error {
	if p == nil || p.client == nil {
		return fmt.Errorf("redis unavailable")
	}
	return p.client.Publish(ctx, topic, payload).Err()
}

// Broadcaster is the local fan-out the relay feeds; the websocket hub
// implements it.
type Broadcaster interface {
	Broadcast(topic string, payload []byte)
}

// Relay subscribes to every bridge topic pattern on redis and forwards the
// raw payloads into the in-process hub. Delivery stays at-least-once with no
// cross-topic ordering; a dropped message only delays a client's re-fetch.
type Relay struct {
	client *redis.Client
	hub    Broadcaster
	logger *log.Logger
}

func NewRelay(client *redis.Client, hub Broadcaster, logger *log.Logger) *Relay {
	return &Relay{client: client, hub: hub, logger: logger}
}

func (r *Relay) Run(ctx context.Context) {
	if r == nil || r.client == nil || r.hub == nil {
		return
	}

	sub := r.client.PSubscribe(ctx, "chat-messages/*", "chat-rooms/*", "subjects/*")
	defer func() {
		_ = sub.Close()
	}()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				if r.logger != nil {
					r.logger.Printf("notify relay channel closed")
				}
				return
			}
			r.hub.Broadcast(msg.Channel, []byte(msg.Payload))
		}
	}
}
