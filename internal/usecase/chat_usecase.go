package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"gigmatch/internal/domain/chat"
	"gigmatch/internal/domain/user"
	"gigmatch/internal/notify"
	"gigmatch/internal/repository"

	"github.com/google/uuid"
)

var ErrRecipientNotFound = errors.New("recipient not found")

const maxMessageBody = 4000

type ChatUsecase interface {
	Send(ctx context.Context, actor Actor, recipientID uuid.UUID, body string) (chat.Message, error)
	List(ctx context.Context, actor Actor, peerID uuid.UUID) ([]chat.Message, error)
	DeleteConversation(ctx context.Context, actor Actor, peerID uuid.UUID) error
}

type Chat struct {
	messages repository.MessageRepository
	users    user.Repository
	bridge   *notify.Bridge
	logger   *log.Logger
}

func NewChatUsecase(messages repository.MessageRepository, users user.Repository, bridge *notify.Bridge, logger *log.Logger) *Chat {
	return &Chat{messages: messages, users: users, bridge: bridge, logger: logger}
}

// Send appends to the pair's log and pings the recipient's topics after the
// insert committed. Ordering within a conversation comes from the storage
// timestamp; no application-level lock is involved.
func (c *Chat) Send(ctx context.Context, actor Actor, recipientID uuid.UUID, body string) (chat.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" || len(body) > maxMessageBody {
		return chat.Message{}, ErrInvalidInput
	}
	if recipientID == uuid.Nil || recipientID == actor.ID {
		return chat.Message{}, ErrInvalidInput
	}

	exists, err := c.users.ExistsByID(ctx, recipientID)
	if err != nil {
		return chat.Message{}, c.internal("send: recipient lookup", err)
	}
	if !exists {
		return chat.Message{}, ErrRecipientNotFound
	}

	msg, err := c.messages.Append(ctx, chat.Message{
		ID:          uuid.New(),
		SenderID:    actor.ID,
		RecipientID: recipientID,
		Body:        body,
	})
	if err != nil {
		if errors.Is(err, repository.ErrRecipientNotFound) {
			return chat.Message{}, ErrRecipientNotFound
		}
		return chat.Message{}, c.internal("send: append", err)
	}

	c.bridge.ChatMessage(ctx, actor.ID, recipientID)
	return msg, nil
}

func (c *Chat) List(ctx context.Context, actor Actor, peerID uuid.UUID) ([]chat.Message, error) {
	if peerID == uuid.Nil || peerID == actor.ID {
		return nil, ErrInvalidInput
	}
	items, err := c.messages.ListBetween(ctx, actor.ID, peerID)
	if err != nil {
		return nil, c.internal("list messages", err)
	}
	return items, nil
}

// DeleteConversation drops the whole pair history for both participants at
// once. There is no soft-delete or per-user visibility.
func (c *Chat) DeleteConversation(ctx context.Context, actor Actor, peerID uuid.UUID) error {
	if peerID == uuid.Nil || peerID == actor.ID {
		return ErrInvalidInput
	}
	if _, err := c.messages.DeleteConversation(ctx, actor.ID, peerID); err != nil {
		return c.internal("delete conversation", err)
	}
	return nil
}

func (c *Chat) internal(op string, err error) error {
	if c.logger != nil {
		c.logger.Printf("chat error | op=%q err=%v", op, err)
	}
	return ErrInternal
}
