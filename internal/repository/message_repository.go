package repository

import (
	"context"

	"gigmatch/internal/database"
	"gigmatch/internal/domain/chat"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Append(ctx context.Context, m chat.Message) (chat.Message, error)
	ListBetween(ctx context.Context, a, b uuid.UUID) ([]chat.Message, error)
	DeleteConversation(ctx context.Context, a, b uuid.UUID) (int64, error)
}

type PostgresMessageRepository struct {
	db database.DB
}

func NewPostgresMessageRepository(db database.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) Append(ctx context.Context, m chat.Message) (chat.Message, error) {
	lo, hi := chat.PairKey(m.SenderID, m.RecipientID)
	row := r.db.QueryRow(ctx,
		`INSERT INTO messages (id, user_lo, user_hi, sender_id, body)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, sender_id, body, created_at`,
		m.ID, lo, hi, m.SenderID, m.Body,
	)
	var out chat.Message
	if err := row.Scan(&out.ID, &out.SenderID, &out.Body, &out.CreatedAt); err != nil {
		if isForeignKeyViolation(err) {
			return chat.Message{}, ErrRecipientNotFound
		}
		return chat.Message{}, err
	}
	out.RecipientID = m.RecipientID
	return out, nil
}

// ListBetween returns the full conversation ascending by creation time.
// There is no pagination; clients fetch the whole log.
func (r *PostgresMessageRepository) ListBetween(ctx context.Context, a, b uuid.UUID) ([]chat.Message, error) {
	lo, hi := chat.PairKey(a, b)
	rows, err := r.db.Query(ctx,
		`SELECT id, user_lo, user_hi, sender_id, body, created_at
		 FROM messages
		 WHERE user_lo = $1 AND user_hi = $2
		 ORDER BY created_at ASC`,
		lo, hi,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]chat.Message, 0)
	for rows.Next() {
		var m chat.Message
		var rowLo, rowHi uuid.UUID
		if err := rows.Scan(&m.ID, &rowLo, &rowHi, &m.SenderID, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		if m.SenderID == rowLo {
			m.RecipientID = rowHi
		} else {
			m.RecipientID = rowLo
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteConversation removes both directions of the pair in one statement;
// both participants lose the history simultaneously.
func (r *PostgresMessageRepository) DeleteConversation(ctx context.Context, a, b uuid.UUID) (int64, error) {
	lo, hi := chat.PairKey(a, b)
	return r.db.Exec(ctx, `DELETE FROM messages WHERE user_lo = $1 AND user_hi = $2`, lo, hi)
}
