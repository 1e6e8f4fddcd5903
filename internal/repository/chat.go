package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/flashchat/flashchat-go/internal/model"
)

var ErrChatNotFound = errors.New("conversation not found")

// ChatRepository handles conversation and message persistence. Message logs
// are append-only: rows are inserted with a per-conversation sequence number
// and never updated or deleted.
type ChatRepository struct {
	db *sql.DB
}

// NewChatRepository creates a new ChatRepository.
func NewChatRepository(db *sql.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// Create inserts a new conversation owned by the given user and returns its ID.
// The owning user's conversation list is the user_id column, so the reference
// is recorded by the same insert.
func (r *ChatRepository) Create(ctx context.Context, userID int64, title string) (int64, error) {
	query := `INSERT INTO conversations (user_id, title) VALUES (?, ?)`

	result, err := r.db.ExecContext(ctx, query, userID, title)
	if err != nil {
		return 0, err
	}

	return result.LastInsertId()
}

// AppendExchange atomically appends a user message followed by the
// corresponding AI message to a conversation's log. The conversation row is
// locked for the duration of the transaction so concurrent appends to the
// same conversation serialize and sequence numbers never collide.
func (r *ChatRepository) AppendExchange(ctx context.Context, chatID int64, userText, aiText string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM conversations WHERE id = ? FOR UPDATE`, chatID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrChatNotFound
		}
		return err
	}

	var nextSeq int
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) + 1 FROM messages WHERE conversation_id = ?`, chatID,
	).Scan(&nextSeq)
	if err != nil {
		return err
	}

	insert := `INSERT INTO messages (conversation_id, seq, sender, content) VALUES (?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, insert, chatID, nextSeq, model.SenderUser, userText); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, insert, chatID, nextSeq+1, model.SenderAI, aiText); err != nil {
		return err
	}

	return tx.Commit()
}

// GetByID retrieves a conversation and its message log in append order.
func (r *ChatRepository) GetByID(ctx context.Context, chatID int64) (*model.Conversation, error) {
	query := `SELECT id, user_id, title, created_at FROM conversations WHERE id = ?`

	conv := &model.Conversation{}
	err := r.db.QueryRowContext(ctx, query, chatID).Scan(
		&conv.ID, &conv.UserID, &conv.Title, &conv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrChatNotFound
		}
		return nil, err
	}

	conv.Messages, err = r.messages(ctx, chatID)
	if err != nil {
		return nil, err
	}

	return conv, nil
}

// ListByUser retrieves all conversations owned by a user in creation order,
// each with its full message log.
func (r *ChatRepository) ListByUser(ctx context.Context, userID int64) ([]model.Conversation, error) {
	query := `SELECT id, user_id, title, created_at FROM conversations WHERE user_id = ? ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []model.Conversation
	for rows.Next() {
		var c model.Conversation
		if err := rows.Scan(&c.ID, &c.UserID, &c.Title, &c.CreatedAt); err != nil {
			return nil, err
		}
		convs = append(convs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range convs {
		convs[i].Messages, err = r.messages(ctx, convs[i].ID)
		if err != nil {
			return nil, err
		}
	}

	return convs, nil
}

// ListAll retrieves every conversation with its message log. Display
// ordering is left to the caller.
func (r *ChatRepository) ListAll(ctx context.Context) ([]model.Conversation, error) {
	query := `SELECT id, user_id, title, created_at FROM conversations`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []model.Conversation
	for rows.Next() {
		var c model.Conversation
		if err := rows.Scan(&c.ID, &c.UserID, &c.Title, &c.CreatedAt); err != nil {
			return nil, err
		}
		convs = append(convs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range convs {
		convs[i].Messages, err = r.messages(ctx, convs[i].ID)
		if err != nil {
			return nil, err
		}
	}

	return convs, nil
}

// messages retrieves a conversation's message log ordered by sequence number.
func (r *ChatRepository) messages(ctx context.Context, chatID int64) ([]model.Message, error) {
	query := `SELECT sender, content FROM messages WHERE conversation_id = ? ORDER BY seq ASC`

	rows, err := r.db.QueryContext(ctx, query, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []model.Message
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.Sender, &m.Content); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}

	return msgs, rows.Err()
}
