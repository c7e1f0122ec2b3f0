package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/Priyanshu055/intern-match-backend/internal/apperror"
	"github.com/Priyanshu055/intern-match-backend/internal/model"
	"github.com/Priyanshu055/intern-match-backend/internal/repository"
)

var _ repository.MessageRepository = (*DB)(nil)

func (db *DB) CreateMessage(ctx context.Context, msg *model.Message) error {
	msg.ID = xid.New().String()
	msg.Read = false
	msg.CreatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO messages (id, sender_id, receiver_id, application_id, body, read, created_at)
		 VALUES (?, ?, ?, ?, ?, 0, ?)`,
		msg.ID, msg.SenderID, msg.ReceiverID, msg.ApplicationID, msg.Body, msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating message: %w", err)
	}
	return nil
}

func (db *DB) GetMessageByID(ctx context.Context, id string) (*model.Message, error) {
	var m model.Message
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, sender_id, receiver_id, application_id, body, read, created_at
		 FROM messages WHERE id = ?`, id,
	).Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.ApplicationID, &m.Body, &m.Read, &m.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("message", id)
		}
		return nil, fmt.Errorf("sqlite: getting message %s: %w", id, err)
	}
	return &m, nil
}

// ListMessagesByParticipant returns every message the user sent or
// received, newest first.
func (db *DB) ListMessagesByParticipant(ctx context.Context, userID string) ([]model.Message, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, sender_id, receiver_id, application_id, body, read, created_at
		 FROM messages
		 WHERE sender_id = ? OR receiver_id = ?
		 ORDER BY created_at DESC`,
		userID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing messages for %s: %w", userID, err)
	}
	defer rows.Close()

	msgs := []model.Message{}
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.ApplicationID, &m.Body, &m.Read, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning message row: %w", err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating messages: %w", err)
	}
	return msgs, nil
}

// MarkMessageRead sets the read flag. Marking an already-read message is
// a no-op, not an error; repeated receipts are idempotent.
func (db *DB) MarkMessageRead(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE messages SET read = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: marking message %s read: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rows == 0 {
		// Distinguish "no such message" from "already read": the update
		// above matches read rows too, so zero rows means the ID is gone.
		return apperror.NotFound("message", id)
	}
	return nil
}
