package store

import (
	"context"
	"fmt"
	"time"
)

// Message is a stored contact form submission.
type Message struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// SaveMessage stores a contact submission and returns it with its ID.
func (s *Store) SaveMessage(ctx context.Context, name, email, body string) (Message, error) {
	m := Message{Name: name, Email: email, Body: body, CreatedAt: s.now().UTC()}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (name, email, body, created_at)
		VALUES (?, ?, ?, ?)
	`, m.Name, m.Email, m.Body, m.CreatedAt)
	if err != nil {
		return Message{}, fmt.Errorf("save message: %w", err)
	}
	if m.ID, err = res.LastInsertId(); err != nil {
		return Message{}, fmt.Errorf("save message: %w", err)
	}
	return m, nil
}

// Messages returns up to limit messages, newest first.
func (s *Store) Messages(ctx context.Context, limit int) ([]Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, body, created_at
		FROM messages
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Body, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// DeleteMessage removes a message. It returns ErrNotFound if id is unknown.
func (s *Store) DeleteMessage(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete message %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete message %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("delete message %d: %w", id, ErrNotFound)
	}
	return nil
}
