package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ChatSession groups the messages of one conversation.
type ChatSession struct {
	ID        string    `json:"id"`
	Client    string    `json:"client"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatMessage is one stored message.
type ChatMessage struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Intent    string    `json:"intent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateChatSession starts a new session for the given client kind.
func (s *Store) CreateChatSession(ctx context.Context, client string) (*ChatSession, error) {
	sess := &ChatSession{ID: uuid.NewString(), Client: client}
	_, err := s.ExecContext(ctx,
		`INSERT INTO chat_sessions (id, client) VALUES (?, ?)`, sess.ID, sess.Client)
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// AppendChatMessage stores one message in a session.
func (s *Store) AppendChatMessage(ctx context.Context, sessionID, role, content, intent string) error {
	_, err := s.ExecContext(ctx,
		`INSERT INTO chat_messages (id, session_id, role, content, intent) VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), sessionID, role, content, intent)
	if err != nil {
		return err
	}
	_, err = s.ExecContext(ctx,
		`UPDATE chat_sessions SET updated_at = datetime('now') WHERE id = ?`, sessionID)
	return err
}

// SessionMessages returns a session's messages in order.
func (s *Store) SessionMessages(ctx context.Context, sessionID string) ([]ChatMessage, error) {
	rows, err := s.QueryContext(ctx,
		`SELECT id, session_id, role, content, intent, created_at
		 FROM chat_messages WHERE session_id = ? ORDER BY created_at, rowid`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ChatMessage
	for rows.Next() {
		var m ChatMessage
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.Intent, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
