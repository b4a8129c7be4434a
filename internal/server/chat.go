package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/specdoc/specdoc/internal/chat"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleChat answers one chat message over plain HTTP.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message   string `json:"message"`
		SessionID string `json:"session_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	sessionID, resp := s.converse(r.Context(), "http", req.SessionID, req.Message)
	writeJSON(w, http.StatusOK, map[string]any{
		"session_id":   sessionID,
		"intent":       resp.Intent,
		"answer":       resp.Answer,
		"code_snippet": resp.CodeSnippet,
		"summary":      resp.Summary,
	})
}

// converse runs one bot round trip, persisting both sides of the
// exchange. Persistence failures are logged, not surfaced.
func (s *Server) converse(ctx context.Context, client, sessionID, message string) (string, chat.Response) {
	if sessionID == "" {
		sess, err := s.db.CreateChatSession(ctx, client)
		if err != nil {
			log.Printf("server: creating chat session: %v", err)
		} else {
			sessionID = sess.ID
		}
	}

	spec, doc, _ := s.current()
	resp := s.bot.Reply(ctx, spec, doc, message)

	if sessionID != "" {
		if err := s.db.AppendChatMessage(ctx, sessionID, "user", message, ""); err != nil {
			log.Printf("server: storing chat message: %v", err)
		}
		if err := s.db.AppendChatMessage(ctx, sessionID, "assistant", resp.Answer, string(resp.Intent)); err != nil {
			log.Printf("server: storing chat message: %v", err)
		}
	}
	return sessionID, resp
}

// wsRequest is the incoming WebSocket message format.
type wsRequest struct {
	SessionID string `json:"session_id"` // empty starts a new session
	Content   string `json:"content"`
}

// wsResponse is the outgoing WebSocket message format.
type wsResponse struct {
	Type      string        `json:"type"` // "response" or "error"
	SessionID string        `json:"session_id"`
	Intent    chat.Intent   `json:"intent,omitempty"`
	Content   string        `json:"content"`
	Snippet   *chat.Snippet `json:"code_snippet,omitempty"`
}

// handleChatWS serves a persistent chat connection.
func (s *Server) handleChatWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("server: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("server: websocket read: %v", err)
			}
			return
		}

		var req wsRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			s.sendWS(conn, wsResponse{Type: "error", Content: "invalid message format"})
			continue
		}
		if strings.TrimSpace(req.Content) == "" {
			s.sendWS(conn, wsResponse{Type: "error", SessionID: req.SessionID, Content: "content is required"})
			continue
		}

		sessionID, resp := s.converse(r.Context(), "websocket", req.SessionID, req.Content)
		s.sendWS(conn, wsResponse{
			Type:      "response",
			SessionID: sessionID,
			Intent:    resp.Intent,
			Content:   resp.Answer,
			Snippet:   resp.CodeSnippet,
		})
	}
}

func (s *Server) sendWS(conn *websocket.Conn, resp wsResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("server: websocket write: %v", err)
	}
}
