package ws

import (
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"cardroom/internal"
	"cardroom/internal/store"
)

// Session is one live connection. Its ID doubles as the player key in the
// lobby and in room member lists; Account is the optionally linked persisted
// identity, set on login.
//
// All fields except the write mutex are owned by the hub's event loop.
type Session struct {
	ID      string
	Name    string
	RoomID  string
	Account *store.PlayerAccount

	conn *websocket.Conn
	mu   sync.Mutex
}

func newSession(conn *websocket.Conn) *Session {
	return &Session{ID: uuid.NewString(), conn: conn}
}

// WriteJSON serializes writes; gorilla connections forbid concurrent
// writers.
func (s *Session) WriteJSON(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(v)
}

func (s *Session) send(msgType string, data any) error {
	return s.WriteJSON(internal.Message[any]{Type: msgType, Data: data})
}
