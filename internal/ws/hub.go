// Package ws is the event coordinator: it owns every connection, the lobby
// directory, the room registry and all game sessions, and maps each inbound
// message to one mutation followed by targeted broadcasts (private hand,
// room-wide, or lobby-wide).
//
// Concurrency model: Run's goroutine is the single writer. Connection read
// loops and REST queries only ever post to the event channel, so handlers
// execute one at a time to completion and no lock guards the shared state.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"cardroom/internal"
	"cardroom/internal/lobby"
	"cardroom/internal/room"
	"cardroom/internal/store"
)

type eventKind int

const (
	evConnect eventKind = iota
	evMessage
	evDisconnect
	evListRooms
)

type event struct {
	kind  eventKind
	sess  *Session
	msg   internal.Message[json.RawMessage]
	reply chan []internal.RoomSummary
}

type Hub struct {
	log      *slog.Logger
	lobby    *lobby.Directory
	rooms    *room.Registry
	accounts *store.Postgres // nil in guest-only mode

	sessions map[string]*Session
	events   chan event
	upgrader websocket.Upgrader
}

// NewHub wires the coordinator to its repositories. accounts may be nil, in
// which case signup/login report accounts as unavailable.
func NewHub(log *slog.Logger, dir *lobby.Directory, reg *room.Registry, accounts *store.Postgres) *Hub {
	return &Hub{
		log:      log,
		lobby:    dir,
		rooms:    reg,
		accounts: accounts,
		sessions: make(map[string]*Session),
		events:   make(chan event, 256),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Run consumes events until ctx is cancelled. It must be the only goroutine
// touching lobby, rooms and sessions.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-h.events:
			h.dispatch(ev)
		}
	}
}

// dispatch recovers from handler panics: a fault drops the one triggering
// request instead of taking the service down, at the cost of the requester
// receiving no response.
func (h *Hub) dispatch(ev event) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Error("hub.panic", "type", ev.msg.Type, "recover", r)
		}
	}()

	switch ev.kind {
	case evConnect:
		h.sessions[ev.sess.ID] = ev.sess
		h.log.Debug("session.connected", "id", ev.sess.ID)
		h.send(ev.sess, "connected", internal.ConnectedData{PlayerID: ev.sess.ID})
	case evDisconnect:
		h.handleDisconnect(ev.sess)
	case evMessage:
		h.handleMessage(ev.sess, ev.msg)
	case evListRooms:
		ev.reply <- h.rooms.Summaries()
	}
}

// HandleWebSocket upgrades the connection and registers the session.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws.upgrade", "err", err)
		return
	}
	sess := newSession(conn)
	h.events <- event{kind: evConnect, sess: sess}
	go h.readLoop(sess)
}

func (h *Hub) readLoop(sess *Session) {
	defer func() {
		sess.conn.Close()
		h.events <- event{kind: evDisconnect, sess: sess}
	}()

	for {
		var msg internal.Message[json.RawMessage]
		if err := sess.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("ws.read", "session", sess.ID, "err", err)
			}
			return
		}
		h.events <- event{kind: evMessage, sess: sess, msg: msg}
	}
}

// RoomSummaries answers REST listing requests through the event queue so the
// registry is still only touched from the hub goroutine.
func (h *Hub) RoomSummaries() []internal.RoomSummary {
	reply := make(chan []internal.RoomSummary, 1)
	h.events <- event{kind: evListRooms, reply: reply}
	return <-reply
}

func (h *Hub) handleMessage(sess *Session, msg internal.Message[json.RawMessage]) {
	h.log.Debug("hub.message", "type", msg.Type, "session", sess.ID)

	switch msg.Type {
	case "signup":
		var data internal.SignupData
		if !h.decode(sess, msg, &data) {
			return
		}
		h.handleSignup(sess, data)
	case "login":
		var data internal.LoginData
		if !h.decode(sess, msg, &data) {
			return
		}
		h.handleLogin(sess, data)
	case "logout":
		h.handleLogout(sess)
	case "join_lobby":
		var displayName string
		if !h.decode(sess, msg, &displayName) {
			return
		}
		h.handleJoinLobby(sess, displayName)
	case "create_room":
		var data internal.CreateRoomData
		if !h.decode(sess, msg, &data) {
			return
		}
		h.handleCreateRoom(sess, data)
	case "join_room":
		var roomID string
		if !h.decode(sess, msg, &roomID) {
			return
		}
		h.handleJoinRoom(sess, roomID)
	case "leave_room":
		var roomID string
		if !h.decode(sess, msg, &roomID) {
			return
		}
		h.handleLeaveRoom(sess, roomID)
	case "start_game":
		var roomID string
		if !h.decode(sess, msg, &roomID) {
			return
		}
		h.handleStartGame(sess, roomID)
	case "drop_cards":
		var data internal.DropCardsData
		if !h.decode(sess, msg, &data) {
			return
		}
		h.handleDropCards(sess, data)
	case "show_cards":
		var data internal.RoomIDData
		if !h.decode(sess, msg, &data) {
			return
		}
		h.handleShowCards(sess, data.RoomID)
	case "play_again":
		var data internal.RoomIDData
		if !h.decode(sess, msg, &data) {
			return
		}
		h.handlePlayAgain(sess, data.RoomID)
	default:
		h.log.Warn("hub.message.unknown", "type", msg.Type, "session", sess.ID)
	}
}

func (h *Hub) decode(sess *Session, msg internal.Message[json.RawMessage], v any) bool {
	if len(msg.Data) == 0 {
		msg.Data = json.RawMessage("null")
	}
	if err := json.Unmarshal(msg.Data, v); err != nil {
		h.log.Warn("hub.message.decode", "type", msg.Type, "session", sess.ID, "err", err)
		return false
	}
	return true
}

// send writes to one session; delivery failures are logged, cleanup happens
// when the read loop notices the broken connection.
func (h *Hub) send(sess *Session, msgType string, data any) {
	if err := sess.send(msgType, data); err != nil {
		h.log.Warn("ws.send", "type", msgType, "session", sess.ID, "err", err)
	}
}

func (h *Hub) sendError(sess *Session, message string) {
	h.send(sess, "error", internal.ErrorData{Message: message})
}

// broadcastRoom delivers to every current member of the room.
func (h *Hub) broadcastRoom(r *room.Room, msgType string, data any) {
	for _, m := range r.Players {
		if sess, ok := h.sessions[m.ID]; ok {
			h.send(sess, msgType, data)
		}
	}
}

// broadcastLobby delivers the lobby snapshot to every connected session.
func (h *Hub) broadcastLobby() {
	data := internal.LobbyUpdateData{
		Players: h.lobby.Players(),
		Rooms:   h.rooms.Summaries(),
	}
	for _, sess := range h.sessions {
		h.send(sess, "lobby_update", data)
	}
}
