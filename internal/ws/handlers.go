package ws

import (
	"context"
	"errors"
	"time"

	"cardroom/internal"
	"cardroom/internal/game"
	"cardroom/internal/room"
	"cardroom/internal/store"
)

const storeTimeout = 5 * time.Second

type roomPayload struct {
	Room *room.Room `json:"room"`
}

type gameStartedPayload struct {
	Room      *room.Room       `json:"room"`
	GameState game.PublicState `json:"gameState"`
	YourHand  []internal.Card  `json:"yourHand"`
}

type gameStatePayload struct {
	PublicState game.PublicState `json:"publicState"`
}

type cardsDroppedPayload struct {
	Result      game.DropResult  `json:"result"`
	YourHand    []internal.Card  `json:"yourHand"`
	PublicState game.PublicState `json:"publicState"`
}

type gameEndedPayload struct {
	Result game.ShowdownResult `json:"result"`
	Winner string              `json:"winner,omitempty"`
	Loser  string              `json:"loser,omitempty"`
	Scores map[string]int      `json:"scores"`
}

type signupSuccessPayload struct {
	Message string `json:"message"`
}

type loginSuccessPayload struct {
	Player store.PlayerAccount `json:"player"`
}

func (h *Hub) handleSignup(sess *Session, data internal.SignupData) {
	if h.accounts == nil {
		h.sendError(sess, "Accounts are not available on this server")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if _, err := h.accounts.Signup(ctx, data.Username, data.Password, data.DisplayName, data.Email); err != nil {
		h.sendError(sess, err.Error())
		return
	}
	h.send(sess, "signup_success", signupSuccessPayload{Message: "Player created successfully"})
}

func (h *Hub) handleLogin(sess *Session, data internal.LoginData) {
	if h.accounts == nil {
		h.sendError(sess, "Accounts are not available on this server")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	account, err := h.accounts.Login(ctx, data.Username, data.Password)
	if err != nil {
		h.sendError(sess, err.Error())
		return
	}
	sess.Account = &account
	h.log.Info("session.login", "session", sess.ID, "username", account.Username)
	h.send(sess, "login_success", loginSuccessPayload{Player: account})
}

func (h *Hub) handleLogout(sess *Session) {
	h.lobby.Remove(sess.ID)
	sess.Account = nil
	h.log.Info("session.logout", "session", sess.ID)
	h.broadcastLobby()
}

func (h *Hub) handleJoinLobby(sess *Session, displayName string) {
	player := h.lobby.Add(sess.ID, displayName)
	sess.Name = player.Name

	h.send(sess, "lobby_joined", internal.LobbyJoinedData{
		PlayerID:   sess.ID,
		PlayerName: player.Name,
		Rooms:      h.rooms.Summaries(),
	})
	h.broadcastLobby()
}

func (h *Hub) handleCreateRoom(sess *Session, data internal.CreateRoomData) {
	player, ok := h.lobby.Get(sess.ID)
	if !ok {
		h.sendError(sess, "You must join the lobby first")
		return
	}

	r := h.rooms.CreateRoom(data.RoomName, data.MaxPlayers, data.GameType, player)
	sess.RoomID = r.ID
	h.lobby.Remove(sess.ID)
	h.log.Info("room.created", "room", r.ID, "host", sess.ID, "maxPlayers", r.MaxPlayers)

	h.send(sess, "room_created", roomPayload{Room: r})
	h.broadcastLobby()
}

func (h *Hub) handleJoinRoom(sess *Session, roomID string) {
	player, ok := h.lobby.Get(sess.ID)
	if !ok {
		h.sendError(sess, "You must join the lobby first")
		return
	}

	r, err := h.rooms.AddPlayer(roomID, player)
	if err != nil {
		h.sendError(sess, err.Error())
		return
	}
	sess.RoomID = r.ID
	h.lobby.Remove(sess.ID)
	h.log.Info("room.joined", "room", r.ID, "player", sess.ID)

	h.send(sess, "room_joined", roomPayload{Room: r})
	h.broadcastRoom(r, "room_update", roomPayload{Room: r})
	h.broadcastLobby()
}

// handleLeaveRoom returns the caller to the lobby. Leaving a room one is not
// in is a no-op: the requester's intent is already satisfied.
func (h *Hub) handleLeaveRoom(sess *Session, roomID string) {
	r, ok := h.rooms.Get(roomID)
	if !ok {
		h.log.Debug("room.leave.unknown", "room", roomID, "session", sess.ID)
		return
	}
	member, ok := r.Member(sess.ID)
	if !ok {
		h.log.Debug("room.leave.notmember", "room", roomID, "session", sess.ID)
		return
	}

	updated, _ := h.rooms.RemovePlayer(roomID, sess.ID)
	sess.RoomID = ""
	h.lobby.Add(sess.ID, member.Name)

	h.send(sess, "returned_to_lobby", internal.ReturnedToLobbyData{Rooms: h.rooms.Summaries()})

	if len(updated.Players) > 0 {
		h.broadcastRoom(updated, "room_update", roomPayload{Room: updated})
	} else {
		h.rooms.Delete(roomID)
		h.log.Info("room.deleted", "room", roomID)
	}
	h.broadcastLobby()
}

func (h *Hub) handleStartGame(sess *Session, roomID string) {
	r, ok := h.rooms.Get(roomID)
	if !ok {
		h.log.Debug("game.start.unknown", "room", roomID, "session", sess.ID)
		return
	}
	if r.Host.ID != sess.ID {
		h.sendError(sess, "Only the host can start the game")
		return
	}
	if len(r.Players) < internal.MinPlayersToStart {
		h.sendError(sess, "Need at least 2 players to start")
		return
	}
	h.startRound(sess, roomID, false)
}

func (h *Hub) handlePlayAgain(sess *Session, roomID string) {
	if _, ok := h.rooms.Get(roomID); !ok {
		h.sendError(sess, room.ErrRoomNotFound.Error())
		return
	}
	h.startRound(sess, roomID, true)
}

// startRound (re)initializes the room's game session and deals. Hands are
// delivered privately per member; everyone else only ever sees counts.
func (h *Hub) startRound(sess *Session, roomID string, withRoomUpdate bool) {
	r, _, err := h.rooms.StartGame(roomID)
	if err != nil {
		h.sendError(sess, "Failed to start game")
		return
	}
	h.log.Info("game.started", "room", r.ID, "players", len(r.Players))

	public := r.Game.PublicState()
	for _, m := range r.Players {
		memberSess, ok := h.sessions[m.ID]
		if !ok {
			continue
		}
		h.send(memberSess, "game_started", gameStartedPayload{
			Room:      r,
			GameState: public,
			YourHand:  r.Game.PlayerHand(m.ID),
		})
	}

	h.broadcastRoom(r, "game_state_update", gameStatePayload{PublicState: public})
	if withRoomUpdate {
		h.broadcastRoom(r, "room_update", roomPayload{Room: r})
	}
	h.broadcastLobby()
}

func (h *Hub) handleDropCards(sess *Session, data internal.DropCardsData) {
	g := h.rooms.Game(data.RoomID)
	if g == nil {
		h.sendError(sess, "Game not found")
		return
	}

	result, err := g.DropCards(sess.ID, data.CardIDs, data.TakeFromDeck)
	if err != nil {
		h.sendError(sess, err.Error())
		return
	}

	r, _ := h.rooms.Get(data.RoomID)
	public := g.PublicState()
	for _, m := range r.Players {
		memberSess, ok := h.sessions[m.ID]
		if !ok {
			continue
		}
		h.send(memberSess, "cards_dropped", cardsDroppedPayload{
			Result:      result,
			YourHand:    g.PlayerHand(m.ID),
			PublicState: public,
		})
	}
}

func (h *Hub) handleShowCards(sess *Session, roomID string) {
	g := h.rooms.Game(roomID)
	if g == nil {
		h.sendError(sess, "Game not found")
		return
	}

	result, err := g.ShowCards(sess.ID)
	if err != nil {
		h.sendError(sess, err.Error())
		return
	}

	r, _ := h.rooms.Get(roomID)
	h.log.Info("game.ended", "room", roomID, "winner", result.Winner, "loser", result.Loser)

	h.broadcastRoom(r, "game_ended", gameEndedPayload{
		Result: result,
		Winner: result.Winner,
		Loser:  result.Loser,
		Scores: roundScores(result),
	})
	h.recordStats(r, result.Winner)
}

// handleDisconnect removes the session everywhere. A connection lost during
// an active game immediately frees the player's room slot; there is no grace
// period or reconnect.
func (h *Hub) handleDisconnect(sess *Session) {
	delete(h.sessions, sess.ID)
	h.lobby.Remove(sess.ID)

	if sess.RoomID != "" {
		if updated, ok := h.rooms.RemovePlayer(sess.RoomID, sess.ID); ok {
			if len(updated.Players) > 0 {
				h.broadcastRoom(updated, "room_update", roomPayload{Room: updated})
			} else {
				h.rooms.Delete(sess.RoomID)
				h.log.Info("room.deleted", "room", sess.RoomID)
			}
		}
		sess.RoomID = ""
	}

	h.log.Debug("session.disconnected", "id", sess.ID)
	h.broadcastLobby()
}

// roundScores derives per-round score contributions from a showdown: the
// winner scores 0, a loser takes the sum of every hand, everyone else takes
// their own hand value.
func roundScores(result game.ShowdownResult) map[string]int {
	total := 0
	for _, pr := range result.Results {
		total += pr.Value
	}
	scores := make(map[string]int, len(result.Results))
	for _, pr := range result.Results {
		switch pr.PlayerID {
		case result.Winner:
			scores[pr.PlayerID] = 0
		case result.Loser:
			scores[pr.PlayerID] = total
		default:
			scores[pr.PlayerID] = pr.Value
		}
	}
	return scores
}

// recordStats bumps win/loss counters for every member with a linked
// account. Store failures only cost the counters, never the broadcast.
func (h *Hub) recordStats(r *room.Room, winnerID string) {
	if h.accounts == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	for _, m := range r.Players {
		memberSess, ok := h.sessions[m.ID]
		if !ok || memberSess.Account == nil {
			continue
		}
		won := m.ID == winnerID && winnerID != ""
		if err := h.accounts.UpdateStats(ctx, memberSess.Account.ID, won); err != nil &&
			!errors.Is(err, context.Canceled) {
			h.log.Warn("stats.update", "account", memberSess.Account.ID, "err", err)
		}
	}
}
