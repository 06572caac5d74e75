// Package room owns the set of live rooms. The registry is owned by the
// hub's event loop; it has no locking of its own and is not safe for
// concurrent use.
package room

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"cardroom/internal"
	"cardroom/internal/game"
)

var (
	ErrRoomNotFound = errors.New("Room not found")
	ErrRoomFull     = errors.New("Room is full")
)

// Room groups players before and during play. Host is always present in the
// member list while the room exists, and the room is deleted the instant the
// last member leaves. Deck and Game are bound on start and hidden from every
// serialized projection.
type Room struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	MaxPlayers  int                   `json:"maxPlayers"`
	GameType    string                `json:"gameType"`
	Host        internal.Player       `json:"host"`
	Players     []internal.RoomMember `json:"players"`
	GameStarted bool                  `json:"gameStarted"`
	CreatedAt   int64                 `json:"createdAt"`

	Deck *internal.Deck    `json:"-"`
	Game *game.ReduceCards `json:"-"`
}

// Member returns the member entry for a player id.
func (r *Room) Member(playerID string) (internal.RoomMember, bool) {
	for _, m := range r.Players {
		if m.ID == playerID {
			return m, true
		}
	}
	return internal.RoomMember{}, false
}

// Registry is the room repository.
type Registry struct {
	rooms map[string]*Room
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*Room)}
}

// CreateRoom makes a new room with host as its sole, host-flagged member.
// Blank name, zero/invalid capacity and blank game type fall back to
// defaults.
func (reg *Registry) CreateRoom(name string, maxPlayers int, gameType string, host internal.Player) *Room {
	id := uuid.NewString()
	if name == "" {
		name = "Room_" + id[:6]
	}
	if maxPlayers < internal.MinPlayersToStart {
		maxPlayers = internal.DefaultMaxPlayers
	}
	if gameType == "" {
		gameType = internal.GameTypeReduceCards
	}

	r := &Room{
		ID:         id,
		Name:       name,
		MaxPlayers: maxPlayers,
		GameType:   gameType,
		Host:       internal.Player{ID: host.ID, Name: host.Name},
		Players: []internal.RoomMember{
			{ID: host.ID, Name: host.Name, IsHost: true},
		},
		CreatedAt: time.Now().UnixMilli(),
	}
	reg.rooms[id] = r
	return r
}

func (reg *Registry) Get(roomID string) (*Room, bool) {
	r, ok := reg.rooms[roomID]
	return r, ok
}

// Summaries projects all rooms for lobby display.
func (reg *Registry) Summaries() []internal.RoomSummary {
	out := make([]internal.RoomSummary, 0, len(reg.rooms))
	for _, r := range reg.rooms {
		out = append(out, internal.RoomSummary{
			ID:             r.ID,
			Name:           r.Name,
			MaxPlayers:     r.MaxPlayers,
			CurrentPlayers: len(r.Players),
			GameType:       r.GameType,
			GameStarted:    r.GameStarted,
			Host:           r.Host,
		})
	}
	return out
}

// AddPlayer appends a non-host member, rejecting unknown or full rooms.
func (reg *Registry) AddPlayer(roomID string, player internal.Player) (*Room, error) {
	r, ok := reg.rooms[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	if len(r.Players) >= r.MaxPlayers {
		return nil, ErrRoomFull
	}
	r.Players = append(r.Players, internal.RoomMember{
		ID:   player.ID,
		Name: player.Name,
	})
	return r, nil
}

// RemovePlayer drops the member from the room. If the host left and members
// remain, the first remaining member becomes host. The (possibly empty)
// updated room is returned; deleting an empty room is the caller's job.
func (reg *Registry) RemovePlayer(roomID, playerID string) (*Room, bool) {
	r, ok := reg.rooms[roomID]
	if !ok {
		return nil, false
	}

	kept := r.Players[:0]
	for _, m := range r.Players {
		if m.ID != playerID {
			kept = append(kept, m)
		}
	}
	r.Players = kept

	if r.Host.ID == playerID && len(r.Players) > 0 {
		r.Players[0].IsHost = true
		r.Host = internal.Player{ID: r.Players[0].ID, Name: r.Players[0].Name}
	}
	return r, true
}

func (reg *Registry) Delete(roomID string) bool {
	if _, ok := reg.rooms[roomID]; !ok {
		return false
	}
	delete(reg.rooms, roomID)
	return true
}

// StartGame binds a freshly shuffled deck and a new game session to the room
// and deals. Calling it on a room whose previous round ended starts the next
// round; the old session is discarded, not revived.
func (reg *Registry) StartGame(roomID string) (*Room, *game.InitResult, error) {
	r, ok := reg.rooms[roomID]
	if !ok {
		return nil, nil, ErrRoomNotFound
	}

	r.GameStarted = true
	r.Deck = internal.NewDeck()

	if r.GameType == internal.GameTypeReduceCards {
		r.Game = game.New(func() []internal.RoomMember { return r.Players }, r.Deck)
		init := r.Game.Initialize()
		return r, &init, nil
	}
	return r, nil, nil
}

// Game returns the bound session for a room, nil when absent or not started.
func (reg *Registry) Game(roomID string) *game.ReduceCards {
	r, ok := reg.rooms[roomID]
	if !ok {
		return nil
	}
	return r.Game
}
