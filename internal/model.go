package internal

const (
	DefaultMaxPlayers = 4
	MinPlayersToStart = 2
	HandSize          = 5

	GameTypeReduceCards = "reduceCards"
)

// GamePhase is the lifecycle of one game session. Dealing is transient
// (inside initialization); Ended is terminal - restarting a room builds a
// fresh session rather than reviving the old one.
type GamePhase string

const (
	PhaseDealing    GamePhase = "dealing"
	PhaseInProgress GamePhase = "in_progress"
	PhaseEnded      GamePhase = "ended"
)

// Player is a session-scoped identity: it exists only while the connection is
// alive. Persisted accounts are a separate concept owned by the identity
// store.
type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	JoinedAt int64  `json:"joinedAt,omitempty"`
}

// RoomMember is a player as seen inside a room's member list.
type RoomMember struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	IsHost bool   `json:"isHost"`
}

// RoomSummary is the lobby-facing projection of a room. It hides hands,
// discard pile and supply internals.
type RoomSummary struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	MaxPlayers     int    `json:"maxPlayers"`
	CurrentPlayers int    `json:"currentPlayers"`
	GameType       string `json:"gameType"`
	GameStarted    bool   `json:"gameStarted"`
	Host           Player `json:"host"`
}
