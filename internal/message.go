package internal

// Message is the websocket envelope. Inbound messages are first parsed with
// T = json.RawMessage and re-decoded per type.
type Message[T any] struct {
	Type string `json:"type"`
	Data T      `json:"data"`
}

// Inbound payloads.

type CreateRoomData struct {
	RoomName   string `json:"roomName"`
	MaxPlayers int    `json:"maxPlayers"`
	GameType   string `json:"gameType"`
}

type DropCardsData struct {
	RoomID       string   `json:"roomId"`
	CardIDs      []string `json:"cardIds"`
	TakeFromDeck bool     `json:"takeFromDeck"`
}

// RoomIDData covers show_cards and play_again, which only name a room.
type RoomIDData struct {
	RoomID string `json:"roomId"`
}

type SignupData struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email,omitempty"`
}

type LoginData struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Outbound payloads that do not depend on room or game state.

type ErrorData struct {
	Message string `json:"message"`
}

type ConnectedData struct {
	PlayerID string `json:"playerId"`
}

type LobbyJoinedData struct {
	PlayerID   string        `json:"playerId"`
	PlayerName string        `json:"playerName"`
	Rooms      []RoomSummary `json:"rooms"`
}

type LobbyUpdateData struct {
	Players []Player      `json:"players"`
	Rooms   []RoomSummary `json:"rooms"`
}

type ReturnedToLobbyData struct {
	Rooms []RoomSummary `json:"rooms"`
}
