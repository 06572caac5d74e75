package room

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardroom/internal"
)

func host() internal.Player {
	return internal.Player{ID: "host-1", Name: "Helga"}
}

func TestCreateRoomDefaults(t *testing.T) {
	reg := NewRegistry()

	r := reg.CreateRoom("", 0, "", host())

	assert.True(t, strings.HasPrefix(r.Name, "Room_"))
	assert.Equal(t, internal.DefaultMaxPlayers, r.MaxPlayers)
	assert.Equal(t, internal.GameTypeReduceCards, r.GameType)
	assert.False(t, r.GameStarted)
	assert.Equal(t, "host-1", r.Host.ID)

	require.Len(t, r.Players, 1)
	assert.True(t, r.Players[0].IsHost)
	assert.Equal(t, "host-1", r.Players[0].ID)
}

func TestCreateRoomExplicit(t *testing.T) {
	reg := NewRegistry()

	r := reg.CreateRoom("poker night", 2, internal.GameTypeReduceCards, host())

	assert.Equal(t, "poker night", r.Name)
	assert.Equal(t, 2, r.MaxPlayers)

	// A capacity below the minimum player count is treated as unspecified.
	r = reg.CreateRoom("", 1, "", host())
	assert.Equal(t, internal.DefaultMaxPlayers, r.MaxPlayers)
}

func TestAddPlayer(t *testing.T) {
	reg := NewRegistry()
	r := reg.CreateRoom("", 2, "", host())

	_, err := reg.AddPlayer("nope", internal.Player{ID: "p2"})
	assert.ErrorIs(t, err, ErrRoomNotFound)

	updated, err := reg.AddPlayer(r.ID, internal.Player{ID: "p2", Name: "Pam"})
	require.NoError(t, err)
	require.Len(t, updated.Players, 2)
	assert.False(t, updated.Players[1].IsHost)

	// Room is at capacity now; membership must stay untouched.
	_, err = reg.AddPlayer(r.ID, internal.Player{ID: "p3"})
	assert.ErrorIs(t, err, ErrRoomFull)
	assert.Len(t, r.Players, 2)
}

func TestRemovePlayerHostContinuity(t *testing.T) {
	reg := NewRegistry()
	r := reg.CreateRoom("", 4, "", host())
	reg.AddPlayer(r.ID, internal.Player{ID: "p2", Name: "Pam"})
	reg.AddPlayer(r.ID, internal.Player{ID: "p3", Name: "Pat"})

	// Removing a non-host never changes the host.
	updated, ok := reg.RemovePlayer(r.ID, "p3")
	require.True(t, ok)
	assert.Equal(t, "host-1", updated.Host.ID)

	// Removing the host promotes the first remaining member.
	updated, ok = reg.RemovePlayer(r.ID, "host-1")
	require.True(t, ok)
	assert.Equal(t, "p2", updated.Host.ID)
	require.Len(t, updated.Players, 1)
	assert.True(t, updated.Players[0].IsHost)

	// Removing the last member leaves an empty room for the caller to delete.
	updated, ok = reg.RemovePlayer(r.ID, "p2")
	require.True(t, ok)
	assert.Empty(t, updated.Players)
	assert.True(t, reg.Delete(r.ID))
	_, found := reg.Get(r.ID)
	assert.False(t, found)
}

func TestRemovePlayerUnknownRoom(t *testing.T) {
	reg := NewRegistry()
	_, ok := reg.RemovePlayer("nope", "p1")
	assert.False(t, ok)
}

func TestSummaries(t *testing.T) {
	reg := NewRegistry()
	r := reg.CreateRoom("table", 3, "", host())
	reg.AddPlayer(r.ID, internal.Player{ID: "p2", Name: "Pam"})

	summaries := reg.Summaries()
	require.Len(t, summaries, 1)
	s := summaries[0]
	assert.Equal(t, r.ID, s.ID)
	assert.Equal(t, "table", s.Name)
	assert.Equal(t, 3, s.MaxPlayers)
	assert.Equal(t, 2, s.CurrentPlayers)
	assert.Equal(t, internal.GameTypeReduceCards, s.GameType)
	assert.False(t, s.GameStarted)
	assert.Equal(t, "host-1", s.Host.ID)
}

func TestStartGame(t *testing.T) {
	reg := NewRegistry()

	_, _, err := reg.StartGame("nope")
	assert.ErrorIs(t, err, ErrRoomNotFound)

	r := reg.CreateRoom("", 4, "", host())
	reg.AddPlayer(r.ID, internal.Player{ID: "p2", Name: "Pam"})

	started, init, err := reg.StartGame(r.ID)
	require.NoError(t, err)
	require.NotNil(t, init)
	assert.True(t, started.GameStarted)
	require.NotNil(t, started.Game)

	// 54 cards minus two hands of five minus the flipped starter.
	assert.Equal(t, 43, init.DeckCount)
	require.Len(t, init.PlayerHands, 2)
	assert.Len(t, init.PlayerHands["host-1"], internal.HandSize)
	assert.Len(t, init.PlayerHands["p2"], internal.HandSize)
	assert.Equal(t, "host-1", init.CurrentPlayer)

	// Play again binds a fresh session; the old one stays ended.
	old := started.Game
	_, err2 := old.ShowCards("host-1")
	require.NoError(t, err2)

	restarted, init, err := reg.StartGame(r.ID)
	require.NoError(t, err)
	require.NotNil(t, init)
	assert.NotSame(t, old, restarted.Game)
	assert.Equal(t, internal.PhaseEnded, old.Phase())
	assert.Equal(t, internal.PhaseInProgress, restarted.Game.Phase())
}
