package lobby

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddDefaultsName(t *testing.T) {
	d := NewDirectory()

	p := d.Add("abcdef123", "")
	assert.Equal(t, "Player_abcdef", p.Name)

	p = d.Add("xy", "")
	assert.Equal(t, "Player_xy", p.Name)

	p = d.Add("abcdef123", "Alice")
	assert.Equal(t, "Alice", p.Name)
}

func TestAddIsIdempotent(t *testing.T) {
	d := NewDirectory()
	d.Add("a", "Alice")
	d.Add("b", "Bob")

	// Re-adding overwrites the entry but keeps its position.
	d.Add("a", "Alicia")

	require.Equal(t, 2, d.Count())
	players := d.Players()
	require.Len(t, players, 2)
	assert.Equal(t, "Alicia", players[0].Name)
	assert.Equal(t, "Bob", players[1].Name)
}

func TestRemove(t *testing.T) {
	d := NewDirectory()
	d.Add("a", "Alice")

	assert.True(t, d.Remove("a"))
	assert.False(t, d.Remove("a"))
	assert.Equal(t, 0, d.Count())

	_, ok := d.Get("a")
	assert.False(t, ok)
}

func TestPlayersOrder(t *testing.T) {
	d := NewDirectory()
	d.Add("a", "Alice")
	d.Add("b", "Bob")
	d.Add("c", "Carol")
	d.Remove("b")

	players := d.Players()
	require.Len(t, players, 2)
	assert.Equal(t, "a", players[0].ID)
	assert.Equal(t, "c", players[1].ID)
}
