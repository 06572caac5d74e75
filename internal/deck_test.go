package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeck(t *testing.T) {
	d := NewDeck()
	require.Equal(t, DeckSize, d.Count())

	seen := make(map[string]bool)
	jokers := 0
	for _, c := range d.cards {
		assert.False(t, seen[c.ID], "duplicate card id %s", c.ID)
		seen[c.ID] = true
		if c.Suit == SuitJoker {
			jokers++
			assert.Equal(t, "Joker", c.Rank)
			assert.Equal(t, 0, c.Value)
		}
	}
	assert.Equal(t, 2, jokers)
}

func TestCardValues(t *testing.T) {
	assert.Equal(t, 1, RankValue("A"))
	assert.Equal(t, 10, RankValue("10"))
	assert.Equal(t, 11, RankValue("J"))
	assert.Equal(t, 13, RankValue("K"))
	assert.Equal(t, 0, RankValue("Joker"))
}

func TestShufflePreservesCards(t *testing.T) {
	d := NewDeck()
	before := make(map[string]bool, d.Count())
	for _, c := range d.cards {
		before[c.ID] = true
	}

	d.Shuffle()

	require.Equal(t, DeckSize, d.Count())
	for _, c := range d.cards {
		assert.True(t, before[c.ID], "shuffle invented card %s", c.ID)
	}
}

func TestDraw(t *testing.T) {
	d := NewDeck()

	hand := d.Draw(5)
	assert.Len(t, hand, 5)
	assert.Equal(t, 49, d.Count())

	// Asking for more than remains returns what is left.
	rest := d.Draw(100)
	assert.Len(t, rest, 49)
	assert.Equal(t, 0, d.Count())
}

func TestDrawOne(t *testing.T) {
	d := NewDeck()
	top := d.Peek(1)[0]

	c, ok := d.DrawOne()
	require.True(t, ok)
	assert.Equal(t, top.ID, c.ID)
	assert.Equal(t, DeckSize-1, d.Count())

	d.Draw(d.Count())
	_, ok = d.DrawOne()
	assert.False(t, ok)
}

func TestPeekDoesNotMutate(t *testing.T) {
	d := NewDeck()
	d.Peek(10)
	assert.Equal(t, DeckSize, d.Count())
}
