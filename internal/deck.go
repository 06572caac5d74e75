package internal

import "math/rand"

// DeckSize is the number of cards in a fresh deck: 52 ranked cards plus two
// jokers.
const DeckSize = 54

// Deck is the face-down card supply for one round. Cards only ever leave it
// through Draw/DrawOne, so a card removed here must reappear in a hand or on
// the discard pile.
type Deck struct {
	cards []Card
}

// NewDeck returns an unshuffled 54-card deck.
func NewDeck() *Deck {
	return &Deck{cards: newCards()}
}

// Shuffle permutes the remaining cards in place (Fisher-Yates).
func (d *Deck) Shuffle() {
	rand.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the first n cards. If fewer than n remain, the
// remainder is returned.
func (d *Deck) Draw(n int) []Card {
	if n > len(d.cards) {
		n = len(d.cards)
	}
	drawn := make([]Card, n)
	copy(drawn, d.cards[:n])
	d.cards = d.cards[n:]
	return drawn
}

// DrawOne removes and returns the front card. ok is false when the deck is
// empty.
func (d *Deck) DrawOne() (card Card, ok bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	card = d.cards[0]
	d.cards = d.cards[1:]
	return card, true
}

// Peek returns the first n cards without removing them.
func (d *Deck) Peek(n int) []Card {
	if n > len(d.cards) {
		n = len(d.cards)
	}
	out := make([]Card, n)
	copy(out, d.cards[:n])
	return out
}

func (d *Deck) Count() int {
	return len(d.cards)
}
