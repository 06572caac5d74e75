// Package game implements the reduce-cards ruleset: each player holds a hand
// of five cards and tries to shrink its point value by swapping cards through
// the discard pile, until someone calls a showdown.
package game

import (
	"errors"
	"fmt"

	"cardroom/internal"
)

// Validation errors surfaced verbatim to the acting connection.
var (
	ErrGameNotActive = errors.New("Game has already ended")
	ErrNotYourTurn   = errors.New("Not your turn")
	ErrInvalidCards  = errors.New("Invalid cards")
	ErrRankMismatch  = errors.New("Cards must have the same rank")
)

// ReduceCards is one game session bound to a room. It reads the member list
// through a callback so that players leaving the room are reflected in turn
// rotation immediately.
//
// All methods assume the caller serializes access; the session is owned by
// the hub's event loop and must never be touched from two goroutines. In
// particular DropCards relocates the previous discard top from beneath the
// freshly dropped cards, which is only sound because nothing else can touch
// the pile in between.
type ReduceCards struct {
	members func() []internal.RoomMember
	deck    *internal.Deck

	phase   internal.GamePhase
	hands   map[string][]internal.Card
	discard []internal.Card
	turn    int
	winner  string
	loser   string
}

// New binds a session to a member list and a fresh deck. The session stays in
// the dealing phase until Initialize is called.
func New(members func() []internal.RoomMember, deck *internal.Deck) *ReduceCards {
	return &ReduceCards{
		members: members,
		deck:    deck,
		phase:   internal.PhaseDealing,
		hands:   make(map[string][]internal.Card),
	}
}

// InitResult is the combined public+private state right after the deal. Hands
// are included so the caller can deliver each one privately; it must never be
// broadcast whole.
type InitResult struct {
	PlayerHands   map[string][]internal.Card `json:"playerHands"`
	TopCard       internal.Card              `json:"topCard"`
	CurrentPlayer string                     `json:"currentPlayer"`
	DeckCount     int                        `json:"deckCount"`
}

// DropResult describes one applied move.
type DropResult struct {
	DroppedCards []internal.Card `json:"droppedCards"`
	CardTaken    *internal.Card  `json:"cardTaken"`
	TopCard      internal.Card   `json:"topCard"`
	NextPlayer   string          `json:"nextPlayer"`
	DeckCount    int             `json:"deckCount"`
}

// PlayerResult is one player's revealed hand at showdown.
type PlayerResult struct {
	PlayerID   string          `json:"playerId"`
	PlayerName string          `json:"playerName"`
	Hand       []internal.Card `json:"hand"`
	Value      int             `json:"value"`
}

// ShowdownResult is the outcome of ShowCards. Exactly one of Winner/Loser is
// set: the caller wins unless some other player holds a strictly lower hand.
type ShowdownResult struct {
	Results []PlayerResult `json:"results"`
	Winner  string         `json:"winner,omitempty"`
	Loser   string         `json:"loser,omitempty"`
	Message string         `json:"message"`
}

// PublicState is the room-wide projection: hand counts only, never other
// players' cards.
type PublicState struct {
	HandCounts    map[string]int `json:"handCounts"`
	TopCard       internal.Card  `json:"topCard"`
	CurrentPlayer string         `json:"currentPlayer"`
	DeckCount     int            `json:"deckCount"`
	GameStarted   bool           `json:"gameStarted"`
	GameEnded     bool           `json:"gameEnded"`
}

// Initialize shuffles the deck, deals five cards to every member in join
// order, flips one card to start the discard pile and hands the turn to the
// first member.
func (g *ReduceCards) Initialize() InitResult {
	g.deck.Shuffle()

	members := g.members()
	for _, m := range members {
		g.hands[m.ID] = g.deck.Draw(internal.HandSize)
	}

	first, _ := g.deck.DrawOne()
	g.discard = append(g.discard, first)

	g.phase = internal.PhaseInProgress
	g.turn = 0

	return InitResult{
		PlayerHands:   g.hands,
		TopCard:       first,
		CurrentPlayer: members[0].ID,
		DeckCount:     g.deck.Count(),
	}
}

// CurrentPlayer returns the member whose turn it is. The index is reduced
// modulo the live member count so departures never leave it dangling.
func (g *ReduceCards) CurrentPlayer() internal.RoomMember {
	members := g.members()
	return members[g.turn%len(members)]
}

// TopCard returns the top of the discard pile.
func (g *ReduceCards) TopCard() internal.Card {
	return g.discard[len(g.discard)-1]
}

// DropCards applies one move for playerID: discard the named cards and, per
// the replenishment rule, draw a replacement from the deck or take the
// previous discard top. On success the turn always advances to the next
// member.
func (g *ReduceCards) DropCards(playerID string, cardIDs []string, takeFromDeck bool) (DropResult, error) {
	if g.phase != internal.PhaseInProgress {
		return DropResult{}, ErrGameNotActive
	}
	if g.CurrentPlayer().ID != playerID {
		return DropResult{}, ErrNotYourTurn
	}

	hand := g.hands[playerID]
	wanted := make(map[string]bool, len(cardIDs))
	for _, id := range cardIDs {
		wanted[id] = true
	}
	drops := make([]internal.Card, 0, len(cardIDs))
	for _, c := range hand {
		if wanted[c.ID] {
			drops = append(drops, c)
		}
	}
	if len(drops) != len(cardIDs) {
		return DropResult{}, ErrInvalidCards
	}
	if !sameRank(drops) {
		return DropResult{}, ErrRankMismatch
	}

	previousTop := g.TopCard()

	kept := make([]internal.Card, 0, len(hand)-len(drops))
	for _, c := range hand {
		if !wanted[c.ID] {
			kept = append(kept, c)
		}
	}
	hand = kept
	g.discard = append(g.discard, drops...)

	var taken *internal.Card
	if len(drops) == 1 && drops[0].Rank == previousTop.Rank {
		// Matched the pile: the hand shrinks by one, no replacement.
	} else if takeFromDeck {
		if c, ok := g.deck.DrawOne(); ok {
			hand = append(hand, c)
			taken = &c
		}
	} else {
		// Take the card that was on top before this drop. It now sits
		// beneath the freshly dropped cards.
		if i := len(g.discard) - len(drops) - 1; i >= 0 {
			c := g.discard[i]
			g.discard = append(g.discard[:i], g.discard[i+1:]...)
			hand = append(hand, c)
			taken = &c
		}
	}

	g.hands[playerID] = hand
	g.turn = (g.turn + 1) % len(g.members())

	return DropResult{
		DroppedCards: drops,
		CardTaken:    taken,
		TopCard:      g.TopCard(),
		NextPlayer:   g.CurrentPlayer().ID,
		DeckCount:    g.deck.Count(),
	}, nil
}

// ShowCards ends the round: the caller wins unless any other player's hand
// value is strictly lower, in which case the caller loses. Equal values do
// not count against the caller.
func (g *ReduceCards) ShowCards(playerID string) (ShowdownResult, error) {
	if g.phase != internal.PhaseInProgress {
		return ShowdownResult{}, ErrGameNotActive
	}
	if g.CurrentPlayer().ID != playerID {
		return ShowdownResult{}, ErrNotYourTurn
	}

	callerValue := HandValue(g.hands[playerID])
	callerName := playerID

	members := g.members()
	results := make([]PlayerResult, 0, len(members))
	hasLower := false
	for _, m := range members {
		value := HandValue(g.hands[m.ID])
		results = append(results, PlayerResult{
			PlayerID:   m.ID,
			PlayerName: m.Name,
			Hand:       g.hands[m.ID],
			Value:      value,
		})
		if m.ID == playerID {
			callerName = m.Name
		} else if value < callerValue {
			hasLower = true
		}
	}

	g.phase = internal.PhaseEnded

	if hasLower {
		g.loser = playerID
		return ShowdownResult{
			Results: results,
			Loser:   playerID,
			Message: fmt.Sprintf("%s lost! Someone has a lower value.", callerName),
		}, nil
	}
	g.winner = playerID
	return ShowdownResult{
		Results: results,
		Winner:  playerID,
		Message: fmt.Sprintf("%s wins!", callerName),
	}, nil
}

// PublicState projects the session for room-wide broadcast.
func (g *ReduceCards) PublicState() PublicState {
	handCounts := make(map[string]int, len(g.hands))
	for id, hand := range g.hands {
		handCounts[id] = len(hand)
	}
	return PublicState{
		HandCounts:    handCounts,
		TopCard:       g.TopCard(),
		CurrentPlayer: g.CurrentPlayer().ID,
		DeckCount:     g.deck.Count(),
		GameStarted:   g.phase != internal.PhaseDealing,
		GameEnded:     g.phase == internal.PhaseEnded,
	}
}

// PlayerHand returns the private hand for one player, empty if unknown.
func (g *ReduceCards) PlayerHand(playerID string) []internal.Card {
	return g.hands[playerID]
}

// Phase exposes the session lifecycle state.
func (g *ReduceCards) Phase() internal.GamePhase {
	return g.phase
}

// Winner returns the declared winner, empty when the round had none.
func (g *ReduceCards) Winner() string {
	return g.winner
}

// HandValue sums card values; jokers contribute zero.
func HandValue(hand []internal.Card) int {
	sum := 0
	for _, c := range hand {
		sum += c.Value
	}
	return sum
}

func sameRank(cards []internal.Card) bool {
	if len(cards) == 0 {
		return false
	}
	first := cards[0].Rank
	for _, c := range cards[1:] {
		if c.Rank != first {
			return false
		}
	}
	return true
}
