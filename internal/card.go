package internal

import "fmt"

type Suit string

const (
	SuitHearts   Suit = "hearts"
	SuitDiamonds Suit = "diamonds"
	SuitClubs    Suit = "clubs"
	SuitSpades   Suit = "spades"
	SuitJoker    Suit = "joker"
)

// Card is an immutable playing card. The ID is stable for the lifetime of a
// deck ("A_hearts", "10_spades", "joker_1") and is what clients send back
// when playing cards.
type Card struct {
	Suit  Suit   `json:"suit"`
	Rank  string `json:"rank"`
	Value int    `json:"value"`
	ID    string `json:"id"`
	Color string `json:"color,omitempty"`
}

var suits = []Suit{SuitHearts, SuitDiamonds, SuitClubs, SuitSpades}

var ranks = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

var rankValues = map[string]int{
	"A": 1, "2": 2, "3": 3, "4": 4, "5": 5, "6": 6, "7": 7,
	"8": 8, "9": 9, "10": 10, "J": 11, "Q": 12, "K": 13,
}

// RankValue returns the point value of a rank. Unknown ranks (including
// "Joker") are worth 0.
func RankValue(rank string) int {
	return rankValues[rank]
}

func newCards() []Card {
	cards := make([]Card, 0, 54)
	for _, suit := range suits {
		for _, rank := range ranks {
			cards = append(cards, Card{
				Suit:  suit,
				Rank:  rank,
				Value: RankValue(rank),
				ID:    fmt.Sprintf("%s_%s", rank, suit),
			})
		}
	}

	cards = append(cards,
		Card{Suit: SuitJoker, Rank: "Joker", Value: 0, ID: "joker_1", Color: "red"},
		Card{Suit: SuitJoker, Rank: "Joker", Value: 0, ID: "joker_2", Color: "black"},
	)
	return cards
}
