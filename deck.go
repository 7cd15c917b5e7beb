/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package main

import (
	"math/rand"
)

// Color is a card color. ColorNone is reserved for wild cards in the deck;
// once a wild is played, the active color is whatever its player chose.
type Color string

const (
	ColorRed    Color = "red"
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
	ColorNone   Color = "none"
)

var deckColors = [...]Color{ColorRed, ColorYellow, ColorGreen, ColorBlue}

func validColor(c Color) bool {
	for _, dc := range deckColors {
		if c == dc {
			return true
		}
	}
	return false
}

type Kind string

const (
	KindNumber       Kind = "number"
	KindSkip         Kind = "skip"
	KindReverse      Kind = "reverse"
	KindDrawTwo      Kind = "drawTwo"
	KindWild         Kind = "wild"
	KindWildDrawFour Kind = "wildDrawFour"
)

// Card values are strings so that action cards match each other by value
// ("skip" on "skip") the same way number cards do.
type Card struct {
	Color Color  `json:"color"`
	Value string `json:"value"`
	Kind  Kind   `json:"kind"`
}

func (c Card) isWild() bool {
	return c.Kind == KindWild || c.Kind == KindWildDrawFour
}

// playable reports whether a card may be placed on the given active color
// and value. Wilds are always playable; there is no requirement to hold a
// matching card before playing one.
func playable(c Card, color Color, value string) bool {
	return c.isWild() || c.Color == color || c.Value == value
}

const deckSize = 108

// newDeck builds the full 108-card set: per color one 0, two each of 1-9,
// two skips, two reverses, two draw-twos, plus four wilds and four wild
// draw-fours.
func newDeck() []Card {
	deck := make([]Card, 0, deckSize)

	for _, color := range deckColors {
		for n := '0'; n <= '9'; n++ {
			deck = append(deck, Card{Color: color, Value: string(n), Kind: KindNumber})
			if n != '0' {
				deck = append(deck, Card{Color: color, Value: string(n), Kind: KindNumber})
			}
		}

		for i := 0; i < 2; i++ {
			deck = append(deck, Card{Color: color, Value: "skip", Kind: KindSkip})
			deck = append(deck, Card{Color: color, Value: "reverse", Kind: KindReverse})
			deck = append(deck, Card{Color: color, Value: "drawTwo", Kind: KindDrawTwo})
		}
	}

	for i := 0; i < 4; i++ {
		deck = append(deck, Card{Color: ColorNone, Value: "wild", Kind: KindWild})
		deck = append(deck, Card{Color: ColorNone, Value: "wildDrawFour", Kind: KindWildDrawFour})
	}

	return deck
}

// shuffleDeck performs a Fisher-Yates shuffle in place.
func shuffleDeck(deck []Card, rng *rand.Rand) {
	for i := len(deck) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
}
