package main

import (
	"math/rand"
	"testing"
)

func TestNewDeckComposition(t *testing.T) {
	deck := newDeck()

	if len(deck) != deckSize {
		t.Fatalf("deck has %d cards, want %d", len(deck), deckSize)
	}

	kinds := make(map[Kind]int)
	colors := make(map[Color]int)
	for _, c := range deck {
		kinds[c.Kind]++
		colors[c.Color]++
	}

	wantKinds := map[Kind]int{
		KindNumber:       76,
		KindSkip:         8,
		KindReverse:      8,
		KindDrawTwo:      8,
		KindWild:         4,
		KindWildDrawFour: 4,
	}
	for kind, want := range wantKinds {
		if kinds[kind] != want {
			t.Errorf("kind %s: got %d, want %d", kind, kinds[kind], want)
		}
	}

	for _, color := range deckColors {
		if colors[color] != 25 {
			t.Errorf("color %s: got %d cards, want 25", color, colors[color])
		}
	}
	if colors[ColorNone] != 8 {
		t.Errorf("wild cards: got %d, want 8", colors[ColorNone])
	}

	zeroes := 0
	for _, c := range deck {
		if c.Kind == KindNumber && c.Value == "0" {
			zeroes++
		}
	}
	if zeroes != 4 {
		t.Errorf("zero cards: got %d, want 4", zeroes)
	}
}

func TestShuffleDeckPreservesCards(t *testing.T) {
	deck := newDeck()
	shuffleDeck(deck, rand.New(rand.NewSource(42)))

	if len(deck) != deckSize {
		t.Fatalf("shuffle changed deck size to %d", len(deck))
	}

	counts := make(map[Card]int)
	for _, c := range deck {
		counts[c]++
	}
	for c, got := range cardMultiset(newDeck()) {
		if counts[c] != got {
			t.Errorf("card %v: got %d copies after shuffle, want %d", c, counts[c], got)
		}
	}
}

func TestPlayable(t *testing.T) {
	tests := []struct {
		name  string
		card  Card
		color Color
		value string
		want  bool
	}{
		{"color match", Card{ColorRed, "3", KindNumber}, ColorRed, "7", true},
		{"value match", Card{ColorBlue, "7", KindNumber}, ColorRed, "7", true},
		{"action value match", Card{ColorBlue, "skip", KindSkip}, ColorRed, "skip", true},
		{"no match", Card{ColorBlue, "3", KindNumber}, ColorRed, "7", false},
		{"wild always", Card{ColorNone, "wild", KindWild}, ColorRed, "7", true},
		{"wild draw four always", Card{ColorNone, "wildDrawFour", KindWildDrawFour}, ColorRed, "7", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := playable(tc.card, tc.color, tc.value); got != tc.want {
				t.Errorf("playable(%v, %s, %s) = %v, want %v", tc.card, tc.color, tc.value, got, tc.want)
			}
		})
	}
}

// cardMultiset counts copies of each distinct card.
func cardMultiset(cards []Card) map[Card]int {
	counts := make(map[Card]int)
	for _, c := range cards {
		counts[c]++
	}
	return counts
}
