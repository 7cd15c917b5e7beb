package main

import (
	"math/rand"
	"slices"
)

const (
	unoHandSize   = 7
	unoMinPlayers = 2

	// Fourteen players consume 98 cards in the deal, leaving ten for the
	// seed reveal; at most eight of those can be wilds, so a seed card is
	// always found.
	unoMaxPlayers = 14
)

// unoGame holds one game's full card state. Cards only ever move between
// the deck, the discard pile, and player hands, so their multiset union
// stays the complete 108-card set for the life of the game.
type unoGame struct {
	deck      []Card
	discard   []Card // most recent last
	hands     map[string][]Card
	order     []string // membership snapshot taken at start
	current   int
	direction int
	color     Color
	value     string
	finished  bool

	rng *rand.Rand
}

func newUnoGame(rng *rand.Rand) *unoGame {
	return &unoGame{
		hands:     make(map[string][]Card),
		direction: 1,
		rng:       rng,
	}
}

func (g *unoGame) kind() GameKind {
	return GameUNO
}

// initialize shuffles a fresh deck, deals seven cards to each member in
// turn order, then reveals cards from the deck top until a non-wild seeds
// the active color and value. Revealed wilds stay on the discard pile
// beneath the seed card rather than returning to the deck.
func (g *unoGame) initialize(members []string) {
	g.deck = newDeck()
	shuffleDeck(g.deck, g.rng)

	g.discard = nil
	g.order = slices.Clone(members)
	g.hands = make(map[string][]Card, len(members))
	g.current = 0
	g.direction = 1
	g.finished = false

	for _, id := range g.order {
		hand := make([]Card, 0, unoHandSize)
		for i := 0; i < unoHandSize; i++ {
			hand = append(hand, g.pop())
		}
		g.hands[id] = hand
	}

	for {
		card := g.pop()
		g.discard = append(g.discard, card)
		if !card.isWild() {
			g.color = card.Color
			g.value = card.Value
			break
		}
	}
}

func (g *unoGame) started() bool {
	return len(g.order) > 0
}

func (g *unoGame) inProgress() bool {
	return g.started() && !g.finished
}

// pop removes and returns the top card of the deck. Callers must check
// the deck is non-empty; only drawCard ever runs it near exhaustion.
func (g *unoGame) pop() Card {
	card := g.deck[len(g.deck)-1]
	g.deck = g.deck[:len(g.deck)-1]
	return card
}

func (g *unoGame) advance() {
	n := len(g.order)
	if n == 0 {
		return
	}
	g.current = (g.current + g.direction + n) % n
}

func (g *unoGame) currentPlayer() string {
	if len(g.order) == 0 {
		return ""
	}
	return g.order[g.current]
}

func (g *unoGame) nextPlayer() string {
	n := len(g.order)
	if n == 0 {
		return ""
	}
	return g.order[(g.current+g.direction+n)%n]
}

type playOutcome struct {
	ok     bool
	reason string
	forced string // player made to draw by drawTwo/wildDrawFour, if any
}

// playCard validates and applies one play. Rejections happen before any
// state changes, so a failed play leaves the game untouched.
func (g *unoGame) playCard(player string, card Card, chosenColor Color) playOutcome {
	hand, ok := g.hands[player]
	if !ok {
		return playOutcome{reason: "you are not in this game"}
	}

	idx := slices.Index(hand, card)
	if idx == -1 {
		return playOutcome{reason: "you do not have that card"}
	}

	if !playable(card, g.color, g.value) {
		return playOutcome{reason: "that card cannot be played now"}
	}

	if card.isWild() && !validColor(chosenColor) {
		return playOutcome{reason: "you must choose a color for that card"}
	}

	g.hands[player] = append(hand[:idx], hand[idx+1:]...)
	g.discard = append(g.discard, card)

	if card.isWild() {
		g.color = chosenColor
	} else {
		g.color = card.Color
	}
	g.value = card.Value

	out := playOutcome{ok: true}

	switch card.Kind {
	case KindSkip:
		g.advance()
	case KindReverse:
		g.direction = -g.direction
		// Reversing a two-player cycle lands back on the player who
		// reversed, so it behaves exactly like a skip.
		if len(g.order) == 2 {
			g.advance()
		}
	case KindDrawTwo:
		out.forced = g.nextPlayer()
		g.drawCards(out.forced, 2)
		g.advance()
	case KindWildDrawFour:
		out.forced = g.nextPlayer()
		g.drawCards(out.forced, 4)
		g.advance()
	}

	g.advance()

	return out
}

// drawCard moves the top deck card into the player's hand. An empty deck
// is rebuilt once from the discard pile (all but its top card) and the
// draw retried exactly once; if the discard is down to a single card too,
// the draw is a no-op.
func (g *unoGame) drawCard(player string) (Card, bool) {
	hand, ok := g.hands[player]
	if !ok {
		return Card{}, false
	}

	if len(g.deck) == 0 {
		g.reshuffleDiscard()
	}
	if len(g.deck) == 0 {
		return Card{}, false
	}

	card := g.pop()
	g.hands[player] = append(hand, card)

	return card, true
}

func (g *unoGame) drawCards(player string, count int) {
	for i := 0; i < count; i++ {
		if _, ok := g.drawCard(player); !ok {
			return
		}
	}
}

// reshuffleDiscard turns the discard pile, minus its top card, back into
// the deck.
func (g *unoGame) reshuffleDiscard() {
	if len(g.discard) <= 1 {
		return
	}

	top := g.discard[len(g.discard)-1]
	g.deck = append(g.deck, g.discard[:len(g.discard)-1]...)
	g.discard = []Card{top}
	shuffleDeck(g.deck, g.rng)
}

func (g *unoGame) checkWinner(player string) bool {
	hand, ok := g.hands[player]
	return ok && len(hand) == 0
}

// dropPlayer discards the player's hand and compacts the turn order,
// keeping the turn pointer on a valid remaining player.
func (g *unoGame) dropPlayer(player string) {
	delete(g.hands, player)

	idx := slices.Index(g.order, player)
	if idx == -1 {
		return
	}

	g.order = slices.Delete(g.order, idx, idx+1)

	if g.current >= idx {
		g.current--
		if g.current < 0 {
			g.current = 0
		}
	}
}

func (g *unoGame) hand(player string) []Card {
	return slices.Clone(g.hands[player])
}

func (g *unoGame) topCard() Card {
	return g.discard[len(g.discard)-1]
}

type unoPlayerView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	HandCount int    `json:"handCount"`
}

type unoSnapshot struct {
	CurrentColor  Color           `json:"currentColor"`
	CurrentValue  string          `json:"currentValue"`
	TopCard       Card            `json:"topCard"`
	Players       []unoPlayerView `json:"players"`
	CurrentPlayer string          `json:"currentPlayer"`
}

// snapshot is the externally visible game state: hand counts only, never
// hand contents.
func (g *unoGame) snapshot(names map[string]string) unoSnapshot {
	players := make([]unoPlayerView, 0, len(g.order))
	for _, id := range g.order {
		players = append(players, unoPlayerView{
			ID:        id,
			Name:      names[id],
			HandCount: len(g.hands[id]),
		})
	}

	return unoSnapshot{
		CurrentColor:  g.color,
		CurrentValue:  g.value,
		TopCard:       g.topCard(),
		Players:       players,
		CurrentPlayer: g.currentPlayer(),
	}
}
