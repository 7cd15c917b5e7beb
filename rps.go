package main

type Choice string

const (
	ChoiceRock     Choice = "rock"
	ChoicePaper    Choice = "paper"
	ChoiceScissors Choice = "scissors"
)

func validChoice(c Choice) bool {
	return c == ChoiceRock || c == ChoicePaper || c == ChoiceScissors
}

// beats maps each choice to the one it defeats.
var beats = map[Choice]Choice{
	ChoiceRock:     ChoiceScissors,
	ChoiceScissors: ChoicePaper,
	ChoicePaper:    ChoiceRock,
}

// rpsWinners resolves one round of simultaneous choices. With one or
// three distinct choices the round is a tie; with exactly two, everyone
// who picked the dominating choice wins.
func rpsWinners(choices map[string]Choice) []string {
	distinct := make(map[Choice]bool, 3)
	for _, c := range choices {
		distinct[c] = true
	}

	if len(distinct) != 2 {
		return nil
	}

	var winning Choice
	for c := range distinct {
		if distinct[beats[c]] {
			winning = c
			break
		}
	}

	winners := make([]string, 0, len(choices))
	for player, c := range choices {
		if c == winning {
			winners = append(winners, player)
		}
	}

	return winners
}

// rpsGame runs rounds of rock-paper-scissors for one room. A game ends
// either when a player reaches the target score or after a fixed number
// of rounds, per the room settings.
type rpsGame struct {
	collecting bool
	round      int
	choices    map[string]Choice
	scores     map[string]int
}

func newRPSGame() *rpsGame {
	return &rpsGame{
		round:   1,
		choices: make(map[string]Choice),
		scores:  make(map[string]int),
	}
}

func (g *rpsGame) kind() GameKind {
	return GameRPS
}

func (g *rpsGame) addPlayer(player string) {
	g.scores[player] = 0
}

func (g *rpsGame) dropPlayer(player string) {
	delete(g.choices, player)
	delete(g.scores, player)
}

// startRound opens choice collection, clearing any previous round.
func (g *rpsGame) startRound() {
	g.collecting = true
	g.choices = make(map[string]Choice)
}

// submitChoice records a player's choice. A second submission in the same
// round is ignored rather than rejected, as is any choice made before the
// game has started.
func (g *rpsGame) submitChoice(player string, choice Choice) bool {
	if !g.collecting {
		return false
	}
	if _, dup := g.choices[player]; dup {
		return false
	}

	g.choices[player] = choice

	return true
}

func (g *rpsGame) allChosen(memberCount int) bool {
	return len(g.choices) == memberCount
}

type rpsOutcome struct {
	winners   []string // round winners
	choices   map[string]Choice
	scores    map[string]int
	round     int
	ended     bool
	champions []string // game winners, credited to the leaderboard
}

// resolve settles the current round and checks the victory condition.
// Under a target score the scan runs in join order, so if two players
// cross the threshold in the same round the earliest joiner wins. On a
// terminal round the game resets to a finished-awaiting-restart state;
// the room itself survives.
func (g *rpsGame) resolve(order []string, settings Settings) rpsOutcome {
	winners := rpsWinners(g.choices)
	for _, player := range winners {
		g.scores[player]++
	}

	out := rpsOutcome{
		winners: winners,
		choices: g.choices,
		scores:  g.scoreboard(),
		round:   g.round,
	}

	switch settings.VictoryCondition {
	case VictoryByScore:
		for _, player := range order {
			if g.scores[player] >= settings.TargetScore {
				out.ended = true
				out.champions = []string{player}
				break
			}
		}
	case VictoryByRounds:
		if g.round >= settings.TotalRounds {
			out.ended = true
			best := 0
			for _, player := range order {
				best = max(best, g.scores[player])
			}
			for _, player := range order {
				if g.scores[player] == best {
					out.champions = append(out.champions, player)
				}
			}
		}
	}

	if out.ended {
		g.reset()
	} else {
		g.round++
		g.choices = make(map[string]Choice)
	}

	return out
}

// reset returns the game to its waiting state after a terminal round:
// scores zeroed, round back to one, no choices collected.
func (g *rpsGame) reset() {
	g.collecting = false
	g.round = 1
	g.choices = make(map[string]Choice)
	for player := range g.scores {
		g.scores[player] = 0
	}
}

func (g *rpsGame) scoreboard() map[string]int {
	scores := make(map[string]int, len(g.scores))
	for player, score := range g.scores {
		scores[player] = score
	}
	return scores
}
