package main

import (
	"slices"
	"testing"
)

func TestRPSWinners(t *testing.T) {
	tests := []struct {
		name    string
		choices map[string]Choice
		want    []string
	}{
		{
			"all identical is a tie",
			map[string]Choice{"a": ChoiceRock, "b": ChoiceRock, "c": ChoiceRock},
			nil,
		},
		{
			"three distinct is a tie",
			map[string]Choice{"a": ChoiceRock, "b": ChoicePaper, "c": ChoiceScissors},
			nil,
		},
		{
			"rock beats scissors",
			map[string]Choice{"a": ChoiceRock, "b": ChoiceScissors},
			[]string{"a"},
		},
		{
			"scissors beats paper",
			map[string]Choice{"a": ChoiceScissors, "b": ChoicePaper},
			[]string{"a"},
		},
		{
			"paper beats rock",
			map[string]Choice{"a": ChoicePaper, "b": ChoiceRock},
			[]string{"a"},
		},
		{
			"all players on the winning choice win",
			map[string]Choice{"a": ChoiceRock, "b": ChoiceRock, "c": ChoiceScissors, "d": ChoiceScissors},
			[]string{"a", "b"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := rpsWinners(tc.choices)
			slices.Sort(got)
			if !slices.Equal(got, tc.want) {
				t.Errorf("winners = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSubmitChoiceIdempotent(t *testing.T) {
	g := newRPSGame()
	g.addPlayer("a")
	g.addPlayer("b")

	if g.submitChoice("a", ChoiceRock) {
		t.Error("choice accepted before the game started")
	}

	g.startRound()

	if !g.submitChoice("a", ChoiceRock) {
		t.Fatal("first choice rejected")
	}
	if g.submitChoice("a", ChoicePaper) {
		t.Error("second choice in the same round accepted")
	}
	if g.choices["a"] != ChoiceRock {
		t.Errorf("choice overwritten to %s", g.choices["a"])
	}
	if g.allChosen(2) {
		t.Error("round considered complete with one of two choices")
	}
}

// The worked example: two players to a target score of two.
func TestResolveTargetScoreScenario(t *testing.T) {
	g := newRPSGame()
	g.addPlayer("p1")
	g.addPlayer("p2")
	order := []string{"p1", "p2"}
	settings := Settings{VictoryCondition: VictoryByScore, TargetScore: 2}

	g.startRound()

	rounds := []struct {
		p1, p2      Choice
		wantWinners []string
		wantScores  map[string]int
		wantEnded   bool
	}{
		{ChoiceRock, ChoiceScissors, []string{"p1"}, map[string]int{"p1": 1, "p2": 0}, false},
		{ChoicePaper, ChoiceRock, []string{"p2"}, map[string]int{"p1": 1, "p2": 1}, false},
		{ChoiceRock, ChoiceScissors, []string{"p1"}, map[string]int{"p1": 2, "p2": 1}, true},
	}

	for i, round := range rounds {
		g.submitChoice("p1", round.p1)
		g.submitChoice("p2", round.p2)
		if !g.allChosen(2) {
			t.Fatalf("round %d: choices not all collected", i+1)
		}

		out := g.resolve(order, settings)

		winners := slices.Clone(out.winners)
		slices.Sort(winners)
		if !slices.Equal(winners, round.wantWinners) {
			t.Errorf("round %d: winners = %v, want %v", i+1, out.winners, round.wantWinners)
		}
		for player, want := range round.wantScores {
			if out.scores[player] != want {
				t.Errorf("round %d: score[%s] = %d, want %d", i+1, player, out.scores[player], want)
			}
		}
		if out.ended != round.wantEnded {
			t.Errorf("round %d: ended = %v, want %v", i+1, out.ended, round.wantEnded)
		}
	}

	if got := len(g.choices); got != 0 {
		t.Errorf("%d choices survived the final round", got)
	}
}

func TestResolveRoundsCoWinners(t *testing.T) {
	g := newRPSGame()
	g.addPlayer("a")
	g.addPlayer("b")
	g.addPlayer("c")
	order := []string{"a", "b", "c"}
	settings := Settings{VictoryCondition: VictoryByRounds, TotalRounds: 1}

	g.startRound()
	g.submitChoice("a", ChoiceRock)
	g.submitChoice("b", ChoiceRock)
	g.submitChoice("c", ChoiceScissors)

	out := g.resolve(order, settings)

	if !out.ended {
		t.Fatal("game did not end after the final round")
	}
	if !slices.Equal(out.champions, []string{"a", "b"}) {
		t.Errorf("champions = %v, want [a b]", out.champions)
	}
}

func TestResolveRoundIncrementsUnderRounds(t *testing.T) {
	g := newRPSGame()
	g.addPlayer("a")
	g.addPlayer("b")
	settings := Settings{VictoryCondition: VictoryByRounds, TotalRounds: 3}

	g.startRound()
	g.submitChoice("a", ChoiceRock)
	g.submitChoice("b", ChoiceScissors)

	out := g.resolve([]string{"a", "b"}, settings)

	if out.ended {
		t.Fatal("game ended before the round limit")
	}
	if out.round != 1 {
		t.Errorf("resolved round reported as %d, want 1", out.round)
	}
	if g.round != 2 {
		t.Errorf("next round is %d, want 2", g.round)
	}
	if len(g.choices) != 0 {
		t.Error("choices not cleared for the next round")
	}
}

// When two players cross the target in the same round, the earliest
// joiner takes the win.
func TestResolveThresholdTieGoesToJoinOrder(t *testing.T) {
	g := newRPSGame()
	g.addPlayer("a")
	g.addPlayer("b")
	g.addPlayer("c")
	g.scores["b"] = 1
	g.scores["c"] = 1
	settings := Settings{VictoryCondition: VictoryByScore, TargetScore: 2}

	g.startRound()
	g.submitChoice("a", ChoiceScissors)
	g.submitChoice("b", ChoiceRock)
	g.submitChoice("c", ChoiceRock)

	out := g.resolve([]string{"a", "b", "c"}, settings)

	if !out.ended {
		t.Fatal("game did not end at the target score")
	}
	if !slices.Equal(out.champions, []string{"b"}) {
		t.Errorf("champions = %v, want [b]", out.champions)
	}
}

func TestResetAfterGameEnd(t *testing.T) {
	g := newRPSGame()
	g.addPlayer("a")
	g.addPlayer("b")
	settings := Settings{VictoryCondition: VictoryByScore, TargetScore: 1}

	g.startRound()
	g.submitChoice("a", ChoiceRock)
	g.submitChoice("b", ChoiceScissors)

	out := g.resolve([]string{"a", "b"}, settings)
	if !out.ended {
		t.Fatal("game did not end")
	}

	if g.collecting {
		t.Error("game still collecting choices after ending")
	}
	if g.round != 1 {
		t.Errorf("round is %d after reset, want 1", g.round)
	}
	for player, score := range g.scores {
		if score != 0 {
			t.Errorf("score[%s] = %d after reset, want 0", player, score)
		}
	}

	// A restart begins collecting again with clean state.
	g.startRound()
	if !g.submitChoice("a", ChoicePaper) {
		t.Error("choice rejected after restart")
	}
}
