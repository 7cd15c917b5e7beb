package games

// Rock-paper-scissors, multiplayer variant
// Any number of players (matchmaking caps a room at four) pick rock, paper, or scissors at the same time
// A round with one distinct choice, or all three, is a tie
// With exactly two distinct choices, everyone who picked the dominating one scores a point
// First to the target score wins, or highest score after a fixed number of rounds (ties share the win)

// How to play
// - Create a room (choosing victory condition) or quick-match into one
// - The room owner starts the game; everyone picks in secret
// - The round resolves as soon as the last player has picked
// - Winners are recorded on the shared leaderboard
