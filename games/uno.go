package games

// UNO, house rules
// Standard 108-card deck; seven cards dealt to each player
// Play a card matching the active color or value; wilds always play and name a new color
// Skip passes over the next player, reverse flips direction (and acts as a skip with two players)
// Draw-two and wild-draw-four make the next player draw and lose their turn
// An empty deck is rebuilt from the discard pile, keeping only the top card

// How to play
// - Two or more players; the room owner deals by starting the game
// - Players only ever see their own hand plus everyone's card counts
// - First player to empty their hand wins and is recorded on the leaderboard
// - Restarting deals a completely fresh game to whoever is still in the room
