package main

import (
	"os"
	"sync"

	json "github.com/goccy/go-json"
)

// Leaderboard is a name -> win count store backed by a JSON file. Every
// increment rewrites the file; reads race the registry loop from HTTP
// handlers, hence the mutex.
type Leaderboard struct {
	mu   sync.Mutex
	cfg  *Config
	path string
	wins map[string]int
}

func loadLeaderboard(cfg *Config) *Leaderboard {
	board := &Leaderboard{
		cfg:  cfg,
		path: cfg.leaderboard,
		wins: make(map[string]int),
	}

	data, err := os.ReadFile(board.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logf(cfg, "BOARD: Unable to read %s: %v", board.path, err)
		}
		return board
	}

	if err := json.Unmarshal(data, &board.wins); err != nil {
		logf(cfg, "BOARD: Discarding unparseable %s: %v", board.path, err)
		board.wins = make(map[string]int)
	}

	return board
}

func (b *Leaderboard) Increment(name string) {
	if name == "" {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.wins[name]++
	b.save()
}

func (b *Leaderboard) Snapshot() map[string]int {
	b.mu.Lock()
	defer b.mu.Unlock()

	wins := make(map[string]int, len(b.wins))
	for name, count := range b.wins {
		wins[name] = count
	}

	return wins
}

// save assumes b.mu is already held.
func (b *Leaderboard) save() {
	data, err := json.Marshal(b.wins)
	if err != nil {
		logf(b.cfg, "BOARD: Marshal failed: %v", err)
		return
	}

	if err := os.WriteFile(b.path, data, 0o644); err != nil {
		logf(b.cfg, "BOARD: Unable to write %s: %v", b.path, err)
	}
}
