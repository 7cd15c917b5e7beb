package main

import (
	"os"
	"path/filepath"
	"testing"
)

func testBoardConfig(t *testing.T) *Config {
	t.Helper()

	return &Config{leaderboard: filepath.Join(t.TempDir(), "leaderboard.json")}
}

func TestLoadLeaderboardMissingFile(t *testing.T) {
	board := loadLeaderboard(testBoardConfig(t))

	if len(board.Snapshot()) != 0 {
		t.Errorf("snapshot = %v, want empty", board.Snapshot())
	}
}

func TestLoadLeaderboardCorruptFile(t *testing.T) {
	cfg := testBoardConfig(t)
	if err := os.WriteFile(cfg.leaderboard, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	board := loadLeaderboard(cfg)

	if len(board.Snapshot()) != 0 {
		t.Errorf("snapshot = %v after corrupt load, want empty", board.Snapshot())
	}

	// The store still works after discarding the bad file.
	board.Increment("Alice")
	if board.Snapshot()["Alice"] != 1 {
		t.Error("increment failed after corrupt load")
	}
}

func TestIncrementPersists(t *testing.T) {
	cfg := testBoardConfig(t)
	board := loadLeaderboard(cfg)

	board.Increment("Alice")
	board.Increment("Alice")
	board.Increment("Bob")
	board.Increment("")

	wins := board.Snapshot()
	if wins["Alice"] != 2 || wins["Bob"] != 1 {
		t.Errorf("wins = %v, want Alice:2 Bob:1", wins)
	}
	if _, ok := wins[""]; ok {
		t.Error("empty name credited")
	}

	// A fresh load reads back what was written.
	reloaded := loadLeaderboard(cfg).Snapshot()
	if reloaded["Alice"] != 2 || reloaded["Bob"] != 1 {
		t.Errorf("reloaded wins = %v, want Alice:2 Bob:1", reloaded)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	board := loadLeaderboard(testBoardConfig(t))
	board.Increment("Alice")

	wins := board.Snapshot()
	wins["Alice"] = 100

	if board.Snapshot()["Alice"] != 1 {
		t.Error("mutating a snapshot changed the store")
	}
}
