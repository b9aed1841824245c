// Package score keeps the high-score leaderboard.
//
// Each name holds at most one entry. Saving a name again replaces its
// entry with the latest score, even a lower one. The board is kept
// sorted by score, highest first, and truncated to MaxEntries.
package score

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

const (
	// StorageKey is the key the leaderboard is stored under.
	StorageKey = "flappyScores"
	// MaxEntries is the number of entries kept in storage.
	MaxEntries = 10
)

// Entry is one leaderboard row.
type Entry struct {
	Name  string `yaml:"name" json:"name"`
	Score int    `yaml:"score" json:"score"`
}

// Board reads and writes the leaderboard in a Store.
type Board struct {
	mu     sync.Mutex // Guards store reads and writes
	store  Store
	logger *log.Logger
}

// NewBoard creates a board over store. A nil logger uses log.Default().
func NewBoard(store Store, logger *log.Logger) *Board {
	if logger == nil {
		logger = log.Default()
	}
	return &Board{store: store, logger: logger}
}

// Load returns every stored entry, highest score first.
// Missing or unreadable data yields an empty board.
func (b *Board) Load() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.load()
}

// load reads the board. The caller holds b.mu.
func (b *Board) load() []Entry {
	data, err := b.store.Load(StorageKey)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		b.logger.Warn("leaderboard unavailable", "err", err)
		return nil
	}

	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		b.logger.Warn("leaderboard corrupt, starting empty", "err", err)
		return nil
	}

	// Drop anything a well-formed board would never contain.
	valid := entries[:0]
	for _, e := range entries {
		if strings.TrimSpace(e.Name) != "" {
			valid = append(valid, e)
		}
	}
	sortEntries(valid)
	if len(valid) > MaxEntries {
		valid = valid[:MaxEntries]
	}
	return valid
}

// Top returns at most n entries, highest score first.
func (b *Board) Top(n int) []Entry {
	entries := b.Load()
	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// Save records score for name, replacing any previous entry for that
// name. A zero score or an empty name is ignored.
func (b *Board) Save(name string, score int) error {
	if name == "" || score == 0 {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	entries := b.load()
	kept := entries[:0]
	for _, e := range entries {
		if e.Name != name {
			kept = append(kept, e)
		}
	}
	kept = append(kept, Entry{Name: name, Score: score})
	sortEntries(kept)
	if len(kept) > MaxEntries {
		kept = kept[:MaxEntries]
	}

	data, err := yaml.Marshal(kept)
	if err != nil {
		return fmt.Errorf("encode leaderboard: %w", err)
	}
	if err := b.store.Save(StorageKey, data); err != nil {
		b.logger.Error("failed to save score", "name", name, "score", score, "err", err)
		return fmt.Errorf("save leaderboard: %w", err)
	}
	b.logger.Info("score saved", "name", name, "score", score)
	return nil
}

// Rank returns the 1-based position of name in entries, or 0.
func Rank(entries []Entry, name string) int {
	for i, e := range entries {
		if e.Name == name {
			return i + 1
		}
	}
	return 0
}

// sortEntries orders by score descending. Ties keep their stored order,
// so an older entry stays ahead of a newer one with the same score.
func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
}
