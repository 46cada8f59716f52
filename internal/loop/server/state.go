package server

import (
	"cmp"
	"slices"
)

// TopScoreEntry represents a single entry on the leaderboard.
type TopScoreEntry struct {
	Username string
	Score    int
	clientID int // Used for deterministic tie-break when scores are equal
}

// LobbySnapshot is an immutable view of the lobby for rendering.
type LobbySnapshot struct {
	Players   int
	HighScore int             // All-time high score as last announced
	TopScores []TopScoreEntry // Best scores of connected players, highest first
}

// leaderboard ranks connected players. Entries are reused between steps.
type leaderboard struct {
	entries []TopScoreEntry
}

func (l *leaderboard) reset() {
	l.entries = l.entries[:0]
}

func (l *leaderboard) add(e TopScoreEntry) {
	l.entries = append(l.entries, e)
}

// top returns a fresh slice of at most n entries, highest score first and
// earliest connection first on ties.
func (l *leaderboard) top(n int) []TopScoreEntry {
	slices.SortFunc(l.entries, func(a, b TopScoreEntry) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.clientID, b.clientID)
	})
	n = min(n, len(l.entries))
	return slices.Clone(l.entries[:n])
}
