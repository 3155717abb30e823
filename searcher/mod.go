package searcher

import (
	"errors"

	"golang.org/x/exp/rand"
)

// Scores are from the searching agent's perspective
const (
	Win     = 1.0
	Loss    = -Win
	Neutral = (Loss + Win) / 2
)

var (
	ErrNoLegalMoves   = errors.New("no legal moves")
	ErrNoDecisions    = errors.New("no decisions recorded")
	// ErrNotInitialized is returned by Decide without a game to search
	ErrNotInitialized = errors.New("agent not initialized")
)

// Source picks uniformly random indexes for playouts. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// globalSource draws from the process-wide generator
type globalSource struct{}

func (globalSource) Intn(n int) int {
	return rand.Intn(n)
}
