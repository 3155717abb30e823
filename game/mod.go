package game

import "golang.org/x/exp/slices"

// Player identifies one of the two sides of a game.
type Player int

const (
	First  Player = 0
	Second Player = 1
)

// Opponent returns the other side of a two-player game.
func (p Player) Opponent() Player {
	return 1 - p
}

type Move interface {
	// Mover is the player who performs the move
	Mover() Player
	String() string
}

// State is a full game position. Apply mutates the receiver, so callers that
// need to keep a position must Apply to a Copy.
type State interface {
	Mover() Player
	LegalMoves() []Move
	Apply(Move) error
	Copy() State
	IsTerminal() bool
	// Winners is empty for a draw or an unfinished game
	Winners() []Player
}

// Game describes the rules shared by all states of a game.
type Game interface {
	Name() string
	// IsAlternating reports whether players strictly take turns, so that every
	// legal move belongs to the player to move.
	IsAlternating() bool
	NewState() State
}

// MovesFor returns the legal moves of state available to player. Moves of
// alternating games are returned as-is.
func MovesFor(g Game, state State, player Player) []Move {
	moves := state.LegalMoves()
	if g.IsAlternating() {
		return moves
	}
	return slices.DeleteFunc(slices.Clone(moves), func(m Move) bool {
		return m.Mover() != player
	})
}

// HasWon reports whether player is among the winners of state.
func HasWon(state State, player Player) bool {
	return slices.Contains(state.Winners(), player)
}
