package agent

import (
	"hybrid/game"
	"time"
)

// Agent plays one side of a match.
type Agent interface {
	Name() string
	// Initialize binds the agent to a player of g, forgetting earlier matches
	Initialize(g game.Game, player game.Player)
	// Decide returns a move for state within about budget. maxIterations and
	// maxDepth are hints an agent may ignore.
	Decide(g game.Game, state game.State, budget time.Duration, maxIterations, maxDepth int) (game.Move, error)
}
