package searcher

import (
	"fmt"
	"hybrid/game"
)

const (
	DefaultEvaluationPlayouts = 25
	DefaultMaxPlayoutDepth    = 50
)

// simulator estimates a position by random rollouts
type simulator struct {
	game     game.Game
	player   game.Player
	count    int
	maxDepth int
	rand     Source
	metrics  MetricsCollector
}

// average returns the mean score of count independent rollouts.
func (p simulator) average(state game.State, starting game.Player) (float64, error) {
	total := 0.0
	for i := 0; i < p.count; i++ {
		score, err := p.rollout(state, starting)
		if err != nil {
			return 0, err
		}
		total += score
	}
	return total / float64(p.count), nil
}

// rollout plays uniformly random moves on a copy of state until the game is
// over or maxDepth plies were played. A rollout cut off before the end scores
// Neutral as its state has no winners yet.
func (p simulator) rollout(state game.State, starting game.Player) (float64, error) {
	state = state.Copy()
	player := starting
	depth := 0
	// Rollout till game over or for maxDepth number of moves
	for !state.IsTerminal() && depth < p.maxDepth {
		moves := game.MovesFor(p.game, state, player)
		if len(moves) == 0 {
			break
		}
		move := moves[p.rand.Intn(len(moves))] // Random rollout policy
		if err := state.Apply(move); err != nil {
			return 0, fmt.Errorf("playout move %v: %w", move, err)
		}
		player = player.Opponent()
		depth++
	}

	p.metrics.AddPlayout(state.IsTerminal())
	return terminalScore(state, p.player), nil
}
