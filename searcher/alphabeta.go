package searcher

import (
	"fmt"
	"hybrid/game"
)

// search holds what a single decision needs while recursing
type search struct {
	game     game.Game
	player   game.Player
	playouts simulator
	metrics  MetricsCollector
}

// alphaBeta returns the fail-hard minimax value of state searched depth plies
// deep. Cut-off nodes return the running extremum computed so far, never a
// bound. Every move is tried on a copy so siblings never share a state.
func (s *search) alphaBeta(state game.State, depth int, alpha, beta float64, maximizing bool) (float64, error) {
	s.metrics.AddNode()
	if depth == 0 || state.IsTerminal() {
		return s.evaluate(state, maximizing)
	}

	moves := game.MovesFor(s.game, state, Actor(s.player, maximizing))
	if maximizing {
		maxValue := Loss
		for _, move := range moves {
			child, err := play(state, move)
			if err != nil {
				return 0, err
			}
			value, err := s.alphaBeta(child, depth-1, alpha, beta, false)
			if err != nil {
				return 0, err
			}
			maxValue = max(maxValue, value)
			if maxValue >= beta { // beta cut-off
				break
			}
			alpha = max(alpha, maxValue)
		}
		return maxValue, nil
	}

	minValue := Win
	for _, move := range moves {
		child, err := play(state, move)
		if err != nil {
			return 0, err
		}
		value, err := s.alphaBeta(child, depth-1, alpha, beta, true)
		if err != nil {
			return 0, err
		}
		minValue = min(minValue, value)
		if minValue <= alpha { // alpha cut-off
			break
		}
		beta = min(beta, minValue)
	}
	return minValue, nil
}

// scoreRoot searches every root move with a full window and keeps the first
// move with the highest score.
func (s *search) scoreRoot(state game.State, moves []game.Move, depth int) (game.Move, float64, error) {
	bestMove, bestScore := moves[0], Loss
	for _, move := range moves {
		child, err := play(state, move)
		if err != nil {
			return nil, 0, err
		}
		score, err := s.alphaBeta(child, depth, Loss, Win, false)
		if err != nil {
			return nil, 0, err
		}
		if score > bestScore {
			bestMove, bestScore = move, score
		}
	}
	return bestMove, bestScore, nil
}

// play returns a copy of state with move applied
func play(state game.State, move game.Move) (game.State, error) {
	child := state.Copy()
	if err := child.Apply(move); err != nil {
		return nil, fmt.Errorf("apply %v: %w", move, err)
	}
	return child, nil
}
