package searcher

import "hybrid/game"

// Actor returns the player considered to move at a node of the search tree:
// the agent itself at maximizing nodes and its opponent at minimizing nodes.
// The mapping ignores the game's actual turn order and only holds for strictly
// alternating two-player games.
func Actor(self game.Player, maximizing bool) game.Player {
	if maximizing {
		return self
	}
	return self.Opponent()
}

// terminalScore scores a finished game for player. Unfinished states have no
// winners and score Neutral.
func terminalScore(state game.State, player game.Player) float64 {
	if game.HasWon(state, player) {
		return Win
	}
	if len(state.Winners()) > 0 {
		return Loss
	}
	return Neutral
}

// evaluate scores a node where the recursion stops: exactly if the game is
// over, otherwise by the mean of random playouts started by the node's actor.
func (s *search) evaluate(state game.State, maximizing bool) (float64, error) {
	s.metrics.AddLeaf()
	if state.IsTerminal() {
		return terminalScore(state, s.player), nil
	}
	return s.playouts.average(state, Actor(s.player, maximizing))
}
