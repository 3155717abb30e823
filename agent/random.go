package agent

import (
	"errors"
	"hybrid/game"
	"time"

	"golang.org/x/exp/rand"
)

var ErrNoMoves = errors.New("no moves to choose from")

type random struct {
	player game.Player
	rand   *rand.Rand
}

// NewRandom returns an agent that plays uniformly random legal moves. A nil
// generator uses a time-seeded one.
func NewRandom(r *rand.Rand) Agent {
	if r == nil {
		r = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return &random{rand: r}
}

func (a *random) Name() string {
	return "Random"
}

func (a *random) Initialize(g game.Game, player game.Player) {
	a.player = player
}

func (a *random) Decide(g game.Game, state game.State, budget time.Duration, maxIterations, maxDepth int) (game.Move, error) {
	moves := game.MovesFor(g, state, a.player)
	if len(moves) == 0 {
		return nil, ErrNoMoves
	}
	return moves[a.rand.Intn(len(moves))], nil
}
