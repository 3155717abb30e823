package engine

import (
	"fmt"
	"hybrid/agent"
	"hybrid/experiments/metrics"
	"hybrid/game"
	"time"

	"github.com/rs/zerolog/log"
)

var _ Engine = (*LocalEngine)(nil)

type LocalEngine struct {
	Game     game.Game
	State    game.State
	Agents   []agent.Agent // indexed by game.Player
	budget   time.Duration
	maxSteps int
	metrics  metrics.Collector
}

// NewLocalEngine prepares a match of g where agents[p] plays player p.
func NewLocalEngine(g game.Game, agents []agent.Agent, budget time.Duration, maxSteps int) *LocalEngine {
	if len(agents) != 2 {
		panic("need exactly two agents")
	}
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	return &LocalEngine{
		Game:     g,
		State:    g.NewState(),
		Agents:   agents,
		budget:   budget,
		maxSteps: maxSteps,
		metrics:  metrics.NewCollector(),
	}
}

// Run executes the game loop until the game is over or maxSteps moves were
// played. Agent and rule errors end the match.
func (e *LocalEngine) Run() ([]game.Player, metrics.GameMetric, []metrics.MoveMetric, error) {
	for p, a := range e.Agents {
		a.Initialize(e.Game, game.Player(p))
	}

	e.metrics.Start(e.Game.Name(), int(e.State.Mover()))
	log.Debug().Msgf("player %d is starting %s", e.State.Mover(), e.Game.Name())

	step := 0
	for !e.State.IsTerminal() && step < e.maxSteps {
		mover := e.State.Mover()
		a := e.Agents[mover]

		start := time.Now()
		move, err := a.Decide(e.Game, e.State.Copy(), e.budget, 0, 0)
		if err != nil {
			return nil, metrics.GameMetric{}, nil, fmt.Errorf("%s (player %d) failed to decide at step %d: %w", a.Name(), mover, step+1, err)
		}
		duration := time.Since(start)

		if err := e.State.Apply(move); err != nil {
			return nil, metrics.GameMetric{}, nil, fmt.Errorf("%s (player %d) played %v at step %d: %w", a.Name(), mover, move, step+1, err)
		}
		step++
		e.metrics.AddMove(metrics.MoveMetric{
			Step:     step,
			Player:   int(mover),
			Agent:    a.Name(),
			Move:     move.String(),
			Duration: duration,
		})
		log.Trace().Int("step", step).Int("player", int(mover)).Str("move", move.String()).Dur("duration", duration).Msg("played")
	}

	winners := e.State.Winners()
	ids := make([]int, len(winners))
	for i, w := range winners {
		ids[i] = int(w)
	}
	gameMetric, moveMetrics := e.metrics.Complete(ids, e.State.IsTerminal())
	if !e.State.IsTerminal() {
		log.Debug().Msgf("stopped %s after %d moves (no result yet)", e.Game.Name(), step)
	}
	return winners, gameMetric, moveMetrics, nil
}
