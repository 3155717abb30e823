// Package uct is a Monte Carlo tree search agent with UCB1 selection, the
// usual opponent of the hybrid searcher in experiments.
package uct

import (
	"fmt"
	"hybrid/game"
	"hybrid/searcher"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const (
	Name = "UCT"

	CSquared      = 2.0 // Exploration constant
	DefaultCutoff = 200
)

type Option func(s *Searcher)

// Searcher builds a fresh tree for every decision: select by UCB1, expand one
// move, play a random rollout and back its result up to the root. The move
// with the most visits is played.
type Searcher struct {
	game        game.Game
	player      game.Player
	iterations  int
	cutoff      int
	cSquared    float64
	rand        searcher.Source
	now         func() time.Time
	withMetrics bool
	stats       searcher.Stats
}

// WithIterations stops every search after a number of playouts, even if time
// is left.
func WithIterations(iterations int) Option {
	return func(s *Searcher) {
		if iterations > 0 {
			s.iterations = iterations
		}
	}
}

// WithCutoff stops rollouts after depth plies. Cut off rollouts score Neutral.
func WithCutoff(depth int) Option {
	return func(s *Searcher) {
		if depth > 0 {
			s.cutoff = depth
		}
	}
}

func WithExploration(cSquared float64) Option {
	return func(s *Searcher) {
		if cSquared >= 0 {
			s.cSquared = cSquared
		}
	}
}

func WithRand(r *rand.Rand) Option {
	return func(s *Searcher) {
		if r != nil {
			s.rand = r
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Searcher) {
		if now != nil {
			s.now = now
		}
	}
}

func WithMetrics() Option {
	return func(s *Searcher) {
		s.withMetrics = true
	}
}

// New returns a UCT agent. Without WithRand its generator is seeded from the
// clock.
func New(options ...Option) *Searcher {
	s := &Searcher{ // Default values
		cutoff:   DefaultCutoff,
		cSquared: CSquared,
		now:      time.Now,
	}
	for _, option := range options {
		option(s)
	}
	if s.rand == nil {
		s.rand = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return s
}

func (s *Searcher) Name() string {
	return Name
}

func (s *Searcher) Initialize(g game.Game, player game.Player) {
	s.game = g
	s.player = player
	s.stats.Reset()
}

// Decide searches until budget is spent or the iteration limit is reached,
// whichever comes first. A positive maxIterations overrides WithIterations.
// At least one playout always runs.
func (s *Searcher) Decide(g game.Game, state game.State, budget time.Duration, maxIterations, maxDepth int) (game.Move, error) {
	start := s.now()
	if g == nil {
		g = s.game
	}
	if g == nil {
		return nil, searcher.ErrNotInitialized
	}
	moves := game.MovesFor(g, state, s.player)
	if len(moves) == 0 {
		return nil, searcher.ErrNoLegalMoves
	}
	limit := s.iterations
	if maxIterations > 0 {
		limit = maxIterations
	}

	metrics := searcher.NewNoMetricsCollector()
	if s.withMetrics {
		metrics = searcher.NewMetricsCollector(s.now)
	}
	metrics.Start()

	root := newNode(nil, nil, moves)
	depth := 0
	for episodes := 0; episodes == 0 || s.more(episodes, limit, start, budget); episodes++ {
		d, err := s.simulate(root, state, metrics)
		if err != nil {
			return nil, fmt.Errorf("episode %d: %w", episodes+1, err)
		}
		depth = max(depth, d)
	}

	best := root.mostVisited()
	spent := s.now().Sub(start)
	s.stats.Record(searcher.DecisionRecord{
		Depth:         depth,
		Elapsed:       spent,
		Score:         best.value(),
		SearchMetrics: metrics.Complete(),
	})
	log.Debug().
		Int("player", int(s.player)).
		Int("visits", root.visits).
		Int("depth", depth).
		Dur("elapsed", spent).
		Str("move", best.move.String()).
		Float64("score", best.value()).
		Msg("decided")
	return best.move, nil
}

func (s *Searcher) more(episodes, limit int, start time.Time, budget time.Duration) bool {
	if limit > 0 && episodes >= limit {
		return false
	}
	return s.now().Sub(start) < budget
}

// simulate runs one episode on a copy of state and returns the depth of the
// node it expanded.
func (s *Searcher) simulate(root *node, state game.State, metrics searcher.MetricsCollector) (int, error) {
	state = state.Copy()
	leaf, depth, err := selectThenExpand(root, state, s.cSquared)
	if err != nil {
		return 0, err
	}
	metrics.AddNode()
	if err := s.rollout(state, metrics); err != nil {
		return 0, err
	}
	leaf.backup(func(player game.Player) float64 {
		return reward(state, player)
	})
	return depth, nil
}

// selectThenExpand descends from root, applying the selected moves to state,
// until a node was expanded or a terminal node was reached.
func selectThenExpand(root *node, state game.State, cSquared float64) (*node, int, error) {
	parent := root
	depth := 0
	for {
		child, expanded, err := parent.selectOrExpand(state, cSquared)
		if err != nil {
			return nil, 0, err
		}
		if child == parent {
			return child, depth, nil
		}
		depth++
		if expanded {
			return child, depth, nil
		}
		parent = child
	}
}

func (s *Searcher) rollout(state game.State, metrics searcher.MetricsCollector) error {
	// Rollout till game over or for cutoff number of moves
	for depth := 0; !state.IsTerminal() && depth < s.cutoff; depth++ {
		moves := state.LegalMoves()
		if len(moves) == 0 {
			break
		}
		move := moves[s.rand.Intn(len(moves))] // Random rollout policy
		if err := state.Apply(move); err != nil {
			return fmt.Errorf("playout move %v: %w", move, err)
		}
	}
	metrics.AddPlayout(state.IsTerminal())
	return nil
}

// reward scores the end of a playout for player
func reward(state game.State, player game.Player) float64 {
	switch {
	case game.HasWon(state, player):
		return searcher.Win
	case len(state.Winners()) > 0:
		return searcher.Loss
	default:
		return searcher.Neutral
	}
}

func (s *Searcher) Records() []searcher.DecisionRecord {
	return s.stats.Records()
}
