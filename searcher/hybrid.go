package searcher

import (
	"fmt"
	"hybrid/game"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const Name = "Hybrid Minimax-MCTS"

type Option func(h *Hybrid)

// Hybrid chooses moves by iterative deepening alpha-beta search whose leaves
// are scored by averaging random playouts. A Hybrid serves one decision at a
// time.
type Hybrid struct {
	game               game.Game
	player             game.Player
	evaluationPlayouts int
	maxPlayoutDepth    int
	rand               Source
	now                func() time.Time
	withMetrics        bool
	stats              Stats
	lastScore          float64
}

// WithEvaluationPlayouts sets the number of playouts averaged per leaf.
func WithEvaluationPlayouts(playouts int) Option {
	return func(h *Hybrid) {
		h.evaluationPlayouts = playouts
	}
}

// WithMaxPlayoutDepth sets the number of plies after which a playout stops.
func WithMaxPlayoutDepth(depth int) Option {
	return func(h *Hybrid) {
		h.maxPlayoutDepth = depth
	}
}

// WithRand replaces the process-wide generator, e.g. by a seeded one.
func WithRand(r *rand.Rand) Option {
	return func(h *Hybrid) {
		if r != nil {
			h.rand = r
		}
	}
}

// WithClock replaces time.Now for measuring iterations.
func WithClock(now func() time.Time) Option {
	return func(h *Hybrid) {
		if now != nil {
			h.now = now
		}
	}
}

// WithMetrics counts nodes and playouts of every decision.
func WithMetrics() Option {
	return func(h *Hybrid) {
		h.withMetrics = true
	}
}

func NewHybrid(options ...Option) *Hybrid {
	h := &Hybrid{ // Default values
		evaluationPlayouts: DefaultEvaluationPlayouts,
		maxPlayoutDepth:    DefaultMaxPlayoutDepth,
		rand:               globalSource{},
		now:                time.Now,
	}
	for _, option := range options {
		option(h)
	}
	if h.evaluationPlayouts < 1 {
		panic(fmt.Sprintf("evaluation playouts must be at least 1, got %d", h.evaluationPlayouts))
	}
	if h.maxPlayoutDepth < 0 {
		panic(fmt.Sprintf("max playout depth must not be negative, got %d", h.maxPlayoutDepth))
	}
	return h
}

func (h *Hybrid) Name() string {
	return Name
}

// Initialize binds the agent to a player of g and clears its statistics.
func (h *Hybrid) Initialize(g game.Game, player game.Player) {
	h.game = g
	h.player = player
	h.stats.Reset()
	h.lastScore = 0
}

// Decide returns the best move of the deepest completed iteration. Before
// each new iteration its cost is extrapolated linearly from the last two
// iterations, and it only starts if the prediction fits in budget. A started
// iteration always completes, so Decide may overrun budget, and at least the
// depth 0 iteration always runs. maxIterations and maxDepth are accepted for
// interface conformance and do not bound the search.
func (h *Hybrid) Decide(g game.Game, state game.State, budget time.Duration, maxIterations, maxDepth int) (game.Move, error) {
	start := h.now()
	if g == nil {
		g = h.game
	}
	if g == nil {
		return nil, ErrNotInitialized
	}
	moves := game.MovesFor(g, state, h.player)
	if len(moves) == 0 {
		return nil, ErrNoLegalMoves
	}
	if budget < 0 {
		budget = 0
	}

	s := h.newSearch(g)
	s.metrics.Start()

	var (
		bestMove      game.Move
		bestScore     float64
		depth         int
		spent         time.Duration
		iteration     time.Duration
		lastIteration time.Duration
	)
	for spent+iteration+(iteration-lastIteration) <= budget {
		lastIteration = iteration
		iterationStart := h.now()

		move, score, err := s.scoreRoot(state, moves, depth)
		if err != nil {
			return nil, fmt.Errorf("search depth %d: %w", depth, err)
		}
		bestMove, bestScore = move, score
		depth++

		end := h.now()
		iteration = end.Sub(iterationStart)
		spent = end.Sub(start)
		log.Trace().Int("depth", depth).Dur("iteration", iteration).Str("move", move.String()).Float64("score", score).Msg("completed iteration")
	}

	h.lastScore = bestScore
	h.stats.Record(DecisionRecord{
		Depth:         depth,
		Elapsed:       spent,
		Score:         bestScore,
		SearchMetrics: s.metrics.Complete(),
	})
	log.Debug().
		Int("player", int(h.player)).
		Int("depth", depth).
		Dur("elapsed", spent).
		Int("moves", len(moves)).
		Str("move", bestMove.String()).
		Float64("score", bestScore).
		Msg("decided")
	return bestMove, nil
}

func (h *Hybrid) newSearch(g game.Game) *search {
	var metrics MetricsCollector = noMetricsCollector{}
	if h.withMetrics {
		metrics = NewMetricsCollector(h.now)
	}
	return &search{
		game:   g,
		player: h.player,
		playouts: simulator{
			game:     g,
			player:   h.player,
			count:    h.evaluationPlayouts,
			maxDepth: h.maxPlayoutDepth,
			rand:     h.rand,
			metrics:  metrics,
		},
		metrics: metrics,
	}
}

// LastScore is the score of the move returned by the last decision.
func (h *Hybrid) LastScore() float64 {
	return h.lastScore
}

func (h *Hybrid) Records() []DecisionRecord {
	return h.stats.Records()
}

// FirstReachedDepth is the depth reached by the first decision since Initialize.
func (h *Hybrid) FirstReachedDepth() (int, error) {
	return h.stats.FirstDepth()
}

func (h *Hybrid) MeanReachedDepth() (float64, error) {
	return h.stats.MeanDepth()
}

func (h *Hybrid) MeanSpentSeconds() (float64, error) {
	return h.stats.MeanSeconds()
}
