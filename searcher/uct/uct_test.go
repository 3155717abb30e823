package uct

import (
	"hybrid/agent"
	"hybrid/game"
	"hybrid/searcher"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

var _ agent.Agent = (*Searcher)(nil)

// frozenClock never advances, so only iteration limits end a search
func frozenClock() time.Time {
	return time.Unix(0, 0)
}

func stepClock(step time.Duration) func() time.Time {
	now := time.Unix(0, 0)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func newTestSearcher(player game.Player, seed uint64, options ...Option) *Searcher {
	options = append([]Option{WithClock(frozenClock), WithRand(rand.New(rand.NewSource(seed)))}, options...)
	s := New(options...)
	s.Initialize(game.TicTacToe{}, player)
	return s
}

func TestDecide(t *testing.T) {
	t.Run("taking the forced win", func(t *testing.T) {
		board, err := game.ParseBoard("XXO OX. .O.")
		require.NoError(t, err)
		s := newTestSearcher(game.First, 1, WithIterations(500))

		move, err := s.Decide(game.TicTacToe{}, board, time.Hour, 0, 0)

		require.NoError(t, err)
		require.Equal(t, game.Mark{Square: 8, Player: game.First}, move)
		require.Equal(t, searcher.Win, s.Records()[0].Score, "Every visit of the winning move ends the game")
		require.Equal(t, "XXO/OX./.O.", board.String(), "Decide should not modify the state")
	})

	t.Run("blocking the opponent's winning move", func(t *testing.T) {
		board, err := game.ParseBoard("X.O .X. ...")
		require.NoError(t, err)
		s := newTestSearcher(game.Second, 2, WithIterations(5000))

		move, err := s.Decide(game.TicTacToe{}, board, time.Hour, 0, 0)

		require.NoError(t, err)
		require.Equal(t, game.Mark{Square: 8, Player: game.Second}, move)
	})

	t.Run("stopping at the iteration limit", func(t *testing.T) {
		s := newTestSearcher(game.First, 3, WithIterations(50), WithMetrics())

		_, err := s.Decide(game.TicTacToe{}, game.NewBoard(), time.Hour, 0, 0)
		require.NoError(t, err)
		_, err = s.Decide(game.TicTacToe{}, game.NewBoard(), time.Hour, 20, 0)
		require.NoError(t, err)

		records := s.Records()
		require.Len(t, records, 2)
		require.Equal(t, int64(50), records[0].Playouts)
		require.Equal(t, int64(50), records[0].Nodes, "Every episode expands one node")
		require.Equal(t, int64(20), records[1].Playouts, "maxIterations should override the option")
		require.Positive(t, records[0].Depth)
	})

	t.Run("stopping when the budget is spent", func(t *testing.T) {
		// Clock readings: start, metrics start, then one per episode after the first
		s := New(WithClock(stepClock(time.Millisecond)), WithRand(rand.New(rand.NewSource(4))), WithMetrics())
		s.Initialize(game.TicTacToe{}, game.First)

		_, err := s.Decide(game.TicTacToe{}, game.NewBoard(), 5*time.Millisecond, 0, 0)

		require.NoError(t, err)
		require.Equal(t, int64(4), s.Records()[0].Playouts)
	})

	t.Run("running one episode without budget", func(t *testing.T) {
		s := New(WithRand(rand.New(rand.NewSource(5))), WithMetrics())
		s.Initialize(game.Nim{}, game.First)
		pile := game.NewPile(10, game.First)

		move, err := s.Decide(game.Nim{}, pile, 0, 0, 0)

		require.NoError(t, err)
		require.Contains(t, pile.LegalMoves(), move)
		require.Equal(t, int64(1), s.Records()[0].Playouts)
	})

	t.Run("repeating decisions with a seeded generator", func(t *testing.T) {
		decide := func() (game.Move, float64) {
			s := newTestSearcher(game.First, 42, WithIterations(200))
			move, err := s.Decide(game.TicTacToe{}, game.NewBoard(), time.Hour, 0, 0)
			require.NoError(t, err)
			return move, s.Records()[0].Score
		}

		move1, score1 := decide()
		move2, score2 := decide()

		require.Equal(t, move1, move2)
		require.Equal(t, score1, score2)
	})

	t.Run("failing without legal moves", func(t *testing.T) {
		s := newTestSearcher(game.First, 6, WithIterations(10))

		_, err := s.Decide(game.Nim{}, game.NewPile(0, game.First), time.Hour, 0, 0)

		require.ErrorIs(t, err, searcher.ErrNoLegalMoves)
		require.Empty(t, s.Records())
	})

	t.Run("failing without a game", func(t *testing.T) {
		s := New(WithClock(frozenClock), WithIterations(10))

		_, err := s.Decide(nil, game.NewBoard(), time.Hour, 0, 0)

		require.ErrorIs(t, err, searcher.ErrNotInitialized)
	})

	t.Run("clearing records on initialization", func(t *testing.T) {
		s := newTestSearcher(game.First, 7, WithIterations(10))
		_, err := s.Decide(nil, game.NewBoard(), time.Hour, 0, 0)
		require.NoError(t, err)

		s.Initialize(game.TicTacToe{}, game.Second)

		require.Empty(t, s.Records())
	})
}

func TestNode(t *testing.T) {
	t.Run("expanding untried moves in order", func(t *testing.T) {
		state := game.NewPile(5, game.First)
		root := newNode(nil, nil, state.LegalMoves())

		child, expanded, err := root.selectOrExpand(state, CSquared)

		require.NoError(t, err)
		require.True(t, expanded)
		require.Equal(t, game.Take{Stones: 1, Player: game.First}, child.move)
		require.Equal(t, 4, state.Stones())
		require.Len(t, root.untried, 2)
	})

	t.Run("returning terminal nodes", func(t *testing.T) {
		state := game.NewPile(0, game.First)
		root := newNode(nil, nil, state.LegalMoves())

		child, expanded, err := root.selectOrExpand(state, CSquared)

		require.NoError(t, err)
		require.False(t, expanded)
		require.Same(t, root, child)
	})

	t.Run("crediting rewards to the mover of each node", func(t *testing.T) {
		root := newNode(nil, nil, nil)
		first := newNode(root, game.Take{Stones: 1, Player: game.First}, nil)
		second := newNode(first, game.Take{Stones: 1, Player: game.Second}, nil)

		second.backup(func(p game.Player) float64 {
			if p == game.First {
				return searcher.Win
			}
			return searcher.Loss
		})

		require.Equal(t, searcher.Loss, second.rewards)
		require.Equal(t, searcher.Win, first.rewards)
		require.Equal(t, 1, root.visits)
		require.Zero(t, root.rewards)
	})

	t.Run("preferring unvisited children", func(t *testing.T) {
		root := &node{visits: 3}
		root.children = []*node{{rewards: 2, visits: 2}, {}, {rewards: -1, visits: 1}}

		require.Equal(t, 1, root.pickChild(CSquared))
	})
}
