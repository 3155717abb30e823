package searcher

import (
	"errors"
	"hybrid/game"
	"strconv"
	"time"

	"golang.org/x/exp/rand"
)

var errBrokenMove = errors.New("broken move")

// tree is a game tree whose leaves are finished games
type tree struct {
	children []*tree
	owners   []game.Player // move owners for non-alternating trees, by child
	winners  []game.Player
	broken   bool // applying any move fails
}

func node(children ...*tree) *tree {
	return &tree{children: children}
}

func won(winners ...game.Player) *tree {
	return &tree{winners: winners}
}

func draw() *tree {
	return &tree{}
}

// randomTree builds a tree up to depth plies with finished games at the
// leaves, some of them before full depth.
func randomTree(r *rand.Rand, depth int) *tree {
	if depth == 0 || r.Intn(6) == 0 {
		switch r.Intn(3) {
		case 0:
			return won(game.First)
		case 1:
			return won(game.Second)
		default:
			return draw()
		}
	}
	n := &tree{}
	for i := 1 + r.Intn(4); i > 0; i-- {
		n.children = append(n.children, randomTree(r, depth-1))
	}
	return n
}

type treeMove struct {
	index  int
	player game.Player
}

func (m treeMove) Mover() game.Player {
	return m.player
}

func (m treeMove) String() string {
	return strconv.Itoa(m.index)
}

type treeState struct {
	node  *tree
	mover game.Player
}

func (s *treeState) Mover() game.Player {
	return s.mover
}

func (s *treeState) LegalMoves() []game.Move {
	moves := make([]game.Move, len(s.node.children))
	for i := range s.node.children {
		player := s.mover
		if s.node.owners != nil {
			player = s.node.owners[i]
		}
		moves[i] = treeMove{index: i, player: player}
	}
	return moves
}

func (s *treeState) Apply(move game.Move) error {
	if s.node.broken {
		return errBrokenMove
	}
	s.node = s.node.children[move.(treeMove).index]
	s.mover = s.mover.Opponent()
	return nil
}

func (s *treeState) Copy() game.State {
	c := *s
	return &c
}

func (s *treeState) IsTerminal() bool {
	return len(s.node.children) == 0
}

func (s *treeState) Winners() []game.Player {
	return s.node.winners
}

type treeGame struct {
	alternating bool
}

func (g treeGame) Name() string {
	return "tree"
}

func (g treeGame) IsAlternating() bool {
	return g.alternating
}

func (g treeGame) NewState() game.State {
	return nil
}

func newTestSearch(g game.Game, player game.Player, playouts, playoutDepth int, seed uint64) *search {
	metrics := NewMetricsCollector(time.Now)
	return &search{
		game:   g,
		player: player,
		playouts: simulator{
			game:     g,
			player:   player,
			count:    playouts,
			maxDepth: playoutDepth,
			rand:     rand.New(rand.NewSource(seed)),
			metrics:  metrics,
		},
		metrics: metrics,
	}
}

// stepClock returns a clock that advances by step on every reading
func stepClock(step time.Duration) func() time.Time {
	now := time.Unix(0, 0)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}
