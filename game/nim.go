package game

import "fmt"

const (
	DefaultNimStones = 15
	MaxNimTake       = 3
)

// Take removes stones from the pile.
type Take struct {
	Stones int
	Player Player
}

func (t Take) Mover() Player {
	return t.Player
}

func (t Take) String() string {
	return fmt.Sprintf("take %d", t.Stones)
}

// Nim is single-pile take-away: each turn removes 1 to MaxNimTake stones and
// whoever takes the last stone wins.
type Nim struct {
	Stones int
}

func (n Nim) Name() string {
	return "nim"
}

func (Nim) IsAlternating() bool {
	return true
}

func (n Nim) NewState() State {
	stones := n.Stones
	if stones <= 0 {
		stones = DefaultNimStones
	}
	return NewPile(stones, First)
}

type Pile struct {
	stones int
	mover  Player
	winner []Player
}

func NewPile(stones int, mover Player) *Pile {
	return &Pile{stones: stones, mover: mover}
}

func (p *Pile) Stones() int {
	return p.stones
}

func (p *Pile) Mover() Player {
	return p.mover
}

func (p *Pile) LegalMoves() []Move {
	moves := make([]Move, 0, MaxNimTake)
	for n := 1; n <= MaxNimTake && n <= p.stones; n++ {
		moves = append(moves, Take{Stones: n, Player: p.mover})
	}
	return moves
}

func (p *Pile) Apply(move Move) error {
	take, ok := move.(Take)
	if !ok {
		return fmt.Errorf("%w: %T is not a nim move", ErrIllegalMove, move)
	}
	if take.Player != p.mover {
		return fmt.Errorf("%w: player %d moved out of turn", ErrIllegalMove, take.Player)
	}
	if take.Stones < 1 || take.Stones > MaxNimTake || take.Stones > p.stones {
		return fmt.Errorf("%w: cannot take %d of %d stones", ErrIllegalMove, take.Stones, p.stones)
	}

	p.stones -= take.Stones
	if p.stones == 0 {
		p.winner = []Player{p.mover}
	}
	p.mover = p.mover.Opponent()
	return nil
}

func (p *Pile) Copy() State {
	c := *p
	return &c
}

func (p *Pile) IsTerminal() bool {
	return p.stones == 0
}

func (p *Pile) Winners() []Player {
	return p.winner
}
