package game

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

const boardSize = 9

var ErrIllegalMove = errors.New("illegal move")

// Lines of three squares that win tic-tac-toe
var winningLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Mark places the mover's symbol on a square (0..8, row by row).
type Mark struct {
	Square int
	Player Player
}

func (m Mark) Mover() Player {
	return m.Player
}

func (m Mark) String() string {
	return fmt.Sprintf("%c%d", 'a'+m.Square%3, 3-m.Square/3)
}

type TicTacToe struct{}

func (TicTacToe) Name() string {
	return "tic-tac-toe"
}

func (TicTacToe) IsAlternating() bool {
	return true
}

func (TicTacToe) NewState() State {
	return NewBoard()
}

// Board is a 3x3 tic-tac-toe position. First plays X, Second plays O.
type Board struct {
	cells  [boardSize]int8 // 0 empty, 1 First, 2 Second
	mover  Player
	winner int8 // 0 none, otherwise the cell value of the winner
	filled int
}

func NewBoard() *Board {
	return &Board{mover: First}
}

// ParseBoard reads a position from 9 characters 'X', 'O' or '.', row by row.
// Whitespace and '/' between squares are ignored.
// The player to move is derived from the number of marks.
func ParseBoard(s string) (*Board, error) {
	s = strings.Map(func(r rune) rune {
		if r == '/' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if len(s) != boardSize {
		return nil, fmt.Errorf("board %q: want %d squares, got %d", s, boardSize, len(s))
	}
	b := NewBoard()
	crosses, noughts := 0, 0
	for i, c := range s {
		switch c {
		case 'X', 'x':
			b.cells[i] = 1
			crosses++
		case 'O', 'o':
			b.cells[i] = 2
			noughts++
		case '.', '-', '_':
		default:
			return nil, fmt.Errorf("board %q: unexpected square %q", s, c)
		}
	}
	if crosses != noughts && crosses != noughts+1 {
		return nil, fmt.Errorf("board %q: %d X and %d O is unreachable", s, crosses, noughts)
	}
	if crosses > noughts {
		b.mover = Second
	}
	b.filled = crosses + noughts
	b.winner = b.findWinner()
	return b, nil
}

func (b *Board) Mover() Player {
	return b.mover
}

func (b *Board) LegalMoves() []Move {
	if b.IsTerminal() {
		return nil
	}
	moves := make([]Move, 0, boardSize-b.filled)
	for sq, c := range b.cells {
		if c == 0 {
			moves = append(moves, Mark{Square: sq, Player: b.mover})
		}
	}
	return moves
}

func (b *Board) Apply(move Move) error {
	mark, ok := move.(Mark)
	if !ok {
		return fmt.Errorf("%w: %T is not a tic-tac-toe mark", ErrIllegalMove, move)
	}
	if b.IsTerminal() {
		return fmt.Errorf("%w: %v on a finished game", ErrIllegalMove, mark)
	}
	if mark.Square < 0 || mark.Square >= boardSize || b.cells[mark.Square] != 0 {
		return fmt.Errorf("%w: square %v is not free", ErrIllegalMove, mark)
	}
	if mark.Player != b.mover {
		return fmt.Errorf("%w: player %d moved out of turn", ErrIllegalMove, mark.Player)
	}

	b.cells[mark.Square] = int8(mark.Player) + 1
	b.filled++
	b.winner = b.findWinner()
	b.mover = b.mover.Opponent()
	return nil
}

func (b *Board) Copy() State {
	c := *b
	return &c
}

func (b *Board) IsTerminal() bool {
	return b.winner != 0 || b.filled == boardSize
}

func (b *Board) Winners() []Player {
	if b.winner == 0 {
		return nil
	}
	return []Player{Player(b.winner - 1)}
}

func (b *Board) findWinner() int8 {
	for _, line := range winningLines {
		c := b.cells[line[0]]
		if c != 0 && c == b.cells[line[1]] && c == b.cells[line[2]] {
			return c
		}
	}
	return 0
}

func (b *Board) String() string {
	var sb strings.Builder
	for i, c := range b.cells {
		switch c {
		case 1:
			sb.WriteByte('X')
		case 2:
			sb.WriteByte('O')
		default:
			sb.WriteByte('.')
		}
		if i%3 == 2 && i != boardSize-1 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}
