package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseBoard(t *testing.T) {
	t.Run("deriving the mover from the marks", func(t *testing.T) {
		b, err := ParseBoard("X.. / .O. / ..X")
		require.NoError(t, err)
		require.Equal(t, Second, b.Mover(), "O should move after two X and one O")
		require.Len(t, b.LegalMoves(), 6)
		require.False(t, b.IsTerminal())
		require.Equal(t, "X../.O./..X", b.String())
	})

	t.Run("detecting a finished game", func(t *testing.T) {
		b, err := ParseBoard("XXX OO. ...")
		require.NoError(t, err)
		require.True(t, b.IsTerminal())
		require.Equal(t, []Player{First}, b.Winners())
		require.Empty(t, b.LegalMoves(), "A finished game has no moves")
	})

	t.Run("rejecting unreachable positions", func(t *testing.T) {
		_, err := ParseBoard("XXX X.. ...")
		require.Error(t, err)
		_, err = ParseBoard("XO")
		require.Error(t, err)
		_, err = ParseBoard("XOZ ... ...")
		require.Error(t, err)
	})
}

func TestBoardApply(t *testing.T) {
	t.Run("alternating movers", func(t *testing.T) {
		b := NewBoard()
		require.NoError(t, b.Apply(Mark{Square: 4, Player: First}))
		require.Equal(t, Second, b.Mover())
		require.NoError(t, b.Apply(Mark{Square: 0, Player: Second}))
		require.Equal(t, First, b.Mover())
		require.Len(t, b.LegalMoves(), 7)
	})

	t.Run("rejecting illegal moves", func(t *testing.T) {
		b := NewBoard()
		require.NoError(t, b.Apply(Mark{Square: 4, Player: First}))
		require.ErrorIs(t, b.Apply(Mark{Square: 4, Player: Second}), ErrIllegalMove, "Square is taken")
		require.ErrorIs(t, b.Apply(Mark{Square: 0, Player: First}), ErrIllegalMove, "Out of turn")
		require.ErrorIs(t, b.Apply(Take{Stones: 1, Player: Second}), ErrIllegalMove, "Foreign move")
	})

	t.Run("copies are independent", func(t *testing.T) {
		b := NewBoard()
		c := b.Copy()
		require.NoError(t, c.Apply(Mark{Square: 0, Player: First}))
		require.Len(t, b.LegalMoves(), 9, "Original should not change")
		require.Len(t, c.LegalMoves(), 8)
	})

	t.Run("draw has no winners", func(t *testing.T) {
		b, err := ParseBoard("XOX XOO OXX")
		require.NoError(t, err)
		require.True(t, b.IsTerminal())
		require.Empty(t, b.Winners())
	})
}

func TestMark(t *testing.T) {
	require.Equal(t, "a3", Mark{Square: 0}.String())
	require.Equal(t, "b2", Mark{Square: 4}.String())
	require.Equal(t, "c1", Mark{Square: 8}.String())
}
