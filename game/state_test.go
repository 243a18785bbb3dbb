package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTurnOther(t *testing.T) {
	require.Equal(t, Player2, Player1.Other())
	require.Equal(t, Player1, Player2.Other())
}

func TestSnapshot(t *testing.T) {
	t.Run("half selects the requested side", func(t *testing.T) {
		s := &Snapshot{Player1: HalfBoard{1}, Player2: HalfBoard{2}}

		require.Equal(t, HalfBoard{1}, s.Half(Player1))
		require.Equal(t, HalfBoard{2}, s.Half(Player2))
	})

	t.Run("nil legality allows nothing", func(t *testing.T) {
		s := &Snapshot{}
		for i := 0; i < NumMoves; i++ {
			require.False(t, s.IsValidIndex(i))
		}
	})

	t.Run("legality is delegated", func(t *testing.T) {
		s := &Snapshot{Legal: MaskOf(3, 9).Allows}

		require.True(t, s.IsValidIndex(3))
		require.True(t, s.IsValidIndex(9))
		require.False(t, s.IsValidIndex(4))
	})
}

func TestMask(t *testing.T) {
	m := MaskOf(0, 15, 16, -1)

	require.True(t, m.Allows(0))
	require.True(t, m.Allows(15))
	require.False(t, m.Allows(7))
	require.False(t, m.Allows(16), "out-of-range indices are never playable")
	require.False(t, m.Allows(-1), "out-of-range indices are never playable")
}
