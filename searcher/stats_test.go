package searcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStats(t *testing.T) {
	t.Run("failing queries without decisions", func(t *testing.T) {
		var s Stats
		_, err := s.FirstDepth()
		require.ErrorIs(t, err, ErrNoDecisions)
		_, err = s.MeanDepth()
		require.ErrorIs(t, err, ErrNoDecisions)
		_, err = s.MeanSeconds()
		require.ErrorIs(t, err, ErrNoDecisions)
	})

	t.Run("aggregating records", func(t *testing.T) {
		var s Stats
		s.Record(DecisionRecord{Depth: 3, Elapsed: 1500 * time.Millisecond})
		s.Record(DecisionRecord{Depth: 4, Elapsed: 500 * time.Millisecond})

		first, err := s.FirstDepth()
		require.NoError(t, err)
		require.Equal(t, 3, first)
		mean, err := s.MeanDepth()
		require.NoError(t, err)
		require.Equal(t, 3.5, mean)
		seconds, err := s.MeanSeconds()
		require.NoError(t, err)
		require.InDelta(t, 1.0, seconds, 1e-9)
		require.Equal(t, 2, s.Len())
	})

	t.Run("returning a copy of the records", func(t *testing.T) {
		var s Stats
		s.Record(DecisionRecord{Depth: 1})
		records := s.Records()
		records[0].Depth = 7

		first, err := s.FirstDepth()
		require.NoError(t, err)
		require.Equal(t, 1, first)
	})

	t.Run("resetting", func(t *testing.T) {
		var s Stats
		s.Record(DecisionRecord{Depth: 1})
		s.Reset()
		require.Zero(t, s.Len())
	})
}
