package printer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testPositions() ([]orderedPosition, []int64) {
	// Gathered order [2, 4, 1, 3] reconciled ascending, as produced by two
	// shards holding [2, 4] and [1, 3].
	positions := []orderedPosition{
		{Loc: 1, Idx: 2},
		{Loc: 2, Idx: 0},
		{Loc: 3, Idx: 3},
		{Loc: 4, Idx: 1},
	}
	apply := []int64{1, 1, 1, 1}
	return positions, apply
}

func TestSelectPositions(t *testing.T) {
	t.Run("NoUpperLimit", func(t *testing.T) {
		positions, apply := testPositions()
		selected, err := selectPositions(positions, apply, 0, 0)
		require.NoError(t, err)
		// A maximum of zero selects [0, total); record 4 falls outside.
		require.Equal(t, []orderedPosition{{Loc: 1, Idx: 2}, {Loc: 2, Idx: 0}, {Loc: 3, Idx: 3}}, selected)
	})

	t.Run("ExplicitWindow", func(t *testing.T) {
		positions, apply := testPositions()
		selected, err := selectPositions(positions, apply, 2, 4)
		require.NoError(t, err)
		require.Equal(t, []orderedPosition{{Loc: 2, Idx: 0}, {Loc: 3, Idx: 3}}, selected)
	})

	t.Run("EqualBoundsSelectNothing", func(t *testing.T) {
		positions, apply := testPositions()
		selected, err := selectPositions(positions, apply, 2, 2)
		require.NoError(t, err)
		require.Empty(t, selected)
	})

	t.Run("MinimumClamped", func(t *testing.T) {
		positions, apply := testPositions()
		selected, err := selectPositions(positions, apply, 100, 6)
		require.NoError(t, err)
		// 100 clamps to total-1 = 3.
		require.Equal(t, []orderedPosition{{Loc: 3, Idx: 3}, {Loc: 4, Idx: 1}}, selected)
	})

	t.Run("InvalidRange", func(t *testing.T) {
		positions, apply := testPositions()
		_, err := selectPositions(positions, apply, 100, 2)
		var invalid InvalidRangeError
		require.ErrorAs(t, err, &invalid)
		require.Equal(t, 3, invalid.Min)
		require.Equal(t, 2, invalid.Max)
	})

	t.Run("PredicateFilters", func(t *testing.T) {
		positions, apply := testPositions()
		apply[0] = 0 // the record at gathered index 0, global record 2
		selected, err := selectPositions(positions, apply, 0, 6)
		require.NoError(t, err)
		require.Equal(t, []orderedPosition{{Loc: 1, Idx: 2}, {Loc: 3, Idx: 3}, {Loc: 4, Idx: 1}}, selected)
	})

	t.Run("NoRecords", func(t *testing.T) {
		selected, err := selectPositions(nil, nil, 5, 2)
		require.NoError(t, err)
		require.Empty(t, selected)
	})
}

func TestPageSize(t *testing.T) {
	// Column width 8 plus " | " costs 11 per record; a 40-wide budget with a
	// 10-wide name column fits 2.
	require.Equal(t, 2, pageSize(40, 10, 8))
	require.Equal(t, 9, pageSize(120, 11, 8))

	// At least one record prints even when it overflows the budget.
	require.Equal(t, 1, pageSize(20, 30, 8))
}

func TestPaginate(t *testing.T) {
	positions := make([]orderedPosition, 5)
	for i := range positions {
		positions[i] = orderedPosition{Loc: int64(i), Idx: i}
	}

	pages := paginate(positions, 2)
	require.Len(t, pages, 3)
	require.Len(t, pages[0], 2)
	require.Len(t, pages[1], 2)
	require.Len(t, pages[2], 1)
	require.Equal(t, int64(4), pages[2][0].Loc)

	require.Empty(t, paginate(nil, 2))
}
