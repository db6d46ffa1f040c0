package obsdata_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/obskit/obstable/pkg/obsdata"
)

func TestColumnKinds(t *testing.T) {
	t.Run("Int", func(t *testing.T) {
		col := obsdata.IntColumn([]int64{1, 2, 3})
		require.Equal(t, obsdata.KindInt, col.Kind())
		require.Equal(t, 3, col.Len())
		require.Equal(t, []int64{1, 2, 3}, col.Ints())
	})

	t.Run("Bool", func(t *testing.T) {
		col := obsdata.BoolColumn([]bool{true, false, true})
		require.Equal(t, obsdata.KindBool, col.Kind())
		require.Equal(t, []int64{1, 0, 1}, col.Ints())
	})

	t.Run("Float", func(t *testing.T) {
		col := obsdata.FloatColumn([]float64{1.5, 2.5})
		require.Equal(t, obsdata.KindFloat, col.Kind())
		require.Equal(t, 2, col.Len())
	})

	t.Run("Timestamp", func(t *testing.T) {
		now := time.Now()
		col := obsdata.TimeColumn([]time.Time{now})
		require.Equal(t, obsdata.KindTimestamp, col.Kind())
		require.True(t, col.Times()[0].Equal(now))
	})

	t.Run("KindMismatchPanics", func(t *testing.T) {
		col := obsdata.StringColumn([]string{"a"})
		require.Panics(t, func() { col.Floats() })
		require.Panics(t, func() { col.Ints() })
	})
}

func TestMissingColumn(t *testing.T) {
	for _, kind := range []obsdata.Kind{
		obsdata.KindInt,
		obsdata.KindFloat,
		obsdata.KindString,
		obsdata.KindTimestamp,
	} {
		t.Run(kind.String(), func(t *testing.T) {
			col := obsdata.MissingColumn(kind, 4)
			require.Equal(t, kind, col.Kind())
			require.Equal(t, 4, col.Len())
			for i := 0; i < col.Len(); i++ {
				require.True(t, col.IsMissing(i))
			}
		})
	}

	t.Run("BoolNeverMissing", func(t *testing.T) {
		col := obsdata.MissingColumn(obsdata.KindBool, 2)
		require.Equal(t, obsdata.KindBool, col.Kind())
		require.Equal(t, []int64{0, 0}, col.Ints())
		require.False(t, col.IsMissing(0))
	})
}

func TestIsMissing(t *testing.T) {
	col := obsdata.FloatColumn([]float64{1.0, obsdata.MissingFloat, 3.0})
	require.False(t, col.IsMissing(0))
	require.True(t, col.IsMissing(1))
	require.False(t, col.IsMissing(2))
}

func TestParseKind(t *testing.T) {
	for _, tc := range []struct {
		text string
		kind obsdata.Kind
	}{
		{"int", obsdata.KindInt},
		{"float", obsdata.KindFloat},
		{"string", obsdata.KindString},
		{"timestamp", obsdata.KindTimestamp},
		{"bool", obsdata.KindBool},
	} {
		kind, err := obsdata.ParseKind(tc.text)
		require.NoError(t, err)
		require.Equal(t, tc.kind, kind)
	}

	_, err := obsdata.ParseKind("complex")
	var unsupported obsdata.UnsupportedKindError
	require.ErrorAs(t, err, &unsupported)
	require.Equal(t, "complex", unsupported.Name)
}
