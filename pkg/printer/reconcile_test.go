package printer

import (
	"context"
	"io"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/obskit/obstable/pkg/collective"
	"github.com/obskit/obstable/pkg/obsdata"
	"github.com/obskit/obstable/pkg/obsdata/memstore"
)

func testConfig() Config {
	return Config{
		ColumnWidth:    8,
		MaxTextWidth:   120,
		FloatPrecision: 2,
	}
}

// Six original records with 0 and 5 dropped upstream; under a two-way round
// robin, rank 0 holds [2, 4] and rank 1 holds [1, 3].
func reconcileDataset() *memstore.Dataset {
	return &memstore.Dataset{
		TotalRecords: 6,
		Surviving:    []int64{1, 2, 3, 4},
		Columns: map[string]*memstore.ColumnData{
			"ObsValue/airTemperature": {
				Kind:   "float",
				Floats: []float64{273.1, 250.5, 230.0, 300.25},
			},
		},
	}
}

func TestReconcileRecoversGlobalOrder(t *testing.T) {
	ds := reconcileDataset()
	require.NoError(t, ds.Validate())

	const size = 2
	group := collective.NewGroup(size, nil)

	// The gathered index map is [2, 4, 1, 3]; the reconciled ordering must
	// walk it as 1, 2, 3, 4 regardless of which rank computes it.
	want := []orderedPosition{
		{Loc: 1, Idx: 2},
		{Loc: 2, Idx: 0},
		{Loc: 3, Idx: 3},
		{Loc: 4, Idx: 1},
	}

	results := make([][]orderedPosition, size)
	applies := make([][]int64, size)
	g, ctx := errgroup.WithContext(context.Background())
	for rank := 0; rank < size; rank++ {
		rank := rank
		p := New(ds.Shard(rank, size), group.Member(rank), testConfig(), log.NewNopLogger(), io.Discard)
		g.Go(func() error {
			positions, apply, err := p.reconcile(ctx, "")
			results[rank] = positions
			applies[rank] = apply
			return err
		})
	}
	require.NoError(t, g.Wait())

	for rank := 0; rank < size; rank++ {
		require.Equal(t, want, results[rank], "rank %d", rank)
		require.Equal(t, []int64{1, 1, 1, 1}, applies[rank], "rank %d", rank)
	}
}

func TestReconcileRank0Restriction(t *testing.T) {
	ds := reconcileDataset()
	require.NoError(t, ds.Validate())

	const size = 2
	group := collective.NewGroup(size, nil)
	cfg := testConfig()
	cfg.PrintRank0 = true

	applies := make([][]int64, size)
	g, ctx := errgroup.WithContext(context.Background())
	for rank := 0; rank < size; rank++ {
		rank := rank
		p := New(ds.Shard(rank, size), group.Member(rank), cfg, log.NewNopLogger(), io.Discard)
		g.Go(func() error {
			_, apply, err := p.reconcile(ctx, "")
			applies[rank] = apply
			return err
		})
	}
	require.NoError(t, g.Wait())

	// Only rank 0's records (gathered first) stay eligible; the flags are
	// identical on both ranks.
	require.Equal(t, []int64{1, 1, 0, 0}, applies[0])
	require.Equal(t, applies[0], applies[1])
}

// dupStore is a stand-in shard whose index map contains duplicate global
// record numbers, as can arise from overlapping distribution policies.
type dupStore struct {
	index []int64
}

func (s *dupStore) Has(obsdata.Variable) bool { return false }

func (s *dupStore) Kind(obsdata.Variable) (obsdata.Kind, error) {
	return obsdata.KindInvalid, obsdata.ErrNotPresent
}

func (s *dupStore) LevelCount(obsdata.Variable) int { return 0 }

func (s *dupStore) FetchLocal(obsdata.Variable, int, bool) (obsdata.Column, error) {
	return obsdata.Column{}, obsdata.ErrNotPresent
}

func (s *dupStore) FetchLevel(obsdata.Variable, int) ([]float64, error) {
	return nil, obsdata.ErrNotPresent
}

func (s *dupStore) LocalIndex() []int64 { return s.index }

func (s *dupStore) NumLocal() int { return len(s.index) }

func (s *dupStore) EvaluatePredicate(string) ([]bool, error) {
	out := make([]bool, len(s.index))
	for i := range out {
		out[i] = true
	}
	return out, nil
}

func TestReconcileDuplicateIndicesKeepGatherOrder(t *testing.T) {
	store := &dupStore{index: []int64{5, 3, 3}}
	p := New(store, collective.Single(), testConfig(), log.NewNopLogger(), io.Discard)

	positions, _, err := p.reconcile(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, []orderedPosition{
		{Loc: 3, Idx: 1},
		{Loc: 3, Idx: 2},
		{Loc: 5, Idx: 0},
	}, positions)
}
