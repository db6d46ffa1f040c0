package printer

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"github.com/obskit/obstable/pkg/collective"
)

// An orderedPosition pairs a global record number with the index of that
// record in the gathered flat columns. The reconciled sequence is ordered
// ascending by global record number and is identical on every process.
type orderedPosition struct {
	Loc int64
	Idx int
}

// reconcile recovers the global record ordering from the gathered local
// index maps, and gathers the predicate flags alongside.
//
// The gathered index map is generally out of order (the distribution policy
// interleaves records across shards) and may contain gaps where records were
// dropped upstream; both are expected. Ties between duplicate record numbers
// keep their gather order, which is deterministic given the rank-ordered
// concatenation.
func (p *Printer) reconcile(ctx context.Context, where string) ([]orderedPosition, []int64, error) {
	local, err := p.store.EvaluatePredicate(where)
	if err != nil {
		return nil, nil, errors.Wrap(err, "evaluating predicate")
	}

	applyLocal := make([]int64, len(local))
	for i, keep := range local {
		if keep {
			applyLocal[i] = 1
		}
	}
	// When output is restricted to rank 0, only rank 0's records stay
	// eligible for selection; the ordering below still covers every shard.
	if p.cfg.PrintRank0 && p.comm.Rank() != 0 {
		for i := range applyLocal {
			applyLocal[i] = 0
		}
	}

	apply, err := collective.GatherAll(ctx, p.comm, applyLocal)
	if err != nil {
		return nil, nil, errors.Wrap(err, "gathering predicate flags")
	}
	index, err := collective.GatherAll(ctx, p.comm, p.store.LocalIndex())
	if err != nil {
		return nil, nil, errors.Wrap(err, "gathering index map")
	}
	if len(apply) != len(index) {
		return nil, nil, errors.Errorf("gathered %d predicate flags for %d records", len(apply), len(index))
	}

	sortIdx := make([]int, len(index))
	for i := range sortIdx {
		sortIdx[i] = i
	}
	sort.SliceStable(sortIdx, func(a, b int) bool {
		return index[sortIdx[a]] < index[sortIdx[b]]
	})

	positions := make([]orderedPosition, len(index))
	for i, idx := range sortIdx {
		positions[i] = orderedPosition{Loc: index[idx], Idx: idx}
	}
	return positions, apply, nil
}
