package printer

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/obskit/obstable/pkg/collective"
	"github.com/obskit/obstable/pkg/obsdata"
)

// materialize fetches and gathers every requested variable, returning the
// table of gathered columns keyed by rendered key.
//
// The sequence of collective calls issued here is derived only from the
// shared request and from previously gathered data, never from data that
// varies between processes. A shard whose local fetch fails still
// contributes a sentinel-filled column of its shard length, so gathered
// shapes stay matched across the group. Branching on locally-varying state
// instead would desynchronize the collective and deadlock the group.
func (p *Printer) materialize(ctx context.Context, w io.Writer, req Request) (map[string]obsdata.Column, error) {
	table := make(map[string]obsdata.Column)
	for _, vr := range req.Variables {
		v := vr.Variable

		var presentLocal int64
		if p.store.Has(v) {
			presentLocal = 1
		}
		present, err := collective.GatherAll(ctx, p.comm, []int64{presentLocal})
		if err != nil {
			return nil, errors.Wrapf(err, "gathering presence of %s", v.FullName())
		}
		if !anyNonzero(present) {
			fmt.Fprintf(w, "%s not present in the table data\n", v.FullName())
			continue
		}

		if v.LevelResolved() {
			if err := p.materializeLevels(ctx, w, vr, table); err != nil {
				return nil, err
			}
			continue
		}
		if err := p.materializeChannels(ctx, w, vr, table); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// materializeChannels handles scalar and per-channel variables. Channel 0
// addresses an unchanneled variable.
func (p *Printer) materializeChannels(ctx context.Context, w io.Writer, vr obsdata.VariableRequest, table map[string]obsdata.Column) error {
	v := vr.Variable
	channels := vr.Variable.Channels
	if len(channels) == 0 {
		channels = []int{0}
	}
	for _, ch := range channels {
		key := v.FullName()
		if ch != 0 {
			key = v.KeyForChannel(ch)
		}

		local, fetchErr := p.store.FetchLocal(v, ch, p.cfg.SkipDerived)
		if fetchErr != nil {
			if !errors.Is(fetchErr, obsdata.ErrNotPresent) {
				return errors.Wrapf(fetchErr, "fetching %s", key)
			}
			fmt.Fprintf(w, "%s not present in the table data\n", key)
			local = obsdata.MissingColumn(vr.Kind, p.store.NumLocal())
		} else if local.Kind() != vr.Kind {
			// A declared kind that disagrees with the stored kind is a
			// configuration error; the mismatch would desynchronize the
			// gather shapes between shards.
			return errors.Errorf("variable %s stored as %s but declared as %s", key, local.Kind(), vr.Kind)
		}

		ok := int64(1)
		if fetchErr != nil {
			ok = 0
		}
		fetched, err := collective.GatherAll(ctx, p.comm, []int64{ok})
		if err != nil {
			return errors.Wrapf(err, "gathering availability of %s", key)
		}
		global, err := collective.GatherColumn(ctx, p.comm, local)
		if err != nil {
			return errors.Wrapf(err, "gathering %s", key)
		}
		if anyNonzero(fetched) {
			table[key] = global
		}
	}
	return nil
}

// materializeLevels handles variables drawn from level-resolved sources. The
// level count is agreed across the group first, so the per-level skip
// decisions are identical on every process.
func (p *Printer) materializeLevels(ctx context.Context, w io.Writer, vr obsdata.VariableRequest, table map[string]obsdata.Column) error {
	v := vr.Variable
	counts, err := collective.GatherAll(ctx, p.comm, []int64{int64(p.store.LevelCount(v))})
	if err != nil {
		return errors.Wrapf(err, "gathering level count of %s", v.FullName())
	}
	var nlevs int64
	for _, c := range counts {
		if c > nlevs {
			nlevs = c
		}
	}

	for _, level := range vr.Levels {
		key := v.KeyAtLevel(level)
		if level < 0 || int64(level) >= nlevs {
			fmt.Fprintf(w, "%s not present in the table data\n", key)
			continue
		}

		local, fetchErr := p.store.FetchLevel(v, level)
		if fetchErr != nil {
			if !errors.Is(fetchErr, obsdata.ErrNotPresent) {
				return errors.Wrapf(fetchErr, "fetching %s", key)
			}
			fmt.Fprintf(w, "%s not present in the table data\n", key)
			local = obsdata.MissingColumn(obsdata.KindFloat, p.store.NumLocal()).Floats()
		}

		ok := int64(1)
		if fetchErr != nil {
			ok = 0
		}
		fetched, err := collective.GatherAll(ctx, p.comm, []int64{ok})
		if err != nil {
			return errors.Wrapf(err, "gathering availability of %s", key)
		}
		global, err := collective.GatherAll(ctx, p.comm, local)
		if err != nil {
			return errors.Wrapf(err, "gathering %s", key)
		}
		if anyNonzero(fetched) {
			table[key] = obsdata.FloatColumn(global)
		}
	}
	return nil
}

func anyNonzero(flags []int64) bool {
	for _, f := range flags {
		if f != 0 {
			return true
		}
	}
	return false
}
