// Package printer reconstructs a globally-ordered view of a partitioned
// observation dataset and renders it as a paginated diagnostic table.
//
// Every cooperating process runs the same Render call over its own shard.
// The pipeline gathers shards into identical process-wide views, recovers
// the original global record ordering, applies the record window and
// predicate, and prints width-bounded table pages. All processes compute
// identical results; output may be restricted to rank 0.
package printer

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/obskit/obstable/pkg/collective"
	"github.com/obskit/obstable/pkg/obsdata"
)

// A Printer renders diagnostic tables from one process's shard of an
// observation dataset. A Printer holds no per-request state; everything
// built during Render is discarded when it returns.
type Printer struct {
	store  obsdata.Store
	comm   collective.Collective
	cfg    Config
	logger log.Logger
	out    io.Writer
}

// New returns a Printer over one shard. Out receives notices and the
// formatted table; when cfg.PrintRank0 is set, members with nonzero rank
// discard their output while still computing identically.
func New(store obsdata.Store, comm collective.Collective, cfg Config, logger log.Logger, out io.Writer) *Printer {
	return &Printer{
		store:  store,
		comm:   comm,
		cfg:    cfg,
		logger: logger,
		out:    out,
	}
}

// Render materializes, orders, selects and prints the requested variables.
// Per-variable unavailability is reported inline and never aborts the
// request; a contradictory record window fails the whole invocation with an
// InvalidRangeError.
//
// Render is collective: every member of the process group must call it with
// an identical request and configuration.
func (p *Printer) Render(ctx context.Context, req Request) error {
	if err := p.cfg.Validate(); err != nil {
		return errors.Wrap(err, "validating printer config")
	}
	// Validation resolves kinds and level order in place; work on a copy so
	// a request shared between group members stays untouched.
	req.Variables = append([]obsdata.VariableRequest(nil), req.Variables...)
	if err := req.Validate(); err != nil {
		return errors.Wrap(err, "validating request")
	}

	w := p.out
	if p.cfg.PrintRank0 && p.comm.Rank() != 0 {
		w = io.Discard
	}

	p.banner(w)

	if p.cfg.Summary {
		sizes, err := collective.GatherAll(ctx, p.comm, []int64{int64(p.store.NumLocal())})
		if err != nil {
			return errors.Wrap(err, "gathering shard sizes")
		}
		var total int64
		for _, n := range sizes {
			total += n
		}
		fmt.Fprintf(w, "Locations: %d\n", total)
		fmt.Fprintf(w, "Requested variables: %d\n\n", len(req.Variables))
	}

	level.Debug(p.logger).Log("msg", "materializing variables", "variables", len(req.Variables))
	table, err := p.materialize(ctx, w, req)
	if err != nil {
		return err
	}

	level.Debug(p.logger).Log("msg", "reconciling global order")
	positions, apply, err := p.reconcile(ctx, req.Where)
	if err != nil {
		return err
	}

	selected, err := selectPositions(positions, apply, req.LocMin, req.LocMax)
	if err != nil {
		return err
	}

	nameWidth := nameColumnWidth(req, table)
	pages := paginate(selected, pageSize(p.cfg.MaxTextWidth, nameWidth, p.cfg.ColumnWidth))
	level.Debug(p.logger).Log("msg", "rendering table", "selected", len(selected), "pages", len(pages))

	p.renderPages(w, req, table, nameWidth, pages)
	return nil
}

func (p *Printer) banner(w io.Writer) {
	const title = "### Printing table data ###"
	bar := strings.Repeat("#", len(title))
	fmt.Fprintf(w, "\n%s\n%s\n%s\n\n\n", bar, title, bar)
	if p.cfg.Message != "" {
		fmt.Fprintf(w, "%s\n\n", p.cfg.Message)
	}
}
