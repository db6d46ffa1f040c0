// Package collective implements the blocking gather-all primitive used to
// assemble process-wide views of sharded observation data. Every member of a
// group must issue the same sequence of collective calls; a diverging member
// either deadlocks the group or is detected as having contributed twice to
// one round. That is a programming error in the caller, not a recoverable
// condition.
package collective

import (
	"context"

	"github.com/pkg/errors"

	"github.com/obskit/obstable/pkg/obsdata"
)

// A Collective connects one member to its process group.
type Collective interface {
	// Rank returns this member's rank, in [0, Size).
	Rank() int

	// Size returns the number of members in the group.
	Size() int

	// Exchange blocks until every member of the group has contributed a
	// value, then returns all contributions in rank order. Every member
	// receives the same slice contents.
	Exchange(ctx context.Context, local any) ([]any, error)
}

// GatherAll runs one collective exchange over a typed slice and returns the
// rank-ordered concatenation of every member's contribution. The result is
// identical on every member.
func GatherAll[T any](ctx context.Context, c Collective, local []T) ([]T, error) {
	parts, err := c.Exchange(ctx, local)
	if err != nil {
		return nil, err
	}

	var n int
	typed := make([][]T, 0, len(parts))
	for rank, part := range parts {
		p, ok := part.([]T)
		if !ok {
			return nil, errors.Errorf("collective: rank %d contributed %T to a %T gather", rank, part, local)
		}
		typed = append(typed, p)
		n += len(p)
	}

	out := make([]T, 0, n)
	for _, p := range typed {
		out = append(out, p...)
	}
	return out, nil
}

// GatherColumn gathers a whole typed column, preserving its kind. Boolean
// columns travel as their 0/1 int representation.
func GatherColumn(ctx context.Context, c Collective, col obsdata.Column) (obsdata.Column, error) {
	switch col.Kind() {
	case obsdata.KindInt:
		v, err := GatherAll(ctx, c, col.Ints())
		if err != nil {
			return obsdata.Column{}, err
		}
		return obsdata.IntColumn(v), nil
	case obsdata.KindBool:
		v, err := GatherAll(ctx, c, col.Ints())
		if err != nil {
			return obsdata.Column{}, err
		}
		return obsdata.BoolColumnFromInts(v), nil
	case obsdata.KindFloat:
		v, err := GatherAll(ctx, c, col.Floats())
		if err != nil {
			return obsdata.Column{}, err
		}
		return obsdata.FloatColumn(v), nil
	case obsdata.KindString:
		v, err := GatherAll(ctx, c, col.Strings())
		if err != nil {
			return obsdata.Column{}, err
		}
		return obsdata.StringColumn(v), nil
	case obsdata.KindTimestamp:
		v, err := GatherAll(ctx, c, col.Times())
		if err != nil {
			return obsdata.Column{}, err
		}
		return obsdata.TimeColumn(v), nil
	default:
		return obsdata.Column{}, obsdata.UnsupportedKindError{Name: col.Kind().String()}
	}
}
