// Package memstore provides an in-memory implementation of the observation
// store, holding one logical global sample and deriving per-rank shards from
// it under a round-robin distribution. It backs the obstable command and the
// printing pipeline's tests.
package memstore

import (
	"time"

	"github.com/pkg/errors"

	"github.com/obskit/obstable/pkg/obsdata"
)

// A ColumnData describes one global column of the dataset in a form that can
// be loaded from YAML. Exactly one of the value sequences must be populated,
// matching Kind, with one entry per surviving record.
type ColumnData struct {
	Kind    string    `yaml:"kind"`
	Derived bool      `yaml:"derived,omitempty"`
	Ints    []int64   `yaml:"ints,omitempty"`
	Floats  []float64 `yaml:"floats,omitempty"`
	Strings []string  `yaml:"strings,omitempty"`
	Times   []string  `yaml:"times,omitempty"`
	Bools   []bool    `yaml:"bools,omitempty"`

	kind   obsdata.Kind
	column obsdata.Column
}

// A Dataset is the logical global observation sample before distribution.
// Surviving lists the global record numbers still present after upstream
// filtering, ascending; records outside it were dropped and leave gaps in
// the global numbering. Column and level data are indexed by surviving
// position, not by global record number.
type Dataset struct {
	TotalRecords int     `yaml:"total_records"`
	Surviving    []int64 `yaml:"surviving"`

	// Columns maps "Group/name" (or "Group/name_<ch>" for channeled
	// variables) to its global values.
	Columns map[string]*ColumnData `yaml:"columns"`

	// Levels maps "Group/name" to per-level planes for level-resolved
	// variables; Levels[key][l] holds level l across all surviving records.
	Levels map[string][][]float64 `yaml:"levels,omitempty"`

	// Presence optionally restricts a variable full name to a set of ranks.
	// A rank outside the set sees the variable as absent from its shard.
	Presence map[string][]int `yaml:"presence,omitempty"`
}

// Validate resolves declared kinds and checks that every column and level
// plane covers each surviving record.
func (d *Dataset) Validate() error {
	n := len(d.Surviving)
	for i := 1; i < n; i++ {
		if d.Surviving[i] <= d.Surviving[i-1] {
			return errors.Errorf("memstore: surviving record numbers must be ascending, got %d after %d",
				d.Surviving[i], d.Surviving[i-1])
		}
	}
	if n > 0 && d.Surviving[n-1] >= int64(d.TotalRecords) {
		return errors.Errorf("memstore: surviving record %d outside sample of %d records",
			d.Surviving[n-1], d.TotalRecords)
	}
	for key, col := range d.Columns {
		if err := col.resolve(n); err != nil {
			return errors.Wrapf(err, "column %q", key)
		}
	}
	for key, planes := range d.Levels {
		for l, plane := range planes {
			if len(plane) != n {
				return errors.Errorf("memstore: level plane %q level %d has %d values, want %d",
					key, l, len(plane), n)
			}
		}
	}
	return nil
}

func (c *ColumnData) resolve(n int) error {
	kind, err := obsdata.ParseKind(c.Kind)
	if err != nil {
		return err
	}
	c.kind = kind

	switch kind {
	case obsdata.KindInt:
		c.column = obsdata.IntColumn(c.Ints)
	case obsdata.KindFloat:
		c.column = obsdata.FloatColumn(c.Floats)
	case obsdata.KindString:
		c.column = obsdata.StringColumn(c.Strings)
	case obsdata.KindTimestamp:
		times := make([]time.Time, len(c.Times))
		for i, text := range c.Times {
			t, err := time.Parse(time.RFC3339, text)
			if err != nil {
				return errors.Wrapf(err, "timestamp %d", i)
			}
			times[i] = t
		}
		c.column = obsdata.TimeColumn(times)
	case obsdata.KindBool:
		c.column = obsdata.BoolColumn(c.Bools)
	}
	if c.column.Len() != n {
		return errors.Errorf("memstore: column has %d values, want %d", c.column.Len(), n)
	}
	return nil
}

// Shard returns the Store view of one rank under a round-robin distribution
// of the surviving records by global record number. Shards are disjoint,
// uneven and non-contiguous in general.
func (d *Dataset) Shard(rank, size int) *Store {
	var positions []int
	var index []int64
	for pos, loc := range d.Surviving {
		if int(loc)%size == rank {
			positions = append(positions, pos)
			index = append(index, loc)
		}
	}
	return &Store{ds: d, rank: rank, positions: positions, index: index}
}

// A Store is one rank's shard view of a Dataset. It implements
// [obsdata.Store].
type Store struct {
	ds        *Dataset
	rank      int
	positions []int
	index     []int64
}

var _ obsdata.Store = (*Store)(nil)

// columnKeys returns the dataset keys a variable can resolve to, in channel
// order.
func columnKeys(v obsdata.Variable) []string {
	if len(v.Channels) == 0 {
		return []string{v.FullName()}
	}
	keys := make([]string, 0, len(v.Channels))
	for _, ch := range v.Channels {
		keys = append(keys, v.KeyForChannel(ch))
	}
	return keys
}

func (s *Store) visible(v obsdata.Variable) bool {
	ranks, restricted := s.ds.Presence[v.FullName()]
	if !restricted {
		return true
	}
	for _, r := range ranks {
		if r == s.rank {
			return true
		}
	}
	return false
}

// Has reports whether any column or level plane of v exists in this shard.
func (s *Store) Has(v obsdata.Variable) bool {
	if !s.visible(v) {
		return false
	}
	if v.LevelResolved() {
		_, ok := s.ds.Levels[v.FullName()]
		return ok
	}
	for _, key := range columnKeys(v) {
		if _, ok := s.ds.Columns[key]; ok {
			return true
		}
	}
	return false
}

// Kind returns the stored kind of v, taken from its first present column.
// Level-resolved variables are always float valued.
func (s *Store) Kind(v obsdata.Variable) (obsdata.Kind, error) {
	if !s.visible(v) {
		return obsdata.KindInvalid, obsdata.ErrNotPresent
	}
	if v.LevelResolved() {
		if _, ok := s.ds.Levels[v.FullName()]; ok {
			return obsdata.KindFloat, nil
		}
		return obsdata.KindInvalid, obsdata.ErrNotPresent
	}
	for _, key := range columnKeys(v) {
		if col, ok := s.ds.Columns[key]; ok {
			return col.kind, nil
		}
	}
	return obsdata.KindInvalid, obsdata.ErrNotPresent
}

// LevelCount returns the number of level planes held for v.
func (s *Store) LevelCount(v obsdata.Variable) int {
	if !s.visible(v) {
		return 0
	}
	return len(s.ds.Levels[v.FullName()])
}

// FetchLocal returns this shard's slice of one channel of v.
func (s *Store) FetchLocal(v obsdata.Variable, channel int, skipDerived bool) (obsdata.Column, error) {
	if !s.visible(v) {
		return obsdata.Column{}, obsdata.ErrNotPresent
	}
	key := v.FullName()
	if channel != 0 {
		key = v.KeyForChannel(channel)
	}
	col, ok := s.ds.Columns[key]
	if !ok {
		return obsdata.Column{}, obsdata.ErrNotPresent
	}
	if skipDerived && col.Derived {
		return obsdata.Column{}, obsdata.ErrNotPresent
	}
	return s.slice(col.column), nil
}

// FetchLevel returns this shard's slice of one level plane of v.
func (s *Store) FetchLevel(v obsdata.Variable, level int) ([]float64, error) {
	if !s.visible(v) {
		return nil, obsdata.ErrNotPresent
	}
	planes, ok := s.ds.Levels[v.FullName()]
	if !ok || level < 0 || level >= len(planes) {
		return nil, obsdata.ErrNotPresent
	}
	local := make([]float64, len(s.positions))
	for i, pos := range s.positions {
		local[i] = planes[level][pos]
	}
	return local, nil
}

// LocalIndex returns the global record number of each local record.
func (s *Store) LocalIndex() []int64 {
	out := make([]int64, len(s.index))
	copy(out, s.index)
	return out
}

// NumLocal returns the shard size.
func (s *Store) NumLocal() int { return len(s.positions) }

// EvaluatePredicate evaluates a predicate over the shard. The empty
// expression selects every record; otherwise the expression names a boolean
// column, optionally negated with a leading '!'.
func (s *Store) EvaluatePredicate(expr string) ([]bool, error) {
	out := make([]bool, len(s.positions))
	if expr == "" {
		for i := range out {
			out[i] = true
		}
		return out, nil
	}

	negate := false
	if expr[0] == '!' {
		negate = true
		expr = expr[1:]
	}
	col, ok := s.ds.Columns[expr]
	if !ok || col.kind != obsdata.KindBool {
		return nil, errors.Wrapf(obsdata.ErrNotPresent, "predicate %q", expr)
	}
	flags := col.column.Ints()
	for i, pos := range s.positions {
		out[i] = (flags[pos] != 0) != negate
	}
	return out, nil
}

func (s *Store) slice(col obsdata.Column) obsdata.Column {
	switch col.Kind() {
	case obsdata.KindInt:
		v := make([]int64, len(s.positions))
		for i, pos := range s.positions {
			v[i] = col.Ints()[pos]
		}
		return obsdata.IntColumn(v)
	case obsdata.KindBool:
		v := make([]int64, len(s.positions))
		for i, pos := range s.positions {
			v[i] = col.Ints()[pos]
		}
		return obsdata.BoolColumnFromInts(v)
	case obsdata.KindFloat:
		v := make([]float64, len(s.positions))
		for i, pos := range s.positions {
			v[i] = col.Floats()[pos]
		}
		return obsdata.FloatColumn(v)
	case obsdata.KindString:
		v := make([]string, len(s.positions))
		for i, pos := range s.positions {
			v[i] = col.Strings()[pos]
		}
		return obsdata.StringColumn(v)
	case obsdata.KindTimestamp:
		v := make([]time.Time, len(s.positions))
		for i, pos := range s.positions {
			v[i] = col.Times()[pos]
		}
		return obsdata.TimeColumn(v)
	default:
		return obsdata.Column{}
	}
}
