package obsdata

import "errors"

// ErrNotPresent reports that a variable, channel or level is unavailable in
// a store. Callers treat it as recoverable: a notice is emitted and
// processing continues with the remaining work.
var ErrNotPresent = errors.New("not present")

// A Store exposes one process's shard of a partitioned observation dataset.
// All sequences returned by a Store have the local shard length, except
// FetchLevel which returns the per-level plane restricted to the shard.
//
// Implementations are not required to be safe for concurrent use; the
// printing pipeline is sequential within a process.
type Store interface {
	// Has reports whether the variable exists in this process's shard.
	// Presence may legitimately differ between shards.
	Has(v Variable) bool

	// Kind returns the stored kind of the variable, or ErrNotPresent.
	Kind(v Variable) (Kind, error)

	// LevelCount returns the number of vertical levels held for a
	// level-resolved variable, or 0 when the variable is absent.
	LevelCount(v Variable) int

	// FetchLocal returns the local column for one channel of v (channel 0
	// addresses an unchanneled variable). When skipDerived is set, values
	// derived downstream of the raw measurement are excluded. Fails with
	// ErrNotPresent when the variable or channel is unavailable locally.
	FetchLocal(v Variable, channel int, skipDerived bool) (Column, error)

	// FetchLevel returns the local float column of v at one vertical level.
	// Fails with ErrNotPresent when unavailable locally.
	FetchLevel(v Variable, level int) ([]float64, error)

	// LocalIndex returns the global record number of each local record, in
	// local storage order. The sequence may contain gaps relative to the
	// original sample and is not globally sorted.
	LocalIndex() []int64

	// NumLocal returns the local shard size.
	NumLocal() int

	// EvaluatePredicate evaluates a predicate expression over the local
	// shard, returning one flag per local record.
	EvaluatePredicate(expr string) ([]bool, error)
}
