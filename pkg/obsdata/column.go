package obsdata

import (
	"fmt"
	"time"
)

// A Column is one flat typed sequence of values, tagged with its Kind.
// Columns are built once (locally fetched or gathered) and read-only
// afterwards. Boolean columns store 0/1 in the int sequence; there is no
// native missing value for booleans.
//
// Accessors panic on a kind mismatch. Like the zero [time.Time], that is a
// programming error rather than a data error.
type Column struct {
	kind Kind

	ints    []int64
	floats  []float64
	strings []string
	times   []time.Time
}

// IntColumn returns a Column of KindInt backed by v.
func IntColumn(v []int64) Column { return Column{kind: KindInt, ints: v} }

// FloatColumn returns a Column of KindFloat backed by v.
func FloatColumn(v []float64) Column { return Column{kind: KindFloat, floats: v} }

// StringColumn returns a Column of KindString backed by v.
func StringColumn(v []string) Column { return Column{kind: KindString, strings: v} }

// TimeColumn returns a Column of KindTimestamp backed by v.
func TimeColumn(v []time.Time) Column { return Column{kind: KindTimestamp, times: v} }

// BoolColumn returns a Column of KindBool storing v as 0/1 ints.
func BoolColumn(v []bool) Column {
	ints := make([]int64, len(v))
	for i, b := range v {
		if b {
			ints[i] = 1
		}
	}
	return Column{kind: KindBool, ints: ints}
}

// BoolColumnFromInts returns a Column of KindBool backed by an existing 0/1
// int sequence, as produced by gathering a boolean column.
func BoolColumnFromInts(v []int64) Column { return Column{kind: KindBool, ints: v} }

// MissingColumn returns a Column of n sentinel values of the given kind.
// It stands in for a shard whose local fetch failed, so gathered shapes
// stay consistent across the process group. Boolean columns fill with 0.
func MissingColumn(kind Kind, n int) Column {
	switch kind {
	case KindInt:
		v := make([]int64, n)
		for i := range v {
			v[i] = MissingInt
		}
		return IntColumn(v)
	case KindFloat:
		v := make([]float64, n)
		for i := range v {
			v[i] = MissingFloat
		}
		return FloatColumn(v)
	case KindString:
		v := make([]string, n)
		for i := range v {
			v[i] = MissingString
		}
		return StringColumn(v)
	case KindTimestamp:
		v := make([]time.Time, n)
		for i := range v {
			v[i] = MissingTime
		}
		return TimeColumn(v)
	case KindBool:
		return Column{kind: KindBool, ints: make([]int64, n)}
	default:
		panic(fmt.Sprintf("obsdata: MissingColumn called with %s", kind))
	}
}

// Kind returns the kind of c.
func (c Column) Kind() Kind { return c.kind }

// Len returns the number of values in c.
func (c Column) Len() int {
	switch c.kind {
	case KindInt, KindBool:
		return len(c.ints)
	case KindFloat:
		return len(c.floats)
	case KindString:
		return len(c.strings)
	case KindTimestamp:
		return len(c.times)
	default:
		return 0
	}
}

// Ints returns the int sequence of c. It panics unless c is KindInt or
// KindBool.
func (c Column) Ints() []int64 {
	if c.kind != KindInt && c.kind != KindBool {
		panic(fmt.Sprintf("obsdata: Column kind is %s, not int or bool", c.kind))
	}
	return c.ints
}

// Floats returns the float sequence of c. It panics unless c is KindFloat.
func (c Column) Floats() []float64 {
	if c.kind != KindFloat {
		panic(fmt.Sprintf("obsdata: Column kind is %s, not float", c.kind))
	}
	return c.floats
}

// Strings returns the string sequence of c. It panics unless c is
// KindString.
func (c Column) Strings() []string {
	if c.kind != KindString {
		panic(fmt.Sprintf("obsdata: Column kind is %s, not string", c.kind))
	}
	return c.strings
}

// Times returns the timestamp sequence of c. It panics unless c is
// KindTimestamp.
func (c Column) Times() []time.Time {
	if c.kind != KindTimestamp {
		panic(fmt.Sprintf("obsdata: Column kind is %s, not timestamp", c.kind))
	}
	return c.times
}

// IsMissing reports whether the value at position i equals the sentinel for
// c's kind. Boolean columns never report missing.
func (c Column) IsMissing(i int) bool {
	switch c.kind {
	case KindInt:
		return c.ints[i] == MissingInt
	case KindFloat:
		return c.floats[i] == MissingFloat
	case KindString:
		return c.strings[i] == MissingString
	case KindTimestamp:
		return c.times[i].Equal(MissingTime)
	case KindBool:
		return false
	default:
		panic(fmt.Sprintf("obsdata: Column has unexpected kind %s", c.kind))
	}
}
