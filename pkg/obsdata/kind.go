package obsdata

import (
	"fmt"
	"math"
	"time"
)

// A Kind is the declared value kind of a variable. The set of kinds is
// closed; code holding a Kind switches exhaustively over it.
type Kind int

const (
	// KindInvalid is the zero Kind and never describes real data.
	KindInvalid Kind = iota
	KindInt
	KindFloat
	KindString
	KindTimestamp
	KindBool
)

var kindNames = map[Kind]string{
	KindInvalid:   "invalid",
	KindInt:       "int",
	KindFloat:     "float",
	KindString:    "string",
	KindTimestamp: "timestamp",
	KindBool:      "bool",
}

// String returns the lowercase name of k.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind converts the textual kind found in request files back into a
// Kind. It returns an UnsupportedKindError for anything outside the closed
// set.
func ParseKind(text string) (Kind, error) {
	for k, name := range kindNames {
		if k != KindInvalid && name == text {
			return k, nil
		}
	}
	return KindInvalid, UnsupportedKindError{Name: text}
}

// An UnsupportedKindError reports a value kind outside the recognized set.
// It indicates a configuration or data-contract violation and is fatal to
// the operation that encounters it.
type UnsupportedKindError struct {
	Name string
}

func (e UnsupportedKindError) Error() string {
	return fmt.Sprintf("unsupported value kind %q", e.Name)
}

// Missing-value sentinels per kind. A stored value equal to its kind's
// sentinel renders as the missing marker. Booleans have no sentinel.
var (
	MissingInt    = int64(math.MinInt64)
	MissingFloat  = -math.MaxFloat64
	MissingString = "***MISSING***"
	MissingTime   = time.Time{}
)
