package printer

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"

	"github.com/obskit/obstable/pkg/obsdata"
)

// A Request describes one table to print: the ordered list of variables to
// materialize, a predicate restricting which records appear, and a global
// record window. The record window is expressed in global record numbers;
// a LocMax of zero means no upper limit.
type Request struct {
	Variables []obsdata.VariableRequest `yaml:"variables"`
	Where     string                    `yaml:"where,omitempty"`
	LocMin    int                       `yaml:"location_min,omitempty"`
	LocMax    int                       `yaml:"location_max,omitempty"`
}

// Validate resolves the declared kind of every requested variable and
// normalizes level sets to ascending order. It also checks that channel
// lists hold only positive channel numbers and that rendered keys do not
// collide between requests.
func (r *Request) Validate() error {
	seen := make(map[string]string, len(r.Variables))
	for i := range r.Variables {
		vr := &r.Variables[i]
		if vr.KindName != "" {
			kind, err := obsdata.ParseKind(vr.KindName)
			if err != nil {
				return errors.Wrapf(err, "variable %s", vr.Variable.FullName())
			}
			vr.Kind = kind
		}
		if vr.Kind == obsdata.KindInvalid {
			return errors.Errorf("variable %s has no declared kind", vr.Variable.FullName())
		}
		if vr.Variable.LevelResolved() && vr.Kind != obsdata.KindFloat {
			return errors.Errorf("level-resolved variable %s must be float valued, declared %s",
				vr.Variable.FullName(), vr.Kind)
		}
		// Channel 0 addresses the unchanneled form of a variable and must
		// not appear in an explicit channel list.
		for _, ch := range vr.Variable.Channels {
			if ch < 1 {
				return errors.Errorf("variable %s requests channel %d; channel numbers start at 1",
					vr.Variable.FullName(), ch)
			}
		}
		vr.Levels = append([]int(nil), vr.Levels...)
		sort.Ints(vr.Levels)
		for _, key := range vr.Keys() {
			if other, ok := seen[key]; ok {
				return errors.Errorf("rendered key %q requested by both %s and %s",
					key, other, vr.Variable.FullName())
			}
			seen[key] = vr.Variable.FullName()
		}
	}
	return nil
}

// An InvalidRangeError reports a selection window whose minimum bound
// exceeds its maximum bound after clamping. It is fatal to the render
// invocation that produced it.
type InvalidRangeError struct {
	Min, Max int
}

func (e InvalidRangeError) Error() string {
	return fmt.Sprintf("minimum location %d cannot be larger than maximum location %d", e.Min, e.Max)
}
