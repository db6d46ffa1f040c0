package obsdata

import "fmt"

// Groups whose variables carry one value per vertical level rather than one
// value per channel.
var levelResolvedGroups = map[string]bool{
	"GeoVaLs":     true,
	"ObsDiag":     true,
	"ObsBiasTerm": true,
}

// A Variable identifies one named variable in a store: a group, a base name
// and an optional channel list. Variables are immutable after construction.
type Variable struct {
	Group    string `yaml:"group"`
	Name     string `yaml:"name"`
	Channels []int  `yaml:"channels,omitempty"`
}

// FullName returns the "group/name" form of v.
func (v Variable) FullName() string {
	return v.Group + "/" + v.Name
}

// ChannelName returns the channel-qualified base name, "name_<ch>".
func (v Variable) ChannelName(ch int) string {
	return fmt.Sprintf("%s_%d", v.Name, ch)
}

// KeyForChannel returns the rendered key for one channel of v, or the full
// name when v has no channels.
func (v Variable) KeyForChannel(ch int) string {
	return fmt.Sprintf("%s/%s_%d", v.Group, v.Name, ch)
}

// KeyAtLevel returns the rendered key for v at one vertical level.
func (v Variable) KeyAtLevel(level int) string {
	return fmt.Sprintf("%s (level %d)", v.FullName(), level)
}

// LevelResolved reports whether v belongs to a group whose variables are
// resolved per vertical level.
func (v Variable) LevelResolved() bool {
	return levelResolvedGroups[v.Group]
}

// A VariableRequest pairs a Variable with its declared value kind and, for
// level-resolved variables, the set of levels to materialize. One instance
// exists per requested variable; the ordered request list is shared by every
// cooperating process and is the sole driver of collective calls.
type VariableRequest struct {
	Variable Variable `yaml:"variable"`
	Kind     Kind     `yaml:"-"`
	KindName string   `yaml:"kind"`
	Levels   []int    `yaml:"levels,omitempty"`
}

// Keys returns every rendered key the request can produce, in a stable
// order: level-qualified keys for level-resolved variables, channel keys for
// channeled ones, the full name otherwise.
func (r VariableRequest) Keys() []string {
	v := r.Variable
	if v.LevelResolved() {
		keys := make([]string, 0, len(r.Levels))
		for _, level := range r.Levels {
			keys = append(keys, v.KeyAtLevel(level))
		}
		return keys
	}
	if len(v.Channels) == 0 {
		return []string{v.FullName()}
	}
	keys := make([]string, 0, len(v.Channels))
	for _, ch := range v.Channels {
		keys = append(keys, v.KeyForChannel(ch))
	}
	return keys
}
