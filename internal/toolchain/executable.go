package toolchain

import (
	"slices"

	"github.com/thoreinstein/ntc/internal/errors"
)

// Placement decides where a rule's arguments land relative to the base
// arguments a compilation driver passes.
type Placement int

const (
	// PlacementAppend places arguments after every base argument.
	PlacementAppend Placement = iota
	// PlacementPrepend places arguments before every base argument, so
	// header search paths are seen before user-supplied includes.
	PlacementPrepend
)

// String returns "append" or "prepend".
func (p Placement) String() string {
	if p == PlacementPrepend {
		return "prepend"
	}
	return "append"
}

// MarshalText implements encoding.TextMarshaler.
func (p Placement) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Placement) UnmarshalText(b []byte) error {
	switch string(b) {
	case "prepend":
		*p = PlacementPrepend
	case "append", "":
		*p = PlacementAppend
	default:
		return errors.Newf("unknown placement %q", string(b))
	}
	return nil
}

// ArgRule is a named group of arguments injected at a fixed placement.
type ArgRule struct {
	Name      string    `json:"name" yaml:"name" toml:"name"`
	Placement Placement `json:"placement" yaml:"placement" toml:"placement"`
	Args      []string  `json:"args" yaml:"args" toml:"args"`
}

// Prepend returns a rule whose arguments precede the base arguments.
func Prepend(name string, args ...string) ArgRule {
	return ArgRule{Name: name, Placement: PlacementPrepend, Args: args}
}

// Append returns a rule whose arguments follow the base arguments.
func Append(name string, args ...string) ArgRule {
	return ArgRule{Name: name, Placement: PlacementAppend, Args: args}
}

// Executable binds a tool role to an executable name (or path) and the
// rules applied to its command line.
type Executable struct {
	Name  string
	Rules []ArgRule
}

// With returns a copy of e with rule appended to its rule list.
func (e Executable) With(rule ArgRule) Executable {
	e.Rules = append(slices.Clone(e.Rules), rule)
	return e
}

// Arguments returns the final argument list for base: prepend rules in rule
// order, then base, then append rules in rule order.
func (e Executable) Arguments(base ...string) []string {
	var pre, post []string
	for _, r := range e.Rules {
		switch r.Placement {
		case PlacementPrepend:
			pre = append(pre, r.Args...)
		default:
			post = append(post, r.Args...)
		}
	}
	out := make([]string, 0, len(pre)+len(base)+len(post))
	out = append(out, pre...)
	out = append(out, base...)
	return append(out, post...)
}

// Bundle maps roles to executables for one target triple.
type Bundle map[Role]Executable

// clone returns a deep copy of b.
func (b Bundle) clone() Bundle {
	out := make(Bundle, len(b))
	for role, exe := range b {
		exe.Rules = slices.Clone(exe.Rules)
		out[role] = exe
	}
	return out
}

// WithRules returns a copy of b in which every role in roles has rules appended.
// Roles absent from b are created with an empty name so the family default
// fills them at merge time.
func (b Bundle) WithRules(roles []Role, rules ...ArgRule) Bundle {
	out := b.clone()
	for _, role := range roles {
		exe := out[role]
		for _, r := range rules {
			exe = exe.With(r)
		}
		out[role] = exe
	}
	return out
}
