package toolchain

import (
	"fmt"
	"slices"

	"github.com/thoreinstein/ntc/internal/errors"
	"github.com/thoreinstein/ntc/internal/target"
)

// ErrMalformedDescriptor marks a descriptor that cannot be registered.
var ErrMalformedDescriptor = errors.New("malformed toolchain descriptor")

// MalformedError names the toolchain, target and role that failed validation.
type MalformedError struct {
	Toolchain string
	Target    target.Triple
	Role      Role
	Reason    string
}

// Error implements error.
func (e *MalformedError) Error() string {
	switch {
	case e.Role != "":
		return fmt.Sprintf("toolchain %q: target %s: no executable for role %s", e.Toolchain, e.Target, e.Role)
	case !e.Target.IsZero():
		return fmt.Sprintf("toolchain %q: target %s: %s", e.Toolchain, e.Target, e.Reason)
	default:
		return fmt.Sprintf("toolchain %q: %s", e.Toolchain, e.Reason)
	}
}

// Is lets errors.Is(err, ErrMalformedDescriptor) match.
func (e *MalformedError) Is(target error) bool {
	return target == ErrMalformedDescriptor
}

// Descriptor declares one toolchain: its family, the triples it serves and
// the per-triple executable overrides.
type Descriptor struct {
	Name   string
	Family Family

	// SearchPath lists directories searched for executables before PATH.
	SearchPath []string

	// SDKPathOverride pins the platform SDK the toolchain compiles against,
	// skipping SDK discovery that would otherwise shell out to xcrun.
	SDKPathOverride string

	targets []target.Triple
	bundles map[target.Triple]Bundle
}

// NewDescriptor returns an empty descriptor for family.
func NewDescriptor(name string, family Family) *Descriptor {
	return &Descriptor{
		Name:    name,
		Family:  family,
		bundles: make(map[target.Triple]Bundle),
	}
}

// Target declares t with the given overrides; a nil bundle means family
// defaults only. Declaring t again replaces its bundle but keeps its position.
func (d *Descriptor) Target(t target.Triple, overrides Bundle) *Descriptor {
	if _, ok := d.bundles[t]; !ok {
		d.targets = append(d.targets, t)
	}
	if overrides == nil {
		overrides = Bundle{}
	}
	d.bundles[t] = overrides.clone()
	return d
}

// Targets returns the declared triples in declaration order.
func (d *Descriptor) Targets() []target.Triple {
	return slices.Clone(d.targets)
}

// Serves reports whether t is declared.
func (d *Descriptor) Serves(t target.Triple) bool {
	_, ok := d.bundles[t]
	return ok
}

// Validate reports the first problem that would make the descriptor
// unregistrable, as a *MalformedError.
func (d *Descriptor) Validate() error {
	_, err := d.Resolve()
	return err
}

// Resolve merges family defaults with per-target overrides and checks that
// every required role of every target has an executable.
func (d *Descriptor) Resolve() (map[target.Triple]Bundle, error) {
	if d.Name == "" {
		return nil, &MalformedError{Toolchain: d.Name, Reason: "name is required"}
	}
	if d.Family.Kind == "" {
		return nil, &MalformedError{Toolchain: d.Name, Reason: "family is required"}
	}
	if len(d.targets) == 0 {
		return nil, &MalformedError{Toolchain: d.Name, Reason: "no targets declared"}
	}

	resolved := make(map[target.Triple]Bundle, len(d.targets))
	for _, t := range d.targets {
		if t.IsZero() {
			return nil, &MalformedError{Toolchain: d.Name, Reason: "zero target triple"}
		}
		merged := make(Bundle, len(d.Family.Defaults))
		for role, name := range d.Family.Defaults {
			merged[role] = Executable{Name: name}
		}
		for role, exe := range d.bundles[t] {
			if exe.Name == "" {
				exe.Name = merged[role].Name
			}
			exe.Rules = slices.Clone(exe.Rules)
			merged[role] = exe
		}
		for _, role := range d.Family.Required {
			if merged[role].Name == "" {
				return nil, &MalformedError{Toolchain: d.Name, Target: t, Role: role}
			}
		}
		resolved[t] = merged
	}
	return resolved, nil
}
