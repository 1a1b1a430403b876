package registry

import (
	"slices"
	"sync"

	"github.com/thoreinstein/ntc/internal/errors"
	"github.com/thoreinstein/ntc/internal/target"
	"github.com/thoreinstein/ntc/internal/toolchain"
)

// Sentinel errors for registry operations.
var (
	// ErrMalformedDescriptor is returned when a descriptor is missing a
	// required role, target or name.
	ErrMalformedDescriptor = toolchain.ErrMalformedDescriptor

	// ErrDuplicateToolchain is returned when a toolchain name is already in use.
	ErrDuplicateToolchain = errors.New("toolchain already registered")

	// ErrRegistrySealed is returned when registering after configuration finished.
	ErrRegistrySealed = errors.New("registry is sealed")
)

// Toolchain is a registered, fully resolved toolchain. It is immutable.
type Toolchain struct {
	name       string
	family     toolchain.FamilyKind
	searchPath []string
	sdkPath    string
	targets    []target.Triple
	bundles    map[target.Triple]toolchain.Bundle
}

// Name returns the unique toolchain name.
func (tc *Toolchain) Name() string { return tc.name }

// Family returns the toolchain family.
func (tc *Toolchain) Family() toolchain.FamilyKind { return tc.family }

// SearchPath returns the directories searched for executables before PATH.
func (tc *Toolchain) SearchPath() []string { return slices.Clone(tc.searchPath) }

// SDKPath returns the pinned platform SDK, or "".
func (tc *Toolchain) SDKPath() string { return tc.sdkPath }

// Targets returns the served triples in declaration order.
func (tc *Toolchain) Targets() []target.Triple { return slices.Clone(tc.targets) }

// Serves reports whether the toolchain compiles for t.
func (tc *Toolchain) Serves(t target.Triple) bool {
	_, ok := tc.bundles[t]
	return ok
}

// Tool returns the executable filling role for t.
func (tc *Toolchain) Tool(t target.Triple, role toolchain.Role) (toolchain.Executable, bool) {
	b, ok := tc.bundles[t]
	if !ok {
		return toolchain.Executable{}, false
	}
	exe, ok := b[role]
	if !ok || exe.Name == "" {
		return toolchain.Executable{}, false
	}
	exe.Rules = slices.Clone(exe.Rules)
	return exe, true
}

// Tuple is one (toolchain, target) pair the registry can serve.
type Tuple struct {
	Toolchain string
	Target    target.Triple
}

// String returns "toolchain/target".
func (t Tuple) String() string {
	return t.Toolchain + "/" + t.Target.String()
}

// Registry manages toolchain registration and lookup.
// It is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	order      []string
	toolchains map[string]*Toolchain
	sealed     bool
}

// New creates an empty, unsealed registry.
func New() *Registry {
	return &Registry{
		toolchains: make(map[string]*Toolchain),
	}
}

// Register validates every descriptor and adds them all, or none.
// Returns an error if:
//   - a descriptor is malformed (ErrMalformedDescriptor)
//   - a name is already registered or repeated in the batch (ErrDuplicateToolchain)
//   - the registry is sealed (ErrRegistrySealed)
func (r *Registry) Register(descriptors ...*toolchain.Descriptor) error {
	resolved := make([]*Toolchain, 0, len(descriptors))
	seen := make(map[string]bool, len(descriptors))
	for _, d := range descriptors {
		if d == nil {
			return errors.Wrap(ErrMalformedDescriptor, "nil descriptor")
		}
		bundles, err := d.Resolve()
		if err != nil {
			return err
		}
		if seen[d.Name] {
			return errors.Wrapf(ErrDuplicateToolchain, "%q", d.Name)
		}
		seen[d.Name] = true
		resolved = append(resolved, &Toolchain{
			name:       d.Name,
			family:     d.Family.Kind,
			searchPath: slices.Clone(d.SearchPath),
			sdkPath:    d.SDKPathOverride,
			targets:    d.Targets(),
			bundles:    bundles,
		})
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return ErrRegistrySealed
	}
	for _, tc := range resolved {
		if _, exists := r.toolchains[tc.name]; exists {
			return errors.Wrapf(ErrDuplicateToolchain, "%q", tc.name)
		}
	}
	for _, tc := range resolved {
		r.toolchains[tc.name] = tc
		r.order = append(r.order, tc.name)
	}
	return nil
}

// Seal makes the registry read-only.
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed = true
}

// Sealed reports whether Seal has been called.
func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// Get returns the toolchain registered under name.
func (r *Registry) Get(name string) (*Toolchain, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tc, ok := r.toolchains[name]
	return tc, ok
}

// Names returns registered toolchain names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// Len returns the number of registered toolchains.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// ForTriple returns every toolchain serving t, in registration order.
func (r *Registry) ForTriple(t target.Triple) []*Toolchain {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Toolchain
	for _, name := range r.order {
		if tc := r.toolchains[name]; tc.Serves(t) {
			out = append(out, tc)
		}
	}
	return out
}

// Tuples returns every (toolchain, target) pair, ordered by registration
// and then by target declaration.
func (r *Registry) Tuples() []Tuple {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Tuple
	for _, name := range r.order {
		for _, t := range r.toolchains[name].targets {
			out = append(out, Tuple{Toolchain: name, Target: t})
		}
	}
	return out
}

// Triples returns every served triple once, in first-registration order.
func (r *Registry) Triples() []target.Triple {
	var out []target.Triple
	for _, tu := range r.Tuples() {
		if !slices.Contains(out, tu.Target) {
			out = append(out, tu.Target)
		}
	}
	return out
}
