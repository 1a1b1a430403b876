package family

import (
	"fmt"

	"github.com/thoreinstein/ntc/internal/errors"
	"github.com/thoreinstein/ntc/internal/locator"
	"github.com/thoreinstein/ntc/internal/toolchain"
)

// ID names a family configuration step.
type ID string

// Family steps.
const (
	GCCLinux   ID = "gcc-linux"
	GCCWindows ID = "gcc-windows"
	VisualCpp  ID = "visualcpp"
	Osxcross   ID = "osxcross"
	AndroidNDK ID = "android-ndk"
)

// IDs returns every family step in a fixed order.
func IDs() []ID {
	return []ID{GCCLinux, GCCWindows, VisualCpp, Osxcross, AndroidNDK}
}

// ErrUnavailable marks a family skipped because an external dependency is
// missing. It is never fatal.
var ErrUnavailable = errors.New("toolchain unavailable")

// UnavailableError explains why a family was skipped.
type UnavailableError struct {
	Family ID
	Reason string
}

// Error implements error.
func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s: %s", e.Family, e.Reason)
}

// Is lets errors.Is(err, ErrUnavailable) match.
func (e *UnavailableError) Is(target error) bool {
	return target == ErrUnavailable
}

func unavailable(id ID, format string, args ...any) error {
	return &UnavailableError{Family: id, Reason: fmt.Sprintf(format, args...)}
}

// Options tune the descriptors the configurators build.
type Options struct {
	// APILevel is the minimum Android API level baked into -target.
	APILevel int
	// Compiler is the NDK clang executable name.
	Compiler string
	// Darwin is the osxcross target suffix of the binutils, e.g. "darwin19".
	Darwin string
	// MingwWrapperSuffix is appended to mingw g++ front-end names, e.g.
	// "-faker" to route through gxx-faker.
	MingwWrapperSuffix string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		APILevel: 21,
		Compiler: "clang-14",
		Darwin:   "darwin19",
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.APILevel <= 0 {
		o.APILevel = d.APILevel
	}
	if o.Compiler == "" {
		o.Compiler = d.Compiler
	}
	if o.Darwin == "" {
		o.Darwin = d.Darwin
	}
	return o
}

// Configurator builds the descriptors for one family.
type Configurator func(bc *locator.BuildContext, opts Options) ([]*toolchain.Descriptor, error)

// Lookup returns the configurator for id.
func Lookup(id ID) (Configurator, bool) {
	switch id {
	case GCCLinux:
		return ConfigureGCCLinux, true
	case GCCWindows:
		return ConfigureGCCWindows, true
	case VisualCpp:
		return ConfigureVisualCpp, true
	case Osxcross:
		return ConfigureOsxcross, true
	case AndroidNDK:
		return ConfigureAndroidNDK, true
	default:
		return nil, false
	}
}

// Configure runs the configurator for id.
func Configure(id ID, bc *locator.BuildContext, opts Options) ([]*toolchain.Descriptor, error) {
	fn, ok := Lookup(id)
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "family %q", id)
	}
	return fn(bc, opts.withDefaults())
}
