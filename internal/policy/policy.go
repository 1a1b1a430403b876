// Package policy maps a host operating system to the ordered family steps
// that configure its toolchains.
package policy

import (
	"github.com/thoreinstein/ntc/internal/family"
	"github.com/thoreinstein/ntc/internal/locator"
	"github.com/thoreinstein/ntc/internal/target"
)

// Step is one family configuration attempt.
type Step struct {
	Family family.ID
	// Requires names the external dependency the step must locate, or is
	// empty when the family only needs executables on PATH.
	Requires locator.Kind
}

// Optional reports whether the step depends on an external install that
// may legitimately be absent.
func (s Step) Optional() bool {
	return s.Requires != ""
}

var (
	stepGCCLinux   = Step{Family: family.GCCLinux}
	stepGCCWindows = Step{Family: family.GCCWindows}
	stepVisualCpp  = Step{Family: family.VisualCpp}
	stepOsxcross   = Step{Family: family.Osxcross, Requires: locator.KindOsxcross}
	stepAndroidNDK = Step{Family: family.AndroidNDK, Requires: locator.KindAndroidNDK}
)

// Steps returns the ordered steps for host. Unknown hosts get no steps.
//
// Windows cannot cross-compile for macOS, and macOS only gets Android
// because its native toolchain needs no configuration.
func Steps(host target.HostOS) []Step {
	switch host {
	case target.HostLinux:
		return []Step{stepGCCLinux, stepOsxcross, stepAndroidNDK}
	case target.HostWindows:
		return []Step{stepVisualCpp, stepGCCWindows, stepAndroidNDK}
	case target.HostMacOS:
		return []Step{stepAndroidNDK}
	default:
		return nil
	}
}
