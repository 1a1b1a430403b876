package family

import (
	"github.com/thoreinstein/ntc/internal/locator"
	"github.com/thoreinstein/ntc/internal/logging"
	"github.com/thoreinstein/ntc/internal/target"
	"github.com/thoreinstein/ntc/internal/toolchain"
)

// mingwPrefixes maps Windows triples to their mingw-w64 tool prefix.
var mingwPrefixes = []struct {
	triple target.Triple
	prefix string
}{
	{target.WindowsX86_64, "x86_64-w64-mingw32"},
	{target.WindowsX86, "i686-w64-mingw32"},
}

// MingwPrefix returns the mingw-w64 tool prefix for t.
func MingwPrefix(t target.Triple) (string, bool) {
	for _, m := range mingwPrefixes {
		if m.triple == t {
			return m.prefix, true
		}
	}
	return "", false
}

// ConfigureGCCLinux builds the host gcc toolchain for Linux. Windows targets
// are added for each mingw-w64 g++ found on PATH.
func ConfigureGCCLinux(bc *locator.BuildContext, opts Options) ([]*toolchain.Descriptor, error) {
	log := bc.Log().With("family", string(GCCLinux))

	d := toolchain.NewDescriptor("gcc", toolchain.GCC).
		Target(target.LinuxX86_64, nil).
		Target(target.LinuxX86, nil)

	for _, m := range mingwPrefixes {
		gxx := m.prefix + "-g++"
		if _, err := bc.LookPath(gxx); err != nil {
			log.Info("mingw-w64 not on PATH, target unavailable", "target", m.triple.String(), "executable", gxx)
			continue
		}
		logging.Trace(log, "mingw-w64 found", "executable", gxx)

		front := toolchain.Executable{Name: gxx + opts.MingwWrapperSuffix}
		d.Target(m.triple, toolchain.Bundle{
			toolchain.RoleCCompiler:   front,
			toolchain.RoleCppCompiler: front,
			toolchain.RoleLinker:      front,
			toolchain.RoleArchiver:    {Name: m.prefix + "-ar"},
		})
	}
	return []*toolchain.Descriptor{d}, nil
}

// ConfigureGCCWindows builds the MinGW gcc toolchain native to a Windows host.
func ConfigureGCCWindows(_ *locator.BuildContext, _ Options) ([]*toolchain.Descriptor, error) {
	d := toolchain.NewDescriptor("gcc", toolchain.GCC).
		Target(target.WindowsX86_64, nil).
		Target(target.WindowsX86, nil)
	return []*toolchain.Descriptor{d}, nil
}

// ConfigureVisualCpp builds the Visual C++ toolchain with vendor defaults.
func ConfigureVisualCpp(_ *locator.BuildContext, _ Options) ([]*toolchain.Descriptor, error) {
	d := toolchain.NewDescriptor("visualCpp", toolchain.VisualCpp).
		Target(target.WindowsX86_64, nil).
		Target(target.WindowsX86, nil)
	return []*toolchain.Descriptor{d}, nil
}
