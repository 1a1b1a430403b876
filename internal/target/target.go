// Package target defines the immutable identifiers used as lookup keys across
// ntc: target triples (what a toolchain produces code for) and host operating
// systems (where ntc runs).
package target

import (
	"runtime"
	"strings"

	"github.com/thoreinstein/ntc/internal/errors"
)

// OS is a target operating system.
type OS string

// Target operating systems.
const (
	OSLinux   OS = "linux"
	OSWindows OS = "windows"
	OSMacOS   OS = "macos"
	OSAndroid OS = "android"
)

// Arch is a CPU architecture, spelled the way the Android ABI names spell it
// where one exists.
type Arch string

// Architectures.
const (
	ArchX86     Arch = "x86"
	ArchX86_64  Arch = "x86_64"
	ArchARMv7a  Arch = "armv7a"
	ArchARM64v8 Arch = "arm64-v8a"
)

// Triple identifies an (operating system, architecture/ABI) pair.
// The zero value is invalid.
type Triple struct {
	os   OS
	arch Arch
}

// Known triples.
var (
	LinuxX86_64    = Triple{OSLinux, ArchX86_64}
	LinuxX86       = Triple{OSLinux, ArchX86}
	WindowsX86_64  = Triple{OSWindows, ArchX86_64}
	WindowsX86     = Triple{OSWindows, ArchX86}
	MacOSX86_64    = Triple{OSMacOS, ArchX86_64}
	AndroidARMv7a  = Triple{OSAndroid, ArchARMv7a}
	AndroidARM64v8 = Triple{OSAndroid, ArchARM64v8}
	AndroidX86     = Triple{OSAndroid, ArchX86}
	AndroidX86_64  = Triple{OSAndroid, ArchX86_64}
)

// All returns every known triple in a fixed order.
func All() []Triple {
	return []Triple{
		LinuxX86_64, LinuxX86,
		WindowsX86_64, WindowsX86,
		MacOSX86_64,
		AndroidARMv7a, AndroidARM64v8, AndroidX86, AndroidX86_64,
	}
}

// OS returns the triple's operating system.
func (t Triple) OS() OS { return t.os }

// Arch returns the triple's architecture.
func (t Triple) Arch() Arch { return t.arch }

// IsZero reports whether t is the zero Triple.
func (t Triple) IsZero() bool { return t.os == "" && t.arch == "" }

// String returns the canonical "<os>-<arch>" form, e.g. "android-arm64-v8a".
func (t Triple) String() string {
	if t.IsZero() {
		return ""
	}
	return string(t.os) + "-" + string(t.arch)
}

// MarshalText implements encoding.TextMarshaler so triples can key JSON,
// YAML and TOML maps.
func (t Triple) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Triple) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Parse accepts the canonical form ("linux-x86_64") as well as the Gradle
// spelling used by older build scripts ("linux_x86-64", "android_arm64-v8a").
func Parse(s string) (Triple, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, t := range All() {
		if s == t.String() || s == gradleName(t) {
			return t, nil
		}
	}
	return Triple{}, errors.Wrapf(errors.ErrUnknownTarget, "%q", s)
}

// MustParse is like Parse but panics on error. Intended for tables and tests.
func MustParse(s string) Triple {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

func gradleName(t Triple) string {
	arch := string(t.arch)
	if t.arch == ArchX86_64 {
		arch = "x86-64"
	}
	return string(t.os) + "_" + arch
}

// HostOS is an operating system ntc can run on.
type HostOS string

// Supported hosts.
const (
	HostLinux   HostOS = "linux"
	HostWindows HostOS = "windows"
	HostMacOS   HostOS = "macos"
)

// Hosts returns every supported host in a fixed order.
func Hosts() []HostOS {
	return []HostOS{HostLinux, HostWindows, HostMacOS}
}

// CurrentHost maps runtime.GOOS to a HostOS. Unsupported systems are
// reported as Linux, the host with the broadest cross-compilation support.
func CurrentHost() HostOS {
	h, err := ParseHost(runtime.GOOS)
	if err != nil {
		return HostLinux
	}
	return h
}

// ParseHost accepts HostOS names and GOOS spellings ("darwin").
func ParseHost(s string) (HostOS, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linux":
		return HostLinux, nil
	case "windows":
		return HostWindows, nil
	case "macos", "darwin", "osx":
		return HostMacOS, nil
	default:
		return "", errors.Wrapf(errors.ErrUnknownHost, "%q", s)
	}
}

// NDKHostTag is the directory name under the NDK's toolchains/llvm/prebuilt.
// The NDK only ships x86_64 host binaries.
func (h HostOS) NDKHostTag() string {
	switch h {
	case HostWindows:
		return "windows-x86_64"
	case HostMacOS:
		return "darwin-x86_64"
	default:
		return "linux-x86_64"
	}
}
