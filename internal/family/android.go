package family

import (
	"path/filepath"
	"slices"
	"strconv"

	"github.com/thoreinstein/ntc/internal/locator"
	"github.com/thoreinstein/ntc/internal/logging"
	"github.com/thoreinstein/ntc/internal/target"
	"github.com/thoreinstein/ntc/internal/toolchain"
)

// androidABI describes how one Android triple is compiled.
type androidABI struct {
	triple target.Triple
	// llvm is the clang -target prefix; the API level is appended.
	llvm string
	// include is the arch-specific directory under sysroot/usr/include.
	include string
	// msExtensions enables -fms-extensions.
	msExtensions bool
}

var androidABIs = []androidABI{
	{target.AndroidARMv7a, "armv7a-linux-androideabi", "arm-linux-androideabi", false},
	{target.AndroidARM64v8, "aarch64-linux-android", "aarch64-linux-android", true},
	{target.AndroidX86, "i686-linux-android", "i686-linux-android", false},
	{target.AndroidX86_64, "x86_64-linux-android", "x86_64-linux-android", false},
}

// NDKBinDir descends from a located NDK root to the LLVM prebuilt bin
// directory, preferring the prebuilt matching host.
func NDKBinDir(bc *locator.BuildContext, root string) (string, error) {
	prebuilt := filepath.Join(root, "toolchains", "llvm", "prebuilt")
	tags, err := bc.SubDirs(prebuilt)
	if err != nil || len(tags) == 0 {
		bc.Log().Warn("Android NDK found without an LLVM prebuilt toolchain, android builds will be unavailable",
			"family", string(AndroidNDK), "dir", prebuilt)
		return "", unavailable(AndroidNDK, "no LLVM prebuilt toolchain under %s", prebuilt)
	}

	tag := bc.Host.NDKHostTag()
	if !slices.Contains(tags, tag) {
		bc.Log().Warn("no NDK prebuilt for host; using the lexicographically first",
			"family", string(AndroidNDK), "want", tag, "chosen", tags[0], "candidates", tags)
		tag = tags[0]
	}
	return filepath.Join(prebuilt, tag, "bin"), nil
}

// ConfigureAndroidNDK builds the NDK clang toolchain for the four Android ABIs.
func ConfigureAndroidNDK(bc *locator.BuildContext, opts Options) ([]*toolchain.Descriptor, error) {
	res, ok := bc.LocateKind(locator.KindAndroidNDK)
	if !ok {
		return nil, unavailable(AndroidNDK, "%s", locator.Advisory(locator.HintsFor(locator.KindAndroidNDK), bc.WorkingDir))
	}

	bin, err := NDKBinDir(bc, res.Path)
	if err != nil {
		return nil, err
	}
	include := filepath.Join(filepath.Dir(bin), "sysroot", "usr", "include")
	logging.Trace(bc.Log(), "android ndk sysroot", "include", include)

	d := toolchain.NewDescriptor("androidNdk", toolchain.Clang)
	d.SearchPath = []string{bin}

	api := strconv.Itoa(opts.APILevel)
	for _, abi := range androidABIs {
		rules := []toolchain.ArgRule{
			toolchain.Prepend("sysroot-include", "-isystem", include),
			toolchain.Prepend("arch-include", "-isystem", filepath.Join(include, abi.include)),
			toolchain.Prepend("libcxx-include", "-isystem", filepath.Join(include, "c++", "v1")),
			toolchain.Append("target", "-target", abi.llvm+api),
			toolchain.Append("declspec", "-fdeclspec"),
		}
		if abi.msExtensions {
			rules = append(rules, toolchain.Append("ms-extensions", "-fms-extensions"))
		}

		compiler := toolchain.Executable{Name: opts.Compiler}
		bundle := toolchain.Bundle{
			toolchain.RoleCCompiler:       compiler,
			toolchain.RoleCppCompiler:     compiler,
			toolchain.RoleLinker:          compiler,
			toolchain.RoleArchiver:        {Name: "llvm-ar"},
			toolchain.RoleStripper:        {Name: "llvm-strip"},
			toolchain.RoleSymbolExtractor: {Name: "llvm-objcopy"},
		}
		d.Target(abi.triple, bundle.WithRules(toolchain.CompilerRoles(), rules...))
	}
	return []*toolchain.Descriptor{d}, nil
}
