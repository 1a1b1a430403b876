package family

import (
	"path/filepath"

	"github.com/thoreinstein/ntc/internal/locator"
	"github.com/thoreinstein/ntc/internal/target"
	"github.com/thoreinstein/ntc/internal/toolchain"
)

// OsxcrossBinDir returns the osxcross bin directory for a located root.
// A conventional install is the repository checkout; its tools live under
// target/bin. Every other source already points at the bin directory.
func OsxcrossBinDir(res locator.Resolution) string {
	if res.Source == locator.SourceSibling {
		return filepath.Join(res.Path, "target", "bin")
	}
	return res.Path
}

// ConfigureOsxcross builds the osxcross clang toolchain for macOS. It needs
// a located osxcross install with at least one SDK under <bin>/../SDK.
func ConfigureOsxcross(bc *locator.BuildContext, opts Options) ([]*toolchain.Descriptor, error) {
	res, ok := bc.LocateKind(locator.KindOsxcross)
	if !ok {
		return nil, unavailable(Osxcross, "%s", locator.Advisory(locator.HintsFor(locator.KindOsxcross), bc.WorkingDir))
	}

	bin := OsxcrossBinDir(res)
	root := filepath.Dir(bin)
	sdkDir := filepath.Join(root, "SDK")

	sdks, err := bc.SubDirs(sdkDir)
	if err != nil || len(sdks) == 0 {
		bc.Log().Warn("osxcross found without a macOS SDK, macOS builds will be unavailable",
			"family", string(Osxcross), "dir", sdkDir)
		return nil, unavailable(Osxcross, "no macOS SDK under %s", sdkDir)
	}
	if len(sdks) > 1 {
		bc.Log().Warn("multiple macOS SDKs; using the lexicographically first",
			"family", string(Osxcross), "chosen", sdks[0], "candidates", sdks)
	}

	tool := func(name string) string { return "x86_64-apple-" + opts.Darwin + "-" + name }

	d := toolchain.NewDescriptor("osxcross", toolchain.Clang)
	d.SearchPath = []string{bin, filepath.Join(root, "binutils", "bin")}
	d.SDKPathOverride = filepath.Join(sdkDir, sdks[0])
	d.Target(target.MacOSX86_64, toolchain.Bundle{
		toolchain.RoleCCompiler:       {Name: "o64-clang"},
		toolchain.RoleCppCompiler:     {Name: "o64-clang++"},
		toolchain.RoleLinker:          {Name: "o64-clang++"},
		toolchain.RoleAssembler:       {Name: "o64-clang"},
		toolchain.RoleSymbolExtractor: {Name: tool("objcopy")},
		toolchain.RoleStripper:        {Name: tool("strip")},
	})
	return []*toolchain.Descriptor{d}, nil
}
