package family

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	ntcerrors "github.com/thoreinstein/ntc/internal/errors"
	"github.com/thoreinstein/ntc/internal/locator"
	"github.com/thoreinstein/ntc/internal/locator/mocks"
	"github.com/thoreinstein/ntc/internal/logging"
	"github.com/thoreinstein/ntc/internal/target"
	"github.com/thoreinstein/ntc/internal/toolchain"
)

const workDir = "/work"

var errNotOnPath = errors.New("executable file not found in $PATH")

func newContext(t *testing.T, host target.HostOS, env *mocks.MockEnvironment, dirs ...string) *locator.BuildContext {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(workDir, 0o755))
	for _, d := range dirs {
		require.NoError(t, fs.MkdirAll(d, 0o755))
	}
	return &locator.BuildContext{
		Host:       host,
		WorkingDir: workDir,
		Fs:         fs,
		Env:        env,
		Properties: map[string]string{},
		Logger:     logging.ForTest(t),
	}
}

// only returns a checker for a configurator result holding one descriptor,
// so calls read only(t)(Configure(...)).
func only(t *testing.T) func([]*toolchain.Descriptor, error) *toolchain.Descriptor {
	t.Helper()
	return func(ds []*toolchain.Descriptor, err error) *toolchain.Descriptor {
		t.Helper()
		require.NoError(t, err)
		require.Len(t, ds, 1)
		return ds[0]
	}
}

func resolved(t *testing.T, d *toolchain.Descriptor, tr target.Triple) toolchain.Bundle {
	t.Helper()
	bundles, err := d.Resolve()
	require.NoError(t, err)
	b, ok := bundles[tr]
	require.True(t, ok, "target %s not declared", tr)
	return b
}

func TestConfigure_UnknownID(t *testing.T) {
	_, err := Configure("bogus", &locator.BuildContext{}, Options{})
	if !ntcerrors.Is(err, ntcerrors.ErrNotFound) {
		t.Errorf("Configure() error = %v, want ErrNotFound", err)
	}
}

func TestConfigureGCCLinux(t *testing.T) {
	tests := []struct {
		name        string
		onPath      map[string]bool
		suffix      string
		wantTargets []target.Triple
		wantWin64   string
	}{
		{
			name:        "no mingw",
			wantTargets: []target.Triple{target.LinuxX86_64, target.LinuxX86},
		},
		{
			name:        "64-bit mingw only",
			onPath:      map[string]bool{"x86_64-w64-mingw32-g++": true},
			wantTargets: []target.Triple{target.LinuxX86_64, target.LinuxX86, target.WindowsX86_64},
			wantWin64:   "x86_64-w64-mingw32-g++",
		},
		{
			name: "both with wrapper suffix",
			onPath: map[string]bool{
				"x86_64-w64-mingw32-g++": true,
				"i686-w64-mingw32-g++":   true,
			},
			suffix:      "-faker",
			wantTargets: []target.Triple{target.LinuxX86_64, target.LinuxX86, target.WindowsX86_64, target.WindowsX86},
			wantWin64:   "x86_64-w64-mingw32-g++-faker",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := mocks.NewMockEnvironment(t)
			env.EXPECT().LookPath(mock.Anything).RunAndReturn(func(name string) (string, error) {
				if tt.onPath[name] {
					return "/usr/bin/" + name, nil
				}
				return "", errNotOnPath
			})
			bc := newContext(t, target.HostLinux, env)
			opts := DefaultOptions()
			opts.MingwWrapperSuffix = tt.suffix

			d := only(t)(Configure(GCCLinux, bc, opts))
			assert.Equal(t, "gcc", d.Name)
			assert.Equal(t, tt.wantTargets, d.Targets())

			linux := resolved(t, d, target.LinuxX86_64)
			assert.Equal(t, "gcc", linux[toolchain.RoleCCompiler].Name)
			assert.Empty(t, linux[toolchain.RoleCCompiler].Rules)

			if tt.wantWin64 != "" {
				win := resolved(t, d, target.WindowsX86_64)
				for _, role := range toolchain.CompilerRoles() {
					assert.Equal(t, tt.wantWin64, win[role].Name, "role %s", role)
				}
				assert.Equal(t, "x86_64-w64-mingw32-ar", win[toolchain.RoleArchiver].Name)
			}
		})
	}
}

func TestConfigureWindowsHost(t *testing.T) {
	bc := newContext(t, target.HostWindows, mocks.NewMockEnvironment(t))

	vc := only(t)(Configure(VisualCpp, bc, Options{}))
	assert.Equal(t, "visualCpp", vc.Name)
	assert.Equal(t, []target.Triple{target.WindowsX86_64, target.WindowsX86}, vc.Targets())
	for _, tr := range vc.Targets() {
		tools := resolved(t, vc, tr)
		assert.Equal(t, "cl.exe", tools[toolchain.RoleCCompiler].Name, tr.String())
		assert.Equal(t, "ml64.exe", tools[toolchain.RoleAssembler].Name, tr.String())
	}

	gcc := only(t)(Configure(GCCWindows, bc, Options{}))
	assert.Equal(t, "gcc", gcc.Name)
	assert.Equal(t, []target.Triple{target.WindowsX86_64, target.WindowsX86}, gcc.Targets())
}

func TestConfigureOsxcross(t *testing.T) {
	sibling := filepath.Join(workDir, "osxcross")
	bin := filepath.Join(sibling, "target", "bin")

	t.Run("sibling with SDKs", func(t *testing.T) {
		bc := newContext(t, target.HostLinux, mocks.NewMockEnvironment(t),
			bin,
			filepath.Join(sibling, "target", "SDK", "MacOSX10.15.sdk"),
			filepath.Join(sibling, "target", "SDK", "MacOSX11.3.sdk"),
		)

		d := only(t)(Configure(Osxcross, bc, Options{}))
		assert.Equal(t, "osxcross", d.Name)
		assert.Equal(t, toolchain.KindClang, d.Family.Kind)
		assert.Equal(t, []string{bin, filepath.Join(sibling, "target", "binutils", "bin")}, d.SearchPath)
		assert.Equal(t, filepath.Join(sibling, "target", "SDK", "MacOSX10.15.sdk"), d.SDKPathOverride)

		b := resolved(t, d, target.MacOSX86_64)
		assert.Equal(t, "o64-clang", b[toolchain.RoleCCompiler].Name)
		assert.Equal(t, "o64-clang", b[toolchain.RoleAssembler].Name)
		assert.Equal(t, "o64-clang++", b[toolchain.RoleCppCompiler].Name)
		assert.Equal(t, "o64-clang++", b[toolchain.RoleLinker].Name)
		assert.Equal(t, "x86_64-apple-darwin19-objcopy", b[toolchain.RoleSymbolExtractor].Name)
		assert.Equal(t, "x86_64-apple-darwin19-strip", b[toolchain.RoleStripper].Name)
	})

	t.Run("override is the bin dir", func(t *testing.T) {
		bc := newContext(t, target.HostLinux, mocks.NewMockEnvironment(t),
			"/opt/osx/bin", "/opt/osx/SDK/MacOSX12.sdk")
		bc.Properties[locator.PropertyOsxcrossBin] = "/opt/osx/bin"

		d := only(t)(Configure(Osxcross, bc, Options{Darwin: "darwin21"}))
		assert.Equal(t, "/opt/osx/SDK/MacOSX12.sdk", d.SDKPathOverride)
		assert.Equal(t, "x86_64-apple-darwin21-strip", resolved(t, d, target.MacOSX86_64)[toolchain.RoleStripper].Name)
	})

	t.Run("empty SDK dir", func(t *testing.T) {
		bc := newContext(t, target.HostLinux, mocks.NewMockEnvironment(t),
			bin, filepath.Join(sibling, "target", "SDK"))

		ds, err := Configure(Osxcross, bc, Options{})
		assert.Nil(t, ds)
		require.ErrorIs(t, err, ErrUnavailable)
		assert.Contains(t, err.Error(), "no macOS SDK")
	})

	t.Run("not located", func(t *testing.T) {
		env := mocks.NewMockEnvironment(t)
		env.EXPECT().LookPath("xcrun").Return("", errNotOnPath)
		bc := newContext(t, target.HostLinux, env)

		ds, err := Configure(Osxcross, bc, Options{})
		assert.Nil(t, ds)
		require.ErrorIs(t, err, ErrUnavailable)
		assert.Contains(t, err.Error(), "osxcrossBin")
	})
}

func TestConfigureAndroidNDK(t *testing.T) {
	const root = "/sdk/ndk/25.2.9519653"
	prebuilt := filepath.Join(root, "toolchains", "llvm", "prebuilt")

	t.Run("env alias", func(t *testing.T) {
		env := mocks.NewMockEnvironment(t)
		env.EXPECT().LookupEnv(locator.EnvAndroidNDKRoot).Return("", false)
		env.EXPECT().LookupEnv(locator.EnvAndroidNDKHome).Return(root, true)
		bc := newContext(t, target.HostLinux, env,
			filepath.Join(prebuilt, "darwin-x86_64", "bin"),
			filepath.Join(prebuilt, "linux-x86_64", "bin"),
		)

		d := only(t)(Configure(AndroidNDK, bc, Options{}))
		bin := filepath.Join(prebuilt, "linux-x86_64", "bin")
		include := filepath.Join(prebuilt, "linux-x86_64", "sysroot", "usr", "include")
		assert.Equal(t, "androidNdk", d.Name)
		assert.Equal(t, []string{bin}, d.SearchPath)
		assert.Equal(t, []target.Triple{
			target.AndroidARMv7a, target.AndroidARM64v8, target.AndroidX86, target.AndroidX86_64,
		}, d.Targets())

		arm64 := resolved(t, d, target.AndroidARM64v8)
		for _, role := range toolchain.CompilerRoles() {
			exe := arm64[role]
			assert.Equal(t, "clang-14", exe.Name)
			assert.Equal(t, []string{
				"-isystem", include,
				"-isystem", filepath.Join(include, "aarch64-linux-android"),
				"-isystem", filepath.Join(include, "c++", "v1"),
				"-c", "foo.c",
				"-target", "aarch64-linux-android21",
				"-fdeclspec",
				"-fms-extensions",
			}, exe.Arguments("-c", "foo.c"), "role %s", role)
		}
		assert.Equal(t, "llvm-ar", arm64[toolchain.RoleArchiver].Name)
		assert.Equal(t, "llvm-strip", arm64[toolchain.RoleStripper].Name)
		assert.Equal(t, "llvm-objcopy", arm64[toolchain.RoleSymbolExtractor].Name)
		assert.Empty(t, arm64[toolchain.RoleArchiver].Rules)

		armv7 := resolved(t, d, target.AndroidARMv7a)
		args := armv7[toolchain.RoleCCompiler].Arguments()
		assert.Contains(t, args, "armv7a-linux-androideabi21")
		assert.Contains(t, args, filepath.Join(include, "arm-linux-androideabi"))
		assert.NotContains(t, args, "-fms-extensions")
	})

	t.Run("api level and compiler options", func(t *testing.T) {
		bc := newContext(t, target.HostLinux, mocks.NewMockEnvironment(t),
			filepath.Join(prebuilt, "linux-x86_64", "bin"))
		bc.Properties[locator.PropertyAndroidNDK] = root

		d := only(t)(Configure(AndroidNDK, bc, Options{APILevel: 24, Compiler: "clang"}))
		exe := resolved(t, d, target.AndroidX86)[toolchain.RoleCppCompiler]
		assert.Equal(t, "clang", exe.Name)
		assert.Contains(t, exe.Arguments(), "i686-linux-android24")
	})

	t.Run("host tag fallback", func(t *testing.T) {
		bc := newContext(t, target.HostWindows, mocks.NewMockEnvironment(t),
			filepath.Join(prebuilt, "linux-x86_64", "bin"))
		bc.Properties[locator.PropertyAndroidNDK] = root

		d := only(t)(Configure(AndroidNDK, bc, Options{}))
		assert.Equal(t, []string{filepath.Join(prebuilt, "linux-x86_64", "bin")}, d.SearchPath)
	})

	t.Run("no prebuilt dir", func(t *testing.T) {
		bc := newContext(t, target.HostLinux, mocks.NewMockEnvironment(t), root)
		bc.Properties[locator.PropertyAndroidNDK] = root

		ds, err := Configure(AndroidNDK, bc, Options{})
		assert.Nil(t, ds)
		require.ErrorIs(t, err, ErrUnavailable)
		assert.Contains(t, err.Error(), "no LLVM prebuilt")
	})

	t.Run("not located", func(t *testing.T) {
		env := mocks.NewMockEnvironment(t)
		env.EXPECT().LookupEnv(mock.Anything).Return("", false)
		bc := newContext(t, target.HostLinux, env)

		ds, err := Configure(AndroidNDK, bc, Options{})
		assert.Nil(t, ds)
		require.ErrorIs(t, err, ErrUnavailable)
		var ue *UnavailableError
		require.ErrorAs(t, err, &ue)
		assert.Equal(t, AndroidNDK, ue.Family)
	})
}

func TestOptionsWithDefaults(t *testing.T) {
	got := Options{Darwin: "darwin20"}.withDefaults()
	want := Options{APILevel: 21, Compiler: "clang-14", Darwin: "darwin20"}
	if got != want {
		t.Errorf("withDefaults() = %+v, want %+v", got, want)
	}
}
