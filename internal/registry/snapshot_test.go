package registry

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/ntc/internal/target"
	"github.com/thoreinstein/ntc/internal/toolchain"
)

func snapshotRegistry(t *testing.T) *Registry {
	t.Helper()
	ndk := toolchain.NewDescriptor("androidNdk", toolchain.Clang).
		Target(target.AndroidARM64v8, toolchain.Bundle{
			toolchain.RoleArchiver: {Name: "llvm-ar"},
		}.WithRules(toolchain.CompilerRoles(),
			toolchain.Prepend("sysroot-include", "-isystem", "/ndk/sysroot/usr/include"),
			toolchain.Append("target", "-target", "aarch64-linux-android21"),
		))
	ndk.SearchPath = []string{"/ndk/bin"}

	r := New()
	require.NoError(t, r.Register(gccDescriptor(), ndk))
	r.Seal()
	return r
}

func TestSnapshot(t *testing.T) {
	snap := snapshotRegistry(t).Snapshot(target.HostLinux)

	assert.Equal(t, SnapshotVersion, snap.Version)
	assert.Equal(t, target.HostLinux, snap.Host)
	require.Len(t, snap.Toolchains, 2)

	ndk := snap.Toolchains[1]
	assert.Equal(t, "androidNdk", ndk.Name)
	assert.Equal(t, "clang", ndk.Family)
	require.Len(t, ndk.Targets, 1)
	assert.Equal(t, "android-arm64-v8a", ndk.Targets[0].Triple)

	tools := ndk.Targets[0].Tools
	require.Len(t, tools, len(toolchain.Roles()))
	assert.Equal(t, "c-compiler", tools[0].Role)
	assert.Equal(t, "clang", tools[0].Executable)
	assert.Len(t, tools[0].Rules, 2)
	assert.Equal(t, "llvm-ar", tools[4].Executable)
	assert.Empty(t, tools[4].Rules)
}

func TestSnapshot_Empty(t *testing.T) {
	snap := New().Snapshot(target.HostMacOS)
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, snap, FormatJSON))
	assert.Contains(t, buf.String(), `"toolchains": []`)
}

func TestEncodeDecode(t *testing.T) {
	want := snapshotRegistry(t).Snapshot(target.HostLinux)

	for _, format := range Formats() {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, want, format))
			assert.Contains(t, buf.String(), "prepend")

			got, err := Decode(&buf, format)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestDecode_Version(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"version": 7, "toolchains": []}`), FormatJSON)
	assert.ErrorContains(t, err, "unsupported snapshot version 7")
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"YAML", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"toml", FormatTOML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatForPath(t *testing.T) {
	if f, err := FormatForPath("out/toolchains.toml"); err != nil || f != FormatTOML {
		t.Errorf("FormatForPath() = %q, %v; want toml", f, err)
	}
	if _, err := FormatForPath("toolchains"); err == nil {
		t.Error("FormatForPath() without extension: want error")
	}
}
