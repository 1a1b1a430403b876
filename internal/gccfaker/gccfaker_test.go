package gccfaker

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/thoreinstein/ntc/internal/errors"
)

func TestRealCompiler(t *testing.T) {
	tests := []struct {
		argv0   string
		want    string
		wantErr bool
	}{
		{"x86_64-w64-mingw32-g++-faker", "x86_64-w64-mingw32-g++", false},
		{"/usr/local/bin/i686-w64-mingw32-g++-faker", "/usr/local/bin/i686-w64-mingw32-g++", false},
		{"g++-faker-v2", "g++", false},
		{"g++", "", true},
		{"-faker", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.argv0, func(t *testing.T) {
			got, err := RealCompiler(tt.argv0)
			if (err != nil) != tt.wantErr {
				t.Fatalf("RealCompiler(%q) error = %v, wantErr %v", tt.argv0, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrNotWrapper) {
				t.Errorf("RealCompiler(%q) error = %v, want ErrNotWrapper", tt.argv0, err)
			}
			if got != filepath.FromSlash(tt.want) {
				t.Errorf("RealCompiler(%q) = %q, want %q", tt.argv0, got, tt.want)
			}
		})
	}
}

const macros = `#define __SIZEOF_INT__ 4
#define __GNUC_PATCHLEVEL__ 0
#define __VERSION__ "10-win32 20220113"
#define __GNUC__ 10
#define __GNUC_MINOR__ 3
#define __x86_64__ 1
`

func TestParseMacros(t *testing.T) {
	v, err := ParseMacros(strings.NewReader(macros))
	if err != nil {
		t.Fatalf("ParseMacros() error = %v", err)
	}
	if got := v.String(); got != "10.3.0" {
		t.Errorf("Version = %q, want %q", got, "10.3.0")
	}

	if _, err := ParseMacros(strings.NewReader("#define __clang__ 1\n")); err == nil {
		t.Error("ParseMacros() without __GNUC__: want error")
	}
}

func TestRewriteBanner(t *testing.T) {
	in := "Using built-in specs.\n" +
		"Target: x86_64-w64-mingw32\n" +
		"gcc version 10-win32 20220113 (GCC) \n" +
		"trailing line without newline"
	want := "Using built-in specs.\n" +
		"Target: x86_64-w64-mingw32\n" +
		"gcc version 10.3.0 (GCC)\n" +
		"trailing line without newline"

	var out bytes.Buffer
	if err := RewriteBanner(strings.NewReader(in), &out, Version{"10", "3", "0"}); err != nil {
		t.Fatalf("RewriteBanner() error = %v", err)
	}
	if out.String() != want {
		t.Errorf("RewriteBanner() =\n%s\nwant\n%s", out.String(), want)
	}
}

const fakeCompiler = `#!/bin/sh
if [ "$1" = "-dM" ]; then
  cat <<'EOM'
#define __GNUC__ 12
#define __GNUC_MINOR__ 2
#define __GNUC_PATCHLEVEL__ 1
EOM
  exit 0
fi
echo "Using built-in specs." >&2
echo "gcc version 12-posix (GCC) " >&2
echo "args: $*"
exit 3
`

func TestFaker_Run(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script compiler")
	}
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "fakecc"), []byte(fakeCompiler), 0o755); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	f, err := New(filepath.Join(dir, "fakecc-faker"), strings.NewReader(""), &stdout, &stderr)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	code, err := f.Run(context.Background(), []string{"-v", "-c", "a.c"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if code != 3 {
		t.Errorf("Run() exit code = %d, want 3", code)
	}
	if got := stdout.String(); got != "args: -v -c a.c\n" {
		t.Errorf("stdout = %q", got)
	}
	if got, want := stderr.String(), "Using built-in specs.\ngcc version 12.2.1 (GCC)\n"; got != want {
		t.Errorf("stderr = %q, want %q", got, want)
	}
}

func TestFaker_RunMissingCompiler(t *testing.T) {
	f := &Faker{Compiler: filepath.Join(t.TempDir(), "nope")}
	code, err := f.Run(context.Background(), nil)
	if err == nil {
		t.Fatal("Run() with missing compiler: want error")
	}
	if code != 1 {
		t.Errorf("Run() exit code = %d, want 1", code)
	}
}
