package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/thoreinstein/ntc/internal/errors"
	"github.com/thoreinstein/ntc/internal/registry"
	"github.com/thoreinstein/ntc/internal/target"
	"github.com/thoreinstein/ntc/internal/toolchain"
)

func candidates(t *testing.T) []*registry.Toolchain {
	t.Helper()
	r := registry.New()
	err := r.Register(
		toolchain.NewDescriptor("visualCpp", toolchain.VisualCpp).Target(target.WindowsX86_64, nil),
		toolchain.NewDescriptor("gcc", toolchain.GCC).Target(target.WindowsX86_64, nil),
	)
	if err != nil {
		t.Fatal(err)
	}
	return r.ForTriple(target.WindowsX86_64)
}

func TestSelectToolchain_Empty(t *testing.T) {
	t.Parallel()

	s := NewSelectorWithIO(strings.NewReader(""), &bytes.Buffer{})
	if _, err := s.SelectToolchain(target.WindowsX86_64, nil); !errors.Is(err, ErrNoToolchains) {
		t.Errorf("SelectToolchain() error = %v, want ErrNoToolchains", err)
	}
}

func TestSelectToolchain_SingleItem(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewSelectorWithIO(strings.NewReader(""), &buf)

	got, err := s.SelectToolchain(target.WindowsX86_64, candidates(t)[:1])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name() != "visualCpp" {
		t.Errorf("SelectToolchain() = %q, want visualCpp", got.Name())
	}
	if buf.Len() > 0 {
		t.Errorf("expected no output for single item, got: %s", buf.String())
	}
}

func TestSelectToolchain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "explicit first", input: "1\n", want: "visualCpp"},
		{name: "second", input: "2\n", want: "gcc"},
		{name: "default on empty line", input: "\n", want: "visualCpp"},
		{name: "whitespace", input: "  2  \n", want: "gcc"},
		{name: "not a number", input: "gcc\n", wantErr: ErrInvalidSelection},
		{name: "out of range", input: "3\n", wantErr: ErrInvalidSelection},
		{name: "zero", input: "0\n", wantErr: ErrInvalidSelection},
		{name: "eof", input: "", wantErr: ErrSelectionCancelled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			s := NewSelectorWithIO(strings.NewReader(tt.input), &buf)
			got, err := s.SelectToolchain(target.WindowsX86_64, candidates(t))

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("SelectToolchain() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Name() != tt.want {
				t.Errorf("SelectToolchain() = %q, want %q", got.Name(), tt.want)
			}

			out := buf.String()
			for _, w := range []string{"windows-x86_64", "[1] visualCpp (visualcpp, cl.exe)", "[2] gcc (gcc, g++)", "Select [1]:"} {
				if !strings.Contains(out, w) {
					t.Errorf("prompt missing %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestPreview(t *testing.T) {
	t.Parallel()

	r := registry.New()
	d := toolchain.NewDescriptor("androidNdk", toolchain.Clang).
		Target(target.AndroidARM64v8, toolchain.Bundle{}.WithRules(toolchain.CompilerRoles(),
			toolchain.Append("target", "-target", "aarch64-linux-android21")))
	d.SearchPath = []string{"/ndk/bin"}
	if err := r.Register(d); err != nil {
		t.Fatal(err)
	}
	tc, _ := r.Get("androidNdk")

	got := Preview(tc, target.AndroidARM64v8)
	for _, w := range []string{"Toolchain: androidNdk", "Search path: /ndk/bin", "clang -target aarch64-linux-android21", "archiver"} {
		if !strings.Contains(got, w) {
			t.Errorf("Preview() missing %q:\n%s", w, got)
		}
	}
}
