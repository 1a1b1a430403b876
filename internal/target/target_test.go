package target

import (
	"encoding/json"
	"testing"

	"github.com/thoreinstein/ntc/internal/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Triple
	}{
		{"linux-x86_64", LinuxX86_64},
		{"linux_x86-64", LinuxX86_64},
		{"windows_x86", WindowsX86},
		{"macos_x86-64", MacOSX86_64},
		{"android_armv7a", AndroidARMv7a},
		{"android-arm64-v8a", AndroidARM64v8},
		{"  Android_X86-64 ", AndroidX86_64},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_Unknown(t *testing.T) {
	for _, in := range []string{"", "linux-riscv64", "ios-arm64", "android"} {
		if _, err := Parse(in); !errors.Is(err, errors.ErrUnknownTarget) {
			t.Errorf("Parse(%q) error = %v, want ErrUnknownTarget", in, err)
		}
	}
}

func TestAll_RoundTrip(t *testing.T) {
	seen := map[string]bool{}
	for _, tr := range All() {
		if seen[tr.String()] {
			t.Errorf("duplicate triple %s", tr)
		}
		seen[tr.String()] = true
		if got := MustParse(tr.String()); got != tr {
			t.Errorf("MustParse(%q) = %v", tr.String(), got)
		}
	}
	if len(seen) != 9 {
		t.Errorf("All() returned %d triples, want 9", len(seen))
	}
}

func TestTriple_JSONMapKey(t *testing.T) {
	in := map[Triple]string{AndroidX86: "clang-14"}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"android-x86":"clang-14"}` {
		t.Errorf("Marshal() = %s", data)
	}

	var out map[Triple]string
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if out[AndroidX86] != "clang-14" {
		t.Errorf("Unmarshal() = %v", out)
	}
}

func TestParseHost(t *testing.T) {
	tests := []struct {
		in      string
		want    HostOS
		wantErr bool
	}{
		{"linux", HostLinux, false},
		{"darwin", HostMacOS, false},
		{"macos", HostMacOS, false},
		{"Windows", HostWindows, false},
		{"plan9", "", true},
	}
	for _, tt := range tests {
		got, err := ParseHost(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHost(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseHost(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNDKHostTag(t *testing.T) {
	if got := HostMacOS.NDKHostTag(); got != "darwin-x86_64" {
		t.Errorf("NDKHostTag() = %q", got)
	}
	if got := HostLinux.NDKHostTag(); got != "linux-x86_64" {
		t.Errorf("NDKHostTag() = %q", got)
	}
}
