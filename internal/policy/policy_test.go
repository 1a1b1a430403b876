package policy

import (
	"reflect"
	"testing"

	"github.com/thoreinstein/ntc/internal/family"
	"github.com/thoreinstein/ntc/internal/target"
)

func families(steps []Step) []family.ID {
	var ids []family.ID
	for _, s := range steps {
		ids = append(ids, s.Family)
	}
	return ids
}

func TestSteps(t *testing.T) {
	tests := []struct {
		host target.HostOS
		want []family.ID
	}{
		{target.HostLinux, []family.ID{family.GCCLinux, family.Osxcross, family.AndroidNDK}},
		{target.HostWindows, []family.ID{family.VisualCpp, family.GCCWindows, family.AndroidNDK}},
		{target.HostMacOS, []family.ID{family.AndroidNDK}},
		{target.HostOS("plan9"), nil},
	}
	for _, tt := range tests {
		t.Run(string(tt.host), func(t *testing.T) {
			got := families(Steps(tt.host))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Steps(%s) = %v, want %v", tt.host, got, tt.want)
			}
		})
	}
}

func TestSteps_Pure(t *testing.T) {
	a := Steps(target.HostLinux)
	a[0] = Step{Family: "mutated"}
	if b := Steps(target.HostLinux); b[0].Family != family.GCCLinux {
		t.Errorf("Steps() shares state between calls: got %v", b[0].Family)
	}
}

func TestStep_Optional(t *testing.T) {
	for _, s := range Steps(target.HostLinux) {
		want := s.Family == family.Osxcross || s.Family == family.AndroidNDK
		if got := s.Optional(); got != want {
			t.Errorf("%s.Optional() = %v, want %v", s.Family, got, want)
		}
	}
}

func TestSteps_ConfiguratorsExist(t *testing.T) {
	for _, h := range target.Hosts() {
		for _, s := range Steps(h) {
			if _, ok := family.Lookup(s.Family); !ok {
				t.Errorf("host %s: no configurator for %s", h, s.Family)
			}
		}
	}
}
