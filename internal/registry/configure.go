package registry

import (
	"github.com/thoreinstein/ntc/internal/errors"
	"github.com/thoreinstein/ntc/internal/family"
	"github.com/thoreinstein/ntc/internal/locator"
	"github.com/thoreinstein/ntc/internal/policy"
	"github.com/thoreinstein/ntc/internal/target"
	"github.com/thoreinstein/ntc/internal/toolchain"
)

// Skip records a family that was attempted but not registered.
type Skip struct {
	Family family.ID `json:"family" yaml:"family" toml:"family"`
	Reason string    `json:"reason" yaml:"reason" toml:"reason"`
}

// Registration records a toolchain registered by a family.
type Registration struct {
	Family    family.ID `json:"family" yaml:"family" toml:"family"`
	Toolchain string    `json:"toolchain" yaml:"toolchain" toml:"toolchain"`
}

// Report summarizes one configuration run.
type Report struct {
	Host       target.HostOS  `json:"host" yaml:"host" toml:"host"`
	Attempted  []family.ID    `json:"attempted" yaml:"attempted" toml:"attempted"`
	Skipped    []Skip         `json:"skipped,omitempty" yaml:"skipped,omitempty" toml:"skipped,omitempty"`
	Registered []Registration `json:"registered,omitempty" yaml:"registered,omitempty" toml:"registered,omitempty"`
}

// SkipReason returns why id was skipped, if it was.
func (r *Report) SkipReason(id family.ID) (string, bool) {
	for _, s := range r.Skipped {
		if s.Family == id {
			return s.Reason, true
		}
	}
	return "", false
}

// Configure runs the platform policy for bc.Host and returns a sealed
// registry. Unavailable families are skipped; any other configurator error,
// or a malformed descriptor, aborts the run and registers nothing.
func Configure(bc *locator.BuildContext, opts family.Options) (*Registry, *Report, error) {
	log := bc.Log().With("host", string(bc.Host))
	report := &Report{Host: bc.Host}

	type pending struct {
		id family.ID
		d  *toolchain.Descriptor
	}
	var batch []pending

	for _, step := range policy.Steps(bc.Host) {
		report.Attempted = append(report.Attempted, step.Family)

		descriptors, err := family.Configure(step.Family, bc, opts)
		if errors.Is(err, family.ErrUnavailable) {
			reason := err.Error()
			var ue *family.UnavailableError
			if errors.As(err, &ue) {
				reason = ue.Reason
			}
			log.Info("toolchain family skipped", "family", string(step.Family), "reason", reason)
			report.Skipped = append(report.Skipped, Skip{Family: step.Family, Reason: reason})
			continue
		}
		if err != nil {
			return nil, report, errors.Wrapf(err, "configuring %s", step.Family)
		}
		for _, d := range descriptors {
			batch = append(batch, pending{id: step.Family, d: d})
		}
	}

	descriptors := make([]*toolchain.Descriptor, len(batch))
	for i, p := range batch {
		descriptors[i] = p.d
	}

	r := New()
	if err := r.Register(descriptors...); err != nil {
		return nil, report, err
	}
	r.Seal()

	for _, p := range batch {
		report.Registered = append(report.Registered, Registration{Family: p.id, Toolchain: p.d.Name})
		log.Debug("toolchain registered", "family", string(p.id), "toolchain", p.d.Name,
			"targets", tripleStrings(p.d.Targets()))
	}
	return r, report, nil
}

func tripleStrings(ts []target.Triple) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.String()
	}
	return out
}
