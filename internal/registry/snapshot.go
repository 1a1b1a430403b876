package registry

import (
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/ntc/internal/errors"
	"github.com/thoreinstein/ntc/internal/target"
	"github.com/thoreinstein/ntc/internal/toolchain"
)

// SnapshotVersion is the schema version written into snapshots.
const SnapshotVersion = 1

// Snapshot is the serializable view of a registry consumed by downstream
// compilation drivers.
type Snapshot struct {
	Version    int                 `json:"version" yaml:"version" toml:"version"`
	Host       target.HostOS       `json:"host,omitempty" yaml:"host,omitempty" toml:"host,omitempty"`
	Toolchains []ToolchainSnapshot `json:"toolchains" yaml:"toolchains" toml:"toolchains"`
}

// ToolchainSnapshot describes one registered toolchain.
type ToolchainSnapshot struct {
	Name       string           `json:"name" yaml:"name" toml:"name"`
	Family     string           `json:"family" yaml:"family" toml:"family"`
	SearchPath []string         `json:"search_path,omitempty" yaml:"search_path,omitempty" toml:"search_path,omitempty"`
	SDKPath    string           `json:"sdk_path,omitempty" yaml:"sdk_path,omitempty" toml:"sdk_path,omitempty"`
	Targets    []TargetSnapshot `json:"targets" yaml:"targets" toml:"targets"`
}

// TargetSnapshot lists the tools for one triple.
type TargetSnapshot struct {
	Triple string         `json:"triple" yaml:"triple" toml:"triple"`
	Tools  []ToolSnapshot `json:"tools" yaml:"tools" toml:"tools"`
}

// ToolSnapshot is one role's executable and its argument rules.
type ToolSnapshot struct {
	Role       string              `json:"role" yaml:"role" toml:"role"`
	Executable string              `json:"executable" yaml:"executable" toml:"executable"`
	Rules      []toolchain.ArgRule `json:"rules,omitempty" yaml:"rules,omitempty" toml:"rules,omitempty"`
}

// Snapshot captures the registry's current contents.
func (r *Registry) Snapshot(host target.HostOS) Snapshot {
	snap := Snapshot{Version: SnapshotVersion, Host: host, Toolchains: []ToolchainSnapshot{}}
	for _, name := range r.Names() {
		tc, _ := r.Get(name)
		ts := ToolchainSnapshot{
			Name:       tc.Name(),
			Family:     string(tc.Family()),
			SearchPath: tc.SearchPath(),
			SDKPath:    tc.SDKPath(),
		}
		for _, t := range tc.Targets() {
			tgt := TargetSnapshot{Triple: t.String()}
			for _, role := range toolchain.Roles() {
				exe, ok := tc.Tool(t, role)
				if !ok {
					continue
				}
				tgt.Tools = append(tgt.Tools, ToolSnapshot{
					Role:       string(role),
					Executable: exe.Name,
					Rules:      exe.Rules,
				})
			}
			ts.Targets = append(ts.Targets, tgt)
		}
		snap.Toolchains = append(snap.Toolchains, ts)
	}
	return snap
}

// Format is a snapshot encoding.
type Format string

// Snapshot formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Formats returns every supported format.
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatTOML}
}

// ParseFormat accepts a format name, case-insensitively. "yml" is YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", errors.Newf("unsupported snapshot format %q (want json, yaml or toml)", s)
	}
}

// FormatForPath infers the format from a file extension.
func FormatForPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", errors.Newf("cannot infer snapshot format from %q", path)
	}
	return ParseFormat(ext)
}

// Encode writes snap to w in format.
func Encode(w io.Writer, snap Snapshot, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(snap), "encoding json snapshot")
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return errors.Wrap(err, "encoding yaml snapshot")
		}
		return errors.Wrap(enc.Close(), "encoding yaml snapshot")
	case FormatTOML:
		return errors.Wrap(toml.NewEncoder(w).Encode(snap), "encoding toml snapshot")
	default:
		return errors.Newf("unsupported snapshot format %q", format)
	}
}

// Decode reads a snapshot in format from rd.
func Decode(rd io.Reader, format Format) (Snapshot, error) {
	var snap Snapshot
	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(rd).Decode(&snap)
	case FormatYAML:
		err = yaml.NewDecoder(rd).Decode(&snap)
	case FormatTOML:
		err = toml.NewDecoder(rd).Decode(&snap)
	default:
		return snap, errors.Newf("unsupported snapshot format %q", format)
	}
	if err != nil {
		return snap, errors.Wrapf(err, "decoding %s snapshot", format)
	}
	if snap.Version != SnapshotVersion {
		return snap, errors.Newf("unsupported snapshot version %d", snap.Version)
	}
	return snap, nil
}
