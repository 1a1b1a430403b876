package locator

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/ntc/internal/logging"
	"github.com/thoreinstein/ntc/internal/paths"
)

// Kind identifies an external dependency the locator can search for.
type Kind string

// Known kinds.
const (
	KindAndroidNDK Kind = "android-ndk"
	KindOsxcross   Kind = "osxcross"
)

// Source records which hint produced a Resolution.
type Source string

// Hint sources, in precedence order.
const (
	SourceOverride Source = "override"
	SourceEnv      Source = "env"
	SourceSibling  Source = "sibling"
	SourcePath     Source = "path"
)

// Property keys accepted as explicit overrides.
const (
	PropertyAndroidNDK  = "androidNdk"
	PropertyOsxcrossBin = "osxcrossBin"
)

// Environment variables naming the NDK root, tried in order.
const (
	EnvAndroidNDKRoot = "ANDROID_NDK_ROOT"
	EnvAndroidNDKHome = "ANDROID_NDK_HOME"
)

// Hints lists where to look for one dependency.
type Hints struct {
	// DisplayName is used in advisories, e.g. "Android NDK".
	DisplayName string
	// Consequence completes "<DisplayName> not found, ...".
	Consequence string
	// Property is the override property key.
	Property string
	// EnvVars are tried in order.
	EnvVars []string
	// SiblingPrefix matches directory names under the working directory.
	SiblingPrefix string
	// PathMarker is an executable searched on PATH; empty disables the probe.
	PathMarker string
}

// HintsFor returns the standard hints for kind.
func HintsFor(kind Kind) Hints {
	switch kind {
	case KindAndroidNDK:
		return Hints{
			DisplayName:   "Android NDK",
			Consequence:   "android builds will be unavailable",
			Property:      PropertyAndroidNDK,
			EnvVars:       []string{EnvAndroidNDKRoot, EnvAndroidNDKHome},
			SiblingPrefix: "android-ndk",
		}
	case KindOsxcross:
		return Hints{
			DisplayName:   "osxcross",
			Consequence:   "macOS builds will be unavailable",
			Property:      PropertyOsxcrossBin,
			SiblingPrefix: "osxcross",
			PathMarker:    "xcrun",
		}
	default:
		return Hints{DisplayName: string(kind)}
	}
}

// Resolution is a located toolchain root.
type Resolution struct {
	Kind   Kind
	Path   string
	Source Source
	// Detail names the property, variable, directory or marker that matched.
	Detail string
	// Candidates lists every sibling directory that matched, when more than one did.
	Candidates []string
}

// Locate resolves kind using hints, returning false when nothing matched.
// The first call per kind and hints is cached on bc; later calls with the
// same hints return the cached result without probing or logging again.
func (bc *BuildContext) Locate(kind Kind, hints Hints) (Resolution, bool) {
	key := newCacheKey(kind, hints)
	if c, ok := bc.cache[key]; ok {
		return c.res, c.ok
	}

	res, ok := bc.probe(kind, hints)
	log := bc.Log().With("kind", string(kind))
	if ok {
		log.Debug("located toolchain root", "path", res.Path, "source", string(res.Source), "detail", res.Detail)
	} else {
		log.Warn(Advisory(hints, bc.WorkingDir))
	}

	if bc.cache == nil {
		bc.cache = make(map[cacheKey]cachedResult)
	}
	bc.cache[key] = cachedResult{res: res, ok: ok}
	return res, ok
}

type cacheKey struct {
	kind     Kind
	property string
	envVars  string
	sibling  string
	marker   string
}

func newCacheKey(kind Kind, hints Hints) cacheKey {
	return cacheKey{
		kind:     kind,
		property: hints.Property,
		envVars:  strings.Join(hints.EnvVars, "\x00"),
		sibling:  hints.SiblingPrefix,
		marker:   hints.PathMarker,
	}
}

// LocateKind is Locate with the standard hints for kind.
func (bc *BuildContext) LocateKind(kind Kind) (Resolution, bool) {
	return bc.Locate(kind, HintsFor(kind))
}

func (bc *BuildContext) probe(kind Kind, hints Hints) (Resolution, bool) {
	log := bc.Log().With("kind", string(kind))

	if hints.Property != "" {
		if v, ok := bc.Property(hints.Property); ok {
			path, err := paths.ExpandHome(v)
			if err == nil {
				return Resolution{Kind: kind, Path: filepath.Clean(path), Source: SourceOverride, Detail: hints.Property}, true
			}
			logging.Trace(log, "override not expandable", "property", hints.Property, "error", err)
		} else {
			logging.Trace(log, "override not set", "property", hints.Property)
		}
	}

	for _, name := range hints.EnvVars {
		if v, ok := bc.env().LookupEnv(name); ok && v != "" {
			return Resolution{Kind: kind, Path: filepath.Clean(v), Source: SourceEnv, Detail: name}, true
		}
		logging.Trace(log, "environment variable not set", "var", name)
	}

	if hints.SiblingPrefix != "" && bc.WorkingDir != "" {
		if res, ok := bc.probeSiblings(kind, hints.SiblingPrefix); ok {
			return res, true
		}
	}

	if hints.PathMarker != "" {
		p, err := bc.env().LookPath(hints.PathMarker)
		if err == nil {
			return Resolution{Kind: kind, Path: filepath.Dir(p), Source: SourcePath, Detail: hints.PathMarker}, true
		}
		logging.Trace(log, "marker not on PATH", "marker", hints.PathMarker)
	}

	return Resolution{Kind: kind}, false
}

func (bc *BuildContext) probeSiblings(kind Kind, prefix string) (Resolution, bool) {
	log := bc.Log().With("kind", string(kind))

	names, err := bc.SubDirs(bc.WorkingDir)
	if err != nil {
		logging.Trace(log, "working directory not readable", "dir", bc.WorkingDir, "error", err)
		return Resolution{}, false
	}

	var matches []string
	for _, name := range names {
		if strings.HasPrefix(name, prefix) {
			matches = append(matches, name)
		}
	}
	if len(matches) == 0 {
		logging.Trace(log, "no conventional install", "dir", bc.WorkingDir, "prefix", prefix)
		return Resolution{}, false
	}

	res := Resolution{
		Kind:   kind,
		Path:   filepath.Join(bc.WorkingDir, matches[0]),
		Source: SourceSibling,
		Detail: matches[0],
	}
	if len(matches) > 1 {
		res.Candidates = matches
		log.Warn("multiple conventional installs; using the lexicographically first",
			"chosen", matches[0], "candidates", matches)
	}
	return res, true
}

// Advisory explains how to make a missing dependency discoverable.
func Advisory(hints Hints, workingDir string) string {
	var remedies []string
	if len(hints.EnvVars) > 0 {
		remedies = append(remedies, "set "+strings.Join(hints.EnvVars, " or ")+" to the install location")
	}
	if hints.PathMarker != "" {
		remedies = append(remedies, fmt.Sprintf("add the directory containing %s to PATH", hints.PathMarker))
	}
	if hints.Property != "" {
		remedies = append(remedies, fmt.Sprintf("run ntc with -D %s=<path>", hints.Property))
	}
	if hints.SiblingPrefix != "" {
		dir := workingDir
		if dir == "" {
			dir = "the working directory"
		}
		remedies = append(remedies, fmt.Sprintf("symlink the install as %s* in %s", hints.SiblingPrefix, dir))
	}

	msg := fmt.Sprintf("no %s found, %s", hints.DisplayName, hints.Consequence)
	if len(remedies) == 0 {
		return msg
	}
	return msg + ". Please " + strings.Join(remedies, ", ")
}
