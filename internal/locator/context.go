package locator

import (
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/thoreinstein/ntc/internal/target"
)

// Environment is the process environment the locator probes.
type Environment interface {
	// LookupEnv returns the value of an environment variable.
	LookupEnv(key string) (string, bool)
	// LookPath searches PATH for an executable.
	LookPath(file string) (string, error)
}

// OSEnvironment reads the real process environment.
type OSEnvironment struct{}

// LookupEnv implements Environment.
func (OSEnvironment) LookupEnv(key string) (string, bool) { return os.LookupEnv(key) }

// LookPath implements Environment.
func (OSEnvironment) LookPath(file string) (string, error) { return exec.LookPath(file) }

// BuildContext carries everything discovery depends on for one run. It
// replaces process-wide state: callers thread it explicitly into the locator,
// the platform policy and the family configurators.
type BuildContext struct {
	// Host is the operating system ntc is configuring toolchains for.
	Host target.HostOS

	// WorkingDir is probed for conventional installs (android-ndk*, osxcross*).
	// Empty disables the probe.
	WorkingDir string

	// Fs is the filesystem probed for directories.
	Fs afero.Fs

	// Env supplies environment variables and PATH lookups.
	Env Environment

	// Properties are explicit overrides, e.g. "androidNdk" -> "/opt/ndk".
	Properties map[string]string

	// Logger receives trace probes and advisories.
	Logger *slog.Logger

	cache map[cacheKey]cachedResult
}

type cachedResult struct {
	res Resolution
	ok  bool
}

// NewBuildContext returns a context backed by the real OS.
func NewBuildContext(host target.HostOS, workingDir string, properties map[string]string) *BuildContext {
	return &BuildContext{
		Host:       host,
		WorkingDir: workingDir,
		Fs:         afero.NewOsFs(),
		Env:        OSEnvironment{},
		Properties: properties,
		Logger:     slog.Default(),
	}
}

// Log returns the context logger, or slog.Default when none is set.
func (bc *BuildContext) Log() *slog.Logger {
	if bc.Logger == nil {
		return slog.Default()
	}
	return bc.Logger
}

func (bc *BuildContext) fs() afero.Fs {
	if bc.Fs == nil {
		return afero.NewOsFs()
	}
	return bc.Fs
}

func (bc *BuildContext) env() Environment {
	if bc.Env == nil {
		return OSEnvironment{}
	}
	return bc.Env
}

// Property returns the override property key, ignoring empty values.
func (bc *BuildContext) Property(key string) (string, bool) {
	v, ok := bc.Properties[key]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// LookPath searches PATH through the context's environment.
func (bc *BuildContext) LookPath(file string) (string, error) {
	return bc.env().LookPath(file)
}

// IsDir reports whether path exists on the context filesystem and is a directory.
func (bc *BuildContext) IsDir(path string) bool {
	ok, err := afero.DirExists(bc.fs(), path)
	return err == nil && ok
}

// SubDirs lists the directories directly under dir, sorted by name.
func (bc *BuildContext) SubDirs(dir string) ([]string, error) {
	entries, err := afero.ReadDir(bc.fs(), dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		switch {
		case e.IsDir():
			names = append(names, e.Name())
		case e.Mode()&os.ModeSymlink != 0:
			// Conventional installs are usually symlinks to the real bundle.
			if bc.IsDir(filepath.Join(dir, e.Name())) {
				names = append(names, e.Name())
			}
		}
	}
	return names, nil
}
