package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/thoreinstein/ntc/internal/errors"
)

// AppName names the configuration directory and file.
const AppName = "ntc"

// ConfigFileName is the base name of the configuration file, without extension.
const ConfigFileName = "ntc"

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")

	// ErrInvalidPath indicates the provided path is malformed or invalid.
	ErrInvalidPath = errors.New("invalid path")
)

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// ConfigDir returns the ntc directory under ConfigHome.
func ConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// ExpandHome replaces a leading "~" with the user's home directory.
// Override properties are often typed by hand (-D androidNdk=~/Android/ndk).
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path, nil
	}
	home, err := ResolveHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[1:]), nil
}

// Validate checks that path is syntactically usable. It does not check existence.
func Validate(path string) error {
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}
	cleaned := filepath.Clean(path)
	if cleaned == "" {
		return ErrInvalidPath
	}
	return nil
}

// DefaultWorkingDir returns the directory probed for conventional toolchain
// installs: the parent of the current directory, so that an "android-ndk-r25"
// or "osxcross" symlink next to the natives module is found.
func DefaultWorkingDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "resolving current directory")
	}
	return filepath.Dir(cwd), nil
}
