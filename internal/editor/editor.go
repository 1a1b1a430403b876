// Package editor launches the user's preferred text editor on the ntc
// configuration file.
package editor

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/thoreinstein/ntc/internal/errors"
	"github.com/thoreinstein/ntc/internal/logging"
)

// ErrNoEditor indicates $EDITOR or $VISUAL is set to blank words only.
var ErrNoEditor = errors.New("no editor command")

// Open launches the user's preferred editor for the given path and waits for
// it to exit. $EDITOR and $VISUAL may carry arguments, e.g. "code --wait".
func Open(ctx context.Context, path string) error {
	argv := strings.Fields(detectEditor())
	if len(argv) == 0 {
		return ErrNoEditor
	}

	logging.FromContext(ctx).Debug("launching editor", "editor", argv[0], "path", path)

	cmd := exec.CommandContext(ctx, argv[0], append(argv[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running editor %s", argv[0])
	}

	return nil
}

// detectEditor returns the editor command to use based on environment variables
// and available binaries. Fallback chain: $EDITOR → $VISUAL → nano → vi
func detectEditor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}

	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}

	if _, err := exec.LookPath("nano"); err == nil {
		return "nano"
	}

	return "vi"
}
