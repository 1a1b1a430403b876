// Package gccfaker wraps a GCC-compatible compiler so build tools that parse
// "gcc version" banners see a plain GCC version string.
//
// Distribution builds of mingw-w64 print vendor banners such as
// "gcc version 10-win32 20220113 (GCC)" that some toolchain probes reject.
// The wrapper is installed as "<compiler>-faker" (for example
// x86_64-w64-mingw32-g++-faker), reads the real version from the compiler's
// predefined macros and rewrites the banner on stderr while passing every
// other line through unchanged.
package gccfaker

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/ntc/internal/errors"
)

// Suffix marks a wrapper executable name.
const Suffix = "-faker"

// bannerPrefix starts the stderr line that is rewritten.
const bannerPrefix = "gcc version"

// ErrNotWrapper is returned when argv[0] does not name a wrapper.
var ErrNotWrapper = errors.New("not invoked as a -faker wrapper")

// RealCompiler derives the wrapped compiler from the wrapper's argv[0] by
// cutting everything from the first "-faker". The directory part is kept so
// a wrapper invoked by absolute path runs the compiler beside it.
func RealCompiler(argv0 string) (string, error) {
	dir, base := filepath.Split(argv0)
	name, _, found := strings.Cut(base, Suffix)
	if !found || name == "" {
		return "", errors.Wrapf(ErrNotWrapper, "%q", argv0)
	}
	if dir == "" {
		return name, nil
	}
	return filepath.Join(dir, name), nil
}

// Version is a GCC version read from predefined macros.
type Version struct {
	Major string
	Minor string
	Patch string
}

// String returns "major.minor.patch".
func (v Version) String() string {
	return v.Major + "." + v.Minor + "." + v.Patch
}

// Banner returns the rewritten stderr line, without a newline.
func (v Version) Banner() string {
	return fmt.Sprintf("%s %s (GCC)", bannerPrefix, v)
}

// ParseMacros reads `cc -dM -E -` output and extracts the __GNUC__ family.
func ParseMacros(r io.Reader) (Version, error) {
	var v Version
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 || fields[0] != "#define" {
			continue
		}
		value := strings.Join(fields[2:], " ")
		switch fields[1] {
		case "__GNUC__":
			v.Major = value
		case "__GNUC_MINOR__":
			v.Minor = value
		case "__GNUC_PATCHLEVEL__":
			v.Patch = value
		}
	}
	if err := sc.Err(); err != nil {
		return v, errors.Wrap(err, "reading predefined macros")
	}
	if v.Major == "" {
		return v, errors.New("compiler does not define __GNUC__")
	}
	return v, nil
}

// RewriteBanner copies r to w line by line, replacing lines that start with
// "gcc version" with v's banner.
func RewriteBanner(r io.Reader, w io.Writer, v Version) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			if strings.HasPrefix(line, bannerPrefix) {
				line = v.Banner() + "\n"
			}
			if _, werr := io.WriteString(w, line); werr != nil {
				return errors.Wrap(werr, "writing stderr")
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "reading compiler stderr")
		}
	}
}

// Faker runs a wrapped compiler.
type Faker struct {
	// Compiler is the real compiler executable.
	Compiler string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New returns a Faker for the compiler named by argv0.
func New(argv0 string, stdin io.Reader, stdout, stderr io.Writer) (*Faker, error) {
	cc, err := RealCompiler(argv0)
	if err != nil {
		return nil, err
	}
	return &Faker{Compiler: cc, Stdin: stdin, Stdout: stdout, Stderr: stderr}, nil
}

// Version queries the compiler's predefined macros.
func (f *Faker) Version(ctx context.Context) (Version, error) {
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, f.Compiler, "-dM", "-E", "-")
	cmd.Stdin = strings.NewReader("")
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return Version{}, errors.Wrapf(err, "querying %s predefined macros", f.Compiler)
	}
	return ParseMacros(&out)
}

// Run executes the compiler with args and returns its exit code. A non-nil
// error means the compiler could not be run at all.
func (f *Faker) Run(ctx context.Context, args []string) (int, error) {
	v, err := f.Version(ctx)
	if err != nil {
		return 1, err
	}

	cmd := exec.CommandContext(ctx, f.Compiler, args...)
	cmd.Stdin = f.Stdin
	cmd.Stdout = f.Stdout
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return 1, errors.Wrap(err, "opening compiler stderr")
	}
	if err := cmd.Start(); err != nil {
		return 1, errors.Wrapf(err, "starting %s", f.Compiler)
	}

	copyErr := RewriteBanner(stderr, f.Stderr, v)
	if copyErr != nil {
		_, _ = io.Copy(io.Discard, stderr)
	}
	waitErr := cmd.Wait()

	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if waitErr != nil {
		return 1, errors.Wrapf(waitErr, "running %s", f.Compiler)
	}
	if copyErr != nil {
		return 1, copyErr
	}
	return 0, nil
}
