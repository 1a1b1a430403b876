// Package prompt provides interactive CLI prompts for choosing between
// toolchains that serve the same target.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/ntc/internal/errors"
	"github.com/thoreinstein/ntc/internal/registry"
	"github.com/thoreinstein/ntc/internal/target"
	"github.com/thoreinstein/ntc/internal/toolchain"
)

// Sentinel errors for toolchain selection.
var (
	ErrNoToolchains       = errors.New("no toolchains to select from")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// Selector handles interactive toolchain selection prompts.
type Selector struct {
	reader io.Reader
	writer io.Writer
}

// NewSelector creates a new Selector using stdin and stdout.
func NewSelector() *Selector {
	return &Selector{
		reader: os.Stdin,
		writer: os.Stdout,
	}
}

// NewSelectorWithIO creates a Selector with custom reader and writer for testing.
func NewSelectorWithIO(r io.Reader, w io.Writer) *Selector {
	return &Selector{
		reader: r,
		writer: w,
	}
}

// SelectToolchain prompts the user to choose a toolchain for t.
//
// Returns:
//   - ErrNoToolchains if the list is empty
//   - The toolchain if only one exists (auto-selects without prompting)
//   - The selected toolchain based on user input, the first on empty input
//   - ErrInvalidSelection if the selection is out of range
//   - ErrSelectionCancelled if input is EOF (e.g., Ctrl+D)
func (s *Selector) SelectToolchain(t target.Triple, candidates []*registry.Toolchain) (*registry.Toolchain, error) {
	if len(candidates) == 0 {
		return nil, ErrNoToolchains
	}
	if len(candidates) == 1 {
		return candidates[0], nil
	}

	fmt.Fprintf(s.writer, "Multiple toolchains serve %s:\n", t)
	for i, tc := range candidates {
		fmt.Fprintf(s.writer, "  [%d] %s\n", i+1, Label(tc, t))
	}
	fmt.Fprintf(s.writer, "Select [1]: ")

	input, err := bufio.NewReader(s.reader).ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrSelectionCancelled
		}
		return nil, errors.Wrap(err, "reading selection")
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return candidates[0], nil
	}

	selection, err := strconv.Atoi(input)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidSelection, "%q is not a number", input)
	}
	if selection < 1 || selection > len(candidates) {
		return nil, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", selection, len(candidates))
	}
	return candidates[selection-1], nil
}

// Label describes tc as a one-line choice, e.g. "gcc (gcc, x86_64-w64-mingw32-g++)".
func Label(tc *registry.Toolchain, t target.Triple) string {
	exe, ok := tc.Tool(t, toolchain.RoleCppCompiler)
	if !ok {
		return fmt.Sprintf("%s (%s)", tc.Name(), tc.Family())
	}
	return fmt.Sprintf("%s (%s, %s)", tc.Name(), tc.Family(), exe.Name)
}

// FuzzySelectToolchain opens a full-screen fuzzy finder over candidates with
// a preview of each toolchain's executables for t.
func FuzzySelectToolchain(t target.Triple, candidates []*registry.Toolchain) (*registry.Toolchain, error) {
	if len(candidates) == 0 {
		return nil, ErrNoToolchains
	}

	idx, err := fuzzyfinder.Find(
		candidates,
		func(i int) string { return Label(candidates[i], t) },
		fuzzyfinder.WithHeader("toolchains for "+t.String()),
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return Preview(candidates[i], t)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, ErrSelectionCancelled
		}
		return nil, errors.Wrap(err, "interactive selection failed")
	}
	return candidates[idx], nil
}

// Preview renders the executables tc uses for t, one role per line.
func Preview(tc *registry.Toolchain, t target.Triple) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Toolchain: %s\nFamily: %s\n", tc.Name(), tc.Family())
	if sp := tc.SearchPath(); len(sp) > 0 {
		fmt.Fprintf(&b, "Search path: %s\n", strings.Join(sp, string(os.PathListSeparator)))
	}
	if sdk := tc.SDKPath(); sdk != "" {
		fmt.Fprintf(&b, "SDK: %s\n", sdk)
	}
	b.WriteString("\n")
	for _, role := range toolchain.Roles() {
		exe, ok := tc.Tool(t, role)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%-17s %s\n", role, strings.Join(append([]string{exe.Name}, exe.Arguments()...), " "))
	}
	return b.String()
}
