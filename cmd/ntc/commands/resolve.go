package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ntc/internal/cli/prompt"
	"github.com/thoreinstein/ntc/internal/errors"
	"github.com/thoreinstein/ntc/internal/logging"
	"github.com/thoreinstein/ntc/internal/registry"
	"github.com/thoreinstein/ntc/internal/target"
	"github.com/thoreinstein/ntc/internal/toolchain"
)

var (
	resolveToolchain   string
	resolveRole        string
	resolveInteractive bool
)

func init() {
	resolveCmd.Flags().StringVarP(&resolveToolchain, "toolchain", "t", "",
		"use this toolchain when several serve the target")
	resolveCmd.Flags().StringVarP(&resolveRole, "role", "r", string(toolchain.RoleCppCompiler),
		"tool role: "+roleList())
	resolveCmd.Flags().BoolVarP(&resolveInteractive, "interactive", "i", false,
		"pick between toolchains with a fuzzy finder")
	rootCmd.AddCommand(resolveCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <target> [-- base-args...]",
	Short: "Print the command line a toolchain uses for a target",
	Long: `Configure the host and print the executable and full argument list the
selected toolchain uses for a target triple and tool role.

Arguments after the target are base arguments; injected prepend rules come
before them and append rules after. When several toolchains serve the
target, --toolchain picks one, otherwise ntc prompts on a terminal and
uses the first registered toolchain when not interactive.`,
	Example: `  # C++ compiler for 64-bit ARM Android
  ntc resolve android-arm64-v8a

  # Archiver for 32-bit Windows
  ntc resolve windows-x86 --role archiver

  # Full compile line
  ntc resolve linux-x86_64 -- -c main.cpp -o main.o

  See Also: ntc list, ntc configure`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func roleList() string {
	roles := toolchain.Roles()
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}

func parseRole(s string) (toolchain.Role, error) {
	for _, r := range toolchain.Roles() {
		if string(r) == s {
			return r, nil
		}
	}
	return "", errors.Newf("unknown role %q", s)
}

func runResolve(cmd *cobra.Command, args []string) error {
	t, err := target.Parse(args[0])
	if err != nil {
		return errors.NewUserError(err, "targets: "+targetList())
	}
	role, err := parseRole(resolveRole)
	if err != nil {
		return errors.NewUserError(err, "roles: "+roleList())
	}

	bc, err := newBuildContext(cmd)
	if err != nil {
		return err
	}
	r, _, err := configureRegistry(bc)
	if err != nil {
		return err
	}

	tc, err := selectToolchain(cmd, r, t)
	if err != nil {
		return err
	}

	return printResolved(cmd.OutOrStdout(), tc, t, role, args[1:])
}

// selectToolchain picks the toolchain serving t.
func selectToolchain(cmd *cobra.Command, r *registry.Registry, t target.Triple) (*registry.Toolchain, error) {
	if resolveToolchain != "" {
		tc, ok := r.Get(resolveToolchain)
		if !ok {
			return nil, errors.NewUserError(errors.Wrapf(errors.ErrNotFound, "toolchain %q", resolveToolchain),
				"registered: "+strings.Join(r.Names(), ", "))
		}
		if !tc.Serves(t) {
			return nil, errors.NewUserError(errors.Newf("toolchain %q does not serve %s", tc.Name(), t),
				"Run: ntc list")
		}
		return tc, nil
	}

	candidates := r.ForTriple(t)
	switch {
	case len(candidates) == 0:
		return nil, errors.NewUserError(errors.Wrapf(errors.ErrNotFound, "no toolchain for %s", t), "Run: ntc doctor")
	case len(candidates) == 1:
		return candidates[0], nil
	case resolveInteractive:
		tc, err := prompt.FuzzySelectToolchain(t, candidates)
		return tc, selectionError(err)
	case logging.IsTTY(os.Stdin):
		tc, err := prompt.NewSelectorWithIO(os.Stdin, cmd.ErrOrStderr()).SelectToolchain(t, candidates)
		return tc, selectionError(err)
	default:
		logging.FromContext(cmd.Context()).Warn("several toolchains serve the target; using the first registered",
			"target", t.String(), "chosen", candidates[0].Name(), "candidates", toolchainNames(candidates))
		return candidates[0], nil
	}
}

func selectionError(err error) error {
	if err == nil {
		return nil
	}
	return errors.NewUserError(err, "pass --toolchain to choose without prompting")
}

func toolchainNames(tcs []*registry.Toolchain) []string {
	names := make([]string, len(tcs))
	for i, tc := range tcs {
		names[i] = tc.Name()
	}
	return names
}

func targetList() string {
	all := target.All()
	names := make([]string, len(all))
	for i, t := range all {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}

// printResolved writes the executable on the first line and one argument
// per following line, so callers can read it without shell quoting.
func printResolved(w io.Writer, tc *registry.Toolchain, t target.Triple, role toolchain.Role, base []string) error {
	exe, ok := tc.Tool(t, role)
	if !ok {
		return errors.NewUserError(errors.Newf("toolchain %q has no %s for %s", tc.Name(), role, t),
			"roles: "+roleList())
	}
	fmt.Fprintln(w, exe.Name)
	for _, arg := range exe.Arguments(base...) {
		fmt.Fprintln(w, arg)
	}
	return nil
}
