package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ntc/internal/errors"
	"github.com/thoreinstein/ntc/internal/locator"
	"github.com/thoreinstein/ntc/internal/registry"
	"github.com/thoreinstein/ntc/pkg/fileutil"
)

var (
	configureOutput string
	configureFormat string
)

func init() {
	configureCmd.Flags().StringVarP(&configureOutput, "output", "o", "",
		"write the registry snapshot to this file")
	configureCmd.Flags().StringVar(&configureFormat, "format", "",
		"snapshot format: json, yaml, toml (default: from --output extension)")
	rootCmd.AddCommand(configureCmd)
}

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Discover and register toolchains for this host",
	Long: `Run the platform policy for the host, locate external toolchains and
register every toolchain that is available.

Families whose external toolchain cannot be found are skipped with an
advisory. A malformed toolchain aborts the run and nothing is registered.`,
	Example: `  # Configure and print the report
  ntc configure

  # Export the registry for a build driver
  ntc configure --output toolchains.yaml

  # Configure as if on Windows
  ntc configure --host windows

  See Also: ntc list, ntc resolve, ntc doctor`,
	Args: cobra.NoArgs,
	RunE: runConfigure,
}

func runConfigure(cmd *cobra.Command, _ []string) error {
	bc, err := newBuildContext(cmd)
	if err != nil {
		return err
	}
	return runConfigureWithWriter(cmd.OutOrStdout(), bc)
}

// runConfigureWithWriter allows injecting a writer and context for testing.
func runConfigureWithWriter(w io.Writer, bc *locator.BuildContext) error {
	r, report, err := configureRegistry(bc)
	if err != nil {
		return err
	}

	if !quiet {
		printReport(w, report)
	}

	if configureOutput == "" {
		return nil
	}

	format, err := snapshotFormat(configureFormat, configureOutput)
	if err != nil {
		return errors.NewUserError(err, "use --format json, yaml or toml")
	}

	snap := r.Snapshot(bc.Host)
	err = fileutil.AtomicWriteWith(configureOutput, fileutil.DefaultPerm, func(fw io.Writer) error {
		return registry.Encode(fw, snap, format)
	})
	if err != nil {
		return errors.NewSystemError(err, "check that the output directory exists and is writable")
	}

	if !quiet {
		fmt.Fprintf(w, "\nWrote %d toolchain(s) to %s\n", len(snap.Toolchains), configureOutput)
	}
	return nil
}

// configureRegistry runs a full configuration with the loaded options.
func configureRegistry(bc *locator.BuildContext) (*registry.Registry, *registry.Report, error) {
	r, report, err := registry.Configure(bc, loadedConfig().FamilyOptions())
	if err != nil {
		if errors.Is(err, registry.ErrMalformedDescriptor) {
			return nil, report, errors.NewUserError(err, "check the toolchain properties and config")
		}
		return nil, report, errors.NewSystemError(err, "Run: ntc doctor")
	}
	return r, report, nil
}

// snapshotFormat picks the explicit format, else infers it from path.
func snapshotFormat(explicit, path string) (registry.Format, error) {
	if explicit != "" {
		return registry.ParseFormat(explicit)
	}
	return registry.FormatForPath(path)
}
