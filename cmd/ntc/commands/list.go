package commands

import (
	"bytes"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ntc/internal/errors"
	"github.com/thoreinstein/ntc/internal/registry"
	"github.com/thoreinstein/ntc/pkg/fileutil"
)

const formatTable = "table"

var (
	listFormat string
	listFrom   string
)

func init() {
	listCmd.Flags().StringVarP(&listFormat, "format", "f", formatTable,
		"output format: table, json, yaml, toml")
	listCmd.Flags().StringVar(&listFrom, "from", "",
		"read a snapshot written by 'ntc configure --output' instead of configuring")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered toolchains and their targets",
	Long: `List every registered toolchain with the targets it serves.

By default, configures the host first. Use --from to list a saved snapshot
without probing the machine.`,
	Example: `  # Table of toolchains and targets
  ntc list

  # Machine-readable view
  ntc list --format json

  # Inspect a saved snapshot
  ntc list --from toolchains.toml

  See Also: ntc configure, ntc resolve`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	snap, err := loadSnapshot(cmd)
	if err != nil {
		return err
	}
	return writeSnapshot(cmd.OutOrStdout(), snap, listFormat)
}

// loadSnapshot reads --from, or configures the host.
func loadSnapshot(cmd *cobra.Command) (registry.Snapshot, error) {
	if listFrom != "" {
		return readSnapshotFile(listFrom)
	}

	bc, err := newBuildContext(cmd)
	if err != nil {
		return registry.Snapshot{}, err
	}
	r, _, err := configureRegistry(bc)
	if err != nil {
		return registry.Snapshot{}, err
	}
	return r.Snapshot(bc.Host), nil
}

func readSnapshotFile(path string) (registry.Snapshot, error) {
	format, err := registry.FormatForPath(path)
	if err != nil {
		return registry.Snapshot{}, errors.NewUserError(err, "snapshot files end in .json, .yaml, .yml or .toml")
	}
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return registry.Snapshot{}, errors.NewUserError(err, "Run: ntc configure --output "+path)
	}
	snap, err := registry.Decode(bytes.NewReader(data), format)
	if err != nil {
		return registry.Snapshot{}, errors.NewUserError(err, "regenerate it with: ntc configure --output "+path)
	}
	return snap, nil
}

func writeSnapshot(w io.Writer, snap registry.Snapshot, format string) error {
	if format == formatTable {
		printSnapshotTable(w, snap)
		return nil
	}
	f, err := registry.ParseFormat(format)
	if err != nil {
		return errors.NewUserError(err, "use --format table, json, yaml or toml")
	}
	return registry.Encode(w, snap, f)
}
