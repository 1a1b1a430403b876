package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ntc/internal/errors"
	"github.com/thoreinstein/ntc/internal/locator"
)

func init() {
	rootCmd.AddCommand(locateCmd)
}

var locateCmd = &cobra.Command{
	Use:   "locate [android-ndk|osxcross]...",
	Short: "Show where external toolchains were found",
	Long: `Search for the Android NDK and osxcross the way configure does and print
the root each was found at, with the hint that matched.

Hints are tried in order: the override property, environment variables,
a conventional directory in the working directory, then PATH (osxcross).`,
	Example: `  # Locate everything
  ntc locate

  # Only the NDK, with every probe logged
  ntc locate android-ndk -vvv

  See Also: ntc doctor`,
	ValidArgs: []string{string(locator.KindAndroidNDK), string(locator.KindOsxcross)},
	Args:      cobra.OnlyValidArgs,
	RunE:      runLocate,
}

func runLocate(cmd *cobra.Command, args []string) error {
	kinds := []locator.Kind{locator.KindAndroidNDK, locator.KindOsxcross}
	if len(args) > 0 {
		kinds = kinds[:0]
		for _, a := range args {
			kinds = append(kinds, locator.Kind(a))
		}
	}

	bc, err := newBuildContext(cmd)
	if err != nil {
		return err
	}
	return printLocations(cmd.OutOrStdout(), bc, kinds)
}

func printLocations(w io.Writer, bc *locator.BuildContext, kinds []locator.Kind) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, kind := range kinds {
		res, ok := bc.LocateKind(kind)
		if !ok {
			fmt.Fprintf(tw, "%s\t%s\t\n", kind, warnStyle.Sprint("not found"))
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", kind, res.Path, dimStyle.Sprintf("(%s %s)", res.Source, res.Detail))
	}
	return errors.Wrap(tw.Flush(), "writing locations")
}
