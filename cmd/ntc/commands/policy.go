package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ntc/internal/errors"
	"github.com/thoreinstein/ntc/internal/policy"
	"github.com/thoreinstein/ntc/internal/target"
)

func init() {
	rootCmd.AddCommand(policyCmd)
}

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Show the toolchain families configured for a host",
	Long: `Print the ordered family steps configure runs for the host, and the
external toolchain each optional step needs.`,
	Example: `  # Steps for this machine
  ntc policy

  # Steps on a Windows build agent
  ntc policy --host windows`,
	Args: cobra.NoArgs,
	RunE: runPolicy,
}

func runPolicy(cmd *cobra.Command, _ []string) error {
	host, err := loadedConfig().HostOS()
	if hostFlag != "" {
		host, err = target.ParseHost(hostFlag)
	}
	if err != nil {
		return errors.NewConfigError(err)
	}
	printPolicy(cmd.OutOrStdout(), host)
	return nil
}

func printPolicy(w io.Writer, host target.HostOS) {
	fmt.Fprintf(w, "%s\n", headerStyle.Sprintf("Host: %s", host))
	for i, step := range policy.Steps(host) {
		if step.Optional() {
			fmt.Fprintf(w, "  %d. %s %s\n", i+1, step.Family, dimStyle.Sprintf("(requires %s)", step.Requires))
			continue
		}
		fmt.Fprintf(w, "  %d. %s\n", i+1, step.Family)
	}
}
