package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ntc/internal/config"
	"github.com/thoreinstein/ntc/internal/doctor"
	"github.com/thoreinstein/ntc/internal/errors"
	"github.com/thoreinstein/ntc/internal/locator"
	"github.com/thoreinstein/ntc/internal/logging"
	"github.com/thoreinstein/ntc/internal/policy"
)

var (
	doctorJSON    bool
	doctorQuiet   bool
	doctorVerbose bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorQuiet, "silent", false,
		"suppress output, exit code only")
	doctorCmd.Flags().BoolVar(&doctorVerbose, "all", false,
		"show every check including passed ones")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose toolchain availability",
	Long: `Run diagnostic checks on the configuration and the toolchains this host
can configure.

Checks that the config is valid, that the Android NDK and osxcross are
discoverable and laid out as expected, which mingw-w64 front-ends are on
PATH, and that a full configure succeeds.

Output modes (mutually exclusive):
  (default)   Show errors and warnings
  --all       Show all checks including passed ones
  --silent    No output, exit code only
  --json      Machine-readable JSON output

Exit codes:
  0 - No errors or warnings
  1 - Warnings present, no errors
  2 - Errors present`,
	Args:    cobra.NoArgs,
	PreRunE: validateDoctorFlags,
	RunE:    runDoctor,
}

// validateDoctorFlags ensures output flags are mutually exclusive.
func validateDoctorFlags(_ *cobra.Command, _ []string) error {
	count := 0
	if doctorJSON {
		count++
	}
	if doctorQuiet {
		count++
	}
	if doctorVerbose {
		count++
	}

	if count > 1 {
		return errors.NewUserError(errors.New("conflicting output flags"),
			"flags --json, --silent, and --all are mutually exclusive")
	}

	return nil
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	bc, err := newBuildContext(cmd)
	if err != nil {
		return err
	}
	// Checks report missing toolchains themselves; keep locator advisories
	// out of the output unless asked for.
	if verbosity == 0 {
		bc.Logger = logging.NewDiscard()
	}

	runner := newDoctorRunner(bc, loadedConfig(), config.Path())
	report := runner.Run(cmd.Context())

	if err := outputDoctorReport(cmd.OutOrStdout(), report); err != nil {
		return err
	}

	// Determine exit code based on results
	if report.HasErrors() {
		return errDoctorErrors
	}
	if report.HasWarnings() {
		return errDoctorWarnings
	}
	return nil
}

// newDoctorRunner registers the checks for bc.Host.
func newDoctorRunner(bc *locator.BuildContext, cfg *config.Config, cfgPath string) *doctor.Runner {
	runner := doctor.NewRunner()
	runner.AddCheck(doctor.NewConfigCheck(cfg, cfgPath))
	for _, step := range policy.Steps(bc.Host) {
		if step.Optional() {
			runner.AddCheck(doctor.NewLocateCheck(bc, step.Requires))
		}
	}
	runner.AddCheck(doctor.NewMingwCheck(bc, cfg.Mingw.WrapperSuffix))
	runner.AddCheck(doctor.NewConfigureCheck(bc, cfg.FamilyOptions()))
	return runner
}

func outputDoctorReport(w io.Writer, report *doctor.Report) error {
	if doctorQuiet {
		return nil
	}

	if doctorJSON {
		return outputDoctorJSON(w, report)
	}

	outputDoctorText(w, report)
	return nil
}

func outputDoctorJSON(w io.Writer, report *doctor.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return errors.Wrap(err, "encoding JSON")
	}
	return nil
}

func outputDoctorText(w io.Writer, report *doctor.Report) {
	// In normal mode, show only errors and warnings
	// In --all mode, show all checks
	showAll := doctorVerbose

	hasOutput := false
	for _, result := range report.Results {
		if !showAll && result.Status != doctor.SeverityError && result.Status != doctor.SeverityWarning {
			continue
		}

		hasOutput = true
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(result.Status), result.Category, result.Name, result.Message)

		if result.FixHint != "" && (result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning) {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
	}

	// Print summary
	if hasOutput || showAll {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return okStyle.Sprint("✓")
	case doctor.SeverityInfo:
		return dimStyle.Sprint("ℹ")
	case doctor.SeverityWarning:
		return warnStyle.Sprint("⚠")
	case doctor.SeverityError:
		return errStyle.Sprint("✗")
	default:
		return "?"
	}
}

// errDoctorWarnings exits 1 without printing; the report already did.
var errDoctorWarnings = errors.NewExitError(nil, errors.ExitUser)

// errDoctorErrors exits 2 without printing; the report already did.
var errDoctorErrors = errors.NewExitError(nil, errors.ExitSystem)
