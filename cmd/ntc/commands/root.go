// Package commands implements the CLI commands for ntc.
package commands

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	buildinfo "github.com/thoreinstein/ntc/cmd"
	"github.com/thoreinstein/ntc/internal/config"
	"github.com/thoreinstein/ntc/internal/errors"
	"github.com/thoreinstein/ntc/internal/locator"
	"github.com/thoreinstein/ntc/internal/logging"
	"github.com/thoreinstein/ntc/internal/target"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configFile holds the value of the --config flag.
var configFile string

// hostFlag holds the value of the --host flag.
var hostFlag string

// workingDirFlag holds the value of the --working-dir flag.
var workingDirFlag string

// defines holds the -D key=value override properties.
var defines []string

// appConfig is the configuration loaded before any command runs.
var appConfig *config.Config

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv, -vvv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: ./ntc.yaml, then $XDG_CONFIG_HOME/ntc/ntc.yaml)")
	rootCmd.PersistentFlags().StringVar(&hostFlag, "host", "",
		"host operating system to configure for: linux, windows, macos (default: running OS)")
	rootCmd.PersistentFlags().StringVar(&workingDirFlag, "working-dir", "",
		"directory probed for android-ndk* and osxcross* installs (default: parent of current directory)")
	rootCmd.PersistentFlags().StringArrayVarP(&defines, "define", "D", nil,
		"override property key=value, e.g. -D androidNdk=/opt/ndk")

	rootCmd.Version = buildinfo.Version
	rootCmd.SetVersionTemplate("ntc version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	appConfig, configLoadErr = config.Load(configFile)
}

var rootCmd = &cobra.Command{
	Use:   "ntc",
	Short: "Native toolchain configurator",
	Long: `ntc discovers, configures and registers the C/C++ toolchains needed to
build native binaries for desktop Linux, Windows and macOS and the four
Android ABIs, including cross toolchains that are not native to the host.

Missing third-party toolchains (Android NDK, osxcross, mingw-w64) are
reported as advisories; every toolchain that is available is still
registered.`,
	Example: `  # Configure toolchains for this host and print what was registered
  ntc configure

  # Export the registry for a build driver
  ntc configure --output toolchains.json

  # Show the compiler command line for a target
  ntc resolve android-arm64-v8a

  # Point at an NDK explicitly
  ntc configure -D androidNdk=/opt/android-ndk-r25c

  See Also: ntc doctor, ntc config`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logging first
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfig(cmd, args)
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("conflicting flags"), "cannot use --quiet and --verbose together")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("NTC_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var primaryHandler slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		primaryHandler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	default:
		primaryHandler = logging.NewHandler(cmd.ErrOrStderr(), opts)
	}

	handlers := []slog.Handler{primaryHandler}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		// File output uses JSON format
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: level,
		}))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// checkConfig reports config load errors and validates global flags.
func checkConfig(cmd *cobra.Command, _ []string) error {
	// Skip validation for help and version commands
	if cmd.Name() == "help" || cmd.Name() == "version" {
		return nil
	}

	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}

	if hostFlag != "" {
		if _, err := target.ParseHost(hostFlag); err != nil {
			return errors.NewUserError(err, "valid hosts: "+hostList())
		}
	}

	if _, err := parseDefines(defines); err != nil {
		return errors.NewUserError(err, "use -D key=value, e.g. -D androidNdk=/opt/ndk")
	}

	return nil
}

func hostList() string {
	hosts := target.Hosts()
	names := make([]string, len(hosts))
	for i, h := range hosts {
		names[i] = string(h)
	}
	return strings.Join(names, ", ")
}

// parseDefines splits -D key=value pairs. Later definitions win.
func parseDefines(defs []string) (map[string]string, error) {
	out := make(map[string]string, len(defs))
	for _, d := range defs {
		key, value, ok := strings.Cut(d, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, errors.Newf("invalid property definition %q", d)
		}
		out[key] = value
	}
	return out, nil
}

// loadedConfig returns the loaded configuration, or defaults when loading
// was skipped.
func loadedConfig() *config.Config {
	if appConfig == nil {
		return config.Default()
	}
	return appConfig
}

// newBuildContext assembles the discovery context from flags and config.
func newBuildContext(cmd *cobra.Command) (*locator.BuildContext, error) {
	cfg := loadedConfig()

	host, err := cfg.HostOS()
	if hostFlag != "" {
		host, err = target.ParseHost(hostFlag)
	}
	if err != nil {
		return nil, errors.NewConfigError(err)
	}

	var workingDir string
	if workingDirFlag != "" {
		workingDir, err = (&config.Config{WorkingDir: workingDirFlag}).ResolveWorkingDir()
	} else {
		workingDir, err = cfg.ResolveWorkingDir()
	}
	if err != nil {
		return nil, errors.NewSystemError(err, "pass --working-dir explicitly")
	}

	overrides, err := parseDefines(defines)
	if err != nil {
		return nil, errors.NewUserError(err, "use -D key=value")
	}

	bc := locator.NewBuildContext(host, workingDir, cfg.MergeProperties(overrides))
	bc.Logger = logging.FromContext(cmd.Context())
	return bc, nil
}

// Execute runs the root command.
func Execute() error {
	return errors.Wrap(rootCmd.Execute(), "executing root command")
}
