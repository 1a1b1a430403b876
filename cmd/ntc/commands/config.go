package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/ntc/internal/config"
	"github.com/thoreinstein/ntc/internal/editor"
	"github.com/thoreinstein/ntc/internal/errors"
	"github.com/thoreinstein/ntc/pkg/fileutil"
)

// configKeys are the scalar keys 'ntc config set' accepts. Properties use
// the properties.<name> form.
var configKeys = []string{
	"version",
	"working_dir",
	"host",
	"android.api_level",
	"android.compiler",
	"osxcross.darwin",
	"mingw.wrapper_suffix",
}

// intKeys hold integers and are stored as such.
var intKeys = []string{"version", "android.api_level"}

const propertiesPrefix = "properties."

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage ntc configuration",
	Long: `Manage ntc configuration stored in ntc.yaml.

The file is read from the current directory, then from
$XDG_CONFIG_HOME/ntc. Any key can also be set with an NTC_ environment
variable, e.g. NTC_ANDROID_API_LEVEL=24.

Without a subcommand, lists all configuration values.`,
	Example: `  # List all configuration
  ntc config

  # Get a specific value
  ntc config get android.api_level

  # Set a value
  ntc config set android.api_level 24

  # Pin the NDK location
  ntc config set properties.androidNdk /opt/android-ndk-r25c

See Also: ntc doctor`,
	RunE: runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a single configuration value by key.

Supports dot notation for nested keys.`,
	Example: `  # Get the NDK compiler name
  ntc config get android.compiler

See Also: ntc config set, ntc config list`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and write the config file.

The resulting configuration is validated before it is written.
Valid keys: ` + strings.Join(configKeys, ", ") + `, properties.<name>.`,
	Example: `  # Target a newer Android API level
  ntc config set android.api_level 24

  # Use gxx-faker wrappers for mingw
  ntc config set mingw.wrapper_suffix -faker

See Also: ntc config get, ntc config list`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration",
	Long:  `List all configuration values in YAML format.`,
	Example: `  # List all configuration
  ntc config list

See Also: ntc config get, ntc config set`,
	RunE: runConfigList,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open configuration in $EDITOR",
	Long: `Open the configuration file in your default editor.

Uses $EDITOR, then $VISUAL, falling back to nano or vi. A missing file is
created with the current values first.`,
	Example: `  # Open config in default editor
  ntc config edit

  # Open with specific editor
  EDITOR=nano ntc config edit

See Also: ntc config list, ntc doctor`,
	RunE: runConfigEdit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), config.Path())
	},
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	return configGet(cmd.OutOrStdout(), args[0])
}

func configGet(w io.Writer, key string) error {
	if name, ok := strings.CutPrefix(key, propertiesPrefix); ok {
		v, found := loadedConfig().Properties[name]
		if !found {
			fmt.Fprintln(w, "not set")
			return nil
		}
		fmt.Fprintln(w, v)
		return nil
	}

	if !viper.IsSet(key) {
		fmt.Fprintln(w, "not set")
		return nil
	}

	switch v := viper.Get(key).(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "%s: %v\n", k, v[k])
		}
	default:
		fmt.Fprintln(w, viper.GetString(key))
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg := *loadedConfig()
	if err := applyConfigValue(&cfg, key, value); err != nil {
		return errors.NewUserError(err, "valid keys: "+strings.Join(configKeys, ", ")+", properties.<name>")
	}

	if errs := config.Validate(&cfg); len(errs) > 0 {
		return errors.NewUserError(errors.Wrap(errs[0], "rejected"), fmt.Sprintf("%s is not a valid %s", value, key))
	}

	path := config.Path()
	if err := writeConfig(path, &cfg); err != nil {
		return err
	}
	appConfig = &cfg

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
	return nil
}

// applyConfigValue sets key on cfg from its string form.
func applyConfigValue(cfg *config.Config, key, value string) error {
	if name, ok := strings.CutPrefix(key, propertiesPrefix); ok {
		if name == "" {
			return errors.Newf("empty property name in %q", key)
		}
		props := make(map[string]string, len(cfg.Properties)+1)
		for k, v := range cfg.Properties {
			props[k] = v
		}
		props[name] = value
		cfg.Properties = props
		return nil
	}

	if !slices.Contains(configKeys, key) {
		return errors.Newf("unknown config key %q", key)
	}

	var n int
	if slices.Contains(intKeys, key) {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return errors.Newf("%s must be an integer, got %q", key, value)
		}
		n = parsed
	}

	switch key {
	case "version":
		cfg.Version = n
	case "working_dir":
		cfg.WorkingDir = value
	case "host":
		cfg.Host = value
	case "android.api_level":
		cfg.Android.APILevel = n
	case "android.compiler":
		cfg.Android.Compiler = value
	case "osxcross.darwin":
		cfg.Osxcross.Darwin = value
	case "mingw.wrapper_suffix":
		cfg.Mingw.WrapperSuffix = value
	}
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	data, err := yaml.Marshal(loadedConfig())
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	path := config.Path()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := writeConfig(path, loadedConfig()); err != nil {
			return err
		}
	}

	if err := editor.Open(cmd.Context(), path); err != nil {
		return errors.NewSystemError(err, "set $EDITOR to your editor command")
	}
	return nil
}

// writeConfig writes cfg to path as YAML, creating its directory.
func writeConfig(path string, cfg *config.Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "creating config directory"), "check permissions on "+filepath.Dir(path))
	}

	if err := fileutil.AtomicWriteYAML(path, cfg); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "writing config file"), "check permissions on "+path)
	}

	return nil
}
