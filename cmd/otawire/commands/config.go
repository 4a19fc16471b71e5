package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/otawire/otawire/internal/config"
	"github.com/otawire/otawire/internal/editor"
	"github.com/otawire/otawire/internal/errors"
	"github.com/otawire/otawire/internal/paths"
)

var configFormat string

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "yaml",
		"output format: yaml, toml")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage otawire configuration",
	Long: `Manage otawire configuration stored in ~/.config/otawire/config.yaml.

Without a subcommand, shows the effective configuration.`,
	Example: `  # Show effective configuration
  otawire config show

  # Show as TOML
  otawire config show --format toml

See Also: otawire doctor`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Show the effective configuration after merging defaults, the config
file, and environment variables.`,
	Example: `  # Show effective configuration
  otawire config show

  # Show as TOML
  otawire config show --format toml

See Also: otawire config`,
	RunE: runConfigShow,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open configuration in $EDITOR",
	Long: `Open the configuration file in your default editor.

Uses $EDITOR environment variable, or falls back to $VISUAL, nano, or vi.`,
	Example: `  # Open config in default editor
  otawire config edit

  # Open with specific editor
  EDITOR=nano otawire config edit

See Also: otawire config show`,
	RunE: runConfigEdit,
}

func runConfigEdit(_ *cobra.Command, _ []string) error {
	configPath := filepath.Join(paths.ConfigHome(), config.AppName, "config.yaml")

	// Scaffold the defaults so the user edits a real file, not a blank one.
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := config.WriteDefault(configPath); err != nil {
			return errors.NewSystemError(err, "")
		}
	}

	return editor.Open(configPath)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg := &config.Config{
		Version:          viper.GetInt("version"),
		UpdateHost:       viper.GetString("update_host"),
		DefaultAccount:   viper.GetString("default_account"),
		DefaultPlatforms: viper.GetStringSlice("default_platforms"),
	}

	var (
		data []byte
		err  error
	)
	switch configFormat {
	case "yaml":
		data, err = yaml.Marshal(cfg)
	case "toml":
		data, err = toml.Marshal(cfg)
	default:
		return errors.NewUserError(
			errors.Newf("unknown format %q", configFormat),
			"valid formats: yaml, toml")
	}
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}
