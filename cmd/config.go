package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spiffcs/ghlens/config"
	"github.com/spiffcs/ghlens/internal/output"
)

// NewCmdConfig creates the config command with subcommands.
func NewCmdConfig() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or manage configuration",
		Long: `Show or manage configuration.

When run without arguments, shows the current merged configuration.

Settings are read from ~/.config/ghlens/config.yaml and then ./.ghlens.yaml,
local values winning. GHLENS_API_URL (also read from a .env file) and the
--api-url flag override api_url.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd.OutOrStdout(), outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "yaml", "Output format (yaml, json)")

	cmd.AddCommand(NewCmdConfigInit())
	cmd.AddCommand(NewCmdConfigPath())
	cmd.AddCommand(NewCmdConfigDefaults())
	cmd.AddCommand(NewCmdConfigShow())
	cmd.AddCommand(NewCmdConfigSet())

	return cmd
}

// NewCmdConfigInit creates the config init subcommand.
func NewCmdConfigInit() *cobra.Command {
	var global, local bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a minimal config file",
		Long: `Create a starter config file.

Use --global for ~/.config/ghlens/config.yaml or --local for ./.ghlens.yaml.
Without either flag you are asked which one to create.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			target, err := initTarget(cmd, global, local)
			if err != nil {
				return err
			}
			return runConfigInit(cmd.OutOrStdout(), target)
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "Create the global config file")
	cmd.Flags().BoolVar(&local, "local", false, "Create ./.ghlens.yaml")

	return cmd
}

// NewCmdConfigPath creates the config path subcommand.
func NewCmdConfigPath() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show config file locations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			printConfigPaths(cmd.OutOrStdout(), config.GetConfigPaths())
			return nil
		},
	}
}

// NewCmdConfigDefaults creates the config defaults subcommand.
func NewCmdConfigDefaults() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Show all default configuration values",
		Long: `Show a complete configuration with every default value.

Redirect it to start a config file with all options:
  ghlens config defaults > ~/.config/ghlens/config.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeConfig(cmd.OutOrStdout(), config.DefaultConfig(), outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "yaml", "Output format (yaml, json)")

	return cmd
}

// NewCmdConfigShow creates the config show subcommand.
func NewCmdConfigShow() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current merged configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd.OutOrStdout(), outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "yaml", "Output format (yaml, json)")

	return cmd
}

// NewCmdConfigSet creates the config set subcommand.
func NewCmdConfigSet() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a value in the global config file",
		Long: `Set a value in the global config file. Available keys:
  api_url             - Backend root URL
  default_format      - Default output format (table, json, markdown)
  request_timeout     - Per-request timeout (e.g., 30s, 2m; 0 disables)
  analysis_cache_ttl  - How long AI analyses are reused (e.g., 24h, 1w)`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd.OutOrStdout(), args[0], args[1])
		},
	}
}

// initTarget picks the file config init writes, prompting when neither
// --global nor --local was given.
func initTarget(cmd *cobra.Command, global, local bool) (string, error) {
	paths := config.GetConfigPaths()
	switch {
	case global && local:
		return "", fmt.Errorf("cannot specify both --global and --local")
	case global:
		return paths.GlobalPath, nil
	case local:
		return paths.LocalPath, nil
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "Where would you like to create the config file?")
	fmt.Fprintf(w, "  [1] Global (%s) - applies everywhere\n", paths.GlobalPath)
	fmt.Fprintf(w, "  [2] Local (%s) - applies only in this directory\n", paths.LocalPath)
	fmt.Fprint(w, "Choose [1/2]: ")

	choice, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && choice == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	fmt.Fprintln(w)

	switch strings.TrimSpace(choice) {
	case "1":
		return paths.GlobalPath, nil
	case "2":
		return paths.LocalPath, nil
	default:
		return "", fmt.Errorf("invalid choice: %s (must be 1 or 2)", strings.TrimSpace(choice))
	}
}

func runConfigInit(w io.Writer, target string) error {
	if _, err := os.Stat(target); err == nil {
		return fmt.Errorf("config file already exists: %s\nUse 'ghlens config show' to view current config", target)
	}
	if err := config.SaveTo(target, config.MinimalConfig()); err != nil {
		return err
	}

	fmt.Fprintf(w, "Created config file: %s\n\n", target)
	fmt.Fprintln(w, "Run 'ghlens config defaults' to see all available options.")
	return nil
}

func printConfigPaths(w io.Writer, paths config.ConfigPathInfo) {
	status := func(exists bool) string {
		if exists {
			return "exists"
		}
		return "not found"
	}

	fmt.Fprintln(w, "Configuration file locations:")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Global: %s (%s)\n", paths.GlobalPath, status(paths.GlobalExists))
	fmt.Fprintf(w, "  Local:  %s (%s)\n", paths.LocalPath, status(paths.LocalExists))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Load order: defaults -> global -> local (local overrides global)")
}

func runConfigShow(w io.Writer, format string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	return writeConfig(w, cfg, format)
}

// writeConfig prints cfg as yaml or json.
func writeConfig(w io.Writer, cfg *config.Config, format string) error {
	switch format {
	case "yaml":
		s, err := cfg.ToYAML()
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, s)
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("failed to marshal config to JSON: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("invalid format: %s (must be yaml or json)", format)
	}
}

func runConfigSet(w io.Writer, key, value string) error {
	// Only the global file is rewritten; local overrides stay untouched.
	cfg, err := config.LoadFrom(config.ConfigPath(), "")
	if err != nil {
		return err
	}

	switch key {
	case "api_url":
		cfg.APIURL = value
	case "default_format", "format":
		f, err := output.ParseFormat(value)
		if err != nil {
			return err
		}
		cfg.DefaultFormat = string(f)
	case "request_timeout":
		cfg.RequestTimeout = value
	case "analysis_cache_ttl":
		cfg.AnalysisCacheTTL = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return err
	}

	fmt.Fprintf(w, "Set %s to %s in %s.\n", key, value, config.ConfigPath())
	return nil
}
