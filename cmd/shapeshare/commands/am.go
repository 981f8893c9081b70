package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/shapeshare/am"
	"github.com/teranos/shapeshare/errors"
)

// AmCmd represents the am (configuration) command
var AmCmd = &cobra.Command{
	Use:   "am",
	Short: "Show and validate shapeshare configuration",
	Long: `am - Manage shapeshare configuration

Configuration sources (later overrides earlier):
1. Default values
2. User config (~/.shapeshare/shapeshare.toml)
3. Project config (shapeshare.toml, searched up from the working directory)
4. Environment variables (SHAPESHARE_* prefix, e.g. SHAPESHARE_KOTLIN_PACKAGE)

--config replaces 2-4 with a single file.

Examples:
  shapeshare am show                    # Show effective configuration
  shapeshare am show --format json      # Show configuration as JSON
  shapeshare am show --sources          # Show where each value came from
  shapeshare am validate                # Validate configuration
  shapeshare am init                    # Write shapeshare.toml with defaults`,
}

var amShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runAmShow,
}

var amValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate current configuration",
	RunE:  runAmValidate,
}

var amInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default shapeshare.toml in the working directory",
	Long: `Write shapeshare.toml with default values. An existing file is only
replaced with --force; the previous versions are kept as .back1 to .back3.`,
	RunE: runAmInit,
}

var (
	configFormat string
	showSources  bool
	initForce    bool
)

func init() {
	amShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json, yaml")
	amShowCmd.Flags().BoolVar(&showSources, "sources", false, "Show the source of every setting")
	amInitCmd.Flags().BoolVar(&initForce, "force", false, "Replace an existing shapeshare.toml")

	AmCmd.AddCommand(amShowCmd)
	AmCmd.AddCommand(amValidateCmd)
	AmCmd.AddCommand(amInitCmd)
}

func runAmShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	if showSources && ConfigPath == "" {
		return printSources(cmd)
	}

	data, err := am.Render(cfg, configFormat)
	if err != nil {
		return err
	}
	if configFormat != "json" {
		fmt.Fprintln(cmd.OutOrStdout(), "# shapeshare configuration")
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func printSources(cmd *cobra.Command) error {
	intro := am.GetConfigIntrospection()

	rows := pterm.TableData{{"Key", "Value", "Source", "From"}}
	for _, s := range intro.Settings {
		rows = append(rows, []string{s.Key, fmt.Sprint(s.Value), string(s.Source), s.SourcePath})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(rows).WithWriter(cmd.OutOrStdout()).Render()
}

func runAmValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}

	pterm.Success.WithWriter(cmd.OutOrStdout()).Println("Configuration is valid")
	return nil
}

func runAmInit(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, "failed to get working directory")
	}
	path := filepath.Join(wd, am.ConfigFileName)

	if _, err := os.Stat(path); err == nil && !initForce {
		return errors.WithHint(
			errors.Newf("%s already exists", path),
			"pass --force to replace it (a backup is kept)",
		)
	}
	if err := am.WriteConfig(path, am.DefaultConfig()); err != nil {
		return err
	}

	pterm.Success.WithWriter(cmd.OutOrStdout()).Printfln("Wrote %s", path)
	return nil
}
