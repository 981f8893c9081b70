package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/shapeshare/cmd/shapeshare/commands"
	"github.com/teranos/shapeshare/errors"
	"github.com/teranos/shapeshare/logger"
)

var rootCmd = &cobra.Command{
	Use:   "shapeshare",
	Short: "Share data shapes across languages",
	Long: `shapeshare - Generate Kotlin and Scala type definitions from one data model.

A model describes structs, enums (plain and tagged unions), aliases and
constants. It is read from a YAML, TOML or JSON document, or extracted from
the exported types of a Go package.

Available commands:
  generate - Generate source files for the configured languages
  am       - Show and validate configuration (shapeshare.toml)
  version  - Show build information

Examples:
  shapeshare generate -m shapes.yaml              # All configured languages to stdout
  shapeshare generate -m shapes.yaml -l kotlin -o gen/
  shapeshare generate --go-package ./api -l scala
  shapeshare generate check --dir gen/            # Fail if gen/ is stale
  shapeshare am show --format yaml`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLogs, _ := cmd.Flags().GetBool("json-logs")
		if err := logger.Initialize(jsonLogs, verbosity); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Write logs as JSON to stderr")
	rootCmd.PersistentFlags().StringVarP(&commands.ConfigPath, "config", "c", "", "Config file (default: shapeshare.toml found walking up)")

	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.AmCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		os.Exit(1)
	}
}
