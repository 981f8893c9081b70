package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/shapeshare/am"
	"github.com/teranos/shapeshare/errors"
	"github.com/teranos/shapeshare/loader"
	"github.com/teranos/shapeshare/logger"
	"github.com/teranos/shapeshare/model"
	"github.com/teranos/shapeshare/typegen"
)

var (
	generateModel     string
	generateGoPackage string
	generateLang      string
	generateOutput    string
	generatePolicy    string
	generateWatch     bool
	checkDir          string
)

// GenerateCmd represents the generate command
var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate Kotlin and Scala sources from a model",
	Long: `Generate type definitions for each configured language.

The model comes from --model (a .yaml, .yml, .toml or .json document) or
--go-package (exported types of a Go package). Each language is generated
concurrently into <module>.<ext>; without --output the files go to stdout.

Capabilities a backend lacks (constants, imports) follow --policy:
  fail - abort the run
  warn - log and leave the definition out (default)
  skip - leave the definition out silently

Examples:
  shapeshare generate -m shapes.yaml
  shapeshare generate -m shapes.yaml -l kotlin -o gen/
  shapeshare generate -m shapes.yaml -o gen/ --watch
  shapeshare generate --go-package ./api --policy fail`,
	RunE: runGenerate,
}

// GenerateCheckCmd checks committed files against a fresh generation
var GenerateCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check if generated files are up to date",
	Long: `Generate into a temporary directory and compare with --dir,
ignoring the generated-by header.

Examples:
  shapeshare generate check -m shapes.yaml --dir gen/`,
	RunE: runGenerateCheck,
}

func init() {
	flags := GenerateCmd.PersistentFlags()
	flags.StringVarP(&generateModel, "model", "m", "", "Model document (default: generate.model)")
	flags.StringVar(&generateGoPackage, "go-package", "", "Go package to extract the model from")
	flags.StringVarP(&generateLang, "lang", "l", "", "Languages: kotlin, scala, all or a comma list (default: generate.languages)")
	flags.StringVar(&generatePolicy, "policy", "", "Unsupported capability policy: fail, warn, skip (default: generate.policy)")

	GenerateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output directory (default: generate.output, empty for stdout)")
	GenerateCmd.Flags().BoolVarP(&generateWatch, "watch", "w", false, "Regenerate when the model file changes")

	GenerateCheckCmd.Flags().StringVar(&checkDir, "dir", "", "Directory holding the committed generated files")
	GenerateCheckCmd.MarkFlagRequired("dir")

	GenerateCmd.AddCommand(GenerateCheckCmd)
}

// run holds everything one generation needs.
type run struct {
	cfg    *am.Config
	langs  []model.Lang
	policy typegen.Policy
	model  string
}

func prepare(cmd *cobra.Command) (*run, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}

	if cmd.Flags().Changed("policy") {
		cfg.Generate.Policy = generatePolicy
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	langs, err := resolveLanguages(generateLang, cfg)
	if err != nil {
		return nil, err
	}
	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}

	modelPath := generateModel
	if modelPath == "" && generateGoPackage == "" {
		modelPath = cfg.Generate.Model
	}

	if logger.ShouldOutput(logger.Verbosity, logger.OutputConfig) {
		logger.Infow("Generate configuration",
			"languages", langs,
			logger.FieldPolicy, policy.String(),
			logger.FieldPath, modelPath)
	}
	return &run{cfg: cfg, langs: langs, policy: policy, model: modelPath}, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	r, err := prepare(cmd)
	if err != nil {
		return err
	}
	output := generateOutput
	if output == "" {
		output = r.cfg.Generate.Output
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m, err := loadModel(ctx, r.model, generateGoPackage)
	if err != nil {
		return err
	}
	if err := generateOnce(ctx, cmd, r, m, output); err != nil {
		return err
	}

	if !generateWatch {
		return nil
	}
	if r.model == "" || generateGoPackage != "" {
		return errors.WithHint(
			errors.NewInvalidConfigError("--watch needs a model file"),
			"use --model instead of --go-package",
		)
	}
	return watch(ctx, cmd, r, output)
}

func generateOnce(ctx context.Context, cmd *cobra.Command, r *run, m *model.Model, output string) error {
	start := time.Now()
	results, err := generateAll(ctx, r.cfg, m, r.langs, r.policy)
	if err != nil {
		return err
	}

	status := cmd.ErrOrStderr()
	if output == "" {
		for _, res := range results {
			if _, err := cmd.OutOrStdout().Write(res.data); err != nil {
				return errors.Wrap(err, "failed to write output")
			}
		}
	} else if _, err := writeGenerated(results, output); err != nil {
		return err
	}

	printSummary(status, results, output, time.Since(start))
	return nil
}

// watch regenerates on every model change until interrupted.
func watch(ctx context.Context, cmd *cobra.Command, r *run, output string) error {
	mw, err := loader.NewModelWatcher(r.model)
	if err != nil {
		return err
	}
	defer mw.Close()

	mw.OnReload(func(m *model.Model) error {
		if err := generateOnce(ctx, cmd, r, m, output); err != nil {
			pterm.Error.WithWriter(cmd.ErrOrStderr()).Printfln("Regeneration failed: %v", err)
			return err
		}
		return nil
	})

	pterm.Info.WithWriter(cmd.ErrOrStderr()).Printfln("Watching %s (Ctrl+C to stop)", r.model)
	if err := mw.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func printSummary(w io.Writer, results []generated, output string, elapsed time.Duration) {
	if !logger.ShouldOutput(logger.Verbosity, logger.OutputUserStatus) {
		return
	}

	for _, res := range results {
		target := "stdout (" + res.filename + ")"
		if output != "" {
			target = filepath.Join(output, res.filename)
		}
		pterm.Success.WithWriter(w).Printfln("Generated %s (%d definitions, %d records)",
			target, len(res.report.Emitted), len(res.report.Records))

		for _, s := range res.report.Skipped {
			if logger.ShouldOutput(logger.Verbosity, logger.OutputSkipped) {
				pterm.Warning.WithWriter(w).Printfln("%s: skipped %s: %v", res.lang, s.Definition, s.Reason)
			}
		}
	}

	if logger.ShouldOutput(logger.Verbosity, logger.OutputTiming) {
		pterm.Info.WithWriter(w).Printfln("Done in %s", elapsed.Round(time.Millisecond))
	}
}

func runGenerateCheck(cmd *cobra.Command, args []string) error {
	r, err := prepare(cmd)
	if err != nil {
		return err
	}

	m, err := loadModel(cmd.Context(), r.model, generateGoPackage)
	if err != nil {
		return err
	}

	tempDir, err := os.MkdirTemp("", "shapeshare-check-*")
	if err != nil {
		return errors.Wrap(err, "failed to create temp directory")
	}
	defer os.RemoveAll(tempDir)

	results, err := generateAll(cmd.Context(), r.cfg, m, r.langs, r.policy)
	if err != nil {
		return err
	}
	if _, err := writeGenerated(results, tempDir); err != nil {
		return err
	}

	result, err := typegen.CompareDirectories(tempDir, checkDir)
	if err != nil {
		return errors.Wrap(err, "failed to compare directories")
	}

	w := cmd.ErrOrStderr()
	if result.UpToDate {
		pterm.Success.WithWriter(w).Println("Generated files are up to date")
		return nil
	}

	pterm.Error.WithWriter(w).Println("Generated files are out of date")
	for _, f := range result.Differences {
		fmt.Fprintf(w, "  differs: %s\n", f)
	}
	for _, f := range result.Missing {
		fmt.Fprintf(w, "  missing: %s\n", f)
	}
	return errors.WithHint(
		errors.Newf("%d generated files are out of date", len(result.Differences)+len(result.Missing)),
		"run 'shapeshare generate -o "+checkDir+"' to update",
	)
}
