package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/teranos/shapeshare/am"
	"github.com/teranos/shapeshare/errors"
	"github.com/teranos/shapeshare/loader"
	"github.com/teranos/shapeshare/loader/golang"
	"github.com/teranos/shapeshare/logger"
	"github.com/teranos/shapeshare/model"
	"github.com/teranos/shapeshare/typegen"
	"github.com/teranos/shapeshare/typegen/kotlin"
	"github.com/teranos/shapeshare/typegen/scala"
)

// ConfigPath is set by the root --config flag.
var ConfigPath string

// supportedLanguages lists every backend in generation order.
var supportedLanguages = []model.Lang{model.LangKotlin, model.LangScala}

// generated is the output of one backend run.
type generated struct {
	lang     model.Lang
	filename string
	data     []byte
	report   *typegen.Report
}

// loadConfig reads --config or the merged configuration.
func loadConfig() (*am.Config, error) {
	if ConfigPath != "" {
		return am.LoadFromFile(ConfigPath)
	}
	return am.Load()
}

// resolveLanguages expands the --lang flag. Empty means the configured list.
func resolveLanguages(flag string, cfg *am.Config) ([]model.Lang, error) {
	flag = strings.ToLower(strings.TrimSpace(flag))
	var names []string
	switch flag {
	case "":
		names = cfg.Generate.Languages
	case "all":
		return supportedLanguages, nil
	default:
		names = strings.Split(flag, ",")
	}

	var langs []model.Lang
	seen := make(map[model.Lang]bool)
	for _, name := range names {
		lang := model.Lang(strings.TrimSpace(name))
		switch lang {
		case "kt":
			lang = model.LangKotlin
		case "sc":
			lang = model.LangScala
		}
		if lang != model.LangKotlin && lang != model.LangScala {
			return nil, errors.WithHint(
				errors.NewInvalidConfigError("invalid language: %s", name),
				"supported: kotlin, scala, all",
			)
		}
		if !seen[lang] {
			seen[lang] = true
			langs = append(langs, lang)
		}
	}
	if len(langs) == 0 {
		return nil, errors.NewInvalidConfigError("no languages selected")
	}
	return langs, nil
}

// loadModel reads the model from a Go package or a model document.
func loadModel(ctx context.Context, modelPath, goPackage string) (*model.Model, error) {
	if goPackage != "" {
		return golang.Load(ctx, ".", goPackage)
	}
	if modelPath == "" {
		return nil, errors.WithHint(
			errors.NewInvalidConfigError("no model given"),
			"pass --model, --go-package or set generate.model in shapeshare.toml",
		)
	}
	return loader.LoadFile(modelPath)
}

// newLanguage builds the backend for lang.
func newLanguage(lang model.Lang, cfg typegen.Config) (typegen.Language, error) {
	switch lang {
	case model.LangKotlin:
		return kotlin.New(cfg)
	case model.LangScala:
		return scala.New(cfg)
	}
	return nil, errors.NewInvalidConfigError("unknown language: %s", lang)
}

// generateAll runs one Generator per language concurrently. Results keep the
// order of langs.
func generateAll(ctx context.Context, cfg *am.Config, m *model.Model, langs []model.Lang, policy typegen.Policy) ([]generated, error) {
	results := make([]generated, len(langs))
	g, ctx := errgroup.WithContext(ctx)

	for i, lang := range langs {
		g.Go(func() error {
			tcfg, err := cfg.ToTypegenConfig(lang, m.ModuleName)
			if err != nil {
				return err
			}
			backend, err := newLanguage(lang, tcfg)
			if err != nil {
				return errors.Wrapf(err, "configure %s", lang)
			}

			var buf bytes.Buffer
			report, err := typegen.NewGenerator(backend, typegen.WithPolicy(policy)).Generate(ctx, m, &buf)
			if err != nil {
				return errors.Wrapf(err, "failed to generate %s", lang)
			}
			if logger.ShouldOutput(logger.Verbosity, logger.OutputProgress) {
				logger.Infow("Generated language",
					logger.FieldBackend, string(lang),
					logger.FieldCount, len(report.Emitted),
					logger.FieldSkipped, len(report.Skipped))
			}

			results[i] = generated{
				lang:     lang,
				filename: tcfg.ModuleName + "." + backend.FileExtension(),
				data:     buf.Bytes(),
				report:   report,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// writeGenerated writes each result to dir/<module>.<ext>.
func writeGenerated(results []generated, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create output directory")
	}

	paths := make([]string, 0, len(results))
	for _, r := range results {
		path := filepath.Join(dir, r.filename)
		if err := os.WriteFile(path, r.data, 0644); err != nil {
			return nil, errors.Wrapf(err, "failed to write %s", path)
		}
		logger.Debugw("Wrote generated file",
			logger.FieldBackend, string(r.lang),
			logger.FieldFile, path,
			logger.FieldBytes, len(r.data))
		paths = append(paths, path)
	}
	return paths, nil
}
