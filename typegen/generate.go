package typegen

import (
	"bytes"
	"context"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teranos/shapeshare/errors"
	"github.com/teranos/shapeshare/logger"
	"github.com/teranos/shapeshare/model"
)

// Skipped records a definition left out of the output.
type Skipped struct {
	Definition string
	Reason     error
}

// Report summarizes one generation run.
type Report struct {
	RunID    string
	Language string
	// Emitted lists definitions in the order they were written
	Emitted []string
	Skipped []Skipped
	// Records lists synthesized inline-record structs
	Records  []string
	Bytes    int
	Duration time.Duration
}

// Generator runs the hoist-then-emit pipeline for one backend.
type Generator struct {
	lang   Language
	policy Policy
	log    *zap.SugaredLogger
}

// Option configures a Generator.
type Option func(*Generator)

// WithPolicy sets the unsupported-capability policy. The default is PolicyFail.
func WithPolicy(p Policy) Option {
	return func(g *Generator) { g.policy = p }
}

// WithLogger replaces the logger derived from the global one.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(g *Generator) { g.log = l }
}

// NewGenerator creates a generator for lang.
func NewGenerator(lang Language, opts ...Option) *Generator {
	g := &Generator{lang: lang, policy: PolicyFail}
	for _, opt := range opts {
		opt(g)
	}
	if g.log == nil {
		g.log = logger.Named(lang.Name())
	}
	return g
}

// Language returns the backend this generator drives.
func (g *Generator) Language() Language {
	return g.lang
}

// Generate writes the whole file for m to w. Each definition is rendered into
// its own buffer first; a definition that fails writes nothing to w.
func (g *Generator) Generate(ctx context.Context, m *model.Model, w io.Writer) (*Report, error) {
	start := time.Now()
	report := &Report{RunID: uuid.NewString(), Language: g.lang.Name()}
	log := g.log.With(logger.FieldRunID, report.RunID, logger.FieldModule, m.ModuleName)

	plan, err := Hoist(m)
	if err != nil {
		return report, err
	}
	for _, r := range plan.Records {
		report.Records = append(report.Records, r.ID.Original)
	}
	if logger.ShouldOutput(logger.Verbosity, logger.OutputPlan) {
		log.Debugw("hoisted model",
			logger.FieldCount, len(plan.Definitions),
			logger.FieldRecords, len(plan.Records),
			logger.FieldPolicy, g.policy.String(),
		)
	}

	s := &sink{w: w}

	if err := s.emit(func(buf io.Writer) error { return g.lang.BeginFile(buf, m) }); err != nil {
		return report, errors.Wrapf(err, "%s: begin file", g.lang.Name())
	}

	if imports := g.imports(m); len(imports) > 0 {
		err := s.emit(func(buf io.Writer) error { return g.lang.WriteImports(buf, imports) })
		if err := g.handle(log, report, "imports", err); err != nil {
			return report, err
		}
	}

	for _, section := range g.sections(m, plan) {
		if err := s.write(section.Open); err != nil {
			return report, err
		}
		for _, def := range section.Items {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			name := def.DefinitionID().Original
			err := s.emit(func(buf io.Writer) error { return g.write(buf, def) })
			if err == nil {
				report.Emitted = append(report.Emitted, name)
				if logger.ShouldOutput(logger.Verbosity, logger.OutputDefinitions) {
					log.Debugw("emitted definition", logger.FieldDefinition, name)
				}
				continue
			}
			if err := g.handle(log, report, name, err); err != nil {
				return report, err
			}
		}
		if err := s.write(section.Close); err != nil {
			return report, err
		}
	}

	if err := s.emit(g.lang.EndFile); err != nil {
		return report, errors.Wrapf(err, "%s: end file", g.lang.Name())
	}

	report.Bytes = s.n
	report.Duration = time.Since(start)
	log.Debugw("generation complete",
		logger.FieldCount, len(report.Emitted),
		logger.FieldSkipped, len(report.Skipped),
		logger.FieldBytes, report.Bytes,
		logger.FieldDurationMS, report.Duration.Milliseconds(),
	)
	return report, nil
}

// handle applies the policy to a failed definition. It returns nil when the
// run continues.
func (g *Generator) handle(log *zap.SugaredLogger, report *Report, name string, err error) error {
	if err == nil {
		return nil
	}
	if !errors.IsNotImplementedError(err) {
		log.Errorw("definition failed", logger.FieldDefinition, name, logger.FieldError, err)
		return errors.Wrapf(err, "%s: %s", g.lang.Name(), name)
	}
	switch g.policy {
	case PolicyWarn:
		log.Warnw("skipping definition", logger.FieldDefinition, name, logger.FieldError, err)
	case PolicySkip:
	default:
		return errors.Wrapf(err, "%s: %s", g.lang.Name(), name)
	}
	report.Skipped = append(report.Skipped, Skipped{Definition: name, Reason: err})
	return nil
}

func (g *Generator) write(w io.Writer, def model.Definition) error {
	switch d := def.(type) {
	case *model.AliasDef:
		return g.lang.WriteTypeAlias(w, d)
	case *model.StructDef:
		return g.lang.WriteStruct(w, d)
	case *model.EnumDef:
		return g.lang.WriteEnum(w, d)
	case *model.ConstDef:
		return g.lang.WriteConst(w, d)
	}
	return errors.AssertionFailedf("unknown definition %T", def)
}

func (g *Generator) sections(m *model.Model, plan *Plan) []Section {
	if layout, ok := g.lang.(Layout); ok {
		return layout.Sections(m, plan)
	}
	return []Section{{Items: plan.Definitions}}
}

// imports returns the model's imports for multi-file output, minus types the
// backend resolves through its rename table. Type lists are sorted.
func (g *Generator) imports(m *model.Model) map[string][]string {
	if !m.MultiFile || len(m.Imports) == 0 {
		return nil
	}
	ignored := make(map[string]bool)
	for _, t := range g.lang.IgnoredReferenceTypes() {
		ignored[t] = true
	}
	out := make(map[string][]string)
	for module, types := range m.Imports {
		var kept []string
		for _, t := range types {
			if !ignored[t] {
				kept = append(kept, t)
			}
		}
		if len(kept) > 0 {
			sort.Strings(kept)
			out[module] = kept
		}
	}
	return out
}

// sink buffers each emission and flushes it only on success.
type sink struct {
	w   io.Writer
	buf bytes.Buffer
	n   int
}

func (s *sink) emit(fn func(io.Writer) error) error {
	s.buf.Reset()
	if err := fn(&s.buf); err != nil {
		return err
	}
	return s.flush()
}

func (s *sink) write(text string) error {
	if text == "" {
		return nil
	}
	s.buf.Reset()
	s.buf.WriteString(text)
	return s.flush()
}

func (s *sink) flush() error {
	n, err := s.w.Write(s.buf.Bytes())
	s.n += n
	if err != nil {
		return errors.Wrap(err, "write output")
	}
	return nil
}

// SortedKeys returns the keys of an import map in order.
func SortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
