package apiglot

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/xid"
)

// isoMillis matches the timestamps the API expects (JavaScript's toISOString).
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// Translator is the interface for translation backends.
type Translator interface {
	Translate(ctx context.Context, req TranslateRequest) (string, error)
}

// Cache is the interface for caching remote lookups.
type Cache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// Inspector lists the visible text of extracted page content.
type Inspector interface {
	Extract(content string) ([]TextNode, error)
}

// Reporter receives progress events from a Localizer.
type Reporter interface {
	// Entry is called for every directory entry of the pages directory.
	Entry(name string, isFile bool)
	// Translating is called before a request; the returned func is called with its outcome.
	Translating(path string, source, target Locale) func(err error)
	// Saved is called after a localized file has been written.
	Saved(path string)
	// Skipped is called when a locale of a page cannot be produced.
	Skipped(path, reason string)
}

// NopReporter discards all events.
type NopReporter struct{}

func (NopReporter) Entry(string, bool) {}

func (NopReporter) Translating(string, Locale, Locale) func(error) { return func(error) {} }

func (NopReporter) Saved(string) {}

func (NopReporter) Skipped(string, string) {}

// LastModifiedFunc returns the ISO-8601 last modification time of a page.
type LastModifiedFunc func(ctx context.Context, path string, info fs.FileInfo) string

// Plan describes what a Localizer run works on.
type Plan struct {
	PagesDir      string       // Directory holding the source pages
	Project       *ProjectInfo // Remote project, provides locale ids
	Locales       []string     // Locales the site is configured for
	DefaultLocale string       // Locale of the source pages, never translated
}

// Targets returns the locales pages are translated into.
func (p Plan) Targets() []string {
	var targets []string
	for _, code := range p.Locales {
		if !SameLocale(code, p.DefaultLocale) {
			targets = append(targets, code)
		}
	}
	return targets
}

// Localizer walks a pages directory and writes a translated copy of every
// page for every target locale, one request at a time.
type Localizer struct {
	translator   Translator
	pattern      RegionPattern
	pacer        *Pacer
	reporter     Reporter
	lastModified LastModifiedFunc
	batchID      func() string
}

// LocalizerOption is a functional option for configuring the Localizer.
type LocalizerOption func(*Localizer)

// WithPattern sets the regions kept out of translation.
func WithPattern(pattern RegionPattern) LocalizerOption {
	return func(l *Localizer) {
		l.pattern = pattern
	}
}

// WithPacer sets the delay inserted after every locale.
func WithPacer(pacer *Pacer) LocalizerOption {
	return func(l *Localizer) {
		l.pacer = pacer
	}
}

// WithReporter sets the progress reporter.
func WithReporter(reporter Reporter) LocalizerOption {
	return func(l *Localizer) {
		l.reporter = reporter
	}
}

// WithLastModified sets how page modification times are resolved.
func WithLastModified(fn LastModifiedFunc) LocalizerOption {
	return func(l *Localizer) {
		l.lastModified = fn
	}
}

// WithBatchID sets the generator of run identifiers.
func WithBatchID(fn func() string) LocalizerOption {
	return func(l *Localizer) {
		l.batchID = fn
	}
}

// NewLocalizer creates a Localizer sending pages to translator.
func NewLocalizer(translator Translator, opts ...LocalizerOption) *Localizer {
	l := &Localizer{
		translator:   translator,
		pattern:      TagPattern(DefaultExcludedTag),
		pacer:        NewPacer(DefaultRequestDelay),
		reporter:     NopReporter{},
		lastModified: FileModTime,
		batchID:      func() string { return xid.New().String() },
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Run localizes every page of plan.PagesDir. A failed translation stops the
// remaining locales of that page and is recorded in the summary; the run
// then moves on to the next page. Read and write errors end the run.
func (l *Localizer) Run(ctx context.Context, plan Plan) (*RunSummary, error) {
	if plan.Project == nil {
		return nil, errors.New("no project info to resolve locales against")
	}
	if len(plan.Locales) == 0 {
		return nil, ErrI18nNotConfigured
	}

	entries, err := os.ReadDir(plan.PagesDir)
	if err != nil {
		return nil, fmt.Errorf("listing pages: %w", err)
	}

	summary := &RunSummary{BatchID: l.batchID()}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		l.reporter.Entry(entry.Name(), entry.Type().IsRegular())
		if !isPage(entry) {
			continue
		}

		path := filepath.Join(plan.PagesDir, entry.Name())
		res, err := l.LocalizeFile(ctx, plan, summary.BatchID, path)
		summary.Files = append(summary.Files, res)
		summary.Written += len(res.Written)
		summary.Skipped = append(summary.Skipped, res.Skipped...)

		if err != nil {
			var terr *TranslationError
			if errors.As(err, &terr) && ctx.Err() == nil {
				summary.Failures = append(summary.Failures, err)
				continue
			}
			return summary, err
		}
	}

	return summary, nil
}

// LocalizeFile translates one page into every target locale of plan.
// The page is extracted once; each locale reuses the extraction.
func (l *Localizer) LocalizeFile(ctx context.Context, plan Plan, batchID, path string) (FileResult, error) {
	res := FileResult{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		return res, &ExtractError{Path: path, Cause: err}
	}

	extraction, err := ExtractFile(path, l.pattern)
	if err != nil {
		return res, err
	}
	res.Regions = len(extraction.Removed)

	source := plan.Project.SourceLanguage
	locales := plan.Project.Locales()
	name := filepath.Base(path)

	for _, code := range plan.Targets() {
		target, ok := FindLocale(locales, code)
		if !ok {
			res.Skipped = append(res.Skipped, code)
			l.reporter.Skipped(path, fmt.Sprintf("locale %q is not a language of the project", code))
			continue
		}

		dir, err := LocaleDir(target.Code)
		if err != nil {
			res.Skipped = append(res.Skipped, code)
			l.reporter.Skipped(path, err.Error())
			continue
		}
		outDir := filepath.Join(plan.PagesDir, dir)
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return res, fmt.Errorf("creating %s: %w", outDir, err)
		}

		req := TranslateRequest{
			BatchID: batchID,
			File: SourceFile{
				Name:         name,
				Size:         info.Size(),
				Created:      info.ModTime(),
				LastModified: l.lastModified(ctx, path, info),
				Content:      extraction.Content,
			},
			Source: source,
			Target: target,
		}

		done := l.reporter.Translating(path, source, target)
		translated, err := l.translator.Translate(ctx, req)
		done(err)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return res, ctxErr
			}
			return res, &TranslationError{
				Message: "translation failed",
				File:    path,
				Locale:  target.Code,
				Cause:   err,
			}
		}

		outPath := filepath.Join(outDir, name)
		if err := os.WriteFile(outPath, []byte(Reassemble(translated, extraction.Removed)), 0o644); err != nil {
			return res, fmt.Errorf("writing %s: %w", outPath, err)
		}
		res.Written = append(res.Written, outPath)
		l.reporter.Saved(outPath)

		if err := l.pacer.Wait(ctx); err != nil {
			return res, err
		}
	}

	return res, nil
}

// DryRun extracts every page of plan.PagesDir without sending anything.
func (l *Localizer) DryRun(ctx context.Context, plan Plan, inspector Inspector) ([]DryRunFile, error) {
	entries, err := os.ReadDir(plan.PagesDir)
	if err != nil {
		return nil, fmt.Errorf("listing pages: %w", err)
	}

	var files []DryRunFile
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return files, err
		}
		if !isPage(entry) {
			continue
		}

		path := filepath.Join(plan.PagesDir, entry.Name())
		extraction, err := ExtractFile(path, l.pattern)
		if err != nil {
			return files, err
		}

		file := DryRunFile{
			Path:    path,
			Regions: len(extraction.Removed),
			Targets: plan.Targets(),
		}
		if inspector != nil {
			nodes, err := inspector.Extract(extraction.Content)
			if err != nil {
				return files, fmt.Errorf("inspecting %s: %w", path, err)
			}
			file.Nodes = nodes
		}
		files = append(files, file)
	}

	return files, nil
}

// Pattern returns the regions kept out of translation.
func (l *Localizer) Pattern() RegionPattern {
	return l.pattern
}

// FileModTime is the default LastModifiedFunc: the filesystem modification time.
func FileModTime(_ context.Context, _ string, info fs.FileInfo) string {
	return Timestamp(info.ModTime())
}

// Timestamp formats t the way the API expects: UTC, millisecond precision.
func Timestamp(t time.Time) string {
	return t.UTC().Format(isoMillis)
}

func isPage(entry fs.DirEntry) bool {
	return entry.Type().IsRegular() && strings.HasSuffix(entry.Name(), PageExtension)
}
