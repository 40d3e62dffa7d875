package apiglot

import "time"

// DefaultExcludedTag is the element kept out of translation when nothing else is configured.
const DefaultExcludedTag = "style"

// PageExtension is the extension of the page files the localizer picks up.
const PageExtension = ".astro"

// ExtractionResult is a page split into its translatable part and the
// regions that were cut out of it.
type ExtractionResult struct {
	Content string   // Document with every excluded region deleted
	Removed []string // Exact text of each region, in document order
}

// Locale is a language known to the remote project.
type Locale struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// SourceFile describes the page sent for translation.
type SourceFile struct {
	Name         string    // Base name of the page
	Size         int64     // Size in bytes of the page on disk
	Created      time.Time // Best available creation time (modification time on most platforms)
	LastModified string    // ISO-8601 timestamp from git or the filesystem
	Content      string    // Extracted content, excluded regions removed
}

// TranslateRequest is one (file, target locale) unit of work.
type TranslateRequest struct {
	BatchID string
	File    SourceFile
	Source  Locale
	Target  Locale
}

// TextNode is a piece of visible text found in a page, used for dry runs.
type TextNode struct {
	Text    string // Trimmed text content
	Hash    string // SHA-256 of Text
	Context string // Where the text sits (parent tag)
}

// FileResult is the outcome of localizing one page.
type FileResult struct {
	Path    string   // Source page
	Written []string // Localized files written
	Skipped []string // Locales that could not be resolved
	Regions int      // Number of excluded regions appended back
}

// DryRunFile is what a dry run found in one page.
type DryRunFile struct {
	Path    string
	Regions int        // Excluded regions that would be appended back
	Nodes   []TextNode // Visible text that would be translated
	Targets []string   // Locale codes the page would be written for
}

// RunSummary collects the outcome of a Localizer run.
type RunSummary struct {
	BatchID  string
	Files    []FileResult
	Written  int
	Skipped  []string
	Failures []error
}

// Failed reports whether any translation failed during the run.
func (s *RunSummary) Failed() bool {
	return len(s.Failures) > 0
}
