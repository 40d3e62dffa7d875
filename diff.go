package apiglot

import "github.com/samber/lo"

// LocaleDiff compares the locales a site is configured for with the
// languages of the remote project.
type LocaleDiff struct {
	// Shared contains site locales the project knows, in site order.
	Shared []Locale

	// Unknown contains site locales the project does not translate to.
	Unknown []string

	// Missing contains project target languages the site does not route.
	Missing []Locale
}

// HasChanges returns true if the two sides disagree.
func (d *LocaleDiff) HasChanges() bool {
	return len(d.Unknown) > 0 || len(d.Missing) > 0
}

// DiffLocales matches site locale codes against the project's languages.
// Codes are compared in canonical BCP 47 form; the default locale is
// expected to be the project's source language and is never reported.
func DiffLocales(project *ProjectInfo, siteLocales []string, defaultLocale string) *LocaleDiff {
	result := &LocaleDiff{}
	known := project.Locales()

	for _, code := range lo.Uniq(siteLocales) {
		if SameLocale(code, defaultLocale) {
			continue
		}
		if l, ok := FindLocale(known, code); ok {
			result.Shared = append(result.Shared, l)
			continue
		}
		result.Unknown = append(result.Unknown, code)
	}

	result.Missing = lo.Filter(project.TargetLanguages, func(l Locale, _ int) bool {
		return !lo.ContainsBy(siteLocales, func(code string) bool {
			return SameLocale(code, l.Code)
		})
	})

	return result
}
