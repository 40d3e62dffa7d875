package apiglot

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Label formats a locale for progress output, e.g. "pt-BR (Portuguese - Brazil)".
// Only the first pair of parentheses in the name is rewritten.
func (l Locale) Label() string {
	name := l.Name
	if name == "" {
		name = DisplayName(l.Code)
	}
	name = strings.Replace(name, "(", "- ", 1)
	name = strings.Replace(name, ")", "", 1)
	return fmt.Sprintf("%s (%s)", l.Code, name)
}

// LocaleDir returns the directory name localized pages are written to.
// Codes that would not name a single directory inside the pages directory
// are rejected.
func LocaleDir(code string) (string, error) {
	dir := strings.ToLower(strings.TrimSpace(code))
	if dir == "." || strings.ContainsAny(dir, `/\:`) || !filepath.IsLocal(dir) {
		return "", fmt.Errorf("locale code %q is not a valid directory name", code)
	}
	return dir, nil
}

// CanonicalCode converts a locale code to its canonical BCP 47 form
// ("pt_br" → "pt-BR"). Codes the parser rejects are lowercased with
// hyphens so they still compare consistently.
func CanonicalCode(code string) string {
	raw := strings.ReplaceAll(strings.TrimSpace(code), "_", "-")
	tag, err := language.Parse(raw)
	if err != nil {
		return strings.ToLower(raw)
	}
	return tag.String()
}

// SameLocale reports whether two codes name the same locale.
func SameLocale(a, b string) bool {
	return CanonicalCode(a) == CanonicalCode(b)
}

// DisplayName returns the English name of a locale code, or the code itself
// when it cannot be parsed.
func DisplayName(code string) string {
	tag, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return code
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return code
}

// FindLocale looks up code among locales, ignoring case and separator style.
func FindLocale(locales []Locale, code string) (Locale, bool) {
	want := CanonicalCode(code)
	for _, l := range locales {
		if CanonicalCode(l.Code) == want {
			return l, true
		}
	}
	return Locale{}, false
}
