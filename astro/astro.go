// Package astro reads the i18n settings of an Astro project.
//
// astro.config files are JavaScript modules. Only the literal parts this
// tool needs are read: i18n.locales and i18n.defaultLocale, written as
// string literals or as {path: '...'} objects.
package astro

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ConfigFiles are the config file names Astro accepts, in lookup order.
var ConfigFiles = []string{"astro.config.mjs", "astro.config.js", "astro.config.ts", "astro.config.mts"}

// ErrNoConfig is returned when a directory has no Astro config file.
var ErrNoConfig = errors.New("no astro.config file found")

// I18n is the i18n block of an Astro config.
type I18n struct {
	Locales       []string
	DefaultLocale string
}

// Config is what this tool knows about an Astro config file.
type Config struct {
	Path string
	I18n *I18n // nil when i18n is not configured
}

// Load finds the Astro config in dir and parses its i18n block.
func Load(dir string) (*Config, error) {
	for _, name := range ConfigFiles {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}

		i18n, err := Parse(string(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return &Config{Path: path, I18n: i18n}, nil
	}
	return nil, fmt.Errorf("%w in %s", ErrNoConfig, dir)
}

// Parse reads the i18n block of an Astro config source. It returns nil,
// nil when the source has no i18n key.
func Parse(src string) (*I18n, error) {
	s := stripComments(src)

	at := findKey(s, "i18n", -1)
	if at < 0 {
		return nil, nil
	}
	open := skipSpace(s, at)
	if open >= len(s) || s[open] != '{' {
		return nil, errors.New("i18n is not an object literal")
	}
	end := matchBracket(s, open)
	if end < 0 {
		return nil, errors.New("unterminated i18n block")
	}
	body := s[open+1 : end]

	cfg := &I18n{}

	if at := findKey(body, "defaultLocale", 0); at >= 0 {
		v, _, ok := readString(body, skipSpace(body, at))
		if !ok {
			return nil, errors.New("i18n.defaultLocale is not a string literal")
		}
		cfg.DefaultLocale = v
	}

	if at := findKey(body, "locales", 0); at >= 0 {
		open := skipSpace(body, at)
		if open >= len(body) || body[open] != '[' {
			return nil, errors.New("i18n.locales is not an array literal")
		}
		end := matchBracket(body, open)
		if end < 0 {
			return nil, errors.New("unterminated i18n.locales")
		}
		locales, err := parseLocales(body[open+1 : end])
		if err != nil {
			return nil, err
		}
		cfg.Locales = locales
	}

	if len(cfg.Locales) == 0 {
		return nil, errors.New("i18n.locales is empty")
	}
	if cfg.DefaultLocale == "" {
		return nil, errors.New("i18n.defaultLocale is missing")
	}
	return cfg, nil
}

func parseLocales(list string) ([]string, error) {
	var locales []string
	for _, elem := range splitTopLevel(list) {
		switch elem[0] {
		case '\'', '"', '`':
			v, _, ok := readString(elem, 0)
			if !ok {
				return nil, fmt.Errorf("invalid locale %s", elem)
			}
			locales = append(locales, v)
		case '{':
			if !strings.HasSuffix(elem, "}") {
				return nil, fmt.Errorf("invalid locale %s", elem)
			}
			inner := elem[1 : len(elem)-1]
			at := findKey(inner, "path", 0)
			if at < 0 {
				return nil, fmt.Errorf("locale object without path: %s", elem)
			}
			v, _, ok := readString(inner, skipSpace(inner, at))
			if !ok {
				return nil, fmt.Errorf("locale path is not a string literal: %s", elem)
			}
			locales = append(locales, v)
		default:
			return nil, fmt.Errorf("unsupported locale entry %s", elem)
		}
	}
	return locales, nil
}

// ConfigTemplate renders the astro.config.mjs a project needs for the given locales.
func ConfigTemplate(defaultLocale string, locales []string) string {
	quoted := make([]string, len(locales))
	for i, l := range locales {
		quoted[i] = "'" + l + "'"
	}
	return fmt.Sprintf(`import { defineConfig } from 'astro/config';

export default defineConfig({
    i18n: {
        locales: [%s],
        defaultLocale: '%s',
    }
});
`, strings.Join(quoted, ", "), defaultLocale)
}
