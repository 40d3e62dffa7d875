package apiglot

import (
	"errors"

	"github.com/tidwall/gjson"
)

// ProjectInfo is the remote description of a project.
type ProjectInfo struct {
	ID              string
	Name            string
	SourceLanguage  Locale
	TargetLanguages []Locale
	Namespaces      []string
}

// ParseProjectInfo decodes a project info document. The API has served it
// with both snake_case and camelCase keys, so both are accepted.
func ParseProjectInfo(data []byte) (*ProjectInfo, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("project info is not valid JSON")
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, errors.New("project info is not a JSON object")
	}

	info := &ProjectInfo{
		ID:             first(doc, "id", "projectId", "project_id").String(),
		Name:           first(doc, "project_name", "projectName", "name").String(),
		SourceLanguage: parseLocale(first(doc, "source_language", "sourceLanguage")),
	}

	for _, l := range first(doc, "target_languages", "targetLanguages").Array() {
		info.TargetLanguages = append(info.TargetLanguages, parseLocale(l))
	}
	for _, ns := range doc.Get("namespaces").Array() {
		info.Namespaces = append(info.Namespaces, ns.String())
	}

	return info, nil
}

// Locales returns the source language followed by the target languages.
func (p *ProjectInfo) Locales() []Locale {
	locales := make([]Locale, 0, len(p.TargetLanguages)+1)
	locales = append(locales, p.SourceLanguage)
	return append(locales, p.TargetLanguages...)
}

// DisplayName returns the project name or a placeholder.
func (p *ProjectInfo) DisplayName() string {
	if p.Name == "" {
		return "Unnamed Project"
	}
	return p.Name
}

func parseLocale(r gjson.Result) Locale {
	if r.Type == gjson.String {
		return Locale{Code: r.String()}
	}
	return Locale{
		ID:   r.Get("id").String(),
		Code: r.Get("code").String(),
		Name: r.Get("name").String(),
	}
}

func first(doc gjson.Result, paths ...string) gjson.Result {
	for _, p := range paths {
		if r := doc.Get(p); r.Exists() {
			return r
		}
	}
	return gjson.Result{}
}
