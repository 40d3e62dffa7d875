package apiglot

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseProjectInfo_SnakeCase(t *testing.T) {
	data := []byte(`{
		"id": 42,
		"project_name": "Docs",
		"source_language": {"id": 1, "code": "en", "name": "English"},
		"target_languages": [
			{"id": 2, "code": "es", "name": "Spanish"},
			{"id": 3, "code": "pt-BR", "name": "Portuguese (Brazil)"}
		],
		"namespaces": ["common", "home"]
	}`)

	info, err := ParseProjectInfo(data)
	if err != nil {
		t.Fatalf("ParseProjectInfo failed: %v", err)
	}

	want := &ProjectInfo{
		ID:             "42",
		Name:           "Docs",
		SourceLanguage: Locale{ID: "1", Code: "en", Name: "English"},
		TargetLanguages: []Locale{
			{ID: "2", Code: "es", Name: "Spanish"},
			{ID: "3", Code: "pt-BR", Name: "Portuguese (Brazil)"},
		},
		Namespaces: []string{"common", "home"},
	}
	if diff := cmp.Diff(want, info); diff != "" {
		t.Errorf("ProjectInfo mismatch (-want +got):\n%s", diff)
	}
}

func TestParseProjectInfo_CamelCase(t *testing.T) {
	data := []byte(`{
		"projectName": "Shop",
		"sourceLanguage": {"id": "a", "code": "de", "name": "German"},
		"targetLanguages": [{"id": "b", "code": "fr", "name": "French"}]
	}`)

	info, err := ParseProjectInfo(data)
	if err != nil {
		t.Fatalf("ParseProjectInfo failed: %v", err)
	}

	if info.Name != "Shop" {
		t.Errorf("Name = %q, want Shop", info.Name)
	}
	if info.SourceLanguage.Code != "de" {
		t.Errorf("source code = %q, want de", info.SourceLanguage.Code)
	}
	if len(info.TargetLanguages) != 1 || info.TargetLanguages[0].ID != "b" {
		t.Errorf("unexpected targets: %+v", info.TargetLanguages)
	}
	if info.Namespaces != nil {
		t.Errorf("expected no namespaces, got %v", info.Namespaces)
	}
}

func TestParseProjectInfo_Invalid(t *testing.T) {
	for _, data := range []string{``, `not json`, `[1,2]`} {
		if _, err := ParseProjectInfo([]byte(data)); err == nil {
			t.Errorf("expected error for %q", data)
		}
	}
}

func TestProjectInfo_Locales(t *testing.T) {
	info := &ProjectInfo{
		SourceLanguage:  Locale{Code: "en"},
		TargetLanguages: []Locale{{Code: "es"}, {Code: "de"}},
	}

	var codes []string
	for _, l := range info.Locales() {
		codes = append(codes, l.Code)
	}

	if diff := cmp.Diff([]string{"en", "es", "de"}, codes); diff != "" {
		t.Errorf("Locales mismatch (-want +got):\n%s", diff)
	}
}

func TestProjectInfo_DisplayName(t *testing.T) {
	if got := (&ProjectInfo{}).DisplayName(); got != "Unnamed Project" {
		t.Errorf("DisplayName() = %q", got)
	}
	if got := (&ProjectInfo{Name: "Docs"}).DisplayName(); got != "Docs" {
		t.Errorf("DisplayName() = %q", got)
	}
}
