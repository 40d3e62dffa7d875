package apiglot_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/apiglot/apiglot"
	"github.com/apiglot/apiglot/cache"
	"github.com/apiglot/apiglot/client"
	"github.com/apiglot/apiglot/processor"
	"github.com/apiglot/apiglot/provider"
)

// Integration tests using all real components

const integrationProject = `{
	"id": "p1",
	"project_name": "Docs",
	"source_language": {"id": 1, "code": "en", "name": "English"},
	"target_languages": [
		{"id": 2, "code": "es", "name": "Spanish"},
		{"id": 3, "code": "pt-BR", "name": "Portuguese (Brazil)"}
	]
}`

func writePages(t *testing.T, pages map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range pages {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestIntegration_APIPipeline(t *testing.T) {
	var infoHits, translateHits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/projects/p1/info":
			infoHits.Add(1)
			w.Write([]byte(integrationProject))
		case "/projects/p1/translate":
			translateHits.Add(1)
			var payload struct {
				SourceFile struct {
					Content string `json:"content"`
				} `json:"source_file"`
				Target json.Number `json:"target_language_id"`
			}
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				t.Errorf("decoding payload: %v", err)
			}
			out := "[" + payload.Target.String() + "] " + payload.SourceFile.Content
			json.NewEncoder(w).Encode(map[string]any{"result": map[string]string{"llm_output": out}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c, err := client.New(client.Options{Host: srv.URL, APIKey: "key"}, client.WithCache(cache.NewInMemoryCache(60)))
	if err != nil {
		t.Fatalf("client.New failed: %v", err)
	}

	ctx := context.Background()
	project, err := c.ProjectInfo(ctx, "p1", "")
	if err != nil {
		t.Fatalf("ProjectInfo failed: %v", err)
	}
	if _, err := c.ProjectInfo(ctx, "p1", ""); err != nil {
		t.Fatalf("cached ProjectInfo failed: %v", err)
	}
	if infoHits.Load() != 1 {
		t.Errorf("expected project info to be fetched once, got %d", infoHits.Load())
	}

	dir := writePages(t, map[string]string{
		"index.astro": "<h1>Home</h1>\n<style>h1{}</style>",
		"about.astro": "<p>About</p>",
		"notes.md":    "not a page",
	})

	localizer := apiglot.NewLocalizer(provider.NewAPIProvider(c, "p1"), apiglot.WithPacer(apiglot.NewPacer(0)))
	summary, err := localizer.Run(ctx, apiglot.Plan{
		PagesDir:      dir,
		Project:       project,
		Locales:       []string{"en", "es", "pt-br"},
		DefaultLocale: "en",
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.Written != 4 || summary.Failed() {
		t.Errorf("unexpected summary: %+v", summary)
	}
	if translateHits.Load() != 4 {
		t.Errorf("expected 4 translate calls, got %d", translateHits.Load())
	}

	got, err := os.ReadFile(filepath.Join(dir, "pt-br", "index.astro"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "[3] <h1>Home</h1>\n\n\n<style>h1{}</style>" {
		t.Errorf("pt-br page = %q", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "es", "notes.md")); !os.IsNotExist(err) {
		t.Error("non-page files should not be translated")
	}
}

func TestIntegration_FailureMovesToNextPage(t *testing.T) {
	project, err := apiglot.ParseProjectInfo([]byte(integrationProject))
	if err != nil {
		t.Fatal(err)
	}

	p := provider.NewMockProvider()
	p.Errors["es"] = errors.New("quota exceeded")

	dir := writePages(t, map[string]string{
		"a.astro": "<p>A</p>",
		"b.astro": "<p>B</p>",
	})

	localizer := apiglot.NewLocalizer(p, apiglot.WithPacer(apiglot.NewPacer(0)))
	summary, err := localizer.Run(context.Background(), apiglot.Plan{
		PagesDir:      dir,
		Project:       project,
		Locales:       []string{"es", "pt-BR"},
		DefaultLocale: "en",
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// es fails first on both pages, so pt-BR is never requested.
	if p.CallCount() != 2 {
		t.Errorf("expected 2 calls, got %d", p.CallCount())
	}
	if len(summary.Failures) != 2 || summary.Written != 0 {
		t.Errorf("unexpected summary: %+v", summary)
	}

	var terr *apiglot.TranslationError
	if !errors.As(summary.Failures[0], &terr) || terr.Locale != "es" {
		t.Errorf("expected TranslationError for es, got %v", summary.Failures[0])
	}
}

func TestIntegration_DryRunWithHTMLProcessor(t *testing.T) {
	dir := writePages(t, map[string]string{
		"index.astro": "---\nconst title = 'x';\n---\n<h1>{title}</h1>\n<p class=\"lead\">Welcome</p>\n<p data-no-translate>Acme</p>\n<style>p { color: red; }</style>",
	})

	localizer := apiglot.NewLocalizer(nil)
	files, err := localizer.DryRun(context.Background(), apiglot.Plan{
		PagesDir:      dir,
		Locales:       []string{"en", "fr"},
		DefaultLocale: "en",
	}, processor.NewHTMLProcessor())
	if err != nil {
		t.Fatalf("DryRun failed: %v", err)
	}

	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	f := files[0]
	if f.Regions != 1 {
		t.Errorf("expected 1 excluded region, got %d", f.Regions)
	}
	if len(f.Nodes) != 1 || f.Nodes[0].Text != "Welcome" {
		t.Errorf("unexpected nodes: %+v", f.Nodes)
	}
	for _, n := range f.Nodes {
		if strings.Contains(n.Text, "color") {
			t.Error("excluded regions should not be inspected")
		}
	}
}

func TestIntegration_APIErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"slow down"}`))
	}))
	defer srv.Close()

	c, err := client.New(client.Options{Host: srv.URL, APIKey: "key"})
	if err != nil {
		t.Fatal(err)
	}
	project, _ := apiglot.ParseProjectInfo([]byte(integrationProject))

	dir := writePages(t, map[string]string{"index.astro": "<p>Hi</p>"})
	localizer := apiglot.NewLocalizer(provider.NewAPIProvider(c, "p1"), apiglot.WithPacer(apiglot.NewPacer(0)))
	summary, err := localizer.Run(context.Background(), apiglot.Plan{
		PagesDir:      dir,
		Project:       project,
		Locales:       []string{"es"},
		DefaultLocale: "en",
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !summary.Failed() {
		t.Fatal("expected a failure")
	}

	var apiErr *apiglot.APIError
	if !errors.As(summary.Failures[0], &apiErr) {
		t.Fatalf("expected *APIError in chain, got %v", summary.Failures[0])
	}
	if apiErr.Status != http.StatusTooManyRequests || apiErr.Message != "slow down" {
		t.Errorf("unexpected API error: %+v", apiErr)
	}
}
