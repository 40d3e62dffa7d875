package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/apiglot/apiglot"
	"github.com/apiglot/apiglot/astro"
	"github.com/apiglot/apiglot/client"
	"github.com/apiglot/apiglot/gitstat"
	"github.com/apiglot/apiglot/processor"
	"github.com/apiglot/apiglot/provider"
	"github.com/spf13/cobra"
)

type translateOptions struct {
	dryRun   bool
	jsonOut  bool
	tag      string
	delay    time.Duration
	pagesDir string
}

func (a *app) translateCommand() *cobra.Command {
	var opts translateOptions

	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Translate the pages of an Astro project into every configured locale",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("tag") {
				opts.tag = a.cfg.ExcludedTag
			}
			if !cmd.Flags().Changed("delay") {
				opts.delay = a.cfg.RequestDelay()
			}
			if !cmd.Flags().Changed("pages-dir") {
				opts.pagesDir = a.cfg.PagesDir
			}
			return a.translate(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Show what would be translated without calling the API")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "Print the dry run as JSON")
	cmd.Flags().StringVar(&opts.tag, "tag", apiglot.DefaultExcludedTag, "Element kept out of translation")
	cmd.Flags().DurationVar(&opts.delay, "delay", apiglot.DefaultRequestDelay, "Pause between two translation requests")
	cmd.Flags().StringVar(&opts.pagesDir, "pages-dir", "./src/pages", "Directory holding the pages")
	return cmd
}

func (a *app) translate(cmd *cobra.Command, opts translateOptions) error {
	ctx := cmd.Context()

	site, err := astro.Load(a.dir)
	if err != nil {
		return err
	}

	if opts.dryRun {
		if site.I18n == nil {
			return apiglot.ErrI18nNotConfigured
		}
		return a.dryRun(cmd, opts, site.I18n)
	}

	if err := a.cfg.Validate(); err != nil {
		return err
	}
	c, err := a.newClient()
	if err != nil {
		return err
	}

	fmt.Fprintln(a.stdout, "Loading project info...")
	project, err := c.ProjectInfo(ctx, a.cfg.ProjectID, "")
	if err != nil {
		return fmt.Errorf("fetching project info: %w", err)
	}

	if site.I18n == nil {
		a.suggestAstroConfig(project)
		return reportedError{apiglot.ErrI18nNotConfigured}
	}

	diff := apiglot.DiffLocales(project, site.I18n.Locales, site.I18n.DefaultLocale)
	for _, code := range diff.Unknown {
		fmt.Fprintf(a.stderr, "%s locale %q is not a language of project %s\n", yellow("warning:"), code, project.DisplayName())
	}
	for _, l := range diff.Missing {
		fmt.Fprintf(a.stderr, "%s %s is not listed in %s\n", yellow("note:"), l.Label(), site.Path)
	}

	translator, err := a.newTranslator(c)
	if err != nil {
		return err
	}

	localizer := apiglot.NewLocalizer(translator,
		apiglot.WithPattern(apiglot.TagPattern(opts.tag)),
		apiglot.WithPacer(apiglot.NewPacer(opts.delay)),
		apiglot.WithReporter(newConsole(a.stdout, a.stderr)),
		apiglot.WithLastModified(gitstat.New(a.dir).LastModifiedFunc()),
	)

	summary, err := localizer.Run(ctx, apiglot.Plan{
		PagesDir:      a.path(opts.pagesDir),
		Project:       project,
		Locales:       site.I18n.Locales,
		DefaultLocale: site.I18n.DefaultLocale,
	})
	if summary != nil {
		fmt.Fprintf(a.stdout, "Batch %s: %d files written\n", summary.BatchID, summary.Written)
	}
	if err != nil {
		return err
	}

	if summary.Failed() {
		for _, f := range summary.Failures {
			fmt.Fprintf(a.stderr, "%s %v\n", red("failed:"), f)
		}
		return reportedError{fmt.Errorf("%d translations failed", len(summary.Failures))}
	}
	return nil
}

func (a *app) newTranslator(c *client.Client) (apiglot.Translator, error) {
	switch a.cfg.Provider {
	case provider.NameOpenAI:
		return provider.NewOpenAIProvider(provider.OpenAIConfig{
			APIKey:  a.cfg.OpenAI.APIKey,
			Model:   a.cfg.OpenAI.Model,
			BaseURL: a.cfg.OpenAI.BaseURL,
		}), nil
	case provider.NameAPI, "":
		return provider.NewAPIProvider(c, a.cfg.ProjectID), nil
	default:
		return nil, &apiglot.ConfigError{Field: "provider", Message: fmt.Sprintf("unknown provider %q", a.cfg.Provider)}
	}
}

func (a *app) suggestAstroConfig(project *apiglot.ProjectInfo) {
	fmt.Fprintln(a.stdout, alert("Your Astro project does not seem to have i18n configured. Please set up internationalization before running translations."))
	fmt.Fprintln(a.stdout, "According to your Apiglot project configuration, this is what your astro.config.mjs file should look like:")

	codes := make([]string, 0, len(project.TargetLanguages)+1)
	for _, l := range project.Locales() {
		codes = append(codes, l.Code)
	}
	fmt.Fprintln(a.stdout, astro.ConfigTemplate(project.SourceLanguage.Code, codes))
}

func (a *app) dryRun(cmd *cobra.Command, opts translateOptions, i18n *astro.I18n) error {
	localizer := apiglot.NewLocalizer(nil, apiglot.WithPattern(apiglot.TagPattern(opts.tag)))

	files, err := localizer.DryRun(cmd.Context(), apiglot.Plan{
		PagesDir:      a.path(opts.pagesDir),
		Locales:       i18n.Locales,
		DefaultLocale: i18n.DefaultLocale,
	}, processor.NewHTMLProcessor())
	if err != nil {
		return err
	}

	if opts.jsonOut {
		type fileOutput struct {
			Path    string   `json:"path"`
			Regions int      `json:"excluded_regions"`
			Targets []string `json:"targets"`
			Texts   []string `json:"texts"`
		}
		out := make([]fileOutput, 0, len(files))
		for _, f := range files {
			texts := make([]string, len(f.Nodes))
			for i, n := range f.Nodes {
				texts[i] = n.Text
			}
			out = append(out, fileOutput{Path: f.Path, Regions: f.Regions, Targets: f.Targets, Texts: texts})
		}
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if len(files) == 0 {
		fmt.Fprintln(a.stdout, yellow("No pages found."))
		return nil
	}
	for _, f := range files {
		fmt.Fprintf(a.stdout, "Dry run: %s -> %s\n", f.Path, strings.Join(f.Targets, ", "))
		fmt.Fprintf(a.stdout, "Excluded <%s> regions: %d\n", localizer.Pattern().Tag, f.Regions)
		fmt.Fprintf(a.stdout, "Found %d translatable text nodes:\n\n", len(f.Nodes))
		for i, node := range f.Nodes {
			fmt.Fprintf(a.stdout, "%3d. %q\n", i+1, truncate(node.Text, 60))
			if node.Context != "" {
				fmt.Fprintf(a.stdout, "     Context: %s\n", node.Context)
			}
		}
		fmt.Fprintln(a.stdout)
	}
	return nil
}

// truncate shortens s to n runes, ending with "..." when cut.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
