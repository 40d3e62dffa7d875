package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apiglot/apiglot"
	"github.com/apiglot/apiglot/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func (a *app) initCommand() *cobra.Command {
	var projectID, apiKey string

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Creates a local configuration file for an Apiglot project",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoConfigNotice: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := bufio.NewReader(a.stdin)

			var err error
			if projectID == "" {
				if projectID, err = a.prompt(in, "Enter your Apiglot Project ID: ", false); err != nil {
					return err
				}
			}
			if apiKey == "" {
				if apiKey, err = a.prompt(in, "Enter your Apiglot API Key: ", true); err != nil {
					return err
				}
			}
			if projectID == "" || apiKey == "" {
				return &apiglot.ConfigError{Field: "init", Message: "project id and API key are required"}
			}

			a.cfg.ProjectID = projectID
			a.cfg.APIKey = apiKey

			c, err := a.newClient()
			if err != nil {
				return err
			}
			raw, err := c.ProjectInfoJSON(cmd.Context(), projectID, apiKey)
			if err != nil {
				return fmt.Errorf("fetching project info: %w", err)
			}
			info, err := apiglot.ParseProjectInfo(raw)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "Fetched project info: %s (%d target languages)\n", info.DisplayName(), len(info.TargetLanguages))

			a.cfg.ProjectInfo = raw

			if _, err := a.cfg.Write(a.dir); err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, green(fmt.Sprintf("Configuration file %q created successfully.", config.FileName)))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project-id", "", "Apiglot project ID (prompted when empty)")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "Apiglot API key (prompted when empty)")
	return cmd
}

// prompt reads one line from stdin. Secrets are not echoed when stdin is a terminal.
func (a *app) prompt(in *bufio.Reader, label string, secret bool) (string, error) {
	fmt.Fprint(a.stdout, label)

	if f, ok := a.stdin.(*os.File); ok && secret && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(a.stdout)
		if err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
