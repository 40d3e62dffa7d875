package main

import (
	"encoding/json"
	"fmt"

	"github.com/apiglot/apiglot"
	"github.com/spf13/cobra"
)

func (a *app) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Get information about the CLI tool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(a.stdout, "%s %s\n", green(apiglot.Name), version)
			fmt.Fprintln(a.stdout, apiglot.Description)
			fmt.Fprintf(a.stdout, "%s %s\n", blue("Repository:"), apiglot.Repository)
			fmt.Fprintf(a.stdout, "%s %s\n", blue("User-Agent:"), apiglot.UserAgent())

			source := a.cfg.Path
			if !a.cfg.Found {
				source += " (not found, defaults)"
			}
			fmt.Fprintf(a.stdout, "%s %s\n", blue("Config:"), source)

			data, err := json.MarshalIndent(a.cfg.Redacted(), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, "Loaded config:")
			fmt.Fprintln(a.stdout, string(data))
			return nil
		},
	}
}
