package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/apiglot/apiglot"
	"github.com/spf13/cobra"
)

func (a *app) projectCommand() *cobra.Command {
	project := &cobra.Command{
		Use:   "project",
		Short: "Project related commands",
	}

	var refresh bool
	info := &cobra.Command{
		Use:   "info",
		Short: "Get information about the current project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			c, err := a.newClient()
			if err != nil {
				return err
			}
			if refresh {
				if err := c.ForgetProjectInfo(a.cfg.ProjectID, ""); err != nil {
					fmt.Fprintf(a.stderr, "%s %v\n", yellow("warning: could not clear cached project info:"), err)
				}
			}

			raw, err := c.ProjectInfoJSON(cmd.Context(), a.cfg.ProjectID, "")
			if err != nil {
				return fmt.Errorf("fetching project info: %w", err)
			}
			var pretty bytes.Buffer
			if err := json.Indent(&pretty, raw, "", "  "); err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, blue("Project Information:"))
			fmt.Fprintln(a.stdout, pretty.String())
			return nil
		},
	}
	info.Flags().BoolVar(&refresh, "refresh", false, "Ignore cached project info")

	languages := &cobra.Command{
		Use:   "languages",
		Short: "List the target languages selected for this project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			langs := a.cfg.TargetLanguages()
			if len(langs) == 0 {
				fmt.Fprintln(a.stdout, yellow("No target languages defined in the config."))
				return nil
			}
			fmt.Fprintln(a.stdout, blue("Target languages for this project:"))
			for _, code := range langs {
				fmt.Fprintln(a.stdout, green(fmt.Sprintf("- %s (%s)", code, apiglot.DisplayName(code))))
			}
			return nil
		},
	}

	project.AddCommand(info, languages)
	return project
}
