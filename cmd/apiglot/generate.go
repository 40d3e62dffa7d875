package main

import (
	"fmt"

	"github.com/apiglot/apiglot/tsgen"
	"github.com/spf13/cobra"
)

func (a *app) generateCommand() *cobra.Command {
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Generate code from project resources",
	}

	var outDir string
	tsTypes := &cobra.Command{
		Use:   "ts-types",
		Short: "Generate TypeScript types for translation keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			c, err := a.newClient()
			if err != nil {
				return err
			}

			info, err := a.cfg.Snapshot()
			if err != nil {
				return err
			}
			if info == nil {
				if info, err = c.ProjectInfo(cmd.Context(), a.cfg.ProjectID, ""); err != nil {
					return fmt.Errorf("fetching project info: %w", err)
				}
			}

			fmt.Fprintln(a.stdout, "Generating TypeScript types for project:", info.DisplayName())

			var resources []tsgen.Resource
			for _, ns := range info.Namespaces {
				fmt.Fprintf(a.stdout, "Processing namespace: %s\n", ns)
				data, err := c.NamespaceResources(cmd.Context(), a.cfg.ProjectID, info.SourceLanguage.Code, ns)
				if err != nil {
					if cmd.Context().Err() != nil {
						return cmd.Context().Err()
					}
					fmt.Fprintf(a.stderr, "%s %v\n", red("Error fetching translations:"), err)
					continue
				}
				resources = append(resources, tsgen.Resource{Name: ns, Resources: data})
			}

			out, err := tsgen.Generate(a.path(outDir), resources)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "TypeScript types written to %s\n", out)
			return nil
		},
	}
	tsTypes.Flags().StringVarP(&outDir, "path", "p", "./src/@types/", "Path to the generated types files")

	generate.AddCommand(tsTypes)
	return generate
}
