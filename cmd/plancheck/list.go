package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/plancheck/plancheck/internal/suite"
)

type listOptions struct {
	jsonOutput bool
}

func newListCmd(registry *suite.Registry) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered test modules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.jsonOutput {
				return renderListJSON(cmd, registry)
			}
			return renderListTable(cmd, registry)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func renderListTable(cmd *cobra.Command, registry *suite.Registry) error {
	if registry.Len() == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No test modules registered.")
		return nil
	}

	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "MODULE\tCASES\tDESCRIPTION")

	for _, mod := range registry.All() {
		fmt.Fprintf(writer, "%s\t%d\t%s\n", mod.Name, len(mod.Cases), mod.Description)
	}

	return writer.Flush()
}

type listJSONModule struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	CaseCount   int      `json:"case_count"`
	Cases       []string `json:"cases"`
}

type listJSONPayload struct {
	Count   int              `json:"count"`
	Modules []listJSONModule `json:"modules"`
}

func renderListJSON(cmd *cobra.Command, registry *suite.Registry) error {
	modules := registry.All()
	payload := listJSONPayload{
		Count:   len(modules),
		Modules: make([]listJSONModule, len(modules)),
	}

	for i, mod := range modules {
		cases := make([]string, len(mod.Cases))
		for j, c := range mod.Cases {
			cases[j] = c.Name
		}
		payload.Modules[i] = listJSONModule{
			Name:        mod.Name,
			Description: mod.Description,
			CaseCount:   len(mod.Cases),
			Cases:       cases,
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
