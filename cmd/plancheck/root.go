package main

import (
	"github.com/spf13/cobra"

	"github.com/plancheck/plancheck/internal/suite"
)

type rootFlags struct {
	verbose bool
}

func newRootCmd(registry *suite.Registry) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "plancheck",
		Short:         "Plancheck validates rendered infrastructure plans against declared expectations",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(newRunCmd(flags, registry))
	cmd.AddCommand(newListCmd(registry))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
