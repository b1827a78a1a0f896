package cmd

import (
	"github.com/spf13/cobra"

	"github.com/user/pagesmith/internal/handlers"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the page configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(nil)
			if err != nil {
				return err
			}
			defer cc.Close()

			return handlers.NewSchemaHandler(cc.Base(cmd)).Handle(cmd.Context())
		},
	}
}

func init() {
	rootCmd.AddCommand(newSchemaCmd())
}
