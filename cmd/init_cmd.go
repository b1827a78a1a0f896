package cmd

import (
	"github.com/spf13/cobra"

	"github.com/user/pagesmith/internal/handlers"
)

type initOptions struct {
	force bool
}

func newInitCmd() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write the starter page",
		Long: `Write the starter page configuration to a file, as YAML when the name ends
in .yaml or .yml and as JSON otherwise. An existing file is kept unless
--force is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(nil)
			if err != nil {
				return err
			}
			defer cc.Close()

			handler := handlers.NewInitHandler(handlers.InitConfig{
				File:  firstArg(args),
				Force: opts.force,
			}, cc.Base(cmd))
			return handler.Handle(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite an existing file")
	return cmd
}

func init() {
	rootCmd.AddCommand(newInitCmd())
}
