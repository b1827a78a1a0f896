package cmd

import (
	"github.com/spf13/cobra"

	"github.com/user/pagesmith/internal/handlers"
)

type navOptions struct {
	output string
	write  bool
}

func newNavCmd() *cobra.Command {
	opts := &navOptions{}

	cmd := &cobra.Command{
		Use:   "nav [file]",
		Short: "Show the navigation derived from a page's sections",
		Long: `Derive the navigation items of a page from its sections: one item per
section shown in the nav, numbered and labelled in section order.

With --write the derived items replace nav.items in the page file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNav(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", handlers.OutputText, "Output format (text, json)")
	cmd.Flags().BoolVar(&opts.write, "write", false, "Store the derived items in the page file")
	return cmd
}

func init() {
	rootCmd.AddCommand(newNavCmd())
}

func runNav(cmd *cobra.Command, args []string, opts *navOptions) error {
	cc, err := NewCommandContext(nil)
	if err != nil {
		return err
	}
	defer cc.Close()

	handler := handlers.NewNavHandler(handlers.NavConfig{
		File:   firstArg(args),
		Output: opts.output,
		Write:  opts.write,
	}, cc.Base(cmd))
	return handler.Handle(cmd.Context())
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
