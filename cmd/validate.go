package cmd

import (
	"github.com/spf13/cobra"

	"github.com/user/pagesmith/internal/handlers"
)

type validateOptions struct {
	output string
}

func newValidateCmd() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate [files...]",
		Short: "Validate page files",
		Long: `Validate one or more JSON or YAML page files against the page schema.

Every issue is reported with its localized field path. Without arguments the
page file from the settings is validated.

Exit codes:
  0: every file is valid
  3: at least one file failed validation`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", handlers.OutputText, "Output format (text, json)")
	return cmd
}

func init() {
	rootCmd.AddCommand(newValidateCmd())
}

func runValidate(cmd *cobra.Command, args []string, opts *validateOptions) error {
	cc, err := NewCommandContext(nil)
	if err != nil {
		return err
	}
	defer cc.Close()

	handler := handlers.NewValidateHandler(handlers.ValidateConfig{
		Files:  args,
		Output: opts.output,
	}, cc.Base(cmd))
	return handler.Handle(cmd.Context())
}
