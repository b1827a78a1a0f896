package cmd

import (
	"github.com/spf13/cobra"

	"github.com/user/pagesmith/internal/handlers"
)

type settingsOptions struct {
	save string
}

func newSettingsCmd() *cobra.Command {
	opts := &settingsOptions{}

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Print the effective application settings",
		Long: `Print the merged application settings as YAML.

Sources, later ones winning:
  defaults, PAGESMITH_* environment, ~/.pagesmith.yaml,
  <project>/.pagesmith/config.yaml, command-line flags

With --save the effective settings are written to the global or the
project settings file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(nil)
			if err != nil {
				return err
			}
			defer cc.Close()

			handler := handlers.NewSettingsHandler(handlers.SettingsConfig{
				ProjectDir: cc.ProjectDir,
				Save:       opts.save,
			}, cc.Base(cmd))
			return handler.Handle(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&opts.save, "save", "", "Write the settings to the global or project file")
	return cmd
}

func init() {
	rootCmd.AddCommand(newSettingsCmd())
}
