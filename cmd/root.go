package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/user/pagesmith/internal/errors"
)

var (
	debugFlag      bool
	verboseFlag    bool
	projectDirFlag string
	localeFlag     string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "pagesmith",
	Short: "No-code page builder for architecture showcase pages",
	Long: `Build single-page architecture showcases from a JSON or YAML page file.

Pagesmith validates the page configuration, derives the navigation from its
sections, renders the page and exports it as one self-contained HTML file.
A local preview server reloads the page whenever the file changes.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with the error's exit code
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_ = HandleCommandError(err, nil, false)
		os.Exit(errors.ExitCodeOf(err).Int())
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug mode")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Show detailed log output instead of progress UI")
	rootCmd.PersistentFlags().StringVar(&projectDirFlag, "project-dir", ".", "Project directory holding .pagesmith/config.yaml")
	rootCmd.PersistentFlags().StringVar(&localeFlag, "locale", "", "Message locale (zh-CN, en)")
}
