package cmd

import (
	"github.com/spf13/cobra"

	"github.com/user/pagesmith/internal/handlers"
	"github.com/user/pagesmith/internal/tui"
)

type exportOptions struct {
	outDir  string
	workers int
	stdout  bool
}

func newExportCmd() *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export [files...]",
		Short: "Export pages as self-contained HTML files",
		Long: `Validate page files and write each one as a single HTML document named
after its title into the output directory. Several files are exported
concurrently.

Exit codes:
  0: every page was exported
  3: the page failed validation
  10: some pages were exported, others failed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "Output directory (default from settings: dist)")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Concurrent exports (0 = CPU count)")
	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "Write a single document to stdout")
	return cmd
}

func init() {
	rootCmd.AddCommand(newExportCmd())
}

func runExport(cmd *cobra.Command, args []string, opts *exportOptions) error {
	cc, err := NewCommandContext(map[string]interface{}{
		"export.output_dir":  flagOverride(cmd, "out", opts.outDir),
		"export.max_workers": flagOverride(cmd, "workers", opts.workers),
	})
	if err != nil {
		return err
	}
	defer cc.Close()

	handler := handlers.NewExportHandler(handlers.ExportConfig{
		Files:      args,
		OutputDir:  cc.Settings.Export.OutputDir,
		MaxWorkers: cc.Settings.Export.GetMaxWorkers(),
		Stdout:     opts.stdout,
	}, cc.Base(cmd))

	if cc.ShowProgress && !opts.stdout {
		progress := tui.NewProgress("Exporting pages")
		progress.SetWriter(cmd.OutOrStdout())
		handler.SetProgressReporter(progress)
		progress.Start()
		defer func() {
			progress.Stop()
			progress.PrintSummary()
		}()
	}

	return handler.Handle(cmd.Context())
}
