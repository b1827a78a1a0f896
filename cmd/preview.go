package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/user/pagesmith/internal/handlers"
)

type previewOptions struct {
	addr    string
	noWatch bool
}

func newPreviewCmd() *cobra.Command {
	opts := &previewOptions{}

	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Serve a live preview of a page",
		Long: `Serve the page on a local address and reload connected browsers whenever
the page file changes. An invalid edit keeps the last valid page on screen.

The server also accepts configuration over HTTP (PUT /api/config) and stops
gracefully on Ctrl+C.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "Listen address (default from settings: 127.0.0.1:4321)")
	cmd.Flags().BoolVar(&opts.noWatch, "no-watch", false, "Do not reload when the page file changes")
	return cmd
}

func init() {
	rootCmd.AddCommand(newPreviewCmd())
}

func runPreview(cmd *cobra.Command, args []string, opts *previewOptions) error {
	overrides := map[string]interface{}{
		"preview.addr": flagOverride(cmd, "addr", opts.addr),
	}
	if opts.noWatch {
		overrides["preview.watch"] = false
	}
	if file := firstArg(args); file != "" {
		overrides["page"] = file
	}

	cc, err := NewCommandContext(overrides)
	if err != nil {
		return err
	}
	defer cc.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	handler := handlers.NewPreviewHandler(handlers.PreviewConfig{
		File: cc.Settings.Page,
		Addr: cc.Settings.Preview.Addr,
	}, cc.Base(cmd))
	return handler.Handle(ctx)
}
