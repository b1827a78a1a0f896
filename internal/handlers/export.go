package handlers

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/user/pagesmith/internal/errors"
	"github.com/user/pagesmith/internal/export"
	"github.com/user/pagesmith/internal/logging"
	"github.com/user/pagesmith/internal/tui"
	"github.com/user/pagesmith/internal/worker_pool"
)

// ExportConfig holds export command options
type ExportConfig struct {
	Files      []string
	OutputDir  string
	MaxWorkers int
	// Stdout writes a single document to the handler output instead of a file
	Stdout bool
}

// ExportHandler validates page files and writes their export documents
type ExportHandler struct {
	*BaseHandler
	config   ExportConfig
	progress tui.ProgressReporter

	claimMu sync.Mutex
	claimed map[string]string // output path -> page file
}

// NewExportHandler creates a new export handler
func NewExportHandler(cfg ExportConfig, base *BaseHandler) *ExportHandler {
	return &ExportHandler{
		BaseHandler: base,
		config:      cfg,
		progress:    &tui.NopProgressReporter{},
		claimed:     make(map[string]string),
	}
}

// SetProgressReporter sets the reporter that receives per-file updates
func (h *ExportHandler) SetProgressReporter(p tui.ProgressReporter) {
	if p == nil {
		p = &tui.NopProgressReporter{}
	}
	h.progress = p
}

func (h *ExportHandler) Handle(ctx context.Context) error {
	exporter, err := h.Exporter()
	if err != nil {
		return err
	}
	files := h.pageFiles(h.config.Files)

	if h.config.Stdout {
		return h.toStdout(exporter, files)
	}

	outDir := h.config.OutputDir
	if outDir == "" && h.Settings != nil {
		outDir = h.Settings.Export.OutputDir
	}
	if outDir == "" {
		outDir = "dist"
	}

	tasks := make([]worker_pool.Task[string], len(files))
	for i, file := range files {
		id := strconv.Itoa(i)
		h.progress.AddTask(id, file)
		tasks[i] = func(ctx context.Context) (string, error) {
			h.progress.StartTask(id)
			return h.exportOne(exporter, file, outDir)
		}
	}

	pool := worker_pool.NewWorkerPool(h.config.MaxWorkers)
	h.Logger.Info("Exporting pages",
		logging.Int("files", len(files)),
		logging.Int("workers", pool.GetMaxWorkers()),
		logging.String("output_dir", outDir))

	results := worker_pool.Run(ctx, pool, tasks, func(i int, r worker_pool.Result[string]) {
		if r.Error != nil {
			h.progress.FailTask(strconv.Itoa(i), r.Error)
			h.Logger.Warn("Export failed", logging.String("file", files[i]), logging.Error(r.Error))
			return
		}
		h.progress.CompleteTask(strconv.Itoa(i), r.Value)
		h.Logger.Info("Exported page", logging.String("file", files[i]), logging.String("path", r.Value))
	})

	return exportOutcome(results)
}

func (h *ExportHandler) exportOne(exporter *export.Exporter, file, outDir string) (string, error) {
	cfg, err := h.Validator().ValidateFile(file)
	if err != nil {
		return "", err
	}

	path := filepath.Join(outDir, export.FileName(cfg.Meta.Title))
	if err := h.claim(path, file); err != nil {
		return "", err
	}
	return exporter.WriteFile(cfg, outDir)
}

// claim reserves an output path so two pages with the same title never
// write the same file in one run
func (h *ExportHandler) claim(path, file string) error {
	h.claimMu.Lock()
	defer h.claimMu.Unlock()

	if owner, taken := h.claimed[path]; taken {
		return errors.NewExportError(path, fmt.Errorf("already written by %s", owner))
	}
	h.claimed[path] = file
	return nil
}

func (h *ExportHandler) toStdout(exporter *export.Exporter, files []string) error {
	if len(files) != 1 {
		return errors.NewConfigurationError("--stdout exports exactly one page file")
	}
	cfg, err := h.Validator().ValidateFile(files[0])
	if err != nil {
		return err
	}
	doc, err := exporter.Document(cfg)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprint(h.out(), doc); err != nil {
		return errors.NewExportError("stdout", err)
	}
	return nil
}

// exportOutcome maps batch results to the command error: nil when every
// page was written, exit 10 when only some were, and the first failure
// otherwise
func exportOutcome(results []worker_pool.Result[string]) error {
	var first error
	failed := 0
	for _, r := range results {
		if r.Error != nil {
			failed++
			if first == nil {
				first = r.Error
			}
		}
	}

	switch {
	case failed == 0:
		return nil
	case failed < len(results):
		return errors.WrapError(first, fmt.Sprintf("%d of %d exports failed", failed, len(results)), errors.ExitPartialSuccess)
	case len(results) == 1:
		return first
	default:
		return errors.WrapError(first, fmt.Sprintf("all %d exports failed", failed), errors.ExitCodeOf(first))
	}
}
