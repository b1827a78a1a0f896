package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/user/pagesmith/internal/config"
	appErrors "github.com/user/pagesmith/internal/errors"
	"github.com/user/pagesmith/internal/handlers"
	"github.com/user/pagesmith/internal/testutil"
	"github.com/user/pagesmith/internal/tui"
)

func loadSettings(t *testing.T, projectDir string) *config.Settings {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	settings, err := config.LoadSettings(projectDir, nil)
	if err != nil {
		t.Fatalf("Failed to load settings: %v", err)
	}
	return settings
}

// captureErrOut redirects command error output for the test
func captureErrOut(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := errOut
	errOut = &buf
	t.Cleanup(func() { errOut = old })
	return &buf
}

// execute runs the command tree against an isolated project directory
func execute(t *testing.T, projectDir string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	debugFlag, verboseFlag, localeFlag = false, false, ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--project-dir", projectDir))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestInitLogger_ProjectLogDir(t *testing.T) {
	projectDir := t.TempDir()
	settings := loadSettings(t, projectDir)

	logger, err := InitLogger(settings, projectDir, false, false)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	defer logger.Sync()

	if _, err := os.Stat(filepath.Join(projectDir, ".pagesmith", "logs")); os.IsNotExist(err) {
		t.Error("Expected .pagesmith/logs directory to be created")
	}
}

func TestInitLogger_CustomLogDir(t *testing.T) {
	projectDir := t.TempDir()
	settings := loadSettings(t, projectDir)
	settings.Logging.LogDir = filepath.Join(t.TempDir(), "custom")

	logger, err := InitLogger(settings, projectDir, true, true)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	defer logger.Sync()

	if _, err := os.Stat(settings.Logging.LogDir); os.IsNotExist(err) {
		t.Errorf("Expected %s directory to be created", settings.Logging.LogDir)
	}
}

func TestInitLogger_UnwritableDir(t *testing.T) {
	projectDir := t.TempDir()
	settings := loadSettings(t, projectDir)
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	settings.Logging.LogDir = filepath.Join(blocker, "logs")

	_, err := InitLogger(settings, projectDir, false, false)
	if appErrors.ExitCodeOf(err) != appErrors.ExitIOError {
		t.Errorf("Expected IO exit code, got %v", err)
	}
}

func TestHandleCommandError_Nil(t *testing.T) {
	if err := HandleCommandError(nil, nil, false); err != nil {
		t.Errorf("Expected nil, got %v", err)
	}
}

func TestHandleCommandError_AppErrorToStderr(t *testing.T) {
	buf := captureErrOut(t)
	original := appErrors.NewConfigurationError("bad locale")

	err := HandleCommandError(original, nil, false)
	if err != original {
		t.Error("Expected the original error back")
	}
	if !strings.Contains(buf.String(), "ERROR: bad locale") {
		t.Errorf("Expected user message on stderr, got %q", buf.String())
	}
}

func TestHandleCommandError_WrappedAppError(t *testing.T) {
	buf := captureErrOut(t)
	wrapped := errors.Join(errors.New("context"), appErrors.NewMissingFileError("page.json"))

	_ = HandleCommandError(wrapped, nil, false)
	if !strings.Contains(buf.String(), "Required file not found: page.json") {
		t.Errorf("Expected user message of the wrapped error, got %q", buf.String())
	}
}

func TestHandleCommandError_Progress(t *testing.T) {
	buf := captureErrOut(t)
	var out bytes.Buffer
	progress := tui.NewSimpleProgress("Test")
	progress.SetWriter(&out)

	_ = HandleCommandError(appErrors.NewRenderError("no sections"), progress, true)
	if !strings.Contains(out.String(), "Failed") {
		t.Errorf("Expected failure in progress output, got %q", out.String())
	}
	if buf.Len() != 0 {
		t.Errorf("Expected nothing on stderr, got %q", buf.String())
	}
}

func TestHandleCommandError_PlainError(t *testing.T) {
	buf := captureErrOut(t)

	err := HandleCommandError(errors.New("boom"), nil, false)
	if err == nil || err.Error() != "boom" {
		t.Errorf("Expected plain error back, got %v", err)
	}
	if !strings.Contains(buf.String(), "Error: boom") {
		t.Errorf("Expected error on stderr, got %q", buf.String())
	}
}

func TestCommands_Registered(t *testing.T) {
	expected := []string{"validate", "nav", "export", "preview", "init", "schema", "settings"}
	for _, name := range expected {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected command %q to be registered", name)
		}
	}
}

func TestCommands_InitValidateExport(t *testing.T) {
	projectDir := t.TempDir()
	page := filepath.Join(projectDir, "page.yaml")

	if _, err := execute(t, projectDir, "init", page); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	out, err := execute(t, projectDir, "validate", "--output", "text", page)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(out, page) {
		t.Errorf("Expected validate report for %s, got:\n%s", page, out)
	}

	outDir := filepath.Join(projectDir, "site")
	if _, err := execute(t, projectDir, "export", "--out", outDir, page); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "建筑展示模板.html")); err != nil {
		t.Errorf("Expected exported document: %v", err)
	}
}

func TestCommands_ValidateFailureExitCode(t *testing.T) {
	projectDir := t.TempDir()
	bad := testutil.WriteFile(t, projectDir, "bad.json", `{"meta": {}}`)

	out, err := execute(t, projectDir, "validate", "--output", "json", "--locale", "en", bad)
	if appErrors.ExitCodeOf(err) != appErrors.ExitValidationError {
		t.Fatalf("Expected validation exit code, got %v", err)
	}

	var reports []handlers.FileReport
	if err := json.Unmarshal([]byte(out), &reports); err != nil {
		t.Fatalf("Expected JSON report, got %v:\n%s", err, out)
	}
	if len(reports) != 1 || len(reports[0].Issues) == 0 {
		t.Fatalf("Expected issues for %s, got %+v", bad, reports)
	}
	if !strings.HasPrefix(reports[0].Error, "validation failed: ") {
		t.Errorf("Expected English messages with --locale en, got %q", reports[0].Error)
	}
}

func TestCommands_InvalidLocaleIsConfigError(t *testing.T) {
	projectDir := t.TempDir()

	_, err := execute(t, projectDir, "schema", "--locale", "fr")
	var settingErr *appErrors.InvalidSettingError
	if !errors.As(err, &settingErr) {
		t.Fatalf("Expected InvalidSettingError, got %v", err)
	}
	if appErrors.ExitCodeOf(err) != appErrors.ExitConfigError {
		t.Errorf("Expected config exit code, got %d", appErrors.ExitCodeOf(err))
	}
}
