package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/pagesmith/internal/errors"
	"github.com/user/pagesmith/internal/schema"
)

func TestFormatIssues(t *testing.T) {
	out := FormatIssues([]errors.IssueDetail{
		{Path: "站点信息 > 页面标题", Reason: "不能为空字符串", Code: "empty_string"},
		{Path: "页面分区", Reason: "至少需要一项", Code: "empty_list"},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d: %q", len(lines), out)
	}
	if !strings.Contains(lines[0], "站点信息 > 页面标题") || !strings.Contains(lines[0], "不能为空字符串") {
		t.Errorf("Unexpected first line: %q", lines[0])
	}

	if FormatIssues(nil) != "" {
		t.Error("Expected empty output for no issues")
	}
}

func TestNavTable(t *testing.T) {
	out := NavTable([]schema.NavItem{
		{ID: "narrative", Label: "01 项目叙事"},
		{ID: "models", Label: "02 Models"},
	})

	for _, want := range []string{"ID", "LABEL", "narrative", "01 项目叙事", "models", "02 Models"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected table to contain %q, got:\n%s", want, out)
		}
	}

	// Every row is padded to the same display width inside the box
	lines := strings.Split(out, "\n")
	width := lipgloss.Width(lines[0])
	for _, line := range lines {
		if lipgloss.Width(line) != width {
			t.Errorf("Expected rows of width %d, got %d: %q", width, lipgloss.Width(line), line)
		}
	}
}
