package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/pagesmith/internal/errors"
	"github.com/user/pagesmith/internal/schema"
)

// FormatIssues renders one line per validation issue
func FormatIssues(issues []errors.IssueDetail) string {
	var b strings.Builder
	for _, issue := range issues {
		fmt.Fprintf(&b, "%s %s %s\n",
			StyleError.Render(IconError),
			StylePath.Render(issue.Path),
			StyleMuted.Render(issue.Reason))
	}
	return b.String()
}

// NavTable renders nav items as an aligned three-column table
func NavTable(items []schema.NavItem) string {
	rows := [][]string{{"#", "ID", "LABEL"}}
	for i, item := range items {
		rows = append(rows, []string{strconv.Itoa(i + 1), item.ID, item.Label})
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for col, cell := range row {
			// lipgloss.Width counts display cells, so CJK labels line up
			if w := lipgloss.Width(cell); w > widths[col] {
				widths[col] = w
			}
		}
	}

	lines := make([]string, 0, len(rows))
	for r, row := range rows {
		style := StyleTableCell
		if r == 0 {
			style = StyleTableHeader
		}
		cells := make([]string, len(row))
		for col, cell := range row {
			// PaddingRight(2) is included in the width
			cells[col] = style.Width(widths[col] + 2).Render(cell)
		}
		lines = append(lines, strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, cells...), " "))
	}
	return StyleBox.Render(strings.Join(lines, "\n"))
}
