package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/grovetools/core/tui/theme"

	"github.com/grovetools/agentperms/internal/permission"
	"github.com/grovetools/agentperms/internal/session"
)

// PrintSuggestionsTable prints the ranked rules as a bordered table followed
// by a one-line summary.
func PrintSuggestionsTable(r Report, w io.Writer) error {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.DefaultColors.Violet)
	ruleStyle := lipgloss.NewStyle().Foreground(theme.DefaultColors.Green)
	countStyle := lipgloss.NewStyle().Foreground(theme.DefaultColors.Yellow).Align(lipgloss.Right)
	mutedStyle := lipgloss.NewStyle().Foreground(theme.DefaultColors.MutedText)

	var rows [][]string
	r.Suggestions.Each(func(rule string, sg *permission.Suggestion) {
		rows = append(rows, []string{rule, strconv.Itoa(sg.Count), strings.Join(sg.Examples, "\n")})
	})

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers("RULE", "COUNT", "EXAMPLES").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			switch col {
			case 0:
				return ruleStyle.Padding(0, 1)
			case 1:
				return countStyle.Padding(0, 1)
			}
			return mutedStyle.Padding(0, 1)
		})

	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s %d unique rules from %s\n",
		mutedStyle.Render("total:"), r.TotalUniqueRules, r.SessionFile)
	return err
}

// PrintSessionsTable prints session logs in a formatted table.
func PrintSessionsTable(logs []session.SessionLog, writer io.Writer) {
	w := tabwriter.NewWriter(writer, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "SESSION ID\tMODIFIED\tSIZE\tPATH")
	for _, l := range logs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			l.SessionID, l.ModifiedAt.Format("2006-01-02 15:04"), humanSize(l.Size), l.LogFilePath)
	}
	w.Flush()
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
