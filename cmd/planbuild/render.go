// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/planbuild/planbuild/internal/blueprint"
	"github.com/planbuild/planbuild/internal/catalog"
	"github.com/planbuild/planbuild/internal/issue"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// renderReport writes the outcome of scan number n.
func renderReport(w io.Writer, n int, r *catalog.Report) {
	fmt.Fprintf(w, "%s %s %s\n", TitleStyle.Render(fmt.Sprintf("Scan %d:", n)), r.Summary(),
		VerboseStyle.Render("("+r.Duration.Round(time.Microsecond).String()+")"))

	for _, d := range r.Diagnostics {
		marker := WarningStyle.Render("!")
		if d.Severity == catalog.SeverityError {
			marker = ErrorStyle.Render("✗")
		}
		line := fmt.Sprintf("  %s %s", marker, d.Code)
		if d.Piece != "" {
			line += " " + CmdStyle.Render(string(d.Piece))
		}
		if d.Message != "" {
			line += ": " + d.Message
		}
		if d.Cause != nil {
			line += " " + VerboseStyle.Render("("+d.Cause.Error()+")")
		}
		fmt.Fprintln(w, line)
	}

	if r.DuplicateReport != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, WarningStyle.Render(r.DuplicateReport))
	}
}

// renderPlans writes the plans as a table in creation order.
func renderPlans(w io.Writer, plans []*catalog.Plan) {
	if len(plans) == 0 {
		fmt.Fprintln(w, SubtitleStyle.Render("(no plans)"))
		return
	}

	rows := make([][]string, 0, len(plans))
	for _, p := range plans {
		state := "enabled"
		if !p.Enabled {
			state = "disabled"
		}
		rows = append(rows, []string{
			string(p.Name),
			string(p.DisplayName),
			p.Requirements.String(),
			p.Category,
			state,
		})
	}
	fmt.Fprintln(w, styledTable([]string{"PLAN", "DISPLAY NAME", "COST", "CATEGORY", "STATE"}, rows))
}

func renderTools(w io.Writer, tools []blueprint.Tool) {
	rows := make([][]string, 0, len(tools))
	for i, t := range tools {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			string(t.Piece.Name),
			string(t.Piece.DisplayName),
			t.Kind.String(),
		})
	}
	fmt.Fprintln(w, styledTable([]string{"#", "PIECE", "NAME", "BEHAVIOUR"}, rows))
}

func styledTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		}).
		String()
}

// printSuggestions writes the suggestions of an ActionableError; in verbose
// mode the full error chain follows. Other errors are left to the caller.
func printSuggestions(w io.Writer, err error, verbose bool) {
	var ae *issue.ActionableError
	if !errors.As(err, &ae) || (!ae.HasSuggestions() && !verbose) {
		return
	}
	fmt.Fprintln(w, formatErrorForDisplay(err, verbose))
}
