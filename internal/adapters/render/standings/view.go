package standings

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bnema/ipd/internal/application"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type RenderOptions struct {
	// Language selects digit grouping for scores. Zero means English.
	Language language.Tag
}

var tableHeader = []string{"Rank", "Name", "Total Score", "Total Opponent Score", "Cooperate Count", "Defect Count"}

func renderView(report application.Report, opts RenderOptions, s styles) string {
	printer := newPrinter(opts.Language)

	lines := []string{
		s.title.Render(printer.Sprintf("Rounds per match: %d", report.RoundsPerMatch)),
	}

	winner, ok := report.Winner()
	if !ok {
		lines = append(lines, s.empty.Render("No standings available."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	lines = append(lines,
		s.section.Render(s.winner.Render(fmt.Sprintf("*** WINNER: %s ***", winner))),
		s.section.Render(renderTable(report, printer, s)),
		s.section.Render(s.title.Render("Match Up Results Table (CSV):")),
		s.csv.Render(strings.TrimRight(matchupCSV(report), "\n")),
	)

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderTable(report application.Report, printer *message.Printer, s styles) string {
	records := make([][]string, 0, len(report.Standings)+1)
	records = append(records, tableHeader)
	for _, standing := range report.Standings {
		records = append(records, []string{
			strconv.Itoa(standing.Rank),
			string(standing.Agent),
			printer.Sprintf("%d", standing.Score),
			printer.Sprintf("%d", standing.OpponentScore),
			printer.Sprintf("%d", standing.CooperateCount),
			printer.Sprintf("%d", standing.DefectCount),
		})
	}

	widths := make([]int, len(tableHeader))
	for _, record := range records {
		for i, field := range record {
			widths[i] = max(widths[i], len(field))
		}
	}

	rows := make([]string, 0, len(records))
	for i, record := range records {
		padded := make([]string, len(record))
		for j, field := range record {
			padded[j] = padEnd(field, widths[j])
		}
		line := strings.TrimRight(strings.Join(padded, " "), " ")

		switch i {
		case 0:
			rows = append(rows, s.header.Render(line))
		case 1:
			rows = append(rows, s.leader.Render(line))
		default:
			rows = append(rows, s.row.Render(line))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func padEnd(field string, width int) string {
	if len(field) >= width {
		return field
	}
	return field + strings.Repeat(" ", width-len(field))
}

func newPrinter(tag language.Tag) *message.Printer {
	if tag == language.Und {
		tag = language.English
	}
	return message.NewPrinter(tag)
}
