package standings

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/bnema/ipd/internal/application"
)

// WriteMatchupCSV writes the points-per-round grid. Rows and columns both
// follow the final ranking; each cell is the row agent's average against the
// column agent.
func WriteMatchupCSV(w io.Writer, report application.Report) error {
	writer := csv.NewWriter(w)

	header := make([]string, 0, len(report.Standings)+1)
	header = append(header, "")
	for _, standing := range report.Standings {
		header = append(header, string(standing.Agent))
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, standing := range report.Standings {
		record := make([]string, 0, len(standing.Matchups)+1)
		record = append(record, string(standing.Agent))
		for _, matchup := range standing.Matchups {
			record = append(record, FormatPointsPerRound(matchup.PointsPerRound))
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row %s: %w", standing.Agent, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func matchupCSV(report application.Report) string {
	var buf bytes.Buffer
	if err := WriteMatchupCSV(&buf, report); err != nil {
		return ""
	}
	return buf.String()
}
