package standings

import (
	"bytes"
	"testing"

	"github.com/bnema/ipd/internal/application"
	"github.com/bnema/ipd/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func sampleReport() application.Report {
	return application.Report{
		RoundsPerMatch: 1000,
		Matches: []domain.MatchResult{
			{
				A:      "TitForTat",
				B:      "AlwaysDefect",
				Rounds: 1000,
				TallyA: domain.MatchTally{Opponent: "AlwaysDefect", Score: 999, OpponentScore: 1004, CooperateCount: 1, DefectCount: 999},
				TallyB: domain.MatchTally{Opponent: "TitForTat", Score: 1004, OpponentScore: 999, DefectCount: 1000},
			},
		},
		Standings: []application.Standing{
			{
				Rank: 1, Agent: "AlwaysDefect", Score: 2004, OpponentScore: 1999, DefectCount: 2000,
				Matchups: []application.Matchup{
					{Opponent: "AlwaysDefect", Score: 1000, PointsPerRound: 1},
					{Opponent: "TitForTat", Score: 1004, PointsPerRound: 1.004},
				},
			},
			{
				Rank: 2, Agent: "TitForTat", Score: 3999, OpponentScore: 4004, CooperateCount: 1001, DefectCount: 999,
				Matchups: []application.Matchup{
					{Opponent: "AlwaysDefect", Score: 999, PointsPerRound: 0.999},
					{Opponent: "TitForTat", Score: 3000, PointsPerRound: 3},
				},
			},
		},
	}
}

func TestRenderStandings(t *testing.T) {
	t.Parallel()

	output, err := Render(sampleReport(), RenderOptions{})
	require.NoError(t, err)

	assert.Contains(t, output, "Rounds per match: 1,000")
	assert.Contains(t, output, "*** WINNER: AlwaysDefect ***")
	assert.Contains(t, output, "Rank Name         Total Score Total Opponent Score Cooperate Count Defect Count")
	assert.Contains(t, output, "1    AlwaysDefect 2,004       1,999                0               2,000")
	assert.Contains(t, output, "2    TitForTat    3,999       4,004                1,001           999")
	assert.Contains(t, output, "Match Up Results Table (CSV):")
	assert.Contains(t, output, ",AlwaysDefect,TitForTat")
	assert.Contains(t, output, "AlwaysDefect,1.0,1.004")
	assert.Contains(t, output, "TitForTat,0.999,3.0")
}

func TestRenderUsesRequestedLanguage(t *testing.T) {
	t.Parallel()

	output, err := Render(sampleReport(), RenderOptions{Language: language.German})
	require.NoError(t, err)

	assert.Contains(t, output, "Rounds per match: 1.000")
	assert.Contains(t, output, "3.999")
	assert.Contains(t, output, "AlwaysDefect,1.0,1.004")
}

func TestRenderEmptyReport(t *testing.T) {
	t.Parallel()

	output, err := Render(application.Report{RoundsPerMatch: 10}, RenderOptions{})
	require.NoError(t, err)

	assert.Contains(t, output, "Rounds per match: 10")
	assert.Contains(t, output, "No standings available.")
	assert.NotContains(t, output, "WINNER")
}

func TestMatchSummaryMarksHigherScorer(t *testing.T) {
	t.Parallel()

	summary := MatchSummary(sampleReport().Matches[0])

	assert.Equal(t, "TitForTat vs AlwaysDefect:\n   TitForTat: 999 (0.999)\n  *AlwaysDefect: 1004 (1.004)\n", summary)
}

func TestMatchSummaryTieHasNoMarker(t *testing.T) {
	t.Parallel()

	summary := MatchSummary(domain.MatchResult{
		A:      "TitForTat",
		B:      "TitForTat",
		Rounds: 4,
		TallyA: domain.MatchTally{Score: 12, OpponentScore: 12, CooperateCount: 4},
		TallyB: domain.MatchTally{Score: 12, OpponentScore: 12, CooperateCount: 4},
	})

	assert.Equal(t, "TitForTat vs TitForTat:\n   TitForTat: 12 (3.0)\n   TitForTat: 12 (3.0)\n", summary)
}

func TestFormatPointsPerRound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value float64
		want  string
	}{
		{value: 0, want: "0.0"},
		{value: 3, want: "3.0"},
		{value: 2.5, want: "2.5"},
		{value: 1.0 / 3.0, want: "0.333333"},
		{value: 2.0 / 3.0, want: "0.666667"},
		{value: 4.1234564, want: "4.123456"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPointsPerRound(tt.value))
	}
}

func TestWriteMatchupCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteMatchupCSV(&buf, sampleReport()))

	assert.Equal(t, ",AlwaysDefect,TitForTat\nAlwaysDefect,1.0,1.004\nTitForTat,0.999,3.0\n", buf.String())
}
