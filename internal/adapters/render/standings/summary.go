package standings

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bnema/ipd/internal/domain"
)

// MatchSummary renders one match as
//
//	A vs B:
//	  *A: 2990 (2.99)
//	   B: 1990 (1.99)
//
// where the star marks the side that scored more.
func MatchSummary(result domain.MatchResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s vs %s:\n", result.A, result.B)
	fmt.Fprintf(&b, "  %s\n", sideSummary(result.A, result.TallyA, result.Rounds))
	fmt.Fprintf(&b, "  %s\n", sideSummary(result.B, result.TallyB, result.Rounds))
	return b.String()
}

func sideSummary(name domain.AgentName, tally domain.MatchTally, rounds int) string {
	marker := " "
	if tally.Leads() {
		marker = "*"
	}

	average := 0.0
	if rounds > 0 {
		average = float64(tally.Score) / float64(rounds)
	}

	return fmt.Sprintf("%s%s: %d (%s)", marker, name, tally.Score, FormatPointsPerRound(average))
}

// FormatPointsPerRound prints at least one and at most six decimals, trimming
// trailing zeros: 3 -> "3.0", 2.5 -> "2.5", 1/3 -> "0.333333".
func FormatPointsPerRound(value float64) string {
	formatted := strconv.FormatFloat(value, 'f', 6, 64)
	formatted = strings.TrimRight(formatted, "0")
	if strings.HasSuffix(formatted, ".") {
		formatted += "0"
	}
	return formatted
}
