package render

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/saitamau-maximum/standings/internal/rank"
)

// topRows is how many leading rows are always included: the top 10 ranks
// plus one row of slack for a tie spanning the boundary.
const topRows = 11

// ErrEmpty reports that there were no rows to render. The pipeline aborts
// before dispatch — a header-only table is never posted.
var ErrEmpty = errors.New("no rows to render")

// Column labels, in display order.
var headers = [3]string{"Rank", "Team Name", "Score"}

// Table renders ranked rows as a column-aligned text block wrapped in a
// code fence, preceded by a highlight line when a tracked row exists.
//
// Column widths are computed across the entire dataset before truncation,
// so the visible block never shifts alignment as rows move in and out of
// the cutoff. Rows 0–10 are always included; if the tracked row sits below
// that block, every row down to and including it is kept so the tracked
// team is never truncated away.
func Table(rows []rank.Ranked) (string, error) {
	if len(rows) == 0 {
		return "", ErrEmpty
	}

	cells := make([][3]string, len(rows))
	for i, r := range rows {
		cells[i] = [3]string{strconv.Itoa(r.Rank), r.Name, formatScore(r.Score)}
	}

	var widths [3]int
	for c, h := range headers {
		widths[c] = utf8.RuneCountInString(h)
	}
	for _, row := range cells {
		for c, text := range row {
			if n := utf8.RuneCountInString(text); n > widths[c] {
				widths[c] = n
			}
		}
	}

	tracked := rank.TrackedIndex(rows)

	var sb strings.Builder
	if tracked >= 0 {
		// The recomputed rank is the single source of truth here, even when
		// the site's own numbering disagrees. The "th" suffix is applied to
		// every rank, matching the long-standing message format.
		fmt.Fprintf(&sb, "%s is **%dth**\n", rows[tracked].Name, rows[tracked].Rank)
	}

	sb.WriteString("```\n")
	writeLine(&sb, headers, widths)
	writeLine(&sb, [3]string{
		strings.Repeat("-", widths[0]),
		strings.Repeat("-", widths[1]),
		strings.Repeat("-", widths[2]),
	}, widths)
	for i, row := range cells {
		if i >= topRows && i > tracked {
			break
		}
		writeLine(&sb, row, widths)
	}
	sb.WriteString("```")

	return sb.String(), nil
}

// writeLine writes one table line: cells padded to their column widths,
// joined with " | " and wrapped in "| " / " |".
func writeLine(sb *strings.Builder, row [3]string, widths [3]int) {
	sb.WriteString("| ")
	for c, text := range row {
		if c > 0 {
			sb.WriteString(" | ")
		}
		sb.WriteString(text)
		sb.WriteString(strings.Repeat(" ", widths[c]-utf8.RuneCountInString(text)))
	}
	sb.WriteString(" |\n")
}

// formatScore prints a score with minimal digits — integral scores print
// bare, fractional ones keep their precision.
func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
