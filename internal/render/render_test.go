package render

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/saitamau-maximum/standings/internal/rank"
	"github.com/saitamau-maximum/standings/internal/source"
)

// board builds ranked rows from alternating name/score pairs.
func board(tracked string, pairs ...interface{}) []rank.Ranked {
	entries := make([]source.Entry, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		entries = append(entries, source.Entry{
			Name:  pairs[i].(string),
			Score: float64(pairs[i+1].(int)),
		})
	}
	return rank.Assign(entries, tracked)
}

// descending builds n rows with distinct descending scores, naming the row
// at trackedIdx "Maximum".
func descending(n, trackedIdx int) []rank.Ranked {
	entries := make([]source.Entry, n)
	for i := range entries {
		name := fmt.Sprintf("Team%02d", i)
		if i == trackedIdx {
			name = "Maximum"
		}
		entries[i] = source.Entry{Name: name, Score: float64((n - i) * 10)}
	}
	return rank.Assign(entries, "Maximum")
}

// bodyLines returns the lines between the code fences.
func bodyLines(t *testing.T, out string) []string {
	t.Helper()
	lines := strings.Split(out, "\n")
	first, last := -1, -1
	for i, l := range lines {
		if l == "```" {
			if first < 0 {
				first = i
			} else {
				last = i
			}
		}
	}
	if first < 0 || last < 0 {
		t.Fatalf("output is not fenced:\n%s", out)
	}
	return lines[first+1 : last]
}

// --- Full output ------------------------------------------------------------

func TestTable_SmallBoardWithTie(t *testing.T) {
	rows := board("Maximum", "Alpha", 100, "Maximum", 90, "Beta", 90, "Gamma", 80)

	out, err := Table(rows)
	if err != nil {
		t.Fatalf("Table() error = %v", err)
	}

	want := strings.Join([]string{
		"Maximum is **2th**",
		"```",
		"| Rank | Team Name | Score |",
		"| ---- | --------- | ----- |",
		"| 1    | Alpha     | 100   |",
		"| 2    | Maximum   | 90    |",
		"| 2    | Beta      | 90    |",
		"| 3    | Gamma     | 80    |",
		"```",
	}, "\n")

	if out != want {
		t.Errorf("Table() =\n%s\nwant:\n%s", out, want)
	}
}

func TestTable_NoTrackedRow_NoHighlightLine(t *testing.T) {
	rows := board("Maximum", "Alpha", 100, "Beta", 90)

	out, err := Table(rows)
	if err != nil {
		t.Fatalf("Table() error = %v", err)
	}
	if !strings.HasPrefix(out, "```\n") {
		t.Errorf("output without tracked row should start with the fence, got:\n%s", out)
	}
	if strings.Contains(out, "**") {
		t.Errorf("unexpected highlight line in:\n%s", out)
	}
}

// --- Truncation -------------------------------------------------------------

func TestTable_TruncatesToTopRows(t *testing.T) {
	out, err := Table(descending(20, -1))
	if err != nil {
		t.Fatalf("Table() error = %v", err)
	}

	body := bodyLines(t, out)
	// header + separator + 11 rows
	if got := len(body); got != 13 {
		t.Errorf("fenced lines = %d, want 13", got)
	}
	if !strings.Contains(out, "Team10") {
		t.Error("row index 10 must be included")
	}
	if strings.Contains(out, "Team11") {
		t.Error("row index 11 must be truncated")
	}
}

func TestTable_TrackedBelowCutoffExtendsTable(t *testing.T) {
	out, err := Table(descending(15, 12))
	if err != nil {
		t.Fatalf("Table() error = %v", err)
	}

	body := bodyLines(t, out)
	// header + separator + rows 0..12
	if got := len(body); got != 15 {
		t.Errorf("fenced lines = %d, want 15", got)
	}
	if !strings.Contains(out, "| 13   | Maximum") {
		t.Errorf("tracked row with rank 13 missing:\n%s", out)
	}
	if !strings.Contains(out, "Maximum is **13th**") {
		t.Errorf("highlight line missing:\n%s", out)
	}
	if strings.Contains(out, "Team13") || strings.Contains(out, "Team14") {
		t.Error("rows past the tracked row must be truncated")
	}
}

// --- Alignment --------------------------------------------------------------

func TestTable_AllLinesEqualWidth(t *testing.T) {
	rows := board("Maximum",
		"A", 1000000, "Maximum", 999999, "a-rather-long-team-name", 5, "x", 1)

	out, err := Table(rows)
	if err != nil {
		t.Fatalf("Table() error = %v", err)
	}

	body := bodyLines(t, out)
	width := len(body[0])
	for i, l := range body {
		if len(l) != width {
			t.Errorf("line %d width = %d, want %d: %q", i, len(l), width, l)
		}
	}
	if !strings.Contains(out, "a-rather-long-team-name") {
		t.Error("long team name must not be truncated")
	}
}

// Widths are computed over the whole dataset, so a long name below the
// cutoff still widens the visible column.
func TestTable_WidthsMeasuredBeforeTruncation(t *testing.T) {
	rows := descending(20, -1)
	rows[15].Name = "an-extremely-long-name-below-the-cutoff"

	out, err := Table(rows)
	if err != nil {
		t.Fatalf("Table() error = %v", err)
	}

	body := bodyLines(t, out)
	for _, l := range body {
		if len(l) != len(body[0]) {
			t.Fatalf("non-uniform line width:\n%s", out)
		}
	}
	if len(body[0]) <= len("| Rank | Team Name | Score |") {
		t.Error("column width should reflect the long hidden name")
	}
}

// --- Determinism and failure ------------------------------------------------

func TestTable_Idempotent(t *testing.T) {
	rows := descending(15, 12)
	a, err := Table(rows)
	if err != nil {
		t.Fatalf("Table() error = %v", err)
	}
	b, err := Table(rows)
	if err != nil {
		t.Fatalf("Table() error = %v", err)
	}
	if a != b {
		t.Error("same input must render byte-identically")
	}
}

func TestTable_EmptyInput(t *testing.T) {
	_, err := Table(nil)
	if !errors.Is(err, ErrEmpty) {
		t.Errorf("Table(nil) error = %v, want ErrEmpty", err)
	}
}
