package rank

import "github.com/saitamau-maximum/standings/internal/source"

// Ranked is one leaderboard row with its display rank assigned.
type Ranked struct {
	Rank    int
	Name    string
	Score   float64
	Tracked bool
}

// Assign converts a score-sorted entry list into ranked rows using dense
// competition ranking: tied scores share a rank and the rank advances by
// exactly one at every score change, so a 100/90/90/80 board ranks 1/2/2/3.
//
// tracked is matched against entry names exactly (case-sensitive). Input
// order is preserved. An empty input returns nil — adapters guarantee at
// least one entry.
func Assign(entries []source.Entry, tracked string) []Ranked {
	if len(entries) == 0 {
		return nil
	}

	rows := make([]Ranked, len(entries))
	r := 1
	prev := entries[0].Score
	for i, e := range entries {
		if e.Score != prev {
			r++
			prev = e.Score
		}
		rows[i] = Ranked{
			Rank:    r,
			Name:    e.Name,
			Score:   e.Score,
			Tracked: e.Name == tracked,
		}
	}
	return rows
}

// TrackedIndex returns the index of the first tracked row, or -1 if the
// tracked team is not on the board.
func TrackedIndex(rows []Ranked) int {
	for i, row := range rows {
		if row.Tracked {
			return i
		}
	}
	return -1
}
